package thicket

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Vector3 is an immutable 3-component vector used for positions, velocities
// and forces. Z takes part in depth compositing but not in collision math.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 is shorthand for Vector3{X: x, Y: y, Z: z}.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func Zero() Vector3  { return Vector3{} }
func One() Vector3   { return Vector3{1, 1, 0} }
func Up() Vector3    { return Vector3{0, 1, 0} }
func Down() Vector3  { return Vector3{0, -1, 0} }
func Left() Vector3  { return Vector3{-1, 0, 0} }
func Right() Vector3 { return Vector3{1, 0, 0} }

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Mul(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Div divides every component by s. Panics if s is zero.
func (v Vector3) Div(s float64) Vector3 {
	if s == 0 {
		panic("thicket: vector division by zero")
	}
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Normalized scales the x,y part to unit length and keeps Z unchanged.
// A zero-length vector normalizes to the zero vector.
func (v Vector3) Normalized() Vector3 {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Vector3{}
	}
	return Vector3{v.X / l, v.Y / l, v.Z}
}

// XY drops Z and returns the planar part used by the collision engine.
func (v Vector3) XY() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// Approx reports whether every component of v is within eps of o.
func (v Vector3) Approx(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
