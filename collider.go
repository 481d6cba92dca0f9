package thicket

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Collider is a convex polygon in the owner's local space. A nil Contour
// means "unset" and never touches anything. Trigger colliders take part in
// overlap queries but do not stop rigidbodies.
type Collider struct {
	ComponentBase

	Contour   []cp.Vector
	IsTrigger bool
}

// NewCollider returns a collider with the given local contour.
func NewCollider(contour ...cp.Vector) *Collider {
	return &Collider{Contour: contour}
}

// NewBoxCollider returns an axis-aligned rectangle centred on the owner.
func NewBoxCollider(halfW, halfH float64) *Collider {
	return NewCollider(
		cp.Vector{X: -halfW, Y: -halfH},
		cp.Vector{X: halfW, Y: -halfH},
		cp.Vector{X: halfW, Y: halfH},
		cp.Vector{X: -halfW, Y: halfH},
	)
}

// Kind implements Component.
func (c *Collider) Kind() Kind { return KindCollider }

// WorldContour returns the contour translated by the owner's world x,y.
// Returns nil when the contour is unset.
func (c *Collider) WorldContour() []cp.Vector {
	if c.Contour == nil {
		return nil
	}
	var offset cp.Vector
	if t := c.Transform(); t != nil {
		offset = t.Position().XY()
	}
	pts := make([]cp.Vector, len(c.Contour))
	for i, p := range c.Contour {
		pts[i] = p.Add(offset)
	}
	return pts
}

// Bounds returns the local axis-aligned bounds of the contour.
func (c *Collider) Bounds() (cp.BB, bool) {
	if len(c.Contour) == 0 {
		return cp.BB{}, false
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, p := range c.Contour {
		bb.L = math.Min(bb.L, p.X)
		bb.R = math.Max(bb.R, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb, true
}

// IsTouch reports whether c and other overlap or touch, using the
// Separating Axis Theorem over the edge normals of both polygons. Either
// contour being unset yields false. Results are only meaningful for convex
// contours.
func (c *Collider) IsTouch(other *Collider) bool {
	if other == nil || c.Contour == nil || other.Contour == nil {
		return false
	}
	return polygonsTouch(c.WorldContour(), other.WorldContour())
}

// Check returns the first other collider, in scene dispatch order, that
// touches c. Returns nil when nothing touches or the contour is unset.
func (c *Collider) Check() *Collider {
	s := c.Scene()
	if s == nil || c.Contour == nil {
		return nil
	}
	for _, comp := range s.Components() {
		other, ok := comp.(*Collider)
		if !ok || other == c {
			continue
		}
		if c.IsTouch(other) {
			return other
		}
	}
	return nil
}

// polygonsTouch runs the SAT test on two world-space polygons.
func polygonsTouch(a, b []cp.Vector) bool {
	for _, poly := range [2][]cp.Vector{a, b} {
		n := len(poly)
		for i := 0; i < n; i++ {
			edge := poly[(i+1)%n].Sub(poly[i])
			normal := edge.Perp()
			if normal.Length() == 0 {
				continue
			}
			axis := normal.Normalize()
			minA, maxA := project(a, axis)
			minB, maxB := project(b, axis)
			if maxA < minB || maxB < minA {
				return false
			}
		}
	}
	return true
}

// project returns the extent of poly along axis.
func project(poly []cp.Vector, axis cp.Vector) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
