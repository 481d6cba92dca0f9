package thicket

import (
	"image"
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

// Outline colours of a ColliderVisualizer.
var (
	VisualizerTouchColor = colornames.Lime
	VisualizerIdleColor  = colornames.Red
)

// ColliderVisualizer draws the outline of its object's collider through a
// SpriteRenderer it adds on attach. The outline is redrawn every fixed
// update, in VisualizerTouchColor while the collider touches another one
// and VisualizerIdleColor otherwise.
type ColliderVisualizer struct {
	Behaviour

	// Thickness is the outline width in pixels.
	Thickness float64

	collider *Collider
	sprite   *SpriteRenderer
}

// NewColliderVisualizer returns a visualizer with a 2 pixel outline.
func NewColliderVisualizer() *ColliderVisualizer {
	return &ColliderVisualizer{Thickness: 2}
}

// Kind implements Component.
func (v *ColliderVisualizer) Kind() Kind { return KindColliderVisualizer }

// Awake attaches the sprite the outline is drawn into.
func (v *ColliderVisualizer) Awake() {
	obj := v.GameObject()
	if obj == nil {
		return
	}
	v.sprite = NewSpriteRenderer(nil)
	if err := obj.AddComponent(v.sprite); err != nil {
		v.Scene().Logger().Warn("collider visualizer: no sprite",
			zap.String("object", obj.Name), zap.Error(err))
		v.sprite = nil
	}
}

// Sprite returns the sprite the outline is drawn into, or nil.
func (v *ColliderVisualizer) Sprite() *SpriteRenderer {
	return v.sprite
}

// FixedUpdate redraws the outline. The collider is looked up lazily so it
// may be attached after the visualizer.
func (v *ColliderVisualizer) FixedUpdate() {
	if v.sprite == nil {
		return
	}
	if v.collider == nil {
		obj := v.GameObject()
		if obj == nil {
			return
		}
		c, err := Get[*Collider](obj)
		if err != nil {
			return
		}
		v.collider = c
	}
	bb, ok := v.collider.Bounds()
	if !ok {
		return
	}
	col := VisualizerIdleColor
	if v.collider.Check() != nil {
		col = VisualizerTouchColor
	}
	img, origin := rasterizeOutline(v.collider.Contour, bb, v.Thickness, col)
	v.sprite.Image = img
	v.sprite.Offset = origin
}

// rasterizeOutline draws the closed polygon contour as thick line segments.
// Image rows run top-down while contour y runs up, so rows are flipped. The
// returned origin is the local position of the image's lower-left corner.
func rasterizeOutline(contour []cp.Vector, bb cp.BB, thickness float64, c color.RGBA) (*image.NRGBA, Vector3) {
	pad := math.Ceil(thickness)
	w := int(math.Ceil(bb.R-bb.L)+2*pad) + 1
	h := int(math.Ceil(bb.T-bb.B)+2*pad) + 1
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	toPixel := func(p cp.Vector) cp.Vector {
		return cp.Vector{X: p.X - bb.L + pad, Y: float64(h) - (p.Y - bb.B + pad)}
	}

	z := vector.NewRasterizer(w, h)
	half := thickness / 2
	n := len(contour)
	for i := 0; i < n; i++ {
		a, b := toPixel(contour[i]), toPixel(contour[(i+1)%n])
		d := b.Sub(a)
		if d.Length() == 0 {
			continue
		}
		// Extend each segment by half the width so corners close.
		d = d.Normalize().Mult(half)
		off := d.Perp()
		a, b = a.Sub(d), b.Add(d)
		z.MoveTo(float32(a.X+off.X), float32(a.Y+off.Y))
		z.LineTo(float32(b.X+off.X), float32(b.Y+off.Y))
		z.LineTo(float32(b.X-off.X), float32(b.Y-off.Y))
		z.LineTo(float32(a.X-off.X), float32(a.Y-off.Y))
		z.ClosePath()
	}
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})

	return img, Vector3{X: bb.L - pad, Y: bb.B - pad}
}
