package thicket

import (
	"image"
	"image/color"
)

// DefaultSpriteColor fills procedural sprites that name no colour.
var DefaultSpriteColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// SpriteRenderer draws an image at its owner's position through the scene
// view. A nil Image draws nothing, which is the normal state of a sprite
// whose image has not been produced yet.
type SpriteRenderer struct {
	ComponentBase

	Image  *image.NRGBA
	Offset Vector3
}

// NewSpriteRenderer returns a sprite renderer showing img.
func NewSpriteRenderer(img *image.NRGBA) *SpriteRenderer {
	return &SpriteRenderer{Image: img}
}

// Kind implements Component.
func (r *SpriteRenderer) Kind() Kind { return KindSpriteRenderer }

// Draw implements Drawable. The image is shown at the owner's position plus
// Offset plus half the image size, so with a zero Offset the owner's
// position is the image's lower-left corner in world space.
func (r *SpriteRenderer) Draw() {
	if r.Image == nil {
		return
	}
	s, t := r.Scene(), r.Transform()
	if s == nil || t == nil {
		return
	}
	b := r.Image.Bounds()
	half := Vector3{X: float64(b.Dx()) / 2, Y: float64(b.Dy()) / 2}
	s.Show(r.Image, t.Position().Add(r.Offset).Add(half))
}
