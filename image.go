package thicket

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// NewRectImage returns a w×h image filled with c.
func NewRectImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(img, c)
	return img
}

// ToNRGBA converts any decoded image into the renderer's straight-alpha
// payload format, origin at (0, 0). An *image.NRGBA with a zero origin is
// returned as is.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return dst
}

func fill(img *image.NRGBA, c color.NRGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}
