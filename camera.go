package thicket

import (
	"image"
	"image/color"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default view buffer size of a camera that has not rendered yet.
const (
	defaultViewWidth  = 1024
	defaultViewHeight = 512
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the scene's screen view. It acts as a pure translation: world
// positions are relative to the camera object's world position. It owns the
// color and depth buffers that sprites are composited into.
//
// Attaching a camera makes it the active view of its scene; with several
// cameras the last one attached wins.
type Camera struct {
	ComponentBase

	// ClearColor fills the color buffer at the start of every Render.
	ClearColor color.NRGBA

	view  *image.NRGBA
	depth []float64
	out   []byte

	followTarget EntityID
	following    bool
	followOffset Vector3
	followLerp   float64

	scrollTween *scrollAnim
}

// NewCamera returns a camera with a transparent black clear color.
func NewCamera() *Camera {
	c := &Camera{}
	c.resize(defaultViewWidth, defaultViewHeight)
	return c
}

// Kind implements Component.
func (c *Camera) Kind() Kind { return KindCamera }

// Awake makes the camera the active view of its scene.
func (c *Camera) Awake() {
	if s := c.Scene(); s != nil {
		s.SetView(c)
	}
}

// Position returns the camera's world position.
func (c *Camera) Position() Vector3 {
	if t := c.Transform(); t != nil {
		return t.Position()
	}
	return Vector3{}
}

// --- Coordinate mapping ---

// WorldToView subtracts the camera position.
func (c *Camera) WorldToView(pos Vector3) Vector3 {
	return pos.Sub(c.Position())
}

// ViewToWorld adds the camera position.
func (c *Camera) ViewToWorld(pos Vector3) Vector3 {
	return pos.Add(c.Position())
}

// WorldToScreen maps world space to screen pixels of the scene surface.
func (c *Camera) WorldToScreen(pos Vector3) (Vector3, error) {
	s := c.Scene()
	if s == nil {
		return Vector3{}, ErrNoSurface
	}
	return s.ViewToScreen(c.WorldToView(pos))
}

// ScreenToWorld maps screen pixels of the scene surface to world space.
func (c *Camera) ScreenToWorld(pos Vector3) (Vector3, error) {
	s := c.Scene()
	if s == nil {
		return Vector3{}, ErrNoSurface
	}
	v, err := s.ScreenToView(pos)
	if err != nil {
		return Vector3{}, err
	}
	return c.ViewToWorld(v), nil
}

// --- Follow and scroll ---

// Follow makes the camera track obj's world x,y plus offset. A lerp of 1
// snaps immediately; lower values give smoother following.
func (c *Camera) Follow(obj *GameObject, offset Vector3, lerp float64) {
	if obj == nil {
		c.Unfollow()
		return
	}
	c.followTarget = obj.ID()
	c.following = true
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.following = false
}

// ScrollTo animates the camera to the world x,y of target over duration
// seconds. A nil easing function scrolls linearly.
func (c *Camera) ScrollTo(target Vector3, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	p := c.Position()
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(p.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(p.Y), float32(target.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances follow and scroll animation.
func (c *Camera) Update() {
	t := c.Transform()
	s := c.Scene()
	if t == nil || s == nil {
		return
	}
	if !c.following && c.scrollTween == nil {
		return
	}
	pos := t.Position()

	if c.following {
		if target := s.Object(c.followTarget); target != nil {
			goal := target.Transform().Position().Add(c.followOffset)
			pos.X += (goal.X - pos.X) * c.followLerp
			pos.Y += (goal.Y - pos.Y) * c.followLerp
		} else {
			c.following = false
		}
	}

	if c.scrollTween != nil {
		dt := float32(s.Clock().DeltaTime())
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			pos.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			pos.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	t.SetPosition(pos)
}

// --- Compositing ---

// Buffer returns the color buffer. It is recreated when the surface size
// changes, so do not hold on to it across renders.
func (c *Camera) Buffer() *image.NRGBA {
	return c.view
}

// Depth returns the depth stored at buffer pixel (x, y), or -Inf outside
// the buffer.
func (c *Camera) Depth(x, y int) float64 {
	w, h := c.view.Rect.Dx(), c.view.Rect.Dy()
	if x < 0 || y < 0 || x >= w || y >= h {
		return math.Inf(-1)
	}
	return c.depth[y*w+x]
}

// Render resizes the buffers to the surface, clears them, draws every
// Drawable in order and writes the result to surface.
func (c *Camera) Render(surface Surface, components []Component) {
	w, h := surfaceSize(surface)
	if w != c.view.Rect.Dx() || h != c.view.Rect.Dy() {
		c.resize(w, h)
	}
	c.Clear()
	for _, comp := range components {
		if d, ok := comp.(Drawable); ok {
			d.Draw()
		}
	}
	c.present(surface)
}

// Clear fills the color buffer with ClearColor and the depth buffer with -Inf.
func (c *Camera) Clear() {
	fill(c.view, c.ClearColor)
	inf := math.Inf(-1)
	for i := range c.depth {
		c.depth[i] = inf
	}
}

// Show composites img so that its centre lands on the world position pos.
// A pixel is written only where the image alpha is non-zero and pos.Z (in
// view space) is strictly greater than the stored depth, so at equal depth
// the first drawn pixel stays. Written pixels are alpha-blended over the
// buffer and take pos.Z as their depth.
func (c *Camera) Show(img *image.NRGBA, pos Vector3) {
	if img == nil {
		return
	}
	sp, err := c.WorldToScreen(pos)
	if err != nil {
		return
	}
	iw, ih := img.Rect.Dx(), img.Rect.Dy()
	vw, vh := c.view.Rect.Dx(), c.view.Rect.Dy()
	sp = sp.Sub(Vector3{X: float64(iw) / 2, Y: float64(ih) / 2})

	x0 := int(clamp(sp.X, 0, float64(vw)))
	x1 := int(clamp(sp.X+float64(iw), 0, float64(vw)))
	y0 := int(clamp(sp.Y, 0, float64(vh)))
	y1 := int(clamp(sp.Y+float64(ih), 0, float64(vh)))
	ox, oy := int(sp.X), int(sp.Y)
	z := sp.Z

	for y := y0; y < y1; y++ {
		sy := y - oy
		if sy < 0 || sy >= ih {
			continue
		}
		for x := x0; x < x1; x++ {
			sx := x - ox
			if sx < 0 || sx >= iw {
				continue
			}
			si := img.PixOffset(img.Rect.Min.X+sx, img.Rect.Min.Y+sy)
			src := img.Pix[si : si+4 : si+4]
			if src[3] == 0 {
				continue
			}
			di := y*vw + x
			if !(z > c.depth[di]) {
				continue
			}
			c.depth[di] = z
			a := float64(src[3]) / 255
			dst := c.view.Pix[di*4 : di*4+4 : di*4+4]
			dst[0] = toByte(a*float64(src[0]) + (1-a)*float64(dst[0]))
			dst[1] = toByte(a*float64(src[1]) + (1-a)*float64(dst[1]))
			dst[2] = toByte(a*float64(src[2]) + (1-a)*float64(dst[2]))
			dst[3] = toByte(a*255 + (1-a)*float64(dst[3]))
		}
	}
}

// resize recreates both buffers wholesale; nothing is carried over.
func (c *Camera) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.view = image.NewNRGBA(image.Rect(0, 0, w, h))
	c.depth = make([]float64, w*h)
	c.out = make([]byte, 4*w*h)
}

// present writes the color buffer to surface as opaque pixels.
func (c *Camera) present(surface Surface) {
	pix := c.view.Pix
	out := c.out
	for i := 0; i+3 < len(pix); i += 4 {
		out[i] = pix[i]
		out[i+1] = pix[i+1]
		out[i+2] = pix[i+2]
		out[i+3] = 0xff
	}
	surface.WritePixels(out)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

// toByte truncates v to a channel value, saturating at the ends.
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
