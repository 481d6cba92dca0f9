package thicket

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easings maps the names accepted by EaseByName to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-expo":       ease.InExpo,
	"out-expo":      ease.OutExpo,
	"in-out-expo":   ease.InOutExpo,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"out-bounce":    ease.OutBounce,
	"in-bounce":     ease.InBounce,
	"out-elastic":   ease.OutElastic,
	"in-elastic":    ease.InElastic,
	"in-out-bounce": ease.InOutBounce,
}

// EaseByName resolves an easing name such as "linear" or "in-out-quad".
// The empty name is linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Tween moves its owner's local position to To over Duration seconds. The
// start point is the local position at the first update. With Loop set the
// tween runs back and forth forever; otherwise it disables itself when it
// arrives and calls OnDone.
type Tween struct {
	Behaviour

	To       Vector3
	Duration float32
	Ease     ease.TweenFunc
	Loop     bool
	OnDone   func()

	from    Vector3
	tweens  [3]*gween.Tween
	running bool
	done    bool
}

// NewTween returns a tween to the local position to.
func NewTween(to Vector3, duration float32, fn ease.TweenFunc) *Tween {
	return &Tween{To: to, Duration: duration, Ease: fn}
}

// Kind implements Component.
func (tw *Tween) Kind() Kind { return KindTween }

// Done reports whether a non-looping tween has arrived.
func (tw *Tween) Done() bool {
	return tw.done
}

// Restart starts again from the current local position.
func (tw *Tween) Restart() {
	tw.running = false
	tw.done = false
	tw.SetEnabled(true)
}

func (tw *Tween) begin(from, to Vector3) {
	fn := tw.Ease
	if fn == nil {
		fn = ease.Linear
	}
	tw.from = from
	tw.tweens[0] = gween.New(float32(from.X), float32(to.X), tw.Duration, fn)
	tw.tweens[1] = gween.New(float32(from.Y), float32(to.Y), tw.Duration, fn)
	tw.tweens[2] = gween.New(float32(from.Z), float32(to.Z), tw.Duration, fn)
	tw.running = true
}

// Update advances the tween by the scene clock's delta time.
func (tw *Tween) Update() {
	t, s := tw.Transform(), tw.Scene()
	if t == nil || s == nil {
		return
	}
	if !tw.running {
		tw.begin(t.LocalPosition, tw.To)
	}

	dt := float32(s.Clock().DeltaTime())
	var vals [3]float32
	done := true
	for i, g := range tw.tweens {
		v, finished := g.Update(dt)
		vals[i] = v
		done = done && finished
	}
	t.LocalPosition = Vector3{X: float64(vals[0]), Y: float64(vals[1]), Z: float64(vals[2])}
	if !done {
		return
	}

	if tw.Loop {
		// Head back to where this leg started.
		tw.To, tw.from = tw.from, tw.To
		tw.begin(tw.from, tw.To)
		return
	}
	tw.running = false
	tw.done = true
	tw.SetEnabled(false)
	if tw.OnDone != nil {
		tw.OnDone()
	}
}
