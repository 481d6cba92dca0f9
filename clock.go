package thicket

import "time"

// defaultFirstFixed is the fixed-tick threshold of a clock that was never
// started.
const defaultFirstFixed = 0.01

var processStart = time.Now()

// monotonicSeconds returns seconds since process start on the monotonic clock.
func monotonicSeconds() float64 {
	return time.Since(processStart).Seconds()
}

// Clock tracks frame delta time and fires fixed-step ticks.
//
// Update reports a fixed tick at most once per call. When a frame runs long
// the missed fixed steps are dropped rather than queued: the threshold only
// advances by one FixedScale per fired tick.
type Clock struct {
	// FixedScale is the fixed-step interval in seconds.
	FixedScale float64

	lastUpdate      float64
	nextFixedUpdate float64
	deltaTime       float64
	now             func() float64
}

// NewClock returns a clock on the process monotonic time source.
func NewClock() *Clock {
	return NewClockWithSource(monotonicSeconds)
}

// NewClockWithSource returns a clock reading seconds from now. Tests use it
// to drive time by hand.
func NewClockWithSource(now func() float64) *Clock {
	return &Clock{nextFixedUpdate: defaultFirstFixed, now: now}
}

// DeltaTime returns the seconds elapsed between the last two Update calls.
func (c *Clock) DeltaTime() float64 { return c.deltaTime }

// LastUpdate returns the time of the last Start or Update, in seconds.
func (c *Clock) LastUpdate() float64 { return c.lastUpdate }

// Start resets the clock to now and schedules the first fixed tick one
// FixedScale later.
func (c *Clock) Start() {
	c.lastUpdate = c.now()
	c.nextFixedUpdate = c.lastUpdate + c.FixedScale
}

// Update measures the frame delta and reports whether a fixed tick is due.
func (c *Clock) Update() bool {
	now := c.now()
	c.deltaTime = now - c.lastUpdate
	c.lastUpdate = now
	if now >= c.nextFixedUpdate {
		c.nextFixedUpdate += c.FixedScale
		return true
	}
	return false
}
