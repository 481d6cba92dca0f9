package thicket

import "testing"

func TestClockDeltaTime(t *testing.T) {
	now := 1.0
	c := NewClockWithSource(func() float64 { return now })
	c.FixedScale = 0.25
	c.Start()
	if c.LastUpdate() != 1 {
		t.Errorf("LastUpdate = %v, want 1", c.LastUpdate())
	}

	now = 1.125
	c.Update()
	assertNear(t, "dt", c.DeltaTime(), 0.125)
	now = 1.5
	c.Update()
	assertNear(t, "dt", c.DeltaTime(), 0.375)
	assertNear(t, "last", c.LastUpdate(), 1.5)
}

func TestClockFixedTicks(t *testing.T) {
	now := 1.0
	c := NewClockWithSource(func() float64 { return now })
	c.FixedScale = 0.25
	c.Start()

	// A long frame fires a single tick and the threshold advances by one
	// step, so the clock catches up one tick per Update.
	steps := []struct {
		at   float64
		want bool
	}{
		{1.125, false},
		{1.25, true},
		{1.375, false},
		{2.0, true},
		{2.0625, true},
		{2.0625, true},
		{2.125, false},
	}
	for i, st := range steps {
		now = st.at
		if got := c.Update(); got != st.want {
			t.Errorf("step %d at %v: fixed = %v, want %v", i, st.at, got, st.want)
		}
	}
}

func TestClockUnstarted(t *testing.T) {
	now := 0.0
	c := NewClockWithSource(func() float64 { return now })
	c.FixedScale = 1
	now = 0.005
	if c.Update() {
		t.Error("fixed tick before the default threshold")
	}
	now = 0.01
	if !c.Update() {
		t.Error("unstarted clock should tick at 0.01")
	}
}

func TestClockMonotonicSource(t *testing.T) {
	c := NewClock()
	c.Start()
	c.Update()
	if c.DeltaTime() < 0 {
		t.Errorf("negative delta %v", c.DeltaTime())
	}
}
