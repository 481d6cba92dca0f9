package thicket

// KeyMotion is the per-key state machine: Idle → Down → Hold → Up → Idle.
type KeyMotion uint8

const (
	KeyIdle KeyMotion = iota // not pressed (absent from the table)
	KeyDown                  // pressed this frame
	KeyHold                  // pressed on an earlier frame and still held
	KeyUp                    // released this frame
)

func (k KeyMotion) String() string {
	switch k {
	case KeyIdle:
		return "idle"
	case KeyDown:
		return "down"
	case KeyHold:
		return "hold"
	case KeyUp:
		return "up"
	default:
		return "unknown"
	}
}

// Mouse button key names. Poll never produces MouseFn3, since ebiten reports
// only five buttons; test scripts and Input.Press may still use it.
const (
	MouseLeft   = "mouse-left"
	MouseMiddle = "mouse-middle"
	MouseRight  = "mouse-right"
	MouseFn1    = "mouse-fn1"
	MouseFn2    = "mouse-fn2"
	MouseFn3    = "mouse-fn3"
)

// Input holds the key-state table and the last known mouse position. It is
// mutated between frames by the host loop and read by scripts during a frame.
type Input struct {
	keys  map[string]KeyMotion
	mouse Vector3
}

// NewInput returns an empty input table.
func NewInput() *Input {
	return &Input{keys: make(map[string]KeyMotion)}
}

// BeginFrame ages the table before new host events arrive: keys released
// last frame are dropped and keys pressed last frame become held.
func (in *Input) BeginFrame() {
	for key, m := range in.keys {
		switch m {
		case KeyUp:
			delete(in.keys, key)
		case KeyDown:
			in.keys[key] = KeyHold
		}
	}
}

// Press records a key or button press event.
func (in *Input) Press(key string) {
	in.keys[key] = KeyDown
}

// Release records a key or button release event.
func (in *Input) Release(key string) {
	in.keys[key] = KeyUp
}

// SetMousePosition records the cursor position in screen coordinates.
func (in *Input) SetMousePosition(pos Vector3) {
	in.mouse = pos
}

// MousePosition returns the last recorded cursor position in screen
// coordinates.
func (in *Input) MousePosition() Vector3 {
	return in.mouse
}

// State returns the motion of key; unknown keys are idle.
func (in *Input) State(key string) KeyMotion {
	return in.keys[key]
}

// IsDown reports whether key was pressed this frame.
func (in *Input) IsDown(key string) bool { return in.keys[key] == KeyDown }

// IsHold reports whether key has been held since an earlier frame.
func (in *Input) IsHold(key string) bool { return in.keys[key] == KeyHold }

// IsUp reports whether key was released this frame.
func (in *Input) IsUp(key string) bool { return in.keys[key] == KeyUp }

// Reset clears every key state.
func (in *Input) Reset() {
	clear(in.keys)
}
