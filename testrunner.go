package thicket

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences scripted input and screenshots across frames for
// automated testing. Attach to an Engine via SetTestRunner.
//
// Supported actions: "press" and "release" (key), "mouse" (x, y in screen
// pixels), "wait" (frames) and "screenshot" (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release":
			if st.Key == "" {
				return nil, fmt.Errorf("parse test script: step %d: %s needs a key", i, st.Action)
			}
		case "mouse", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Consecutive non-wait steps run in
// the same frame, so a press followed by a wait is seen as KeyDown.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++

		switch st.Action {
		case "press":
			e.Input.Press(st.Key)
		case "release":
			e.Input.Release(st.Key)
		case "mouse":
			e.Input.SetMousePosition(Vector3{X: st.X, Y: st.Y})
		case "screenshot":
			e.Scene.Screenshot(st.Label)
		case "wait":
			if st.Frames > 0 {
				// This frame counts as one.
				r.waitCount = st.Frames - 1
			}
			return
		}
	}
	r.done = true
}
