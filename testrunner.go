package tinsel

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Spread float64 `json:"spread,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Zoom   float64 `json:"zoom,omitempty"`
	State  string  `json:"state,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"click": true, "doubleclick": true, "drag": true, "chord": true,
	"pinch": true, "tap": true, "wait": true, "zoom": true, "expect": true,
}

// TestRunner sequences injected pointer input and state assertions across
// frames. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "expect" {
			if _, ok := parseAppState(st.State); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown state %q", i, st.State)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of expect steps that did not hold.
func (r *TestRunner) Failures() []string {
	return r.failures
}

func parseAppState(name string) (AppState, bool) {
	for _, st := range []AppState{StateTree, StateGalaxy, StateFocus} {
		if strings.EqualFold(name, st.String()) {
			return st, true
		}
	}
	return 0, false
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if s.injected.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	in := s.injected
	switch st.Action {
	case "click":
		in.Click(st.X, st.Y)
	case "doubleclick":
		in.DoubleClick(st.X, st.Y)
	case "drag":
		in.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "chord":
		in.Chord(st.X, st.Y)
	case "pinch":
		spread := st.Spread
		if spread == 0 {
			spread = 2 * s.cfg.Pointer.PinchSpread
		}
		in.TwoFingerPinch(st.X, st.Y, spread, 0, max(st.Frames, 2))
	case "tap":
		in.Tap(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
			in.Skip(st.Frames)
		}
	case "zoom":
		s.SetZoom(st.Zoom)
	case "expect":
		want, _ := parseAppState(st.State)
		if got := s.machine.State(); got != want {
			msg := fmt.Sprintf("step %d: state = %s, want %s", r.cursor-1, got, want)
			if st.Label != "" {
				msg = st.Label + ": " + msg
			}
			r.failures = append(r.failures, msg)
			s.logger.Warn("test script expectation failed", "detail", msg)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
