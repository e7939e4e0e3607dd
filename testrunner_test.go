package tinsel

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "drag", "fromX": 100, "fromY": 100, "toX": 200, "toY": 100, "frames": 6},
			{"action": "wait", "frames": 3},
			{"action": "expect", "state": "galaxy", "label": "after-drag"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "drag" || runner.steps[0].ToX != 200 || runner.steps[0].Frames != 6 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[2].State != "galaxy" || runner.steps[2].Label != "after-drag" {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot"}]}`))
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLoadTestScript_UnknownState(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "expect", "state": "space"}]}`))
	if err == nil {
		t.Error("expected error for unknown state")
	}
}

func runScript(t *testing.T, s *Scene, script string) *TestRunner {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; i < 500 && !runner.Done(); i++ {
		s.Update(frameDT)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	return runner
}

func TestRunnerFullScenario(t *testing.T) {
	s := newTestScene(t, nil)
	runner := runScript(t, s, `{"steps": [
		{"action": "expect", "state": "tree"},
		{"action": "drag", "fromX": 100, "fromY": 100, "toX": 200, "toY": 100, "frames": 6},
		{"action": "expect", "state": "galaxy"},
		{"action": "chord", "x": 10, "y": 10},
		{"action": "expect", "state": "focus"},
		{"action": "pinch", "x": 300, "y": 300},
		{"action": "expect", "state": "galaxy"},
		{"action": "wait", "frames": 30},
		{"action": "doubleclick", "x": 5, "y": 5},
		{"action": "expect", "state": "tree"},
		{"action": "zoom", "zoom": 4},
		{"action": "tap", "x": 1, "y": 1}
	]}`)

	if f := runner.Failures(); len(f) != 0 {
		t.Errorf("failures: %v", f)
	}
	if s.Zoom() != 4 {
		t.Errorf("zoom = %v, want 4", s.Zoom())
	}
}

func TestRunnerRecordsFailures(t *testing.T) {
	s := newTestScene(t, nil)
	runner := runScript(t, s, `{"steps": [
		{"action": "expect", "state": "focus", "label": "wrong"},
		{"action": "expect", "state": "tree"}
	]}`)
	f := runner.Failures()
	if len(f) != 1 {
		t.Fatalf("failures = %v, want 1", f)
	}
	if f[0] != "wrong: step 0: state = tree, want focus" {
		t.Errorf("failure message = %q", f[0])
	}
}

func TestRunnerWait(t *testing.T) {
	s := newTestScene(t, nil)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; i < 3; i++ {
		if runner.Done() {
			t.Fatalf("done after %d frames", i)
		}
		s.Update(frameDT)
	}
	s.Update(frameDT)
	if !runner.Done() {
		t.Error("not done after wait")
	}
}
