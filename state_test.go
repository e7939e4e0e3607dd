package tinsel

import (
	"math/rand/v2"
	"testing"
)

func seededMachine(photos int) *Machine {
	m := NewMachine(photos)
	m.SetRand(rand.New(rand.NewPCG(1, 2)))
	return m
}

func TestMachineTransitionTable(t *testing.T) {
	tests := []struct {
		from    AppState
		g       Gesture
		want    AppState
		changed bool
	}{
		{StateTree, GestureNone, StateTree, false},
		{StateTree, GestureFist, StateTree, false},
		{StateTree, GestureOpen, StateGalaxy, true},
		{StateTree, GesturePinch, StateTree, false},

		{StateGalaxy, GestureNone, StateGalaxy, false},
		{StateGalaxy, GestureFist, StateTree, true},
		{StateGalaxy, GestureOpen, StateGalaxy, false},
		{StateGalaxy, GesturePinch, StateFocus, true},

		{StateFocus, GestureNone, StateFocus, false},
		{StateFocus, GestureFist, StateTree, true},
		{StateFocus, GestureOpen, StateGalaxy, true},
		{StateFocus, GesturePinch, StateGalaxy, true},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"+"+tt.g.String(), func(t *testing.T) {
			m := seededMachine(20)
			switch tt.from {
			case StateGalaxy:
				m.Apply(GestureOpen)
			case StateFocus:
				m.Apply(GestureOpen)
				m.Apply(GesturePinch)
			}
			if m.State() != tt.from {
				t.Fatalf("setup: state = %v, want %v", m.State(), tt.from)
			}

			changed := m.Apply(tt.g)
			if changed != tt.changed {
				t.Errorf("Apply changed = %v, want %v", changed, tt.changed)
			}
			if m.State() != tt.want {
				t.Errorf("state = %v, want %v", m.State(), tt.want)
			}
			if m.State() != StateFocus && m.FocusedPhoto() != NoPhoto {
				t.Errorf("focused photo = %d outside focus", m.FocusedPhoto())
			}
		})
	}
}

func TestMachineFocusPicksAmongFirstTwelve(t *testing.T) {
	m := seededMachine(40)
	for i := 0; i < 200; i++ {
		m.Apply(GestureOpen)
		m.Apply(GesturePinch)
		if m.State() != StateFocus {
			t.Fatalf("state = %v, want focus", m.State())
		}
		if p := m.FocusedPhoto(); p < 0 || p >= MaxFocusCandidates {
			t.Fatalf("focused photo %d outside [0, %d)", p, MaxFocusCandidates)
		}
	}
}

func TestMachineFocusFewPhotos(t *testing.T) {
	m := seededMachine(3)
	for i := 0; i < 50; i++ {
		m.Apply(GestureOpen)
		m.Apply(GesturePinch)
		if p := m.FocusedPhoto(); p < 0 || p >= 3 {
			t.Fatalf("focused photo %d outside [0, 3)", p)
		}
	}
}

func TestMachineFocusNoPhotos(t *testing.T) {
	m := seededMachine(0)
	m.Apply(GestureOpen)
	if !m.Apply(GesturePinch) {
		t.Fatal("pinch in galaxy should change state with no photos")
	}
	if m.State() != StateFocus || m.FocusedPhoto() != NoPhoto {
		t.Errorf("state = %v photo = %d, want focus with NoPhoto", m.State(), m.FocusedPhoto())
	}
}

func TestMachineScenario(t *testing.T) {
	m := seededMachine(20)
	var changes []Event
	m.OnChange(func(e Event) { changes = append(changes, e) })

	steps := []struct {
		g    Gesture
		want AppState
	}{
		{GestureOpen, StateGalaxy},
		{GesturePinch, StateFocus},
		{GesturePinch, StateGalaxy},
		{GestureFist, StateTree},
		{GesturePinch, StateTree},
	}
	for i, st := range steps {
		m.Apply(st.g)
		if m.State() != st.want {
			t.Fatalf("step %d (%v): state = %v, want %v", i, st.g, m.State(), st.want)
		}
	}
	if len(changes) != 4 {
		t.Fatalf("change events = %d, want 4", len(changes))
	}
	if changes[1].Prev != StateGalaxy || changes[1].State != StateFocus || changes[1].FocusedPhoto == NoPhoto {
		t.Errorf("focus event = %+v", changes[1])
	}
	for _, e := range changes {
		if e.Type != EventStateChange {
			t.Errorf("event type = %v", e.Type)
		}
	}
}

func TestMachineShortcut(t *testing.T) {
	m := seededMachine(5)
	m.Shortcut()
	if m.State() != StateGalaxy {
		t.Fatalf("tree shortcut -> %v, want galaxy", m.State())
	}
	m.Shortcut()
	if m.State() != StateTree {
		t.Fatalf("galaxy shortcut -> %v, want tree", m.State())
	}
	m.Apply(GestureOpen)
	m.Apply(GesturePinch)
	m.Shortcut()
	if m.State() != StateGalaxy || m.FocusedPhoto() != NoPhoto {
		t.Errorf("focus shortcut -> %v photo %d, want galaxy", m.State(), m.FocusedPhoto())
	}
}

func TestMachineOnChangeRemove(t *testing.T) {
	m := seededMachine(5)
	count := 0
	h := m.OnChange(func(Event) { count++ })
	m.Apply(GestureOpen)
	h.Remove()
	m.Apply(GestureFist)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestMachineNegativePhotoCount(t *testing.T) {
	m := seededMachine(-4)
	m.Apply(GestureOpen)
	m.Apply(GesturePinch)
	if m.FocusedPhoto() != NoPhoto {
		t.Errorf("focused photo = %d, want NoPhoto", m.FocusedPhoto())
	}
}
