package tinsel

import "math/rand/v2"

const (
	// MaxFocusCandidates bounds the photos a pinch can pick from.
	MaxFocusCandidates = 12
	// NoPhoto is the focused-photo value when nothing is selected.
	NoPhoto = -1
)

// Machine is the application state machine. It is mutated only through Apply
// (gesture edges) and Shortcut (pointer double action); everything else reads.
type Machine struct {
	state      AppState
	focused    int
	photoCount int
	rng        *rand.Rand
	handlers   handlerRegistry
}

// NewMachine creates a Machine in StateTree with no focused photo.
func NewMachine(photoCount int) *Machine {
	return &Machine{
		state:      StateTree,
		focused:    NoPhoto,
		photoCount: max(photoCount, 0),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetRand replaces the random source used to pick focused photos.
func (m *Machine) SetRand(r *rand.Rand) {
	m.rng = r
}

// SetPhotoCount updates the number of photos available for focus.
func (m *Machine) SetPhotoCount(n int) {
	m.photoCount = max(n, 0)
}

// State returns the current application state.
func (m *Machine) State() AppState {
	return m.state
}

// FocusedPhoto returns the focused photo index, or NoPhoto.
func (m *Machine) FocusedPhoto() int {
	return m.focused
}

// OnChange registers a callback fired after every state or selection change.
// The event has Type EventStateChange.
func (m *Machine) OnChange(fn func(Event)) CallbackHandle {
	return m.handlers.add(fn)
}

// Apply runs one gesture edge through the transition table and reports
// whether the state changed.
//
//	any    + fist  -> tree    (clear selection)
//	any    + open  -> galaxy  (clear selection)
//	galaxy + pinch -> focus   (random photo among the first 12)
//	focus  + pinch -> galaxy  (clear selection)
//
// Every other combination is a no-op.
func (m *Machine) Apply(g Gesture) bool {
	switch g {
	case GestureFist:
		return m.transition(StateTree, NoPhoto)
	case GestureOpen:
		return m.transition(StateGalaxy, NoPhoto)
	case GesturePinch:
		switch m.state {
		case StateGalaxy:
			return m.transition(StateFocus, m.pickPhoto())
		case StateFocus:
			return m.transition(StateGalaxy, NoPhoto)
		}
	}
	return false
}

// Shortcut applies the pointer double action: tree and galaxy swap, focus
// falls back to galaxy. It bypasses the gesture table.
func (m *Machine) Shortcut() bool {
	if m.state == StateGalaxy {
		return m.transition(StateTree, NoPhoto)
	}
	return m.transition(StateGalaxy, NoPhoto)
}

func (m *Machine) pickPhoto() int {
	n := min(m.photoCount, MaxFocusCandidates)
	if n == 0 {
		return NoPhoto
	}
	return m.rng.IntN(n)
}

func (m *Machine) transition(next AppState, focused int) bool {
	prev := m.state
	if next == prev && focused == m.focused {
		return false
	}
	m.state = next
	m.focused = focused
	m.handlers.fire(Event{
		Type:         EventStateChange,
		State:        next,
		Prev:         prev,
		FocusedPhoto: focused,
	})
	return next != prev
}
