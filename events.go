package tinsel

// EventType identifies a kind of input or state event.
type EventType uint8

const (
	EventGestureChange     EventType = iota // the active source's gesture changed
	EventOrbitDelta                         // the active source rotated the orbit
	EventHandPosition                       // a tracked hand moved (fires every hand frame)
	EventTracking                           // hand tracking started or stopped
	EventViewShortcut                       // pointer double-click / double-tap
	EventStateChange                        // the application state changed
	EventFocalPointReached                  // the ribbon climb arrived at the top
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventGestureChange:
		return "gesture"
	case EventOrbitDelta:
		return "orbit"
	case EventHandPosition:
		return "hand"
	case EventTracking:
		return "tracking"
	case EventViewShortcut:
		return "shortcut"
	case EventStateChange:
		return "state"
	case EventFocalPointReached:
		return "focal"
	default:
		return "unknown"
	}
}

// Event carries one unit of the unified event stream. Only the fields relevant
// to Type are set.
type Event struct {
	Type   EventType
	Source Source

	// EventGestureChange
	Gesture Gesture

	// EventStateChange
	State        AppState
	Prev         AppState
	FocusedPhoto int

	// EventOrbitDelta
	DeltaPitch float64
	DeltaYaw   float64

	// EventHandPosition
	Hand          HandPosition
	PinchDistance float64

	// EventTracking
	Tracking bool
}

// EventSink receives events forwarded by a Scene, e.g. to bridge them into
// an ECS world or a UI indicator.
type EventSink interface {
	EmitEvent(event Event)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(Event)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event Event) { f(event) }

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

func (r *handlerRegistry) add(fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.handlers = append(r.handlers, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r}
}

func (r *handlerRegistry) fire(e Event) {
	for _, h := range r.handlers {
		h.fn(e)
	}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}
