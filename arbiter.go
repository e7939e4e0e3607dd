package tinsel

import "log/slog"

// Arbiter decides which input source is authoritative and is the only writer
// of the application state and the orbit rotation. The hand source wins
// while it is tracking; otherwise the pointer source is attached to its feed.
// The inactive pointer source is detached, not merely ignored.
type Arbiter struct {
	machine *Machine
	pointer *PointerSource
	feed    PointerFeed
	hand    *HandSource
	logger  *slog.Logger

	active   Source
	orbit    OrbitRotation
	handPos  HandPosition
	handSeen bool

	handlers handlerRegistry
	buf      []Event
}

// NewArbiter creates an arbiter with the pointer source active and attached
// to feed. hand may be nil when no detector is available.
func NewArbiter(machine *Machine, pointer *PointerSource, feed PointerFeed, hand *HandSource, logger *slog.Logger) *Arbiter {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Arbiter{
		machine: machine,
		pointer: pointer,
		feed:    feed,
		hand:    hand,
		logger:  logger.With("component", "arbiter"),
		active:  SourcePointer,
	}
	pointer.Attach(feed)
	return a
}

// OnEvent registers a callback for every forwarded input event. State
// changes are reported by the Machine, not here.
func (a *Arbiter) OnEvent(fn func(Event)) CallbackHandle {
	return a.handlers.add(fn)
}

// Active returns the authoritative source.
func (a *Arbiter) Active() Source {
	return a.active
}

// Orbit returns the accumulated orbit rotation.
func (a *Arbiter) Orbit() OrbitRotation {
	return a.orbit
}

// Hand returns the latest hand position while the hand source is active.
func (a *Arbiter) Hand() (HandPosition, bool) {
	if a.active != SourceHand || !a.handSeen {
		return HandPosition{}, false
	}
	return a.handPos, true
}

// Gesture returns the active source's current gesture.
func (a *Arbiter) Gesture() Gesture {
	if a.active == SourceHand && a.hand != nil {
		return a.hand.Snapshot().Gesture
	}
	return a.pointer.Gesture()
}

// Update runs once per render frame: it drains the hand queue, settles which
// source is active, then polls the pointer source if it is the active one.
func (a *Arbiter) Update() {
	if a.hand != nil {
		a.buf = a.hand.Drain(a.buf[:0])
		for _, e := range a.buf {
			a.handle(e)
		}
		// Disable drops queued events, so trust the snapshot last.
		if tracking := a.hand.Snapshot().Tracking; tracking != (a.active == SourceHand) {
			a.activate(sourceFor(tracking))
		}
	}

	if a.active == SourcePointer {
		a.pointer.Update()
		a.buf = a.pointer.Drain(a.buf[:0])
		for _, e := range a.buf {
			a.handle(e)
		}
	}
}

func sourceFor(tracking bool) Source {
	if tracking {
		return SourceHand
	}
	return SourcePointer
}

// handle applies one event from either source. Events from a source that is
// not active are dropped, except the tracking change that makes it active.
func (a *Arbiter) handle(e Event) {
	if e.Type == EventTracking {
		a.activate(sourceFor(e.Tracking))
		a.handlers.fire(e)
		return
	}
	if e.Source != a.active {
		return
	}

	switch e.Type {
	case EventGestureChange:
		a.machine.Apply(e.Gesture)
	case EventViewShortcut:
		a.machine.Shortcut()
	case EventOrbitDelta:
		a.orbit = a.orbit.Add(e.DeltaPitch, e.DeltaYaw)
	case EventHandPosition:
		a.handPos = e.Hand
		a.handSeen = true
	}
	a.handlers.fire(e)
}

func (a *Arbiter) activate(s Source) {
	if s == a.active {
		return
	}
	if s == SourceHand {
		a.pointer.Detach()
	} else {
		a.pointer.Attach(a.feed)
		a.handSeen = false
	}
	a.active = s
	a.logger.Debug("input source switched", "source", s)
}
