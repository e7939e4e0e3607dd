package tinsel

import (
	"math"
	"time"
)

// PointerConfig tunes the mouse and touch gesture emulation.
type PointerConfig struct {
	// DoubleClickWindow is the longest gap between two primary presses (or
	// taps) that still counts as a double action.
	DoubleClickWindow Duration `toml:"double_click_window" env:"DOUBLE_CLICK_WINDOW"`
	// PinchSpread is how far, in pixels, two touches must move apart or
	// together from their starting distance to count as a pinch.
	PinchSpread float64 `toml:"pinch_spread" env:"PINCH_SPREAD"`
	// MouseSensitivity and TouchSensitivity convert drag pixels to radians.
	MouseSensitivity float64 `toml:"mouse_sensitivity" env:"MOUSE_SENSITIVITY"`
	TouchSensitivity float64 `toml:"touch_sensitivity" env:"TOUCH_SENSITIVITY"`
	// DragDeadZone is the movement in pixels before a press becomes a drag.
	DragDeadZone float64 `toml:"drag_dead_zone" env:"DRAG_DEAD_ZONE"`
}

// DefaultPointerConfig returns the default pointer tuning.
func DefaultPointerConfig() PointerConfig {
	return PointerConfig{
		DoubleClickWindow: Duration{300 * time.Millisecond},
		PinchSpread:       15,
		MouseSensitivity:  0.002,
		TouchSensitivity:  0.004,
		DragDeadZone:      4,
	}
}

// MouseSample is the mouse state for one frame, in screen pixels.
type MouseSample struct {
	X, Y  float64
	Left  bool
	Right bool
}

// TouchPoint is one active touch for one frame, in screen pixels.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// PointerFrame is one frame of raw pointer input.
type PointerFrame struct {
	// At is a monotonic timestamp used for double-click timing.
	At      time.Duration
	Mouse   MouseSample
	Touches []TouchPoint
}

// PointerFeed produces raw pointer frames. Poll returns false when no new
// frame is available.
type PointerFeed interface {
	Poll() (PointerFrame, bool)
}

// StateReader exposes the current application state to input sources.
type StateReader interface {
	State() AppState
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	id       int
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

// --- Two-finger pinch state ---

type spreadState struct {
	active      bool
	initialDist float64
	fired       bool
}

// PointerSource emulates the gesture vocabulary from mouse and touch input.
// It only reads input while a feed is attached.
type PointerSource struct {
	cfg   PointerConfig
	state StateReader
	feed  PointerFeed

	register GestureRegister
	pending  []Event

	mouse      pointerState
	touch      pointerState
	spread     spreadState
	chord      bool
	lastClick  time.Duration
	hasClick   bool
	lastTap    time.Duration
	hasTap     bool
	touchCount int
}

// NewPointerSource creates a detached pointer source.
func NewPointerSource(cfg PointerConfig, state StateReader) *PointerSource {
	return &PointerSource{cfg: cfg, state: state}
}

// Attach starts reading frames from feed.
func (p *PointerSource) Attach(feed PointerFeed) {
	p.feed = feed
}

// Detach stops reading input and forgets all per-pointer state, so nothing
// carries over to the next attach.
func (p *PointerSource) Detach() {
	p.feed = nil
	p.mouse = pointerState{}
	p.touch = pointerState{}
	p.spread = spreadState{}
	p.chord = false
	p.hasClick = false
	p.hasTap = false
	p.touchCount = 0
	p.register.Reset()
	p.pending = p.pending[:0]
}

// Attached reports whether a feed is attached.
func (p *PointerSource) Attached() bool {
	return p.feed != nil
}

// Gesture returns the simulated gesture most recently emitted.
func (p *PointerSource) Gesture() Gesture {
	return p.register.Last()
}

// Update polls the attached feed once and processes the frame, if any.
func (p *PointerSource) Update() {
	if p.feed == nil {
		return
	}
	frame, ok := p.feed.Poll()
	if !ok {
		return
	}
	p.process(frame)
}

// Drain appends pending events to dst and clears the queue.
func (p *PointerSource) Drain(dst []Event) []Event {
	dst = append(dst, p.pending...)
	p.pending = p.pending[:0]
	return dst
}

func (p *PointerSource) emit(e Event) {
	e.Source = SourcePointer
	p.pending = append(p.pending, e)
}

func (p *PointerSource) emitGesture(g Gesture) {
	if g, ok := p.register.Observe(g); ok {
		p.emit(Event{Type: EventGestureChange, Gesture: g})
	}
}

// emitPinch fires a pinch edge for a new engagement even if the previous
// engagement's pinch is still the last emitted gesture.
func (p *PointerSource) emitPinch() {
	if p.register.Last() == GesturePinch {
		p.register.Reset()
	}
	p.emitGesture(GesturePinch)
}

func (p *PointerSource) focused() bool {
	return p.state != nil && p.state.State() == StateFocus
}

// process runs the mouse and touch state machines for one frame.
func (p *PointerSource) process(f PointerFrame) {
	p.processMouse(f)
	p.processTouches(f)

	if !f.Mouse.Left && !f.Mouse.Right && len(f.Touches) == 0 {
		p.emitGesture(GestureNone)
	}
}

// processMouse handles chorded presses, double-clicks and primary drags.
func (p *PointerSource) processMouse(f PointerFrame) {
	m := f.Mouse
	ps := &p.mouse

	if m.Left && m.Right {
		if !p.chord {
			p.chord = true
			ps.dragging = false
			p.emitPinch()
		}
		ps.down = true
		ps.lastX, ps.lastY = m.X, m.Y
		return
	}
	if p.chord {
		// Re-arms only once both buttons are up.
		if m.Left || m.Right {
			ps.lastX, ps.lastY = m.X, m.Y
			return
		}
		p.chord = false
	}

	switch {
	case m.Left && !ps.down:
		// Just pressed.
		*ps = pointerState{down: true, startX: m.X, startY: m.Y, lastX: m.X, lastY: m.Y}
		p.hasClick, p.lastClick = p.doublePress(f.At, p.hasClick, p.lastClick)
	case m.Left && ps.down:
		p.drag(ps, m.X, m.Y, p.cfg.MouseSensitivity)
	case !m.Left:
		ps.down = false
		ps.dragging = false
	}
}

// processTouches handles two-finger pinches, double-taps and one-finger drags.
func (p *PointerSource) processTouches(f PointerFrame) {
	n := len(f.Touches)
	prev := p.touchCount
	p.touchCount = n
	ps := &p.touch

	if n == 2 {
		a, b := f.Touches[0], f.Touches[1]
		dist := math.Hypot(b.X-a.X, b.Y-a.Y)
		if !p.spread.active {
			p.spread = spreadState{active: true, initialDist: dist}
		} else if !p.spread.fired && math.Abs(dist-p.spread.initialDist) > p.cfg.PinchSpread {
			p.spread.fired = true
			p.emitPinch()
		}
		// Suppress the one-finger drag while two fingers are down.
		ps.dragging = false
		ps.down = false
		return
	}
	p.spread = spreadState{}

	if n != 1 {
		ps.down = false
		ps.dragging = false
		return
	}

	t := f.Touches[0]
	if !ps.down || ps.id != t.ID {
		*ps = pointerState{down: true, id: t.ID, startX: t.X, startY: t.Y, lastX: t.X, lastY: t.Y}
		if prev == 0 {
			p.hasTap, p.lastTap = p.doublePress(f.At, p.hasTap, p.lastTap)
		}
		return
	}
	p.drag(ps, t.X, t.Y, p.cfg.TouchSensitivity)
}

// doublePress records a primary press at `at` and emits the view shortcut
// when it follows the previous press within the double-click window. The
// returned pair replaces the caller's (has, last) record.
func (p *PointerSource) doublePress(at time.Duration, has bool, last time.Duration) (bool, time.Duration) {
	if has && at-last <= p.cfg.DoubleClickWindow.Duration {
		p.emit(Event{Type: EventViewShortcut})
		return false, 0
	}
	return true, at
}

// drag advances a held pointer. Past the dead zone, frame-to-frame movement
// becomes an orbit delta and the simulated gesture is open. Dragging does
// nothing while focused.
func (p *PointerSource) drag(ps *pointerState, x, y, sensitivity float64) {
	if x == ps.lastX && y == ps.lastY {
		return
	}
	if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) > p.cfg.DragDeadZone {
		ps.dragging = true
	}
	if ps.dragging && !p.focused() {
		p.emit(Event{
			Type:       EventOrbitDelta,
			DeltaPitch: (y - ps.lastY) * sensitivity,
			DeltaYaw:   -(x - ps.lastX) * sensitivity,
		})
		p.emitGesture(GestureOpen)
	}
	ps.lastX, ps.lastY = x, y
}
