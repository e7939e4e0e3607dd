package tinsel

import (
	"context"
	"log/slog"
	"time"
)

// Scene is the top-level object that owns the state machine, both input
// sources, the arbiter and the camera controller. Call Update once per frame.
type Scene struct {
	cfg    Config
	logger *slog.Logger
	store  EventSink
	debug  bool

	machine  *Machine
	pointer  *PointerSource
	hand     *HandSource
	arbiter  *Arbiter
	camera   *CameraController
	injected *ScriptedPointerFeed

	handlers   handlerRegistry
	zoom       float64
	frame      uint64
	testRunner *TestRunner
}

// NewScene wires a scene from cfg. feed supplies live pointer frames and may
// be nil in headless use. open may be nil when no hand detector exists; the
// pointer source is then the only input. A nil logger uses slog.Default.
func NewScene(cfg Config, feed PointerFeed, open DetectorOpener, logger *slog.Logger) *Scene {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scene{
		cfg:      cfg,
		logger:   logger,
		debug:    cfg.Scene.Debug,
		machine:  NewMachine(cfg.Scene.PhotoCount),
		camera:   NewCameraController(cfg.Camera),
		injected: NewScriptedPointerFeed(),
	}
	s.pointer = NewPointerSource(cfg.Pointer, s.machine)
	if open != nil {
		s.hand = NewHandSource(open, cfg.Hand, logger)
	}
	s.arbiter = NewArbiter(s.machine, s.pointer, &priorityFeed{injected: s.injected, live: feed}, s.hand, logger)

	s.machine.OnChange(func(e Event) {
		s.logger.Info("state changed", "from", e.Prev, "to", e.State, "photo", e.FocusedPhoto)
		s.emit(e)
	})
	s.arbiter.OnEvent(func(e Event) {
		if e.Type == EventTracking {
			s.logger.Info("hand tracking", "tracking", e.Tracking)
		}
		s.emit(e)
	})
	return s
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config {
	return s.cfg
}

// Machine returns the application state machine.
func (s *Scene) Machine() *Machine {
	return s.machine
}

// Arbiter returns the input arbiter.
func (s *Scene) Arbiter() *Arbiter {
	return s.arbiter
}

// Camera returns the camera controller.
func (s *Scene) Camera() *CameraController {
	return s.camera
}

// HandSource returns the hand source, or nil when the scene has no detector.
func (s *Scene) HandSource() *HandSource {
	return s.hand
}

// Inject returns the feed whose queued frames take priority over live
// pointer input. Injected frames only reach the scene while the pointer
// source is active.
func (s *Scene) Inject() *ScriptedPointerFeed {
	return s.injected
}

// EnableHand starts hand tracking in the background. It is a no-op when the
// scene has no detector.
func (s *Scene) EnableHand(ctx context.Context) {
	if s.hand == nil {
		return
	}
	s.hand.Enable(ctx)
}

// DisableHand stops hand tracking and releases the detector. Input falls back
// to the pointer source on the next Update.
func (s *Scene) DisableHand() {
	if s.hand == nil {
		return
	}
	s.hand.Disable()
}

// SetEventSink forwards every event the scene emits to sink. Pass nil to
// stop forwarding.
func (s *Scene) SetEventSink(sink EventSink) {
	s.store = sink
}

// OnEvent registers a callback for every event the scene emits: input events
// from the active source, state changes and focal point arrivals.
func (s *Scene) OnEvent(fn func(Event)) CallbackHandle {
	return s.handlers.add(fn)
}

// SetDebugMode enables per-frame debug logging.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetPhotoCount updates how many photos focus can pick from.
func (s *Scene) SetPhotoCount(n int) {
	s.machine.SetPhotoCount(n)
}

// Zoom returns the raw zoom offset.
func (s *Scene) Zoom() float64 {
	return s.zoom
}

// SetZoom sets the raw zoom offset, clamped to the configured range. The
// camera eases toward it.
func (s *Scene) SetZoom(z float64) {
	s.zoom = Range{Min: s.cfg.Scene.ZoomMin, Max: s.cfg.Scene.ZoomMax}.Clamp(z)
}

// AddZoom adjusts the raw zoom offset by dz.
func (s *Scene) AddZoom(dz float64) {
	s.SetZoom(s.zoom + dz)
}

// Update advances one frame of dt seconds: test script, input arbitration,
// then the camera. A non-positive dt still processes input but leaves the
// camera untouched.
func (s *Scene) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.frame++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.arbiter.Update()

	hand, tracked := s.arbiter.Hand()
	frame := s.camera.Step(dt, CameraInput{
		State:       s.machine.State(),
		Orbit:       s.arbiter.Orbit(),
		Hand:        hand,
		HandTracked: tracked,
		Zoom:        s.zoom,
	})
	if frame.ReachedEdge {
		s.logger.Debug("focal point reached")
		s.emit(Event{Type: EventFocalPointReached, State: s.machine.State()})
	}

	if s.debug {
		s.debugLog(debugStats{frame: s.frame, elapsed: time.Since(t0), view: s.View()})
	}
}

// View is a read-only summary of the scene for rendering and HUDs.
type View struct {
	Camera       CameraFrame
	State        AppState
	FocusedPhoto int
	Gesture      Gesture
	Source       Source
	Tracking     bool
	Hand         HandPosition
	HandStatus   HandStatus
	Orbit        OrbitRotation
	T            float64
}

// View returns the current scene summary.
func (s *Scene) View() View {
	v := View{
		Camera:       s.camera.Frame(),
		State:        s.machine.State(),
		FocusedPhoto: s.machine.FocusedPhoto(),
		Gesture:      s.arbiter.Gesture(),
		Source:       s.arbiter.Active(),
		Orbit:        s.arbiter.Orbit(),
		T:            s.camera.Motion().T,
	}
	v.Hand, v.Tracking = s.arbiter.Hand()
	if s.hand != nil {
		v.HandStatus = s.hand.Snapshot().Status
	}
	return v
}

func (s *Scene) emit(e Event) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
	s.handlers.fire(e)
}
