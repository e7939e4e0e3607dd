package tinsel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Detector is the hand landmark model behind a video capture. Detect blocks
// until the next frame has been analysed and returns nil landmarks when no
// hand is in view. Close releases the capture device.
type Detector interface {
	Detect(ctx context.Context) (Landmarks, error)
	Close() error
}

// DetectorOpener acquires the capture device and loads the model. It runs on
// the hand source's own goroutine, never on the render loop.
type DetectorOpener func(ctx context.Context) (Detector, error)

// HandStatus is the lifecycle of a HandSource.
type HandStatus uint8

const (
	HandIdle     HandStatus = iota // never enabled
	HandStarting                   // opening the detector
	HandRunning                    // processing frames
	HandFailed                     // open or detect failed; terminal until re-enabled
	HandStopped                    // disabled by the caller
)

// String returns the lower-case status name.
func (s HandStatus) String() string {
	switch s {
	case HandIdle:
		return "idle"
	case HandStarting:
		return "starting"
	case HandRunning:
		return "running"
	case HandFailed:
		return "failed"
	case HandStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// HandConfig tunes hand gesture classification.
type HandConfig struct {
	// Enabled starts hand tracking with the scene when a detector is
	// available.
	Enabled bool `toml:"enabled" env:"ENABLED"`
	// PinchThreshold is the thumb-to-index distance below which a hand
	// reads as a pinch.
	PinchThreshold float64 `toml:"pinch_threshold" env:"PINCH_THRESHOLD"`
}

// DefaultHandConfig returns the default hand tuning.
func DefaultHandConfig() HandConfig {
	return HandConfig{Enabled: true, PinchThreshold: DefaultPinchThreshold}
}

// HandSnapshot is the latest published hand state. The render loop may read
// it while the detector is still working on the next frame.
type HandSnapshot struct {
	Status        HandStatus
	Tracking      bool
	Gesture       Gesture
	Hand          HandPosition
	PinchDistance float64
}

// HandSource runs the capture and inference loop on its own goroutine and
// queues gesture edges, hand positions and tracking changes for the render
// loop to Drain.
type HandSource struct {
	open   DetectorOpener
	cfg    HandConfig
	logger *slog.Logger

	mu       sync.Mutex
	snap     HandSnapshot
	err      error
	pending  []Event
	detector Detector
	cancel   context.CancelFunc
	group    *errgroup.Group

	// Tracking and gesture as last handed out by Drain. Guarded by mu.
	drainedTracking bool
	drainedGesture  Gesture

	// register is only touched by the loop goroutine, and by Disable after
	// the loop has exited.
	register GestureRegister
}

// NewHandSource creates an idle hand source. A nil logger uses slog.Default.
func NewHandSource(open DetectorOpener, cfg HandConfig, logger *slog.Logger) *HandSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &HandSource{open: open, cfg: cfg, logger: logger.With("component", "hand")}
}

// Enable starts the loop. It returns immediately; the detector is opened in
// the background and Snapshot reports HandStarting until it is ready. Enable
// is a no-op while the loop is already enabled; after a failure, call
// Disable before enabling again.
func (h *HandSource) Enable(ctx context.Context) {
	h.mu.Lock()
	if h.cancel != nil {
		h.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	h.cancel = cancel
	h.group = g
	h.err = nil
	h.snap = HandSnapshot{Status: HandStarting}
	h.mu.Unlock()

	h.logger.Debug("hand tracking starting")
	g.Go(func() error { return h.run(ctx) })
}

// Disable stops the loop, waits until no further frame can be processed,
// then releases the detector. Pending events are dropped; if a tracked hand
// or a gesture was already drained, a none edge and a tracking drop are
// queued in their place. Safe to call more than once.
func (h *HandSource) Disable() {
	h.mu.Lock()
	cancel, g := h.cancel, h.group
	h.cancel, h.group = nil, nil
	h.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	_ = g.Wait()
	h.release()
	h.register.Reset()

	h.mu.Lock()
	h.pending = h.pending[:0]
	if h.drainedGesture != GestureNone {
		h.queue(Event{Type: EventGestureChange, Gesture: GestureNone})
	}
	if h.drainedTracking {
		h.queue(Event{Type: EventTracking, Tracking: false})
	}
	if h.snap.Status != HandFailed {
		h.snap.Status = HandStopped
	}
	h.snap.Tracking = false
	h.snap.Gesture = GestureNone
	h.mu.Unlock()
	h.logger.Debug("hand tracking stopped")
}

// Snapshot returns the latest published state.
func (h *HandSource) Snapshot() HandSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap
}

// Err returns the error that moved the source to HandFailed, if any.
func (h *HandSource) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Drain appends queued events to dst and clears the queue.
func (h *HandSource) Drain(dst []Event) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.pending {
		switch e.Type {
		case EventTracking:
			h.drainedTracking = e.Tracking
		case EventGestureChange:
			h.drainedGesture = e.Gesture
		}
	}
	dst = append(dst, h.pending...)
	h.pending = h.pending[:0]
	return dst
}

func (h *HandSource) run(ctx context.Context) error {
	det, err := h.open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		h.fail(fmt.Errorf("open detector: %w", err))
		return err
	}

	h.mu.Lock()
	h.detector = det
	h.snap.Status = HandRunning
	h.mu.Unlock()
	h.logger.Info("hand tracking running")

	for ctx.Err() == nil {
		points, err := det.Detect(ctx)
		if ctx.Err() != nil {
			// A frame finished after teardown began; drop it.
			return nil
		}
		if err != nil {
			h.fail(fmt.Errorf("detect: %w", err))
			h.release()
			return err
		}
		h.observe(points)
	}
	return nil
}

// observe publishes one frame: tracking transitions, the hand position on
// every tracked frame, and gesture edges.
func (h *HandSource) observe(points Landmarks) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pos, ok := points.Position()
	if !ok {
		h.loseTracking()
		return
	}

	if !h.snap.Tracking {
		h.snap.Tracking = true
		h.queue(Event{Type: EventTracking, Tracking: true})
	}

	dist := points.PinchDistance()
	h.snap.Hand = pos
	h.snap.PinchDistance = dist
	h.queue(Event{Type: EventHandPosition, Hand: pos, PinchDistance: dist})

	if g, edge := h.register.Observe(ClassifyWithThreshold(points, h.cfg.PinchThreshold)); edge {
		h.queue(Event{Type: EventGestureChange, Gesture: g})
	}
	h.snap.Gesture = h.register.Last()
}

// loseTracking emits a none edge (when needed) and the tracking drop. Caller
// holds mu.
func (h *HandSource) loseTracking() {
	if g, edge := h.register.Observe(GestureNone); edge {
		h.queue(Event{Type: EventGestureChange, Gesture: g})
	}
	h.snap.Gesture = GestureNone
	if h.snap.Tracking {
		h.snap.Tracking = false
		h.queue(Event{Type: EventTracking, Tracking: false})
	}
}

// queue appends e to the pending events. Consecutive hand positions collapse
// into the newest one. Caller holds mu.
func (h *HandSource) queue(e Event) {
	e.Source = SourceHand
	if n := len(h.pending); n > 0 && e.Type == EventHandPosition && h.pending[n-1].Type == EventHandPosition {
		h.pending[n-1] = e
		return
	}
	h.pending = append(h.pending, e)
}

func (h *HandSource) fail(err error) {
	h.mu.Lock()
	h.err = err
	h.snap.Status = HandFailed
	h.loseTracking()
	h.mu.Unlock()
	h.logger.Warn("hand tracking unavailable, falling back to pointer", "err", err)
}

func (h *HandSource) release() {
	h.mu.Lock()
	det := h.detector
	h.detector = nil
	h.mu.Unlock()
	if det == nil {
		return
	}
	if err := det.Close(); err != nil {
		h.logger.Warn("close detector", "err", err)
	}
}
