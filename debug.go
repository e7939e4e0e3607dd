package tinsel

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame metrics. Only populated when Scene.debug is true.
type debugStats struct {
	frame   uint64
	elapsed time.Duration
	view    View
}

// debugLogEvery throttles per-frame logging to one line per this many frames.
const debugLogEvery = 30

// debugLog writes frame stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || stats.frame%debugLogEvery != 0 {
		return
	}
	v := stats.view
	s.logger.Debug("frame",
		slog.Uint64("frame", stats.frame),
		slog.Duration("update", stats.elapsed),
		slog.String("state", v.State.String()),
		slog.String("source", v.Source.String()),
		slog.String("gesture", v.Gesture.String()),
		slog.Float64("t", v.T),
		slog.Bool("reached", v.Camera.Reached),
		slog.Group("camera",
			slog.Float64("x", v.Camera.Position.X),
			slog.Float64("y", v.Camera.Position.Y),
			slog.Float64("z", v.Camera.Position.Z),
		),
	)
	if v.Camera.Position == v.Camera.Target {
		s.logger.Warn("camera position equals look-at target", slog.Uint64("frame", stats.frame))
	}
}
