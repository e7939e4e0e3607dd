package tinsel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDetectorClosed is returned by Detect after Close.
var ErrDetectorClosed = errors.New("detector closed")

// DefaultReplayInterval paces replays that do not set interval_ms.
const DefaultReplayInterval = 33 * time.Millisecond

// replayFile is the JSON layout of a recorded landmark stream. A null frame
// is a frame with no hand.
type replayFile struct {
	IntervalMS int         `json:"interval_ms"`
	Loop       bool        `json:"loop"`
	Frames     []Landmarks `json:"frames"`
}

// ReplayDetector is a Detector that plays back recorded landmark frames at a
// fixed interval. Once the frames run out it reports no hand, unless Loop
// is set.
type ReplayDetector struct {
	Frames   []Landmarks
	Interval time.Duration
	Loop     bool

	next   int
	closed atomic.Bool
}

// LoadReplay decodes a replay from r.
func LoadReplay(r io.Reader) (*ReplayDetector, error) {
	var f replayFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	for i, fr := range f.Frames {
		if fr != nil && !fr.Complete() {
			return nil, fmt.Errorf("decode replay: frame %d has %d landmarks, want %d", i, len(fr), NumLandmarks)
		}
	}
	d := &ReplayDetector{Frames: f.Frames, Loop: f.Loop, Interval: DefaultReplayInterval}
	if f.IntervalMS > 0 {
		d.Interval = time.Duration(f.IntervalMS) * time.Millisecond
	}
	return d, nil
}

// ReplayOpener returns a DetectorOpener that loads the replay at path each
// time hand tracking is enabled.
func ReplayOpener(path string) DetectorOpener {
	return func(ctx context.Context) (Detector, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open replay: %w", err)
		}
		defer f.Close()
		return LoadReplay(f)
	}
}

// Detect waits one interval and returns the next frame. A non-positive
// Interval uses DefaultReplayInterval.
func (d *ReplayDetector) Detect(ctx context.Context) (Landmarks, error) {
	if d.closed.Load() {
		return nil, ErrDetectorClosed
	}
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultReplayInterval
	}
	t := time.NewTimer(interval)
	select {
	case <-ctx.Done():
		t.Stop()
		return nil, ctx.Err()
	case <-t.C:
	}

	if d.next >= len(d.Frames) {
		if !d.Loop || len(d.Frames) == 0 {
			return nil, nil
		}
		d.next = 0
	}
	fr := d.Frames[d.next]
	d.next++
	return fr, nil
}

// Close stops the replay.
func (d *ReplayDetector) Close() error {
	d.closed.Store(true)
	return nil
}

// SyntheticHand builds a complete landmark set posed as g, with the palm
// centred on (cx, cy) in normalized camera space. GestureNone yields exactly
// two extended fingers.
func SyntheticHand(g Gesture, cx, cy float64) Landmarks {
	const (
		palm     = 0.15
		joint    = 0.05
		extended = 0.15
	)
	l := make(Landmarks, NumLandmarks)
	l[Wrist] = r3.Vec{X: cx, Y: cy + palm}
	l[ThumbCMC] = r3.Vec{X: cx - 0.05, Y: cy + 0.1}
	l[ThumbMCP] = r3.Vec{X: cx - 0.08, Y: cy + 0.07}
	l[ThumbIP] = r3.Vec{X: cx - 0.11, Y: cy + 0.04}
	l[ThumbTip] = r3.Vec{X: cx - 0.14, Y: cy}

	var up int
	switch g {
	case GestureOpen:
		up = 4
	case GestureNone:
		up = 2
	}
	offsets := [4]float64{-0.045, -0.015, 0.015, 0.045}
	for i, j := range fingerJoints {
		x := cx + offsets[i]
		mcp := j[1] - 1
		dip := j[1] + 1
		l[mcp] = r3.Vec{X: x, Y: cy}
		l[j[1]] = r3.Vec{X: x, Y: cy - joint}
		if i < up {
			l[dip] = r3.Vec{X: x, Y: cy - 0.1}
			l[j[0]] = r3.Vec{X: x, Y: cy - extended}
		} else {
			l[dip] = r3.Vec{X: x, Y: cy - 0.03}
			l[j[0]] = r3.Vec{X: x, Y: cy}
		}
	}
	if g == GesturePinch {
		l[ThumbTip] = r3.Add(l[IndexTip], r3.Vec{X: 0.01})
	}
	return l
}
