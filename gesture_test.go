package tinsel

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestClassifySyntheticPoses(t *testing.T) {
	tests := []struct {
		pose Gesture
		want Gesture
	}{
		{GestureFist, GestureFist},
		{GestureOpen, GestureOpen},
		{GesturePinch, GesturePinch},
		{GestureNone, GestureNone},
	}
	for _, tt := range tests {
		t.Run(tt.pose.String(), func(t *testing.T) {
			if got := Classify(SyntheticHand(tt.pose, 0.5, 0.5)); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyIncomplete(t *testing.T) {
	if got := Classify(nil); got != GestureNone {
		t.Errorf("Classify(nil) = %v, want none", got)
	}
	short := SyntheticHand(GestureOpen, 0.5, 0.5)[:NumLandmarks-1]
	if got := Classify(short); got != GestureNone {
		t.Errorf("Classify(20 landmarks) = %v, want none", got)
	}
}

func TestClassifyPinchWinsOverOpen(t *testing.T) {
	l := SyntheticHand(GestureOpen, 0.5, 0.5)
	l[ThumbTip] = r3.Add(l[IndexTip], r3.Vec{Y: 0.02})
	if got := Classify(l); got != GesturePinch {
		t.Errorf("Classify = %v, want pinch", got)
	}
}

func TestClassifyExtendedCounts(t *testing.T) {
	tests := []struct {
		extended int
		want     Gesture
	}{
		{0, GestureFist},
		{1, GestureFist},
		{2, GestureNone},
		{3, GestureOpen},
		{4, GestureOpen},
	}
	for _, tt := range tests {
		l := SyntheticHand(GestureFist, 0.5, 0.5)
		for i := 0; i < tt.extended; i++ {
			tip, pip := fingerJoints[i][0], fingerJoints[i][1]
			l[tip].Y = l[pip].Y - 0.1
		}
		if got := Classify(l); got != tt.want {
			t.Errorf("%d extended: Classify = %v, want %v", tt.extended, got, tt.want)
		}
	}
}

func TestClassifyThresholdBoundary(t *testing.T) {
	l := SyntheticHand(GestureFist, 0.5, 0.5)
	l[ThumbTip] = r3.Add(l[IndexTip], r3.Vec{X: 0.05})
	d := l.PinchDistance()

	if got := ClassifyWithThreshold(l, d); got == GesturePinch {
		t.Error("distance equal to threshold should not pinch")
	}
	if got := ClassifyWithThreshold(l, d+1e-6); got != GesturePinch {
		t.Errorf("ClassifyWithThreshold = %v, want pinch", got)
	}
}

func TestGestureRegisterEdges(t *testing.T) {
	var r GestureRegister
	seq := []Gesture{GestureNone, GestureFist, GestureFist, GestureOpen, GestureOpen, GestureNone, GestureNone}
	var edges []Gesture
	for _, g := range seq {
		if e, ok := r.Observe(g); ok {
			edges = append(edges, e)
		}
	}
	want := []Gesture{GestureFist, GestureOpen, GestureNone}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}
}

func TestGestureRegisterReset(t *testing.T) {
	var r GestureRegister
	r.Observe(GesturePinch)
	r.Reset()
	if r.Last() != GestureNone {
		t.Errorf("Last after Reset = %v", r.Last())
	}
	if _, ok := r.Observe(GesturePinch); !ok {
		t.Error("pinch after Reset should be an edge")
	}
}

func TestLandmarksPosition(t *testing.T) {
	l := SyntheticHand(GestureOpen, 0.3, 0.4)
	pos, ok := l.Position()
	if !ok {
		t.Fatal("Position not ok for full hand")
	}
	// Midpoint of wrist (0.3, 0.55) and middle MCP (0.285, 0.4), mirrored.
	if !approxEqual(pos.X, 1-0.2925, 1e-9) || !approxEqual(pos.Y, 0.475, 1e-9) {
		t.Errorf("Position = %+v", pos)
	}
	if _, ok := Landmarks(nil).Position(); ok {
		t.Error("Position ok for nil landmarks")
	}
}

func TestLandmarksPinchDistance(t *testing.T) {
	l := SyntheticHand(GesturePinch, 0.5, 0.5)
	if d := l.PinchDistance(); !approxEqual(d, 0.01, 1e-9) {
		t.Errorf("PinchDistance = %v, want 0.01", d)
	}
	if d := Landmarks(nil).PinchDistance(); d != 0 {
		t.Errorf("PinchDistance(nil) = %v, want 0", d)
	}
}
