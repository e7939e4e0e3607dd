package tinsel

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestAppStateString(t *testing.T) {
	tests := []struct {
		s    AppState
		want string
	}{
		{StateTree, "tree"},
		{StateGalaxy, "galaxy"},
		{StateFocus, "focus"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("AppState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestGestureString(t *testing.T) {
	tests := []struct {
		g    Gesture
		want string
	}{
		{GestureNone, "none"},
		{GestureFist, "fist"},
		{GestureOpen, "open"},
		{GesturePinch, "pinch"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("Gesture(%d).String() = %q, want %q", tt.g, got, tt.want)
		}
	}
}

func TestOrbitRotationAddWraps(t *testing.T) {
	o := OrbitRotation{}.Add(0.5, -0.25)
	if !approxEqual(o.Pitch, 0.5, epsilon) || !approxEqual(o.Yaw, -0.25, epsilon) {
		t.Fatalf("Add = %+v", o)
	}

	o = OrbitRotation{Pitch: 3}.Add(0.5, 0)
	want := 3.5 - 2*math.Pi
	if !approxEqual(o.Pitch, want, 1e-12) {
		t.Errorf("Pitch = %v, want %v", o.Pitch, want)
	}

	for i := 0; i < 1000; i++ {
		o = o.Add(0.7, -0.9)
		if o.Pitch < -math.Pi || o.Pitch >= math.Pi || o.Yaw < -math.Pi || o.Yaw >= math.Pi {
			t.Fatalf("step %d: %+v outside [-π, π)", i, o)
		}
	}
}

func TestOrbitRotationWrapKeepsDirection(t *testing.T) {
	a := OrbitRotation{}.Add(1, 2)
	b := OrbitRotation{}.Add(1+2*math.Pi, 2-4*math.Pi)
	if !approxEqual(math.Cos(a.Pitch), math.Cos(b.Pitch), 1e-9) || !approxEqual(math.Sin(a.Yaw), math.Sin(b.Yaw), 1e-9) {
		t.Errorf("wrapped rotations differ: %+v vs %+v", a, b)
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: -2, Max: 3}
	for _, tt := range []struct{ in, want float64 }{{-5, -2}, {0, 0}, {3, 3}, {9, 3}} {
		if got := r.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if !r.Contains(10, 20) || !r.Contains(110, 70) || !r.Contains(50, 40) {
		t.Error("expected points inside")
	}
	if r.Contains(9, 20) || r.Contains(50, 71) {
		t.Error("expected points outside")
	}
}
