package tinsel

import "math"

// AppState is the scene's viewing mode. It selects what the camera does and
// what the scene content collaborators show.
type AppState uint8

const (
	StateTree   AppState = iota // camera climbs the ribbon around the tree
	StateGalaxy                 // free orbit (or hand follow) around the scattered scene
	StateFocus                  // close-up on a single focused photo
)

// String returns the lower-case state name.
func (s AppState) String() string {
	switch s {
	case StateTree:
		return "tree"
	case StateGalaxy:
		return "galaxy"
	case StateFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// Gesture is the closed vocabulary produced by both input sources.
type Gesture uint8

const (
	GestureNone  Gesture = iota // no recognised shape, or no hand / no buttons
	GestureFist                 // at most one finger extended
	GestureOpen                 // three or more fingers extended
	GesturePinch                // thumb and index tips touching
)

// String returns the lower-case gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureFist:
		return "fist"
	case GestureOpen:
		return "open"
	case GesturePinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// Source identifies an input source.
type Source uint8

const (
	SourcePointer Source = iota // mouse and touch
	SourceHand                  // tracked hand landmarks
)

// String returns the lower-case source name.
func (s Source) String() string {
	if s == SourceHand {
		return "hand"
	}
	return "pointer"
}

// OrbitRotation is the accumulated pitch and yaw, in radians, used by the
// camera's spherical orbit.
type OrbitRotation struct {
	Pitch, Yaw float64
}

// Add returns o rotated by the given deltas. Both angles are wrapped into
// [-π, π); the orbit position is periodic so wrapping never changes it.
func (o OrbitRotation) Add(dPitch, dYaw float64) OrbitRotation {
	return OrbitRotation{
		Pitch: wrapAngle(o.Pitch + dPitch),
		Yaw:   wrapAngle(o.Yaw + dYaw),
	}
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// HandPosition is a tracked hand location in normalized camera space with
// the horizontal axis already mirrored, so moving the hand right moves X up.
type HandPosition struct {
	X, Y float64
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Clamp restricts v to [r.Min, r.Max].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(v, r.Max))
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
