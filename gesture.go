package tinsel

// DefaultPinchThreshold is the thumb-to-index distance, in normalized
// landmark units, below which a hand reads as a pinch.
const DefaultPinchThreshold = 0.06

// fingerJoints pairs each non-thumb fingertip with its proximal joint.
var fingerJoints = [4][2]int{
	{IndexTip, IndexPIP},
	{MiddleTip, MiddlePIP},
	{RingTip, RingPIP},
	{PinkyTip, PinkyPIP},
}

// Classify maps a landmark snapshot to a gesture using DefaultPinchThreshold.
func Classify(points Landmarks) Gesture {
	return ClassifyWithThreshold(points, DefaultPinchThreshold)
}

// ClassifyWithThreshold maps a landmark snapshot to a gesture. Pinch wins over
// every other shape; otherwise three or more extended fingers is open, one or
// none is fist, and exactly two is none. Incomplete snapshots are none.
func ClassifyWithThreshold(points Landmarks, pinchThreshold float64) Gesture {
	if !points.Complete() {
		return GestureNone
	}
	if points.PinchDistance() < pinchThreshold {
		return GesturePinch
	}

	extended := 0
	for _, j := range fingerJoints {
		// Y grows downward, so an extended tip sits above its joint.
		if points[j[0]].Y < points[j[1]].Y {
			extended++
		}
	}

	switch {
	case extended >= 3:
		return GestureOpen
	case extended <= 1:
		return GestureFist
	default:
		return GestureNone
	}
}

// GestureRegister keeps the last emitted gesture and reports transitions.
// The zero value starts at GestureNone.
type GestureRegister struct {
	last Gesture
}

// Observe records g and reports whether it differs from the previously
// emitted gesture. Feeding the same gesture twice yields one edge.
func (r *GestureRegister) Observe(g Gesture) (Gesture, bool) {
	if g == r.last {
		return g, false
	}
	r.last = g
	return g, true
}

// Last returns the most recently emitted gesture.
func (r *GestureRegister) Last() Gesture {
	return r.last
}

// Reset returns the register to GestureNone without emitting.
func (r *GestureRegister) Reset() {
	r.last = GestureNone
}
