package tinsel

import "gonum.org/v1/gonum/spatial/r3"

// Hand landmark indices following the MediaPipe hand model.
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Landmarks is one frame's hand keypoints in normalized camera space: X and
// Y in [0, 1] with Y increasing downward, Z relative depth. A nil slice means
// no hand was detected.
type Landmarks []r3.Vec

// Complete reports whether l holds a full hand.
func (l Landmarks) Complete() bool {
	return len(l) >= NumLandmarks
}

// PinchDistance returns the 3D distance between the thumb and index tips, or
// 0 for an incomplete snapshot.
func (l Landmarks) PinchDistance() float64 {
	if !l.Complete() {
		return 0
	}
	return r3.Norm(r3.Sub(l[ThumbTip], l[IndexTip]))
}

// Position returns the hand's tracking point: the midpoint between the palm
// base and the middle finger base, horizontally mirrored so it matches what
// the user sees in a selfie view.
func (l Landmarks) Position() (HandPosition, bool) {
	if !l.Complete() {
		return HandPosition{}, false
	}
	mid := r3.Scale(0.5, r3.Add(l[Wrist], l[MiddleMCP]))
	return HandPosition{X: 1 - mid.X, Y: mid.Y}, true
}
