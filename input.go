package tinsel

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTouches caps the touches reported per frame.
const maxTouches = 10

// EbitenPointerFeed is a PointerFeed that samples ebiten's mouse and touch
// state. Poll must be called from the game's Update.
type EbitenPointerFeed struct {
	start    time.Time
	now      func() time.Time
	touchIDs []ebiten.TouchID
	touches  []TouchPoint
}

// NewEbitenPointerFeed creates a feed whose frame timestamps count from now.
func NewEbitenPointerFeed() *EbitenPointerFeed {
	return &EbitenPointerFeed{start: time.Now(), now: time.Now}
}

// Poll samples the current input state. It always returns a frame.
func (f *EbitenPointerFeed) Poll() (PointerFrame, bool) {
	mx, my := ebiten.CursorPosition()
	fr := PointerFrame{
		At: f.now().Sub(f.start),
		Mouse: MouseSample{
			X:     float64(mx),
			Y:     float64(my),
			Left:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			Right: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		},
	}

	f.touchIDs = ebiten.AppendTouchIDs(f.touchIDs[:0])
	f.touches = f.touches[:0]
	for _, tid := range f.touchIDs {
		if len(f.touches) == maxTouches {
			break
		}
		tx, ty := ebiten.TouchPosition(tid)
		f.touches = append(f.touches, TouchPoint{ID: int(tid), X: float64(tx), Y: float64(ty)})
	}
	if len(f.touches) > 0 {
		fr.Touches = f.touches
	}
	return fr, true
}

// Wheel returns this frame's vertical wheel movement, positive when
// scrolling up.
func (f *EbitenPointerFeed) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}
