package tinsel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// IndicatorHold is how long, in seconds, a message stays fully visible.
	IndicatorHold float32 = 1.2
	// IndicatorFade is how long, in seconds, a message takes to fade out.
	IndicatorFade float32 = 0.6
)

// Indicator shows the most recent gesture, tracking or state change as a
// short message that fades out. Feed it events through EmitEvent (it is an
// EventSink) and call Update(dt) each frame. There is no global animation
// manager; the caller drives it.
type Indicator struct {
	message string
	hold    float32
	fade    *gween.Tween
	alpha   float64

	fpsText  string
	fpsTimer float64

	msgImg *ebiten.Image
	drawn  string
}

// 240x16 fits one line of debug text.
const (
	indicatorWidth  = 240
	indicatorHeight = 16
)

// NewIndicator returns an empty, fully transparent indicator.
func NewIndicator() *Indicator {
	return &Indicator{}
}

// EmitEvent updates the message for events worth showing.
func (ind *Indicator) EmitEvent(e Event) {
	switch e.Type {
	case EventGestureChange:
		if e.Gesture == GestureNone {
			return
		}
		ind.show(fmt.Sprintf("%s (%s)", e.Gesture, e.Source))
	case EventTracking:
		if e.Tracking {
			ind.show("hand detected")
		} else {
			ind.show("hand lost")
		}
	case EventStateChange:
		if e.State == StateFocus && e.FocusedPhoto != NoPhoto {
			ind.show(fmt.Sprintf("%s #%d", e.State, e.FocusedPhoto))
			return
		}
		ind.show(e.State.String())
	case EventFocalPointReached:
		ind.show("top of the tree")
	}
}

func (ind *Indicator) show(msg string) {
	ind.message = msg
	ind.hold = IndicatorHold
	ind.fade = gween.New(1, 0, IndicatorFade, ease.OutQuad)
	ind.alpha = 1
}

// Update advances the hold timer and the fade by dt seconds.
func (ind *Indicator) Update(dt float32) {
	ind.fpsTimer += float64(dt)
	if ind.fade == nil {
		return
	}
	if ind.hold > 0 {
		ind.hold -= dt
		if ind.hold > 0 {
			return
		}
		dt = -ind.hold
		ind.hold = 0
	}
	val, finished := ind.fade.Update(dt)
	ind.alpha = float64(val)
	if finished {
		ind.alpha = 0
		ind.fade = nil
	}
}

// Message returns the current message.
func (ind *Indicator) Message() string {
	return ind.message
}

// Alpha returns the message opacity in [0, 1].
func (ind *Indicator) Alpha() float64 {
	return ind.alpha
}

// Visible reports whether the message is drawn at all.
func (ind *Indicator) Visible() bool {
	return ind.alpha > 0 && ind.message != ""
}

// Draw prints the message at (x, y) and a status block for v in the top-left
// corner. The FPS line refreshes about every half second.
func (ind *Indicator) Draw(dst *ebiten.Image, v View, x, y int) {
	if ind.fpsTimer >= 0.5 || ind.fpsText == "" {
		ind.fpsTimer = 0
		ind.fpsText = fmt.Sprintf("FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(dst, fmt.Sprintf("%s\nstate: %s  source: %s  gesture: %s\nclimb: %.2f  hand: %s",
		ind.fpsText, v.State, v.Source, v.Gesture, v.T, v.HandStatus))

	if !ind.Visible() {
		return
	}
	if ind.msgImg == nil {
		ind.msgImg = ebiten.NewImage(indicatorWidth, indicatorHeight)
	}
	if ind.drawn != ind.message {
		ind.msgImg.Clear()
		ebitenutil.DebugPrint(ind.msgImg, ind.message)
		ind.drawn = ind.message
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleAlpha(float32(ind.alpha))
	dst.DrawImage(ind.msgImg, &op)
}
