package tinsel

import "time"

// FrameInterval is the simulated time between scripted pointer frames.
const FrameInterval = 16 * time.Millisecond

// ScriptedPointerFeed is a PointerFeed that replays queued frames, one per
// Poll. Each queued frame is stamped FrameInterval after the previous one.
// It is used by tests and by the TestRunner to drive the pointer source
// without a window.
type ScriptedPointerFeed struct {
	queue []PointerFrame
	clock time.Duration
	lastX float64
	lastY float64
}

// NewScriptedPointerFeed returns an empty feed.
func NewScriptedPointerFeed() *ScriptedPointerFeed {
	return &ScriptedPointerFeed{}
}

// Poll pops the next queued frame.
func (f *ScriptedPointerFeed) Poll() (PointerFrame, bool) {
	if len(f.queue) == 0 {
		return PointerFrame{}, false
	}
	fr := f.queue[0]
	copy(f.queue, f.queue[1:])
	f.queue = f.queue[:len(f.queue)-1]
	return fr, true
}

// Pending returns the number of frames not yet polled.
func (f *ScriptedPointerFeed) Pending() int {
	return len(f.queue)
}

func (f *ScriptedPointerFeed) push(fr PointerFrame) {
	f.clock += FrameInterval
	fr.At = f.clock
	f.queue = append(f.queue, fr)
}

func (f *ScriptedPointerFeed) mouse(x, y float64, left, right bool) {
	f.lastX, f.lastY = x, y
	f.push(PointerFrame{Mouse: MouseSample{X: x, Y: y, Left: left, Right: right}})
}

// Press queues a left-button press at (x, y).
func (f *ScriptedPointerFeed) Press(x, y float64) {
	f.mouse(x, y, true, false)
}

// Move queues a frame with the left button held at (x, y).
func (f *ScriptedPointerFeed) Move(x, y float64) {
	f.mouse(x, y, true, false)
}

// Release queues a frame with no buttons held at (x, y).
func (f *ScriptedPointerFeed) Release(x, y float64) {
	f.mouse(x, y, false, false)
}

// Click queues a press and a release. Consumes two frames.
func (f *ScriptedPointerFeed) Click(x, y float64) {
	f.Press(x, y)
	f.Release(x, y)
}

// DoubleClick queues two clicks inside the double-click window.
func (f *ScriptedPointerFeed) DoubleClick(x, y float64) {
	f.Click(x, y)
	f.Click(x, y)
}

// Drag queues a press at (fromX, fromY), frames-2 interpolated moves, a held
// move onto (toX, toY) and a release there. Minimum frames is 2.
func (f *ScriptedPointerFeed) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	f.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		f.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	f.Move(toX, toY)
	f.Release(toX, toY)
}

// Chord queues both buttons held together, then a release.
func (f *ScriptedPointerFeed) Chord(x, y float64) {
	f.mouse(x, y, true, true)
	f.mouse(x, y, false, false)
}

// TwoFingerPinch queues two touches centred on (cx, cy) whose separation
// goes from `from` to `to` over frames frames, then lifts both fingers.
func (f *ScriptedPointerFeed) TwoFingerPinch(cx, cy, from, to float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		d := from + (to-from)*float64(i)/float64(frames-1)
		f.push(PointerFrame{
			Mouse: MouseSample{X: f.lastX, Y: f.lastY},
			Touches: []TouchPoint{
				{ID: 1, X: cx - d/2, Y: cy},
				{ID: 2, X: cx + d/2, Y: cy},
			},
		})
	}
	f.Wait(1)
}

// Tap queues a single-finger touch and lift at (x, y).
func (f *ScriptedPointerFeed) Tap(x, y float64) {
	f.push(PointerFrame{
		Mouse:   MouseSample{X: f.lastX, Y: f.lastY},
		Touches: []TouchPoint{{ID: 1, X: x, Y: y}},
	})
	f.Wait(1)
}

// Wait queues idle frames with nothing held.
func (f *ScriptedPointerFeed) Wait(frames int) {
	for i := 0; i < frames; i++ {
		f.push(PointerFrame{Mouse: MouseSample{X: f.lastX, Y: f.lastY}})
	}
}

// Skip advances the clock by frames intervals without queuing anything, so
// the next queued frame lands later.
func (f *ScriptedPointerFeed) Skip(frames int) {
	if frames > 0 {
		f.clock += time.Duration(frames) * FrameInterval
	}
}

// priorityFeed polls the injected feed first and falls back to the live
// feed once the injected queue is empty.
type priorityFeed struct {
	injected *ScriptedPointerFeed
	live     PointerFeed
	offset   time.Duration
}

func (p *priorityFeed) Poll() (PointerFrame, bool) {
	if fr, ok := p.injected.Poll(); ok {
		fr.At += p.offset
		return fr, true
	}
	if p.live == nil {
		return PointerFrame{}, false
	}
	fr, ok := p.live.Poll()
	if ok && fr.At > p.offset {
		p.offset = fr.At
	}
	return fr, ok
}
