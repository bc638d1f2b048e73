package retained

import (
	"io"
	"log/slog"
	"time"
	"unicode/utf8"
)

// monoMeasurer gives every rune the same advance, so text geometry in tests
// is easy to predict.
type monoMeasurer struct {
	advance float32
}

func (m monoMeasurer) Measure(text string, size float32) Size {
	return Size{Width: m.advance * float32(utf8.RuneCountInString(text)), Height: size}
}

func (m monoMeasurer) Offsets(text string, size float32) []float32 {
	n := utf8.RuneCountInString(text)
	out := make([]float32, n+1)
	for i := range out {
		out[i] = m.advance * float32(i)
	}
	return out
}

// testFrame returns a frame on a fresh store drawing into a command list.
func testFrame(now time.Time) (*Frame, *CommandList) {
	cmds := NewCommandList()
	f := NewFrame(now, NewViewStore(1), cmds)
	f.Text = monoMeasurer{advance: 10}
	return f, cmds
}

// nextFrame starts another frame on the same store at now.
func nextFrame(f *Frame, now time.Time) *CommandList {
	cmds := NewCommandList()
	f.Number++
	f.Now = now
	f.Scene = cmds
	f.Store.BeginFrame()
	return cmds
}

// testClock is a settable clock for loops under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestLoop builds a loop at t0 with monospaced text and a silent logger.
func newTestLoop[S any](state *S, view func(*S) View[S], width, height float32) (*Loop[S], *testClock) {
	clock := &testClock{now: t0}
	l := NewLoop(state, view, LoopConfig{
		Width:       width,
		Height:      height,
		GraceFrames: 1,
		Clock:       clock.Now,
		Measurer:    monoMeasurer{advance: 10},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return l, clock
}

// drawFrame runs a frame and discards its commands.
func drawFrame[S any](l *Loop[S]) FrameResult {
	res := l.Frame()
	res.Commands.Release()
	return res
}

// tap presses and releases at (x, y), then redraws.
func tap[S any](l *Loop[S], x, y float32) {
	l.HandleEvent(PointerDown(x, y))
	l.HandleEvent(PointerUp(x, y))
	drawFrame(l)
}
