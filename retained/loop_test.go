package retained

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type page struct {
	ShowField bool
	Name      string
}

func pageView(s *page) View[page] {
	if !s.ShowField {
		return Column[page](ID("root"), 0)
	}
	return Column[page](ID("root"), 0, &TextField[page]{
		Node: ID("name"),
		Text: Bind(func(s *page) *string { return &s.Name }),
	})
}

func TestLoopDirtyTracking(t *testing.T) {
	l, _ := newTestLoop(&page{}, pageView, 200, 100)
	if !l.NeedsRedraw() {
		t.Error("a new loop should need a first frame")
	}
	drawFrame(l)
	if l.NeedsRedraw() {
		t.Error("NeedsRedraw after drawing")
	}

	l.HandleEvent(PointerMoved(5, 5))
	if !l.NeedsRedraw() {
		t.Error("input should mark the loop dirty")
	}
	drawFrame(l)

	l.RequestRedraw()
	if !l.NeedsRedraw() {
		t.Error("RequestRedraw did not mark the loop dirty")
	}

	stats := l.Stats()
	if stats.FrameCount != 2 || stats.EventCount != 1 {
		t.Errorf("Stats = %+v, want 2 frames and 1 event", stats)
	}
}

func TestLoopPause(t *testing.T) {
	l, _ := newTestLoop(&page{ShowField: true}, pageView, 200, 100)
	l.Pause()
	if !l.IsPaused() {
		t.Fatal("IsPaused = false after Pause")
	}
	res := l.Frame()
	if res.Commands.Len() != 0 || l.Stats().FrameCount != 0 {
		t.Errorf("paused frame drew %d commands", res.Commands.Len())
	}
	if !l.NeedsRedraw() {
		t.Error("a paused frame should leave the loop dirty")
	}

	l.Resume()
	res = l.Frame()
	if res.Commands.Len() == 0 {
		t.Error("resumed frame drew nothing")
	}
	res.Commands.Release()
}

func TestLoopResize(t *testing.T) {
	l, _ := newTestLoop(&page{}, pageView, 200, 100)
	l.HandleEvent(Resized(640, 480))
	if got := l.Viewport(); got != (Area{Width: 640, Height: 480}) {
		t.Errorf("Viewport = %+v", got)
	}
	drawFrame(l)
	if got := l.Context().Viewport; got.Width != 640 || got.Height != 480 {
		t.Errorf("context viewport = %+v", got)
	}
}

func TestLoopCaretBlinkSchedule(t *testing.T) {
	s := &page{ShowField: true}
	l, clock := newTestLoop(s, pageView, 200, 100)
	drawFrame(l)
	tap(l, 20, 16)
	if !l.Context().IsEditing(ID("name")) {
		t.Fatal("not editing")
	}

	// The focus border is still fading in, so the loop asks for frames.
	clock.Advance(10 * time.Millisecond)
	if res := drawFrame(l); !res.RequestRedraw {
		t.Error("RequestRedraw = false during the focus transition")
	}

	// Once it settles, the loop waits for the caret's next blink.
	clock.Advance(1090 * time.Millisecond)
	res := drawFrame(l)
	if res.RequestRedraw {
		t.Fatal("RequestRedraw = true with nothing animating")
	}
	if res.RedrawAfter != 490*time.Millisecond {
		t.Errorf("RedrawAfter = %v, want 490ms", res.RedrawAfter)
	}

	l.HandleEvent(KeyPressed(KeyEscape, 0))
	clock.Advance(time.Second)
	if res := drawFrame(l); res.RedrawAfter != 0 {
		t.Errorf("RedrawAfter = %v with no editor", res.RedrawAfter)
	}
}

func TestLoopEndsEditWhenFieldDisappears(t *testing.T) {
	s := &page{ShowField: true}
	l, _ := newTestLoop(s, pageView, 200, 100)
	drawFrame(l)
	tap(l, 20, 16)
	if _, ok := l.Context().Editing(); !ok {
		t.Fatal("not editing")
	}

	s.ShowField = false
	drawFrame(l)
	if _, ok := l.Context().Editing(); ok {
		t.Error("editor survived its field")
	}
}

func TestLoopKeysWithoutEditor(t *testing.T) {
	s := &page{ShowField: true, Name: "kept"}
	l, _ := newTestLoop(s, pageView, 200, 100)
	drawFrame(l)
	l.HandleEvent(KeyPressed(KeyBackspace, 0))
	l.HandleEvent(TextInput("x"))
	l.HandleEvent(Event{Type: EventKeyReleased, Key: KeyA})
	if s.Name != "kept" {
		t.Errorf("Name = %q, want input ignored with no editor", s.Name)
	}
}

func TestLoopSweepsUndrawnState(t *testing.T) {
	s := &page{ShowField: true}
	l, _ := newTestLoop(s, pageView, 200, 100)
	drawFrame(l)
	if l.frame.Store.Len() == 0 {
		t.Fatal("nothing stored for the field")
	}

	s.ShowField = false
	drawFrame(l)
	drawFrame(l)
	drawFrame(l)
	if n := l.frame.Store.Len(); n != 0 {
		t.Errorf("store holds %d entries after the field went away", n)
	}
	if _, ok := l.Context().interactions[ID("name")]; ok {
		t.Error("interaction state survived its control")
	}
}

func TestLoopWarnsOnDuplicatePlacement(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoop(&page{}, func(*page) View[page] {
		return Column[page](ID("root"), 0,
			&Spacer[page]{Node: ID("twin"), Size: 10},
			&Spacer[page]{Node: ID("twin"), Size: 10},
		)
	}, LoopConfig{
		Width:    100,
		Height:   100,
		Clock:    func() time.Time { return t0 },
		Measurer: monoMeasurer{advance: 10},
		Logger:   slog.New(slog.NewTextHandler(&buf, nil)),
	})
	drawFrame(l)
	if !strings.Contains(buf.String(), "identity placed more than once") {
		t.Errorf("log = %q, want a duplicate placement warning", buf.String())
	}
}

func TestNewLoopDefaults(t *testing.T) {
	l := NewLoop(&page{}, pageView, LoopConfig{})
	ctx := l.Context()
	if ctx.Style != DefaultStyle() {
		t.Error("zero config should use the default style")
	}
	if ctx.Shortcut != ModCtrl {
		t.Errorf("Shortcut = %v, want ModCtrl", ctx.Shortcut)
	}
	if l.frame.Timing.Duration != DefaultTiming().Duration {
		t.Errorf("Timing = %+v, want the default", l.frame.Timing)
	}
	if l.State() == nil {
		t.Error("State() = nil")
	}
}
