package veneer

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/agiangrant/veneer/retained"
)

type counter struct {
	Count int
}

func counterView(s *counter) retained.View[counter] {
	return &retained.Button[counter]{
		Node:    retained.ID("increment"),
		Label:   "+1",
		OnPress: func(s *counter) { s.Count++ },
	}
}

func newTestApp(t *testing.T, state *counter, now *time.Time) *App[counter] {
	t.Helper()
	app, err := NewApp(context.Background(), DefaultAppConfig(), state, counterView,
		WithClock(func() time.Time { return *now }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithPlatform(PlatformLinux),
	)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestAppClick(t *testing.T) {
	now := time.Unix(1000, 0)
	state := &counter{}
	app := newTestApp(t, state, &now)

	res := app.Frame()
	if res.Commands.Len() == 0 {
		t.Fatal("first frame drew nothing")
	}
	res.Commands.Release()

	app.HandleEvent(retained.PointerDown(10, 10))
	app.HandleEvent(retained.PointerUp(10, 10))
	if state.Count != 1 {
		t.Errorf("Count = %d, want 1", state.Count)
	}
	if !app.Loop().NeedsRedraw() {
		t.Error("input should mark the loop dirty")
	}
}

func TestAppShortcutFromPlatform(t *testing.T) {
	now := time.Unix(0, 0)
	state := &counter{}
	app, err := NewApp(context.Background(), DefaultAppConfig(), state, counterView,
		WithClock(func() time.Time { return now }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithPlatform(PlatformMacOS),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()
	if got := app.Loop().Context().Shortcut; got != retained.ModSuper {
		t.Errorf("Shortcut = %v, want ModSuper", got)
	}
}

func TestNewAppErrors(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Window.Width = 0
	if _, err := NewApp(context.Background(), cfg, &counter{}, counterView); err == nil {
		t.Error("zero width: want error")
	}

	cfg = DefaultAppConfig()
	cfg.Theme = "does-not-exist.toml"
	_, err := NewApp(context.Background(), cfg, &counter{}, counterView,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithThemeDir(t.TempDir()))
	if err == nil {
		t.Error("missing theme: want error")
	}
}

func TestAppRunStopsWhenEventsClose(t *testing.T) {
	now := time.Unix(1000, 0)
	state := &counter{}
	app := newTestApp(t, state, &now)
	app.Frame().Commands.Release()

	events := make(chan retained.Event, 2)
	events <- retained.PointerDown(5, 5)
	events <- retained.PointerUp(5, 5)
	close(events)

	err := app.Run(context.Background(), events, func(r retained.FrameResult) {
		r.Commands.Release()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state.Count != 1 {
		t.Errorf("Count = %d, want 1", state.Count)
	}
}

func TestAppRunHonorsContext(t *testing.T) {
	now := time.Unix(1000, 0)
	app := newTestApp(t, &counter{}, &now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx, make(chan retained.Event), func(r retained.FrameResult) { r.Commands.Release() }); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
