// Package veneer wires the retained-mode core to an application: it loads
// configuration and theme, sets up logging and background loading, and
// drives the frame loop from a stream of input events.
package veneer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/agiangrant/veneer/internal/log"
	"github.com/agiangrant/veneer/internal/task"
	"github.com/agiangrant/veneer/retained"
)

// FrameInterval is the pacing of animation frames in Run.
const FrameInterval = 16 * time.Millisecond

// Option customizes an App.
type Option func(*options)

type options struct {
	clock     func() time.Time
	logger    *slog.Logger
	clipboard retained.Clipboard
	measurer  retained.TextMeasurer
	platform  Platform
	themeDir  string
}

// WithClock injects the clock the loop reads.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger replaces the logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClipboard connects the system clipboard.
func WithClipboard(c retained.Clipboard) Option {
	return func(o *options) { o.clipboard = c }
}

// WithMeasurer replaces the default text measurer.
func WithMeasurer(m retained.TextMeasurer) Option {
	return func(o *options) { o.measurer = m }
}

// WithPlatform overrides platform detection, which picks the shortcut key.
func WithPlatform(p Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithThemeDir sets the directory theme paths are relative to.
func WithThemeDir(dir string) Option {
	return func(o *options) { o.themeDir = dir }
}

// App owns a frame loop, its background task group and its asset cache.
type App[S any] struct {
	config AppConfig
	loop   *retained.Loop[S]
	tasks  *task.Group
	assets *retained.AssetCache
	logger *slog.Logger
	wake   chan struct{}

	ownsLog bool
}

// NewApp creates an app drawing view over state. ctx bounds background work.
func NewApp[S any](ctx context.Context, cfg AppConfig, state *S, view func(*S) retained.View[S], opts ...Option) (*App[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	o := options{clock: time.Now, platform: CurrentPlatform(), themeDir: "."}
	for _, opt := range opts {
		opt(&o)
	}
	logger, ownsLog := o.logger, false
	if logger == nil {
		logger, ownsLog = newLogger(cfg), true
	}

	th, err := cfg.LoadTheme(o.themeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	style, err := th.Style()
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", th.Name, err)
	}
	timing, err := th.Timing()
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", th.Name, err)
	}

	a := &App[S]{
		config:  cfg,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		ownsLog: ownsLog,
	}
	a.tasks = task.New(ctx, cfg.Tasks.Limit, a.requestRedraw, logger.With("component", "tasks"))
	a.assets = retained.NewAssetCache(a.tasks, logger.With("component", "assets"))

	a.loop = retained.NewLoop(state, view, retained.LoopConfig{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		GraceFrames: cfg.Store.GraceFrames,
		Timing:      timing,
		Style:       style,
		Shortcut:    o.platform.ShortcutModifier(),
		Clock:       o.clock,
		Measurer:    o.measurer,
		Assets:      a.assets,
		Logger:      logger.With("component", "loop"),
	})
	if o.clipboard != nil {
		a.loop.Context().Clipboard = o.clipboard
	}
	logger.Debug("app created", "theme", th.Name, "width", cfg.Window.Width, "height", cfg.Window.Height)
	return a, nil
}

// Loop returns the frame loop.
func (a *App[S]) Loop() *retained.Loop[S] { return a.loop }

// Assets returns the asset cache.
func (a *App[S]) Assets() *retained.AssetCache { return a.assets }

// Config returns the config the app was created with.
func (a *App[S]) Config() AppConfig { return a.config }

// Frame draws one frame.
func (a *App[S]) Frame() retained.FrameResult { return a.loop.Frame() }

// HandleEvent routes one input event.
func (a *App[S]) HandleEvent(e retained.Event) { a.loop.HandleEvent(e) }

// Go runs work in the background and redraws when it returns. fn must not
// touch application state; it should hand results over through a
// synchronized structure.
func (a *App[S]) Go(fn func(ctx context.Context) error) { a.tasks.Go(fn) }

// requestRedraw may be called from any goroutine.
func (a *App[S]) requestRedraw() {
	a.loop.RequestRedraw()
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Run drives the loop until ctx is done or events is closed. present
// receives every frame and owns its command list. Frames are drawn when
// input arrives, when background work asks for a redraw, every
// FrameInterval while animations run, and when the caret blinks.
func (a *App[S]) Run(ctx context.Context, events <-chan retained.Event, present func(retained.FrameResult)) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			a.loop.HandleEvent(e)
			// Drain whatever else is queued before drawing.
			for drained := false; !drained; {
				select {
				case e, ok := <-events:
					if !ok {
						return nil
					}
					a.loop.HandleEvent(e)
				default:
					drained = true
				}
			}
		case <-a.wake:
		case <-timer.C:
			a.loop.RequestRedraw()
		}

		if !a.loop.NeedsRedraw() || a.loop.IsPaused() {
			continue
		}
		res := a.loop.Frame()
		present(res)

		timer.Stop()
		switch {
		case res.RequestRedraw:
			timer.Reset(FrameInterval)
		case res.RedrawAfter > 0:
			timer.Reset(res.RedrawAfter)
		}
	}
}

// Close cancels background work, waits for it and closes the log file the
// app opened.
func (a *App[S]) Close() error {
	err := a.tasks.Close()
	if a.ownsLog {
		if cerr := log.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// newLogger builds the shared logger from the config. VENEER_LOG_*
// variables take precedence.
func newLogger(cfg AppConfig) *slog.Logger {
	opts := cfg.LogOptions()
	if v := os.Getenv("VENEER_LOG_LEVEL"); v != "" {
		opts.Level = v
	}
	if v := os.Getenv("VENEER_LOG_FORMAT"); v != "" {
		opts.Format = v
	}
	if v := os.Getenv("VENEER_LOG_FILE"); v != "" {
		opts.File = v
	}
	return log.Init(opts)
}
