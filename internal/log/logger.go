// Package log configures the slog logger shared by the frame loop, the asset
// cache and background tasks.
//
// Settings come from Options or from the environment:
//   - VENEER_LOG_LEVEL=debug|info|warn|error
//   - VENEER_LOG_FORMAT=text|json
//   - VENEER_LOG_FILE=<path> (adds a rotated JSON file)
//   - VENEER_LOG_SOURCE=true|false
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	Level     string
	Format    string // "text" or "json"
	AddSource bool
	File      string

	// Output receives console records. nil means stderr.
	Output io.Writer
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	rotator *lumberjack.Logger
)

// L returns the shared logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// New builds a logger from opts without touching the shared one. The
// returned closer flushes and closes the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level), AddSource: opts.AddSource}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(out, ho)
	} else {
		console = slog.NewTextHandler(out, ho)
	}

	if strings.TrimSpace(opts.File) == "" {
		return slog.New(console), nopCloser{}
	}
	w := &lumberjack.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
	h := fanout{console, slog.NewJSONHandler(w, ho)}
	return slog.New(h), w
}

// Init replaces the shared logger and slog's default.
func Init(opts Options) *slog.Logger {
	l, c := New(opts)
	mu.Lock()
	if rotator != nil {
		rotator.Close()
	}
	rotator, _ = c.(*lumberjack.Logger)
	current = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

// Close closes the shared log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// FromEnv reads Options from the environment.
func FromEnv() Options {
	return Options{
		Level:     getenv("VENEER_LOG_LEVEL", "info"),
		Format:    getenv("VENEER_LOG_FORMAT", "text"),
		AddSource: strings.EqualFold(os.Getenv("VENEER_LOG_SOURCE"), "true"),
		File:      os.Getenv("VENEER_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns the shared logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
