// Package task runs background work for the frame loop. Work never blocks the
// frame goroutine, and each finished task asks for a redraw so its results
// show up on the next frame.
package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Group is a bounded pool of background tasks sharing one context.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	g      *errgroup.Group
	sem    *semaphore.Weighted
	redraw func()
	logger *slog.Logger

	mu   sync.Mutex
	errs []error
}

// New creates a group. At most limit tasks run at once; limit <= 0 means 4.
// redraw, if set, is called after every task returns.
func New(parent context.Context, limit int, redraw func(), logger *slog.Logger) *Group {
	if limit <= 0 {
		limit = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{
		ctx:    ctx,
		cancel: cancel,
		g:      &errgroup.Group{},
		sem:    semaphore.NewWeighted(int64(limit)),
		redraw: redraw,
		logger: logger,
	}
}

// Go starts fn in the background and returns immediately. A failing task is
// logged and recorded; it does not cancel the others.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.g.Go(func() error {
		if err := g.sem.Acquire(g.ctx, 1); err != nil {
			return nil
		}
		defer g.sem.Release(1)

		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Warn("background task failed", "error", err)
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
		if g.redraw != nil {
			g.redraw()
		}
		return nil
	})
}

// Wait blocks until every started task has returned and reports their
// failures.
func (g *Group) Wait() error {
	_ = g.g.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

// Close cancels running tasks and waits for them.
func (g *Group) Close() error {
	g.cancel()
	return g.Wait()
}
