package retained

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// LoopConfig configures a frame loop.
type LoopConfig struct {
	// Width and Height are the initial viewport size.
	Width, Height float32

	// GraceFrames is how many frames an identity may go undrawn before its
	// animation state is evicted. 0 keeps state forever.
	GraceFrames int

	// Timing is the default transition for drawables without their own.
	Timing Timing

	Style Style

	// Shortcut is the editing shortcut modifier (see Context.Shortcut).
	Shortcut Modifiers

	// Clock returns the current time. Tests inject a fixed clock.
	Clock func() time.Time

	Measurer TextMeasurer
	Assets   *AssetCache
	Logger   *slog.Logger
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Width:       800,
		Height:      600,
		GraceFrames: 1,
		Timing:      DefaultTiming(),
		Style:       DefaultStyle(),
		Shortcut:    ModCtrl,
		Clock:       time.Now,
	}
}

// FrameResult is what one frame produced.
type FrameResult struct {
	Commands *CommandList

	// RequestRedraw is set while animations are running.
	RequestRedraw bool

	// RedrawAfter, when non-zero, is how long until the next caret blink
	// needs a frame.
	RedrawAfter time.Duration
}

// Loop drives frames for an application with state S: it rebuilds the view
// tree from state, lays it out, draws it and routes input events between
// frames.
//
// Frame and HandleEvent must be called from one goroutine. RequestRedraw and
// NeedsRedraw may be called from any goroutine.
type Loop[S any] struct {
	ctx    *Context[S]
	frame  *Frame
	view   func(state *S) View[S]
	layout Layout[S]
	clock  func() time.Time
	logger *slog.Logger

	viewport Area

	dirty      atomic.Bool
	paused     atomic.Bool
	frameCount atomic.Uint64
	eventCount atomic.Uint64
}

// NewLoop creates a loop over state. view builds the tree every frame.
func NewLoop[S any](state *S, view func(state *S) View[S], config LoopConfig) *Loop[S] {
	def := DefaultLoopConfig()
	if config.Clock == nil {
		config.Clock = def.Clock
	}
	if config.Timing.Duration == 0 && config.Timing.Easing == nil {
		config.Timing = def.Timing
	}
	if config.Style == (Style{}) {
		config.Style = def.Style
	}
	if config.Shortcut == 0 {
		config.Shortcut = def.Shortcut
	}
	if config.Measurer == nil {
		config.Measurer = DefaultMeasurer()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Assets == nil {
		config.Assets = NewAssetCache(nil, config.Logger)
	}

	f := &Frame{
		Now:    config.Clock(),
		Timing: config.Timing,
		Store:  NewViewStore(config.GraceFrames),
		Text:   config.Measurer,
		Assets: config.Assets,
		Logger: config.Logger,
	}
	ctx := NewContext(state, f)
	ctx.Style = config.Style
	ctx.Shortcut = config.Shortcut

	l := &Loop[S]{
		ctx:      ctx,
		frame:    f,
		view:     view,
		layout:   StackLayout[S]{},
		clock:    config.Clock,
		logger:   config.Logger,
		viewport: Area{Width: config.Width, Height: config.Height},
	}
	l.dirty.Store(true)
	return l
}

// Context returns the loop's context.
func (l *Loop[S]) Context() *Context[S] {
	return l.ctx
}

// State returns the application state.
func (l *Loop[S]) State() *S {
	return l.ctx.state
}

// SetLayout replaces the layout solver.
func (l *Loop[S]) SetLayout(layout Layout[S]) {
	l.layout = layout
}

// Viewport returns the current root area.
func (l *Loop[S]) Viewport() Area {
	return l.viewport
}

// RequestRedraw marks the loop dirty. Background work calls this when it
// has written results the next frame should show.
func (l *Loop[S]) RequestRedraw() {
	l.dirty.Store(true)
}

// NeedsRedraw reports whether input or a redraw request arrived since the
// last frame.
func (l *Loop[S]) NeedsRedraw() bool {
	return l.dirty.Load()
}

// Pause stops Frame from drawing until Resume.
func (l *Loop[S]) Pause() {
	l.paused.Store(true)
}

// Resume resumes a paused loop.
func (l *Loop[S]) Resume() {
	l.paused.Store(false)
}

// IsPaused returns whether the loop is paused.
func (l *Loop[S]) IsPaused() bool {
	return l.paused.Load()
}

// Frame runs one draw pass. The caller owns the returned command list and
// should Release it once replayed.
func (l *Loop[S]) Frame() FrameResult {
	if l.paused.Load() {
		return FrameResult{Commands: NewCommandList()}
	}
	l.dirty.Store(false)

	ctx, f := l.ctx, l.frame
	now := l.clock()
	f.Number++
	f.Now = now
	cmds := NewCommandList()
	f.Scene = cmds

	ctx.beginFrame()
	ctx.Viewport = l.viewport

	root := l.view(ctx.state)
	placements := l.layout.Compute(root, l.viewport, ctx)
	l.checkPlacements(placements)
	for _, p := range placements {
		p.View.Draw(p.Area, ctx)
	}
	ctx.runDeferred()

	// An editor whose field was not drawn has nothing left to edit.
	if e, ok := ctx.Editing(); ok {
		if _, drawn := ctx.Gestures.AreaOf(e.ID); !drawn {
			ctx.EndEdit()
		}
	}

	if removed := ctx.endFrame(); removed > 0 {
		l.logger.Debug("view store swept", "frame", f.Number, "removed", removed, "live", f.Store.Len())
	}
	l.frameCount.Add(1)

	res := FrameResult{Commands: cmds, RequestRedraw: f.Store.Animating(now)}
	if e, ok := ctx.Editing(); ok && !res.RequestRedraw {
		res.RedrawAfter = max(e.NextBlink(now).Sub(now), time.Millisecond)
	}
	return res
}

// checkPlacements logs identities the layout placed more than once.
func (l *Loop[S]) checkPlacements(ps []Placement[S]) {
	if len(ps) < 2 {
		return
	}
	seen := make(map[NodeID]struct{}, len(ps))
	for _, p := range ps {
		id := p.View.ID()
		if _, dup := seen[id]; dup {
			l.logger.Warn("identity placed more than once", "id", id, "frame", l.frame.Number)
			continue
		}
		seen[id] = struct{}{}
	}
}

// HandleEvent routes one input event against the registry built by the last
// frame. Handlers run synchronously and may mutate the application state.
func (l *Loop[S]) HandleEvent(e Event) {
	ctx := l.ctx
	ctx.Now = l.clock()
	state := ctx.state
	l.eventCount.Add(1)

	switch e.Type {
	case EventPointerMoved:
		ctx.Gestures.PointerMoved(state, e.Position)
	case EventPointerDown:
		hit := ctx.Gestures.PointerDown(state, e.Position)
		if ed, ok := ctx.Editing(); ok {
			if !hit || ctx.Gestures.State().Capturer != ed.ID {
				ctx.EndEdit()
			}
		}
	case EventPointerUp:
		ctx.Gestures.PointerUp(state, e.Position)
		if ed, ok := ctx.Editing(); ok {
			ed.Release()
		}
	case EventKeyPressed:
		ctx.KeyPressed(e.Key, e.Modifiers)
	case EventKeyReleased:
		// Nothing consumes releases yet.
	case EventTextInput:
		ctx.TextInput(e.Text)
	case EventScroll:
		ctx.Gestures.Scroll(state, e.Position, e.Delta)
	case EventResize:
		l.viewport = Area{Width: e.Size.Width, Height: e.Size.Height}
	default:
		l.logger.Debug("unhandled event", "type", e.Type)
		return
	}
	l.dirty.Store(true)
}

// Stats returns loop statistics.
func (l *Loop[S]) Stats() LoopStats {
	return LoopStats{
		FrameCount: l.frameCount.Load(),
		EventCount: l.eventCount.Load(),
	}
}

// LoopStats contains loop counters.
type LoopStats struct {
	FrameCount uint64
	EventCount uint64
}
