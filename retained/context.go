package retained

// View is a node in the tree an application rebuilds every frame from its
// state S. Leaf views wrap drawables; containers arrange children; controls
// compose both with gestures.
type View[S any] interface {
	ID() NodeID

	// SizeConstraints is a pure query for the layout pass. false means fill
	// the assigned area.
	SizeConstraints(available Area, ctx *Context[S]) (Constraints, bool)

	// Draw draws the view into area and records its gesture handlers.
	Draw(area Area, ctx *Context[S])
}

// Clipboard is the system clipboard as seen by text editing.
type Clipboard interface {
	ReadText() string
	WriteText(text string)
}

// MemoryClipboard is a process-local Clipboard.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) ReadText() string      { return c.text }
func (c *MemoryClipboard) WriteText(text string) { c.text = text }

type scrollerEntry struct {
	state     *ScrollerState
	lastFrame uint64
}

// Interaction is the pointer state a control keeps between frames.
type Interaction struct {
	Hovered bool
	Pressed bool

	lastFrame uint64
}

// Context is everything a view sees while drawing and everything a handler
// sees while dispatching: the frame, the gesture registry, the active
// editor, per-list scroller state and the application state.
//
// A Context lives as long as its Loop and is only used from the frame
// goroutine.
type Context[S any] struct {
	*Frame

	Gestures  *Gestures[S]
	Style     Style
	Clipboard Clipboard

	// Shortcut is the modifier that triggers editing shortcuts: ModSuper on
	// macOS, ModCtrl elsewhere.
	Shortcut Modifiers

	// Viewport is the area the root view was laid out in this frame.
	Viewport Area

	state        *S
	edit         *EditState[S]
	scrollers    map[NodeID]*scrollerEntry
	interactions map[NodeID]*Interaction
	deferred     []func()
}

// NewContext creates a context over state drawing through f.
func NewContext[S any](state *S, f *Frame) *Context[S] {
	return &Context[S]{
		Frame:        f,
		Gestures:     NewGestures[S](),
		Style:        DefaultStyle(),
		Clipboard:    &MemoryClipboard{},
		Shortcut:     ModCtrl,
		state:        state,
		scrollers:    make(map[NodeID]*scrollerEntry),
		interactions: make(map[NodeID]*Interaction),
	}
}

// State returns the application state.
func (c *Context[S]) State() *S {
	return c.state
}

// Record registers gesture handlers for id over area.
func (c *Context[S]) Record(id NodeID, area Area, h Handlers[S]) {
	c.Gestures.Record(id, area, h)
}

// Scroller returns the scroller state kept for a list identity, creating it
// on first use.
func (c *Context[S]) Scroller(id NodeID) *ScrollerState {
	e, ok := c.scrollers[id]
	if !ok {
		e = &scrollerEntry{state: &ScrollerState{}}
		c.scrollers[id] = e
	}
	e.lastFrame = c.Store.Frame()
	return e.state
}

// Interaction returns the hover/press state kept for a control identity.
func (c *Context[S]) Interaction(id NodeID) *Interaction {
	it, ok := c.interactions[id]
	if !ok {
		it = &Interaction{}
		c.interactions[id] = it
	}
	it.lastFrame = c.Store.Frame()
	return it
}

// Defer schedules fn to draw after the rest of the tree, so its output and
// gestures sit above everything drawn this frame. Popups use it.
func (c *Context[S]) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

// beginFrame prepares the context for a draw pass.
func (c *Context[S]) beginFrame() {
	c.Gestures.Reset()
	c.Store.BeginFrame()
	c.deferred = c.deferred[:0]
}

// runDeferred drains deferred draws, including any they defer in turn.
func (c *Context[S]) runDeferred() {
	for i := 0; i < len(c.deferred); i++ {
		c.deferred[i]()
	}
	clear(c.deferred)
	c.deferred = c.deferred[:0]
}

// endFrame evicts state for identities that were not drawn and returns the
// number of view store entries removed.
func (c *Context[S]) endFrame() int {
	for id, e := range c.scrollers {
		if c.Store.stale(e.lastFrame) {
			delete(c.scrollers, id)
		}
	}
	for id, it := range c.interactions {
		if c.Store.stale(it.lastFrame) {
			delete(c.interactions, id)
		}
	}
	return c.Store.Sweep()
}

// ============================================================================
// Drawable Views
// ============================================================================

// Visual adapts a Drawable into a view.
type Visual[S any] struct {
	Drawable Drawable

	// Hidden and Amount control fading. Amount is only read when Faded is
	// set; otherwise the drawable is fully visible unless Hidden.
	Hidden bool
	Amount float32
	Faded  bool
}

// Draw wraps a drawable as a fully visible view.
func Draw[S any](d Drawable) *Visual[S] {
	return &Visual[S]{Drawable: d}
}

// Fade wraps a drawable with an explicit visibility and fade amount.
func Fade[S any](d Drawable, visible bool, amount float32) *Visual[S] {
	return &Visual[S]{Drawable: d, Hidden: !visible, Amount: amount, Faded: true}
}

func (v *Visual[S]) ID() NodeID { return v.Drawable.ID() }

func (v *Visual[S]) SizeConstraints(available Area, ctx *Context[S]) (Constraints, bool) {
	return v.Drawable.SizeConstraints(available, ctx.Frame)
}

func (v *Visual[S]) Draw(area Area, ctx *Context[S]) {
	amount := v.Amount
	if !v.Faded {
		amount = 1
		if v.Hidden {
			amount = 0
		}
	}
	v.Drawable.DrawInterpolated(area, ctx.Frame, !v.Hidden, amount)
}

// Gesture attaches handlers to a child's area. The child draws after the
// registration, so the child's own handlers sit on top.
type Gesture[S any] struct {
	Node     NodeID
	Child    View[S]
	Handlers Handlers[S]
}

func (g *Gesture[S]) ID() NodeID { return g.Node }

func (g *Gesture[S]) SizeConstraints(available Area, ctx *Context[S]) (Constraints, bool) {
	return g.Child.SizeConstraints(available, ctx)
}

func (g *Gesture[S]) Draw(area Area, ctx *Context[S]) {
	ctx.Record(g.Node, area, g.Handlers)
	g.Child.Draw(area, ctx)
}

// OnClick attaches a click handler that fires when a press completes inside
// the view.
func OnClick[S any](id NodeID, child View[S], fn func(state *S)) *Gesture[S] {
	return &Gesture[S]{
		Node:  id,
		Child: child,
		Handlers: Handlers[S]{OnClick: func(s *S, e ClickEvent) {
			if e.Phase == ClickCompleted {
				fn(s)
			}
		}},
	}
}
