package retained

// ============================================================================
// Gesture Events
// ============================================================================

// ClickPhase identifies where a click is in its press/release cycle.
type ClickPhase uint8

const (
	ClickStarted   ClickPhase = iota + 1 // Pointer pressed over the target
	ClickCompleted                       // Released inside the target's current area
	ClickCancelled                       // Released outside it
)

// ClickEvent is delivered to OnClick handlers.
type ClickEvent struct {
	Phase    ClickPhase
	Position Point
	Local    Point // Position relative to the target's area
}

// DragPhase identifies where a drag is in its lifecycle.
type DragPhase uint8

const (
	DragUpdated DragPhase = iota + 1
	DragCompleted
)

// DragEvent is delivered to OnDrag handlers.
type DragEvent struct {
	Phase    DragPhase
	Start    Point
	Current  Point
	Distance float32 // Straight-line distance from Start to Current
	Area     Area    // The capturer's area this frame
}

// Handlers are the callbacks a view registers for its area. Each receives the
// application state synchronously during dispatch.
type Handlers[S any] struct {
	OnClick  func(state *S, e ClickEvent)
	OnDrag   func(state *S, e DragEvent)
	OnHover  func(state *S, hovered bool)
	OnScroll func(state *S, delta float32)
}

// pressable reports whether the handlers make the view a press target.
func (h Handlers[S]) pressable() bool {
	return h.OnClick != nil || h.OnDrag != nil
}

// ============================================================================
// Gesture Dispatch
// ============================================================================

type registration[S any] struct {
	id       NodeID
	area     Area
	hit      Area // area cut to the enclosing clips
	handlers Handlers[S]
}

// GestureState is Idle (Dragging == false) or Dragging with the press point
// and capturing identity.
type GestureState struct {
	Dragging bool
	Start    Point
	Capturer NodeID
}

// Gestures routes pointer input onto the areas recorded during the last draw
// pass. The registry is rebuilt every frame; only the drag capture and the
// cursor survive between frames.
type Gestures[S any] struct {
	registry []registration[S]
	clips    []Area
	state    GestureState
	cursor   Point
}

// NewGestures creates an empty dispatcher.
func NewGestures[S any]() *Gestures[S] {
	return &Gestures[S]{registry: make([]registration[S], 0, 64)}
}

// Reset clears the registry at the start of a draw pass.
func (g *Gestures[S]) Reset() {
	for i := range g.registry {
		g.registry[i] = registration[S]{}
	}
	g.registry = g.registry[:0]
	g.clips = g.clips[:0]
}

// PushClip limits the hit area of later registrations to a, intersected
// with any clip already pushed. Events still report the full area.
func (g *Gestures[S]) PushClip(a Area) {
	if n := len(g.clips); n > 0 {
		a = a.Intersect(g.clips[n-1])
	}
	g.clips = append(g.clips, a)
}

// PopClip removes the innermost clip.
func (g *Gestures[S]) PopClip() {
	if n := len(g.clips); n > 0 {
		g.clips = g.clips[:n-1]
	}
}

// Record registers handlers for id over area. Registration order is draw
// order; later registrations sit on top.
func (g *Gestures[S]) Record(id NodeID, area Area, h Handlers[S]) {
	hit := area
	if n := len(g.clips); n > 0 {
		hit = area.Intersect(g.clips[n-1])
	}
	g.registry = append(g.registry, registration[S]{id: id, area: area, hit: hit, handlers: h})
}

// Len returns the number of registrations this frame.
func (g *Gestures[S]) Len() int {
	return len(g.registry)
}

// State returns the current gesture state.
func (g *Gestures[S]) State() GestureState {
	return g.state
}

// Cursor returns the last pointer position seen.
func (g *Gestures[S]) Cursor() Point {
	return g.cursor
}

// AreaOf returns the area id was registered with this frame.
func (g *Gestures[S]) AreaOf(id NodeID) (Area, bool) {
	if r := g.lookup(id); r != nil {
		return r.area, true
	}
	return Area{}, false
}

// lookup finds the topmost registration for id.
func (g *Gestures[S]) lookup(id NodeID) *registration[S] {
	for i := len(g.registry) - 1; i >= 0; i-- {
		if g.registry[i].id == id {
			return &g.registry[i]
		}
	}
	return nil
}

// HitTest returns the topmost press target containing p.
func (g *Gestures[S]) HitTest(p Point) (NodeID, bool) {
	if r := g.hitTest(p, Handlers[S].pressable); r != nil {
		return r.id, true
	}
	return 0, false
}

// hitTest searches in reverse draw order so the last-drawn area wins.
func (g *Gestures[S]) hitTest(p Point, accept func(Handlers[S]) bool) *registration[S] {
	for i := len(g.registry) - 1; i >= 0; i-- {
		r := &g.registry[i]
		if r.hit.Contains(p) && accept(r.handlers) {
			return r
		}
	}
	return nil
}

// PointerMoved updates hover on every registration, then continues an active
// drag. Hover runs even while dragging, since disjoint views can each care
// about it.
func (g *Gestures[S]) PointerMoved(state *S, p Point) {
	g.cursor = p

	for i := range g.registry {
		r := &g.registry[i]
		if r.handlers.OnHover != nil {
			r.handlers.OnHover(state, r.hit.Contains(p))
		}
	}

	if !g.state.Dragging {
		return
	}
	r := g.lookup(g.state.Capturer)
	if r == nil || r.handlers.OnDrag == nil {
		return
	}
	r.handlers.OnDrag(state, DragEvent{
		Phase:    DragUpdated,
		Start:    g.state.Start,
		Current:  p,
		Distance: g.state.Start.Distance(p),
		Area:     r.area,
	})
}

// PointerDown starts a press on the topmost target under p.
// It returns false when nothing was hit.
func (g *Gestures[S]) PointerDown(state *S, p Point) bool {
	g.cursor = p
	r := g.hitTest(p, Handlers[S].pressable)
	if r == nil {
		return false
	}

	id, area, h := r.id, r.area, r.handlers
	g.state = GestureState{Dragging: true, Start: p, Capturer: id}
	if h.OnClick != nil {
		h.OnClick(state, ClickEvent{Phase: ClickStarted, Position: p, Local: area.LocalPoint(p)})
	}
	return true
}

// PointerUp ends a press. The capturer is looked up by identity in the
// current registry, since it may have moved since the press. The state
// always returns to Idle, even if the capturer is gone.
func (g *Gestures[S]) PointerUp(state *S, p Point) {
	g.cursor = p
	if !g.state.Dragging {
		return
	}
	start, capturer := g.state.Start, g.state.Capturer
	g.state = GestureState{}

	r := g.lookup(capturer)
	if r == nil {
		return
	}
	area, h := r.area, r.handlers

	if h.OnClick != nil {
		phase := ClickCancelled
		if r.hit.Contains(p) {
			phase = ClickCompleted
		}
		h.OnClick(state, ClickEvent{Phase: phase, Position: p, Local: area.LocalPoint(p)})
	}
	if h.OnDrag != nil {
		h.OnDrag(state, DragEvent{
			Phase:    DragCompleted,
			Start:    start,
			Current:  p,
			Distance: start.Distance(p),
			Area:     area,
		})
	}
}

// Scroll routes a scroll delta to the topmost scroll target under p.
func (g *Gestures[S]) Scroll(state *S, p Point, delta float32) bool {
	r := g.hitTest(p, func(h Handlers[S]) bool { return h.OnScroll != nil })
	if r == nil {
		return false
	}
	r.handlers.OnScroll(state, delta)
	return true
}
