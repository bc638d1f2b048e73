package retained

import (
	"fmt"
	"time"
)

// ============================================================================
// Animated View Variants
// ============================================================================

// viewKind tags the animated state stored under an identity.
type viewKind uint8

const (
	viewShape viewKind = iota + 1
	viewText
	viewImage
	viewSVG
)

func (k viewKind) String() string {
	switch k {
	case viewShape:
		return "shape"
	case viewText:
		return "text"
	case viewImage:
		return "image"
	case viewSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// animatedView is the closed set of per-identity animation states.
type animatedView interface {
	kind() viewKind
	animating(now time.Time) bool
}

// animatedFrame animates a view's area.
type animatedFrame struct {
	x, y, w, h AnimatedScalar
}

func newAnimatedFrame(a Area, timing Timing) animatedFrame {
	return animatedFrame{
		x: NewAnimatedScalar(a.X, timing),
		y: NewAnimatedScalar(a.Y, timing),
		w: NewAnimatedScalar(a.Width, timing),
		h: NewAnimatedScalar(a.Height, timing),
	}
}

func (f *animatedFrame) setTiming(t Timing) {
	f.x.SetTiming(t)
	f.y.SetTiming(t)
	f.w.SetTiming(t)
	f.h.SetTiming(t)
}

func (f *animatedFrame) transition(a Area, now time.Time) {
	f.x.Transition(a.X, now)
	f.y.Transition(a.Y, now)
	f.w.Transition(a.Width, now)
	f.h.Transition(a.Height, now)
}

func (f *animatedFrame) value(now time.Time) Area {
	return Area{X: f.x.Value(now), Y: f.y.Value(now), Width: f.w.Value(now), Height: f.h.Value(now)}
}

func (f *animatedFrame) animating(now time.Time) bool {
	return f.x.Animating(now) || f.y.Animating(now) || f.w.Animating(now) || f.h.Animating(now)
}

// ============================================================================
// View Store
// ============================================================================

type storeEntry struct {
	view      animatedView
	lastFrame uint64 // Frame number the entry was last drawn in
}

// ViewStore maps identities to their animation state. It survives across
// frames and is owned by the frame driver; all access happens on the frame
// goroutine.
//
// A draw call takes its entry out of the store and puts it back when done, so
// drawing the same identity twice in one frame means the last draw wins.
type ViewStore struct {
	entries map[NodeID]*storeEntry
	frame   uint64

	// grace is how many frames an identity may go undrawn before Sweep evicts
	// it. Zero disables eviction.
	grace uint64
}

// NewViewStore creates an empty store. graceFrames of zero keeps every
// identity for the life of the store.
func NewViewStore(graceFrames int) *ViewStore {
	if graceFrames < 0 {
		graceFrames = 0
	}
	return &ViewStore{
		entries: make(map[NodeID]*storeEntry),
		grace:   uint64(graceFrames),
	}
}

// BeginFrame advances the store's frame counter.
func (s *ViewStore) BeginFrame() {
	s.frame++
}

// Len returns the number of stored identities.
func (s *ViewStore) Len() int {
	return len(s.entries)
}

// Has reports whether an identity has stored state.
func (s *ViewStore) Has(id NodeID) bool {
	_, ok := s.entries[id]
	return ok
}

// take removes and returns the state for id.
func (s *ViewStore) take(id NodeID) (animatedView, bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	delete(s.entries, id)
	return e.view, true
}

// put stores v under id, marking it as drawn this frame.
func (s *ViewStore) put(id NodeID, v animatedView) {
	s.entries[id] = &storeEntry{view: v, lastFrame: s.frame}
}

// Sweep evicts identities that have not been drawn within the grace period
// and returns how many were removed.
func (s *ViewStore) Sweep() int {
	if s.grace == 0 {
		return 0
	}
	removed := 0
	for id, e := range s.entries {
		if s.stale(e.lastFrame) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// stale reports whether something last touched in frame last is past the
// grace period.
func (s *ViewStore) stale(last uint64) bool {
	return s.grace > 0 && s.frame-last >= s.grace
}

// Frame returns the store's frame counter.
func (s *ViewStore) Frame() uint64 {
	return s.frame
}

// Animating reports whether any stored view is still moving at now.
func (s *ViewStore) Animating(now time.Time) bool {
	for _, e := range s.entries {
		if e.view.animating(now) {
			return true
		}
	}
	return false
}

// takeView removes the state for id and checks its variant. Reusing an
// identity for a different view kind is a bug in tree construction and panics.
func takeView[T animatedView](s *ViewStore, id NodeID, want viewKind) (T, bool) {
	var zero T
	v, ok := s.take(id)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("retained: identity %s reused across view kinds: stored %s, drawing %s", id, v.kind(), want))
	}
	return t, true
}
