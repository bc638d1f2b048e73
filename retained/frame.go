package retained

import (
	"log/slog"
	"time"
)

// Frame provides the draw context for one pass over the view tree.
// Drawables read the clock from it, keep their animation state in its store
// and emit commands into its scene.
type Frame struct {
	// Number is the monotonically increasing frame counter.
	Number uint64

	// Now is the wall-clock time every animation in this frame samples.
	Now time.Time

	// Timing is applied to drawables that don't set their own.
	Timing Timing

	Scene  Scene
	Store  *ViewStore
	Text   TextMeasurer
	Assets *AssetCache
	Logger *slog.Logger
}

// NewFrame creates a standalone draw context, mostly useful for tests and
// for drawing outside a Loop.
func NewFrame(now time.Time, store *ViewStore, scene Scene) *Frame {
	return &Frame{
		Now:    now,
		Timing: DefaultTiming(),
		Scene:  scene,
		Store:  store,
		Text:   DefaultMeasurer(),
		Assets: NewAssetCache(nil, nil),
		Logger: slog.Default(),
	}
}

// timing resolves a drawable's optional timing override.
func (f *Frame) timing(t *Timing) Timing {
	if t != nil {
		return *t
	}
	return f.Timing
}
