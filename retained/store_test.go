package retained

import (
	"strings"
	"testing"
)

func drawRect(store *ViewStore, id NodeID, fill Color) *CommandList {
	cmds := NewCommandList()
	(&Rect{Node: id, Fill: fill}).DrawInterpolated(Area{Width: 10, Height: 10}, NewFrame(t0, store, cmds), true, 1)
	return cmds
}

func TestStoreKeepsStateAcrossFrames(t *testing.T) {
	store := NewViewStore(1)
	id := ID("box")

	store.BeginFrame()
	drawRect(store, id, RGB(1, 2, 3))
	if !store.Has(id) || store.Len() != 1 {
		t.Fatalf("store after first draw: has=%v len=%d", store.Has(id), store.Len())
	}
	if n := store.Sweep(); n != 0 {
		t.Errorf("Sweep() removed %d drawn entries", n)
	}

	store.BeginFrame()
	drawRect(store, id, RGB(1, 2, 3))
	if n := store.Sweep(); n != 0 {
		t.Errorf("Sweep() removed %d", n)
	}
	if !store.Has(id) {
		t.Error("identity lost between frames")
	}
}

func TestStoreSweepsUndrawn(t *testing.T) {
	store := NewViewStore(2)
	kept, dropped := ID("kept"), ID("dropped")

	store.BeginFrame()
	drawRect(store, kept, 0)
	drawRect(store, dropped, 0)
	store.Sweep()

	store.BeginFrame()
	drawRect(store, kept, 0)
	if n := store.Sweep(); n != 0 {
		t.Errorf("Sweep() inside grace removed %d", n)
	}

	store.BeginFrame()
	drawRect(store, kept, 0)
	if n := store.Sweep(); n != 1 {
		t.Errorf("Sweep() removed %d, want 1", n)
	}
	if store.Has(dropped) || !store.Has(kept) {
		t.Errorf("after sweep: kept=%v dropped=%v", store.Has(kept), store.Has(dropped))
	}
}

func TestStoreZeroGraceKeepsEverything(t *testing.T) {
	store := NewViewStore(0)
	store.BeginFrame()
	drawRect(store, ID("x"), 0)
	for range 10 {
		store.BeginFrame()
		if n := store.Sweep(); n != 0 {
			t.Fatalf("Sweep() = %d with eviction disabled", n)
		}
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStoreKindMismatchPanics(t *testing.T) {
	store := NewViewStore(1)
	id := ID("shared")
	store.BeginFrame()
	drawRect(store, id, 0)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("drawing text over a rect identity did not panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "reused across view kinds") {
			t.Errorf("panic = %v", r)
		}
	}()
	(&Text{Node: id, Content: "oops"}).DrawInterpolated(Area{Width: 10, Height: 10}, NewFrame(t0, store, NewCommandList()), true, 1)
}

func TestStoreShapeMismatchPanics(t *testing.T) {
	store := NewViewStore(1)
	id := ID("shape")
	store.BeginFrame()
	drawRect(store, id, 0)

	defer func() {
		if recover() == nil {
			t.Fatal("drawing a circle over a rect identity did not panic")
		}
	}()
	(&Circle{Node: id}).DrawInterpolated(Area{Width: 10, Height: 10}, NewFrame(t0, store, NewCommandList()), true, 1)
}

func TestStoreAnimating(t *testing.T) {
	store := NewViewStore(1)
	id := ID("fade")
	tm := linear(100)
	store.BeginFrame()
	(&Rect{Node: id, Fill: RGB(0, 0, 0), Transition: &tm}).DrawInterpolated(Area{Width: 1, Height: 1}, NewFrame(at(0), store, NewCommandList()), true, 1)
	if store.Animating(at(0)) {
		t.Error("animating before any change")
	}
	store.BeginFrame()
	(&Rect{Node: id, Fill: RGB(255, 0, 0), Transition: &tm}).DrawInterpolated(Area{Width: 1, Height: 1}, NewFrame(at(0), store, NewCommandList()), true, 1)
	if !store.Animating(at(50)) {
		t.Error("not animating mid-transition")
	}
	if store.Animating(at(100)) {
		t.Error("animating after transition end")
	}
}
