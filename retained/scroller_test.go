package retained

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// uniform returns a cell source of count cells that are all h tall.
func uniform(count int, h float32) func(int) (float32, bool) {
	return func(i int) (float32, bool) {
		if i < 0 || i >= count {
			return 0, false
		}
		return h, true
	}
}

func indices(cells []RealizedCell) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = c.Index
	}
	return out
}

var viewport = Area{Width: 100, Height: 200}

func TestScrollerInitialFill(t *testing.T) {
	var s ScrollerState
	cells := s.Update(viewport, uniform(20, 50))

	if diff := cmp.Diff([]int{0, 1, 2, 3}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	if s.CompensatedOverscroll != 0 {
		t.Errorf("CompensatedOverscroll = %v, want 0", s.CompensatedOverscroll)
	}
	for i, c := range cells {
		want := Area{Y: float32(i) * 50, Width: 100, Height: 50}
		if c.Area != want {
			t.Errorf("cell %d area = %+v, want %+v", c.Index, c.Area, want)
		}
	}
}

func TestScrollerScrollForward(t *testing.T) {
	var s ScrollerState
	src := uniform(20, 50)
	s.Update(viewport, src)

	s.Scroll(-120)
	cells := s.Update(viewport, src)

	if diff := cmp.Diff([]int{2, 3, 4, 5, 6}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	if s.CompensatedOverscroll != -20 {
		t.Errorf("CompensatedOverscroll = %v, want -20", s.CompensatedOverscroll)
	}
	if s.PendingDelta != 0 {
		t.Errorf("PendingDelta = %v, want it consumed", s.PendingDelta)
	}
	if cells[0].Area.Y != -20 {
		t.Errorf("first cell y = %v, want -20", cells[0].Area.Y)
	}
}

func TestScrollerAccumulatesDeltas(t *testing.T) {
	var a, b ScrollerState
	src := uniform(20, 50)
	a.Update(viewport, src)
	b.Update(viewport, src)

	a.Scroll(-60)
	a.Scroll(-60)
	b.Scroll(-120)

	if diff := cmp.Diff(b.Update(viewport, src), a.Update(viewport, src)); diff != "" {
		t.Errorf("split deltas differ from one delta (-want +got):\n%s", diff)
	}
}

func TestScrollerTopClamp(t *testing.T) {
	var s ScrollerState
	src := uniform(20, 50)
	s.Update(viewport, src)

	s.Scroll(30)
	cells := s.Update(viewport, src)
	if s.CompensatedOverscroll != 0 {
		t.Errorf("CompensatedOverscroll = %v, want 0 at the top", s.CompensatedOverscroll)
	}
	if cells[0].Index != 0 || cells[0].Area.Y != 0 {
		t.Errorf("first cell = %+v, want index 0 at y 0", cells[0])
	}

	// Scrolling back past the top after moving down lands exactly at the top.
	s.Scroll(-70)
	s.Update(viewport, src)
	s.Scroll(500)
	cells = s.Update(viewport, src)
	if diff := cmp.Diff([]int{0, 1, 2, 3}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	if s.CompensatedOverscroll != 0 {
		t.Errorf("CompensatedOverscroll = %v, want 0", s.CompensatedOverscroll)
	}
}

func TestScrollerEndClamp(t *testing.T) {
	var s ScrollerState
	src := uniform(20, 50)
	s.Update(viewport, src)

	s.Scroll(-5000)
	cells := s.Update(viewport, src)

	if diff := cmp.Diff([]int{16, 17, 18, 19}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	last := cells[len(cells)-1].Area
	if last.Y+last.Height != viewport.Height {
		t.Errorf("last cell bottom = %v, want %v", last.Y+last.Height, viewport.Height)
	}
}

func TestScrollerShortList(t *testing.T) {
	var s ScrollerState
	src := uniform(2, 50)
	s.Update(viewport, src)
	s.Scroll(-80)
	cells := s.Update(viewport, src)

	if diff := cmp.Diff([]int{0, 1}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	if s.CompensatedOverscroll != 0 {
		t.Errorf("CompensatedOverscroll = %v, want a short list to rest at the top", s.CompensatedOverscroll)
	}
}

func TestScrollerEmptySource(t *testing.T) {
	var s ScrollerState
	s.Scroll(-40)
	if cells := s.Update(viewport, uniform(0, 50)); len(cells) != 0 {
		t.Errorf("realized %v, want nothing", indices(cells))
	}
}

func TestScrollerScrollTo(t *testing.T) {
	src := uniform(20, 50)
	tests := []struct {
		name  string
		index int
		want  []int
	}{
		{"middle", 10, []int{10, 11, 12, 13}},
		{"near end", 18, []int{16, 17, 18, 19}},
		{"past end", 100, []int{0, 1, 2, 3}},
		{"negative", -3, []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ScrollerState
			s.Update(viewport, src)
			s.Scroll(-75)
			s.ScrollTo(tt.index)
			cells := s.Update(viewport, src)
			if diff := cmp.Diff(tt.want, indices(cells)); diff != "" {
				t.Errorf("realized (-want +got):\n%s", diff)
			}
			if s.CompensatedOverscroll != 0 {
				t.Errorf("CompensatedOverscroll = %v, want 0", s.CompensatedOverscroll)
			}
		})
	}
}

func TestScrollerSourceShrinks(t *testing.T) {
	var s ScrollerState
	s.Update(viewport, uniform(20, 50))
	s.Scroll(-120)
	s.Update(viewport, uniform(20, 50))

	cells := s.Update(viewport, uniform(4, 50))
	if diff := cmp.Diff([]int{0, 1, 2, 3}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	if s.CompensatedOverscroll != 0 {
		t.Errorf("CompensatedOverscroll = %v, want 0", s.CompensatedOverscroll)
	}
}

func TestScrollerHeightsRefresh(t *testing.T) {
	var s ScrollerState
	s.Update(viewport, uniform(20, 50))

	cells := s.Update(viewport, uniform(20, 100))
	if diff := cmp.Diff([]int{0, 1}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
	if got := s.TotalHeight(); got != 200 {
		t.Errorf("TotalHeight = %v, want 200", got)
	}
}

func TestScrollerZeroHeightSourceIsBounded(t *testing.T) {
	flat := func(i int) (float32, bool) { return 0, i >= 0 }
	contiguous := func(cells []RealizedCell) bool {
		for i := 1; i < len(cells); i++ {
			if cells[i].Index != cells[i-1].Index+1 {
				return false
			}
		}
		return true
	}

	var s ScrollerState
	for i := range 3 {
		cells := s.Update(viewport, flat)
		if len(cells) != maxWindowCells {
			t.Errorf("update %d realized %d cells, want %d", i, len(cells), maxWindowCells)
		}
	}

	s.Scroll(-10)
	cells := s.Update(viewport, flat)
	if len(cells) == 0 || len(cells) > maxWindowCells || !contiguous(cells) {
		t.Errorf("after scrolling forward: %d cells, contiguous %v", len(cells), contiguous(cells))
	}

	s.Scroll(500)
	cells = s.Update(viewport, flat)
	if len(cells) > maxWindowCells || !contiguous(cells) {
		t.Errorf("after scrolling back: %d cells, contiguous %v", len(cells), contiguous(cells))
	}
	if s.CompensatedOverscroll > 0 {
		t.Errorf("CompensatedOverscroll = %v, want <= 0", s.CompensatedOverscroll)
	}
}

func TestScrollerUpdateWith(t *testing.T) {
	type rows struct{ n int }
	var s ScrollerState
	cells := UpdateWith(&s, viewport, &rows{n: 3}, func(r *rows, i int) (float32, bool) {
		return 40, i < r.n
	})
	if diff := cmp.Diff([]int{0, 1, 2}, indices(cells)); diff != "" {
		t.Errorf("realized (-want +got):\n%s", diff)
	}
}

// The window stays contiguous and covers the viewport, overfilled by at most
// one cell, under any sequence of scroll input.
func TestScrollerWindowProperty(t *testing.T) {
	const count = 200
	heights := make([]float32, count)
	rng := rand.New(rand.NewSource(1))
	for i := range heights {
		heights[i] = float32(10 + rng.Intn(71))
	}
	src := func(i int) (float32, bool) {
		if i < 0 || i >= count {
			return 0, false
		}
		return heights[i], true
	}

	var s ScrollerState
	for step := range 2000 {
		for range rng.Intn(3) {
			s.Scroll(float32(rng.Intn(601) - 300))
		}
		cells := s.Update(viewport, src)
		if len(cells) == 0 {
			t.Fatalf("step %d: empty window", step)
		}

		for i := 1; i < len(cells); i++ {
			if cells[i].Index != cells[i-1].Index+1 {
				t.Fatalf("step %d: window not contiguous: %v", step, indices(cells))
			}
			if cells[i].Area.Y != cells[i-1].Area.Y+cells[i-1].Area.Height {
				t.Fatalf("step %d: cells %d and %d are not adjacent", step, cells[i-1].Index, cells[i].Index)
			}
		}

		c := s.CompensatedOverscroll
		first, last := s.Window[0], s.Window[len(s.Window)-1]
		total := s.TotalHeight()
		switch {
		case c > 0:
			t.Fatalf("step %d: CompensatedOverscroll = %v, want <= 0", step, c)
		case -c >= first.Height:
			t.Fatalf("step %d: first cell %d (%v tall) is above the viewport at %v", step, first.Index, first.Height, c)
		case total+c < viewport.Height:
			t.Fatalf("step %d: underfilled: %v of %v", step, total+c, viewport.Height)
		case total-last.Height+c >= viewport.Height:
			t.Fatalf("step %d: overfilled by more than one cell", step)
		}
	}
}
