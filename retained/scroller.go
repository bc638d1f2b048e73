package retained

import "slices"

// maxWindowCells bounds the realized window. A source of zero-height cells
// never covers the viewport, so without a cap it would grow every update.
const maxWindowCells = 4096

// Element is one realized cell in a scroller's window.
type Element struct {
	Height float32
	Index  int
}

// RealizedCell is a realized cell with the area it renders into.
type RealizedCell struct {
	Index int
	Area  Area
}

// ScrollerState is the sliding window of realized cells for a virtualized
// list. The window is always index-contiguous and ascending.
//
// CompensatedOverscroll is the offset of the first realized cell's top from
// the viewport top. It is never positive: scrolling past index 0 clamps it
// to zero.
type ScrollerState struct {
	Window                []Element
	PendingDelta          float32
	CompensatedOverscroll float32
	RenderingOffset       float32

	jump int
}

// Scroll accumulates scroll input until the next Update. Negative deltas move
// content up (toward later cells), positive deltas move it down.
func (s *ScrollerState) Scroll(delta float32) {
	s.PendingDelta += delta
}

// ScrollTo discards the window so the next Update realizes cells starting at
// index, aligned to the viewport top. Near the end of the list the window is
// clamped as usual.
func (s *ScrollerState) ScrollTo(index int) {
	s.Window = s.Window[:0]
	s.PendingDelta = 0
	s.CompensatedOverscroll = 0
	s.jump = max(index, 0)
}

// Update applies pending scroll input against the latest available area and
// returns the realized cells. cellHeight returns false past the end of the
// list.
func (s *ScrollerState) Update(available Area, cellHeight func(index int) (float32, bool)) []RealizedCell {
	h := available.Height

	s.refreshHeights(cellHeight)
	if len(s.Window) == 0 {
		s.CompensatedOverscroll = 0
		s.fillForward(h, cellHeight)
		if len(s.Window) == 0 && s.jump > 0 {
			s.jump = 0
			s.fillForward(h, cellHeight)
		}
		s.jump = 0
	}

	delta := s.PendingDelta
	s.PendingDelta = 0
	switch {
	case delta < 0:
		s.scrollForward(delta, h, cellHeight)
	case delta > 0:
		s.scrollBackward(delta, cellHeight)
	}

	s.fillForward(h, cellHeight)
	s.trimBack(h)
	s.clampEnd(h, cellHeight)

	total := s.totalHeight()
	s.RenderingOffset = -(h-total)*0.5 + s.CompensatedOverscroll

	cells := make([]RealizedCell, len(s.Window))
	y := available.Y + s.CompensatedOverscroll
	for i, e := range s.Window {
		cells[i] = RealizedCell{
			Index: e.Index,
			Area:  Area{X: available.X, Y: y, Width: available.Width, Height: e.Height},
		}
		y += e.Height
	}
	return cells
}

// UpdateWith is Update for a cell-height callback that reads application state.
func UpdateWith[S any](s *ScrollerState, available Area, state *S, cellHeight func(state *S, index int) (float32, bool)) []RealizedCell {
	return s.Update(available, func(i int) (float32, bool) { return cellHeight(state, i) })
}

// TotalHeight returns the summed height of the realized window.
func (s *ScrollerState) TotalHeight() float32 {
	return s.totalHeight()
}

func (s *ScrollerState) totalHeight() float32 {
	var total float32
	for _, e := range s.Window {
		total += e.Height
	}
	return total
}

// refreshHeights re-reads the heights of realized cells and drops any that
// no longer exist.
func (s *ScrollerState) refreshHeights(cellHeight func(int) (float32, bool)) {
	for i := range s.Window {
		ch, ok := cellHeight(s.Window[i].Index)
		if !ok {
			s.Window = s.Window[:i]
			return
		}
		s.Window[i].Height = ch
	}
}

// fillForward realizes cells after the window until the viewport is covered
// or the source is exhausted.
func (s *ScrollerState) fillForward(h float32, cellHeight func(int) (float32, bool)) {
	next := s.jump
	if n := len(s.Window); n > 0 {
		next = s.Window[n-1].Index + 1
	}
	total := s.totalHeight()
	for total+s.CompensatedOverscroll < h && len(s.Window) < maxWindowCells {
		ch, ok := cellHeight(next)
		if !ok {
			return
		}
		s.Window = append(s.Window, Element{Height: ch, Index: next})
		total += ch
		next++
	}
}

// scrollForward moves content up, evicting leading cells whose height the
// compensation has fully consumed. A long run of zero-height cells stops it.
func (s *ScrollerState) scrollForward(delta, h float32, cellHeight func(int) (float32, bool)) {
	s.CompensatedOverscroll += delta
	for zeros := 0; zeros < maxWindowCells; {
		s.fillForward(h, cellHeight)
		if len(s.Window) <= 1 || s.CompensatedOverscroll == 0 {
			return
		}
		first := s.Window[0]
		if first.Height > -s.CompensatedOverscroll {
			return
		}
		if first.Height == 0 {
			zeros++
		} else {
			zeros = 0
		}
		s.Window = slices.Delete(s.Window, 0, 1)
		s.CompensatedOverscroll += first.Height
	}
}

// scrollBackward moves content down, realizing earlier cells as space opens
// at the top. At index 0 the compensation is zeroed instead of overscrolling.
func (s *ScrollerState) scrollBackward(delta float32, cellHeight func(int) (float32, bool)) {
	s.CompensatedOverscroll += delta
	s.prependWhileExposed(cellHeight)
	if s.CompensatedOverscroll > 0 {
		s.CompensatedOverscroll = 0
	}
}

func (s *ScrollerState) prependWhileExposed(cellHeight func(int) (float32, bool)) {
	for s.CompensatedOverscroll > 0 && len(s.Window) > 0 && len(s.Window) < maxWindowCells {
		idx := s.Window[0].Index - 1
		if idx < 0 {
			return
		}
		ch, ok := cellHeight(idx)
		if !ok {
			return
		}
		s.Window = slices.Insert(s.Window, 0, Element{Height: ch, Index: idx})
		s.CompensatedOverscroll -= ch
	}
}

// trimBack evicts trailing cells that start at or below the viewport bottom.
func (s *ScrollerState) trimBack(h float32) {
	total := s.totalHeight()
	for len(s.Window) > 1 {
		last := s.Window[len(s.Window)-1]
		if total-last.Height+s.CompensatedOverscroll < h {
			return
		}
		s.Window = s.Window[:len(s.Window)-1]
		total -= last.Height
	}
}

// clampEnd stops the list from scrolling past its last cell. It only acts
// when the window is underfilled and the source is exhausted. Lists shorter
// than the viewport rest at the top.
func (s *ScrollerState) clampEnd(h float32, cellHeight func(int) (float32, bool)) {
	if len(s.Window) == 0 {
		return
	}
	total := s.totalHeight()
	if total+s.CompensatedOverscroll >= h {
		return
	}
	if _, more := cellHeight(s.Window[len(s.Window)-1].Index + 1); more {
		return
	}
	s.CompensatedOverscroll = h - total
	s.prependWhileExposed(cellHeight)
	if s.CompensatedOverscroll > 0 {
		s.CompensatedOverscroll = 0
	}
}
