package retained

// ============================================================================
// Layout Interface
// ============================================================================

// Placement assigns one area to one view.
type Placement[S any] struct {
	View View[S]
	Area Area
}

// Layout turns a view tree and the available area into concrete areas.
// Every view it returns is drawn exactly once, in order.
type Layout[S any] interface {
	Compute(root View[S], available Area, ctx *Context[S]) []Placement[S]
}

// Arranger is implemented by container views that position children.
type Arranger[S any] interface {
	View[S]
	Arrange(area Area, ctx *Context[S]) []Placement[S]
}

// StackLayout flattens nested containers into leaf placements in draw order.
// Views that are not containers fill the area they are given.
type StackLayout[S any] struct{}

func (StackLayout[S]) Compute(root View[S], available Area, ctx *Context[S]) []Placement[S] {
	return flatten(root, available, ctx, nil)
}

func flatten[S any](v View[S], area Area, ctx *Context[S], out []Placement[S]) []Placement[S] {
	a, ok := v.(Arranger[S])
	if !ok {
		return append(out, Placement[S]{View: v, Area: area})
	}
	for _, p := range a.Arrange(area, ctx) {
		out = flatten(p.View, p.Area, ctx, out)
	}
	return out
}

// ============================================================================
// Stack Containers
// ============================================================================

// Direction is the main axis of a stack.
type Direction uint8

const (
	Vertical Direction = iota
	Horizontal
)

// CrossAlign positions children across the main axis.
type CrossAlign uint8

const (
	CrossStretch CrossAlign = iota
	CrossStart
	CrossCenter
	CrossEnd
)

// Stack lays children out along one axis. Children with intrinsic size take
// it; the rest share what is left equally.
type Stack[S any] struct {
	Node       NodeID
	Direction  Direction
	Children   []View[S]
	Gap        float32
	Padding    float32
	Align      CrossAlign
	Background Color // 0 = none
	Radius     float32
}

// Column stacks children top to bottom.
func Column[S any](id NodeID, gap float32, children ...View[S]) *Stack[S] {
	return &Stack[S]{Node: id, Direction: Vertical, Gap: gap, Children: children}
}

// Row stacks children left to right.
func Row[S any](id NodeID, gap float32, children ...View[S]) *Stack[S] {
	return &Stack[S]{Node: id, Direction: Horizontal, Gap: gap, Children: children}
}

func (s *Stack[S]) ID() NodeID { return s.Node }

// SizeConstraints reports the stack's size when every child has one.
func (s *Stack[S]) SizeConstraints(available Area, ctx *Context[S]) (Constraints, bool) {
	inner := available.Inset(s.Padding)
	var main, cross float32
	for i, child := range s.Children {
		c, ok := child.SizeConstraints(inner, ctx)
		if !ok {
			return Constraints{}, false
		}
		cm, cc := c.MinHeight, c.MinWidth
		if s.Direction == Horizontal {
			cm, cc = cc, cm
		}
		if i > 0 {
			main += s.Gap
		}
		main += cm
		cross = max(cross, cc)
	}
	main += 2 * s.Padding
	cross += 2 * s.Padding
	if s.Direction == Horizontal {
		return Constraints{MinWidth: main, MaxWidth: main, MinHeight: cross}, true
	}
	return Constraints{MinHeight: main, MaxHeight: main, MinWidth: cross}, true
}

// Arrange places the background (if any) and then every child.
func (s *Stack[S]) Arrange(area Area, ctx *Context[S]) []Placement[S] {
	out := make([]Placement[S], 0, len(s.Children)+1)
	if s.Background != 0 {
		out = append(out, Placement[S]{
			View: Draw[S](&Rect{Node: s.Node.Child("background"), Fill: s.Background, Radius: s.Radius}),
			Area: area,
		})
	}

	inner := area.Inset(s.Padding)
	n := len(s.Children)
	if n == 0 {
		return out
	}

	mainSize := func(a Area) float32 {
		if s.Direction == Horizontal {
			return a.Width
		}
		return a.Height
	}
	crossSize := func(a Area) float32 {
		if s.Direction == Horizontal {
			return a.Height
		}
		return a.Width
	}

	type slot struct {
		fixed bool
		main  float32
		cross float32
	}
	slots := make([]slot, n)
	var used float32
	flex := 0
	for i, child := range s.Children {
		c, ok := child.SizeConstraints(inner, ctx)
		sl := slot{cross: crossSize(inner)}
		minMain, maxMain, maxCross := c.MinHeight, c.MaxHeight, c.MaxWidth
		if s.Direction == Horizontal {
			minMain, maxMain, maxCross = c.MinWidth, c.MaxWidth, c.MaxHeight
		}
		if ok && (minMain > 0 || maxMain > 0) {
			sl.fixed = true
			sl.main = minMain
			used += minMain
		} else {
			flex++
		}
		// Stretch only applies to children without a cross-axis bound.
		if ok && maxCross > 0 {
			sl.cross = min(maxCross, crossSize(inner))
		}
		slots[i] = sl
	}

	gaps := s.Gap * float32(n-1)
	var share float32
	if flex > 0 {
		share = max((mainSize(inner)-used-gaps)/float32(flex), 0)
	}

	pos := inner.Y
	if s.Direction == Horizontal {
		pos = inner.X
	}
	for i, child := range s.Children {
		sl := slots[i]
		m := sl.main
		if !sl.fixed {
			m = share
		}
		offset := float32(0)
		switch s.Align {
		case CrossCenter:
			offset = (crossSize(inner) - sl.cross) / 2
		case CrossEnd:
			offset = crossSize(inner) - sl.cross
		}
		var a Area
		if s.Direction == Horizontal {
			a = Area{X: pos, Y: inner.Y + offset, Width: m, Height: sl.cross}
		} else {
			a = Area{X: inner.X + offset, Y: pos, Width: sl.cross, Height: m}
		}
		out = append(out, Placement[S]{View: child, Area: a})
		pos += m + s.Gap
	}
	return out
}

// Draw arranges and draws the children directly, for stacks nested inside
// views that draw their own content (scroller cells, controls).
func (s *Stack[S]) Draw(area Area, ctx *Context[S]) {
	for _, p := range s.Arrange(area, ctx) {
		p.View.Draw(p.Area, ctx)
	}
}

// Overlay draws every child into the same area, later children on top.
type Overlay[S any] struct {
	Node     NodeID
	Children []View[S]
}

func (o *Overlay[S]) ID() NodeID { return o.Node }

func (o *Overlay[S]) SizeConstraints(Area, *Context[S]) (Constraints, bool) {
	return Constraints{}, false
}

func (o *Overlay[S]) Arrange(area Area, _ *Context[S]) []Placement[S] {
	out := make([]Placement[S], len(o.Children))
	for i, c := range o.Children {
		out[i] = Placement[S]{View: c, Area: area}
	}
	return out
}

func (o *Overlay[S]) Draw(area Area, ctx *Context[S]) {
	for _, c := range o.Children {
		c.Draw(area, ctx)
	}
}

// Spacer takes a fixed amount of space along a stack's main axis, or shares
// the remainder when Size is zero.
type Spacer[S any] struct {
	Node NodeID
	Size float32
}

func (s *Spacer[S]) ID() NodeID { return s.Node }

func (s *Spacer[S]) SizeConstraints(Area, *Context[S]) (Constraints, bool) {
	if s.Size <= 0 {
		return Constraints{}, false
	}
	return Constraints{MinWidth: s.Size, MaxWidth: s.Size, MinHeight: s.Size, MaxHeight: s.Size}, true
}

func (s *Spacer[S]) Draw(Area, *Context[S]) {}
