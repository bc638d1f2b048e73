package retained

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// box is a leaf with optional fixed constraints.
type box struct {
	id   NodeID
	c    Constraints
	size bool
}

func (b *box) ID() NodeID { return b.id }

func (b *box) SizeConstraints(Area, *Context[page]) (Constraints, bool) {
	return b.c, b.size
}

func (b *box) Draw(Area, *Context[page]) {}

func fixedBox(name string, w, h float32) *box {
	return &box{id: ID(name), c: Fixed(w, h), size: true}
}

func flexBox(name string) *box {
	return &box{id: ID(name)}
}

func areas(ps []Placement[page]) map[NodeID]Area {
	out := make(map[NodeID]Area, len(ps))
	for _, p := range ps {
		out[p.View.ID()] = p.Area
	}
	return out
}

func layoutContext() *Context[page] {
	f, _ := testFrame(t0)
	return NewContext(&page{}, f)
}

func TestStackArrange(t *testing.T) {
	tests := []struct {
		name  string
		stack *Stack[page]
		area  Area
		want  map[NodeID]Area
	}{
		{
			name:  "column shares remainder",
			stack: Column[page](ID("c"), 10, fixedBox("a", 50, 20), flexBox("b"), flexBox("c")),
			area:  Area{Width: 100, Height: 200},
			want: map[NodeID]Area{
				ID("a"): {X: 0, Y: 0, Width: 50, Height: 20},
				ID("b"): {X: 0, Y: 30, Width: 100, Height: 80},
				ID("c"): {X: 0, Y: 120, Width: 100, Height: 80},
			},
		},
		{
			name:  "row with padding",
			stack: &Stack[page]{Node: ID("r"), Direction: Horizontal, Padding: 5, Children: []View[page]{fixedBox("a", 30, 10), flexBox("b")}},
			area:  Area{X: 10, Y: 10, Width: 100, Height: 50},
			want: map[NodeID]Area{
				ID("a"): {X: 15, Y: 15, Width: 30, Height: 10},
				ID("b"): {X: 45, Y: 15, Width: 60, Height: 40},
			},
		},
		{
			name:  "cross center",
			stack: &Stack[page]{Node: ID("c"), Align: CrossCenter, Children: []View[page]{fixedBox("a", 40, 10)}},
			area:  Area{Width: 100, Height: 100},
			want: map[NodeID]Area{
				ID("a"): {X: 30, Y: 0, Width: 40, Height: 10},
			},
		},
		{
			name:  "cross end",
			stack: &Stack[page]{Node: ID("r"), Direction: Horizontal, Align: CrossEnd, Children: []View[page]{fixedBox("a", 40, 10)}},
			area:  Area{Width: 100, Height: 100},
			want: map[NodeID]Area{
				ID("a"): {X: 0, Y: 90, Width: 40, Height: 10},
			},
		},
		{
			name:  "overfull stack gives flex nothing",
			stack: Column[page](ID("c"), 0, fixedBox("a", 10, 80), flexBox("b"), fixedBox("c", 10, 80)),
			area:  Area{Width: 10, Height: 100},
			want: map[NodeID]Area{
				ID("a"): {X: 0, Y: 0, Width: 10, Height: 80},
				ID("b"): {X: 0, Y: 80, Width: 10, Height: 0},
				ID("c"): {X: 0, Y: 80, Width: 10, Height: 80},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := areas(tt.stack.Arrange(tt.area, layoutContext()))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("areas (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStackBackground(t *testing.T) {
	s := Column[page](ID("c"), 0, flexBox("a"))
	s.Background = RGB(1, 2, 3)
	ps := s.Arrange(Area{Width: 10, Height: 10}, layoutContext())
	if len(ps) != 2 {
		t.Fatalf("placements = %d, want background and child", len(ps))
	}
	if ps[0].View.ID() != ID("c").Child("background") {
		t.Errorf("first placement = %v, want the background", ps[0].View.ID())
	}
}

func TestStackSizeConstraints(t *testing.T) {
	ctx := layoutContext()
	col := &Stack[page]{Node: ID("c"), Gap: 4, Padding: 2, Children: []View[page]{fixedBox("a", 30, 10), fixedBox("b", 50, 20)}}
	c, ok := col.SizeConstraints(Area{Width: 200, Height: 200}, ctx)
	if !ok {
		t.Fatal("column of fixed children should have a size")
	}
	want := Constraints{MinHeight: 38, MaxHeight: 38, MinWidth: 54}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("constraints (-want +got):\n%s", diff)
	}

	col.Children = append(col.Children, flexBox("flex"))
	if _, ok := col.SizeConstraints(Area{Width: 200, Height: 200}, ctx); ok {
		t.Error("a flexible child should make the column fill")
	}
}

func TestStackLayoutFlattens(t *testing.T) {
	ctx := layoutContext()
	root := &Overlay[page]{Node: ID("o"), Children: []View[page]{
		flexBox("under"),
		Column[page](ID("c"), 0, fixedBox("a", 10, 10), &Spacer[page]{Node: ID("gap"), Size: 5}, flexBox("b")),
	}}
	ps := StackLayout[page]{}.Compute(root, Area{Width: 20, Height: 40}, ctx)

	var order []NodeID
	for _, p := range ps {
		order = append(order, p.View.ID())
	}
	want := []NodeID{ID("under"), ID("a"), ID("gap"), ID("b")}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("placement order (-want +got):\n%s", diff)
	}

	got := areas(ps)
	if got[ID("under")] != (Area{Width: 20, Height: 40}) {
		t.Errorf("overlay child area = %+v", got[ID("under")])
	}
	if got[ID("b")] != (Area{Y: 15, Width: 20, Height: 25}) {
		t.Errorf("flex child area = %+v", got[ID("b")])
	}
}
