package retained

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Controls are composed from drawables, gestures and bindings. None of them
// own application state: values flow in through a Binding every frame and
// user input is written back through it.

// instant makes a drawable track its target with no easing, for parts that
// follow the pointer.
var instant = Timing{}

// caretTiming is the quick glide used when the caret moves.
var caretTiming = Timing{Duration: 80 * time.Millisecond, Easing: EaseOutQuad}

// ============================================================================
// Button
// ============================================================================

// Button is a labelled push button.
type Button[S any] struct {
	Node     NodeID
	Label    string
	OnPress  func(state *S)
	Disabled bool
	Width    float32 // 0 = fit the label
}

func (b *Button[S]) ID() NodeID { return b.Node }

func (b *Button[S]) SizeConstraints(_ Area, ctx *Context[S]) (Constraints, bool) {
	st := ctx.Style
	w := b.Width
	if w <= 0 {
		w = ctx.Text.Measure(b.Label, st.FontSize).Width + 2*st.Padding
	}
	return Fixed(w, st.ControlHeight), true
}

func (b *Button[S]) Draw(area Area, ctx *Context[S]) {
	st := ctx.Style
	it := ctx.Interaction(b.Node)

	fill, label := st.Accent, st.OnAccent
	switch {
	case b.Disabled:
		fill, label = st.SurfacePressed, st.TextMuted
	case it.Pressed:
		fill = lerpColor(st.AccentHover, RGB(0, 0, 0), 0.15)
	case it.Hovered:
		fill = st.AccentHover
	}

	(&Rect{Node: b.Node.Child("background"), Fill: fill, Radius: st.Radius}).
		DrawInterpolated(area, ctx.Frame, true, 1)
	(&Text{Node: b.Node.Child("label"), Content: b.Label, FontSize: st.FontSize, Color: label, Align: AlignCenter}).
		DrawInterpolated(area, ctx.Frame, true, 1)

	ctx.Record(b.Node, area, Handlers[S]{
		OnHover: func(_ *S, hovered bool) { it.Hovered = hovered },
		OnClick: func(s *S, e ClickEvent) {
			it.Pressed = e.Phase == ClickStarted
			if e.Phase == ClickCompleted && !b.Disabled && b.OnPress != nil {
				b.OnPress(s)
			}
		},
	})
}

// ============================================================================
// Toggle
// ============================================================================

const (
	toggleWidth  = 44
	toggleHeight = 24
	toggleInset  = 2
)

// Toggle is an on/off switch whose knob slides between ends.
type Toggle[S any] struct {
	Node     NodeID
	On       Binding[S, bool]
	Disabled bool
}

func (t *Toggle[S]) ID() NodeID { return t.Node }

func (t *Toggle[S]) SizeConstraints(Area, *Context[S]) (Constraints, bool) {
	return Fixed(toggleWidth, toggleHeight), true
}

func (t *Toggle[S]) Draw(area Area, ctx *Context[S]) {
	st := ctx.Style
	it := ctx.Interaction(t.Node)
	on := t.On.Get(ctx.State())

	track := st.Border
	if on {
		track = st.Accent
		if it.Hovered {
			track = st.AccentHover
		}
	}
	(&Rect{Node: t.Node.Child("track"), Fill: track, Radius: area.Height / 2}).
		DrawInterpolated(area, ctx.Frame, true, 1)

	d := area.Height - 2*toggleInset
	x := area.X + toggleInset
	if on {
		x = area.X + area.Width - d - toggleInset
	}
	(&Circle{Node: t.Node.Child("knob"), Fill: st.Surface}).
		DrawInterpolated(Area{X: x, Y: area.Y + toggleInset, Width: d, Height: d}, ctx.Frame, true, 1)

	ctx.Record(t.Node, area, Handlers[S]{
		OnHover: func(_ *S, hovered bool) { it.Hovered = hovered },
		OnClick: func(s *S, e ClickEvent) {
			if e.Phase == ClickCompleted && !t.Disabled {
				t.On.Set(s, !t.On.Get(s))
			}
		},
	})
}

// ============================================================================
// Slider
// ============================================================================

const (
	sliderHeight    = 24
	sliderKnob      = 16
	sliderTrackSize = 4
)

// Slider picks a value in [Min, Max] by pressing or dragging along a track.
type Slider[S any] struct {
	Node     NodeID
	Value    Binding[S, float32]
	Min, Max float32 // Max <= Min means 0-1
	Step     float32 // 0 = continuous
	Disabled bool
}

func (s *Slider[S]) ID() NodeID { return s.Node }

func (s *Slider[S]) SizeConstraints(Area, *Context[S]) (Constraints, bool) {
	return Constraints{MinWidth: 2 * sliderKnob, MinHeight: sliderHeight, MaxHeight: sliderHeight}, true
}

func (s *Slider[S]) bounds() (lo, hi float32) {
	if s.Max <= s.Min {
		return 0, 1
	}
	return s.Min, s.Max
}

// sliderTrack returns the horizontal extent the knob center travels along.
func sliderTrack(area Area) (x, w float32) {
	w = area.Width - sliderKnob
	if w <= 0 {
		return area.X, area.Width
	}
	return area.X + sliderKnob/2, w
}

// sliderValue maps a pointer x onto the value range, snapping to step.
func sliderValue(area Area, px, lo, hi, step float32) float32 {
	x, w := sliderTrack(area)
	ratio := float32(0)
	if w > 0 {
		ratio = min(max((px-x)/w, 0), 1)
	}
	v := lo + ratio*(hi-lo)
	if step > 0 {
		v = lo + float32(math.Round(float64((v-lo)/step)))*step
	}
	return min(max(v, lo), hi)
}

func (s *Slider[S]) Draw(area Area, ctx *Context[S]) {
	st := ctx.Style
	it := ctx.Interaction(s.Node)
	lo, hi := s.bounds()
	ratio := min(max((s.Value.Get(ctx.State())-lo)/(hi-lo), 0), 1)

	tx, tw := sliderTrack(area)
	cy := area.Y + area.Height/2
	track := Area{X: tx, Y: cy - sliderTrackSize/2, Width: tw, Height: sliderTrackSize}

	// The knob and fill follow the pointer exactly while pressed.
	var timing *Timing
	if it.Pressed {
		timing = &instant
	}

	accent := st.Accent
	if s.Disabled {
		accent = st.TextMuted
	}
	(&Rect{Node: s.Node.Child("track"), Fill: st.Border, Radius: sliderTrackSize / 2}).
		DrawInterpolated(track, ctx.Frame, true, 1)
	filled := track
	filled.Width = tw * ratio
	(&Rect{Node: s.Node.Child("fill"), Fill: accent, Radius: sliderTrackSize / 2, Transition: timing}).
		DrawInterpolated(filled, ctx.Frame, true, 1)
	knob := Area{X: tx + tw*ratio - sliderKnob/2, Y: cy - sliderKnob/2, Width: sliderKnob, Height: sliderKnob}
	(&Circle{Node: s.Node.Child("knob"), Fill: st.Surface, Stroke: accent, StrokeWidth: 2, Transition: timing}).
		DrawInterpolated(knob, ctx.Frame, true, 1)

	set := func(state *S, a Area, x float32) {
		if s.Disabled {
			return
		}
		if v := sliderValue(a, x, lo, hi, s.Step); v != s.Value.Get(state) {
			s.Value.Set(state, v)
		}
	}
	ctx.Record(s.Node, area, Handlers[S]{
		OnHover: func(_ *S, hovered bool) { it.Hovered = hovered },
		OnClick: func(state *S, e ClickEvent) {
			it.Pressed = e.Phase == ClickStarted
			if e.Phase == ClickStarted {
				set(state, area, e.Position.X)
			}
		},
		OnDrag: func(state *S, e DragEvent) {
			set(state, e.Area, e.Current.X)
			if e.Phase == DragCompleted {
				it.Pressed = false
			}
		},
	})
}

// ============================================================================
// Dropdown
// ============================================================================

// Dropdown shows the selected option and, when open, a menu of options
// below itself. While open, a press anywhere outside the menu closes it.
type Dropdown[S any] struct {
	Node        NodeID
	Options     []string
	Selected    Binding[S, int] // -1 = none
	Open        Binding[S, bool]
	Placeholder string
}

func (d *Dropdown[S]) ID() NodeID { return d.Node }

func (d *Dropdown[S]) SizeConstraints(_ Area, ctx *Context[S]) (Constraints, bool) {
	st := ctx.Style
	w := ctx.Text.Measure(d.Placeholder, st.FontSize).Width
	for _, o := range d.Options {
		w = max(w, ctx.Text.Measure(o, st.FontSize).Width)
	}
	w += 3 * st.Padding
	return Constraints{MinWidth: w, MinHeight: st.ControlHeight, MaxHeight: st.ControlHeight}, true
}

func (d *Dropdown[S]) Draw(area Area, ctx *Context[S]) {
	st := ctx.Style
	state := ctx.State()
	it := ctx.Interaction(d.Node)
	open := d.Open.Get(state)
	sel := d.Selected.Get(state)

	label, color := d.Placeholder, st.TextMuted
	if sel >= 0 && sel < len(d.Options) {
		label, color = d.Options[sel], st.Text
	}
	border := st.Border
	if open || it.Hovered {
		border = st.Accent
	}

	(&Rect{Node: d.Node.Child("background"), Fill: st.Surface, Stroke: border, StrokeWidth: 1, Radius: st.Radius}).
		DrawInterpolated(area, ctx.Frame, true, 1)
	inner := Area{X: area.X + st.Padding, Y: area.Y, Width: area.Width - 2*st.Padding, Height: area.Height}
	(&Text{Node: d.Node.Child("label"), Content: label, FontSize: st.FontSize, Color: color}).
		DrawInterpolated(inner, ctx.Frame, true, 1)
	(&Text{Node: d.Node.Child("indicator"), Content: "▾", FontSize: st.FontSize, Color: st.TextMuted, Align: AlignRight}).
		DrawInterpolated(inner, ctx.Frame, true, 1)

	ctx.Record(d.Node, area, Handlers[S]{
		OnHover: func(_ *S, hovered bool) { it.Hovered = hovered },
		OnClick: func(s *S, e ClickEvent) {
			if e.Phase == ClickCompleted {
				d.Open.Set(s, !d.Open.Get(s))
			}
		},
	})

	if open {
		ctx.Defer(func() { d.drawMenu(area, sel, ctx) })
	}
}

func (d *Dropdown[S]) drawMenu(trigger Area, sel int, ctx *Context[S]) {
	st := ctx.Style
	rowHeight := st.ControlHeight

	ctx.Record(d.Node.Child("backdrop"), ctx.Viewport, Handlers[S]{
		OnClick: func(s *S, e ClickEvent) {
			if e.Phase == ClickCompleted {
				d.Open.Set(s, false)
			}
		},
	})

	menu := Area{
		X:      trigger.X,
		Y:      trigger.Y + trigger.Height + 4,
		Width:  trigger.Width,
		Height: rowHeight * float32(len(d.Options)),
	}
	(&Rect{Node: d.Node.Child("menu"), Fill: st.Surface, Stroke: st.Border, StrokeWidth: 1, Radius: st.Radius}).
		DrawInterpolated(menu, ctx.Frame, true, 1)

	options := d.Node.Child("option")
	for i, opt := range d.Options {
		id := options.Index(i)
		row := Area{X: menu.X, Y: menu.Y + float32(i)*rowHeight, Width: menu.Width, Height: rowHeight}
		oit := ctx.Interaction(id)

		fill := st.Surface.WithAlpha(0)
		switch {
		case oit.Hovered:
			fill = st.SurfaceHover
		case i == sel:
			fill = st.SurfacePressed
		}
		(&Rect{Node: id.Child("background"), Fill: fill, Radius: st.Radius}).
			DrawInterpolated(row.Inset(2), ctx.Frame, true, 1)
		(&Text{Node: id.Child("label"), Content: opt, FontSize: st.FontSize, Color: st.Text}).
			DrawInterpolated(Area{X: row.X + st.Padding, Y: row.Y, Width: row.Width - 2*st.Padding, Height: row.Height}, ctx.Frame, true, 1)

		ctx.Record(id, row, Handlers[S]{
			OnHover: func(_ *S, hovered bool) { oit.Hovered = hovered },
			OnClick: func(s *S, e ClickEvent) {
				if e.Phase == ClickCompleted {
					d.Selected.Set(s, i)
					d.Open.Set(s, false)
				}
			},
		})
	}
}

// ============================================================================
// Segment Picker
// ============================================================================

// SegmentPicker selects one of a few equal-width segments. The highlight
// slides to the selected segment.
type SegmentPicker[S any] struct {
	Node     NodeID
	Segments []string
	Selected Binding[S, int]
}

func (p *SegmentPicker[S]) ID() NodeID { return p.Node }

func (p *SegmentPicker[S]) SizeConstraints(_ Area, ctx *Context[S]) (Constraints, bool) {
	st := ctx.Style
	var w float32
	for _, s := range p.Segments {
		w = max(w, ctx.Text.Measure(s, st.FontSize).Width+2*st.Padding)
	}
	w *= float32(len(p.Segments))
	return Constraints{MinWidth: w, MinHeight: st.ControlHeight, MaxHeight: st.ControlHeight}, true
}

func (p *SegmentPicker[S]) Draw(area Area, ctx *Context[S]) {
	n := len(p.Segments)
	if n == 0 {
		return
	}
	st := ctx.Style
	sel := p.Selected.Get(ctx.State())

	(&Rect{Node: p.Node.Child("background"), Fill: st.SurfacePressed, Radius: st.Radius}).
		DrawInterpolated(area, ctx.Frame, true, 1)

	inner := area.Inset(2)
	segW := inner.Width / float32(n)
	segment := func(i int) Area {
		return Area{X: inner.X + float32(i)*segW, Y: inner.Y, Width: segW, Height: inner.Height}
	}

	valid := sel >= 0 && sel < n
	thumb := Area{X: inner.X, Y: inner.Y, Height: inner.Height}
	if valid {
		thumb = segment(sel)
	}
	amount := float32(0)
	if valid {
		amount = 1
	}
	(&Rect{Node: p.Node.Child("thumb"), Fill: st.Surface, Radius: max(st.Radius-2, 0)}).
		DrawInterpolated(thumb, ctx.Frame, valid, amount)

	labels := p.Node.Child("label")
	segments := p.Node.Child("segment")
	for i, s := range p.Segments {
		a := segment(i)
		color := st.TextMuted
		if i == sel {
			color = st.Text
		}
		(&Text{Node: labels.Index(i), Content: s, FontSize: st.FontSize, Color: color, Align: AlignCenter}).
			DrawInterpolated(a, ctx.Frame, true, 1)
		ctx.Record(segments.Index(i), a, Handlers[S]{
			OnClick: func(state *S, e ClickEvent) {
				if e.Phase == ClickCompleted {
					p.Selected.Set(state, i)
				}
			},
		})
	}
}

// ============================================================================
// Text Field
// ============================================================================

// TextField edits a string binding. A press starts editing (ending any other
// field's session first); Enter on a single-line field, Escape, or a press
// elsewhere ends it.
type TextField[S any] struct {
	Node        NodeID
	Text        Binding[S, string]
	Placeholder string
	Options     EditOptions
	Lines       int // Visible lines when multiline; 0 = 1
	OnEdit      func(state *S, e EditEvent)
}

func (f *TextField[S]) ID() NodeID { return f.Node }

func (f *TextField[S]) SizeConstraints(_ Area, ctx *Context[S]) (Constraints, bool) {
	st := ctx.Style
	h := st.ControlHeight
	if f.Options.Multiline && f.Lines > 1 {
		h = float32(f.Lines)*st.FontSize + 2*st.Padding
	}
	return Constraints{MinWidth: 4 * st.Padding, MinHeight: h, MaxHeight: h}, true
}

func (f *TextField[S]) Draw(area Area, ctx *Context[S]) {
	st := ctx.Style
	state := ctx.State()
	it := ctx.Interaction(f.Node)
	size := st.FontSize

	origin := Point{X: area.X + st.Padding, Y: area.Y + (area.Height-size)/2}
	if f.Options.Multiline {
		origin.Y = area.Y + st.Padding
	}
	textWidth := area.Width - 2*st.Padding

	edit, editing := ctx.Editing()
	editing = editing && edit.ID == f.Node

	border := st.Border
	switch {
	case editing:
		border = st.Accent
	case it.Hovered:
		border = st.TextMuted
	}
	(&Rect{Node: f.Node.Child("background"), Fill: st.Surface, Stroke: border, StrokeWidth: 1, Radius: st.Radius}).
		DrawInterpolated(area, ctx.Frame, true, 1)

	var display string
	if editing {
		if t := f.Text.Get(state); t != edit.Buffer.Text() {
			edit.Buffer.SetText(t)
		}
		edit.Area, edit.Origin, edit.FontSize = area, origin, size

		selection := f.Node.Child("selection")
		for i, a := range edit.SelectionAreas(ctx.Text) {
			(&Rect{Node: selection.Index(i), Fill: st.Selection, Transition: &instant}).
				DrawInterpolated(a, ctx.Frame, true, 1)
		}
		display = edit.Buffer.DisplayText()
	} else {
		display = f.Text.Get(state)
		if f.Options.Password {
			display = strings.Repeat("•", utf8.RuneCountInString(display))
		}
	}

	if display == "" {
		(&Text{Node: f.Node.Child("placeholder"), Content: f.Placeholder, FontSize: size, Color: st.TextMuted}).
			DrawInterpolated(Area{X: origin.X, Y: origin.Y, Width: textWidth, Height: size}, ctx.Frame, true, 1)
	} else {
		lines := f.Node.Child("line")
		for i, l := range splitLines(display) {
			line := Area{X: origin.X, Y: origin.Y + float32(i)*size, Width: textWidth, Height: size}
			(&Text{Node: lines.Index(i), Content: l.text, FontSize: size, Color: st.Text}).
				DrawInterpolated(line, ctx.Frame, true, 1)
		}
	}

	if editing {
		fill := st.Caret
		if edit.Buffer.HasSelection() || !edit.CaretVisible(ctx.Now) {
			fill = fill.WithAlpha(0)
		}
		(&Rect{Node: f.Node.Child("caret"), Fill: fill, Transition: &caretTiming}).
			DrawInterpolated(edit.CaretArea(ctx.Text, st.CaretWidth), ctx.Frame, true, 1)
	}

	ctx.Record(f.Node, area, Handlers[S]{
		OnHover: func(_ *S, hovered bool) { it.Hovered = hovered },
		OnClick: func(_ *S, e ClickEvent) {
			if e.Phase != ClickStarted {
				return
			}
			ed, ok := ctx.Editing()
			if !ok || ed.ID != f.Node {
				ctx.EndEdit()
				var err error
				if ed, err = ctx.BeginEdit(f.Node, area, f.Text, f.Options, f.OnEdit); err != nil {
					return
				}
				ed.Origin, ed.FontSize = origin, size
			}
			ed.Click(ctx.Now, e.Position, ctx.Text)
		},
		OnDrag: func(_ *S, e DragEvent) {
			ed, ok := ctx.Editing()
			if !ok || ed.ID != f.Node {
				return
			}
			if e.Phase == DragCompleted {
				ed.Release()
				return
			}
			ed.DragTo(ctx.Now, e.Current, ctx.Text)
		},
	})
}

// ============================================================================
// Scroller
// ============================================================================

// Scroller is a virtualized vertical list. Only the cells covering the
// viewport are built and drawn; their scroll state lives in the context
// under the list's identity.
type Scroller[S any] struct {
	Node       NodeID
	CellHeight func(state *S, index int) (float32, bool)
	Cell       func(state *S, index int, id NodeID) View[S]
}

func (s *Scroller[S]) ID() NodeID { return s.Node }

func (s *Scroller[S]) SizeConstraints(Area, *Context[S]) (Constraints, bool) {
	return Constraints{}, false
}

func (s *Scroller[S]) Draw(area Area, ctx *Context[S]) {
	ss := ctx.Scroller(s.Node)
	state := ctx.State()
	cells := UpdateWith(ss, area, state, s.CellHeight)

	ctx.Record(s.Node, area, Handlers[S]{
		OnScroll: func(_ *S, delta float32) { ss.Scroll(delta) },
	})
	ctx.Gestures.PushClip(area)
	defer ctx.Gestures.PopClip()
	for _, c := range cells {
		s.Cell(state, c.Index, s.Node.Index(c.Index)).Draw(c.Area, ctx)
	}
}
