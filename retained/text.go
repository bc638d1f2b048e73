package retained

import "time"

// TextAlign controls horizontal placement of text within its area.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

type animatedText struct {
	x, y  AnimatedScalar
	size  AnimatedScalar
	color AnimatedColor
}

func (t *animatedText) kind() viewKind { return viewText }

func (t *animatedText) animating(now time.Time) bool {
	return t.x.Animating(now) || t.y.Animating(now) || t.size.Animating(now) || t.color.Animating(now)
}

// Text draws a single line of text, vertically centered in its area.
// Position, size and color animate; the string itself swaps immediately.
type Text struct {
	Node       NodeID
	Content    string
	FontSize   float32 // 0 = 14
	Color      Color
	Align      TextAlign
	Transition *Timing
}

func (t *Text) ID() NodeID      { return t.Node }
func (t *Text) Timing() *Timing { return t.Transition }

func (t *Text) size() float32 {
	if t.FontSize <= 0 {
		return 14
	}
	return t.FontSize
}

func (t *Text) SizeConstraints(_ Area, f *Frame) (Constraints, bool) {
	s := f.Text.Measure(t.Content, t.size())
	return Fixed(s.Width, s.Height), true
}

// origin returns the target top-left of the line box within area.
func (t *Text) origin(area Area, f *Frame) Point {
	s := f.Text.Measure(t.Content, t.size())
	p := Point{X: area.X, Y: area.Y + (area.Height-s.Height)/2}
	switch t.Align {
	case AlignCenter:
		p.X += (area.Width - s.Width) / 2
	case AlignRight:
		p.X += area.Width - s.Width
	}
	return p
}

func (t *Text) DrawInterpolated(area Area, f *Frame, visible bool, visibleAmount float32) {
	if skipDraw(visible, visibleAmount) {
		return
	}
	now := f.Now
	timing := f.timing(t.Transition)
	o := t.origin(area, f)

	st, ok := takeView[*animatedText](f.Store, t.Node, viewText)
	if !ok {
		st = &animatedText{
			x:     NewAnimatedScalar(o.X, timing),
			y:     NewAnimatedScalar(o.Y, timing),
			size:  NewAnimatedScalar(t.size(), timing),
			color: NewAnimatedColor(t.Color, timing),
		}
	} else {
		st.x.SetTiming(timing)
		st.y.SetTiming(timing)
		st.size.SetTiming(timing)
		st.color.SetTiming(timing)
		st.x.Transition(o.X, now)
		st.y.Transition(o.Y, now)
		st.size.Transition(t.size(), now)
		st.color.Transition(t.Color, now)
	}

	if t.Content != "" {
		f.Scene.DrawGlyphs(GlyphRun{
			Text:   t.Content,
			Origin: Point{X: st.x.Value(now), Y: st.y.Value(now)},
			Size:   st.size.Value(now),
			Color:  st.color.Value(now).Fade(visibleAmount),
		})
	}

	f.Store.put(t.Node, st)
}
