package retained

import (
	"fmt"
	"time"
)

// Drawable is a view kind that owns animated state and emits draw commands.
type Drawable interface {
	// ID returns the identity the animation state is stored under.
	ID() NodeID

	// Timing returns the drawable's timing override, or nil for the frame default.
	Timing() *Timing

	// SizeConstraints reports the drawable's intrinsic sizing to the layout
	// pass. It never mutates state. false means fill the assigned area.
	SizeConstraints(available Area, f *Frame) (Constraints, bool)

	// DrawInterpolated advances the drawable's animation state toward the
	// targets implied by area and its fields, then draws the interpolated
	// values. With !visible and a zero visibleAmount it does nothing.
	// visibleAmount (0-1) fades alpha.
	DrawInterpolated(area Area, f *Frame, visible bool, visibleAmount float32)
}

// skipDraw reports whether a drawable has nothing to do this frame.
func skipDraw(visible bool, amount float32) bool {
	return !visible && amount == 0
}

// opacity clamps a visible amount into 0-1.
func opacity(amount float32) float32 {
	return min(max(amount, 0), 1)
}

// ============================================================================
// Shapes
// ============================================================================

type shapeKind uint8

const (
	shapeRect shapeKind = iota + 1
	shapeCircle
)

func (k shapeKind) String() string {
	if k == shapeCircle {
		return "circle"
	}
	return "rect"
}

// animatedShape is the stored state for rects and circles.
type animatedShape struct {
	shape       shapeKind
	frame       animatedFrame
	fill        AnimatedColor
	stroke      *AnimatedColor // nil until a stroke is first requested
	strokeWidth AnimatedScalar
	radius      AnimatedScalar // Rect corner radius; unused for circles
}

func (s *animatedShape) kind() viewKind { return viewShape }

func (s *animatedShape) animating(now time.Time) bool {
	if s.frame.animating(now) || s.fill.Animating(now) || s.strokeWidth.Animating(now) || s.radius.Animating(now) {
		return true
	}
	return s.stroke != nil && s.stroke.Animating(now)
}

type shapeTarget struct {
	area        Area
	fill        Color
	stroke      Color
	strokeWidth float32
	radius      float32
}

func newAnimatedShape(kind shapeKind, t shapeTarget, timing Timing) *animatedShape {
	s := &animatedShape{
		shape:       kind,
		frame:       newAnimatedFrame(t.area, timing),
		fill:        NewAnimatedColor(t.fill, timing),
		strokeWidth: NewAnimatedScalar(t.strokeWidth, timing),
		radius:      NewAnimatedScalar(t.radius, timing),
	}
	if t.strokeWidth > 0 {
		c := NewAnimatedColor(t.stroke, timing)
		s.stroke = &c
	}
	return s
}

func (s *animatedShape) transition(t shapeTarget, timing Timing, now time.Time) {
	s.frame.setTiming(timing)
	s.fill.SetTiming(timing)
	s.strokeWidth.SetTiming(timing)
	s.radius.SetTiming(timing)

	s.frame.transition(t.area, now)
	s.fill.Transition(t.fill, now)
	s.strokeWidth.Transition(t.strokeWidth, now)
	s.radius.Transition(t.radius, now)
	if t.strokeWidth > 0 {
		if s.stroke == nil {
			c := NewAnimatedColor(t.stroke, timing)
			s.stroke = &c
		}
		s.stroke.SetTiming(timing)
		s.stroke.Transition(t.stroke, now)
	}
}

// drawShape looks up or creates the shape state for id, advances it and draws it.
func drawShape(f *Frame, id NodeID, kind shapeKind, t shapeTarget, timing Timing, amount float32) {
	now := f.Now
	s, ok := takeView[*animatedShape](f.Store, id, viewShape)
	if !ok {
		s = newAnimatedShape(kind, t, timing)
	} else if s.shape != kind {
		panic(fmt.Sprintf("retained: identity %s changed shape from %s to %s", id, s.shape, kind))
	} else {
		s.transition(t, timing, now)
	}

	area := s.frame.value(now)
	var path Path
	if kind == shapeCircle {
		path = CirclePath(area)
	} else {
		path = RoundedRectPath(area, s.radius.Value(now))
	}

	f.Scene.Fill(path, s.fill.Value(now).Fade(amount))
	if s.stroke != nil {
		if w := s.strokeWidth.Value(now); w > 0 {
			f.Scene.Stroke(path, s.stroke.Value(now).Fade(amount), w)
		}
	}

	f.Store.put(id, s)
}

// Rect is a filled, optionally stroked rounded rectangle.
type Rect struct {
	Node        NodeID
	Fill        Color
	Stroke      Color
	StrokeWidth float32 // 0 = no stroke
	Radius      float32
	Size        *Constraints // nil = fill the assigned area
	Transition  *Timing
}

func (r *Rect) ID() NodeID      { return r.Node }
func (r *Rect) Timing() *Timing { return r.Transition }

func (r *Rect) SizeConstraints(Area, *Frame) (Constraints, bool) {
	if r.Size == nil {
		return Constraints{}, false
	}
	return *r.Size, true
}

func (r *Rect) DrawInterpolated(area Area, f *Frame, visible bool, visibleAmount float32) {
	if skipDraw(visible, visibleAmount) {
		return
	}
	drawShape(f, r.Node, shapeRect, shapeTarget{
		area:        area,
		fill:        r.Fill,
		stroke:      r.Stroke,
		strokeWidth: r.StrokeWidth,
		radius:      r.Radius,
	}, f.timing(r.Transition), visibleAmount)
}

// Circle is a filled, optionally stroked circle inscribed in its area.
type Circle struct {
	Node        NodeID
	Fill        Color
	Stroke      Color
	StrokeWidth float32
	Diameter    float32 // 0 = fit the assigned area
	Transition  *Timing
}

func (c *Circle) ID() NodeID      { return c.Node }
func (c *Circle) Timing() *Timing { return c.Transition }

func (c *Circle) SizeConstraints(Area, *Frame) (Constraints, bool) {
	if c.Diameter <= 0 {
		return Constraints{}, false
	}
	return Fixed(c.Diameter, c.Diameter), true
}

func (c *Circle) DrawInterpolated(area Area, f *Frame, visible bool, visibleAmount float32) {
	if skipDraw(visible, visibleAmount) {
		return
	}
	drawShape(f, c.Node, shapeCircle, shapeTarget{
		area:        area,
		fill:        c.Fill,
		stroke:      c.Stroke,
		strokeWidth: c.StrokeWidth,
	}, f.timing(c.Transition), visibleAmount)
}
