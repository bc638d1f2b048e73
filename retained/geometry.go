package retained

import "math"

// ============================================================================
// Points and Areas
// ============================================================================

// Point is a position in layout space (top-left origin, y down).
type Point struct {
	X, Y float32
}

// Distance returns the straight-line distance between two points.
func (p Point) Distance(o Point) float32 {
	dx := float64(o.X - p.X)
	dy := float64(o.Y - p.Y)
	return float32(math.Hypot(dx, dy))
}

// Area is the rectangle the layout pass assigns to a view.
type Area struct {
	X, Y          float32 // Top-left corner
	Width, Height float32
}

// Contains checks if a point is within the area.
// The right and bottom edges are exclusive.
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width &&
		p.Y >= a.Y && p.Y < a.Y+a.Height
}

// LocalPoint converts a layout-space point to coordinates relative to the area.
func (a Area) LocalPoint(p Point) Point {
	return Point{X: p.X - a.X, Y: p.Y - a.Y}
}

// Intersects returns true if the two areas overlap.
func (a Area) Intersects(o Area) bool {
	return a.X < o.X+o.Width && a.X+a.Width > o.X &&
		a.Y < o.Y+o.Height && a.Y+a.Height > o.Y
}

// Intersect returns the overlap of two areas, or a zero-size area at the
// clamped corner when they are disjoint.
func (a Area) Intersect(o Area) Area {
	x0, y0 := max(a.X, o.X), max(a.Y, o.Y)
	x1, y1 := min(a.X+a.Width, o.X+o.Width), min(a.Y+a.Height, o.Y+o.Height)
	return Area{X: x0, Y: y0, Width: max(x1-x0, 0), Height: max(y1-y0, 0)}
}

// Center returns the midpoint of the area.
func (a Area) Center() Point {
	return Point{X: a.X + a.Width/2, Y: a.Y + a.Height/2}
}

// Inset shrinks the area by d on every side. Width and height never go negative.
func (a Area) Inset(d float32) Area {
	out := Area{X: a.X + d, Y: a.Y + d, Width: a.Width - 2*d, Height: a.Height - 2*d}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Size is a width/height pair.
type Size struct {
	Width, Height float32
}

// Constraints describe the intrinsic sizing a view asks of the layout pass.
// A zero Max means unbounded in that axis.
type Constraints struct {
	MinWidth, MinHeight float32
	MaxWidth, MaxHeight float32
}

// Fixed returns constraints pinning both axes to the given size.
func Fixed(width, height float32) Constraints {
	return Constraints{MinWidth: width, MaxWidth: width, MinHeight: height, MaxHeight: height}
}

// FixedHeight returns constraints pinning only the height.
func FixedHeight(height float32) Constraints {
	return Constraints{MinHeight: height, MaxHeight: height}
}

// ClampHeight restricts h to the height constraints.
func (c Constraints) ClampHeight(h float32) float32 {
	if h < c.MinHeight {
		h = c.MinHeight
	}
	if c.MaxHeight > 0 && h > c.MaxHeight {
		h = c.MaxHeight
	}
	return h
}

// ClampWidth restricts w to the width constraints.
func (c Constraints) ClampWidth(w float32) float32 {
	if w < c.MinWidth {
		w = c.MinWidth
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	return w
}

// ============================================================================
// Colors
// ============================================================================

// Color is a packed 0xRRGGBBAA value.
type Color uint32

// RGBA packs channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xFF | Color(a)
}

// Fade multiplies the alpha channel by amount (0-1).
func (c Color) Fade(amount float32) Color {
	if amount >= 1 {
		return c
	}
	if amount <= 0 {
		return c.WithAlpha(0)
	}
	return c.WithAlpha(uint8(float32(c.A())*amount + 0.5))
}

// ============================================================================
// Paths
// ============================================================================

// PathKind identifies the shape a Path describes.
type PathKind uint8

const (
	PathRoundedRect PathKind = iota + 1
	PathCircle
)

// Path is a closed shape handed to the draw backend.
// Circles use Area as their bounding square.
type Path struct {
	Kind   PathKind
	Area   Area
	Radius float32 // Corner radius for rounded rects
}

// RoundedRectPath builds a rounded rectangle path.
func RoundedRectPath(a Area, radius float32) Path {
	return Path{Kind: PathRoundedRect, Area: a, Radius: radius}
}

// CirclePath builds a circle inscribed in the square centered in a.
func CirclePath(a Area) Path {
	d := a.Width
	if a.Height < d {
		d = a.Height
	}
	c := a.Center()
	return Path{Kind: PathCircle, Area: Area{X: c.X - d/2, Y: c.Y - d/2, Width: d, Height: d}}
}
