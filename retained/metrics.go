package retained

import (
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer measures single-line text. Shaping itself belongs to the
// backend; the core only needs sizes and caret offsets.
type TextMeasurer interface {
	// Measure returns the size of a single line of text at the given font size.
	Measure(text string, size float32) Size

	// Offsets returns the x offset of every caret position in text, so
	// len(result) == runeCount+1 and result[0] == 0.
	Offsets(text string, size float32) []float32
}

// FaceMeasurer measures text with a font.Face, scaling the face's metrics to
// the requested size.
type FaceMeasurer struct {
	Face font.Face
}

// DefaultMeasurer measures with the built-in 7x13 bitmap face.
func DefaultMeasurer() FaceMeasurer {
	return FaceMeasurer{Face: basicfont.Face7x13}
}

func (m FaceMeasurer) scale(size float32) float32 {
	h := fixedToFloat(m.Face.Metrics().Height)
	if h <= 0 {
		return 1
	}
	return size / h
}

// Measure returns the scaled advance width and line height.
func (m FaceMeasurer) Measure(text string, size float32) Size {
	w := fixedToFloat(font.MeasureString(m.Face, text))
	return Size{Width: w * m.scale(size), Height: size}
}

// Offsets returns caret positions including kerning between runes.
func (m FaceMeasurer) Offsets(text string, size float32) []float32 {
	scale := m.scale(size)
	out := make([]float32, 0, utf8.RuneCountInString(text)+1)
	out = append(out, 0)

	var x fixed.Int26_6
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			x += m.Face.Kern(prev, r)
		}
		adv, ok := m.Face.GlyphAdvance(r)
		if !ok {
			adv, _ = m.Face.GlyphAdvance('?')
		}
		x += adv
		out = append(out, fixedToFloat(x)*scale)
		prev = r
	}
	return out
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// caretIndexAt returns the caret position closest to x given caret offsets.
func caretIndexAt(offsets []float32, x float32) int {
	if len(offsets) == 0 || x <= 0 {
		return 0
	}
	for i := 1; i < len(offsets); i++ {
		mid := (offsets[i-1] + offsets[i]) / 2
		if x < mid {
			return i - 1
		}
	}
	return len(offsets) - 1
}
