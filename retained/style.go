package retained

// Style holds the colors and metrics the built-in controls draw with.
// Applications usually derive it from a theme.
type Style struct {
	Background     Color
	Surface        Color
	SurfaceHover   Color
	SurfacePressed Color
	Accent         Color
	AccentHover    Color
	OnAccent       Color // Text and glyphs drawn over Accent
	Text           Color
	TextMuted      Color
	Border         Color
	Caret          Color
	Selection      Color

	FontSize      float32
	Radius        float32
	Padding       float32
	ControlHeight float32
	CaretWidth    float32
}

// DefaultStyle is a neutral light palette.
func DefaultStyle() Style {
	return Style{
		Background:     RGB(0xF8, 0xFA, 0xFC),
		Surface:        RGB(0xFF, 0xFF, 0xFF),
		SurfaceHover:   RGB(0xF1, 0xF5, 0xF9),
		SurfacePressed: RGB(0xE2, 0xE8, 0xF0),
		Accent:         RGB(0x3B, 0x82, 0xF6),
		AccentHover:    RGB(0x25, 0x63, 0xEB),
		OnAccent:       RGB(0xFF, 0xFF, 0xFF),
		Text:           RGB(0x0F, 0x17, 0x2A),
		TextMuted:      RGB(0x94, 0xA3, 0xB8),
		Border:         RGB(0xCB, 0xD5, 0xE1),
		Caret:          RGB(0x0F, 0x17, 0x2A),
		Selection:      RGBA(0x3B, 0x82, 0xF6, 0x55),

		FontSize:      14,
		Radius:        6,
		Padding:       8,
		ControlHeight: 32,
		CaretWidth:    1.5,
	}
}
