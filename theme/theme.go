// Package theme loads the palette, metrics and motion defaults the built-in
// controls draw with. Themes are TOML or YAML files; colors are hex strings
// ("#3b82f6", "#3b82f680") or palette names ("blue-500").
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agiangrant/veneer/retained"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for theme files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("theme: unknown format")

// Colors holds the palette as hex strings or palette names. Empty fields
// keep the base theme's value.
type Colors struct {
	Background     string `toml:"background" yaml:"background"`
	Surface        string `toml:"surface" yaml:"surface"`
	SurfaceHover   string `toml:"surface_hover" yaml:"surface_hover"`
	SurfacePressed string `toml:"surface_pressed" yaml:"surface_pressed"`
	Accent         string `toml:"accent" yaml:"accent"`
	AccentHover    string `toml:"accent_hover" yaml:"accent_hover"`
	OnAccent       string `toml:"on_accent" yaml:"on_accent"`
	Text           string `toml:"text" yaml:"text"`
	TextMuted      string `toml:"text_muted" yaml:"text_muted"`
	Border         string `toml:"border" yaml:"border"`
	Caret          string `toml:"caret" yaml:"caret"`
	Selection      string `toml:"selection" yaml:"selection"`
}

// Metrics are control sizes in logical pixels. Zero keeps the base value.
type Metrics struct {
	FontSize      float32 `toml:"font_size" yaml:"font_size"`
	Radius        float32 `toml:"radius" yaml:"radius"`
	Padding       float32 `toml:"padding" yaml:"padding"`
	ControlHeight float32 `toml:"control_height" yaml:"control_height"`
	CaretWidth    float32 `toml:"caret_width" yaml:"caret_width"`
}

// Motion is the default transition for drawables without their own.
type Motion struct {
	DurationMS int    `toml:"duration_ms" yaml:"duration_ms"`
	DelayMS    int    `toml:"delay_ms" yaml:"delay_ms"`
	Easing     string `toml:"easing" yaml:"easing"`
}

// Theme is a named palette plus metrics and motion.
type Theme struct {
	Name    string  `toml:"name" yaml:"name"`
	Colors  Colors  `toml:"colors" yaml:"colors"`
	Metrics Metrics `toml:"metrics" yaml:"metrics"`
	Motion  Motion  `toml:"motion" yaml:"motion"`
}

// Default returns the built-in light theme.
func Default() Theme {
	return Theme{
		Name: "light",
		Colors: Colors{
			Background:     "slate-50",
			Surface:        "white",
			SurfaceHover:   "slate-100",
			SurfacePressed: "slate-200",
			Accent:         "blue-500",
			AccentHover:    "blue-600",
			OnAccent:       "white",
			Text:           "slate-900",
			TextMuted:      "slate-400",
			Border:         "slate-300",
			Caret:          "slate-900",
			Selection:      "#3b82f655",
		},
		Metrics: Metrics{FontSize: 14, Radius: 6, Padding: 8, ControlHeight: 32, CaretWidth: 1.5},
		Motion:  Motion{DurationMS: 200, Easing: "ease-out-cubic"},
	}
}

// Dark returns the built-in dark theme.
func Dark() Theme {
	t := Default()
	t.Name = "dark"
	t.Colors = Colors{
		Background:     "slate-950",
		Surface:        "slate-900",
		SurfaceHover:   "slate-800",
		SurfacePressed: "slate-700",
		Accent:         "blue-500",
		AccentHover:    "blue-400",
		OnAccent:       "white",
		Text:           "slate-100",
		TextMuted:      "slate-500",
		Border:         "slate-700",
		Caret:          "slate-100",
		Selection:      "#60a5fa66",
	}
	return t
}

// Builtin returns a built-in theme by name.
func Builtin(name string) (Theme, bool) {
	switch strings.ToLower(name) {
	case "", "light", "default":
		return Default(), true
	case "dark":
		return Dark(), true
	}
	return Theme{}, false
}

// Load reads a theme file, picking the format from its extension. Values the
// file leaves out come from Default.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme: %w", err)
	}
	t, err := Parse(data, formatOf(path))
	if err != nil {
		return Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a theme in the given format ("toml", "yaml" or "yml") over
// Default.
func Parse(data []byte, format string) (Theme, error) {
	t := Default()
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
		}
	default:
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return t, nil
}

func formatOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Style resolves the theme into the colors and metrics controls draw with.
// Fields left empty keep DefaultStyle's values.
func (t Theme) Style() (retained.Style, error) {
	s := retained.DefaultStyle()
	colors := []struct {
		name string
		in   string
		out  *retained.Color
	}{
		{"background", t.Colors.Background, &s.Background},
		{"surface", t.Colors.Surface, &s.Surface},
		{"surface_hover", t.Colors.SurfaceHover, &s.SurfaceHover},
		{"surface_pressed", t.Colors.SurfacePressed, &s.SurfacePressed},
		{"accent", t.Colors.Accent, &s.Accent},
		{"accent_hover", t.Colors.AccentHover, &s.AccentHover},
		{"on_accent", t.Colors.OnAccent, &s.OnAccent},
		{"text", t.Colors.Text, &s.Text},
		{"text_muted", t.Colors.TextMuted, &s.TextMuted},
		{"border", t.Colors.Border, &s.Border},
		{"caret", t.Colors.Caret, &s.Caret},
		{"selection", t.Colors.Selection, &s.Selection},
	}
	for _, c := range colors {
		if c.in == "" {
			continue
		}
		v, err := ParseColor(c.in)
		if err != nil {
			return retained.Style{}, fmt.Errorf("colors.%s: %w", c.name, err)
		}
		*c.out = v
	}

	metrics := []struct {
		in  float32
		out *float32
	}{
		{t.Metrics.FontSize, &s.FontSize},
		{t.Metrics.Radius, &s.Radius},
		{t.Metrics.Padding, &s.Padding},
		{t.Metrics.ControlHeight, &s.ControlHeight},
		{t.Metrics.CaretWidth, &s.CaretWidth},
	}
	for _, m := range metrics {
		if m.in > 0 {
			*m.out = m.in
		}
	}
	return s, nil
}

// Timing resolves the motion defaults. An unknown easing name is an error;
// an empty one means ease-out-cubic.
func (t Theme) Timing() (retained.Timing, error) {
	tm := retained.DefaultTiming()
	if t.Motion.DurationMS < 0 || t.Motion.DelayMS < 0 {
		return retained.Timing{}, fmt.Errorf("motion: negative duration or delay")
	}
	if t.Motion.DurationMS > 0 {
		tm.Duration = time.Duration(t.Motion.DurationMS) * time.Millisecond
	}
	tm.Delay = time.Duration(t.Motion.DelayMS) * time.Millisecond
	if t.Motion.Easing != "" {
		e := retained.EasingByName(t.Motion.Easing)
		if e == nil {
			return retained.Timing{}, fmt.Errorf("motion: unknown easing %q", t.Motion.Easing)
		}
		tm.Easing = e
	}
	return tm, nil
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or a palette name.
func ParseColor(s string) (retained.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := named(s); ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return retained.Color(v), nil
}
