package retained

import (
	"fmt"
	"image"
	"strings"
)

// ============================================================================
// Draw Backend Interface
// ============================================================================

// Scene receives draw commands in layout space (top-left origin, y down).
// Device and resolution mapping belong to the backend.
type Scene interface {
	Fill(path Path, color Color)
	Stroke(path Path, color Color, width float32)
	DrawGlyphs(run GlyphRun)
	DrawImage(img ImageRef, area Area)
}

// GlyphRun is a single line of shaped text.
type GlyphRun struct {
	Text   string
	Origin Point // Top-left of the line box
	Size   float32
	Color  Color
}

// ImageRef is a decoded raster handed to the backend for blitting.
// Key is stable for the same source so backends can cache uploads.
// Opacity multiplies the image's alpha.
type ImageRef struct {
	Key     string
	Image   image.Image
	Opacity float32
}

// ============================================================================
// Command List
// ============================================================================

// CommandKind identifies the kind of recorded draw command.
type CommandKind uint8

const (
	CommandFill CommandKind = iota + 1
	CommandStroke
	CommandGlyphs
	CommandImage
)

func (k CommandKind) String() string {
	switch k {
	case CommandFill:
		return "fill"
	case CommandStroke:
		return "stroke"
	case CommandGlyphs:
		return "glyphs"
	case CommandImage:
		return "image"
	default:
		return "unknown"
	}
}

// Command is one recorded draw operation.
type Command struct {
	Kind   CommandKind
	Path   Path
	Color  Color
	Width  float32 // Stroke width
	Glyphs GlyphRun
	Image  ImageRef
	Area   Area // Destination for images
}

// CommandList is a Scene that records commands in draw order.
// Backends replay it; tests inspect it.
type CommandList struct {
	commands []Command
}

// NewCommandList creates an empty list backed by a pooled slice.
func NewCommandList() *CommandList {
	return &CommandList{commands: acquireCommandSlice()}
}

func (l *CommandList) Fill(path Path, color Color) {
	l.commands = append(l.commands, Command{Kind: CommandFill, Path: path, Color: color})
}

func (l *CommandList) Stroke(path Path, color Color, width float32) {
	l.commands = append(l.commands, Command{Kind: CommandStroke, Path: path, Color: color, Width: width})
}

func (l *CommandList) DrawGlyphs(run GlyphRun) {
	l.commands = append(l.commands, Command{Kind: CommandGlyphs, Glyphs: run, Color: run.Color})
}

func (l *CommandList) DrawImage(img ImageRef, area Area) {
	l.commands = append(l.commands, Command{Kind: CommandImage, Image: img, Area: area})
}

// Commands returns the recorded commands. The slice is only valid until
// Release is called.
func (l *CommandList) Commands() []Command {
	return l.commands
}

// Len returns the number of recorded commands.
func (l *CommandList) Len() int {
	return len(l.commands)
}

// Replay sends every recorded command to another scene.
func (l *CommandList) Replay(dst Scene) {
	for _, c := range l.commands {
		switch c.Kind {
		case CommandFill:
			dst.Fill(c.Path, c.Color)
		case CommandStroke:
			dst.Stroke(c.Path, c.Color, c.Width)
		case CommandGlyphs:
			dst.DrawGlyphs(c.Glyphs)
		case CommandImage:
			dst.DrawImage(c.Image, c.Area)
		}
	}
}

// Release returns the backing slice to the pool. The list must not be used
// afterwards.
func (l *CommandList) Release() {
	releaseCommandSlice(l.commands)
	l.commands = nil
}

// String renders the list one command per line, for logs and the replay CLI.
func (l *CommandList) String() string {
	var b strings.Builder
	for _, c := range l.commands {
		switch c.Kind {
		case CommandFill:
			fmt.Fprintf(&b, "fill %s color=%08x\n", formatPath(c.Path), uint32(c.Color))
		case CommandStroke:
			fmt.Fprintf(&b, "stroke %s color=%08x width=%g\n", formatPath(c.Path), uint32(c.Color), c.Width)
		case CommandGlyphs:
			fmt.Fprintf(&b, "glyphs %q at=(%g,%g) size=%g color=%08x\n",
				c.Glyphs.Text, c.Glyphs.Origin.X, c.Glyphs.Origin.Y, c.Glyphs.Size, uint32(c.Glyphs.Color))
		case CommandImage:
			fmt.Fprintf(&b, "image %s %s opacity=%g\n", c.Image.Key, formatArea(c.Area), c.Image.Opacity)
		}
	}
	return b.String()
}

func formatPath(p Path) string {
	switch p.Kind {
	case PathCircle:
		return "circle " + formatArea(p.Area)
	default:
		return fmt.Sprintf("rect %s r=%g", formatArea(p.Area), p.Radius)
	}
}

func formatArea(a Area) string {
	return fmt.Sprintf("[%g,%g %gx%g]", a.X, a.Y, a.Width, a.Height)
}
