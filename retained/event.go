package retained

// ============================================================================
// Input Event Types
// ============================================================================

// EventType identifies the kind of normalized input event.
type EventType uint8

const (
	EventPointerMoved EventType = iota + 1
	EventPointerDown
	EventPointerUp
	EventKeyPressed
	EventKeyReleased
	EventTextInput // Committed text, including IME output
	EventScroll
	EventResize
)

func (t EventType) String() string {
	switch t {
	case EventPointerMoved:
		return "pointer-moved"
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventKeyPressed:
		return "key-pressed"
	case EventKeyReleased:
		return "key-released"
	case EventTextInput:
		return "text-input"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key is a logical key. Printable input arrives as EventTextInput instead.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
	KeyTab
	KeySpace
	KeyA
	KeyC
	KeyV
	KeyX
	KeyZ
)

var keyNames = map[string]Key{
	"left":      KeyLeft,
	"right":     KeyRight,
	"up":        KeyUp,
	"down":      KeyDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"tab":       KeyTab,
	"space":     KeySpace,
	"a":         KeyA,
	"c":         KeyC,
	"v":         KeyV,
	"x":         KeyX,
	"z":         KeyZ,
}

// KeyByName looks up a key by its lowercase name ("left", "enter", "a", ...).
func KeyByName(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// Event is one normalized input event. Coordinates are DPI-agnostic and in
// the same space as layout output.
type Event struct {
	Type      EventType
	Position  Point     // Pointer events, scroll
	Delta     float32   // Scroll: positive moves content down
	Key       Key       // Key events
	Text      string    // Text input
	Modifiers Modifiers // Key and pointer events
	Size      Size      // Resize
}

// PointerMoved builds a pointer-moved event.
func PointerMoved(x, y float32) Event {
	return Event{Type: EventPointerMoved, Position: Point{X: x, Y: y}}
}

// PointerDown builds a pointer-down event.
func PointerDown(x, y float32) Event {
	return Event{Type: EventPointerDown, Position: Point{X: x, Y: y}}
}

// PointerUp builds a pointer-up event.
func PointerUp(x, y float32) Event {
	return Event{Type: EventPointerUp, Position: Point{X: x, Y: y}}
}

// KeyPressed builds a key-pressed event.
func KeyPressed(k Key, mods Modifiers) Event {
	return Event{Type: EventKeyPressed, Key: k, Modifiers: mods}
}

// TextInput builds a text-input event.
func TextInput(text string) Event {
	return Event{Type: EventTextInput, Text: text}
}

// ScrollBy builds a scroll event at a pointer position.
func ScrollBy(x, y, delta float32) Event {
	return Event{Type: EventScroll, Position: Point{X: x, Y: y}, Delta: delta}
}

// Resized builds a resize event.
func Resized(width, height float32) Event {
	return Event{Type: EventResize, Size: Size{Width: width, Height: height}}
}
