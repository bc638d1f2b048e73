package retained

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// ErrEditActive is returned by BeginEdit while another field is editing.
var ErrEditActive = errors.New("retained: another field is being edited")

const (
	// CaretBlinkInterval is how long the caret stays on, then off.
	CaretBlinkInterval = 530 * time.Millisecond

	// MultiClickGap is the longest pause between clicks that still counts
	// toward a double, triple or quadruple click.
	MultiClickGap = 250 * time.Millisecond
)

// EditKind distinguishes edit notifications.
type EditKind uint8

const (
	EditUpdate EditKind = iota + 1 // The text changed
	EditEnd                        // Editing stopped
)

func (k EditKind) String() string {
	switch k {
	case EditUpdate:
		return "update"
	case EditEnd:
		return "end"
	default:
		return "unknown"
	}
}

// EditEvent is delivered to a field's edit observer.
type EditEvent struct {
	Kind EditKind
	Text string
}

// clickCounter cycles 1, 2, 3, 0 for consecutive clicks closer together
// than MultiClickGap.
type clickCounter struct {
	last  time.Time
	count int
}

func (c *clickCounter) click(now time.Time) int {
	if c.last.IsZero() || now.Sub(c.last) > MultiClickGap {
		c.count = 0
	}
	c.count = (c.count + 1) % 4
	c.last = now
	return c.count
}

// EditState is the single active text editor.
type EditState[S any] struct {
	ID      NodeID
	Area    Area
	Buffer  *TextBuffer
	Binding Binding[S, string]

	// Origin and FontSize place the text inside Area. The owning field
	// refreshes them every frame it draws.
	Origin   Point
	FontSize float32

	onEdit    func(state *S, e EditEvent)
	lastReset time.Time
	clicks    clickCounter
	dragging  bool
}

// EditOptions configure the buffer of a new edit session.
type EditOptions struct {
	Multiline  bool
	Password   bool
	ReadOnly   bool
	MaxLength  int
	CharFilter func(r rune) bool
}

// Editing returns the active editor, if any.
func (c *Context[S]) Editing() (*EditState[S], bool) {
	return c.edit, c.edit != nil
}

// IsEditing reports whether id owns the active editor.
func (c *Context[S]) IsEditing(id NodeID) bool {
	return c.edit != nil && c.edit.ID == id
}

// BeginEdit makes id the active editor, seeded from the binding. Asking again
// for the active id returns the existing editor; asking for another id while
// one is active fails with ErrEditActive. End the active session first.
func (c *Context[S]) BeginEdit(id NodeID, area Area, text Binding[S, string], opts EditOptions, onEdit func(*S, EditEvent)) (*EditState[S], error) {
	if c.edit != nil {
		if c.edit.ID == id {
			return c.edit, nil
		}
		c.Logger.Debug("edit refused", "field", id, "active", c.edit.ID)
		return nil, ErrEditActive
	}

	b := NewTextBuffer(text.Get(c.state))
	b.Multiline = opts.Multiline
	b.Password = opts.Password
	b.ReadOnly = opts.ReadOnly
	b.MaxLength = opts.MaxLength
	b.CharFilter = opts.CharFilter

	c.edit = &EditState[S]{
		ID:        id,
		Area:      area,
		Buffer:    b,
		Binding:   text,
		FontSize:  c.Style.FontSize,
		onEdit:    onEdit,
		lastReset: c.Now,
	}
	return c.edit, nil
}

// EndEdit stops the active editor, delivering EditEnd to its observer.
func (c *Context[S]) EndEdit() {
	e := c.edit
	if e == nil {
		return
	}
	c.edit = nil
	if e.onEdit != nil {
		e.onEdit(c.state, EditEvent{Kind: EditEnd, Text: e.Buffer.Text()})
	}
}

// KeyPressed routes a key to the active editor. It returns false when no
// editor is active.
func (c *Context[S]) KeyPressed(k Key, mods Modifiers) bool {
	e := c.edit
	if e == nil {
		return false
	}
	e.touch(c.Now)

	b := e.Buffer
	shift := mods.Shift()
	shortcut := mods&c.Shortcut != 0
	// Word motion is Alt on macOS, Ctrl elsewhere.
	wordMod := mods.Ctrl()
	if c.Shortcut == ModSuper {
		wordMod = mods.Alt()
	}

	changed := false
	switch k {
	case KeyLeft:
		switch {
		case wordMod:
			b.MoveWord(false, shift)
		case shortcut:
			b.MoveToLineStart(shift)
		default:
			b.MoveCursor(-1, shift)
		}
	case KeyRight:
		switch {
		case wordMod:
			b.MoveWord(true, shift)
		case shortcut:
			b.MoveToLineEnd(shift)
		default:
			b.MoveCursor(1, shift)
		}
	case KeyUp:
		if b.Multiline {
			b.moveTo(verticalCaret(b, -1), shift)
		} else {
			b.MoveToStart(shift)
		}
	case KeyDown:
		if b.Multiline {
			b.moveTo(verticalCaret(b, 1), shift)
		} else {
			b.MoveToEnd(shift)
		}
	case KeyHome:
		b.MoveToLineStart(shift)
	case KeyEnd:
		b.MoveToLineEnd(shift)
	case KeyBackspace:
		if wordMod {
			changed = b.DeleteWord(false)
		} else {
			changed = b.Delete(-1)
		}
	case KeyDelete:
		if wordMod {
			changed = b.DeleteWord(true)
		} else {
			changed = b.Delete(1)
		}
	case KeyEnter:
		if !b.Multiline {
			c.EndEdit()
			return true
		}
		changed = b.Insert("\n")
	case KeyEscape:
		c.EndEdit()
		return true
	case KeyA:
		if shortcut {
			b.SelectAll()
		}
	case KeyC:
		if shortcut && b.HasSelection() && !b.Password {
			c.Clipboard.WriteText(b.SelectedText())
		}
	case KeyX:
		if shortcut && b.HasSelection() && !b.Password && !b.ReadOnly {
			c.Clipboard.WriteText(b.SelectedText())
			changed = b.Delete(0)
		}
	case KeyV:
		if shortcut {
			changed = b.Insert(c.Clipboard.ReadText())
		}
	case KeyZ:
		if shortcut {
			if shift {
				changed = b.Redo()
			} else {
				changed = b.Undo()
			}
		}
	}

	if changed {
		c.commitEdit()
	}
	return true
}

// TextInput inserts committed text into the active editor. Control
// characters are ignored; they arrive as key events.
func (c *Context[S]) TextInput(text string) bool {
	e := c.edit
	if e == nil {
		return false
	}
	e.touch(c.Now)
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	if text == "" {
		return true
	}
	if e.Buffer.Insert(text) {
		c.commitEdit()
	}
	return true
}

// commitEdit writes the buffer back through the binding, then notifies the
// observer.
func (c *Context[S]) commitEdit() {
	e := c.edit
	text := e.Buffer.Text()
	e.Binding.Set(c.state, text)
	if e.onEdit != nil {
		e.onEdit(c.state, EditEvent{Kind: EditUpdate, Text: text})
	}
}

// touch restarts the caret blink cycle.
func (e *EditState[S]) touch(now time.Time) {
	e.lastReset = now
}

// CaretVisible reports whether the caret is in the on half of its blink
// cycle at now.
func (e *EditState[S]) CaretVisible(now time.Time) bool {
	elapsed := now.Sub(e.lastReset)
	if elapsed < 0 {
		return true
	}
	return (elapsed/CaretBlinkInterval)%2 == 0
}

// NextBlink returns when the caret next toggles after now.
func (e *EditState[S]) NextBlink(now time.Time) time.Time {
	elapsed := now.Sub(e.lastReset)
	if elapsed < 0 {
		return e.lastReset
	}
	return e.lastReset.Add((elapsed/CaretBlinkInterval + 1) * CaretBlinkInterval)
}

// Click places the caret or extends selection for a press at p (layout
// space). Consecutive clicks select the word, then the line, then all.
func (e *EditState[S]) Click(now time.Time, p Point, m TextMeasurer) {
	e.touch(now)
	idx := caretIndexAtPoint(m, e.Buffer.DisplayText(), e.FontSize, e.Origin, p)
	switch e.clicks.click(now) {
	case 1:
		e.Buffer.SetCursor(idx)
		e.dragging = true
	case 2:
		e.Buffer.SelectWordAt(idx)
	case 3:
		e.Buffer.SelectLineAt(idx)
	default:
		e.Buffer.SelectAll()
	}
}

// DragTo extends the selection from the press point to p.
func (e *EditState[S]) DragTo(now time.Time, p Point, m TextMeasurer) {
	if !e.dragging {
		return
	}
	e.touch(now)
	idx := caretIndexAtPoint(m, e.Buffer.DisplayText(), e.FontSize, e.Origin, p)
	e.Buffer.SetSelection(e.Buffer.anchor, idx)
}

// Release ends a selection drag.
func (e *EditState[S]) Release() {
	e.dragging = false
}

// CaretArea returns the caret rectangle in layout space.
func (e *EditState[S]) CaretArea(m TextMeasurer, width float32) Area {
	return caretArea(m, e.Buffer.DisplayText(), e.FontSize, e.Origin, e.Buffer.Cursor(), width)
}

// SelectionAreas returns one rectangle per selected line.
func (e *EditState[S]) SelectionAreas(m TextMeasurer) []Area {
	start, end := e.Buffer.Selection()
	return selectionAreas(m, e.Buffer.DisplayText(), e.FontSize, e.Origin, start, end)
}

// ============================================================================
// Text Geometry
// ============================================================================

// textLine is one line of text with the rune index it starts at.
type textLine struct {
	start int
	text  string
}

func splitLines(s string) []textLine {
	parts := strings.Split(s, "\n")
	lines := make([]textLine, len(parts))
	start := 0
	for i, p := range parts {
		lines[i] = textLine{start: start, text: p}
		start += len([]rune(p)) + 1
	}
	return lines
}

// lineOf returns the line containing rune index pos.
func lineOf(lines []textLine, pos int) int {
	for i := len(lines) - 1; i > 0; i-- {
		if pos >= lines[i].start {
			return i
		}
	}
	return 0
}

func caretArea(m TextMeasurer, text string, size float32, origin Point, pos int, width float32) Area {
	lines := splitLines(text)
	i := lineOf(lines, pos)
	offsets := m.Offsets(lines[i].text, size)
	col := min(max(pos-lines[i].start, 0), len(offsets)-1)
	return Area{
		X:      origin.X + offsets[col],
		Y:      origin.Y + float32(i)*size,
		Width:  width,
		Height: size,
	}
}

func selectionAreas(m TextMeasurer, text string, size float32, origin Point, start, end int) []Area {
	if start == end {
		return nil
	}
	lines := splitLines(text)
	var out []Area
	for i, l := range lines {
		offsets := m.Offsets(l.text, size)
		lineEnd := l.start + len(offsets) - 1
		if end < l.start || start > lineEnd {
			continue
		}
		from := max(start, l.start) - l.start
		to := min(end, lineEnd) - l.start
		w := offsets[to] - offsets[from]
		if end > lineEnd {
			// Selected newline: show a sliver past the line end.
			w += size / 4
		}
		if w <= 0 {
			continue
		}
		out = append(out, Area{
			X:      origin.X + offsets[from],
			Y:      origin.Y + float32(i)*size,
			Width:  w,
			Height: size,
		})
	}
	return out
}

func caretIndexAtPoint(m TextMeasurer, text string, size float32, origin Point, p Point) int {
	lines := splitLines(text)
	i := 0
	if size > 0 {
		i = int((p.Y - origin.Y) / size)
	}
	i = min(max(i, 0), len(lines)-1)
	return lines[i].start + caretIndexAt(m.Offsets(lines[i].text, size), p.X-origin.X)
}

// verticalCaret returns the caret index one line up (dir < 0) or down,
// keeping the column where possible.
func verticalCaret(b *TextBuffer, dir int) int {
	lines := splitLines(b.Text())
	i := lineOf(lines, b.Cursor())
	j := i + dir
	if j < 0 {
		return 0
	}
	if j >= len(lines) {
		return b.Len()
	}
	col := b.Cursor() - lines[i].start
	return lines[j].start + min(col, len([]rune(lines[j].text)))
}
