package retained

import (
	"slices"
	"strings"
	"unicode"
)

// bufferSnapshot captures buffer state for undo/redo.
type bufferSnapshot struct {
	content []rune
	cursor  int
	anchor  int
}

// defaultMaxUndo bounds the undo history when TextBuffer.MaxUndo is zero.
const defaultMaxUndo = 100

// TextBuffer is a plain-text caret/selection editor. Positions are rune
// indices; 0 is before the first rune.
//
// The buffer is owned by the active editor and only touched from the frame
// goroutine. Mutating methods report whether the content changed so the
// caller can write the text back to application state.
type TextBuffer struct {
	content []rune

	// cursor is where the caret sits; anchor is where the selection started.
	// anchor == cursor means no selection.
	cursor int
	anchor int

	Multiline  bool
	MaxLength  int               // 0 = no limit
	ReadOnly   bool              // Selection and copy still work
	Password   bool              // DisplayText masks every rune
	MaskChar   rune              // 0 = '•'
	CharFilter func(r rune) bool // nil accepts everything
	MaxUndo    int               // 0 = 100

	undo []bufferSnapshot
	redo []bufferSnapshot
}

// NewTextBuffer creates a buffer holding text with the caret at its end.
func NewTextBuffer(text string) *TextBuffer {
	b := &TextBuffer{}
	b.SetText(text)
	b.MoveToEnd(false)
	return b
}

// Text returns the current content.
func (b *TextBuffer) Text() string {
	return string(b.content)
}

// SetText replaces the content without recording undo history. The caret
// and anchor are clamped into the new content.
func (b *TextBuffer) SetText(text string) {
	b.content = []rune(text)
	b.cursor = b.clamp(b.cursor)
	b.anchor = b.clamp(b.anchor)
}

// Len returns the number of runes.
func (b *TextBuffer) Len() int {
	return len(b.content)
}

// Cursor returns the caret position.
func (b *TextBuffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the caret and collapses the selection.
func (b *TextBuffer) SetCursor(pos int) {
	b.cursor = b.clamp(pos)
	b.anchor = b.cursor
}

// Selection returns the ordered selection bounds. With no selection both
// equal the caret.
func (b *TextBuffer) Selection() (start, end int) {
	if b.anchor < b.cursor {
		return b.anchor, b.cursor
	}
	return b.cursor, b.anchor
}

// HasSelection reports whether any text is selected.
func (b *TextBuffer) HasSelection() bool {
	return b.anchor != b.cursor
}

// SelectedText returns the selected runes as a string.
func (b *TextBuffer) SelectedText() string {
	start, end := b.Selection()
	return string(b.content[start:end])
}

// SetSelection places the anchor and caret independently.
func (b *TextBuffer) SetSelection(anchor, cursor int) {
	b.anchor = b.clamp(anchor)
	b.cursor = b.clamp(cursor)
}

// ClearSelection collapses the selection onto the caret.
func (b *TextBuffer) ClearSelection() {
	b.anchor = b.cursor
}

// SelectAll selects the whole content.
func (b *TextBuffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.content)
}

// SelectWordAt selects the word around pos.
func (b *TextBuffer) SelectWordAt(pos int) {
	pos = b.clamp(pos)
	b.anchor = b.wordStart(pos)
	b.cursor = b.wordEnd(pos)
}

// SelectLineAt selects the line around pos, including its trailing newline.
// Single-line buffers select everything.
func (b *TextBuffer) SelectLineAt(pos int) {
	if !b.Multiline {
		b.SelectAll()
		return
	}
	pos = b.clamp(pos)
	start, end := b.lineStart(pos), b.lineEnd(pos)
	if end < len(b.content) {
		end++
	}
	b.anchor, b.cursor = start, end
}

// Insert replaces the selection (if any) with text at the caret. Newlines
// are dropped in single-line buffers; CharFilter and MaxLength apply.
func (b *TextBuffer) Insert(text string) bool {
	if b.ReadOnly {
		return false
	}
	if !b.Multiline {
		text = strings.NewReplacer("\r", "", "\n", "").Replace(text)
	}

	runes := []rune(text)
	if b.CharFilter != nil {
		runes = slices.DeleteFunc(runes, func(r rune) bool { return !b.CharFilter(r) })
	}

	start, end := b.Selection()
	if b.MaxLength > 0 {
		room := max(b.MaxLength-(len(b.content)-(end-start)), 0)
		if len(runes) > room {
			runes = runes[:room]
		}
	}
	if len(runes) == 0 && start == end {
		return false
	}

	b.replace(start, end, runes)
	return true
}

// Delete removes the selection, or count runes forward (count > 0) or
// backward (count < 0) from the caret.
func (b *TextBuffer) Delete(count int) bool {
	if b.ReadOnly {
		return false
	}
	if b.HasSelection() {
		start, end := b.Selection()
		b.replace(start, end, nil)
		return true
	}
	switch {
	case count > 0 && b.cursor < len(b.content):
		b.replace(b.cursor, min(b.cursor+count, len(b.content)), nil)
		return true
	case count < 0 && b.cursor > 0:
		b.replace(max(b.cursor+count, 0), b.cursor, nil)
		return true
	}
	return false
}

// DeleteWord removes the selection, or the word after (forward) or before
// the caret.
func (b *TextBuffer) DeleteWord(forward bool) bool {
	if b.ReadOnly {
		return false
	}
	if b.HasSelection() {
		return b.Delete(0)
	}
	if forward {
		if end := b.wordEnd(b.cursor); end > b.cursor {
			b.replace(b.cursor, end, nil)
			return true
		}
		return false
	}
	if start := b.wordStart(b.cursor); start < b.cursor {
		b.replace(start, b.cursor, nil)
		return true
	}
	return false
}

// MoveCursor moves the caret by delta runes. Without extend, an existing
// selection collapses toward the direction of travel instead.
func (b *TextBuffer) MoveCursor(delta int, extend bool) {
	if !extend && b.HasSelection() {
		start, end := b.Selection()
		if delta < 0 {
			b.SetCursor(start)
		} else {
			b.SetCursor(end)
		}
		return
	}
	b.moveTo(b.cursor+delta, extend)
}

// MoveWord moves the caret to the next word end or previous word start.
func (b *TextBuffer) MoveWord(forward bool, extend bool) {
	if forward {
		b.moveTo(b.wordEnd(b.cursor), extend)
	} else {
		b.moveTo(b.wordStart(b.cursor), extend)
	}
}

// MoveToLineStart moves the caret to the start of its line.
func (b *TextBuffer) MoveToLineStart(extend bool) {
	b.moveTo(b.lineStart(b.cursor), extend)
}

// MoveToLineEnd moves the caret to the end of its line.
func (b *TextBuffer) MoveToLineEnd(extend bool) {
	b.moveTo(b.lineEnd(b.cursor), extend)
}

// MoveToStart moves the caret to the start of the content.
func (b *TextBuffer) MoveToStart(extend bool) {
	b.moveTo(0, extend)
}

// MoveToEnd moves the caret to the end of the content.
func (b *TextBuffer) MoveToEnd(extend bool) {
	b.moveTo(len(b.content), extend)
}

// DisplayText returns the content as drawn, masked in password mode.
func (b *TextBuffer) DisplayText() string {
	if !b.Password {
		return string(b.content)
	}
	mask := b.MaskChar
	if mask == 0 {
		mask = '•'
	}
	return strings.Repeat(string(mask), len(b.content))
}

// Undo restores the state before the last edit.
func (b *TextBuffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	b.redo = append(b.redo, b.snapshot())
	b.restore(b.undo[len(b.undo)-1])
	b.undo = b.undo[:len(b.undo)-1]
	return true
}

// Redo reapplies the last undone edit.
func (b *TextBuffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	b.undo = append(b.undo, b.snapshot())
	b.restore(b.redo[len(b.redo)-1])
	b.redo = b.redo[:len(b.redo)-1]
	return true
}

// replace swaps content[start:end] for runes, records undo history and
// leaves the caret after the inserted runes.
func (b *TextBuffer) replace(start, end int, runes []rune) {
	b.pushUndo()
	b.content = slices.Insert(slices.Delete(b.content, start, end), start, runes...)
	b.cursor = start + len(runes)
	b.anchor = b.cursor
}

func (b *TextBuffer) pushUndo() {
	limit := b.MaxUndo
	if limit <= 0 {
		limit = defaultMaxUndo
	}
	b.undo = append(b.undo, b.snapshot())
	if len(b.undo) > limit {
		b.undo = slices.Delete(b.undo, 0, len(b.undo)-limit)
	}
	b.redo = b.redo[:0]
}

func (b *TextBuffer) snapshot() bufferSnapshot {
	return bufferSnapshot{content: slices.Clone(b.content), cursor: b.cursor, anchor: b.anchor}
}

func (b *TextBuffer) restore(s bufferSnapshot) {
	b.content = slices.Clone(s.content)
	b.cursor = s.cursor
	b.anchor = s.anchor
}

func (b *TextBuffer) moveTo(pos int, extend bool) {
	b.cursor = b.clamp(pos)
	if !extend {
		b.anchor = b.cursor
	}
}

func (b *TextBuffer) clamp(pos int) int {
	return min(max(pos, 0), len(b.content))
}

// wordStart skips whitespace left of pos, then the word before it.
func (b *TextBuffer) wordStart(pos int) int {
	for pos > 0 && unicode.IsSpace(b.content[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(b.content[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd skips whitespace right of pos, then the word after it.
func (b *TextBuffer) wordEnd(pos int) int {
	n := len(b.content)
	for pos < n && unicode.IsSpace(b.content[pos]) {
		pos++
	}
	for pos < n && !unicode.IsSpace(b.content[pos]) {
		pos++
	}
	return pos
}

func (b *TextBuffer) lineStart(pos int) int {
	for pos > 0 && b.content[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *TextBuffer) lineEnd(pos int) int {
	for pos < len(b.content) && b.content[pos] != '\n' {
		pos++
	}
	return pos
}
