// Package buffer implements the text buffer engine: interchangeable storage
// backends behind a cursor/line model with strict UTF-8 codepoint boundary
// discipline. Byte offsets cross this API; char counts only ever enter as
// signed deltas that the engine converts to offsets itself.
package buffer

import (
	"fmt"
	"io"

	"github.com/badred/badred/internal/styling"
)

// Type selects the storage backend variant.
type Type int

const (
	TypeNaive Type = iota
	TypeGap
)

func (t Type) String() string {
	switch t {
	case TypeNaive:
		return "naive"
	case TypeGap:
		return "gap"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType maps a wire variant tag back to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "naive":
		return TypeNaive, nil
	case "gap":
		return TypeGap, nil
	default:
		return 0, fmt.Errorf("unknown buffer type %q", s)
	}
}

// Buffer wraps a storage backend with a cursor, a sticky column and a style
// stack.
//
// Invariants: the cursor always sits on a codepoint boundary or equals
// Len(); replacing the backend preserves content byte for byte; line 0
// always exists.
type Buffer struct {
	backend Backend
	typ     Type

	cursor int
	// col is the sticky column byte offset within a line, preserved across
	// vertical motion. -1 when unset.
	col int

	renderDirty  bool
	contentDirty bool

	styles styling.Stack
}

func New() *Buffer {
	return NewTyped(TypeGap)
}

func NewTyped(t Type) *Buffer {
	return &Buffer{typ: t, col: -1, backend: newBackend(t)}
}

func newBackend(t Type) Backend {
	if t == TypeNaive {
		return NewNaive()
	}
	return NewGap()
}

func (b *Buffer) Type() Type {
	return b.typ
}

// SetType swaps the storage backend, copying content end to end. Cursor,
// sticky column and dirty flags are untouched; switching to the current type
// is a no-op.
func (b *Buffer) SetType(t Type) {
	if t == b.typ {
		return
	}
	content := b.backend.Slice(0, b.backend.Len())
	next := newBackend(t)
	next.Insert(0, content)
	b.backend = next
	b.typ = t
}

func (b *Buffer) byteAt(i int) byte {
	return b.backend.Slice(i, 1)[0]
}

// seqLenAt returns the byte width of the codepoint starting at i, treating a
// malformed lead as width 1 so motion always makes progress.
func (b *Buffer) seqLenAt(i int) int {
	if n := seqLen(b.byteAt(i)); n > 0 {
		return n
	}
	return 1
}

// IndexMovedByChar walks |charDelta| codepoints from the given byte index,
// forward for positive deltas and backward for negative, clamped to
// [0, Len]. It is the only sanctioned way to step across multibyte
// characters.
func (b *Buffer) IndexMovedByChar(from, charDelta int) int {
	return b.indexMoved(from, charDelta, false)
}

// CursorMovedByChar is IndexMovedByChar anchored at the cursor. It does not
// move the cursor.
func (b *Buffer) CursorMovedByChar(charDelta int) int {
	return b.indexMoved(b.cursor, charDelta, false)
}

// IndexMovedByCharSkippingNewlines applies the skip-newline policy on top of
// IndexMovedByChar: when the result lands on a '\n' that is not the only
// character on its line, the position advances one more codepoint in the
// direction of motion. Purely empty lines are preserved.
func (b *Buffer) IndexMovedByCharSkippingNewlines(from, charDelta int) int {
	return b.indexMoved(from, charDelta, true)
}

func (b *Buffer) indexMoved(from, charDelta int, skipNewlines bool) int {
	length := b.backend.Len()
	i := from
	if i > length {
		i = length
	}
	if i < 0 {
		i = 0
	}
	delta := charDelta
	for delta > 0 && i < length {
		i += b.seqLenAt(i)
		delta--
	}
	for delta < 0 && i > 0 {
		i--
		for i > 0 && !isLead(b.byteAt(i)) {
			i--
		}
		delta++
	}
	if i > length {
		i = length
	}

	if skipNewlines && i < length && b.byteAt(i) == '\n' {
		line := b.backend.LineContaining(i)
		if b.backend.LineEnd(line)-b.backend.LineStart(line) > 0 {
			if charDelta < 0 {
				i = b.indexMoved(i, -1, false)
			} else {
				i = b.indexMoved(i, 1, false)
			}
		}
	}
	return i
}

// Insert places content at the cursor, advances the cursor past it and
// clears the sticky column.
func (b *Buffer) Insert(content string) {
	b.backend.Insert(b.cursor, []byte(content))
	b.cursor += len(content)
	b.col = -1
	b.markEdited()
}

// Delete removes the next charCount codepoints starting at the cursor,
// stopping at the end of content, and returns the removed substring. The
// cursor does not move; the sticky column clears.
func (b *Buffer) Delete(charCount int) string {
	end := b.indexMoved(b.cursor, charCount, false)
	removed := b.backend.Delete(b.cursor, end-b.cursor)
	b.col = -1
	b.markEdited()
	return string(removed)
}

// Clear drops all content and resets the cursor.
func (b *Buffer) Clear() {
	b.backend.Delete(0, b.backend.Len())
	b.cursor = 0
	b.col = -1
	b.markEdited()
}

func (b *Buffer) Content() string {
	return string(b.backend.Slice(0, b.backend.Len()))
}

// ContentAt copies charCount codepoints starting at a byte index.
func (b *Buffer) ContentAt(byteIndex, charCount int) (string, error) {
	if err := b.checkIndex(byteIndex); err != nil {
		return "", err
	}
	end := b.indexMoved(byteIndex, charCount, false)
	return string(b.backend.Slice(byteIndex, end-byteIndex)), nil
}

// LineContent returns the line's content without its terminating newline.
func (b *Buffer) LineContent(line int) (string, error) {
	if err := b.checkLine(line); err != nil {
		return "", err
	}
	start := b.backend.LineStart(line)
	return string(b.backend.Slice(start, b.backend.LineEnd(line)-start)), nil
}

func (b *Buffer) Length() int {
	return b.backend.Len()
}

func (b *Buffer) LineCount() int {
	return b.backend.LineCount()
}

func (b *Buffer) LineForIndex(byteIndex int) (int, error) {
	if err := b.checkIndex(byteIndex); err != nil {
		return 0, err
	}
	return b.backend.LineContaining(byteIndex), nil
}

func (b *Buffer) LineLength(line int) (int, error) {
	if err := b.checkLine(line); err != nil {
		return 0, err
	}
	return b.backend.LineEnd(line) - b.backend.LineStart(line), nil
}

func (b *Buffer) LineStart(line int) (int, error) {
	if err := b.checkLine(line); err != nil {
		return 0, err
	}
	return b.backend.LineStart(line), nil
}

func (b *Buffer) LineEnd(line int) (int, error) {
	if err := b.checkLine(line); err != nil {
		return 0, err
	}
	return b.backend.LineEnd(line), nil
}

func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor places the cursor at a byte index that must sit on a codepoint
// boundary or equal Len. With keepCol the sticky column survives; otherwise
// it clears.
func (b *Buffer) SetCursor(byteIndex int, keepCol bool) error {
	if err := b.checkIndex(byteIndex); err != nil {
		return err
	}
	if byteIndex < b.backend.Len() && !isLead(b.byteAt(byteIndex)) {
		return ErrBoundary
	}
	b.cursor = byteIndex
	if !keepCol {
		b.col = -1
	}
	b.renderDirty = true
	return nil
}

// SetCursorLine places the cursor on the given line at the byte offset
// closest to the sticky column, falling back to the current column. The
// sticky column is recorded on first vertical motion and kept afterwards.
// Lines past the end place the cursor at the end of content.
func (b *Buffer) SetCursorLine(line int) {
	if b.col < 0 {
		b.col = b.cursor - b.backend.LineStart(b.CursorLine())
	}
	if line >= b.backend.LineCount() {
		b.cursor = b.backend.Len()
		b.renderDirty = true
		return
	}
	if line < 0 {
		line = 0
	}
	start := b.backend.LineStart(line)
	col := b.col
	if max := b.backend.LineEnd(line) - start; col > max {
		col = max
	}
	pos := start + col
	for pos > start && pos < b.backend.Len() && !isLead(b.byteAt(pos)) {
		pos--
	}
	b.cursor = pos
	b.renderDirty = true
}

func (b *Buffer) CursorLine() int {
	return b.backend.LineContaining(b.cursor)
}

func (b *Buffer) CursorLineContent() (string, error) {
	return b.LineContent(b.CursorLine())
}

// CursorContent returns the codepoint under the cursor, or the empty string
// at end of content.
func (b *Buffer) CursorContent() string {
	if b.cursor >= b.backend.Len() {
		return ""
	}
	return string(b.backend.Slice(b.cursor, b.seqLenAt(b.cursor)))
}

func (b *Buffer) checkIndex(byteIndex int) error {
	if byteIndex < 0 || byteIndex > b.backend.Len() {
		return ErrOutOfBounds
	}
	return nil
}

func (b *Buffer) checkLine(line int) error {
	if line < 0 || line >= b.backend.LineCount() {
		return ErrOutOfBounds
	}
	return nil
}

func (b *Buffer) markEdited() {
	b.renderDirty = true
	b.contentDirty = true
}

func (b *Buffer) RenderDirty() bool  { return b.renderDirty }
func (b *Buffer) ContentDirty() bool { return b.contentDirty }

func (b *Buffer) ClearRenderDirty() { b.renderDirty = false }

// MarkClean is used by file linkage when content reaches disk.
func (b *Buffer) MarkClean() { b.contentDirty = false }

// PopulateFrom replaces all content with the reader's bytes and resets the
// cursor. The buffer comes out content-clean and render-dirty.
func (b *Buffer) PopulateFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.backend.Delete(0, b.backend.Len())
	b.backend.Insert(0, data)
	b.cursor = 0
	b.col = -1
	b.renderDirty = true
	b.contentDirty = false
	return nil
}

// FlushTo writes all content to the writer and marks the buffer clean.
func (b *Buffer) FlushTo(w io.Writer) error {
	if _, err := w.Write(b.backend.Slice(0, b.backend.Len())); err != nil {
		return err
	}
	b.contentDirty = false
	return nil
}

func (b *Buffer) ClearStyles() {
	b.styles.Clear()
	b.renderDirty = true
}

func (b *Buffer) PushStyle(name, expr string) error {
	if err := b.styles.Push(name, expr); err != nil {
		return err
	}
	b.renderDirty = true
	return nil
}

func (b *Buffer) Styles() []styling.Style {
	return b.styles.Styles()
}
