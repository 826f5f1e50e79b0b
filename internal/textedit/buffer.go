// Package textedit implements the editing state of a single text area: a
// mutable string with line breaks encoded as \n, an integer cursor, and an
// optional selection. Cursor movement is grapheme-cluster aware so that
// multi-rune characters never get split.
package textedit

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Range is a half-open selection [Start,End) in byte offsets.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Buffer holds the text-editing state. The zero value is an empty buffer
// with the cursor at 0 and no selection.
type Buffer struct {
	Text      string `json:"text"`
	Cursor    int    `json:"cursor"`
	Selection *Range `json:"selection,omitempty"`
}

// TabSpaces is what a Tab key press inserts.
const TabSpaces = "    "

// SetCursor places the cursor, clamping out-of-range indices instead of
// failing. The selection is cleared.
func (b *Buffer) SetCursor(i int) {
	b.Cursor = clamp(i, 0, len(b.Text))
	b.Selection = nil
}

// HasSelection reports whether a non-empty selection is active.
func (b *Buffer) HasSelection() bool {
	return b.Selection != nil && b.Selection.End > b.Selection.Start
}

// SelectedText returns the selected substring, or "".
func (b *Buffer) SelectedText() string {
	if !b.HasSelection() {
		return ""
	}
	return b.Text[b.Selection.Start:b.Selection.End]
}

// SelectAll selects the whole string and parks the cursor at its end.
func (b *Buffer) SelectAll() {
	b.Selection = &Range{Start: 0, End: len(b.Text)}
	b.Cursor = len(b.Text)
}

// Insert replaces the active selection (if any) with s, otherwise inserts s
// at the cursor. The cursor ends just after the inserted text. This is the
// single atomic edit every key press funnels through.
func (b *Buffer) Insert(s string) {
	start, end := b.Cursor, b.Cursor
	if b.HasSelection() {
		start, end = b.Selection.Start, b.Selection.End
	}
	b.Text = b.Text[:start] + s + b.Text[end:]
	b.Cursor = start + len(s)
	b.Selection = nil
}

// InsertTab inserts four spaces.
func (b *Buffer) InsertTab() { b.Insert(TabSpaces) }

// InsertNewline inserts a line break.
func (b *Buffer) InsertNewline() { b.Insert("\n") }

// Backspace removes the selection, or the grapheme before the cursor.
func (b *Buffer) Backspace() {
	if b.HasSelection() {
		b.Insert("")
		return
	}
	if b.Cursor == 0 {
		return
	}
	prev := prevBoundary(b.Text, b.Cursor)
	b.Text = b.Text[:prev] + b.Text[b.Cursor:]
	b.Cursor = prev
}

// Delete removes the selection, or the grapheme after the cursor.
func (b *Buffer) Delete() {
	if b.HasSelection() {
		b.Insert("")
		return
	}
	if b.Cursor >= len(b.Text) {
		return
	}
	next := nextBoundary(b.Text, b.Cursor)
	b.Text = b.Text[:b.Cursor] + b.Text[next:]
}

// MoveLeft moves one grapheme left. An active selection collapses to its
// start instead.
func (b *Buffer) MoveLeft() {
	if b.HasSelection() {
		b.Cursor = b.Selection.Start
		b.Selection = nil
		return
	}
	b.Cursor = prevBoundary(b.Text, b.Cursor)
}

// MoveRight moves one grapheme right, or collapses the selection to its end.
func (b *Buffer) MoveRight() {
	if b.HasSelection() {
		b.Cursor = b.Selection.End
		b.Selection = nil
		return
	}
	b.Cursor = nextBoundary(b.Text, b.Cursor)
}

// MoveUp moves to the same column on the previous line, clamped to that
// line's length. On the first line the cursor goes to 0.
func (b *Buffer) MoveUp() {
	b.Selection = nil
	ls := b.lineStart(b.Cursor)
	if ls == 0 {
		b.Cursor = 0
		return
	}
	col := graphemeCount(b.Text[ls:b.Cursor])
	prevStart := b.lineStart(ls - 1)
	b.Cursor = advance(b.Text, prevStart, ls-1, col)
}

// MoveDown moves to the same column on the next line, clamped. On the last
// line the cursor goes to the end of the string.
func (b *Buffer) MoveDown() {
	b.Selection = nil
	ls := b.lineStart(b.Cursor)
	le := b.lineEnd(b.Cursor)
	if le >= len(b.Text) {
		b.Cursor = len(b.Text)
		return
	}
	col := graphemeCount(b.Text[ls:b.Cursor])
	nextStart := le + 1
	b.Cursor = advance(b.Text, nextStart, b.lineEnd(nextStart), col)
}

// Home moves to the start of the current line, not the whole string.
func (b *Buffer) Home() {
	b.Selection = nil
	b.Cursor = b.lineStart(b.Cursor)
}

// End moves to the end of the current line.
func (b *Buffer) End() {
	b.Selection = nil
	b.Cursor = b.lineEnd(b.Cursor)
}

// WordLeft moves to the start of the previous word. A word is a maximal run
// of letters and digits; separator runs are skipped first.
func (b *Buffer) WordLeft() {
	b.Selection = nil
	i := b.Cursor
	for i > 0 && !isWordByte(b.Text, prevBoundary(b.Text, i)) {
		i = prevBoundary(b.Text, i)
	}
	for i > 0 && isWordByte(b.Text, prevBoundary(b.Text, i)) {
		i = prevBoundary(b.Text, i)
	}
	b.Cursor = i
}

// WordRight moves past the end of the next word.
func (b *Buffer) WordRight() {
	b.Selection = nil
	i := b.Cursor
	for i < len(b.Text) && !isWordByte(b.Text, i) {
		i = nextBoundary(b.Text, i)
	}
	for i < len(b.Text) && isWordByte(b.Text, i) {
		i = nextBoundary(b.Text, i)
	}
	b.Cursor = i
}

// Line returns the content of the line containing the cursor.
func (b *Buffer) Line() string {
	return b.Text[b.lineStart(b.Cursor):b.lineEnd(b.Cursor)]
}

// Clone returns a deep copy.
func (b *Buffer) Clone() Buffer {
	c := *b
	if b.Selection != nil {
		sel := *b.Selection
		c.Selection = &sel
	}
	return c
}

// lineStart returns the index just after the preceding \n, for the line
// containing byte offset i.
func (b *Buffer) lineStart(i int) int {
	i = clamp(i, 0, len(b.Text))
	if j := strings.LastIndexByte(b.Text[:i], '\n'); j >= 0 {
		return j + 1
	}
	return 0
}

// lineEnd returns the index of the terminating \n (or len) for the line
// containing byte offset i.
func (b *Buffer) lineEnd(i int) int {
	i = clamp(i, 0, len(b.Text))
	if j := strings.IndexByte(b.Text[i:], '\n'); j >= 0 {
		return i + j
	}
	return len(b.Text)
}

// advance walks col graphemes forward from start, stopping at limit.
func advance(s string, start, limit, col int) int {
	i := start
	for n := 0; n < col && i < limit; n++ {
		i = nextBoundary(s, i)
	}
	if i > limit {
		i = limit
	}
	return i
}

func nextBoundary(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
	return i + len(cluster)
}

func prevBoundary(s string, i int) int {
	if i <= 0 {
		return 0
	}
	pos := 0
	for pos < i {
		next := nextBoundary(s, pos)
		if next >= i {
			return pos
		}
		pos = next
	}
	return pos
}

func graphemeCount(s string) int { return uniseg.GraphemeClusterCount(s) }

// isWordByte reports whether the rune starting at byte i belongs to a word.
func isWordByte(s string, i int) bool {
	for _, r := range s[i:] {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
