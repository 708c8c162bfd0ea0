// ABOUTME: TextWindow is a scrollable view of buffer lines with a cursor and status row
// ABOUTME: It supplies the cursor and word ranges cursor-relative popups need

package tui

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mauromedda/popgrid/pkg/tui/width"
)

// TextWindow shows Height() rows of its lines starting at TopLine.
type TextWindow struct {
	mu     sync.RWMutex
	id     int
	name   string
	height int
	lines  []string
	top    int
	// cursor: 1-based line, 0-based byte column
	line, col int
}

// NewTextWindow returns a window of height text rows over lines.
func NewTextWindow(id int, name string, height int, lines []string) *TextWindow {
	return &TextWindow{
		id:     id,
		name:   name,
		height: max(height, 1),
		lines:  lines,
		top:    1,
		line:   1,
	}
}

func (w *TextWindow) ID() int { return w.id }

func (w *TextWindow) Height() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.height
}

func (w *TextWindow) TopLine() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.top
}

func (w *TextWindow) Name() string { return w.name }

// SetLines replaces the buffer and clamps the cursor.
func (w *TextWindow) SetLines(lines []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines = lines
	w.clampLocked()
}

// Line returns buffer line lnum, 1-based.
func (w *TextWindow) Line(lnum int) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lineLocked(lnum)
}

func (w *TextWindow) lineLocked(lnum int) string {
	if lnum < 1 || lnum > len(w.lines) {
		return ""
	}
	return w.lines[lnum-1]
}

// Cursor returns the 1-based line and 0-based byte column.
func (w *TextWindow) Cursor() (line, col int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.line, w.col
}

// SetCursor moves the cursor and scrolls it into view.
func (w *TextWindow) SetCursor(line, col int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.line, w.col = line, col
	w.clampLocked()
}

// MoveCursor moves the cursor by whole lines and runes.
func (w *TextWindow) MoveCursor(dLine, dCol int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.line += dLine
	w.clampLocked()
	text := w.lineLocked(w.line)
	for ; dCol > 0 && w.col < len(text); dCol-- {
		_, n := utf8.DecodeRuneInString(text[w.col:])
		w.col += n
	}
	for ; dCol < 0 && w.col > 0; dCol++ {
		_, n := utf8.DecodeLastRuneInString(text[:w.col])
		w.col -= n
	}
}

func (w *TextWindow) clampLocked() {
	w.line = min(max(w.line, 1), max(len(w.lines), 1))
	w.col = min(max(w.col, 0), len(w.lineLocked(w.line)))
	if w.line < w.top {
		w.top = w.line
	}
	if w.line >= w.top+w.height {
		w.top = w.line - w.height + 1
	}
}

// CursorCell returns the cursor position relative to the window: text row
// and display column.
func (w *TextWindow) CursorCell() (row, col int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.line - w.top, width.VisibleWidth(w.lineLocked(w.line)[:w.col])
}

// WordUnderCursor returns the byte range of the word at the cursor. A big
// word is a run of non-blank characters; a word is a run of letters,
// digits and underscores.
func (w *TextWindow) WordUnderCursor(bigWord bool) (start, length int, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	text := w.lineLocked(w.line)
	if w.col >= len(text) {
		return 0, 0, false
	}
	inWord := func(r rune) bool {
		if bigWord {
			return !unicode.IsSpace(r)
		}
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	if r, _ := utf8.DecodeRuneInString(text[w.col:]); !inWord(r) {
		return 0, 0, false
	}
	start = w.col
	for start > 0 {
		r, n := utf8.DecodeLastRuneInString(text[:start])
		if !inWord(r) {
			break
		}
		start -= n
	}
	end := w.col
	for end < len(text) {
		r, n := utf8.DecodeRuneInString(text[end:])
		if !inWord(r) {
			break
		}
		end += n
	}
	return start, end - start, true
}

// Render writes the visible text rows and the status row.
func (w *TextWindow) Render(out *RenderBuffer, cols int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for i := range w.height {
		out.WriteLine(width.SliceByColumn(w.lineLocked(w.top+i), 0, cols))
	}
	pos := fmt.Sprintf("%d,%d", w.line, w.col+1)
	gap := max(cols-width.VisibleWidth(w.name)-len(pos), 1)
	status := w.name + strings.Repeat(" ", gap) + pos
	out.WriteLine(width.Truncate(status, cols))
}

func (w *TextWindow) Invalidate() {}
