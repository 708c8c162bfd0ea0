// ABOUTME: Content source contract consumed by the resolver, plus a text buffer
// ABOUTME: TextBuffer caches display widths and bumps a tick on every change

package popup

import (
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/popgrid/pkg/tui/width"
)

// Content supplies the text metrics a panel is sized from.
// Line numbers are 1-based.
type Content interface {
	LineCount() int
	LineWidth(lnum int) int
	// Tick changes whenever the text changes.
	Tick() uint64
}

// LineSource is implemented by content that can return line text for painting.
type LineSource interface {
	Line(lnum int) string
}

// TextSetter is implemented by content that accepts replacement text.
type TextSetter interface {
	SetLines(lines []string)
}

// TextBuffer is an in-memory Content holding NFC-normalized lines.
type TextBuffer struct {
	lines  []string
	widths []int
	tick   uint64
}

// NewTextBuffer returns a buffer holding lines.
func NewTextBuffer(lines ...string) *TextBuffer {
	b := &TextBuffer{}
	b.SetLines(lines)
	return b
}

// SetLines replaces the text and bumps the tick.
func (b *TextBuffer) SetLines(lines []string) {
	b.lines = make([]string, len(lines))
	b.widths = make([]int, len(lines))
	for i, l := range lines {
		l = norm.NFC.String(l)
		b.lines[i] = l
		b.widths[i] = width.VisibleWidth(l)
	}
	b.tick++
}

// LineCount returns the number of lines.
func (b *TextBuffer) LineCount() int { return len(b.lines) }

// LineWidth returns the display width of line lnum, 0 when out of range.
func (b *TextBuffer) LineWidth(lnum int) int {
	if lnum < 1 || lnum > len(b.widths) {
		return 0
	}
	return b.widths[lnum-1]
}

// Line returns the text of line lnum, "" when out of range.
func (b *TextBuffer) Line(lnum int) string {
	if lnum < 1 || lnum > len(b.lines) {
		return ""
	}
	return b.lines[lnum-1]
}

// Tick returns the change counter.
func (b *TextBuffer) Tick() uint64 { return b.tick }
