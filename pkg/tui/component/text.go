// ABOUTME: Static text component for header and footer rows above or below the windows
// ABOUTME: Lines are clipped to the grid width; a fixed height pads or cuts them

package component

import (
	"strings"
	"sync"

	"github.com/mauromedda/popgrid/pkg/tui"
	"github.com/mauromedda/popgrid/pkg/tui/width"
)

// Text renders static lines.
type Text struct {
	mu     sync.RWMutex
	lines  []string
	height int
}

// NewText creates a Text component with content split on newlines.
func NewText(content string) *Text {
	return &Text{lines: splitLines(content)}
}

// NewLines creates a Text component from lines. A height above zero
// fixes the number of rows rendered.
func NewLines(lines []string, height int) *Text {
	return &Text{lines: append([]string(nil), lines...), height: max(height, 0)}
}

// SetContent updates the displayed text.
func (t *Text) SetContent(content string) {
	t.mu.Lock()
	t.lines = splitLines(content)
	t.mu.Unlock()
}

// Render writes the lines clipped to cols.
func (t *Text) Render(out *tui.RenderBuffer, cols int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := len(t.lines)
	if t.height > 0 {
		n = t.height
	}
	for i := range n {
		line := ""
		if i < len(t.lines) {
			line = t.lines[i]
		}
		if width.VisibleWidth(line) > cols {
			line = width.SliceByColumn(line, 0, cols)
		}
		out.WriteLine(line)
	}
}

// Invalidate is a no-op; Text renders from its lines every frame.
func (t *Text) Invalidate() {}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
