// ABOUTME: Shared fixtures for popup tests: managers, fake hosts, cursors and canvases
// ABOUTME: The recording canvas applies the same z-guard a real screen does

package popup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var grid24x80 = Size{Rows: 24, Cols: 80}

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	if cfg.Size == (Size{}) {
		cfg.Size = grid24x80
	}
	return NewManager(cfg)
}

// block returns n lines of w characters.
func block(n, w int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.Repeat("x", w)
	}
	return out
}

func mustCreate(t *testing.T, m *Manager, lines []string, opts Options, kind Kind) ID {
	t.Helper()
	id, err := m.Create(lines, opts, kind)
	require.NoError(t, err)
	return id
}

// fakeHost has one window per row band and a command line at the bottom.
type fakeHost struct {
	cmdline int
	cols    int
}

func (h fakeHost) CmdlineRow() int { return h.cmdline }

func (h fakeHost) WindowAt(row, col int) (WindowLoc, bool) {
	if row >= h.cmdline || col >= h.cols {
		return WindowLoc{}, false
	}
	return WindowLoc{Window: 1, Line: row + 1, RightCol: h.cols - 1}, true
}

type fakeCursor struct {
	cur       Cursor
	wordStart int
	wordLen   int
}

func (c *fakeCursor) Cursor() Cursor { return c.cur }

func (c *fakeCursor) WordUnderCursor(bool) (int, int, bool) {
	return c.wordStart, c.wordLen, c.wordLen > 0
}

// recCanvas records painted runes and honors the manager's mask.
type recCanvas struct {
	m     *Manager
	size  Size
	z     int
	cells [][]rune
	hl    [][]string
}

func newRecCanvas(m *Manager) *recCanvas {
	size := m.Size()
	c := &recCanvas{m: m, size: size}
	c.cells = make([][]rune, size.Rows)
	c.hl = make([][]string, size.Rows)
	for r := range c.cells {
		c.cells[r] = []rune(strings.Repeat(".", size.Cols))
		c.hl[r] = make([]string, size.Cols)
	}
	return c
}

func (c *recCanvas) SetZIndex(z int) { c.z = z }

func (c *recCanvas) set(row, col int, r rune, hl string) {
	if row < 0 || col < 0 || row >= c.size.Rows || col >= c.size.Cols {
		return
	}
	if c.m.ZAt(row, col) > c.z {
		return
	}
	c.cells[row][col] = r
	c.hl[row][col] = hl
}

func (c *recCanvas) Fill(row0, row1, col0, col1 int, first, fill rune, hl string) {
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			r := fill
			if col == col0 {
				r = first
			}
			c.set(row, col, r, hl)
		}
	}
}

func (c *recCanvas) Put(row, col int, text, hl string) {
	for i, r := range []rune(text) {
		c.set(row, col+i, r, hl)
	}
}

func (c *recCanvas) row(r int) string { return string(c.cells[r]) }

// linePainter writes the visible lines of a TextBuffer without wrapping.
func linePainter(c Canvas, p *Panel, area Rect) {
	src, ok := p.Content().(LineSource)
	if !ok {
		return
	}
	for i := 0; i < area.Height; i++ {
		line := []rune(src.Line(p.TopLine() + i))
		if len(line) > area.Width {
			line = line[:area.Width]
		}
		c.Put(area.Row+i, area.Col, string(line), p.Highlight)
	}
}
