// ABOUTME: Screen is the shared cell grid: base components at z 0, popups above
// ABOUTME: It is the popup Canvas, Host and CursorSource of a terminal frame

package tui

import (
	"strings"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
	"github.com/mauromedda/popgrid/pkg/tui/width"
)

// Cell is one grid cell. The right half of a wide cluster is a cell with
// Cont set and no text.
type Cell struct {
	Text string
	HL   string
	Cont bool
}

var blank = Cell{Text: " "}

// ZMask reports the z-index owning a cell. *popup.Manager implements it.
type ZMask interface {
	ZAt(row, col int) int
}

// span is the layout of one Window: text rows start at row, the status
// row follows them.
type span struct {
	win    Window
	row    int
	height int
}

// Screen is not safe for concurrent use; the TUI and host serialize
// access per frame.
type Screen struct {
	rows, cols  int
	cmdlineRows int
	cells       []Cell
	z           int
	mask        ZMask

	base    []placed
	spans   []span
	focus   Window
	cmdline string
}

// placed is a rendered base component waiting to be drawn.
type placed struct {
	row    int
	lines  []string
	window Window
}

// NewScreen returns a blank grid. The last cmdlineRows rows are the
// command area.
func NewScreen(rows, cols, cmdlineRows int) *Screen {
	s := &Screen{cmdlineRows: max(cmdlineRows, 0)}
	s.Resize(rows, cols)
	return s
}

// Resize changes the grid size and clears it.
func (s *Screen) Resize(rows, cols int) {
	s.rows, s.cols = max(rows, 0), max(cols, 0)
	s.cells = make([]Cell, s.rows*s.cols)
	s.Clear()
}

// Size returns the grid size.
func (s *Screen) Size() popup.Size {
	return popup.Size{Rows: s.rows, Cols: s.cols}
}

// SetMask installs the z-index source used to guard writes.
func (s *Screen) SetMask(m ZMask) { s.mask = m }

// SetCmdline sets the text shown in the command area.
func (s *Screen) SetCmdline(text string) { s.cmdline = text }

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Cell returns the cell at row, col.
func (s *Screen) Cell(row, col int) Cell {
	if row < 0 || col < 0 || row >= s.rows || col >= s.cols {
		return Cell{}
	}
	return s.cells[row*s.cols+col]
}

// SetZIndex sets the z-index of subsequent writes.
func (s *Screen) SetZIndex(z int) { s.z = z }

func (s *Screen) writable(row, col int) bool {
	if row < 0 || col < 0 || row >= s.rows || col >= s.cols {
		return false
	}
	return s.mask == nil || s.mask.ZAt(row, col) <= s.z
}

// popup cells without a highlight of their own use Pmenu
func (s *Screen) highlight(hl string) string {
	if hl == "" && s.z > 0 {
		return theme.Pmenu
	}
	return hl
}

// set stores c, blanking the other half of any wide cluster it splits.
func (s *Screen) set(row, col int, c Cell) {
	off := row*s.cols + col
	old := s.cells[off]
	if old.Cont && col > 0 {
		s.cells[off-1] = Cell{Text: " ", HL: s.cells[off-1].HL}
	}
	if !old.Cont && col+1 < s.cols && s.cells[off+1].Cont {
		s.cells[off+1] = Cell{Text: " ", HL: s.cells[off+1].HL}
	}
	s.cells[off] = c
}

// setCont marks the right half of the wide cluster just written to the
// left of col.
func (s *Screen) setCont(row, col int, hl string) {
	off := row*s.cols + col
	if !s.cells[off].Cont && col+1 < s.cols && s.cells[off+1].Cont {
		s.cells[off+1] = Cell{Text: " ", HL: s.cells[off+1].HL}
	}
	s.cells[off] = Cell{HL: hl, Cont: true}
}

// Put writes text at row, col, clipped to the grid and the mask.
func (s *Screen) Put(row, col int, text, hl string) {
	hl = s.highlight(hl)
	for c := range width.Clusters(text) {
		at := col + c.Col
		switch c.Width {
		case 0:
			continue
		case 1:
			if s.writable(row, at) {
				s.set(row, at, Cell{Text: c.Text, HL: hl})
			}
		default:
			if !s.writable(row, at) {
				continue
			}
			if !s.writable(row, at+1) {
				s.set(row, at, Cell{Text: " ", HL: hl})
				continue
			}
			s.set(row, at, Cell{Text: c.Text, HL: hl})
			s.setCont(row, at+1, hl)
		}
	}
}

// Fill paints rows [row0,row1) and columns [col0,col1).
func (s *Screen) Fill(row0, row1, col0, col1 int, first, fill rune, hl string) {
	hl = s.highlight(hl)
	head, body := string(first), string(fill)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			if !s.writable(row, col) {
				continue
			}
			text := body
			if col == col0 {
				text = head
			}
			s.set(row, col, Cell{Text: text, HL: hl})
		}
	}
}

// CmdlineRow is the first row of the command area.
func (s *Screen) CmdlineRow() int {
	return max(s.rows-s.cmdlineRows, 0)
}

// WindowAt maps a cell to the window and buffer line shown there.
func (s *Screen) WindowAt(row, col int) (popup.WindowLoc, bool) {
	if col < 0 || col >= s.cols || row >= s.CmdlineRow() {
		return popup.WindowLoc{}, false
	}
	for _, sp := range s.spans {
		if row < sp.row || row > sp.row+sp.height {
			continue
		}
		loc := popup.WindowLoc{Window: sp.win.ID(), RightCol: s.cols - 1}
		if row == sp.row+sp.height {
			loc.Status = true
		} else {
			loc.Line = sp.win.TopLine() + row - sp.row
		}
		return loc, true
	}
	return popup.WindowLoc{}, false
}

// Layout renders the base components and assigns their rows. The focused
// window, if any, becomes the cursor source.
func (s *Screen) Layout(c *Container) {
	s.base = s.base[:0]
	s.spans = s.spans[:0]
	s.focus = nil
	focus := c.Focused()
	limit := s.CmdlineRow()

	row := 0
	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	for _, child := range c.Children() {
		if row >= limit {
			break
		}
		buf.Reset()
		child.Render(buf, s.cols)
		lines := buf.Lines
		w, isWin := child.(Window)
		if isWin {
			// text rows plus the status row
			lines = fitLines(lines, w.Height()+1)
			h := min(w.Height(), limit-row)
			s.spans = append(s.spans, span{win: w, row: row, height: h})
			if w.ID() == focus {
				s.focus = w
			}
		}
		lines = lines[:min(len(lines), limit-row)]
		p := placed{row: row, lines: append([]string(nil), lines...)}
		if isWin {
			p.window = w
		}
		s.base = append(s.base, p)
		row += len(lines)
	}
}

func fitLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines[:n]
}

// DrawBase clears the grid and draws the laid out base components and
// the command area at z 0. Cells owned by a popup are left untouched.
func (s *Screen) DrawBase() {
	s.Clear()
	s.SetZIndex(0)
	for _, p := range s.base {
		for i, line := range p.lines {
			hl := theme.Normal
			if p.window != nil && i == p.window.Height() {
				hl = theme.StatusLineNC
				if p.window == s.focus {
					hl = theme.StatusLine
				}
				s.Fill(p.row+i, p.row+i+1, 0, s.cols, ' ', ' ', hl)
			}
			s.Put(p.row+i, 0, line, hl)
		}
	}
	row := s.CmdlineRow()
	for i, line := range strings.Split(s.cmdline, "\n") {
		if row+i >= s.rows {
			break
		}
		s.Put(row+i, 0, line, theme.MsgArea)
	}
}

// Cursor returns the cursor of the focused window in grid coordinates.
func (s *Screen) Cursor() popup.Cursor {
	for _, sp := range s.spans {
		if sp.win != s.focus {
			continue
		}
		cur := popup.Cursor{Window: sp.win.ID()}
		if tw, ok := sp.win.(*TextWindow); ok {
			cur.Line, cur.Col = tw.Cursor()
			r, c := tw.CursorCell()
			cur.ScreenRow, cur.ScreenCol = sp.row+r, c
		}
		return cur
	}
	return popup.Cursor{}
}

// WordUnderCursor delegates to the focused window.
func (s *Screen) WordUnderCursor(bigWord bool) (int, int, bool) {
	if tw, ok := s.focus.(*TextWindow); ok {
		return tw.WordUnderCursor(bigWord)
	}
	return 0, 0, false
}

// Row returns the plain text of a row.
func (s *Screen) Row(row int) string {
	var b strings.Builder
	for col := range s.cols {
		b.WriteString(s.cells[row*s.cols+col].Text)
	}
	return b.String()
}

// String dumps the grid as plain text with trailing blanks trimmed.
func (s *Screen) String() string {
	rows := make([]string, s.rows)
	for r := range rows {
		rows[r] = strings.TrimRight(s.Row(r), " ")
	}
	return strings.Join(rows, "\n")
}

// Lines renders every row with th, one lipgloss style per highlight run.
func (s *Screen) Lines(th *theme.Theme) []string {
	out := make([]string, s.rows)
	var b, run strings.Builder
	for r := range s.rows {
		b.Reset()
		hl := ""
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(th.Render(hl, run.String()))
				run.Reset()
			}
		}
		for col := range s.cols {
			c := s.cells[r*s.cols+col]
			if c.Cont {
				continue
			}
			if c.HL != hl {
				flush()
				hl = c.HL
			}
			run.WriteString(c.Text)
		}
		flush()
		out[r] = b.String()
	}
	return out
}
