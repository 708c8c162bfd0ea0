// ABOUTME: Tests for the Screen grid: wide clusters, the z-guard, and host mapping
// ABOUTME: Frames are built with Compose the way the TUI and the host do

package tui

import (
	"strings"
	"testing"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

type fixedMask map[[2]int]int

func (m fixedMask) ZAt(row, col int) int { return m[[2]int{row, col}] }

func TestScreen_PutWideClusters(t *testing.T) {
	t.Parallel()

	s := NewScreen(1, 6, 0)
	s.Put(0, 0, "a日b", "X")
	if got := s.Row(0); got != "a日b  " {
		t.Errorf("Row = %q", got)
	}
	if !s.Cell(0, 2).Cont {
		t.Error("right half of a wide cluster should be a continuation cell")
	}

	// overwriting the right half blanks the left half
	s.Put(0, 2, "Z", "")
	if got := s.Row(0); got != "a Zb  " {
		t.Errorf("Row after split = %q", got)
	}

	// a wide cluster at the last column does not fit
	s.Put(0, 5, "本", "")
	if got := s.Row(0); got != "a Zb  " {
		t.Errorf("Row after clipped wide = %q", got)
	}
}

func TestScreen_ZGuard(t *testing.T) {
	t.Parallel()

	s := NewScreen(1, 5, 0)
	s.SetMask(fixedMask{{0, 1}: 50, {0, 2}: 50})
	s.Put(0, 0, "base!", theme.Normal)
	if got := s.Row(0); got != "b  e!" {
		t.Errorf("z 0 write leaked under a panel: %q", got)
	}

	s.SetZIndex(50)
	s.Fill(0, 1, 0, 5, '[', '=', "")
	if got := s.Row(0); got != "[====" {
		t.Errorf("Fill at z 50 = %q", got)
	}
	if hl := s.Cell(0, 1).HL; hl != theme.Pmenu {
		t.Errorf("popup cell without highlight got %q, want Pmenu", hl)
	}

	// a wide cluster whose right half is covered is replaced by a blank
	s.SetZIndex(0)
	s.SetMask(fixedMask{{0, 4}: 60})
	s.Put(0, 3, "日", "")
	if got := s.Cell(0, 3); got.Text != " " || got.Cont {
		t.Errorf("cell 3 = %+v, want a blank", got)
	}
}

func TestScreen_LayoutAndWindowAt(t *testing.T) {
	t.Parallel()

	s := NewScreen(10, 20, 2)
	c := NewContainer()
	c.Add(&mockComponent{lines: []string{"header"}})
	top := NewTextWindow(1, "top", 3, []string{"one", "two", "three", "four"})
	top.SetCursor(4, 0) // scrolls to line 2
	c.Add(top)
	c.Add(NewTextWindow(2, "bottom", 5, nil))
	s.Layout(c)

	tests := []struct {
		row    int
		ok     bool
		window int
		line   int
		status bool
	}{
		{row: 0, ok: false},
		{row: 1, ok: true, window: 1, line: 2},
		{row: 3, ok: true, window: 1, line: 4},
		{row: 4, ok: true, window: 1, status: true},
		{row: 5, ok: true, window: 2, line: 1},
		// the second window is cut by the command area at row 8
		{row: 7, ok: true, window: 2, line: 3},
		{row: 8, ok: false},
		{row: 9, ok: false},
	}
	for _, tt := range tests {
		loc, ok := s.WindowAt(tt.row, 3)
		if ok != tt.ok {
			t.Errorf("WindowAt(%d) ok = %v, want %v", tt.row, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if loc.Window != tt.window || loc.Line != tt.line || loc.Status != tt.status || loc.RightCol != 19 {
			t.Errorf("WindowAt(%d) = %+v", tt.row, loc)
		}
	}
	if got := s.CmdlineRow(); got != 8 {
		t.Errorf("CmdlineRow = %d, want 8", got)
	}
}

func TestScreen_DrawBase(t *testing.T) {
	t.Parallel()

	s := NewScreen(5, 12, 1)
	c := NewContainer()
	w := NewTextWindow(1, "buf", 2, []string{"alpha", "beta"})
	c.Add(w)
	c.Add(NewTextWindow(2, "other", 1, []string{"x"}))
	s.SetCmdline(":wq")
	s.Layout(c)
	s.DrawBase()

	want := strings.Join([]string{
		"alpha",
		"beta",
		"buf      1,1",
		"x",
		":wq",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if hl := s.Cell(2, 0).HL; hl != theme.StatusLine {
		t.Errorf("focused status row highlight = %q", hl)
	}
	if hl := s.Cell(4, 0).HL; hl != theme.MsgArea {
		t.Errorf("command area highlight = %q", hl)
	}

	cur := s.Cursor()
	if cur.Window != 1 || cur.Line != 1 || cur.ScreenRow != 0 || cur.ScreenCol != 0 {
		t.Errorf("Cursor() = %+v", cur)
	}
}

func TestCompose_BaseNeverCoversPopups(t *testing.T) {
	t.Parallel()

	s := NewScreen(4, 10, 0)
	m := popup.NewManager(popup.Config{Size: s.Size(), Host: s, Cursor: s})
	s.SetMask(m)
	c := NewContainer()
	c.Add(&mockComponent{lines: []string{"0123456789", "0123456789"}})

	if _, err := m.Create([]string{"hi"}, popup.Options{Line: 1, Col: 3, Border: []int{}}, popup.KindNormal); err != nil {
		t.Fatal(err)
	}
	rep := Compose(s, c, m, popup.RedrawNotValid)
	if !rep.RedrawAll {
		t.Error("first compose should redraw everything")
	}

	want := strings.Join([]string{
		"01╔══╗6789",
		"01║hi║6789",
		"  ╚══╝",
		"",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestScreen_Lines(t *testing.T) {
	t.Parallel()

	s := NewScreen(2, 4, 0)
	s.Put(0, 0, "ab", "Pmenu")
	s.Put(0, 2, "日", "Title")
	lines := s.Lines(theme.Builtin("monochrome"))
	if len(lines) != 2 {
		t.Fatalf("Lines returned %d rows", len(lines))
	}
	// no color profile under go test, so the runs render as plain text
	if lines[0] != "ab日" || lines[1] != "    " {
		t.Errorf("Lines = %q", lines)
	}
}
