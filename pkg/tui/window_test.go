// ABOUTME: Tests for TextWindow cursor movement, scrolling, word ranges and the status row
// ABOUTME: Columns are byte offsets into the line; display columns come from CursorCell

package tui

import "testing"

func TestTextWindow_WordUnderCursor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		col       int
		big       bool
		wantStart int
		wantLen   int
		wantOK    bool
	}{
		{name: "inside word", col: 2, wantStart: 0, wantLen: 7, wantOK: true},
		{name: "word stops at dot", col: 9, wantStart: 8, wantLen: 3, wantOK: true},
		{name: "big word spans dot", col: 9, big: true, wantStart: 8, wantLen: 7, wantOK: true},
		{name: "on a blank", col: 7, wantOK: false},
		{name: "on punctuation", col: 11, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := NewTextWindow(1, "w", 3, []string{"foo_bar baz.qux"})
			w.SetCursor(1, tt.col)
			start, n, ok := w.WordUnderCursor(tt.big)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (start != tt.wantStart || n != tt.wantLen) {
				t.Errorf("WordUnderCursor = %d,%d, want %d,%d", start, n, tt.wantStart, tt.wantLen)
			}
		})
	}
}

func TestTextWindow_MoveCursorByRune(t *testing.T) {
	t.Parallel()

	w := NewTextWindow(1, "w", 3, []string{"日本語", "ab"})
	w.MoveCursor(0, 2)
	if _, col := w.Cursor(); col != 6 {
		t.Errorf("byte col = %d, want 6", col)
	}
	if _, cell := w.CursorCell(); cell != 4 {
		t.Errorf("display col = %d, want 4", cell)
	}

	w.MoveCursor(0, -1)
	if _, col := w.Cursor(); col != 3 {
		t.Errorf("byte col = %d, want 3", col)
	}

	// moving to a shorter line clamps the column
	w.MoveCursor(1, 0)
	line, col := w.Cursor()
	if line != 2 || col != 2 {
		t.Errorf("cursor = %d,%d, want 2,2", line, col)
	}
}

func TestTextWindow_Scroll(t *testing.T) {
	t.Parallel()

	w := NewTextWindow(1, "w", 2, []string{"1", "2", "3", "4", "5"})
	w.SetCursor(5, 0)
	if top := w.TopLine(); top != 4 {
		t.Errorf("TopLine = %d, want 4", top)
	}
	if row, _ := w.CursorCell(); row != 1 {
		t.Errorf("cursor row = %d, want 1", row)
	}

	w.SetCursor(1, 0)
	if top := w.TopLine(); top != 1 {
		t.Errorf("TopLine = %d, want 1", top)
	}

	w.SetCursor(99, 99)
	line, col := w.Cursor()
	if line != 5 || col != 1 {
		t.Errorf("clamped cursor = %d,%d, want 5,1", line, col)
	}

	w.SetLines([]string{"only"})
	if line, _ := w.Cursor(); line != 1 {
		t.Errorf("cursor line after SetLines = %d, want 1", line)
	}
	if top := w.TopLine(); top != 1 {
		t.Errorf("TopLine after SetLines = %d, want 1", top)
	}
}

func TestTextWindow_Render(t *testing.T) {
	t.Parallel()

	w := NewTextWindow(1, "main", 2, []string{"hello world"})
	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	w.Render(buf, 8)

	want := []string{"hello wo", "", "main 1,1"}
	if len(buf.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(buf.Lines), len(want), buf.Lines)
	}
	for i := range want {
		if buf.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, buf.Lines[i], want[i])
		}
	}
}
