// ABOUTME: Tests for the TUI engine: composed frames, differential output, cursor handling
// ABOUTME: Uses an in-memory writer to capture the terminal stream

package tui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

type mockComponent struct {
	lines []string
	dirty bool
}

func (m *mockComponent) Render(out *RenderBuffer, width int) {
	out.WriteLines(m.lines)
}

func (m *mockComponent) Invalidate() {
	m.dirty = true
}

func newTestTUI(out *bytes.Buffer, cols, rows int) *TUI {
	return New(out, cols, rows, Options{CmdlineRows: 1, Theme: theme.Builtin("monochrome")})
}

func TestRenderBuffer_Pool(t *testing.T) {
	t.Parallel()

	buf := AcquireBuffer()
	buf.WriteLine("line1")
	buf.WriteLines([]string{"line2", "line3"})
	if buf.Len() != 3 {
		t.Errorf("Len() = %d, want 3", buf.Len())
	}
	ReleaseBuffer(buf)

	buf2 := AcquireBuffer()
	if buf2.Len() != 0 {
		t.Errorf("re-acquired buffer Len() = %d, want 0", buf2.Len())
	}
	ReleaseBuffer(buf2)
}

func TestTUI_RenderOnce(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := newTestTUI(&out, 40, 6)
	ui.Container().Add(&mockComponent{lines: []string{"test line"}})
	ui.RenderOnce()

	got := out.String()
	if !strings.HasPrefix(got, "\x1b[?2026h\x1b[2J\x1b[H") {
		t.Errorf("first frame should clear inside a synchronized update, got %q", got)
	}
	if !strings.Contains(got, "test line") {
		t.Errorf("expected output to contain 'test line', got %q", got)
	}
	if !strings.Contains(got, "\x1b[?25l") {
		t.Error("cursor should be hidden without a focused window")
	}
}

func TestTUI_DifferentialRender(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := newTestTUI(&out, 40, 6)
	comp := &mockComponent{lines: []string{"first", "second"}}
	ui.Container().Add(comp)
	ui.RenderOnce()

	out.Reset()
	ui.RenderOnce()
	if strings.Contains(out.String(), "first") {
		t.Errorf("unchanged frame rewrote content: %q", out.String())
	}

	out.Reset()
	comp.lines[1] = "changed"
	ui.RenderOnce()
	got := out.String()
	if !strings.Contains(got, "changed") || strings.Contains(got, "first") {
		t.Errorf("only the changed row should be written, got %q", got)
	}
}

func TestTUI_PopupsAreComposited(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := newTestTUI(&out, 20, 6)
	ui.Container().Add(&mockComponent{lines: []string{"aaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbb"}})

	var id popup.ID
	ui.Popups(func(m *popup.Manager) {
		var err error
		id, err = m.Create([]string{"POP"}, popup.Options{Line: 2, Col: 5}, popup.KindNormal)
		if err != nil {
			t.Errorf("Create: %v", err)
		}
	})
	ui.RenderOnce()

	var row string
	ui.Screen(func(s *Screen) { row = s.Row(1) })
	if row != "bbbbPOPbbbbbbbbbbbbb" {
		t.Errorf("row 1 = %q", row)
	}

	ui.Popups(func(m *popup.Manager) { _ = m.Close(id, nil) })
	ui.RenderOnce()
	ui.Screen(func(s *Screen) { row = s.Row(1) })
	if row != "bbbbbbbbbbbbbbbbbbbb" {
		t.Errorf("row 1 after close = %q", row)
	}
	if rep := ui.LastReport(); !rep.Rebuilt {
		t.Error("closing a popup should rebuild the mask")
	}
}

func TestTUI_CursorFollowsFocusedWindow(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := newTestTUI(&out, 20, 6)
	w := NewTextWindow(1, "main", 3, []string{"hello", "world"})
	w.SetCursor(2, 3)
	ui.Container().Add(w)
	ui.RenderOnce()

	got := out.String()
	if !strings.HasSuffix(got, "\x1b[3C\x1b[?25h\x1b[?2026l") {
		t.Errorf("cursor not placed at column 3 and shown: %q", got)
	}

	// a popup over the cursor hides it
	out.Reset()
	ui.Popups(func(m *popup.Manager) {
		_, _ = m.Create([]string{"cover"}, popup.Options{Line: 2, Col: 1}, popup.KindNormal)
	})
	ui.RenderOnce()
	if !strings.Contains(out.String(), "\x1b[?25l") {
		t.Errorf("cursor under a popup should be hidden: %q", out.String())
	}
}

func TestTUI_SetSizeRepaints(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := newTestTUI(&out, 20, 6)
	ui.Container().Add(&mockComponent{lines: []string{"content"}})
	ui.RenderOnce()

	out.Reset()
	ui.SetSize(30, 8)
	ui.RenderOnce()
	got := out.String()
	if !strings.Contains(got, "\x1b[2J") || !strings.Contains(got, "content") {
		t.Errorf("resize should clear and repaint, got %q", got)
	}
	var size popup.Size
	ui.Popups(func(m *popup.Manager) { size = m.Size() })
	if size != (popup.Size{Rows: 8, Cols: 30}) {
		t.Errorf("popup grid size = %+v", size)
	}
}

func TestTUI_StartStop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := newTestTUI(&out, 20, 6)
	ui.Start()
	ui.Start()
	ui.Stop()
	ui.Stop()
}

type slowWriter struct {
	mu     sync.Mutex
	writes int
	closed bool
	late   int
}

func (w *slowWriter) Write(p []byte) (int, error) {
	time.Sleep(5 * time.Millisecond)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes++
	if w.closed {
		w.late++
	}
	return len(p), nil
}

func (w *slowWriter) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

func TestTUI_StopWaitsForRender(t *testing.T) {
	t.Parallel()

	w := &slowWriter{}
	ui := New(w, 20, 6, Options{CmdlineRows: 1, Theme: theme.Builtin("monochrome")})
	ui.Container().Add(&mockComponent{lines: []string{"hello"}})
	ui.Start()
	ui.RequestRender()
	time.Sleep(time.Millisecond)
	ui.Stop()
	w.close()
	ui.Stop()

	time.Sleep(20 * time.Millisecond)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.late != 0 {
		t.Errorf("%d writes landed after Stop returned", w.late)
	}
}

func TestRelativeRender_ShrinkClearsRows(t *testing.T) {
	t.Parallel()

	st := renderState{firstRender: true}
	_ = relativeRender(&st, nil, []string{"a", "b", "c"}, 10)
	got := relativeRender(&st, []string{"a", "b", "c"}, []string{"a"}, 10)
	if strings.Count(got, "\x1b[2K") != 2 {
		t.Errorf("expected two erased rows, got %q", got)
	}
	if st.cursorRow != 0 || st.maxRendered != 1 {
		t.Errorf("state = %+v", st)
	}
}
