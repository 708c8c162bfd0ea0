// ABOUTME: Tests for Container ordering and window focus
// ABOUTME: Plain components never take the focus

package tui

import "testing"

func TestContainer_Focus(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	header := &mockComponent{lines: []string{"header"}}
	a := NewTextWindow(1, "a", 1, nil)
	b := NewTextWindow(2, "b", 1, nil)

	c.Add(header)
	if got := c.Focused(); got != 0 {
		t.Errorf("Focused = %d with no windows", got)
	}
	c.Add(a)
	c.Add(b)
	if got := c.Focused(); got != 1 {
		t.Errorf("first window should get the focus, got %d", got)
	}

	if !c.Focus(2) {
		t.Fatal("Focus(2) failed")
	}
	if c.Focus(9) {
		t.Error("Focus on an unknown window succeeded")
	}
	if got := c.Focused(); got != 2 {
		t.Errorf("Focused = %d, want 2", got)
	}

	if !c.Remove(b) {
		t.Fatal("Remove(b) failed")
	}
	if got := c.Focused(); got != 1 {
		t.Errorf("focus after removing the focused window = %d, want 1", got)
	}
	if c.Remove(b) {
		t.Error("second Remove reported success")
	}

	if w, ok := c.Window(1); !ok || w != a {
		t.Error("Window(1) did not return a")
	}
	if n := len(c.Children()); n != 2 {
		t.Errorf("Children = %d, want 2", n)
	}

	c.Clear()
	if len(c.Children()) != 0 || c.Focused() != 0 {
		t.Error("Clear left children or focus")
	}
}

func TestContainer_RenderInOrder(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	c.Add(&mockComponent{lines: []string{"a"}})
	c.Add(&mockComponent{lines: []string{"b", "c"}})

	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	c.Render(buf, 10)
	if got := buf.Lines; len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("Render = %q", got)
	}
}
