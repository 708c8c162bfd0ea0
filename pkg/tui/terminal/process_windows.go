// ABOUTME: Windows stub for ProcessTerminal resize handling
// ABOUTME: There is no SIGWINCH; the preview keeps its initial size

//go:build windows

package terminal

func (t *ProcessTerminal) startResizeListener() func() {
	return func() {}
}
