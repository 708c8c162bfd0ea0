// ABOUTME: ProcessTerminal implements Terminal over os.Stdin/os.Stdout with x/term
// ABOUTME: Raw mode state is saved on entry and restored on exit

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is the controlling terminal of the process.
type ProcessTerminal struct {
	mu       sync.Mutex
	oldState *term.State
	resizeFn func(cols, rows int)
	stop     func()
}

// NewProcessTerminal returns a ProcessTerminal ready for use.
func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{}
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// EnterRawMode switches stdin to raw mode.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the saved terminal state and stops resize
// notifications.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(os.Stdin.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return cols, rows, nil
}

// Write sends bytes to os.Stdout.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := os.Stdout.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}
	return n, nil
}

// Read reads raw input from os.Stdin.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

// OnResize registers the resize callback. Only the first call starts the
// platform listener; later calls replace the callback.
func (t *ProcessTerminal) OnResize(fn func(cols, rows int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeFn = fn
	if t.stop == nil {
		t.stop = t.startResizeListener()
	}
}

func (t *ProcessTerminal) notifyResize() {
	t.mu.Lock()
	fn := t.resizeFn
	t.mu.Unlock()
	if fn == nil {
		return
	}
	if cols, rows, err := t.Size(); err == nil {
		fn(cols, rows)
	}
}
