// ABOUTME: Terminal interface for the live preview: raw input, output, and size
// ABOUTME: ProcessTerminal drives the real TTY; VirtualTerminal backs tests

package terminal

// Escape sequences for the full-screen preview session.
const (
	enterScreen = "\x1b[?1049h\x1b[?25l\x1b[?1002h\x1b[?1006h"
	leaveScreen = "\x1b[?1006l\x1b[?1002l\x1b[?25h\x1b[?1049l"
)

// Terminal abstracts the TTY the preview draws on. Sizes are in cells.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (cols, rows int, err error)
	Write(p []byte) (n int, err error)
	// Read returns the next chunk of raw input.
	Read(p []byte) (n int, err error)
	OnResize(fn func(cols, rows int))
}

// Open switches t to raw mode on the alternate screen with button-event
// mouse reporting in SGR encoding.
func Open(t Terminal) error {
	if err := t.EnterRawMode(); err != nil {
		return err
	}
	if _, err := t.Write([]byte(enterScreen)); err != nil {
		_ = t.ExitRawMode()
		return err
	}
	return nil
}

// Close undoes Open.
func Close(t Terminal) error {
	_, werr := t.Write([]byte(leaveScreen))
	if err := t.ExitRawMode(); err != nil {
		return err
	}
	return werr
}
