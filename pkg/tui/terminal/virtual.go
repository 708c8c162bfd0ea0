// ABOUTME: VirtualTerminal implements Terminal in memory for tests of the preview loop
// ABOUTME: Output is captured; input is fed as discrete reads through a channel

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// VirtualTerminal is a fake Terminal. Each Feed call becomes one Read.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	cols       int
	rows       int
	rawMode    bool
	resizeFn   func(cols, rows int)
	enterCount int
	exitCount  int

	input     chan string
	closeOnce sync.Once
}

// NewVirtualTerminal returns a VirtualTerminal of the given size.
func NewVirtualTerminal(cols, rows int) *VirtualTerminal {
	return &VirtualTerminal{
		cols:  cols,
		rows:  rows,
		input: make(chan string, 64),
	}
}

func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rawMode = true
	v.enterCount++
	return nil
}

func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rawMode = false
	v.exitCount++
	return nil
}

func (v *VirtualTerminal) Size() (cols, rows int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cols, v.rows, nil
}

func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// Read blocks until input is fed. It returns io.EOF after CloseInput.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	data, ok := <-v.input
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (v *VirtualTerminal) OnResize(fn func(cols, rows int)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resizeFn = fn
}

// Feed queues one chunk of input.
func (v *VirtualTerminal) Feed(data string) {
	v.input <- data
}

// CloseInput makes pending and later reads return io.EOF.
func (v *VirtualTerminal) CloseInput() {
	v.closeOnce.Do(func() { close(v.input) })
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.buf.Reset()
}

// IsRawMode reports whether raw mode is active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rawMode
}

// Transitions returns how often raw mode was entered and exited.
func (v *VirtualTerminal) Transitions() (enter, exit int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enterCount, v.exitCount
}

// SetSize changes the size and runs the resize callback, if any.
func (v *VirtualTerminal) SetSize(cols, rows int) {
	v.mu.Lock()
	v.cols = cols
	v.rows = rows
	fn := v.resizeFn
	v.mu.Unlock()

	if fn != nil {
		fn(cols, rows)
	}
}
