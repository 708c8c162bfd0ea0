// ABOUTME: Base grid content: Components render lines, Windows also map rows to buffer lines
// ABOUTME: RenderBuffers are pooled and recycled after each frame

package tui

import "sync"

// Component is anything drawn under the popups. Lines written to out must
// not exceed width cells.
type Component interface {
	Render(out *RenderBuffer, width int)
	// Invalidate drops cached render state.
	Invalidate()
}

// Window is a Component showing buffer lines. It renders Height() text
// rows followed by one status row, and the Screen maps its cells back to
// buffer lines for popup redraw regions.
type Window interface {
	Component
	ID() int
	Height() int
	// TopLine is the 1-based buffer line shown on the first text row.
	TopLine() int
}

var bufferPool = sync.Pool{
	New: func() any {
		return &RenderBuffer{Lines: make([]string, 0, 64)}
	},
}

// AcquireBuffer gets an empty RenderBuffer from the pool.
func AcquireBuffer() *RenderBuffer {
	buf := bufferPool.Get().(*RenderBuffer)
	buf.Reset()
	return buf
}

// ReleaseBuffer returns buf to the pool.
func ReleaseBuffer(buf *RenderBuffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// RenderBuffer collects the lines of one component.
type RenderBuffer struct {
	Lines []string
}

func (b *RenderBuffer) WriteLine(line string) {
	b.Lines = append(b.Lines, line)
}

func (b *RenderBuffer) WriteLines(lines []string) {
	b.Lines = append(b.Lines, lines...)
}

// Reset empties the buffer, keeping its capacity.
func (b *RenderBuffer) Reset() {
	b.Lines = b.Lines[:0]
}

func (b *RenderBuffer) Len() int {
	return len(b.Lines)
}
