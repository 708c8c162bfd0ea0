// ABOUTME: TUI drives a full-screen popup grid: compose a frame, diff it, write it
// ABOUTME: Renders coalesce through a buffered channel; output uses CSI 2026 synchronized updates

package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

// Writer is the minimal interface for terminal output.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// Options configures a TUI.
type Options struct {
	// CmdlineRows reserves rows at the bottom for the command area.
	CmdlineRows int
	// Popup is passed to the popup Manager; Size, Host and Cursor are
	// filled in by New.
	Popup popup.Config
	// Theme overrides theme.Current when set.
	Theme *theme.Theme
}

// TUI owns the screen, the base container and the popup manager.
type TUI struct {
	container *Container
	writer    Writer
	theme     *theme.Theme

	// mu guards everything below, including all use of screen and popups.
	mu            sync.Mutex
	screen        *Screen
	popups        *popup.Manager
	previousLines []string
	pending       popup.RedrawKind
	lastReport    popup.Report
	rstate        renderState

	renderCh chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	running  bool
}

// New creates a TUI writing to w for a grid of cols x rows.
func New(w Writer, cols, rows int, opts Options) *TUI {
	s := NewScreen(rows, cols, opts.CmdlineRows)
	cfg := opts.Popup
	cfg.Size = s.Size()
	cfg.Host = s
	cfg.Cursor = s
	m := popup.NewManager(cfg)
	s.SetMask(m)

	return &TUI{
		container: NewContainer(),
		writer:    w,
		theme:     opts.Theme,
		screen:    s,
		popups:    m,
		pending:   popup.RedrawClear,
		renderCh:  make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
		rstate:    renderState{firstRender: true},
	}
}

// Container returns the base container.
func (t *TUI) Container() *Container {
	return t.container
}

// Popups runs fn with exclusive access to the popup manager and schedules
// a render. Popup callbacks run inside fn and must not call back into t.
func (t *TUI) Popups(fn func(m *popup.Manager)) {
	t.mu.Lock()
	fn(t.popups)
	t.mu.Unlock()
	t.RequestRender()
}

// Screen runs fn with exclusive access to the screen, e.g. to set the
// command line.
func (t *TUI) Screen(fn func(s *Screen)) {
	t.mu.Lock()
	fn(t.screen)
	t.mu.Unlock()
}

// Frame runs fn with exclusive access to the screen and the popup
// manager together and schedules a render.
func (t *TUI) Frame(fn func(s *Screen, m *popup.Manager)) {
	t.mu.Lock()
	fn(t.screen, t.popups)
	t.mu.Unlock()
	t.RequestRender()
}

// LastReport returns the popup redraw report of the latest frame.
func (t *TUI) LastReport() popup.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastReport
}

// SetSize resizes the grid and forces a full redraw.
func (t *TUI) SetSize(cols, rows int) {
	t.mu.Lock()
	t.screen.Resize(rows, cols)
	t.popups.SetSize(t.screen.Size())
	t.previousLines = nil
	t.pending = popup.RedrawClear
	t.mu.Unlock()
	t.container.Invalidate()
	t.RequestRender()
}

// Redraw schedules a render of at least the given kind.
func (t *TUI) Redraw(kind popup.RedrawKind) {
	t.mu.Lock()
	t.pending = max(t.pending, kind)
	t.mu.Unlock()
	t.RequestRender()
}

// RequestRender signals that a render is needed. Calls coalesce into a
// single render via a buffered channel of size 1.
func (t *TUI) RequestRender() {
	select {
	case t.renderCh <- struct{}{}:
	default:
	}
}

// Start begins the render loop in a goroutine. Call Stop to terminate.
func (t *TUI) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.mu.Unlock()

	go t.renderLoop()
}

// Stop terminates the render loop and waits for an in-flight render to
// finish writing. Safe to call multiple times.
func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		running := t.running
		t.running = false
		t.mu.Unlock()
		if running {
			close(t.stopCh)
			<-t.done
		}
	})
}

// RenderOnce performs a single synchronous render.
func (t *TUI) RenderOnce() {
	t.render()
}

func (t *TUI) renderLoop() {
	defer close(t.done)
	for {
		select {
		case <-t.stopCh:
			return
		case <-t.renderCh:
			t.render()
		}
	}
}

func (t *TUI) render() {
	th := t.theme
	if th == nil {
		th = theme.Current()
	}

	t.mu.Lock()
	size := t.screen.Size()
	if size.Rows <= 0 || size.Cols <= 0 {
		t.mu.Unlock()
		return
	}
	kind := t.pending
	t.pending = popup.RedrawValid
	t.lastReport = Compose(t.screen, t.container, t.popups, kind)
	lines := t.screen.Lines(th)
	cur := t.screen.Cursor()
	showCursor := cur.Window != 0 && t.popups.ZAt(cur.ScreenRow, cur.ScreenCol) == 0
	prevLines := t.previousLines
	rstate := t.rstate
	if kind == popup.RedrawClear {
		prevLines = nil
		rstate = renderState{firstRender: true}
	}
	t.mu.Unlock()

	var out strings.Builder
	if rstate.firstRender {
		out.WriteString("\x1b[2J\x1b[H")
	}
	out.WriteString(relativeRender(&rstate, prevLines, lines, size.Cols))

	var numBuf [20]byte
	if showCursor {
		moveCursor(&out, numBuf[:], rstate.cursorRow, cur.ScreenRow)
		rstate.cursorRow = cur.ScreenRow
		out.WriteByte('\r')
		if cur.ScreenCol > 0 {
			out.WriteString("\x1b[")
			out.Write(strconv.AppendInt(numBuf[:0], int64(cur.ScreenCol), 10))
			out.WriteByte('C')
		}
		out.WriteString("\x1b[?25h")
	} else {
		out.WriteString("\x1b[?25l")
	}

	_, _ = t.writer.Write([]byte("\x1b[?2026h" + out.String() + "\x1b[?2026l"))

	saved := prevLines
	if cap(saved) >= len(lines) {
		saved = saved[:len(lines)]
	} else {
		saved = make([]string, len(lines))
	}
	copy(saved, lines)
	t.mu.Lock()
	t.previousLines = saved
	t.rstate = rstate
	t.mu.Unlock()
}

// renderState tracks the terminal cursor across frames for relative moves.
type renderState struct {
	maxRendered int
	cursorRow   int
	firstRender bool
	prevWidth   int
}

// relativeRender emits the changed rows of curr using relative cursor
// movement. A width change repaints everything.
func relativeRender(state *renderState, prev, curr []string, cols int) string {
	var b strings.Builder
	var numBuf [20]byte

	if state.prevWidth != 0 && state.prevWidth != cols {
		b.WriteString("\x1b[2J\x1b[H")
		state.firstRender = true
	}
	state.prevWidth = cols

	if state.firstRender {
		for i, line := range curr {
			if i > 0 {
				b.WriteString("\r\n")
			}
			b.WriteString(line)
		}
		state.cursorRow = max(len(curr)-1, 0)
		state.maxRendered = len(curr)
		state.firstRender = false
		return b.String()
	}

	common := min(len(prev), len(curr))
	for i := range common {
		if prev[i] == curr[i] {
			continue
		}
		moveCursor(&b, numBuf[:], state.cursorRow, i)
		state.cursorRow = i
		b.WriteString("\r\x1b[2K")
		b.WriteString(curr[i])
	}

	if len(curr) > len(prev) {
		moveCursor(&b, numBuf[:], state.cursorRow, max(len(prev)-1, 0))
		state.cursorRow = max(len(prev)-1, 0)
		for i := len(prev); i < len(curr); i++ {
			b.WriteString("\r\n")
			b.WriteString(curr[i])
			state.cursorRow = i
		}
	}

	if len(curr) < state.maxRendered {
		for i := len(curr); i < state.maxRendered; i++ {
			moveCursor(&b, numBuf[:], state.cursorRow, i)
			state.cursorRow = i
			b.WriteString("\r\x1b[2K")
		}
		if len(curr) > 0 {
			moveCursor(&b, numBuf[:], state.cursorRow, len(curr)-1)
			state.cursorRow = len(curr) - 1
		}
	}
	state.maxRendered = len(curr)
	return b.String()
}

// moveCursor emits a relative vertical move from row from to row to.
func moveCursor(b *strings.Builder, numBuf []byte, from, to int) {
	if from == to {
		return
	}
	delta := to - from
	final := byte('B')
	if delta < 0 {
		delta, final = -delta, 'A'
	}
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(numBuf[:0], int64(delta), 10))
	b.WriteByte(final)
}
