// ABOUTME: Stage puts a scene on a screen: base windows, popups, and scripted input
// ABOUTME: Hosts drive it with Dispatch and cursor moves; it never touches a terminal

package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mauromedda/popgrid/internal/eventbus"
	"github.com/mauromedda/popgrid/internal/log"
	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui"
	"github.com/mauromedda/popgrid/pkg/tui/component"
	"github.com/mauromedda/popgrid/pkg/tui/key"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

// ErrUnknownPopup reports an event naming a popup the scene never opened.
var ErrUnknownPopup = errors.New("unknown popup name")

const (
	defaultRows         = 24
	defaultCols         = 80
	defaultWindowHeight = 5
	defaultMarkdownWrap = 60
)

// Config sets what the scene file does not.
type Config struct {
	// Rows and Cols override the scene grid when above zero.
	Rows, Cols  int
	CmdlineRows int
	// ZIndex is the default z-index of normal and cursor popups.
	ZIndex int
	// Popup is the base manager configuration; Size, Host, Cursor,
	// IsWindow and OnNotice are set by New.
	Popup popup.Config
	// Notices receives popup lifecycle notices. New creates one when nil.
	Notices *eventbus.Bus[popup.Notice]
	// MarkdownWrap is the wrap width of markdown popups without maxwidth.
	MarkdownWrap int
}

// Result is the value a popup was closed with.
type Result struct {
	Popup string
	ID    popup.ID
	Value any
}

func (r Result) String() string {
	name := r.Popup
	if name == "" {
		name = fmt.Sprintf("#%d", r.ID)
	}
	return fmt.Sprintf("%s=%v", name, r.Value)
}

// Stage is not safe for concurrent use.
type Stage struct {
	Screen  *tui.Screen
	Base    *tui.Container
	Popups  *popup.Manager
	Notices *eventbus.Bus[popup.Notice]

	names   map[string]popup.ID
	byID    map[popup.ID]string
	kinds   map[popup.ID]popup.Kind
	results []Result
	md      *Markdown
	zindex  int
	mdWrap  int
	cmdline string
	narrow  *narrowing
}

// New builds a headless stage for sc with its own screen and manager.
func New(sc *Scene, cfg Config) (*Stage, error) {
	rows, cols := defaultRows, defaultCols
	if sc.Grid != nil {
		rows, cols = sc.Grid.Rows, sc.Grid.Cols
	}
	if cfg.Rows > 0 {
		rows = cfg.Rows
	}
	if cfg.Cols > 0 {
		cols = cfg.Cols
	}

	screen := tui.NewScreen(rows, cols, cfg.CmdlineRows)
	base := tui.NewContainer()
	notices := cfg.Notices
	if notices == nil {
		notices = eventbus.New[popup.Notice]()
	}
	pc := cfg.Popup
	pc.Size = screen.Size()
	pc.Host = screen
	pc.Cursor = screen
	pc.IsWindow = func(id int) bool {
		_, ok := base.Window(id)
		return ok
	}
	pc.OnNotice = notices.Publish
	m := popup.NewManager(pc)
	screen.SetMask(m)

	cfg.Notices = notices
	return Attach(sc, screen, base, m, cfg)
}

// Attach stages sc on an existing screen, base container and manager, for
// hosts that own them. The manager must use screen as Host and Cursor.
// Popups with invalid options are still opened; the problem is logged.
func Attach(sc *Scene, screen *tui.Screen, base *tui.Container, m *popup.Manager, cfg Config) (*Stage, error) {
	st := &Stage{
		Screen:  screen,
		Base:    base,
		Popups:  m,
		Notices: cfg.Notices,
		names:   make(map[string]popup.ID),
		byID:    make(map[popup.ID]string),
		kinds:   make(map[popup.ID]popup.Kind),
		md:      NewMarkdown(),
		zindex:  cfg.ZIndex,
		mdWrap:  cfg.MarkdownWrap,
		cmdline: sc.Cmdline,
	}
	if st.Notices == nil {
		st.Notices = eventbus.New[popup.Notice]()
	}
	if st.mdWrap <= 0 {
		st.mdWrap = defaultMarkdownWrap
	}

	screen.SetCmdline(sc.Cmdline)
	if len(sc.Header) > 0 {
		base.Add(component.NewLines(sc.Header, 0))
	}
	if sc.HeaderGap > 0 {
		base.Add(component.NewSpacer(sc.HeaderGap))
	}
	focus := 0
	for _, ws := range sc.Windows {
		h := ws.Height
		if h <= 0 {
			h = defaultWindowHeight
		}
		w := tui.NewTextWindow(ws.ID, ws.Name, h, ws.Lines)
		if len(ws.Cursor) == 2 {
			w.SetCursor(ws.Cursor[0], ws.Cursor[1])
		}
		base.Add(w)
		if ws.Focus {
			focus = ws.ID
		}
	}
	if focus != 0 {
		base.Focus(focus)
	}
	screen.Layout(base)

	for i, ps := range sc.Popups {
		if _, err := st.Open(ps); err != nil {
			if !errors.Is(err, popup.ErrInvalidOption) {
				return nil, fmt.Errorf("popup %d: %w", i+1, err)
			}
			log.Warn("scene: popup %d: %v", i+1, err)
		}
	}
	return st, nil
}

// Open creates a popup from ps. When the error wraps
// popup.ErrInvalidOption the popup exists and the id is valid; any other
// error means nothing was opened.
func (st *Stage) Open(ps PopupSpec) (popup.ID, error) {
	kind, err := parseKind(ps.Kind)
	if err != nil {
		return 0, err
	}
	lines := ps.Text
	if ps.Markdown != "" {
		wrap := st.mdWrap
		if ps.Options.MaxWidth > 0 {
			wrap = ps.Options.MaxWidth
		}
		wrap = max(min(wrap, st.Screen.Size().Cols-4), 1)
		if lines, err = st.md.Render(ps.Markdown, wrap); err != nil {
			return 0, err
		}
	}

	opts := ps.options(kind, st.zindex)
	name := ps.Name
	opts.Callback = func(_ *popup.Manager, id popup.ID, result any) {
		st.results = append(st.results, Result{Popup: st.byID[id], ID: id, Value: result})
		log.Debug("scene: popup %s closed with %v", name, result)
	}

	if ps.Surface != 0 && !ps.Global {
		prev := st.Popups.Surface()
		st.Popups.SetSurface(popup.SurfaceID(ps.Surface))
		defer st.Popups.SetSurface(prev)
	}

	// cursor popups read the cursor from the current layout
	st.Screen.Layout(st.Base)
	id, err := st.Popups.Create(lines, opts, kind)
	if err != nil && !errors.Is(err, popup.ErrInvalidOption) {
		return 0, err
	}
	if name != "" {
		st.names[name] = id
	}
	st.byID[id] = name
	st.kinds[id] = kind
	return id, err
}

// ID returns the id of a named popup.
func (st *Stage) ID(name string) (popup.ID, bool) {
	id, ok := st.names[name]
	return id, ok
}

func (st *Stage) lookup(name string) (popup.ID, error) {
	id, ok := st.names[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPopup, name)
	}
	return id, nil
}

// Results returns the close results in the order popups closed.
func (st *Stage) Results() []Result {
	return slices.Clone(st.results)
}

// Dispatch offers ev to the popup filters, then mouse events to the drag
// handler, and reports whether a popup used it.
func (st *Stage) Dispatch(ev popup.Event) bool {
	if st.Popups.Filter(ev) {
		return true
	}
	return ev.IsMouse() && st.Popups.Pointer(ev)
}

// Focused returns the focused text window.
func (st *Stage) Focused() (*tui.TextWindow, bool) {
	w, ok := st.Base.Window(st.Base.Focused())
	if !ok {
		return nil, false
	}
	tw, ok := w.(*tui.TextWindow)
	return tw, ok
}

// MoveCursor moves the cursor of the focused window and closes popups
// whose auto-close region it left.
func (st *Stage) MoveCursor(dLine, dCol int) {
	if w, ok := st.Focused(); ok {
		w.MoveCursor(dLine, dCol)
		st.checkCursor()
	}
}

// SetCursor places the cursor of the focused window.
func (st *Stage) SetCursor(line, col int) {
	if w, ok := st.Focused(); ok {
		w.SetCursor(line, col)
		st.checkCursor()
	}
}

// Focus moves the focus to a window.
func (st *Stage) Focus(id int) error {
	if !st.Base.Focus(id) {
		return fmt.Errorf("%w: no window %d", ErrInvalid, id)
	}
	st.checkCursor()
	return nil
}

// FocusNext cycles the focus through the windows.
func (st *Stage) FocusNext() {
	var ids []int
	for _, c := range st.Base.Children() {
		if w, ok := c.(tui.Window); ok {
			ids = append(ids, w.ID())
		}
	}
	if len(ids) < 2 {
		return
	}
	i := slices.Index(ids, st.Base.Focused())
	_ = st.Focus(ids[(i+1)%len(ids)])
}

func (st *Stage) checkCursor() {
	st.Screen.Layout(st.Base)
	st.Popups.CheckCursor(st.Screen.Cursor())
}

// Resize changes the grid size.
func (st *Stage) Resize(rows, cols int) {
	st.Screen.Resize(rows, cols)
	st.Popups.SetSize(st.Screen.Size())
}

// Compose draws a frame and returns the popup redraw report.
func (st *Stage) Compose(kind popup.RedrawKind) popup.Report {
	return tui.Compose(st.Screen, st.Base, st.Popups, kind)
}

// String composes a full frame and returns it as plain text.
func (st *Stage) String() string {
	st.Compose(popup.RedrawNotValid)
	return st.Screen.String()
}

// Lines composes a full frame and returns it styled with th.
func (st *Stage) Lines(th *theme.Theme) []string {
	st.Compose(popup.RedrawNotValid)
	return st.Screen.Lines(th)
}

// HandleKey applies a key the popups did not consume: arrows move the
// cursor of the focused window.
func (st *Stage) HandleKey(k key.Key) bool {
	switch k.Type {
	case key.KeyUp:
		st.MoveCursor(-1, 0)
	case key.KeyDown:
		st.MoveCursor(1, 0)
	case key.KeyLeft:
		st.MoveCursor(0, -1)
	case key.KeyRight:
		st.MoveCursor(0, 1)
	default:
		return false
	}
	return true
}

// Replay applies events in order and stops at the first failure.
func (st *Stage) Replay(events []EventSpec) error {
	for i, e := range events {
		if err := st.Apply(e); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return nil
}

var mouseActions = map[string]popup.MouseAction{
	"press":   popup.MousePress,
	"drag":    popup.MouseDrag,
	"release": popup.MouseRelease,
}

// Apply performs one scripted event.
func (st *Stage) Apply(e EventSpec) error {
	switch {
	case e.Keys != "":
		keys, err := key.Sequence(e.Keys)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if st.NarrowKey(k) {
				continue
			}
			if !st.Dispatch(popup.KeyEvent(k)) {
				st.HandleKey(k)
			}
		}
	case e.Mouse != nil:
		action, ok := mouseActions[strings.ToLower(e.Mouse.Action)]
		if !ok {
			return fmt.Errorf("%w: mouse action %q", ErrInvalid, e.Mouse.Action)
		}
		// the mask must match what is on screen before hit testing
		st.Compose(popup.RedrawValid)
		st.Dispatch(popup.MouseEvent(action, e.Mouse.Row, e.Mouse.Col))
	case e.Cursor != nil:
		st.SetCursor(e.Cursor[0], e.Cursor[1])
	case e.Focus != nil:
		return st.Focus(*e.Focus)
	case e.Open != nil:
		if _, err := st.Open(*e.Open); err != nil && !errors.Is(err, popup.ErrInvalidOption) {
			return err
		}
	case e.Close != "":
		id, err := st.lookup(e.Close)
		if err != nil {
			return err
		}
		if err := st.Popups.Close(id, nil); err != nil && !errors.Is(err, popup.ErrNotFound) {
			return err
		}
	case e.Hide != "":
		return st.withPopup(e.Hide, st.Popups.Hide)
	case e.Show != "":
		return st.withPopup(e.Show, st.Popups.Show)
	case e.Move != nil:
		mv := e.Move
		return st.withPopup(mv.Popup, func(id popup.ID) error {
			return st.Popups.Move(id, popup.Options{Line: mv.Line, Col: mv.Col, Pos: mv.Pos})
		})
	case e.SetText != nil:
		return st.withPopup(e.SetText.Popup, func(id popup.ID) error {
			return st.Popups.SetText(id, e.SetText.Lines)
		})
	case e.Resize != nil:
		st.Resize(e.Resize.Rows, e.Resize.Cols)
	case e.Surface != nil:
		st.Popups.SetSurface(popup.SurfaceID(*e.Surface))
	case e.Clear:
		st.Popups.Clear()
	case e.Narrow != nil:
		if !st.StartNarrow() {
			return fmt.Errorf("%w: no menu to narrow", ErrInvalid)
		}
		if *e.Narrow != "" {
			st.refine(*e.Narrow)
		}
	default:
		return fmt.Errorf("%w: empty event", ErrInvalid)
	}
	return nil
}

func (st *Stage) withPopup(name string, fn func(popup.ID) error) error {
	id, err := st.lookup(name)
	if err != nil {
		return err
	}
	return fn(id)
}
