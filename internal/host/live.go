// ABOUTME: Live runs a scene on a raw terminal through the tui renderer
// ABOUTME: Input, resize and file-change reloads are serialized through TUI.Frame

package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/popgrid/internal/config"
	"github.com/mauromedda/popgrid/internal/eventbus"
	"github.com/mauromedda/popgrid/internal/keybindings"
	"github.com/mauromedda/popgrid/internal/scene"
	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui"
	"github.com/mauromedda/popgrid/pkg/tui/terminal"
)

const helpPopup = "_help"

// Live owns the terminal session. Stage access happens inside TUI.Frame.
type Live struct {
	term terminal.Terminal
	tui  *tui.TUI
	keys *keybindings.Manager
	cfg  scene.Config
	load func() (*scene.Scene, error)

	mu      sync.Mutex
	stage   *scene.Stage
	results []scene.Result
}

// NewLive stages sc on a TUI sized to t.
func NewLive(t terminal.Terminal, sc *scene.Scene, opts Options) (*Live, error) {
	cols, rows, err := t.Size()
	if err != nil {
		return nil, err
	}
	if opts.Keys == nil {
		if opts.Keys, err = keybindings.New(nil); err != nil {
			return nil, err
		}
	}
	l := &Live{term: t, keys: opts.Keys, cfg: opts.Stage, load: opts.Load}
	if l.cfg.Notices == nil {
		l.cfg.Notices = eventbus.New[popup.Notice]()
	}

	pc := opts.Stage.Popup
	pc.IsWindow = func(id int) bool {
		_, ok := l.tui.Container().Window(id)
		return ok
	}
	pc.OnNotice = l.cfg.Notices.Publish
	l.tui = tui.New(t, cols, rows, tui.Options{
		CmdlineRows: opts.Stage.CmdlineRows,
		Popup:       pc,
		Theme:       opts.Theme,
	})
	if err := l.Load(sc); err != nil {
		return nil, err
	}
	return l, nil
}

// TUI returns the renderer.
func (l *Live) TUI() *tui.TUI { return l.tui }

// Load replaces the staged scene on the current screen.
func (l *Live) Load(sc *scene.Scene) error {
	var err error
	l.tui.Frame(func(s *tui.Screen, m *popup.Manager) {
		m.Clear()
		l.tui.Container().Clear()
		var st *scene.Stage
		if st, err = scene.Attach(sc, s, l.tui.Container(), m, l.cfg); err != nil {
			return
		}
		l.mu.Lock()
		if l.stage != nil {
			l.results = append(l.results, l.stage.Results()...)
		}
		l.stage = st
		l.mu.Unlock()
	})
	l.tui.Redraw(popup.RedrawClear)
	return err
}

// Results returns the popup results of every scene loaded so far.
func (l *Live) Results() []scene.Result {
	var out []scene.Result
	l.tui.Frame(func(*tui.Screen, *popup.Manager) {
		l.mu.Lock()
		defer l.mu.Unlock()
		out = append(append(out, l.results...), l.stage.Results()...)
	})
	return out
}

// HandleInput applies one raw read and reports whether the user quit.
func (l *Live) HandleInput(data string) (quit bool) {
	ev, ok := tui.DecodeInput(data)
	if !ok {
		return false
	}
	var action keybindings.Action
	var pending bool
	l.tui.Frame(func(s *tui.Screen, _ *popup.Manager) {
		l.mu.Lock()
		st := l.stage
		l.mu.Unlock()
		if ev.IsMouse() {
			st.Compose(popup.RedrawValid)
			st.Dispatch(ev)
			return
		}
		action, pending = Route(st, l.keys, ev.Key)
		if pending && action == keybindings.ActionHelp {
			l.toggleHelp(st)
		}
	})
	if !pending {
		return false
	}
	switch action {
	case keybindings.ActionQuit:
		return true
	case keybindings.ActionRedraw:
		l.tui.Redraw(popup.RedrawClear)
	case keybindings.ActionReload:
		l.reload()
	}
	return false
}

// toggleHelp opens or closes a dialog listing the keymap.
func (l *Live) toggleHelp(st *scene.Stage) {
	if id, ok := st.ID(helpPopup); ok && st.Popups.CloseNoCallback(id) {
		return
	}
	lines := strings.Split(strings.TrimRight(l.keys.FormatAll(), "\n"), "\n")
	_, _ = st.Open(scene.PopupSpec{Name: helpPopup, Kind: "dialog", Text: lines})
}

func (l *Live) reload() {
	if l.load == nil {
		return
	}
	sc, err := l.load()
	if err == nil {
		err = l.Load(sc)
	}
	if err != nil {
		logger.Warn("reload: %v", err)
		l.tui.Screen(func(s *tui.Screen) { s.SetCmdline(fmt.Sprintf("reload: %v", err)) })
		l.tui.Redraw(popup.RedrawValid)
	}
}

// Run takes over the terminal until the user quits, input ends or ctx is
// done. Changes to the watched files reload the scene.
func (l *Live) Run(ctx context.Context, watch []string) error {
	if err := terminal.Open(l.term); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() { _ = terminal.Close(l.term) }()

	l.term.OnResize(l.tui.SetSize)
	l.tui.Start()
	defer l.tui.Stop()
	l.tui.Redraw(popup.RedrawClear)

	input := make(chan string)
	stop := make(chan struct{})
	defer close(stop)
	go l.readInput(input, stop)

	reloads := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if len(watch) > 0 {
		w := config.NewWatcher(watch, func(path string) {
			logger.Info("%s changed", path)
			select {
			case reloads <- struct{}{}:
			default:
			}
		})
		g.Go(func() error { return w.Run(ctx) })
	}
	g.Go(func() error {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-input:
				if !ok || l.HandleInput(data) {
					return nil
				}
			case <-reloads:
				l.reload()
			}
		}
	})
	return g.Wait()
}

// readInput forwards reads until the terminal fails, hits EOF or stop is
// closed. It is not joined: a blocked read on stdin cannot be interrupted.
func (l *Live) readInput(out chan<- string, stop <-chan struct{}) {
	defer terminal.RecoverGoroutine(l.term)
	defer close(out)
	buf := make([]byte, 256)
	for {
		n, err := l.term.Read(buf)
		if n > 0 {
			select {
			case out <- string(buf[:n]):
			case <-stop:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn("read: %v", err)
			}
			return
		}
	}
}
