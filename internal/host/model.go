// ABOUTME: Bubble Tea model hosting a staged scene: keys, mouse and resize go to the popups
// ABOUTME: Keys are routed through Route; a help bar sits below the grid

package host

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/popgrid/internal/keybindings"
	"github.com/mauromedda/popgrid/internal/log"
	"github.com/mauromedda/popgrid/internal/scene"
	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

var logger = log.Component("host")

// Options configures a Model.
type Options struct {
	Stage scene.Config
	// Keys is the host keymap; New uses the defaults when nil.
	Keys  *keybindings.Manager
	Theme *theme.Theme
	// Load re-reads the scene for the reload action. Nil disables reload.
	Load func() (*scene.Scene, error)
}

// ReloadMsg replaces the staged scene.
type ReloadMsg struct {
	Scene *scene.Scene
}

// ErrMsg shows an error in the status row.
type ErrMsg struct {
	Err error
}

// shared survives the copies Bubble Tea makes of the model.
type shared struct {
	stage   *scene.Stage
	results []scene.Result
}

// Model is the root Bubble Tea model.
type Model struct {
	sh     *shared
	opts   Options
	help   help.Model
	width  int
	height int
	status string
}

// New stages sc. The grid takes the whole window except the bottom row.
func New(sc *scene.Scene, opts Options) (Model, error) {
	if opts.Keys == nil {
		keys, err := keybindings.New(nil)
		if err != nil {
			return Model{}, err
		}
		opts.Keys = keys
	}
	if opts.Theme == nil {
		opts.Theme = theme.Current()
	}
	st, err := scene.New(sc, opts.Stage)
	if err != nil {
		return Model{}, fmt.Errorf("staging scene: %w", err)
	}
	size := st.Screen.Size()
	return Model{
		sh:     &shared{stage: st},
		opts:   opts,
		help:   help.New(),
		width:  size.Cols,
		height: size.Rows + 1,
	}, nil
}

// Stage returns the current stage.
func (m Model) Stage() *scene.Stage { return m.sh.stage }

// Results returns the popup results of every stage this model ran.
func (m Model) Results() []scene.Result {
	return slices.Concat(m.sh.results, m.sh.stage.Results())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case ReloadMsg:
		m.reload(msg.Scene)
		return m, nil

	case ErrMsg:
		m.status = msg.Err.Error()
		logger.Warn("%v", msg.Err)
		return m, nil
	}
	return m, nil
}

// gridRows is the window height minus the help bar.
func (m Model) gridRows() int {
	return max(m.height-lipgloss.Height(m.help.View(m.opts.Keys)), 1)
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.sh.stage.Resize(m.gridRows(), m.width)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	k, ok := keybindings.FromTea(msg)
	if !ok {
		return m, nil
	}
	action, pending := Route(m.sh.stage, m.opts.Keys, k)
	if !pending {
		return m, nil
	}
	switch action {
	case keybindings.ActionNarrow:
		m.status = "no menu to filter"
	case keybindings.ActionRedraw:
		return m, tea.ClearScreen
	case keybindings.ActionReload:
		if m.opts.Load == nil {
			return m, nil
		}
		load := m.opts.Load
		return m, func() tea.Msg {
			sc, err := load()
			if err != nil {
				return ErrMsg{Err: err}
			}
			return ReloadMsg{Scene: sc}
		}
	case keybindings.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case keybindings.ActionQuit:
		return m, tea.Quit
	}
	return m, nil
}

var mouseActions = map[tea.MouseAction]popup.MouseAction{
	tea.MouseActionPress:   popup.MousePress,
	tea.MouseActionMotion:  popup.MouseDrag,
	tea.MouseActionRelease: popup.MouseRelease,
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}
	action, ok := mouseActions[msg.Action]
	if !ok {
		return
	}
	st := m.sh.stage
	st.Compose(popup.RedrawValid)
	st.Dispatch(popup.MouseEvent(action, msg.Y, msg.X))
}

func (m *Model) reload(sc *scene.Scene) {
	cfg := m.opts.Stage
	cfg.Rows, cfg.Cols = m.gridRows(), m.width
	cfg.Notices = m.sh.stage.Notices
	st, err := scene.New(sc, cfg)
	if err != nil {
		m.status = err.Error()
		logger.Warn("reload: %v", err)
		return
	}
	m.sh.results = append(m.sh.results, m.sh.stage.Results()...)
	m.sh.stage = st
	m.status = "scene reloaded"
	logger.Info("scene reloaded")
}

func (m Model) View() string {
	var b strings.Builder
	for _, line := range m.sh.stage.Lines(m.opts.Theme) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if m.status != "" {
		b.WriteString(m.opts.Theme.Render(theme.MsgArea, m.status))
	} else {
		b.WriteString(m.help.View(m.opts.Keys))
	}
	return b.String()
}

// ErrQuit is returned by Run when the program ended without a model.
var ErrQuit = errors.New("program ended without a model")

// Run shows the model on the terminal until the user quits, then returns
// the final model. send, when set, receives the program's Send for
// goroutines that deliver ReloadMsg or ErrMsg.
func Run(m Model, send func(func(tea.Msg)), opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	p := tea.NewProgram(m, opts...)
	if send != nil {
		send(p.Send)
	}
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("bubble tea: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return m, ErrQuit
	}
	return fm, nil
}
