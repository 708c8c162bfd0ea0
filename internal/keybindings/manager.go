// ABOUTME: Host keymap built on bubbles/key: actions, default keys and config overrides
// ABOUTME: Provides lookup, conflict detection and the help.KeyMap used by the help bar

package keybindings

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Action is something the host does with a key the popups did not consume.
type Action string

const (
	ActionUp          Action = "up"
	ActionDown        Action = "down"
	ActionLeft        Action = "left"
	ActionRight       Action = "right"
	ActionNextWindow  Action = "next_window"
	ActionNarrow      Action = "narrow"
	ActionClearPopups Action = "clear_popups"
	ActionRedraw      Action = "redraw"
	ActionReload      Action = "reload"
	ActionHelp        Action = "help"
	ActionQuit        Action = "quit"
)

// ErrUnknownAction reports an override for an action that does not exist.
var ErrUnknownAction = errors.New("unknown key action")

type defaultBinding struct {
	action Action
	keys   []string
	help   string
}

// defaults in display order.
var defaults = []defaultBinding{
	{ActionUp, []string{"up", "k"}, "cursor up"},
	{ActionDown, []string{"down", "j"}, "cursor down"},
	{ActionLeft, []string{"left", "h"}, "cursor left"},
	{ActionRight, []string{"right", "l"}, "cursor right"},
	{ActionNextWindow, []string{"tab"}, "next window"},
	{ActionNarrow, []string{"/"}, "filter menu"},
	{ActionClearPopups, []string{"ctrl+x"}, "close popups"},
	{ActionRedraw, []string{"ctrl+l"}, "redraw"},
	{ActionReload, []string{"ctrl+r"}, "reload scene"},
	{ActionHelp, []string{"?"}, "help"},
	{ActionQuit, []string{"ctrl+q", "ctrl+c"}, "quit"},
}

// ConflictInfo describes a key bound to more than one action.
type ConflictInfo struct {
	Key     string
	Actions []Action
}

// Manager maps keys to actions.
type Manager struct {
	order    []Action
	bindings map[Action]key.Binding
}

// New builds the keymap from the defaults with overrides applied. An
// override with no keys disables the action.
func New(overrides map[string][]string) (*Manager, error) {
	m := &Manager{bindings: make(map[Action]key.Binding, len(defaults))}
	for _, d := range defaults {
		m.order = append(m.order, d.action)
		m.bindings[d.action] = newBinding(d.keys, d.help)
	}

	var errs []error
	for name, keys := range overrides {
		a := Action(strings.ToLower(name))
		b, ok := m.bindings[a]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAction, name))
			continue
		}
		m.bindings[a] = newBinding(keys, b.Help().Desc)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func newBinding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled(), key.WithHelp("", desc))
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
}

// Match returns the action bound to k, for example a tea.KeyMsg.
func (m *Manager) Match(k fmt.Stringer) (Action, bool) {
	for _, a := range m.order {
		if key.Matches(k, m.bindings[a]) {
			return a, true
		}
	}
	return "", false
}

// Binding returns the binding of an action.
func (m *Manager) Binding(a Action) key.Binding {
	return m.bindings[a]
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	byKey := make(map[string][]Action)
	for _, a := range m.order {
		b := m.bindings[a]
		if !b.Enabled() {
			continue
		}
		for _, k := range b.Keys() {
			byKey[k] = append(byKey[k], a)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range byKey {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int { return strings.Compare(a.Key, b.Key) })
	return conflicts
}

// ShortHelp implements help.KeyMap.
func (m *Manager) ShortHelp() []key.Binding {
	return []key.Binding{
		m.bindings[ActionNarrow],
		m.bindings[ActionClearPopups],
		m.bindings[ActionHelp],
		m.bindings[ActionQuit],
	}
}

// FullHelp implements help.KeyMap.
func (m *Manager) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for chunk := range slices.Chunk(m.order, 4) {
		col := make([]key.Binding, 0, len(chunk))
		for _, a := range chunk {
			col = append(col, m.bindings[a])
		}
		cols = append(cols, col)
	}
	return cols
}

// FormatAll returns a table of every enabled binding.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("Keybindings:\n\n")
	for _, a := range m.order {
		kb := m.bindings[a]
		if !kb.Enabled() {
			continue
		}
		fmt.Fprintf(&b, "  %-20s %-14s %s\n", strings.Join(kb.Keys(), ", "), a, kb.Help().Desc)
	}
	return b.String()
}
