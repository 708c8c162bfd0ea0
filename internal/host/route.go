// ABOUTME: Key routing shared by the hosts: narrowing, host-first actions, popups, keymap
// ABOUTME: Stage-level actions are applied here; terminal-level ones go back to the caller

package host

import (
	"github.com/mauromedda/popgrid/internal/keybindings"
	"github.com/mauromedda/popgrid/internal/scene"
	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/key"
)

// hostFirst actions win over popup filters.
var hostFirst = map[keybindings.Action]bool{
	keybindings.ActionNarrow: true,
	keybindings.ActionReload: true,
	keybindings.ActionRedraw: true,
	keybindings.ActionHelp:   true,
	keybindings.ActionQuit:   true,
}

// Route offers k to st. A menu being narrowed sees it first, then the
// host-first actions, then the popup filters, then the keymap. Cursor,
// focus and popup actions are applied to st. When pending is true the
// caller must perform action: help, redraw, reload, quit, or narrow when
// no menu was open.
func Route(st *scene.Stage, keys *keybindings.Manager, k key.Key) (action keybindings.Action, pending bool) {
	if st.NarrowKey(k) {
		return "", false
	}
	// ctrl+c closes the topmost popup before it quits
	if k.Type == key.KeyCtrlC && st.Dispatch(popup.KeyEvent(k)) {
		return "", false
	}
	action, bound := keys.MatchKey(k)
	if bound && hostFirst[action] {
		return apply(st, action)
	}
	if st.Dispatch(popup.KeyEvent(k)) {
		return "", false
	}
	if bound {
		return apply(st, action)
	}
	return "", false
}

func apply(st *scene.Stage, a keybindings.Action) (keybindings.Action, bool) {
	switch a {
	case keybindings.ActionUp:
		st.MoveCursor(-1, 0)
	case keybindings.ActionDown:
		st.MoveCursor(1, 0)
	case keybindings.ActionLeft:
		st.MoveCursor(0, -1)
	case keybindings.ActionRight:
		st.MoveCursor(0, 1)
	case keybindings.ActionNextWindow:
		st.FocusNext()
	case keybindings.ActionClearPopups:
		st.Popups.Clear()
	case keybindings.ActionNarrow:
		return a, !st.StartNarrow()
	default:
		return a, true
	}
	return a, false
}
