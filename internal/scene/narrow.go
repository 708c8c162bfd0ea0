// ABOUTME: Fuzzy narrowing of the topmost menu: typed runes filter its lines
// ABOUTME: The pattern shows on the command line; results are source line numbers

package scene

import (
	"unicode/utf8"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/fuzzy"
	"github.com/mauromedda/popgrid/pkg/tui/key"
)

type narrowing struct {
	id      popup.ID
	source  []string
	pattern string
	view    fuzzy.Narrowed
}

// TopMenu returns the visible menu with the highest z-index.
func (st *Stage) TopMenu() (popup.ID, bool) {
	pass := st.Popups.Registry().NewPass(false)
	for p, ok := pass.Next(); ok; p, ok = pass.Next() {
		if st.kinds[p.ID()] == popup.KindMenu {
			return p.ID(), true
		}
	}
	return 0, false
}

// StartNarrow begins narrowing the topmost menu. It reports false when no
// menu is open.
func (st *Stage) StartNarrow() bool {
	id, ok := st.TopMenu()
	if !ok {
		return false
	}
	c := st.Popups.Panel(id).Content()
	source := make([]string, c.LineCount())
	for i := range source {
		source[i] = c.(popup.LineSource).Line(i + 1)
	}
	st.narrow = &narrowing{id: id, source: source, view: fuzzy.Narrow("", source)}
	st.Screen.SetCmdline("/")
	return true
}

// Narrowing returns the current pattern while a menu is being narrowed.
func (st *Stage) Narrowing() (string, bool) {
	if st.narrow == nil {
		return "", false
	}
	return st.narrow.pattern, true
}

// NarrowKey handles k while narrowing and reports whether it was used.
// Enter closes the menu with the source line of the selection; Escape, or
// Backspace on an empty pattern, restores the full menu.
func (st *Stage) NarrowKey(k key.Key) bool {
	n := st.narrow
	if n == nil {
		return false
	}
	p := st.Popups.Panel(n.id)
	if p == nil {
		st.stopNarrow()
		return false
	}

	switch {
	case k.Type == key.KeyEscape:
		st.restore()
	case k.Type == key.KeyCtrlC:
		st.restore()
		return false
	case k.Type == key.KeyEnter:
		src := n.view.Origin(p.CurrentLine())
		if src < 1 {
			return true
		}
		st.stopNarrow()
		_ = st.Popups.Close(n.id, src)
	case k.Type == key.KeyUp, k.Type == key.KeyDown:
		popup.FilterMenu(st.Popups, n.id, popup.KeyEvent(k))
	case k.Type == key.KeyBackspace:
		if n.pattern == "" {
			st.restore()
			return true
		}
		_, size := utf8.DecodeLastRuneInString(n.pattern)
		st.refine(n.pattern[:len(n.pattern)-size])
	case k.Type == key.KeyRune && !k.Ctrl && !k.Alt:
		st.refine(n.pattern + string(k.Rune))
	}
	return true
}

func (st *Stage) refine(pattern string) {
	n := st.narrow
	n.pattern = pattern
	n.view = fuzzy.Narrow(pattern, n.source)
	lines := n.view.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	_ = st.Popups.SetText(n.id, lines)
	_ = st.Popups.SetCurrentLine(n.id, 1)
	st.Screen.SetCmdline("/" + pattern)
}

// restore puts the full menu back and ends narrowing.
func (st *Stage) restore() {
	n := st.narrow
	_ = st.Popups.SetText(n.id, n.source)
	_ = st.Popups.SetCurrentLine(n.id, 1)
	st.stopNarrow()
}

func (st *Stage) stopNarrow() {
	st.narrow = nil
	st.Screen.SetCmdline(st.cmdline)
}
