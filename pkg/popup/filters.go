// ABOUTME: Built-in filters for menu and yes/no panels
// ABOUTME: Both consume every key and let drag mouse events through

package popup

import "github.com/mauromedda/popgrid/pkg/tui/key"

// FilterMenu moves the selection with j/k or the arrow keys. Space or Enter
// closes the panel with the selected line number; x, Esc or Ctrl-C close it
// with -1.
func FilterMenu(m *Manager, id ID, ev Event) bool {
	p := m.reg.Find(id)
	if p == nil {
		return false
	}
	if p.curLine == 0 {
		p.curLine = 1
	}

	old := p.curLine
	if (ev.IsRune('k', 'K') || ev.Is(key.KeyUp)) && p.curLine > 1 {
		p.curLine--
	}
	if (ev.IsRune('j', 'J') || ev.Is(key.KeyDown)) && p.curLine < p.content.LineCount() {
		p.curLine++
	}
	if p.curLine != old {
		m.scrollToCurrent(p)
		return true
	}

	switch {
	case ev.IsRune('x', 'X') || ev.Is(key.KeyEscape, key.KeyCtrlC):
		_ = m.Close(id, -1)
		return true
	case ev.IsRune(' ') || ev.Is(key.KeyEnter):
		_ = m.Close(id, p.curLine)
		return true
	}
	return !m.passDrag(p, ev)
}

// FilterYesNo closes the panel with 1 on y and 0 on n, x or Esc.
func FilterYesNo(m *Manager, id ID, ev Event) bool {
	p := m.reg.Find(id)
	if p == nil {
		return false
	}
	switch {
	case ev.IsRune('y', 'Y'):
		_ = m.Close(id, 1)
		return true
	case ev.IsRune('n', 'N', 'x', 'X') || ev.Is(key.KeyEscape):
		_ = m.Close(id, 0)
		return true
	}
	return !m.passDrag(p, ev)
}

// passDrag reports whether ev is a mouse event that drags p.
func (m *Manager) passDrag(p *Panel, ev Event) bool {
	if !p.Drag || !ev.IsMouse() {
		return false
	}
	if m.drag.active && m.drag.id == p.id {
		return true
	}
	id, ok := m.TopmostAt(ev.Mouse.Row, ev.Mouse.Col)
	return ok && id == p.id
}

// scrollToCurrent keeps the selected line of a menu inside the visible rows.
func (m *Manager) scrollToCurrent(p *Panel) {
	switch {
	case p.curLine < p.topLine:
		p.FirstLine = p.curLine
	case p.rect.Height > 0 && p.curLine >= p.topLine+p.rect.Height:
		p.FirstLine = p.curLine - p.rect.Height + 1
	default:
		// selection highlight moved; content must be repainted
		m.redrawAll = true
		return
	}
	m.resolve(p)
	m.redrawAll = true
}

// SetCurrentLine selects line lnum of a menu panel, clamped to its content,
// and scrolls it into view.
func (m *Manager) SetCurrentLine(id ID, lnum int) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	p.curLine = min(max(lnum, 1), max(p.content.LineCount(), 1))
	m.scrollToCurrent(p)
	return nil
}
