// ABOUTME: Input dispatch to panel filters, cursor auto-close, and pointer dragging
// ABOUTME: Callbacks may close any panel; passes re-fetch panels by id after each call

package popup

import "github.com/mauromedda/popgrid/pkg/tui/key"

// Filter offers ev to panel filters, highest z-index first, and reports
// whether one consumed it. Ctrl-C closes a filtered panel with result -1.
func (m *Manager) Filter(ev Event) bool {
	pass := m.reg.NewPass(false)
	for p, ok := pass.Next(); ok; p, ok = pass.Next() {
		if p.Filter == nil {
			continue
		}
		id := p.id
		if ev.Is(key.KeyCtrlC) {
			m.log.Debug("popup %d interrupted", id)
			_ = m.Close(id, -1)
			return true
		}
		if p.Filter(m, id, ev) {
			return true
		}
	}
	return false
}

// CheckCursor closes, with result -1, every panel whose auto-close region
// the cursor has left.
func (m *Manager) CheckCursor(cur Cursor) {
	pass := m.reg.NewPass(true)
	for p, ok := pass.Next(); ok; p, ok = pass.Next() {
		mv := p.Moved
		if mv.Window == 0 {
			continue
		}
		if cur.Window != mv.Window || cur.Line != mv.Line || cur.Col < mv.MinCol || cur.Col > mv.MaxCol {
			_ = m.Close(p.id, -1)
		}
	}
}

// Pointer moves draggable panels with the mouse. A press on the border of
// the topmost draggable panel starts a drag; a press inside a borderless
// one does too. It reports whether the event was used.
func (m *Manager) Pointer(ev Event) bool {
	if !ev.IsMouse() {
		return false
	}
	mo := ev.Mouse
	switch mo.Action {
	case MousePress:
		id, ok := m.TopmostAt(mo.Row, mo.Col)
		if !ok {
			return false
		}
		p := m.reg.Find(id)
		if !p.Drag {
			return false
		}
		if p.Border != [4]int{} && !p.OnBorder(mo.Row-p.rect.Row, mo.Col-p.rect.Col) {
			return false
		}
		return m.BeginDrag(id, mo.Row, mo.Col) == nil
	case MouseDrag:
		if !m.drag.active {
			return false
		}
		m.DragTo(mo.Row, mo.Col)
		return true
	case MouseRelease:
		if !m.drag.active {
			return false
		}
		m.DragTo(mo.Row, mo.Col)
		m.EndDrag()
		return true
	}
	return false
}
