// ABOUTME: Drag controller: moves a panel with the pointer
// ABOUTME: Positions are recomputed from the pointer origin so rounding never accumulates

package popup

type dragState struct {
	id             ID
	active         bool
	startRow       int
	startCol       int
	startPanelLine int
	startPanelCol  int
}

// BeginDrag starts moving the panel with the pointer at the 0-based cell
// row/col. A centered panel becomes top-left anchored at its current spot.
func (m *Manager) BeginDrag(id ID, row, col int) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	m.drag = dragState{
		id:             id,
		active:         true,
		startRow:       row,
		startCol:       col,
		startPanelLine: p.Line,
		startPanelCol:  p.Col,
	}
	if p.Line == 0 {
		m.drag.startPanelLine = p.rect.Row + 1
	}
	if p.Col == 0 {
		m.drag.startPanelCol = p.rect.Col + 1
	}
	if p.Anchor == AnchorCenter {
		p.Anchor = AnchorTopLeft
		p.Line = m.drag.startPanelLine
		p.Col = m.drag.startPanelCol
	}
	m.log.Debug("popup %d drag start at %d,%d", id, row, col)
	return nil
}

// DragTo moves the dragged panel so it follows the pointer. It does
// nothing when no drag is active or the panel is gone.
func (m *Manager) DragTo(row, col int) {
	if !m.drag.active {
		return
	}
	p := m.reg.Find(m.drag.id)
	if p == nil {
		m.drag = dragState{}
		return
	}
	p.Line = clampInt(m.drag.startPanelLine+row-m.drag.startRow, 1, max(m.size.Rows, 1))
	p.Col = clampInt(m.drag.startPanelCol+col-m.drag.startCol, 1, max(m.size.Cols, 1))
	m.resolve(p)
}

// EndDrag stops the current drag.
func (m *Manager) EndDrag() {
	m.drag = dragState{}
}

// Dragging returns the dragged panel id.
func (m *Manager) Dragging() (ID, bool) {
	return m.drag.id, m.drag.active
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
