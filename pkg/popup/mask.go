// ABOUTME: Compositing mask: per-cell z-index of the topmost visible panel
// ABOUTME: Incremental rebuilds diff against the previous frame to find redraw regions

package popup

// RedrawKind tells Update how much of the grid the host is redrawing.
type RedrawKind int

const (
	// RedrawValid redraws only what changed; the mask is diffed.
	RedrawValid RedrawKind = iota
	// RedrawSomeValid redraws whole windows; the mask is rebuilt in place.
	RedrawSomeValid
	// RedrawNotValid redraws everything; all panels are re-resolved.
	RedrawNotValid
	// RedrawClear clears the grid before redrawing everything.
	RedrawClear
)

// WindowLoc locates a grid cell inside a base window.
type WindowLoc struct {
	Window int
	// Line is the buffer line shown at the cell, 1-based.
	Line int
	// Status is set when the cell is in or below the window's status line.
	Status bool
	// RightCol is the last grid column of the window.
	RightCol int
}

// Host maps grid cells back to the base windows under the panels.
type Host interface {
	// CmdlineRow is the first grid row of the command area.
	CmdlineRow() int
	WindowAt(row, col int) (WindowLoc, bool)
}

// Region is a base window line that must be redrawn.
type Region struct {
	Window int
	Line   int
	Status bool
}

// Report lists what the host must redraw after Update.
type Report struct {
	// Rebuilt is set when the mask was recomputed.
	Rebuilt bool
	// RedrawAll asks for a redraw of every base window.
	RedrawAll bool
	// ClearCmdline asks for the command area to be cleared.
	ClearCmdline bool
	Regions      []Region
}

// Mask holds the current and next z-index buffers.
type Mask struct {
	size    Size
	cur     []int16
	next    []int16
	surface SurfaceID
	built   bool
	dirty   bool
	visible bool
}

func newMask(size Size) *Mask {
	m := &Mask{}
	m.resize(size)
	return m
}

func (mk *Mask) resize(size Size) {
	n := max(size.Rows, 0) * max(size.Cols, 0)
	mk.size = size
	mk.cur = make([]int16, n)
	mk.next = make([]int16, n)
	mk.built = false
	mk.dirty = true
}

// At returns the z-index owning the cell, 0 when no panel covers it.
func (mk *Mask) At(row, col int) int {
	if row < 0 || col < 0 || row >= mk.size.Rows || col >= mk.size.Cols {
		return 0
	}
	return int(mk.cur[row*mk.size.Cols+col])
}

// Visible reports whether the last rebuild found any visible panel.
func (mk *Mask) Visible() bool { return mk.visible }

// stamp writes the panel's z-index over its footprint in buf.
func (mk *Mask) stamp(buf []int16, p *Panel) {
	rows, cols := mk.size.Rows, mk.size.Cols
	z := int16(p.ZIndex)
	for line := max(p.rect.Row, 0); line < p.rect.Row+p.TotalHeight() && line < rows; line++ {
		for col := max(p.rect.Col, 0); col < p.rect.Col+p.TotalWidth() && col < cols; col++ {
			buf[line*cols+col] = z
		}
	}
}

// Update recomputes the mask when needed and returns what the host must
// redraw. It is the only place the mask state changes.
func (m *Manager) Update(kind RedrawKind) Report {
	mk := m.mask
	redrawAll := false
	if !mk.built || mk.surface != m.reg.Active() || kind >= RedrawNotValid {
		mk.dirty = true
		redrawAll = true
	}
	if !mk.dirty {
		for p := range m.reg.All() {
			if p.contentChanged() {
				mk.dirty = true
				break
			}
		}
		if !mk.dirty {
			return m.takeReport(Report{})
		}
	}

	mk.dirty = false
	mk.built = true
	mk.surface = m.reg.Active()
	mk.visible = false

	direct := kind >= RedrawSomeValid
	target := mk.next
	if direct {
		target = mk.cur
	}
	clear(target)

	// Lowest z-index first, so a higher panel overwrites the cell.
	m.composing = true
	pass := m.reg.NewPass(true)
	for p, ok := pass.Next(); ok; p, ok = pass.Next() {
		mk.visible = true
		if redrawAll || p.contentChanged() {
			m.resolve(p)
		}
		mk.stamp(target, p)
	}
	m.composing = false
	m.log.Debug("popup mask rebuilt kind=%d surface=%d visible=%t", kind, mk.surface, mk.visible)

	rep := Report{Rebuilt: true, RedrawAll: redrawAll}
	if !direct {
		rep.Regions = m.diffMask(&rep)
	}
	return m.takeReport(rep)
}

// diffMask copies changed cells from next into cur and maps them to base
// window lines.
func (m *Manager) diffMask(rep *Report) []Region {
	mk := m.mask
	rows, cols := mk.size.Rows, mk.size.Cols
	cmdline := rows
	if m.host != nil {
		cmdline = m.host.CmdlineRow()
	}

	var regions []Region
	seen := make(map[Region]bool)
	for line := 0; line < rows; line++ {
		colDone := 0
		for col := 0; col < cols; col++ {
			off := line*cols + col
			if mk.cur[off] == mk.next[off] {
				continue
			}
			mk.cur[off] = mk.next[off]

			if line >= cmdline {
				// text under a closed panel shows through in the command area
				if mk.next[off] == 0 {
					rep.ClearCmdline = true
				}
				continue
			}
			if m.host == nil || col < colDone {
				continue
			}
			loc, ok := m.host.WindowAt(line, col)
			if !ok {
				continue
			}
			r := Region{Window: loc.Window, Line: loc.Line, Status: loc.Status}
			if !seen[r] {
				seen[r] = true
				regions = append(regions, r)
			}
			// the rest of this window line is redrawn anyway
			colDone = loc.RightCol + 1
		}
	}
	return regions
}

// takeReport merges the pending redraw flags into rep and resets them.
func (m *Manager) takeReport(rep Report) Report {
	rep.RedrawAll = rep.RedrawAll || m.redrawAll
	rep.ClearCmdline = rep.ClearCmdline || m.clearCmdline
	m.redrawAll = false
	m.clearCmdline = false
	return rep
}

// ZAt returns the z-index of the topmost panel covering the cell.
func (m *Manager) ZAt(row, col int) int {
	return m.mask.At(row, col)
}

// Visible reports whether any panel was visible at the last rebuild.
func (m *Manager) Visible() bool {
	return m.mask.Visible()
}

// TopmostAt returns the id of the highest visible panel covering the cell.
func (m *Manager) TopmostAt(row, col int) (ID, bool) {
	// Walk in paint order and keep the last hit, so equal z-indexes resolve
	// the same way the mask does.
	var found ID
	ok := false
	pass := m.reg.NewPass(true)
	for p, more := pass.Next(); more; p, more = pass.Next() {
		if p.covers(row, col) {
			found, ok = p.id, true
		}
	}
	return found, ok
}
