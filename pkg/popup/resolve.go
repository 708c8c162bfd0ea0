// ABOUTME: Geometry resolver: placement constraints plus content metrics to a rectangle
// ABOUTME: Pure over one panel; reports whether the rectangle moved or resized

package popup

import "github.com/mauromedda/popgrid/pkg/tui/width"

// Resolve computes the panel's rectangle on a grid of the given size and
// reports whether it differs from the previous resolution. Calling it again
// with unchanged inputs yields the same rectangle.
func Resolve(p *Panel, grid Size) bool {
	top, right, bottom, left := p.extras()
	extraHeight := top + bottom
	extraWidth := left + right
	orig := p.rect
	rule := p.Anchor.rule()

	row, col := 0, 0
	centerVert := rule.vertical == edgeCenter || p.Line == 0
	centerHor := rule.horizontal == edgeCenter || p.Col == 0
	allowShift := rule.shiftLeft && !p.Fixed

	if !centerVert && rule.vertical == edgeStart {
		row = min(p.Line-1, grid.Rows-1)
	}
	if !centerHor && rule.horizontal == edgeStart {
		col = min(p.Col-1, grid.Cols-3)
	}
	row = max(row, 0)
	col = max(col, 0)

	// Left anchored panels use the space up to the right edge and shift left
	// when a line does not fit. An explicit maximum disables the shift.
	maxWidth := grid.Cols - col - extraWidth
	if p.MaxWidth > 0 && maxWidth > p.MaxWidth {
		allowShift = false
		maxWidth = p.MaxWidth
	}
	maxWidth = max(maxWidth, 1)

	count := 0
	if p.content != nil {
		count = p.content.LineCount()
	}
	topLine := max(p.FirstLine, 1)
	if topLine > count {
		topLine = max(count, 1)
	}

	// TODO: count the extra row a wide character pushed past the wrap column
	// adds, as the content painter does.
	w := 1
	wrapped := 0
	for lnum := topLine; lnum <= count; lnum++ {
		n := p.content.LineWidth(lnum)
		if p.Wrap {
			for n > maxWidth {
				wrapped++
				n -= maxWidth
				w = maxWidth
			}
		} else if n > maxWidth && allowShift {
			shift := n - maxWidth
			if shift > col {
				n -= shift - col
				shift = col
			}
			col -= shift
			maxWidth += shift
			w = maxWidth
		}
		w = max(w, n)
		// lines below the maximum height are not shown, ignore their width
		if p.MaxHeight > 0 && lnum-topLine+1+wrapped >= p.MaxHeight {
			break
		}
	}

	minWidth := p.MinWidth
	if p.Title != "" {
		minWidth = max(minWidth, width.VisibleWidth(p.Title)+2-extraWidth)
	}
	if minWidth > 0 && w < minWidth {
		w = minWidth
	}
	w = min(w, maxWidth)

	switch {
	case centerHor:
		col = max((grid.Cols-w-extraWidth)/2, 0)
	case rule.horizontal == edgeEnd:
		// Move right only; truncating would change the height through rewrap.
		if w+extraWidth < p.Col {
			col = p.Col - (w + extraWidth)
		}
	}

	h := 1
	if count > 0 {
		h = count - topLine + 1 + wrapped
	}
	if p.MinHeight > 0 && h < p.MinHeight {
		h = p.MinHeight
	}
	if p.MaxHeight > 0 && h > p.MaxHeight {
		h = p.MaxHeight
	}
	h = max(min(h, grid.Rows-row-extraHeight), 1)

	switch {
	case centerVert:
		row = max((grid.Rows-h-extraHeight)/2, 0)
	case rule.vertical == edgeEnd:
		if h+extraHeight <= p.Line {
			row = p.Line - (h + extraHeight)
		} else {
			// not enough room above, start below the desired line
			row = p.Line + 1
		}
	}

	// Keep the whole footprint on the grid.
	if row+h+extraHeight > grid.Rows {
		h = grid.Rows - row - extraHeight
		if h < 1 {
			h = 1
			row = max(grid.Rows-h-extraHeight, 0)
		}
	}
	if col+w+extraWidth > grid.Cols {
		col = max(grid.Cols-w-extraWidth, 0)
	}

	p.rect = Rect{Row: row, Col: col, Width: w, Height: h}
	p.topLine = topLine
	p.resolved = true
	if p.content != nil {
		p.lastTick = p.content.Tick()
	}
	return p.rect != orig
}
