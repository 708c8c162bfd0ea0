// ABOUTME: Paint pass: draws panel decoration and content onto a cell canvas
// ABOUTME: Panels are painted lowest z-index first with the canvas z-guard set per panel

package popup

import "strings"

// Canvas is the low-level cell painter. Writes to a cell owned by a panel
// with a higher z-index than the current one must be dropped.
type Canvas interface {
	SetZIndex(z int)
	// Fill paints rows [row0,row1) and columns [col0,col1). The first
	// column of each row gets first, the others fill.
	Fill(row0, row1, col0, col1 int, first, fill rune, hl string)
	// Put writes text starting at the cell.
	Put(row, col int, text, hl string)
}

// ContentPainter draws a panel's content into area, the absolute content
// rectangle. The area has been cleared with the panel highlight.
type ContentPainter func(c Canvas, p *Panel, area Rect)

var (
	unicodeBorder = [8]rune{'═', '║', '═', '║', '╔', '╗', '╝', '╚'}
	asciiBorder   = [8]rune{'-', '|', '-', '|', '+', '+', '+', '+'}
)

// borderGlyphs returns the glyphs for p with defaults filled in.
func (m *Manager) borderGlyphs(p *Panel) [8]rune {
	chars := unicodeBorder
	if m.cfg.ASCIIBorders {
		chars = asciiBorder
	}
	for i, r := range p.BorderChars {
		if r != 0 {
			chars[i] = r
		}
	}
	return chars
}

// Paint draws every visible panel. Call it after Update so the canvas
// z-guard sees the current mask.
func (m *Manager) Paint(c Canvas, content ContentPainter) {
	pass := m.reg.NewPass(true)
	for p, ok := pass.Next(); ok; p, ok = pass.Next() {
		m.paintPanel(c, p, content)
	}
	c.SetZIndex(0)
}

func (m *Manager) paintPanel(c Canvas, p *Panel, content ContentPainter) {
	c.SetZIndex(p.ZIndex)

	area := p.ContentRect()
	c.Fill(area.Row, area.Row+area.Height, area.Col, area.Col+area.Width, ' ', ' ', p.Highlight)
	if content != nil {
		content(c, p, area)
	}

	chars := m.borderGlyphs(p)
	var hl [4]string
	for i := range hl {
		hl[i] = p.Highlight
		if p.BorderHighlight[i] != "" {
			hl[i] = p.BorderHighlight[i]
		}
	}

	border, pad := p.Border, p.Padding
	row0, col0 := p.rect.Row, p.rect.Col
	totalWidth, totalHeight := p.TotalWidth(), p.TotalHeight()
	topExtra := p.topExtra()

	topPadding := pad[SideTop]
	if border[SideTop] > 0 {
		first := chars[CharTop]
		if border[SideLeft] > 0 {
			first = chars[CharTopLeft]
		}
		c.Fill(row0, row0+1, col0, col0+totalWidth, first, chars[CharTop], hl[SideTop])
		if border[SideRight] > 0 {
			c.Put(row0, col0+totalWidth-1, string(chars[CharTopRight]), hl[SideRight])
		}
	} else if topPadding == 0 && topExtra > 0 {
		// title row without border or padding
		topPadding = 1
	}

	if topPadding > 0 {
		row := row0 + border[SideTop]
		c.Fill(row, row+topPadding, col0+border[SideLeft], col0+totalWidth-border[SideRight], ' ', ' ', p.Highlight)
	}

	if p.Title != "" {
		titleHL := p.Highlight
		if border[SideTop] > 0 {
			titleHL = hl[SideTop]
		}
		c.Put(row0, col0+1, p.Title, titleHL)
	}

	for row := row0 + border[SideTop]; row < row0+totalHeight-border[SideBottom]; row++ {
		if border[SideLeft] > 0 {
			c.Put(row, col0, string(chars[CharLeft]), hl[SideLeft])
		}
		if pad[SideLeft] > 0 {
			c.Put(row, col0+border[SideLeft], strings.Repeat(" ", pad[SideLeft]), p.Highlight)
		}
		if border[SideRight] > 0 {
			c.Put(row, col0+totalWidth-1, string(chars[CharRight]), hl[SideRight])
		}
		if pad[SideRight] > 0 {
			c.Put(row, col0+border[SideLeft]+pad[SideLeft]+p.rect.Width, strings.Repeat(" ", pad[SideRight]), p.Highlight)
		}
	}

	if pad[SideBottom] > 0 {
		row := row0 + topExtra + p.rect.Height
		c.Fill(row, row+pad[SideBottom], col0+border[SideLeft], col0+totalWidth-border[SideRight], ' ', ' ', p.Highlight)
	}

	if border[SideBottom] > 0 {
		row := row0 + totalHeight - 1
		first := chars[CharBottom]
		if border[SideLeft] > 0 {
			first = chars[CharBotLeft]
		}
		c.Fill(row, row+1, col0, col0+totalWidth, first, chars[CharBottom], hl[SideBottom])
		if border[SideRight] > 0 {
			c.Put(row, col0+totalWidth-1, string(chars[CharBotRight]), hl[SideBottom])
		}
	}
}
