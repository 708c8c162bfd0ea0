// ABOUTME: Frame composition: lay out the base, update the popup mask, then paint
// ABOUTME: PaintText draws panel lines, wrapped or clipped, with the menu selection

package tui

import (
	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
	"github.com/mauromedda/popgrid/pkg/tui/width"
)

// Compose draws one frame of base and popups onto s and returns what the
// popup mask reported. m must use s as its Host.
func Compose(s *Screen, base *Container, m *popup.Manager, kind popup.RedrawKind) popup.Report {
	s.Layout(base)
	rep := m.Update(kind)
	s.DrawBase()
	m.Paint(s, PaintText)
	return rep
}

// PaintText is the popup.ContentPainter for content with line text. The
// selected line of a menu is drawn across the full width in PopupSelected.
func PaintText(c popup.Canvas, p *popup.Panel, area popup.Rect) {
	src, ok := p.Content().(popup.LineSource)
	if !ok {
		return
	}
	count := p.Content().LineCount()
	row := 0
	for lnum := p.TopLine(); lnum <= count && row < area.Height; lnum++ {
		hl := p.Highlight
		selected := lnum == p.CurrentLine()
		if selected {
			hl = theme.PopupSelected
		}

		line := src.Line(lnum)
		parts := []string{width.SliceByColumn(line, 0, area.Width)}
		if p.Wrap {
			parts = width.Wrap(line, area.Width)
		}
		for _, part := range parts {
			if row >= area.Height {
				break
			}
			if selected {
				c.Fill(area.Row+row, area.Row+row+1, area.Col, area.Col+area.Width, ' ', ' ', hl)
			}
			c.Put(area.Row+row, area.Col, part, hl)
			row++
		}
	}
}
