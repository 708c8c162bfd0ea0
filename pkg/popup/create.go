// ABOUTME: Panel creation with presets for notifications, dialogs, menus and cursor popups
// ABOUTME: Content is allocated before registration so a failure leaves nothing behind

package popup

import (
	"errors"
	"fmt"
)

// Kind selects the defaults a panel is created with.
type Kind int

const (
	KindNormal Kind = iota
	// KindAtCursor sits just above the cursor and closes when it moves off
	// the word under it.
	KindAtCursor
	// KindNotification is a global panel near the top that avoids other
	// notifications.
	KindNotification
	// KindDialog is a centered, bordered, draggable panel.
	KindDialog
	// KindMenu is a dialog with line selection through FilterMenu.
	KindMenu
)

// Create makes a panel showing lines, applies opts and resolves it.
// When the returned error wraps ErrInvalidOption the panel was still
// created and the id is valid; the offending option was ignored. Any other
// error (ErrUnsupported, ErrAlloc) comes with id 0 and no panel.
func (m *Manager) Create(lines []string, opts Options, kind Kind) (ID, error) {
	tab := 0
	if opts.Tab != nil {
		tab = *opts.Tab
	} else if kind == KindNotification {
		tab = -1
	}
	if tab != 0 && tab != -1 {
		return 0, fmt.Errorf("tab %d: %w", tab, ErrUnsupported)
	}
	if kind == KindAtCursor && m.cfg.Cursor == nil {
		return 0, fmt.Errorf("popup at cursor without cursor source: %w", ErrUnsupported)
	}

	content, err := m.cfg.NewContent(lines)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAlloc, err)
	}
	if content == nil {
		return 0, ErrAlloc
	}

	p := NewPanel(content)
	p.id = m.nextID
	m.nextID++
	if tab == 0 {
		m.reg.AddToSurface(m.reg.Active(), p)
	} else {
		m.reg.AddGlobal(p)
	}

	switch kind {
	case KindAtCursor:
		m.placeAtCursor(p)
	case KindNotification:
		m.placeNotification(p)
	case KindDialog, KindMenu:
		p.Anchor = AnchorCenter
		p.ZIndex = DialogZIndex
		p.Drag = true
		p.Border = [4]int{1, 1, 1, 1}
		p.Padding = [4]int{1, 1, 1, 1}
	}
	if kind == KindMenu {
		p.Filter = FilterMenu
		p.Wrap = false
		p.curLine = 1
	}

	applyErr := errors.Join(m.applyMoveOptions(p, opts), m.applyGeneralOptions(p, opts))
	if opts.Hidden {
		p.hidden = true
	}

	Resolve(p, m.size)
	m.invalidate()
	m.log.Debug("popup %d created kind=%d rect=%+v", p.id, kind, p.rect)
	m.notify(NoticeCreated, p)
	return p.id, applyErr
}

// placeAtCursor anchors the panel above the cursor, or below it when the
// cursor is on the first row.
func (m *Manager) placeAtCursor(p *Panel) {
	c := m.cfg.Cursor.Cursor()
	p.Anchor = AnchorBotLeft
	p.Line = c.ScreenRow
	if p.Line == 0 {
		p.Line = 2
		p.Anchor = AnchorTopLeft
	}
	p.Col = c.ScreenCol + 1
	m.setMovedValues(p)
	m.setMovedColumns(p, true)
}

// placeNotification stacks the panel below other visible notifications.
// The height guess is three rows more than the text.
func (m *Manager) placeNotification(p *Panel) {
	height := p.content.LineCount() + 3
	p.Line = 1
	global := m.reg.Global()
	for i := 0; i < len(global); i++ {
		o := global[i]
		if o == p || o.ZIndex != NotificationZIndex {
			continue
		}
		if o.rect.Row <= p.Line-1+height && o.rect.Row+o.TotalHeight() > p.Line-1 {
			// move below it and check all the others again
			p.Line = o.rect.Row + o.TotalHeight() + 1
			i = -1
		}
	}
	if p.Line+height > m.size.Rows {
		// cannot avoid overlap, put it on top
		p.Line = 1
	}

	p.Col = 10
	p.ZIndex = NotificationZIndex
	p.MinWidth = 20
	p.Drag = true
	p.Border = [4]int{1, 1, 1, 1}
	p.Padding[SideRight] = 1
	p.Padding[SideLeft] = 1
	p.Highlight = "PopupNotification"
}
