// ABOUTME: Typed panel options as produced by a binding layer
// ABOUTME: Invalid values are reported with ErrInvalidOption and otherwise ignored

package popup

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

// Ptr returns a pointer to v, for optional option fields.
func Ptr[T any](v T) *T { return &v }

// MovedOption configures auto-close on cursor movement. Kind is "any",
// "word" or "WORD"; with Range set MinCol/MaxCol are used instead.
type MovedOption struct {
	Kind   string
	Range  bool
	MinCol int
	MaxCol int
}

// Options holds option values. Zero numbers for the size and position
// fields and nil pointers or slices leave the current value unchanged.
type Options struct {
	Line      int
	Col       int
	Pos       string
	Fixed     *bool
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	FirstLine *int
	Title     *string
	Wrap      *bool
	Drag      *bool
	Highlight *string
	// Padding and Border take up to four values (top, right, bottom, left).
	// An empty non-nil slice sets all sides to 1; negative values are skipped.
	Padding         []int
	Border          []int
	BorderHighlight []string
	// BorderChars takes 1, 2 or up to 8 glyphs; see Panel.BorderChars.
	BorderChars []string
	ZIndex      *int
	Moved       *MovedOption
	Filter      FilterFunc
	Callback    CloseFunc
	Hidden      bool

	// Tab is only used on creation: 0 the active surface, -1 global.
	Tab *int
}

const maxPadding = 999

func (m *Manager) applyMoveOptions(p *Panel, o Options) error {
	if o.MinWidth > 0 {
		p.MinWidth = o.MinWidth
	}
	if o.MinHeight > 0 {
		p.MinHeight = o.MinHeight
	}
	if o.MaxWidth > 0 {
		p.MaxWidth = o.MaxWidth
	}
	if o.MaxHeight > 0 {
		p.MaxHeight = o.MaxHeight
	}
	if o.Line > 0 {
		p.Line = o.Line
	}
	if o.Col > 0 {
		p.Col = o.Col
	}
	if o.Fixed != nil {
		p.Fixed = *o.Fixed
	}
	if o.Pos != "" {
		a, err := ParseAnchor(o.Pos)
		if err != nil {
			return err
		}
		p.Anchor = a
	}
	return nil
}

func (m *Manager) applyGeneralOptions(p *Panel, o Options) error {
	var errs []error

	if o.FirstLine != nil {
		p.FirstLine = *o.FirstLine
	}
	p.FirstLine = max(p.FirstLine, 1)

	if o.Title != nil {
		p.Title = *o.Title
	}
	if o.Wrap != nil {
		p.Wrap = *o.Wrap
	}
	if o.Drag != nil {
		p.Drag = *o.Drag
	}
	if o.Highlight != nil {
		p.Highlight = *o.Highlight
	}
	setSides(&p.Padding, o.Padding, maxPadding)
	setSides(&p.Border, o.Border, 1)

	if o.BorderHighlight != nil {
		for i := 0; i < 4 && i < len(o.BorderHighlight); i++ {
			if o.BorderHighlight[i] != "" {
				p.BorderHighlight[i] = o.BorderHighlight[i]
			}
		}
		if len(o.BorderHighlight) == 1 && p.BorderHighlight[0] != "" {
			for i := 1; i < 4; i++ {
				p.BorderHighlight[i] = p.BorderHighlight[0]
			}
		}
	}

	if o.BorderChars != nil {
		for i := 0; i < 8 && i < len(o.BorderChars); i++ {
			if r, _ := utf8.DecodeRuneInString(o.BorderChars[i]); o.BorderChars[i] != "" {
				p.BorderChars[i] = r
			}
		}
		switch len(o.BorderChars) {
		case 1:
			for i := 1; i < 8; i++ {
				p.BorderChars[i] = p.BorderChars[0]
			}
		case 2:
			for i := CharTopLeft; i < 8; i++ {
				p.BorderChars[i] = p.BorderChars[1]
			}
			for i := 1; i < CharTopLeft; i++ {
				p.BorderChars[i] = p.BorderChars[0]
			}
		}
	}

	if o.ZIndex != nil {
		z := *o.ZIndex
		if z < 1 {
			z = DefaultZIndex
		}
		p.ZIndex = min(z, MaxZIndex)
		m.invalidate()
	}

	if o.Moved != nil {
		if err := m.applyMoved(p, *o.Moved); err != nil {
			errs = append(errs, err)
		}
	}

	if o.Filter != nil {
		p.Filter = o.Filter
	}
	if o.Callback != nil {
		p.Callback = o.Callback
	}
	return errors.Join(errs...)
}

// setSides copies up to four non-negative values, capped at maxVal. An empty
// list sets every side to 1.
func setSides(dst *[4]int, values []int, maxVal int) {
	if values == nil {
		return
	}
	for i := range dst {
		dst[i] = 1
	}
	for i := 0; i < 4 && i < len(values); i++ {
		if values[i] >= 0 {
			dst[i] = min(values[i], maxVal)
		}
	}
}

func (m *Manager) applyMoved(p *Panel, mo MovedOption) error {
	if m.cfg.Cursor == nil {
		return fmt.Errorf("moved: no cursor source: %w", ErrInvalidOption)
	}
	m.setMovedValues(p)
	if mo.Range {
		p.Moved.MinCol = mo.MinCol
		p.Moved.MaxCol = mo.MaxCol
		return nil
	}
	switch mo.Kind {
	case "any":
	case "word":
		m.setMovedColumns(p, false)
	case "WORD":
		m.setMovedColumns(p, true)
	default:
		return fmt.Errorf("moved %q: %w", mo.Kind, ErrInvalidOption)
	}
	return nil
}

// setMovedValues pins the auto-close region to the cursor position.
func (m *Manager) setMovedValues(p *Panel) {
	c := m.cfg.Cursor.Cursor()
	p.Moved = Moved{Window: c.Window, Line: c.Line, MinCol: c.Col, MaxCol: c.Col}
}

// setMovedColumns widens the region to the word under the cursor.
func (m *Manager) setMovedColumns(p *Panel, bigWord bool) {
	start, n, ok := m.cfg.Cursor.WordUnderCursor(bigWord)
	if ok && n > 0 {
		p.Moved.MinCol = start
		p.Moved.MaxCol = start + n - 1
	}
}

// GetOptions returns the panel's current option values.
func (m *Manager) GetOptions(id ID) (Options, error) {
	p, err := m.lookup(id)
	if err != nil {
		return Options{}, err
	}
	o := Options{
		Line:      p.Line,
		Col:       p.Col,
		Pos:       p.Anchor.String(),
		Fixed:     Ptr(p.Fixed),
		MinWidth:  p.MinWidth,
		MinHeight: p.MinHeight,
		MaxWidth:  p.MaxWidth,
		MaxHeight: p.MaxHeight,
		FirstLine: Ptr(p.FirstLine),
		Title:     Ptr(p.Title),
		Wrap:      Ptr(p.Wrap),
		Drag:      Ptr(p.Drag),
		Highlight: Ptr(p.Highlight),
		ZIndex:    Ptr(p.ZIndex),
		Filter:    p.Filter,
		Callback:  p.Callback,
		Hidden:    p.hidden,
	}
	if p.Padding != [4]int{} {
		o.Padding = slices.Clone(p.Padding[:])
	}
	if p.Border != [4]int{} {
		o.Border = slices.Clone(p.Border[:])
	}
	if p.BorderHighlight != [4]string{} {
		o.BorderHighlight = slices.Clone(p.BorderHighlight[:])
	}
	if p.BorderChars != [8]rune{} {
		o.BorderChars = make([]string, 8)
		for i, r := range p.BorderChars {
			if r != 0 {
				o.BorderChars[i] = string(r)
			}
		}
	}
	if p.Moved.Window != 0 {
		o.Moved = &MovedOption{Range: true, MinCol: p.Moved.MinCol, MaxCol: p.Moved.MaxCol}
	}
	return o, nil
}
