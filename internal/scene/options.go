// ABOUTME: Maps scene popup specs to popup.Options, kinds and built-in filters
// ABOUTME: Unknown kinds and filters are ErrInvalid at parse time

package scene

import (
	"fmt"
	"strings"

	"github.com/mauromedda/popgrid/pkg/popup"
)

var kinds = map[string]popup.Kind{
	"":             popup.KindNormal,
	"normal":       popup.KindNormal,
	"atcursor":     popup.KindAtCursor,
	"cursor":       popup.KindAtCursor,
	"notification": popup.KindNotification,
	"dialog":       popup.KindDialog,
	"menu":         popup.KindMenu,
}

func parseKind(s string) (popup.Kind, error) {
	k, ok := kinds[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: kind %q", ErrInvalid, s)
	}
	return k, nil
}

func parseFilter(s string) (popup.FilterFunc, error) {
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "menu":
		return popup.FilterMenu, nil
	case "yesno":
		return popup.FilterYesNo, nil
	}
	return nil, fmt.Errorf("%w: filter %q", ErrInvalid, s)
}

// options converts the spec. defaultZ applies when no zindex is given and
// the kind has no z-index of its own.
func (p PopupSpec) options(kind popup.Kind, defaultZ int) popup.Options {
	o := p.Options
	opts := popup.Options{
		Line:            o.Line,
		Col:             o.Col,
		Pos:             o.Pos,
		Fixed:           o.Fixed,
		MinWidth:        o.MinWidth,
		MinHeight:       o.MinHeight,
		MaxWidth:        o.MaxWidth,
		MaxHeight:       o.MaxHeight,
		FirstLine:       o.FirstLine,
		Title:           o.Title,
		Wrap:            o.Wrap,
		Drag:            o.Drag,
		Highlight:       o.Highlight,
		Padding:         o.Padding,
		Border:          o.Border,
		BorderHighlight: o.BorderHighlight,
		BorderChars:     o.BorderChars,
		ZIndex:          o.ZIndex,
		Hidden:          o.Hidden,
	}
	if opts.ZIndex == nil && defaultZ > 0 && (kind == popup.KindNormal || kind == popup.KindAtCursor) {
		opts.ZIndex = popup.Ptr(defaultZ)
	}
	if o.Moved != nil {
		opts.Moved = &popup.MovedOption{
			Kind:   o.Moved.Kind,
			Range:  o.Moved.Range,
			MinCol: o.Moved.MinCol,
			MaxCol: o.Moved.MaxCol,
		}
	}
	// validated by parseFilter in Scene.Validate
	opts.Filter, _ = parseFilter(o.Filter)
	if p.Global {
		opts.Tab = popup.Ptr(-1)
	}
	return opts
}
