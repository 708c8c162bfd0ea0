// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Each call returns a fresh Theme so callers may not share compiled state

package theme

import (
	"maps"
	"slices"
)

func defaultGroups() map[string]Spec {
	return map[string]Spec{
		Normal:            {},
		Pmenu:             {Fg: "252", Bg: "238"},
		PmenuSel:          {Fg: "235", Bg: "214", Bold: true},
		PopupSelected:     {Link: PmenuSel},
		PopupNotification: {Fg: "235", Bg: "150"},
		Title:             {Bold: true},
		StatusLine:        {Bold: true, Reverse: true},
		StatusLineNC:      {Reverse: true},
		MsgArea:           {},
	}
}

var builtins = map[string]func() map[string]Spec{
	"default": defaultGroups,
	"dark": func() map[string]Spec {
		g := defaultGroups()
		g[Normal] = Spec{Fg: "252", Bg: "234"}
		g[Pmenu] = Spec{Fg: "255", Bg: "60"}
		g[PmenuSel] = Spec{Fg: "234", Bg: "117", Bold: true}
		g[PopupNotification] = Spec{Fg: "234", Bg: "114"}
		g[StatusLine] = Spec{Fg: "234", Bg: "250", Bold: true}
		g[StatusLineNC] = Spec{Fg: "244", Bg: "236"}
		return g
	},
	"light": func() map[string]Spec {
		g := defaultGroups()
		g[Normal] = Spec{Fg: "235", Bg: "255"}
		g[Pmenu] = Spec{Fg: "235", Bg: "253"}
		g[PmenuSel] = Spec{Fg: "255", Bg: "25", Bold: true}
		g[PopupNotification] = Spec{Fg: "235", Bg: "194"}
		g[StatusLine] = Spec{Fg: "255", Bg: "240", Bold: true}
		g[StatusLineNC] = Spec{Fg: "240", Bg: "252"}
		return g
	},
	"monochrome": func() map[string]Spec {
		return map[string]Spec{
			Normal:            {},
			Pmenu:             {Reverse: true},
			PmenuSel:          {Bold: true},
			PopupSelected:     {Link: PmenuSel},
			PopupNotification: {Reverse: true, Bold: true},
			Title:             {Bold: true},
			StatusLine:        {Reverse: true, Bold: true},
			StatusLineNC:      {Reverse: true},
			MsgArea:           {},
		}
	},
}

// Default returns the default theme.
func Default() *Theme {
	return New("default", defaultGroups())
}

// Builtin returns the named built-in theme, or nil.
func Builtin(name string) *Theme {
	groups, ok := builtins[name]
	if !ok {
		return nil
	}
	return New(name, groups())
}

// BuiltinNames lists the built-in themes in sorted order.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}
