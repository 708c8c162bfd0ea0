// ABOUTME: Highlight groups for the popup grid: named specs mapped to lipgloss styles
// ABOUTME: Groups may link to another group; unknown names fall back to Normal

package theme

import (
	"fmt"
	"maps"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Group names used by the grid renderer.
const (
	Normal            = "Normal"
	Pmenu             = "Pmenu"
	PmenuSel          = "PmenuSel"
	PopupSelected     = "PopupSelected"
	PopupNotification = "PopupNotification"
	Title             = "Title"
	StatusLine        = "StatusLine"
	StatusLineNC      = "StatusLineNC"
	MsgArea           = "MsgArea"
)

const maxLinkDepth = 8

// Spec describes one highlight group. Colors are lipgloss color strings:
// an ANSI index ("0"-"255") or a hex value ("#rgb", "#rrggbb").
type Spec struct {
	Fg        string `yaml:"fg,omitempty"`
	Bg        string `yaml:"bg,omitempty"`
	Bold      bool   `yaml:"bold,omitempty"`
	Italic    bool   `yaml:"italic,omitempty"`
	Underline bool   `yaml:"underline,omitempty"`
	Reverse   bool   `yaml:"reverse,omitempty"`
	// Link makes the group an alias of another one; other fields are ignored.
	Link string `yaml:"link,omitempty"`
}

func (s Spec) style() lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Reverse(s.Reverse)
	if s.Fg != "" {
		st = st.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Bg != "" {
		st = st.Background(lipgloss.Color(s.Bg))
	}
	return st
}

// Theme is a named set of highlight groups. It is immutable once in use.
type Theme struct {
	Name   string
	groups map[string]Spec

	once   sync.Once
	styles map[string]lipgloss.Style
}

// New returns a theme holding a copy of groups.
func New(name string, groups map[string]Spec) *Theme {
	return &Theme{Name: name, groups: maps.Clone(groups)}
}

// Group returns the spec stored under name, without following links.
func (t *Theme) Group(name string) (Spec, bool) {
	s, ok := t.groups[name]
	return s, ok
}

// Groups returns a copy of every group spec.
func (t *Theme) Groups() map[string]Spec {
	return maps.Clone(t.groups)
}

// resolve follows links from name to a concrete spec.
func (t *Theme) resolve(name string) (Spec, error) {
	seen := name
	for range maxLinkDepth {
		s, ok := t.groups[name]
		if !ok {
			return Spec{}, fmt.Errorf("highlight group %q: %w", name, ErrUnknownGroup)
		}
		if s.Link == "" {
			return s, nil
		}
		name = s.Link
	}
	return Spec{}, fmt.Errorf("highlight group %q: %w", seen, ErrLinkLoop)
}

func (t *Theme) compile() {
	t.styles = make(map[string]lipgloss.Style, len(t.groups))
	for name := range t.groups {
		if s, err := t.resolve(name); err == nil {
			t.styles[name] = s.style()
		}
	}
}

// Style returns the style of a group. An empty or unknown name, or a
// broken link, yields the Normal style.
func (t *Theme) Style(name string) lipgloss.Style {
	t.once.Do(t.compile)
	if st, ok := t.styles[name]; ok {
		return st
	}
	if st, ok := t.styles[Normal]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Render styles text with a group.
func (t *Theme) Render(name, text string) string {
	return t.Style(name).Render(text)
}
