// ABOUTME: Conversion between popup keys and bubbletea key messages
// ABOUTME: Raw terminal keys are matched against bindings by their bubbletea names

package keybindings

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/popgrid/pkg/tui/key"
)

var keyNames = map[key.KeyType]string{
	key.KeyEnter:     "enter",
	key.KeyTab:       "tab",
	key.KeyBackTab:   "shift+tab",
	key.KeyBackspace: "backspace",
	key.KeyDelete:    "delete",
	key.KeyUp:        "up",
	key.KeyDown:      "down",
	key.KeyLeft:      "left",
	key.KeyRight:     "right",
	key.KeyHome:      "home",
	key.KeyEnd:       "end",
	key.KeyPageUp:    "pgup",
	key.KeyPageDown:  "pgdown",
	key.KeyEscape:    "esc",
	key.KeyCtrlC:     "ctrl+c",
	key.KeyCtrlL:     "ctrl+l",
}

var teaKeys = map[tea.KeyType]key.Key{
	tea.KeyEnter:     {Type: key.KeyEnter},
	tea.KeyTab:       {Type: key.KeyTab},
	tea.KeyShiftTab:  {Type: key.KeyBackTab, Shift: true},
	tea.KeyBackspace: {Type: key.KeyBackspace},
	tea.KeyDelete:    {Type: key.KeyDelete},
	tea.KeyUp:        {Type: key.KeyUp},
	tea.KeyDown:      {Type: key.KeyDown},
	tea.KeyLeft:      {Type: key.KeyLeft},
	tea.KeyRight:     {Type: key.KeyRight},
	tea.KeyHome:      {Type: key.KeyHome},
	tea.KeyEnd:       {Type: key.KeyEnd},
	tea.KeyPgUp:      {Type: key.KeyPageUp},
	tea.KeyPgDown:    {Type: key.KeyPageDown},
	tea.KeyEsc:       {Type: key.KeyEscape},
	tea.KeySpace:     {Type: key.KeyRune, Rune: ' '},
	tea.KeyCtrlC:     {Type: key.KeyCtrlC, Ctrl: true},
	tea.KeyCtrlL:     {Type: key.KeyCtrlL, Ctrl: true},
}

// Name returns the bubbletea name of k, such as "up", "ctrl+x" or "alt+j".
func Name(k key.Key) string {
	var s string
	switch {
	case k.Type != key.KeyRune:
		s = keyNames[k.Type]
	case k.Ctrl:
		s = "ctrl+" + string(k.Rune)
	default:
		s = string(k.Rune)
	}
	if k.Alt && s != "" {
		s = "alt+" + s
	}
	return s
}

type keyName string

func (n keyName) String() string { return string(n) }

// MatchKey returns the action bound to a decoded terminal key.
func (m *Manager) MatchKey(k key.Key) (Action, bool) {
	name := Name(k)
	if name == "" {
		return "", false
	}
	return m.Match(keyName(name))
}

// FromTea converts a bubbletea key message to the key popups filter on.
// ok is false for keys popups cannot see, such as multi-rune pastes.
func FromTea(msg tea.KeyMsg) (k key.Key, ok bool) {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 || msg.Paste {
			return key.Key{}, false
		}
		return key.Key{Type: key.KeyRune, Rune: msg.Runes[0], Alt: msg.Alt}, true
	}
	if k, ok = teaKeys[msg.Type]; ok {
		k.Alt = msg.Alt
		return k, true
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return key.Key{Type: key.KeyRune, Rune: rune('a' + msg.Type - tea.KeyCtrlA), Ctrl: true, Alt: msg.Alt}, true
	}
	return key.Key{}, false
}
