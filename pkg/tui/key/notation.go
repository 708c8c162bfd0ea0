// ABOUTME: Angle-bracket key notation for scripted input, e.g. "jj<CR>" or "<C-c>"
// ABOUTME: Sequence splits a script into keys; Notation renders a key back

package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrBadNotation is returned for an unknown or unterminated <...> name.
var ErrBadNotation = errors.New("bad key notation")

var notationNames = map[string]Key{
	"cr":       {Type: KeyEnter},
	"enter":    {Type: KeyEnter},
	"nl":       {Type: KeyEnter},
	"tab":      {Type: KeyTab},
	"s-tab":    {Type: KeyBackTab, Shift: true},
	"bs":       {Type: KeyBackspace},
	"del":      {Type: KeyDelete},
	"up":       {Type: KeyUp},
	"down":     {Type: KeyDown},
	"left":     {Type: KeyLeft},
	"right":    {Type: KeyRight},
	"home":     {Type: KeyHome},
	"end":      {Type: KeyEnd},
	"pageup":   {Type: KeyPageUp},
	"pagedown": {Type: KeyPageDown},
	"esc":      {Type: KeyEscape},
	"space":    {Type: KeyRune, Rune: ' '},
	"lt":       {Type: KeyRune, Rune: '<'},
	"c-c":      {Type: KeyCtrlC, Ctrl: true},
	"c-l":      {Type: KeyCtrlL, Ctrl: true},
}

// ParseNotation decodes a single key: one rune, or a bracketed name such
// as <Up>, <Esc>, <C-w> or <M-x>. Names are case-insensitive.
func ParseNotation(s string) (Key, error) {
	if !strings.HasPrefix(s, "<") || len(s) < 3 {
		r, n := utf8.DecodeRuneInString(s)
		if n == 0 || n != len(s) {
			return Key{}, fmt.Errorf("%q: %w", s, ErrBadNotation)
		}
		return Key{Type: KeyRune, Rune: r}, nil
	}
	if !strings.HasSuffix(s, ">") {
		return Key{}, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}
	name := s[1 : len(s)-1]
	if k, ok := notationNames[strings.ToLower(name)]; ok {
		return k, nil
	}

	mod, rest, found := strings.Cut(name, "-")
	r, n := utf8.DecodeRuneInString(rest)
	if !found || n == 0 || n != len(rest) {
		return Key{}, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}
	switch strings.ToLower(mod) {
	case "c":
		return Key{Type: KeyRune, Rune: r, Ctrl: true}, nil
	case "m", "a":
		return Key{Type: KeyRune, Rune: r, Alt: true}, nil
	}
	return Key{}, fmt.Errorf("%q: %w", s, ErrBadNotation)
}

// Sequence splits a script of runes and bracketed names into keys.
func Sequence(script string) ([]Key, error) {
	var keys []Key
	for script != "" {
		tok := script
		if script[0] == '<' {
			end := strings.IndexByte(script, '>')
			if end < 0 {
				return nil, fmt.Errorf("%q: %w", script, ErrBadNotation)
			}
			tok = script[:end+1]
		} else {
			_, n := utf8.DecodeRuneInString(script)
			tok = script[:n]
		}
		k, err := ParseNotation(tok)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		script = script[len(tok):]
	}
	return keys, nil
}

// Notation renders k in the form ParseNotation accepts.
func (k Key) Notation() string {
	switch k.Type {
	case KeyRune:
		switch {
		case k.Ctrl:
			return "<C-" + string(k.Rune) + ">"
		case k.Alt:
			return "<M-" + string(k.Rune) + ">"
		case k.Rune == ' ':
			return "<Space>"
		case k.Rune == '<':
			return "<lt>"
		}
		return string(k.Rune)
	case KeyEnter:
		return "<CR>"
	case KeyEscape:
		return "<Esc>"
	case KeyBackspace:
		return "<BS>"
	case KeyDelete:
		return "<Del>"
	case KeyBackTab:
		return "<S-Tab>"
	case KeyCtrlC:
		return "<C-c>"
	case KeyCtrlL:
		return "<C-l>"
	case KeyUnknown:
		return "<Unknown>"
	}
	return "<" + k.String() + ">"
}
