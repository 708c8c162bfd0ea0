// ABOUTME: Key type shared by the popup filters and the terminal hosts
// ABOUTME: ParseKey decodes raw terminal bytes; escape sequences go through the legacy table

package key

import "unicode/utf8"

// Key is one decoded keyboard event.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the keys panel filters and hosts distinguish.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEscape
	KeyCtrlC
	KeyCtrlL
	KeyUnknown
)

// ParseKey decodes one read from a raw-mode terminal.
func ParseKey(data string) Key {
	switch {
	case data == "":
		return Key{Type: KeyUnknown}
	case len(data) == 1:
		return parseSingleByte(data[0])
	case data[0] == 0x1b:
		return parseEscapeSequence(data)
	}
	r, _ := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d, b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b == 0x03:
		return Key{Type: KeyCtrlC, Ctrl: true}
	case b == 0x0c:
		return Key{Type: KeyCtrlL, Ctrl: true}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	case b >= 0x01 && b <= 0x1a:
		return Key{Type: KeyRune, Rune: rune('a' + b - 1), Ctrl: true}
	}
	return Key{Type: KeyUnknown}
}

func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}
	// Alt+key arrives as ESC followed by the key.
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}
	return Key{Type: KeyUnknown}
}

var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlL:     "Ctrl+L",
	KeyUnknown:   "Unknown",
}

// String returns a display form such as "Up", "Alt+x" or "Ctrl+w".
func (k Key) String() string {
	if k.Type != KeyRune {
		if name, ok := keyTypeNames[k.Type]; ok {
			return name
		}
		return "Unknown"
	}
	s := string(k.Rune)
	if k.Ctrl {
		s = "Ctrl+" + s
	}
	if k.Alt {
		s = "Alt+" + s
	}
	return s
}
