// ABOUTME: Normalized input events delivered to panel filters
// ABOUTME: Keys reuse the tui key type; mouse events carry grid coordinates

package popup

import (
	"fmt"

	"github.com/mauromedda/popgrid/pkg/tui/key"
)

// EventKind distinguishes key from mouse events.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
)

// MouseAction is what the pointer did.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
)

// Mouse is a pointer event at a 0-based grid cell.
type Mouse struct {
	Row    int
	Col    int
	Action MouseAction
}

// Event is one decoded input event.
type Event struct {
	Kind  EventKind
	Key   key.Key
	Mouse Mouse
}

// KeyEvent wraps a key.
func KeyEvent(k key.Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// RuneEvent is a key event for a printable rune.
func RuneEvent(r rune) Event {
	return KeyEvent(key.Key{Type: key.KeyRune, Rune: r})
}

// MouseEvent builds a pointer event.
func MouseEvent(action MouseAction, row, col int) Event {
	return Event{Kind: EventMouse, Mouse: Mouse{Row: row, Col: col, Action: action}}
}

// IsMouse reports whether e is a pointer event.
func (e Event) IsMouse() bool { return e.Kind == EventMouse }

// IsRune reports whether e is one of the given printable runes without
// modifiers.
func (e Event) IsRune(runes ...rune) bool {
	if e.Kind != EventKey || e.Key.Type != key.KeyRune || e.Key.Alt || e.Key.Ctrl {
		return false
	}
	for _, r := range runes {
		if e.Key.Rune == r {
			return true
		}
	}
	return false
}

// Is reports whether e is a key of one of the given types.
func (e Event) Is(types ...key.KeyType) bool {
	if e.Kind != EventKey {
		return false
	}
	for _, t := range types {
		if e.Key.Type == t {
			return true
		}
	}
	return false
}

func (e Event) String() string {
	if e.Kind == EventMouse {
		return fmt.Sprintf("mouse(%d,%d,%d)", e.Mouse.Row, e.Mouse.Col, e.Mouse.Action)
	}
	return e.Key.String()
}
