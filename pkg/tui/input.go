// ABOUTME: Decodes raw terminal reads into popup events, including SGR mouse reports
// ABOUTME: Only the left button is reported; wheel and other buttons are dropped

package tui

import (
	"strconv"
	"strings"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/key"
)

const sgrMousePrefix = "\x1b[<"

// DecodeInput turns one read into an event. ok is false for input that
// carries no event for the popups.
func DecodeInput(data string) (ev popup.Event, ok bool) {
	if strings.HasPrefix(data, sgrMousePrefix) {
		return decodeSGRMouse(data)
	}
	k := key.ParseKey(data)
	if k.Type == key.KeyUnknown {
		return popup.Event{}, false
	}
	return popup.KeyEvent(k), true
}

// decodeSGRMouse parses ESC [ < button ; col ; row (M|m), 1-based.
func decodeSGRMouse(data string) (popup.Event, bool) {
	body := data[len(sgrMousePrefix):]
	if len(body) < 6 {
		return popup.Event{}, false
	}
	final := body[len(body)-1]
	if final != 'M' && final != 'm' {
		return popup.Event{}, false
	}
	fields := strings.Split(body[:len(body)-1], ";")
	if len(fields) != 3 {
		return popup.Event{}, false
	}
	var n [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return popup.Event{}, false
		}
		n[i] = v
	}
	button, col, row := n[0], n[1]-1, n[2]-1

	const motion = 32
	if button&^motion != 0 {
		// not the left button, or a modifier is held
		return popup.Event{}, false
	}
	action := popup.MousePress
	switch {
	case final == 'm':
		action = popup.MouseRelease
	case button&motion != 0:
		action = popup.MouseDrag
	}
	return popup.MouseEvent(action, row, col), true
}
