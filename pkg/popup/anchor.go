// ABOUTME: Anchor variants and the per-anchor placement rule table
// ABOUTME: The resolver consumes anchorRules instead of branching on anchor identity

package popup

import "fmt"

// Anchor selects which corner of a panel the desired Line/Col refer to.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBotLeft
	AnchorBotRight
	AnchorCenter
)

// anchorNames lists the option keywords in lookup order.
var anchorNames = []struct {
	name   string
	anchor Anchor
}{
	{"botleft", AnchorBotLeft},
	{"topleft", AnchorTopLeft},
	{"botright", AnchorBotRight},
	{"topright", AnchorTopRight},
	{"center", AnchorCenter},
}

// ParseAnchor converts an option keyword such as "topleft" into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	for _, e := range anchorNames {
		if e.name == s {
			return e.anchor, nil
		}
	}
	return AnchorTopLeft, fmt.Errorf("pos %q: %w", s, ErrInvalidOption)
}

// String returns the option keyword for a.
func (a Anchor) String() string {
	for _, e := range anchorNames {
		if e.anchor == a {
			return e.name
		}
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// edge is the side of an axis a desired coordinate pins.
type edge int

const (
	edgeCenter edge = iota // axis is centered after sizing
	edgeStart              // coordinate is the top or left edge
	edgeEnd                // coordinate is the bottom or right edge
)

// placement is the rule row for one anchor.
type placement struct {
	vertical   edge
	horizontal edge
	// shiftLeft allows moving the panel left to fit a long unwrapped line.
	shiftLeft bool
}

var anchorRules = [...]placement{
	AnchorTopLeft:  {vertical: edgeStart, horizontal: edgeStart, shiftLeft: true},
	AnchorTopRight: {vertical: edgeStart, horizontal: edgeEnd},
	AnchorBotLeft:  {vertical: edgeEnd, horizontal: edgeStart, shiftLeft: true},
	AnchorBotRight: {vertical: edgeEnd, horizontal: edgeEnd},
	AnchorCenter:   {vertical: edgeCenter, horizontal: edgeCenter},
}

func (a Anchor) rule() placement {
	if a < 0 || int(a) >= len(anchorRules) {
		return anchorRules[AnchorTopLeft]
	}
	return anchorRules[a]
}
