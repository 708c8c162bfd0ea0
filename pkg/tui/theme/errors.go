// ABOUTME: Sentinel errors for theme lookup and validation
// ABOUTME: Wrapped with the offending group or file name

package theme

import "errors"

var (
	ErrUnknownGroup = errors.New("unknown highlight group")
	ErrLinkLoop     = errors.New("highlight link loop")
	ErrBadColor     = errors.New("invalid color")
	ErrUnknownTheme = errors.New("unknown theme")
)
