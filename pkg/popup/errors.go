// ABOUTME: Sentinel errors for panel operations
// ABOUTME: Callers match with errors.Is; all conditions are recoverable

package popup

import "errors"

var (
	// ErrNotFound reports an id that names no live panel.
	ErrNotFound = errors.New("popup not found")

	// ErrNotPanel reports an id that names a host window which is not a panel.
	ErrNotPanel = errors.New("window is not a popup")

	// ErrInvalidOption reports an option value that was ignored.
	ErrInvalidOption = errors.New("invalid popup option")

	// ErrUnsupported reports a create request that was refused; no panel
	// was registered.
	ErrUnsupported = errors.New("unsupported popup request")

	// ErrAlloc reports that a panel or its content store could not be created.
	ErrAlloc = errors.New("cannot allocate popup")
)
