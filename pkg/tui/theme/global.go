// ABOUTME: Process-wide active theme behind an atomic pointer
// ABOUTME: Current never returns nil; Select switches to a builtin by name

package theme

import (
	"fmt"
	"sync/atomic"
)

var current atomic.Pointer[Theme]

func init() {
	current.Store(Default())
}

// Current returns the active theme.
func Current() *Theme {
	return current.Load()
}

// Set replaces the active theme. A nil theme restores the default.
func Set(t *Theme) {
	if t == nil {
		t = Default()
	}
	current.Store(t)
}

// Select makes the named builtin theme active.
func Select(name string) error {
	t := Builtin(name)
	if t == nil {
		return fmt.Errorf("%q: %w", name, ErrUnknownTheme)
	}
	Set(t)
	return nil
}
