// ABOUTME: Panic guards that put the terminal back before the stack trace is printed
// ABOUTME: RestoreOnPanic exits the process; RecoverGoroutine does not

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

func restore(t Terminal) {
	_, _ = os.Stdout.Write([]byte(leaveScreen))
	_ = t.ExitRawMode()
}

// RestoreOnPanic is deferred by the goroutine that owns the terminal. On
// panic it leaves the preview screen, prints the trace and exits with 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restore(t)
	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine is deferred by background goroutines running while the
// terminal is raw. The main goroutine is left to shut down.
func RecoverGoroutine(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restore(t)
	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}
