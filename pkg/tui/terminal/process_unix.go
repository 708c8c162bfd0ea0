// ABOUTME: Unix SIGWINCH listener for ProcessTerminal resize events
// ABOUTME: The returned stop func unregisters the signal and ends the goroutine

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

func (t *ProcessTerminal) startResizeListener() func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer RecoverGoroutine(t)
		for {
			select {
			case <-done:
				return
			case <-sigCh:
				t.notifyResize()
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
