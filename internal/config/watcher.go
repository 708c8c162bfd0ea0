// ABOUTME: fsnotify-based file watcher used to hot reload scene and config files
// ABOUTME: Watches parent directories so editors that replace files by rename are seen

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mauromedda/popgrid/internal/log"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher calls onChange once per burst of writes to any watched file.
type Watcher struct {
	paths    map[string]bool
	dirs     []string
	onChange func(path string)

	mu       sync.Mutex
	debounce time.Duration
}

// NewWatcher creates a watcher for paths. Nothing is watched until Run.
func NewWatcher(paths []string, onChange func(path string)) *Watcher {
	w := &Watcher{
		paths:    make(map[string]bool, len(paths)),
		onChange: onChange,
		debounce: defaultDebounce,
	}
	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.paths[abs] = true
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// SetDebounce overrides the quiet period that ends a burst (100ms).
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w.mu.Lock()
	debounce := w.debounce
	w.mu.Unlock()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	var pending string

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug("watch: %s %s", ev.Op, ev.Name)
			pending = ev.Name
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch: %v", err)
		case <-timer.C:
			if pending != "" {
				w.onChange(pending)
				pending = ""
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return w.paths[filepath.Clean(ev.Name)]
}
