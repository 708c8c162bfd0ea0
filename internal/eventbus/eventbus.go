// ABOUTME: Typed event bus that fans popup lifecycle notices out to the CLI and host
// ABOUTME: Handlers run synchronously in subscription order; a bounded history keeps recent events

package eventbus

import (
	"slices"
	"sync"
)

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscription[T any] struct {
	id int
	h  Handler[T]
}

// Bus delivers events to registered handlers and remembers the last few.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    []subscription[T]
	nextID  int
	history []T
	keep    int
}

// New creates a bus without history.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// NewWithHistory creates a bus that keeps the last n published events.
func NewWithHistory[T any](n int) *Bus[T] {
	return &Bus[T]{keep: max(n, 0)}
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, h: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		b.subs = slices.DeleteFunc(b.subs, func(s subscription[T]) bool { return s.id == id })
		b.mu.Unlock()
	}
}

// Publish sends an event to all handlers in subscription order. Handlers
// may subscribe, unsubscribe or publish from inside the callback.
func (b *Bus[T]) Publish(event T) {
	b.mu.Lock()
	if b.keep > 0 {
		if len(b.history) == b.keep {
			b.history = slices.Delete(b.history, 0, 1)
		}
		b.history = append(b.history, event)
	}
	snapshot := make([]Handler[T], len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.h
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h(event)
	}
}

// History returns the retained events, oldest first.
func (b *Bus[T]) History() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.history)
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
