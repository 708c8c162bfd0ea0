// ABOUTME: Small generic LRU map backing the width memo
// ABOUTME: Reads take the read lock; promotion and insertion take the write lock

package width

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

type lru[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*list.Element
	order *list.List
	size  int
}

func newLRU[K comparable, V any](size int) *lru[K, V] {
	return &lru[K, V]{
		items: make(map[K]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *lru[K, V]) get(key K) (V, bool) {
	c.mu.RLock()
	elem, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	c.mu.Lock()
	c.order.MoveToFront(elem)
	c.mu.Unlock()
	return elem.Value.(lruEntry[K, V]).value, true
}

func (c *lru[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return
	}
	if c.order.Len() >= c.size {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry[K, V]).key)
		}
	}
	c.items[key] = c.order.PushFront(lruEntry[K, V]{key: key, value: value})
}

func (c *lru[K, V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
