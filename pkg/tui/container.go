// ABOUTME: Container stacks the base components top to bottom and tracks the focused window
// ABOUTME: Guarded by an RWMutex so a render can run while input handlers mutate it

package tui

import (
	"slices"
	"sync"
)

// Container holds the base components in display order.
type Container struct {
	mu       sync.RWMutex
	children []Component
	focus    int // window id, 0 for none
}

// NewContainer creates an empty Container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends a component. The first window added gets the focus.
func (c *Container) Add(comp Component) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = append(c.children, comp)
	if w, ok := comp.(Window); ok && c.focus == 0 {
		c.focus = w.ID()
	}
}

// Remove deletes comp and reports whether it was present.
func (c *Container) Remove(comp Component) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.Index(c.children, comp)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	if w, ok := comp.(Window); ok && w.ID() == c.focus {
		c.focus = 0
		for _, child := range c.children {
			if w, ok := child.(Window); ok {
				c.focus = w.ID()
				break
			}
		}
	}
	return true
}

// Clear removes all children.
func (c *Container) Clear() {
	c.mu.Lock()
	c.children = c.children[:0]
	c.focus = 0
	c.mu.Unlock()
}

// Children returns a snapshot of the children.
func (c *Container) Children() []Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.children)
}

// Window returns the window with the given id.
func (c *Container) Window(id int) (Window, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, child := range c.children {
		if w, ok := child.(Window); ok && w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// Focus moves the focus to the window with the given id.
func (c *Container) Focus(id int) bool {
	if _, ok := c.Window(id); !ok {
		return false
	}
	c.mu.Lock()
	c.focus = id
	c.mu.Unlock()
	return true
}

// Focused returns the id of the focused window, or 0.
func (c *Container) Focused() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.focus
}

// Render renders all children in order.
func (c *Container) Render(out *RenderBuffer, width int) {
	for _, child := range c.Children() {
		child.Render(out, width)
	}
}

// Invalidate invalidates all children.
func (c *Container) Invalidate() {
	for _, child := range c.Children() {
		child.Invalidate()
	}
}
