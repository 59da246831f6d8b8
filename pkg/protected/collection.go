// Package protected provides a reader/writer-locked ordered collection.
//
// A Collection is written by its owner and read by a rendering pass running
// on another goroutine. Readers always see the result of some completed
// write, never a partially applied one.
package protected

import (
	"slices"
	"sync"
)

// Collection is an ordered sequence of T guarded by a sync.RWMutex.
// The zero value is an empty collection ready to use.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
}

// New creates a collection holding a copy of items.
func New[T any](items ...T) *Collection[T] {
	return &Collection[T]{items: slices.Clone(items)}
}

// Snapshot returns a copy of the current contents.
// The returned slice is owned by the caller.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the current number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Mutate runs transform with exclusive access to the backing slice.
// transform must not retain the pointer or call back into c.
func (c *Collection[T]) Mutate(transform func(items *[]T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	transform(&c.items)
}

// Read runs fn with shared access to the backing slice.
// fn must not modify or retain items.
func (c *Collection[T]) Read(fn func(items []T)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.items)
}
