// Package hosttest provides an in-memory host for tests and tools.
package hosttest

import (
	"sync"

	"github.com/go-drift/listkit/pkg/geometry"
)

// Recorder implements host.ViewOperator, host.Controller and
// host.ScrollSurface and records every call it receives.
type Recorder struct {
	Name string

	mu      sync.Mutex
	reloads int
	scrolls []int
	offset  geometry.Offset
}

// ReloadData counts a reload request.
func (r *Recorder) ReloadData() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloads++
}

// ScrollToItem records the requested index.
func (r *Recorder) ScrollToItem(index int, animated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrolls = append(r.scrolls, index)
}

// Title returns Name.
func (r *Recorder) Title() string {
	return r.Name
}

// ContentOffset returns the last offset set.
func (r *Recorder) ContentOffset() geometry.Offset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}

// SetContentOffset stores offset.
func (r *Recorder) SetContentOffset(offset geometry.Offset, animated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = offset
}

// Reloads returns how many times ReloadData was called.
func (r *Recorder) Reloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads
}

// Scrolls returns the indexes passed to ScrollToItem, in call order.
func (r *Recorder) Scrolls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.scrolls...)
}
