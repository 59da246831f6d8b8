package model

// Load is the host's load request. The first call, or the first
// RecomputeLayout, flips the loaded latch and then runs
// ContainerModelDidLoad; every later call, concurrent or not, does nothing.
// It reports whether this call performed the transition.
func (c *Container) Load() bool {
	return c.markLoaded()
}

// RecomputeLayout drops the stored content frame and loads c if it has not
// been loaded yet. It reports whether this call performed the load.
func (c *Container) RecomputeLayout() bool {
	c.ClearContentFrame()
	return c.markLoaded()
}

// IsLoaded reports whether the load transition has happened.
func (c *Container) IsLoaded() bool {
	return c.loaded.Load()
}

func (c *Container) markLoaded() bool {
	if !c.loaded.CompareAndSwap(false, true) {
		return false
	}
	if h, ok := c.self.(LoadHook); ok {
		h.ContainerModelDidLoad()
	}
	return true
}

// Reload is the host's reload request. It runs CollectionViewDataWillReload
// on every call, independent of the loaded latch.
func (c *Container) Reload() {
	if h, ok := c.self.(ReloadHook); ok {
		h.CollectionViewDataWillReload()
	}
}

// NeedUpdateCellsData refreshes every cell in the subtree, depth first in
// child order. Each level iterates a snapshot taken on entry, so structural
// changes made by refresh hooks do not affect the walk in progress.
func (c *Container) NeedUpdateCellsData() {
	for _, child := range c.children.Snapshot() {
		b := child.base()
		switch {
		case b.container != nil:
			b.container.NeedUpdateCellsData()
		case b.cell != nil:
			b.cell.Refresh()
		}
	}
}
