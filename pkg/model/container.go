package model

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/listkit/pkg/bus"
	"github.com/go-drift/listkit/pkg/geometry"
	"github.com/go-drift/listkit/pkg/host"
	"github.com/go-drift/listkit/pkg/layout"
	"github.com/go-drift/listkit/pkg/protected"
)

// LoadHook is implemented by container types that populate themselves once,
// the first time the host loads them or asks them to recompute layout.
type LoadHook interface {
	ContainerModelDidLoad()
}

// ReloadHook is implemented by container types that want to know every
// time the host is about to reload the collection.
type ReloadHook interface {
	CollectionViewDataWillReload()
}

// LayoutContextProvider overrides the stored layout context.
type LayoutContextProvider interface {
	LayoutContext() *layout.Context
}

// CustomLayoutProvider overrides the stored custom layout. Returning nil
// falls through to the stored value and then the ancestors.
type CustomLayoutProvider interface {
	CustomLayout() layout.CustomLayout
}

// Container is a branch node that owns an ordered list of children.
type Container struct {
	nodeBase
	self any

	children protected.Collection[Node]
	loaded   atomic.Bool
	hidden   atomic.Bool

	mu            sync.RWMutex
	contentFrame  *geometry.Rect
	layoutContext *layout.Context
	customLayout  layout.CustomLayout
	host          host.Refs

	busOnce sync.Once
	bus     *bus.Bus
}

// NewContainer creates an empty container. tag names the concrete variant
// and becomes the tag of its bus; self is the value that embeds the
// container and implements its hooks, or nil when the container is used
// directly.
func NewContainer(tag string, self any) *Container {
	if tag == "" {
		tag = "Container"
	}
	c := &Container{}
	c.id = newID()
	c.kind = KindContainer
	c.tag = tag
	c.container = c
	c.self = self
	if c.self == nil {
		c.self = c
	}
	return c
}

func (c *Container) base() *nodeBase {
	if c == nil {
		return nil
	}
	return &c.nodeBase
}

// Self returns the value passed as self to NewContainer, or c.
func (c *Container) Self() any {
	return c.self
}

// IsHidden reports whether the host should skip this container.
func (c *Container) IsHidden() bool {
	return c.hidden.Load()
}

// SetHidden sets the visibility flag.
func (c *Container) SetHidden(hidden bool) {
	c.hidden.Store(hidden)
}

// ContentFrame returns the frame last stored by the host.
func (c *Container) ContentFrame() (geometry.Rect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.contentFrame == nil {
		return geometry.Rect{}, false
	}
	return *c.contentFrame, true
}

// SetContentFrame stores a frame computed by the host for reuse.
func (c *Container) SetContentFrame(r geometry.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentFrame = &r
}

// ClearContentFrame drops the stored frame.
func (c *Container) ClearContentFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentFrame = nil
}

// SetLayoutContext stores the local spacing policy.
func (c *Container) SetLayoutContext(ctx *layout.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layoutContext = ctx
}

// SetCustomLayout stores a local layout override. Pass nil to inherit again.
func (c *Container) SetCustomLayout(l layout.CustomLayout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customLayout = l
}

// Bus returns the container's bus, creating it on first use.
func (c *Container) Bus() *bus.Bus {
	c.busOnce.Do(func() {
		c.bus = bus.New(c.tag)
	})
	return c.bus
}

// AttachHost stores the host back-references. The container never owns them.
func (c *Container) AttachHost(refs host.Refs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.host = refs
}

// DetachHost clears the host back-references.
func (c *Container) DetachHost() {
	c.AttachHost(host.Refs{})
}

// Host returns the nearest host references on the ancestor chain, starting
// with c. The result is zero when no container on the chain has any.
func (c *Container) Host() host.Refs {
	var refs host.Refs
	walkAncestors(c, "model.Container.Host", func(n *Container) bool {
		n.mu.RLock()
		refs = n.host
		n.mu.RUnlock()
		return !refs.IsZero()
	})
	return refs
}

// RequestReload asks the host to reload the collection. It reports false
// when no view operator is reachable.
func (c *Container) RequestReload() bool {
	view := c.Host().View
	if view == nil {
		return false
	}
	view.ReloadData()
	return true
}

// ScrollToSubmodel asks the host to scroll to n, addressed by its position
// among c's children. It reports false when n is not a child of c or no
// view operator is reachable.
func (c *Container) ScrollToSubmodel(n Node, animated bool) bool {
	i := c.IndexOf(n)
	if i < 0 {
		return false
	}
	view := c.Host().View
	if view == nil {
		return false
	}
	view.ScrollToItem(i, animated)
	return true
}
