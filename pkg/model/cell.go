package model

import (
	"github.com/go-drift/listkit/pkg/bus"
	"github.com/go-drift/listkit/pkg/errors"
)

// RefreshHook is implemented by cell types that reload their data when the
// host asks a subtree to refresh.
type RefreshHook interface {
	RefreshData()
}

// Cell is a leaf node.
type Cell struct {
	nodeBase
	self any

	// OnRefresh runs on Refresh when self does not implement RefreshHook.
	OnRefresh func()
}

// NewCell creates a cell. tag names the concrete variant; self is the value
// that embeds the cell, or nil when the cell is used directly.
func NewCell(tag string, self any) *Cell {
	if tag == "" {
		tag = "Cell"
	}
	c := &Cell{}
	c.id = newID()
	c.kind = KindCell
	c.tag = tag
	c.cell = c
	c.self = self
	if c.self == nil {
		c.self = c
	}
	return c
}

func (c *Cell) base() *nodeBase {
	if c == nil {
		return nil
	}
	return &c.nodeBase
}

// Refresh runs the cell's refresh hook. A panic in the hook is recovered
// and reported.
func (c *Cell) Refresh() {
	defer errors.Recover("model.Cell.Refresh[" + c.tag + "]")
	if h, ok := c.self.(RefreshHook); ok {
		h.RefreshData()
		return
	}
	if c.OnRefresh != nil {
		c.OnRefresh()
	}
}

// Bus returns the bus of the cell's parent container, or nil when the cell
// has no live parent.
func (c *Cell) Bus() *bus.Bus {
	if p := c.Parent(); p != nil {
		return p.Bus()
	}
	return nil
}
