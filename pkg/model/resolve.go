package model

import (
	"github.com/go-drift/listkit/pkg/errors"
	"github.com/go-drift/listkit/pkg/layout"
)

// maxAncestorDepth bounds ancestor walks. Deeper chains are treated as cycles.
const maxAncestorDepth = 1 << 12

// walkAncestors calls visit for c and then each live parent until visit
// returns true or the chain ends.
func walkAncestors(c *Container, op string, visit func(*Container) bool) {
	for depth := 0; c != nil; depth++ {
		if depth == maxAncestorDepth {
			errors.Assert(&errors.ModelError{
				Op:   op,
				Kind: errors.KindStructure,
				Tag:  c.tag,
				Err:  errors.ErrParentCycle,
			})
			return
		}
		if visit(c) {
			return
		}
		c = c.Parent()
	}
}

// GetLayoutContext returns the spacing policy for c's children: the
// LayoutContextProvider override when self implements it, otherwise the
// stored value. It does not consult ancestors.
func (c *Container) GetLayoutContext() *layout.Context {
	if p, ok := c.self.(LayoutContextProvider); ok {
		return p.LayoutContext()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layoutContext
}

// GetCustomLayout resolves the layout strategy for c. The first container
// on the chain from c upward that has an override wins; when none has one
// the process default from layout.Default is returned. The result is never nil.
func (c *Container) GetCustomLayout() layout.CustomLayout {
	var resolved layout.CustomLayout
	walkAncestors(c, "model.Container.GetCustomLayout", func(n *Container) bool {
		resolved = n.localCustomLayout()
		return resolved != nil
	})
	if resolved == nil {
		return layout.Default()
	}
	return resolved
}

func (c *Container) localCustomLayout() layout.CustomLayout {
	if p, ok := c.self.(CustomLayoutProvider); ok {
		if l := p.CustomLayout(); l != nil {
			return l
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.customLayout
}
