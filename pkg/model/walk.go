package model

// Walk visits root and its descendants depth first in child order. Each
// container's children are read through a snapshot. Returning false from
// visit skips the node's children.
func Walk(root Node, visit func(n Node, depth int) bool) {
	walk(root, 0, visit)
}

func walk(n Node, depth int, visit func(Node, int) bool) {
	b := baseOf(n)
	if b == nil {
		return
	}
	if !visit(n, depth) || b.container == nil {
		return
	}
	for _, child := range b.container.Submodels() {
		walk(child, depth+1, visit)
	}
}

// Find returns the node in root's subtree with the given id.
func Find(root Node, id ID) (Node, bool) {
	var found Node
	Walk(root, func(n Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// VisibleCells returns the cells a host would render for root: every cell
// in the subtree in order, skipping hidden containers and their descendants.
func VisibleCells(root Node) []Node {
	var cells []Node
	Walk(root, func(n Node, _ int) bool {
		b := n.base()
		if b.container != nil {
			return !b.container.IsHidden()
		}
		cells = append(cells, n)
		return false
	})
	return cells
}

// AsContainer returns the *Container behind n.
func AsContainer(n Node) (*Container, bool) {
	b := baseOf(n)
	if b == nil || b.container == nil {
		return nil, false
	}
	return b.container, true
}

// AsCell returns the *Cell behind n.
func AsCell(n Node) (*Cell, bool) {
	b := baseOf(n)
	if b == nil || b.cell == nil {
		return nil, false
	}
	return b.cell, true
}
