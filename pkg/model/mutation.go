package model

import (
	"slices"

	"github.com/go-drift/listkit/pkg/errors"
)

// validate checks that n may become a child of c.
func (c *Container) validate(n Node) error {
	b := baseOf(n)
	if b == nil {
		return errors.ErrNilNode
	}
	if b.kind != KindCell && b.kind != KindContainer {
		return errors.ErrInvalidVariant
	}
	if b.id == c.id {
		return errors.ErrSelfReference
	}
	return nil
}

// isValidModel validates n and reports a failure through errors.Assert.
func (c *Container) isValidModel(op string, n Node) bool {
	err := c.validate(n)
	if err == nil {
		return true
	}
	errors.Assert(&errors.ModelError{
		Op:   op,
		Kind: errors.KindStructure,
		Tag:  c.tag,
		Err:  err,
	})
	return false
}

func indexOf(items []Node, n Node) int {
	return slices.IndexFunc(items, func(item Node) bool { return sameNode(item, n) })
}

// AddSubmodel appends n to the children.
func (c *Container) AddSubmodel(n Node) {
	if !c.isValidModel("model.AddSubmodel", n) {
		return
	}
	c.children.Mutate(func(items *[]Node) {
		*items = append(*items, n)
	})
}

// AddSubmodels appends nodes in order as one transaction. Invalid operands
// are reported and skipped; the rest are still appended.
func (c *Container) AddSubmodels(nodes ...Node) {
	valid := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if c.isValidModel("model.AddSubmodels", n) {
			valid = append(valid, n)
		}
	}
	if len(valid) == 0 {
		return
	}
	c.children.Mutate(func(items *[]Node) {
		*items = append(*items, valid...)
	})
}

// InsertSubmodelToFirst inserts n at position 0.
func (c *Container) InsertSubmodelToFirst(n Node) {
	if !c.isValidModel("model.InsertSubmodelToFirst", n) {
		return
	}
	c.children.Mutate(func(items *[]Node) {
		*items = slices.Insert(*items, 0, n)
	})
}

// InsertSubmodel inserts n at index. Like a slice insert, it panics when
// index is outside [0, SubmodelCount()].
func (c *Container) InsertSubmodel(n Node, index int) {
	if !c.isValidModel("model.InsertSubmodel", n) {
		return
	}
	c.children.Mutate(func(items *[]Node) {
		*items = slices.Insert(*items, index, n)
	})
}

// InsertSubmodelBefore inserts n immediately before the first child that is
// anchor. Nothing happens when anchor is not a child.
func (c *Container) InsertSubmodelBefore(n, anchor Node) {
	if !c.isValidModel("model.InsertSubmodelBefore", n) {
		return
	}
	c.insertRelative(n, anchor, 0)
}

// InsertSubmodelAfter inserts n immediately after the first child that is
// anchor, appending when anchor is last. Nothing happens when anchor is not
// a child.
func (c *Container) InsertSubmodelAfter(n, anchor Node) {
	if !c.isValidModel("model.InsertSubmodelAfter", n) {
		return
	}
	c.insertRelative(n, anchor, 1)
}

// RemoveSubmodel removes the first child that is n. Nothing happens when n
// is not a child.
func (c *Container) RemoveSubmodel(n Node) {
	if !c.isValidModel("model.RemoveSubmodel", n) {
		return
	}
	c.remove(n)
}

// RemoveAllSubmodels clears the children.
func (c *Container) RemoveAllSubmodels() {
	c.children.Mutate(func(items *[]Node) {
		clear(*items)
		*items = (*items)[:0]
	})
}

// TryInsertSubmodelBefore is InsertSubmodelBefore for strict callers: it
// returns the validation or lookup failure instead of asserting or ignoring it.
func (c *Container) TryInsertSubmodelBefore(n, anchor Node) error {
	return c.tryRelative("model.TryInsertSubmodelBefore", n, anchor, 0)
}

// TryInsertSubmodelAfter is the strict form of InsertSubmodelAfter.
func (c *Container) TryInsertSubmodelAfter(n, anchor Node) error {
	return c.tryRelative("model.TryInsertSubmodelAfter", n, anchor, 1)
}

// TryRemoveSubmodel is the strict form of RemoveSubmodel.
func (c *Container) TryRemoveSubmodel(n Node) error {
	const op = "model.TryRemoveSubmodel"
	if err := c.validate(n); err != nil {
		return &errors.ModelError{Op: op, Kind: errors.KindStructure, Tag: c.tag, Err: err}
	}
	if !c.remove(n) {
		return &errors.ModelError{Op: op, Kind: errors.KindLookup, Tag: c.tag, Err: errors.ErrAnchorNotFound}
	}
	return nil
}

func (c *Container) tryRelative(op string, n, anchor Node, offset int) error {
	if err := c.validate(n); err != nil {
		return &errors.ModelError{Op: op, Kind: errors.KindStructure, Tag: c.tag, Err: err}
	}
	if !c.insertRelative(n, anchor, offset) {
		return &errors.ModelError{Op: op, Kind: errors.KindLookup, Tag: c.tag, Err: errors.ErrAnchorNotFound}
	}
	return nil
}

// insertRelative inserts n at anchor's index plus offset. It reports whether
// anchor was found.
func (c *Container) insertRelative(n, anchor Node, offset int) bool {
	found := false
	c.children.Mutate(func(items *[]Node) {
		i := indexOf(*items, anchor)
		if i < 0 {
			return
		}
		found = true
		*items = slices.Insert(*items, i+offset, n)
	})
	return found
}

func (c *Container) remove(n Node) bool {
	found := false
	c.children.Mutate(func(items *[]Node) {
		i := indexOf(*items, n)
		if i < 0 {
			return
		}
		found = true
		*items = slices.Delete(*items, i, i+1)
	})
	return found
}

// Submodels returns a snapshot of the children.
func (c *Container) Submodels() []Node {
	return c.children.Snapshot()
}

// SubmodelCount returns the number of children.
func (c *Container) SubmodelCount() int {
	return c.children.Len()
}

// IndexOf returns the position of the first child that is n, or -1.
func (c *Container) IndexOf(n Node) int {
	i := -1
	c.children.Read(func(items []Node) {
		i = indexOf(items, n)
	})
	return i
}

// Contains reports whether n is a child of c.
func (c *Container) Contains(n Node) bool {
	return c.IndexOf(n) >= 0
}
