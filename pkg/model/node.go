package model

import (
	"sync"
	"weak"

	"github.com/google/uuid"
)

// ID is the identity token assigned to a node at construction.
type ID uuid.UUID

func newID() ID {
	return ID(uuid.New())
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool {
	return id == ID(uuid.Nil)
}

// Kind identifies a node variant.
type Kind int

const (
	// KindInvalid is the kind of a node that was not built by NewCell or NewContainer.
	KindInvalid Kind = iota
	// KindCell is a leaf node.
	KindCell
	// KindContainer is a branch node.
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindContainer:
		return "container"
	default:
		return "invalid"
	}
}

// Node is an element of the model tree: a *Cell, a *Container, or a type
// embedding one of them.
type Node interface {
	// ID returns the identity token.
	ID() ID
	// Kind returns the node variant.
	Kind() Kind
	// Tag returns the concrete variant name given at construction.
	Tag() string

	base() *nodeBase
}

// nodeBase holds what both variants share.
type nodeBase struct {
	id   ID
	kind Kind
	tag  string

	// Exactly one of these points back at the enclosing variant.
	cell      *Cell
	container *Container

	parentMu sync.RWMutex
	parent   weak.Pointer[Container]
}

func (b *nodeBase) ID() ID {
	return b.id
}

func (b *nodeBase) Kind() Kind {
	return b.kind
}

func (b *nodeBase) Tag() string {
	return b.tag
}

// SetParent records p as the node's parent without keeping it alive.
// Pass nil to clear the link.
func (b *nodeBase) SetParent(p *Container) {
	b.parentMu.Lock()
	defer b.parentMu.Unlock()
	if p == nil {
		b.parent = weak.Pointer[Container]{}
		return
	}
	b.parent = weak.Make(p)
}

// Parent returns the parent container, or nil for roots and for parents
// that have already been released.
func (b *nodeBase) Parent() *Container {
	b.parentMu.RLock()
	defer b.parentMu.RUnlock()
	return b.parent.Value()
}

// baseOf returns the shared base of n, or nil when n is nil or wraps a nil variant.
func baseOf(n Node) *nodeBase {
	if n == nil {
		return nil
	}
	return n.base()
}

// sameNode reports whether a and b are the same node by identity.
func sameNode(a, b Node) bool {
	ab, bb := baseOf(a), baseOf(b)
	if ab == nil || bb == nil {
		return false
	}
	return ab.id == bb.id
}
