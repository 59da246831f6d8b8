// Package model defines the node tree a rendering host reads to build a
// scrollable collection view.
//
// # Nodes
//
// A tree is made of two node variants. A [Cell] is a leaf that knows how to
// refresh its data. A [Container] owns an ordered list of child nodes, an
// optional layout policy and a lazily created [bus.Bus] shared by its
// subtree. Every node carries an [ID] assigned at construction; membership,
// lookups and removals compare IDs, never field values.
//
// Concrete node types embed *Cell or *Container and pass themselves as the
// self argument so the base can dispatch hooks to them:
//
//	type FeedSection struct {
//	    *model.Container
//	}
//
//	func NewFeedSection() *FeedSection {
//	    s := &FeedSection{}
//	    s.Container = model.NewContainer("FeedSection", s)
//	    return s
//	}
//
//	func (s *FeedSection) ContainerModelDidLoad() {
//	    s.AddSubmodel(model.NewCell("Header", nil))
//	}
//
// # Concurrency
//
// Child lists are stored in a [protected.Collection]; every mutation is a
// single write transaction and every read is a snapshot, so a host may walk
// the tree while another goroutine edits it.
//
// # Misuse
//
// Adding a node to itself, or adding something that is not a cell or a
// container, is reported through [errors.Assert] and otherwise ignored.
// Anchor misses in the before/after/remove operations are silent; the Try
// variants return [errors.ErrAnchorNotFound] instead.
//
// # Parents
//
// Mutations never assign the parent link. Callers that rely on ancestor
// layout resolution or host lookup must call SetParent themselves.
package model
