// Package host declares what a rendering host hands to the model layer.
//
// The host owns every value referenced here. Containers keep them only as
// observation handles for issuing view operations and never extend their
// lifetime.
package host

import "github.com/go-drift/listkit/pkg/geometry"

// ViewOperator issues operations against the rendered collection view.
type ViewOperator interface {
	// ReloadData asks the host to re-read the tree and refresh every item.
	ReloadData()
	// ScrollToItem scrolls the flattened item at index into view.
	ScrollToItem(index int, animated bool)
}

// Controller is the hosting screen controller.
type Controller interface {
	// Title returns the screen title, used in diagnostics.
	Title() string
}

// ScrollSurface is the scrollable surface the collection is drawn into.
type ScrollSurface interface {
	ContentOffset() geometry.Offset
	SetContentOffset(offset geometry.Offset, animated bool)
}

// Refs bundles the host back-references a container may hold.
// Any field may be nil when the host does not provide it.
type Refs struct {
	View       ViewOperator
	Controller Controller
	Surface    ScrollSurface
}

// IsZero reports whether no reference is set.
func (r Refs) IsZero() bool {
	return r.View == nil && r.Controller == nil && r.Surface == nil
}
