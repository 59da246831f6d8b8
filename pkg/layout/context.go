// Package layout defines the layout policy values a container can carry and
// the process-wide default strategy used when no container in an ancestor
// chain supplies an override.
//
// Geometry is computed by an external layout engine. This package only
// names strategies and stores the spacing policy they consume.
package layout

import "github.com/go-drift/listkit/pkg/geometry"

// Context is the local spacing policy for a container's children.
type Context struct {
	// Insets is the padding between the container's frame and its children.
	Insets geometry.EdgeInsets
	// LineSpacing is the gap between consecutive rows.
	LineSpacing float64
	// InteritemSpacing is the gap between items on the same row.
	InteritemSpacing float64
	// Columns is the number of items per row. Zero means one.
	Columns int
}

// ColumnCount returns Columns, treating values below one as one.
func (c *Context) ColumnCount() int {
	if c == nil || c.Columns < 1 {
		return 1
	}
	return c.Columns
}
