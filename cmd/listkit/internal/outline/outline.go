// Package outline prints a model tree as an indented, colored outline.
package outline

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/go-drift/listkit/pkg/model"
)

// Texter is implemented by cells that have a display label.
type Texter interface {
	Text() string
}

var (
	containerStyle = color.New(color.Bold)
	layoutStyle    = color.New(color.FgCyan)
	stateStyle     = color.New(color.Faint, color.Italic)
	cellStyle      = color.New(color.FgHiWhite)
	selectedStyle  = color.New(color.FgHiYellow)
)

// Write prints root and its descendants to w. Hidden containers are shown
// but their children are not.
func Write(w io.Writer, root model.Node) error {
	var err error
	model.Walk(root, func(n model.Node, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		if c, ok := model.AsContainer(n); ok {
			_, err = fmt.Fprintf(w, "%s%s %s%s\n", indent,
				containerStyle.Sprint(c.Tag()),
				layoutStyle.Sprintf("[%s]", describeLayout(c)),
				stateStyle.Sprint(describeState(c)),
			)
			return !c.IsHidden()
		}
		_, err = fmt.Fprintf(w, "%s- %s\n", indent, cellLabel(n))
		return false
	})
	return err
}

func describeLayout(c *model.Container) string {
	s := c.GetCustomLayout().Name()
	if ctx := c.GetLayoutContext(); ctx != nil {
		s += fmt.Sprintf(" columns=%d", ctx.ColumnCount())
	}
	return s
}

func describeState(c *model.Container) string {
	var flags []string
	if c.IsLoaded() {
		flags = append(flags, "loaded")
	}
	if c.IsHidden() {
		flags = append(flags, "hidden")
	}
	if len(flags) == 0 {
		return ""
	}
	return " " + strings.Join(flags, ",")
}

func cellLabel(n model.Node) string {
	t, ok := n.(Texter)
	if !ok {
		return cellStyle.Sprint(n.Tag())
	}
	label := t.Text()
	if s, ok := n.(interface{ Selected() bool }); ok && s.Selected() {
		return selectedStyle.Sprint(label)
	}
	return cellStyle.Sprint(label)
}
