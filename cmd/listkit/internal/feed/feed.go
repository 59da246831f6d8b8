// Package feed builds the sample collection driven by the listkit demo.
//
// A feed is a root container of sections. Each section fills itself with
// rows the first time it is loaded, and rows in a section coordinate their
// selection state through the section's bus.
package feed

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-drift/listkit/pkg/bus"
	"github.com/go-drift/listkit/pkg/geometry"
	"github.com/go-drift/listkit/pkg/host"
	"github.com/go-drift/listkit/pkg/host/hosttest"
	"github.com/go-drift/listkit/pkg/layout"
	"github.com/go-drift/listkit/pkg/model"
)

// Bus identifiers used by sections and rows.
const (
	// EventSelect carries the tag of the row that was tapped.
	EventSelect = "feed.select"
	// DataSelected holds the tag of the selected row in a section.
	DataSelected = "feed.selected"
)

// Compact is the strategy used by the highlights section and inherited by
// everything nested in it.
const Compact layout.Named = "compact"

// Options controls the shape of a feed.
type Options struct {
	Sections int
	Rows     int
}

// Feed is a built sample tree and the host it is attached to.
type Feed struct {
	Root     *model.Container
	Host     *hosttest.Recorder
	Sections []*Section
}

// Build creates a feed. Sections are named Section0..SectionN-1, followed by
// a Highlights section using Compact that nests one more section.
func Build(opts Options) *Feed {
	layout.Register(Compact)

	f := &Feed{
		Root: model.NewContainer("Feed", nil),
		Host: &hosttest.Recorder{Name: "Feed"},
	}
	f.Root.AttachHost(host.Refs{View: f.Host, Controller: f.Host, Surface: f.Host})

	for i := range opts.Sections {
		f.add(f.Root, NewSection(fmt.Sprintf("Section%d", i), opts.Rows))
	}

	highlights := NewSection("Highlights", opts.Rows)
	highlights.SetCustomLayout(Compact)
	highlights.SetLayoutContext(&layout.Context{
		Insets:           geometry.EdgeInsetsSymmetric(16, 8),
		LineSpacing:      8,
		InteritemSpacing: 8,
		Columns:          2,
	})
	f.add(f.Root, highlights)
	f.add(highlights.Container, NewSection("Highlights.More", opts.Rows))
	return f
}

func (f *Feed) add(parent *model.Container, s *Section) {
	s.SetParent(parent)
	parent.AddSubmodel(s)
	f.Sections = append(f.Sections, s)
}

// Load loads every container in the feed, top down. Sections populate
// their rows during the walk, so rows are visited too.
func (f *Feed) Load() {
	model.Walk(f.Root, func(n model.Node, _ int) bool {
		if c, ok := model.AsContainer(n); ok {
			c.Load()
		}
		return true
	})
}

// Reload notifies every container of an upcoming reload and asks the host
// to reload.
func (f *Feed) Reload() {
	model.Walk(f.Root, func(n model.Node, _ int) bool {
		if c, ok := model.AsContainer(n); ok {
			c.Reload()
		}
		return true
	})
	f.Root.RequestReload()
}

// Refresh refreshes every row in the feed.
func (f *Feed) Refresh() {
	f.Root.NeedUpdateCellsData()
}

// Rows returns every row in tree order.
func (f *Feed) Rows() []*Row {
	var rows []*Row
	model.Walk(f.Root, func(n model.Node, _ int) bool {
		if r, ok := n.(*Row); ok {
			rows = append(rows, r)
		}
		return true
	})
	return rows
}

// Select simulates a tap on r.
func (f *Feed) Select(r *Row) {
	if b := r.Bus(); b != nil {
		b.SendEvent(EventSelect, r.Tag())
	}
}

// Section is a container that creates its rows on first load.
type Section struct {
	*model.Container

	rows    int
	loads   atomic.Int32
	reloads atomic.Int32
	sub     *bus.Subscription
}

// NewSection creates a section that will hold rows rows once loaded.
func NewSection(tag string, rows int) *Section {
	s := &Section{rows: rows}
	s.Container = model.NewContainer(tag, s)
	s.sub = bus.SubscribeEventOfFor(s.Bus(), EventSelect, s, (*Section).selectRow)
	return s
}

// ContainerModelDidLoad creates the section's rows.
func (s *Section) ContainerModelDidLoad() {
	s.loads.Add(1)
	rows := make([]model.Node, 0, s.rows)
	for i := range s.rows {
		r := NewRow(fmt.Sprintf("%s.%d", s.Tag(), i))
		r.SetParent(s.Container)
		r.subscribe()
		rows = append(rows, r)
	}
	s.AddSubmodels(rows...)
}

// CollectionViewDataWillReload counts reload notifications.
func (s *Section) CollectionViewDataWillReload() {
	s.reloads.Add(1)
}

// Loads returns how many times the load hook ran.
func (s *Section) Loads() int { return int(s.loads.Load()) }

// Reloads returns how many reload notifications the section received.
func (s *Section) Reloads() int { return int(s.reloads.Load()) }

// Close stops the section reacting to selection events.
func (s *Section) Close() { s.sub.Dispose() }

func (s *Section) selectRow(tag string) {
	s.Bus().ShareData(tag, DataSelected)
	s.RequestReload()
}

// Row is a cell showing a label and whether it is selected.
type Row struct {
	*model.Cell

	mu        sync.Mutex
	selected  bool
	refreshes int
	sub       *bus.Subscription
}

// NewRow creates a row.
func NewRow(tag string) *Row {
	r := &Row{}
	r.Cell = model.NewCell(tag, r)
	return r
}

func (r *Row) subscribe() {
	b := r.Bus()
	if b == nil {
		return
	}
	r.sub = bus.SubscribeDataOfFor(b, DataSelected, r,
		func(r *Row, tag string) { r.setSelected(tag == r.Tag()) },
		func(r *Row) { r.setSelected(false) },
	)
}

// RefreshData re-reads the selection from the section's bus.
func (r *Row) RefreshData() {
	selected := false
	if b := r.Bus(); b != nil {
		selected = bus.SharedDataOrOf(b, DataSelected, "") == r.Tag()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = selected
	r.refreshes++
}

func (r *Row) setSelected(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = v
}

// Selected reports whether the row is the selected one in its section.
func (r *Row) Selected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Refreshes returns how many times RefreshData ran.
func (r *Row) Refreshes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes
}

// Text is the row's display label.
func (r *Row) Text() string {
	if r.Selected() {
		return r.Tag() + " (selected)"
	}
	return r.Tag()
}
