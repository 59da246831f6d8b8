package feed

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/listkit/pkg/bus"
	"github.com/go-drift/listkit/pkg/layout"
	"github.com/go-drift/listkit/pkg/model"
)

func tags(rows []*Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Tag()
	}
	return out
}

func TestBuild_LoadPopulatesRows(t *testing.T) {
	f := Build(Options{Sections: 2, Rows: 2})
	if got := len(f.Rows()); got != 0 {
		t.Fatalf("rows before load = %d, want 0", got)
	}

	f.Load()
	f.Load()

	want := []string{
		"Section0.0", "Section0.1",
		"Section1.0", "Section1.1",
		"Highlights.More.0", "Highlights.More.1",
		"Highlights.0", "Highlights.1",
	}
	if diff := cmp.Diff(want, tags(f.Rows())); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	for _, s := range f.Sections {
		if s.Loads() != 1 {
			t.Errorf("%s loaded %d times, want 1", s.Tag(), s.Loads())
		}
	}
}

func TestBuild_LayoutResolution(t *testing.T) {
	layout.SetDefault(nil)
	f := Build(Options{Sections: 1, Rows: 0})

	got := map[string]string{}
	for _, s := range f.Sections {
		got[s.Tag()] = s.GetCustomLayout().Name()
	}
	want := map[string]string{
		"Section0":        "flow",
		"Highlights":      "compact",
		"Highlights.More": "compact",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved layouts mismatch (-want +got):\n%s", diff)
	}

	highlights := f.Sections[1]
	if n := highlights.GetLayoutContext().ColumnCount(); n != 2 {
		t.Errorf("highlights columns = %d, want 2", n)
	}
	if ctx := f.Sections[2].GetLayoutContext(); ctx != nil {
		t.Errorf("nested layout context = %+v, want nil (not inherited)", ctx)
	}
}

func TestSelect_UpdatesSectionOnly(t *testing.T) {
	f := Build(Options{Sections: 2, Rows: 3})
	f.Load()
	rows := f.Rows()

	f.Select(rows[1])

	for i, r := range rows {
		want := i == 1
		if r.Selected() != want {
			t.Errorf("%s selected = %v, want %v", r.Tag(), r.Selected(), want)
		}
	}
	if got := f.Host.Reloads(); got != 1 {
		t.Errorf("host reloads = %d, want 1", got)
	}

	f.Select(rows[2])
	if rows[1].Selected() || !rows[2].Selected() {
		t.Error("selection did not move within the section")
	}
}

func TestSelect_ClearedSelectionResetsRows(t *testing.T) {
	f := Build(Options{Sections: 1, Rows: 2})
	f.Load()
	rows := f.Rows()

	f.Select(rows[0])
	f.Sections[0].Bus().ClearData(DataSelected)
	if rows[0].Selected() {
		t.Error("row still selected after the shared value was cleared")
	}
}

func TestRefresh_ReadsSharedSelection(t *testing.T) {
	f := Build(Options{Sections: 1, Rows: 2})
	f.Load()
	rows := f.Rows()

	f.Sections[0].Bus().ShareDataQuietly(rows[1].Tag(), DataSelected)
	if rows[1].Selected() {
		t.Fatal("quiet share notified subscribers")
	}

	f.Refresh()
	if !rows[1].Selected() || rows[0].Selected() {
		t.Error("refresh did not pick up the shared selection")
	}
	for _, r := range f.Rows() {
		if r.Refreshes() != 1 {
			t.Errorf("%s refreshed %d times, want 1", r.Tag(), r.Refreshes())
		}
	}
}

func TestReload_NotifiesEverySection(t *testing.T) {
	f := Build(Options{Sections: 2, Rows: 1})
	f.Load()
	f.Reload()
	f.Reload()

	for _, s := range f.Sections {
		if s.Reloads() != 2 {
			t.Errorf("%s reloads = %d, want 2", s.Tag(), s.Reloads())
		}
	}
	if got := f.Host.Reloads(); got != 2 {
		t.Errorf("host reloads = %d, want 2", got)
	}
}

func TestSection_CloseStopsSelection(t *testing.T) {
	f := Build(Options{Sections: 1, Rows: 2})
	f.Load()
	f.Sections[0].Close()

	f.Select(f.Rows()[0])
	if f.Rows()[0].Selected() {
		t.Error("closed section still handled selection")
	}
	if _, ok := model.AsContainer(f.Sections[0]); !ok {
		t.Error("section is not a container")
	}
}

// removeFirstRow detaches the section's first row without keeping a
// reference to it.
func removeFirstRow(s *Section) {
	s.RemoveSubmodel(s.Submodels()[0])
}

func TestRemovedRowStopsObservingSelection(t *testing.T) {
	s := NewSection("S", 3)
	s.Load()
	if got := s.Bus().Stats().DataSubscribers; got != 3 {
		t.Fatalf("DataSubscribers = %d, want 3", got)
	}

	removeFirstRow(s)
	runtime.GC()
	runtime.GC()

	if got := s.Bus().Stats().DataSubscribers; got != 2 {
		t.Errorf("DataSubscribers after removing a row = %d, want 2", got)
	}
	s.Bus().ShareData("S.1", DataSelected)
	if st := s.Bus().Stats(); st.DataSubscribers != 2 || st.StaleSubscribers != 0 {
		t.Errorf("Stats() after dispatch = %+v, want 2 live and none stale", st)
	}
}

func TestSectionIsNotKeptAliveByItsBus(t *testing.T) {
	b := detachedSectionBus()
	runtime.GC()
	runtime.GC()
	if st := b.Stats(); st.EventSubscribers != 0 {
		t.Errorf("EventSubscribers = %d after the section was dropped, want 0", st.EventSubscribers)
	}
}

func detachedSectionBus() interface{ Stats() bus.Stats } {
	return NewSection("Gone", 0).Bus()
}
