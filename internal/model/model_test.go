package model

import (
	"testing"
)

func TestNewGridItemGeneratesID(t *testing.T) {
	a := NewGridItem("Journal", 1, 1)
	b := NewGridItem("Journal", 1, 1)
	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %s", a.ID)
	}
	if len(a.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", a.ID)
	}
}

func TestSortKeyFallsBackToID(t *testing.T) {
	withTitle := GridItem{ID: "z1", Title: "Apple"}
	if withTitle.SortKey() != "Apple" {
		t.Errorf("expected title as sort key, got %s", withTitle.SortKey())
	}
	noTitle := GridItem{ID: "z1"}
	if noTitle.SortKey() != "z1" {
		t.Errorf("expected id as sort key, got %s", noTitle.SortKey())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		in        GridItem
		gridWidth int
		wantW     int
		wantH     int
	}{
		{"in range", GridItem{Width: 3, Height: 2}, 10, 3, 2},
		{"too wide", GridItem{Width: 999, Height: 1}, 10, 10, 1},
		{"too tall", GridItem{Width: 1, Height: 40}, 10, 1, MaxItemHeight},
		{"zero", GridItem{Width: 0, Height: 0}, 10, 1, 1},
		{"negative", GridItem{Width: -4, Height: -2}, 5, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp(tt.gridWidth)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("Clamp = %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestGridPositionOverlaps(t *testing.T) {
	a := GridPosition{X: 0, Y: 0, Width: 2, Height: 2}

	if !a.Overlaps(GridPosition{X: 1, Y: 1, Width: 2, Height: 2}) {
		t.Error("expected diagonal overlap")
	}
	if a.Overlaps(GridPosition{X: 2, Y: 0, Width: 1, Height: 1}) {
		t.Error("touching edges must not overlap")
	}
	if a.Overlaps(GridPosition{X: 0, Y: 2, Width: 2, Height: 1}) {
		t.Error("item directly below must not overlap")
	}
}

func TestGridPositionBefore(t *testing.T) {
	first := GridPosition{X: 5, Y: 0}
	second := GridPosition{X: 0, Y: 1}
	if !first.Before(second) {
		t.Error("lower row should come first")
	}
	if !(GridPosition{X: 1, Y: 3}).Before(GridPosition{X: 2, Y: 3}) {
		t.Error("same row: lower column should come first")
	}
}

func TestLayoutIDsRowMajor(t *testing.T) {
	l := NewGridLayout(4)
	l.Positions["c"] = GridPosition{X: 0, Y: 1, Width: 1, Height: 1}
	l.Positions["a"] = GridPosition{X: 2, Y: 0, Width: 1, Height: 1}
	l.Positions["b"] = GridPosition{X: 0, Y: 0, Width: 2, Height: 1}

	ids := l.IDs()
	want := []string{"b", "a", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", ids, want)
		}
	}
}

func TestLayoutUtilization(t *testing.T) {
	l := NewGridLayout(4)
	l.TotalHeight = 2
	l.Positions["a"] = GridPosition{X: 0, Y: 0, Width: 4, Height: 1}
	l.Positions["b"] = GridPosition{X: 0, Y: 1, Width: 2, Height: 1}

	if l.UsedCells() != 6 {
		t.Errorf("expected 6 used cells, got %d", l.UsedCells())
	}
	if l.TotalCells() != 8 {
		t.Errorf("expected 8 total cells, got %d", l.TotalCells())
	}
	if l.Utilization() != 75.0 {
		t.Errorf("expected 75%% utilization, got %.1f", l.Utilization())
	}

	empty := NewGridLayout(4)
	if empty.Utilization() != 0 {
		t.Errorf("expected 0 utilization for empty layout, got %.1f", empty.Utilization())
	}
}

func TestSettingsNormalized(t *testing.T) {
	s := LayoutSettings{GridWidth: 0, CellSize: -1}.Normalized()
	if s.GridWidth != DefaultGridWidth {
		t.Errorf("expected default grid width, got %d", s.GridWidth)
	}
	if s.CellSize != DefaultCellSize {
		t.Errorf("expected default cell size, got %d", s.CellSize)
	}

	kept := LayoutSettings{GridWidth: 3, CellSize: 40}.Normalized()
	if kept.GridWidth != 3 || kept.CellSize != 40 {
		t.Errorf("valid settings should be kept, got %+v", kept)
	}
}

func TestSizeOverridesApply(t *testing.T) {
	items := []GridItem{
		{ID: "a", Title: "A", Width: 1, Height: 1},
		{ID: "b", Title: "B", Width: 2, Height: 1},
	}
	o := SizeOverrides{"b": {Width: 3, Height: 2}, "missing": {Width: 9, Height: 9}}

	got := o.Apply(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Width != 1 || got[0].Height != 1 {
		t.Errorf("item without override changed: %+v", got[0])
	}
	if got[1].Width != 3 || got[1].Height != 2 {
		t.Errorf("expected override 3x2, got %dx%d", got[1].Width, got[1].Height)
	}
	if items[1].Width != 2 {
		t.Error("Apply must not modify the input slice")
	}
}

func TestBoardRemoveItemDropsOverride(t *testing.T) {
	b := NewBoard()
	b.Items = []GridItem{{ID: "a", Width: 1, Height: 1}, {ID: "b", Width: 1, Height: 1}}
	b.SetOverride("a", 2, 2)

	if !b.RemoveItem("a") {
		t.Fatal("expected item to be removed")
	}
	if len(b.Items) != 1 || b.Items[0].ID != "b" {
		t.Errorf("unexpected items after removal: %+v", b.Items)
	}
	if _, ok := b.Overrides["a"]; ok {
		t.Error("override should be removed with its item")
	}
	if b.RemoveItem("a") {
		t.Error("second removal should report not found")
	}
}

func TestBoardEffectiveItems(t *testing.T) {
	b := NewBoard()
	b.Items = []GridItem{{ID: "a", Width: 1, Height: 1}}
	b.SetOverride("a", 4, 3)

	eff := b.EffectiveItems()
	if eff[0].Width != 4 || eff[0].Height != 3 {
		t.Errorf("expected 4x3, got %dx%d", eff[0].Width, eff[0].Height)
	}
	if b.Items[0].Width != 1 {
		t.Error("board items must keep their catalog size")
	}
}

func TestCatalogLookups(t *testing.T) {
	c := DefaultCatalog()
	if len(c.Entries) == 0 {
		t.Fatal("expected default catalog entries")
	}

	first := c.Entries[0]
	if got := c.FindByID(first.ID); got == nil || got.Title != first.Title {
		t.Errorf("FindByID failed for %s", first.ID)
	}
	if got := c.FindByTitle("Journal"); got == nil {
		t.Error("expected Journal in default catalog")
	}
	if c.FindByID("nope") != nil {
		t.Error("expected nil for unknown ID")
	}

	items := c.Items()
	if len(items) != len(c.Entries) {
		t.Fatalf("expected %d items, got %d", len(c.Entries), len(items))
	}
	if items[0].ID != first.ID || items[0].Width != first.Width {
		t.Errorf("item does not match entry: %+v vs %+v", items[0], first)
	}
	if len(c.Titles()) != len(c.Entries) {
		t.Error("Titles length mismatch")
	}
}
