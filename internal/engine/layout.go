// Package engine computes grid layouts for activity tiles.
//
// The packer is a skyline-greedy first-fit: items are ordered by title and
// each is placed at the first free top-left cell in row-major order. All
// abnormal input is clamped, truncated or routed to a fallback placement;
// nothing is reported as an error.
package engine

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/piwi3910/TileGrid/internal/model"
)

// matrixRows is the occupancy matrix ceiling. The row scan stops below
// MaxRows and no item is taller than MaxItemHeight, so every cell a scanned
// candidate can touch lies inside the matrix.
const matrixRows = model.MaxRows + model.MaxItemHeight

// Engine runs the grid bin-packing algorithm.
// An Engine holds no state between calls; its settings are fixed at
// construction.
type Engine struct {
	Settings model.LayoutSettings
	Logger   *log.Logger
}

func New(settings model.LayoutSettings) *Engine {
	return &Engine{
		Settings: settings.Normalized(),
		Logger:   log.Default(),
	}
}

// WithLogger sets the logger warnings are reported to.
func (e *Engine) WithLogger(l *log.Logger) *Engine {
	if l != nil {
		e.Logger = l
	}
	return e
}

// GridWidth returns the column count used for every layout.
func (e *Engine) GridWidth() int {
	return e.Settings.GridWidth
}

// CalculateLayout places every item on the grid and returns their positions.
// At most model.MaxItems items are placed; the rest are dropped with a warning.
func (e *Engine) CalculateLayout(items []model.GridItem) model.GridLayout {
	gridWidth := e.GridWidth()
	layout := model.NewGridLayout(gridWidth)

	if len(items) > model.MaxItems {
		e.warn(&layout, fmt.Sprintf("truncated %d items to %d", len(items), model.MaxItems),
			"items", len(items), "cap", model.MaxItems)
		items = items[:model.MaxItems]
	}

	grid := newOccupancy(gridWidth)
	bottom := 0 // first row below every placed item

	for _, it := range e.prepare(items, &layout) {
		limit := min(bottom+it.Height, model.MaxRows)
		x, y, ok := grid.firstFit(it.Width, it.Height, limit)
		if !ok {
			x, y = 0, bottom
			e.warn(&layout, fmt.Sprintf("no free position for %q within %d rows, placed at (%d,%d)", it.ID, limit, x, y),
				"id", it.ID, "x", x, "y", y)
		}

		grid.mark(x, y, it.Width, it.Height)
		layout.Positions[it.ID] = model.GridPosition{X: x, Y: y, Width: it.Width, Height: it.Height}
		if y+it.Height > bottom {
			bottom = y + it.Height
		}
	}

	layout.TotalHeight = min(bottom, model.MaxRows)
	return layout
}

// prepare drops duplicate IDs, clamps sizes and sorts items alphabetically.
func (e *Engine) prepare(items []model.GridItem, layout *model.GridLayout) []model.GridItem {
	gridWidth := e.GridWidth()
	seen := make(map[string]bool, len(items))
	prepared := make([]model.GridItem, 0, len(items))

	for _, it := range items {
		if seen[it.ID] {
			e.warn(layout, fmt.Sprintf("duplicate item id %q ignored", it.ID), "id", it.ID)
			continue
		}
		seen[it.ID] = true

		clamped := it.Clamp(gridWidth)
		if clamped.Width != it.Width || clamped.Height != it.Height {
			e.Logger.Debug("clamped item size", "id", it.ID,
				"from", fmt.Sprintf("%dx%d", it.Width, it.Height),
				"to", fmt.Sprintf("%dx%d", clamped.Width, clamped.Height))
		}
		prepared = append(prepared, clamped)
	}

	sortItems(prepared)
	return prepared
}

// sortItems orders items by title (ID when untitled) using English
// collation, then by raw key and ID so the order is total.
func sortItems(items []model.GridItem) {
	col := collate.New(language.English)
	sort.Slice(items, func(i, j int) bool {
		ki, kj := items[i].SortKey(), items[j].SortKey()
		if c := col.CompareString(ki, kj); c != 0 {
			return c < 0
		}
		if ki != kj {
			return ki < kj
		}
		return items[i].ID < items[j].ID
	})
}

func (e *Engine) warn(layout *model.GridLayout, msg string, keyvals ...interface{}) {
	e.Logger.Warn(msg, keyvals...)
	layout.Warnings = append(layout.Warnings, msg)
}

// occupancy tracks which cells are taken. Rows are allocated on demand up
// to matrixRows; anything below the ceiling is never scanned.
type occupancy struct {
	width int
	rows  [][]bool
}

func newOccupancy(width int) *occupancy {
	return &occupancy{width: width}
}

// free reports whether the w x h rectangle at (x, y) is unoccupied.
func (o *occupancy) free(x, y, w, h int) bool {
	for row := y; row < y+h && row < len(o.rows); row++ {
		cells := o.rows[row]
		for col := x; col < x+w; col++ {
			if cells[col] {
				return false
			}
		}
	}
	return true
}

// firstFit scans rows [0, limit) and columns left to right for the first
// position where a w x h item fits.
func (o *occupancy) firstFit(w, h, limit int) (int, int, bool) {
	for y := 0; y < limit; y++ {
		for x := 0; x+w <= o.width; x++ {
			if o.free(x, y, w, h) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// mark flags the rectangle as occupied, growing the matrix as needed.
func (o *occupancy) mark(x, y, w, h int) {
	end := min(y+h, matrixRows)
	for len(o.rows) < end {
		o.rows = append(o.rows, make([]bool, o.width))
	}
	for row := y; row < end; row++ {
		for col := x; col < x+w && col < o.width; col++ {
			o.rows[row][col] = true
		}
	}
}
