package model

import (
	"sort"

	"github.com/google/uuid"
)

// Safety caps applied by the layout engine. They bound both the occupancy
// matrix and the amount of work a single layout call can do.
const (
	MaxItems      = 50 // Items beyond this count are truncated
	MaxItemHeight = 10 // Tallest tile, in grid units
	MaxRows       = 50 // Row search depth and reported height ceiling

	DefaultGridWidth = 10  // Columns when none are configured
	DefaultCellSize  = 100 // Pixels per grid unit for rendering
)

// GridItem describes one tile to place on the board.
type GridItem struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"` // Sort key; empty falls back to ID
	Width  int    `json:"width"`           // grid units
	Height int    `json:"height"`          // grid units
}

func NewGridItem(title string, w, h int) GridItem {
	return GridItem{
		ID:     uuid.New().String()[:8],
		Title:  title,
		Width:  w,
		Height: h,
	}
}

// SortKey returns the value items are ordered by: the title, or the ID
// when no title is set.
func (it GridItem) SortKey() string {
	if it.Title != "" {
		return it.Title
	}
	return it.ID
}

// Area returns the number of cells the item covers.
func (it GridItem) Area() int {
	return it.Width * it.Height
}

// Clamp returns a copy with width in [1, gridWidth] and height in
// [1, MaxItemHeight].
func (it GridItem) Clamp(gridWidth int) GridItem {
	it.Width = clampInt(it.Width, 1, gridWidth)
	it.Height = clampInt(it.Height, 1, MaxItemHeight)
	return it
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GridPosition is the placement of one item, in grid cells.
type GridPosition struct {
	X      int `json:"x"` // Column of the top-left cell
	Y      int `json:"y"` // Row of the top-left cell
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first column past the item.
func (p GridPosition) Right() int { return p.X + p.Width }

// Bottom returns the first row below the item.
func (p GridPosition) Bottom() int { return p.Y + p.Height }

// Overlaps reports whether two placements share at least one cell.
func (p GridPosition) Overlaps(o GridPosition) bool {
	return p.X < o.Right() && o.X < p.Right() &&
		p.Y < o.Bottom() && o.Y < p.Bottom()
}

// Before reports whether p comes earlier than o in row-major scan order.
func (p GridPosition) Before(o GridPosition) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// GridLayout is the result of one layout computation.
type GridLayout struct {
	Positions   map[string]GridPosition `json:"positions"`
	TotalHeight int                     `json:"total_height"` // rows, capped at MaxRows
	GridWidth   int                     `json:"grid_width"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// NewGridLayout returns an empty layout for the given column count.
func NewGridLayout(gridWidth int) GridLayout {
	return GridLayout{
		Positions: make(map[string]GridPosition),
		GridWidth: gridWidth,
	}
}

// IDs returns the placed item IDs in row-major placement order.
func (l GridLayout) IDs() []string {
	ids := make([]string, 0, len(l.Positions))
	for id := range l.Positions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := l.Positions[ids[i]], l.Positions[ids[j]]
		if pi.Y != pj.Y || pi.X != pj.X {
			return pi.Before(pj)
		}
		return ids[i] < ids[j]
	})
	return ids
}

// UsedCells returns the total number of cells covered by placed items.
func (l GridLayout) UsedCells() int {
	total := 0
	for _, p := range l.Positions {
		total += p.Width * p.Height
	}
	return total
}

// TotalCells returns the board area spanned by the layout.
func (l GridLayout) TotalCells() int {
	return l.GridWidth * l.TotalHeight
}

// Utilization returns the percentage of the spanned board that is covered.
func (l GridLayout) Utilization() float64 {
	tc := l.TotalCells()
	if tc == 0 {
		return 0
	}
	used := l.UsedCells()
	if used > tc {
		used = tc
	}
	return float64(used) / float64(tc) * 100.0
}

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Transition describes how a tile moves between two layouts, in pixels.
type Transition struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// LayoutSettings holds layout engine and rendering configuration.
type LayoutSettings struct {
	GridWidth int `json:"grid_width"` // Columns
	CellSize  int `json:"cell_size"`  // Pixels per grid unit
}

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		GridWidth: DefaultGridWidth,
		CellSize:  DefaultCellSize,
	}
}

// Normalized replaces unusable values with defaults.
func (s LayoutSettings) Normalized() LayoutSettings {
	if s.GridWidth < 1 {
		s.GridWidth = DefaultGridWidth
	}
	if s.CellSize < 1 {
		s.CellSize = DefaultCellSize
	}
	return s
}
