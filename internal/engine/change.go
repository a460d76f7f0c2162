package engine

import "github.com/piwi3910/TileGrid/internal/model"

// ShouldReorganizeLayout reports whether positions must be recomputed when
// the item list changes from prev to next. Items are matched by ID; only
// membership and tile size matter, so reordering or retitling items does
// not trigger a new layout.
func ShouldReorganizeLayout(prev, next []model.GridItem) bool {
	if len(prev) != len(next) {
		return true
	}

	sizes := make(map[string]model.Size, len(prev))
	for _, it := range prev {
		sizes[it.ID] = model.Size{Width: it.Width, Height: it.Height}
	}

	matched := make(map[string]bool, len(next))
	for _, it := range next {
		s, ok := sizes[it.ID]
		if !ok {
			return true
		}
		if s.Width != it.Width || s.Height != it.Height {
			return true
		}
		matched[it.ID] = true
	}

	// Duplicate IDs in next can hide an ID that disappeared from prev.
	return len(matched) != len(sizes)
}
