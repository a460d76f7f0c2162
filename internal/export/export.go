// Package export renders computed grid layouts to PDF board sheets,
// QR-coded tile cards, CSS grid placements, spreadsheets and JSON.
package export

import "github.com/piwi3910/TileGrid/internal/model"

// titleIndex maps item IDs to display titles.
func titleIndex(items []model.GridItem) map[string]string {
	titles := make(map[string]string, len(items))
	for _, it := range items {
		titles[it.ID] = it.SortKey()
	}
	return titles
}

// displayTitle returns the title for id, or the id itself when unknown.
func displayTitle(titles map[string]string, id string) string {
	if t, ok := titles[id]; ok && t != "" {
		return t
	}
	return id
}

// BoardRows returns the number of rows a renderer must draw so that every
// tile is visible, including fallback placements below TotalHeight.
func BoardRows(layout model.GridLayout) int {
	rows := layout.TotalHeight
	for _, p := range layout.Positions {
		if p.Bottom() > rows {
			rows = p.Bottom()
		}
	}
	return rows
}
