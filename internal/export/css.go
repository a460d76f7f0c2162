package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/TileGrid/internal/model"
)

// CSSPlacement is the CSS grid placement of one tile. Grid lines are
// 1-based, so cell (0, 0) starts at line 1.
type CSSPlacement struct {
	ID         string `json:"id"`
	GridColumn string `json:"grid_column"`
	GridRow    string `json:"grid_row"`
}

// CSSPlacements maps every position to grid-column/grid-row values in
// row-major placement order.
func CSSPlacements(layout model.GridLayout) []CSSPlacement {
	ids := layout.IDs()
	out := make([]CSSPlacement, 0, len(ids))
	for _, id := range ids {
		p := layout.Positions[id]
		out = append(out, CSSPlacement{
			ID:         id,
			GridColumn: fmt.Sprintf("%d / span %d", p.X+1, p.Width),
			GridRow:    fmt.Sprintf("%d / span %d", p.Y+1, p.Height),
		})
	}
	return out
}

var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

// WriteCSS writes a stylesheet for the layout: one container rule for
// .<prefix>-board and one rule per tile, selected by its data-tile-id
// attribute.
func WriteCSS(w io.Writer, layout model.GridLayout, prefix string) error {
	if prefix == "" {
		prefix = "tilegrid"
	}

	var b strings.Builder
	board := "." + prefix + "-board"
	fmt.Fprintf(&b, "%s {\n", board)
	fmt.Fprintf(&b, "  display: grid;\n")
	fmt.Fprintf(&b, "  grid-template-columns: repeat(%d, 1fr);\n", layout.GridWidth)
	if layout.TotalHeight > 0 {
		fmt.Fprintf(&b, "  grid-template-rows: repeat(%d, var(--%s-cell-size, auto));\n", layout.TotalHeight, prefix)
	}
	fmt.Fprintf(&b, "}\n")

	for _, p := range CSSPlacements(layout) {
		fmt.Fprintf(&b, "\n%s [data-tile-id=\"%s\"] {\n", board, cssStringEscaper.Replace(p.ID))
		fmt.Fprintf(&b, "  grid-column: %s;\n", p.GridColumn)
		fmt.Fprintf(&b, "  grid-row: %s;\n", p.GridRow)
		fmt.Fprintf(&b, "}\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
