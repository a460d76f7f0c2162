package export

import (
	"encoding/json"
	"io"

	"github.com/piwi3910/TileGrid/internal/model"
)

// ExportJSON writes the layout as indented JSON.
func ExportJSON(w io.Writer, layout model.GridLayout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(layout)
}
