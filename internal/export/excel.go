package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/model"
)

const (
	placementsSheet = "Placements"
	boardSheet      = "Board"
)

// ExportExcel writes a workbook with two sheets: a placement table and a
// board view where each tile is a merged, colored cell range.
func ExportExcel(path string, layout model.GridLayout, items []model.GridItem) error {
	if len(layout.Positions) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no tiles to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rename sheet")
	}
	titles := titleIndex(items)

	if err := writePlacementsSheet(f, layout, titles); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s sheet", placementsSheet)
	}
	if err := writeBoardSheet(f, layout, titles); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s sheet", boardSheet)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write workbook %s", path)
	}
	return nil
}

func writePlacementsSheet(f *excelize.File, layout model.GridLayout, titles map[string]string) error {
	header := []interface{}{"ID", "Title", "X", "Y", "Width", "Height"}
	if err := f.SetSheetRow(placementsSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(placementsSheet, "A1", "F1", bold); err != nil {
		return err
	}

	for i, id := range layout.IDs() {
		p := layout.Positions[id]
		row := []interface{}{id, displayTitle(titles, id), p.X, p.Y, p.Width, p.Height}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(placementsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(placementsSheet, "B", "B", 30)
}

func writeBoardSheet(f *excelize.File, layout model.GridLayout, titles map[string]string) error {
	if _, err := f.NewSheet(boardSheet); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(max(layout.GridWidth, 1))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(boardSheet, "A", lastCol, 14); err != nil {
		return err
	}

	for i, id := range layout.IDs() {
		p := layout.Positions[id]
		topLeft, err := excelize.CoordinatesToCellName(p.X+1, p.Y+1)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(p.Right(), p.Bottom())
		if err != nil {
			return err
		}

		if err := f.SetCellValue(boardSheet, topLeft, displayTitle(titles, id)); err != nil {
			return err
		}
		if topLeft != bottomRight {
			if err := f.MergeCell(boardSheet, topLeft, bottomRight); err != nil {
				return fmt.Errorf("merge %s:%s: %w", topLeft, bottomRight, err)
			}
		}

		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{TileColorHex(i)}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border: []excelize.Border{
				{Type: "left", Color: "1E1E1E", Style: 1},
				{Type: "top", Color: "1E1E1E", Style: 1},
				{Type: "right", Color: "1E1E1E", Style: 1},
				{Type: "bottom", Color: "1E1E1E", Style: 1},
			},
		})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(boardSheet, topLeft, bottomRight, style); err != nil {
			return err
		}
	}

	return nil
}
