package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/model"
)

// tileColor represents an RGB color for a placed tile.
type tileColor struct {
	R, G, B int
}

// tileColors is the palette shared by the PDF board, the spreadsheet and
// the terminal preview.
var tileColors = []tileColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Hex returns the color as #RRGGBB.
func (c tileColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// TileColorHex returns the palette color for the i-th tile in placement order.
func TileColorHex(i int) string {
	return tileColors[i%len(tileColors)].Hex()
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	tableRowH    = 5.0
)

// ExportPDF writes the layout as a PDF: the board drawn to scale on the
// first page, followed by a summary with statistics and the placement table.
func ExportPDF(path string, layout model.GridLayout, items []model.GridItem, settings model.LayoutSettings) error {
	if len(layout.Positions) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no tiles to export")
	}
	if layout.GridWidth < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "grid width must be positive, got %d", layout.GridWidth)
	}

	titles := titleIndex(items)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderBoardPage(pdf, layout, titles)

	pdf.AddPage()
	renderSummaryPage(pdf, layout, titles, settings)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write PDF %s", path)
	}
	return nil
}

// renderBoardPage draws the grid, its empty regions and every tile.
func renderBoardPage(pdf *fpdf.Fpdf, layout model.GridLayout, titles map[string]string) {
	rows := BoardRows(layout)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Board: %d columns x %d rows", layout.GridWidth, layout.TotalHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Used cells: %d | Total cells: %d | Utilization: %.1f%%",
		len(layout.Positions), layout.UsedCells(), layout.TotalCells(), layout.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	cell := math.Min(drawWidth/float64(layout.GridWidth), drawHeight/float64(rows))
	canvasW := float64(layout.GridWidth) * cell
	canvasH := float64(rows) * cell

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Board background
	pdf.SetFillColor(245, 245, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawCellGrid(pdf, layout.GridWidth, rows, cell, offsetX, offsetY)
	drawGaps(pdf, model.DetectGaps(layout), cell, offsetX, offsetY)

	for i, id := range layout.IDs() {
		p := layout.Positions[id]
		col := tileColors[i%len(tileColors)]
		pw := float64(p.Width) * cell
		ph := float64(p.Height) * cell
		px := offsetX + float64(p.X)*cell
		py := offsetY + float64(p.Y)*cell

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 10 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := fitText(pdf, displayTitle(titles, id), pw-2)
			dims := fmt.Sprintf("%dx%d", p.Width, p.Height)

			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")

			dimsW := pdf.GetStringWidth(dims)
			if ph > 12 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, layout.GridWidth, rows, offsetX, offsetY, canvasW, canvasH)
	drawTileLegend(pdf, layout, titles, offsetY+canvasH+5)
}

// drawCellGrid draws faint lines on every cell boundary.
func drawCellGrid(pdf *fpdf.Fpdf, cols, rows int, cell, offsetX, offsetY float64) {
	pdf.SetDrawColor(215, 215, 215)
	pdf.SetLineWidth(0.1)
	for c := 1; c < cols; c++ {
		x := offsetX + float64(c)*cell
		pdf.Line(x, offsetY, x, offsetY+float64(rows)*cell)
	}
	for r := 1; r < rows; r++ {
		y := offsetY + float64(r)*cell
		pdf.Line(offsetX, y, offsetX+float64(cols)*cell, y)
	}
}

// drawGaps hatches the empty regions of the board.
func drawGaps(pdf *fpdf.Fpdf, gaps []model.Gap, cell, offsetX, offsetY float64) {
	for _, g := range gaps {
		gx := offsetX + float64(g.X)*cell
		gy := offsetY + float64(g.Y)*cell
		gw := float64(g.Width) * cell
		gh := float64(g.Height) * cell

		pdf.SetFillColor(235, 235, 235)
		pdf.SetDrawColor(170, 170, 170)
		pdf.SetLineWidth(0.2)
		pdf.Rect(gx, gy, gw, gh, "FD")
		drawHatchPattern(pdf, gx, gy, gw, gh)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations labels the column and row counts outside the board.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, cols, rows int, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d columns", cols)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d rows", rows)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawTileLegend renders a compact legend of placed tiles below the board.
func drawTileLegend(pdf *fpdf.Fpdf, layout model.GridLayout, titles map[string]string, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Tiles placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, id := range layout.IDs() {
		p := layout.Positions[id]
		col := tileColors[i%len(tileColors)]
		label := fmt.Sprintf("%s (%dx%d)", displayTitle(titles, id), p.Width, p.Height)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom {
			break
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws statistics, the placement table and any warnings.
func renderSummaryPage(pdf *fpdf.Fpdf, layout model.GridLayout, titles map[string]string, settings model.LayoutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Statistics", "", 0, "L", false, 0, "")
	y += 9

	gaps := model.DetectGaps(layout)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Tiles Placed", fmt.Sprintf("%d", len(layout.Positions))},
		{"Grid Width", fmt.Sprintf("%d columns", layout.GridWidth)},
		{"Total Height", fmt.Sprintf("%d rows", layout.TotalHeight)},
		{"Utilization", fmt.Sprintf("%.1f%%", layout.Utilization())},
		{"Empty Regions", fmt.Sprintf("%d (%d cells)", len(gaps), model.TotalGapArea(gaps))},
		{"Cell Size", fmt.Sprintf("%d px", settings.CellSize)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 90, 45, 40, 40}
	headers := []string{"#", "Title", "ID", "Cell (x, y)", "Size"}
	drawTableHeader(pdf, colWidths, headers, y)
	y += tableRowH

	pdf.SetFont("Helvetica", "", 9)
	for i, id := range layout.IDs() {
		if y > pageHeight-marginBottom-tableRowH {
			pdf.AddPage()
			y = marginTop
			drawTableHeader(pdf, colWidths, headers, y)
			y += tableRowH
			pdf.SetFont("Helvetica", "", 9)
		}

		p := layout.Positions[id]
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fitText(pdf, displayTitle(titles, id), colWidths[1]-2),
			id,
			fmt.Sprintf("(%d, %d)", p.X, p.Y),
			fmt.Sprintf("%d x %d", p.Width, p.Height),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], tableRowH, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += tableRowH
	}

	if len(layout.Warnings) > 0 {
		y += 8
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Warnings", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range layout.Warnings {
			if y > pageHeight-marginBottom {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TileGrid", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawTableHeader(pdf *fpdf.Fpdf, colWidths []float64, headers []string, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], tableRowH, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
}

// fitText truncates s with an ellipsis so it renders within maxW.
func fitText(pdf *fpdf.Fpdf, s string, maxW float64) string {
	if pdf.GetStringWidth(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > maxW {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 9
	case minDim > 20:
		return 8
	default:
		return 6
	}
}
