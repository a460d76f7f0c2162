package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/model"
)

// TileCard holds the data encoded into each tile card's QR code.
type TileCard struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BoardWidth int    `json:"board_width"`
}

// Card layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	cardMarginTop  = 12.7 // mm
	cardMarginLeft = 4.8  // mm
	cardWidth      = 66.7 // mm per card
	cardHeight     = 25.4 // mm per card
	cardCols       = 3
	cardRows       = 10
	cardsPerPage   = cardCols * cardRows
	qrSize         = 20.0 // mm
	cardPadding    = 2.0  // mm
)

// ExportLabels writes a PDF of QR-coded cards, one per placed tile, in
// placement order. Each card carries the tile title, size and cell, and a
// QR code encoding the same data as JSON.
func ExportLabels(path string, layout model.GridLayout, items []model.GridItem) error {
	cards := CollectTileCards(layout, items)
	if len(cards) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no tiles placed to generate cards for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % cardsPerPage
		x := cardMarginLeft + float64(posOnPage%cardCols)*cardWidth
		y := cardMarginTop + float64(posOnPage/cardCols)*cardHeight

		if err := renderCard(pdf, x, y, i, card); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render card for %q", card.ID)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write labels %s", path)
	}
	return nil
}

// renderCard draws a single card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, index int, card TileCard) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + cardWidth - qrSize - cardPadding
	qrY := y + (cardHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + cardPadding
	textW := cardWidth - qrSize - 3*cardPadding

	// Color swatch matching the board page
	col := tileColors[index%len(tileColors)]
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(textX, y+cardPadding+0.5, 3, 3, "F")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX+4, y+cardPadding)
	pdf.CellFormat(textW-4, 4.5, fitText(pdf, card.Title, textW-4), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+cardPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d cells", card.Width, card.Height), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+cardPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Cell (%d, %d) of %d columns", card.X, card.Y, card.BoardWidth), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+cardPadding+12.5)
	pdf.CellFormat(textW, 3, fitText(pdf, "id "+card.ID, textW), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectTileCards builds the card data for every placed tile in
// row-major placement order.
func CollectTileCards(layout model.GridLayout, items []model.GridItem) []TileCard {
	titles := titleIndex(items)
	ids := layout.IDs()
	cards := make([]TileCard, 0, len(ids))
	for _, id := range ids {
		p := layout.Positions[id]
		cards = append(cards, TileCard{
			ID:         id,
			Title:      displayTitle(titles, id),
			X:          p.X,
			Y:          p.Y,
			Width:      p.Width,
			Height:     p.Height,
			BoardWidth: layout.GridWidth,
		})
	}
	return cards
}
