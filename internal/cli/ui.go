package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/TileGrid/internal/export"
	"github.com/piwi3910/TileGrid/internal/model"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
	colorInk    = lipgloss.Color("#1E1E1E")
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleEmptyCell   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNewline(w io.Writer) {
	fmt.Fprintln(w)
}

// =============================================================================
// Board Preview
// =============================================================================

// tileKeys label tiles in the preview, in placement order.
const tileKeys = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func tileKey(i int) string {
	return string(tileKeys[i%len(tileKeys)])
}

func tileStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(export.TileColorHex(i))).
		Foreground(colorInk)
}

// renderBoard draws the layout as a character grid, three columns per cell.
// Each tile is filled with its key in its palette color; free cells show a dot.
func renderBoard(layout model.GridLayout) string {
	rows := export.BoardRows(layout)
	if layout.GridWidth < 1 || rows == 0 {
		return ""
	}

	owner := make([][]int, rows)
	for y := range owner {
		owner[y] = make([]int, layout.GridWidth)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}
	for i, id := range layout.IDs() {
		p := layout.Positions[id]
		for y := p.Y; y < p.Bottom() && y < rows; y++ {
			for x := max(p.X, 0); x < p.Right() && x < layout.GridWidth; x++ {
				owner[y][x] = i
			}
		}
	}

	var b strings.Builder
	for y := range owner {
		for _, idx := range owner[y] {
			if idx < 0 {
				b.WriteString(styleEmptyCell.Render(" · "))
				continue
			}
			b.WriteString(tileStyle(idx).Render(" " + tileKey(idx) + " "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// printLegend lists each tile key with its title, size and cell position.
func printLegend(w io.Writer, layout model.GridLayout, titles map[string]string) {
	for i, id := range layout.IDs() {
		p := layout.Positions[id]
		fmt.Fprintf(w, "%s %s %s\n",
			tileStyle(i).Render(" "+tileKey(i)+" "),
			StyleValue.Render(titleOr(titles, id)),
			StyleDim.Render(fmt.Sprintf("%dx%d at (%d,%d)", p.Width, p.Height, p.X, p.Y)))
	}
}

// titleIndex maps item IDs to display titles.
func titleIndex(items []model.GridItem) map[string]string {
	titles := make(map[string]string, len(items))
	for _, it := range items {
		titles[it.ID] = it.SortKey()
	}
	return titles
}
