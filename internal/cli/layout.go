package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/export"
	"github.com/piwi3910/TileGrid/internal/importer"
	"github.com/piwi3910/TileGrid/internal/model"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var format, output, prefix string

	cmd := &cobra.Command{
		Use:   "layout [items]",
		Short: "Compute a grid layout for an item file",
		Long: `Compute a grid layout for an item file.

Items are read from CSV, Excel (.xlsx) or TOML ([[activity]] tables). Tiles
are placed alphabetically by title, each at the first free cell that fits.

The default output is a terminal preview with a legend. Use -f json for the
raw layout or -f css for CSS grid placements.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], format, output, prefix)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, css")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write json/css output to a file instead of stdout")
	cmd.Flags().StringVar(&prefix, "prefix", "tilegrid", "class prefix for css output")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, input, format, output, prefix string) error {
	switch format {
	case "text", "json", "css":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, json or css)", format)
	}

	s, err := c.settings()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	items, err := loadItems(ctx, input)
	if err != nil {
		return err
	}

	p := newProgress(loggerFromContext(ctx))
	layout := c.newEngine(s).CalculateLayout(items)
	p.done(fmt.Sprintf("Placed %d tiles", len(layout.Positions)))

	if format == "text" {
		printLayout(w, layout, titleIndex(items))
		return nil
	}

	write := func(dst io.Writer) error {
		if format == "css" {
			return export.WriteCSS(dst, layout, prefix)
		}
		return export.ExportJSON(dst, layout)
	}
	if output == "" {
		return write(w)
	}
	if err := writeFile(output, write); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess(w, "Layout written")
	printFile(w, output)
	return nil
}

// printLayout prints layout statistics, the board preview and any warnings.
func printLayout(w io.Writer, layout model.GridLayout, titles map[string]string) {
	gaps := model.DetectGaps(layout)

	printSuccess(w, "Layout complete")
	printKeyValue(w, "Tiles", fmt.Sprintf("%d", len(layout.Positions)))
	printKeyValue(w, "Grid", fmt.Sprintf("%d columns x %d rows", layout.GridWidth, layout.TotalHeight))
	printKeyValue(w, "Utilization", fmt.Sprintf("%.1f%%", layout.Utilization()))
	printKeyValue(w, "Gaps", fmt.Sprintf("%d (%d cells)", len(gaps), model.TotalGapArea(gaps)))

	if board := renderBoard(layout); board != "" {
		printNewline(w)
		fmt.Fprint(w, board)
		printNewline(w)
		printLegend(w, layout, titles)
	}

	for _, msg := range layout.Warnings {
		printWarning(w, "%s", msg)
	}
}

// loadItems imports an item file. Row problems are logged; the import
// fails only when nothing usable was read.
func loadItems(ctx context.Context, path string) ([]model.GridItem, error) {
	logger := loggerFromContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}

	res := importer.ImportFile(path)
	for _, msg := range res.Warnings {
		logger.Debug(msg, "file", path)
	}
	for _, msg := range res.Errors {
		logger.Warn(msg, "file", path)
	}
	if len(res.Items) == 0 && len(res.Errors) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "import %s: %s", path, res.Errors[0])
	}

	logger.Debug("imported items", "file", path, "count", len(res.Items))
	return res.Items, nil
}

// writeFile creates path and hands it to write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
