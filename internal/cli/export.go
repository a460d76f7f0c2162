package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/export"
	"github.com/piwi3910/TileGrid/internal/model"
)

// exporter writes a computed layout to path.
type exporter func(path string, layout model.GridLayout, items []model.GridItem, settings model.LayoutSettings) error

// exportCommand creates the export command and its per-format subcommands.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a layout to a file",
		Long: `Render a layout to a file.

Each subcommand lays out an item file and writes one format. The output path
defaults to the input path with the format's extension.`,
	}

	cmd.AddCommand(c.exportFormatCommand("pdf", ".pdf", "Board sheet with a placement summary",
		func(path string, l model.GridLayout, items []model.GridItem, s model.LayoutSettings) error {
			return export.ExportPDF(path, l, items, s)
		}))
	cmd.AddCommand(c.exportFormatCommand("labels", ".labels.pdf", "QR-coded tile cards",
		func(path string, l model.GridLayout, items []model.GridItem, _ model.LayoutSettings) error {
			return export.ExportLabels(path, l, items)
		}))
	cmd.AddCommand(c.exportFormatCommand("xlsx", ".xlsx", "Spreadsheet of placements and a board sheet",
		func(path string, l model.GridLayout, items []model.GridItem, _ model.LayoutSettings) error {
			return export.ExportExcel(path, l, items)
		}))
	cmd.AddCommand(c.exportFormatCommand("css", ".css", "CSS grid placements",
		func(path string, l model.GridLayout, _ []model.GridItem, _ model.LayoutSettings) error {
			return writeFile(path, func(w io.Writer) error { return export.WriteCSS(w, l, "") })
		}))
	cmd.AddCommand(c.exportFormatCommand("json", ".layout.json", "Raw layout as JSON",
		func(path string, l model.GridLayout, _ []model.GridItem, _ model.LayoutSettings) error {
			return writeFile(path, func(w io.Writer) error { return export.ExportJSON(w, l) })
		}))

	return cmd
}

func (c *CLI) exportFormatCommand(name, ext, short string, fn exporter) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   name + " [items]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ext
			}
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), args[0], path, name, fn)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>"+ext+")")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, w io.Writer, input, output, format string, fn exporter) error {
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
	if err := fn(output, layout, items, s); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	p.done(fmt.Sprintf("Exported %d tiles", len(layout.Positions)))

	printSuccess(w, "Export complete")
	printFile(w, output)
	for _, msg := range layout.Warnings {
		printWarning(w, "%s", msg)
	}
	return nil
}
