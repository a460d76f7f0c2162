package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/importer"
	"github.com/piwi3910/TileGrid/internal/model"
	"github.com/piwi3910/TileGrid/internal/project"
)

// catalogCommand creates the catalog command and its subcommands.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the activity catalog",
		Long: `Manage the activity catalog.

The catalog is the library of activities with their default tile sizes. It
lives next to the config file and is created with sample activities on first
use. 'board add' sizes items from it when no size is given.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalogList(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Merge activities from a TOML, JSON, CSV or Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalogImport(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write the catalog as TOML (.toml) or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalogExport(cmd.OutOrStdout(), args[0])
		},
	})

	return cmd
}

func (c *CLI) runCatalogList(w io.Writer) error {
	cat, err := project.LoadCatalog(c.dataPath(catalogFile))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%-24s %-6s %-12s %s", "Title", "Size", "Category", "ID")))
	for _, e := range cat.Entries {
		fmt.Fprintln(w, StyleValue.Render(fmt.Sprintf("%-24s %-6s %-12s", e.Title, fmt.Sprintf("%dx%d", e.Width, e.Height), e.Category))+
			" "+StyleDim.Render(e.ID))
	}
	return nil
}

func (c *CLI) runCatalogImport(ctx context.Context, w io.Writer, input string) error {
	path := c.dataPath(catalogFile)
	cat, err := project.LoadCatalog(path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	before := len(cat.Entries)

	switch strings.ToLower(filepath.Ext(input)) {
	case ".json":
		if cat, err = project.ImportCatalog(input, cat); err != nil {
			return fmt.Errorf("import catalog %s: %w", input, err)
		}
	default:
		res := importer.ImportFile(input)
		for _, msg := range res.Warnings {
			loggerFromContext(ctx).Debug(msg, "file", input)
		}
		for _, msg := range res.Errors {
			printError(w, "%s", msg)
		}
		mergeItems(&cat, res.Items)
	}

	if err := project.SaveCatalog(path, cat); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	printSuccess(w, "Imported %d activities", len(cat.Entries)-before)
	printFile(w, path)
	return nil
}

// mergeItems appends items to the catalog, skipping IDs already present.
func mergeItems(cat *model.Catalog, items []model.GridItem) {
	for _, it := range items {
		if cat.FindByID(it.ID) != nil {
			continue
		}
		cat.Entries = append(cat.Entries, model.CatalogEntry{
			ID:     it.ID,
			Title:  it.Title,
			Width:  it.Width,
			Height: it.Height,
		})
	}
}

func (c *CLI) runCatalogExport(w io.Writer, output string) error {
	cat, err := project.LoadCatalog(c.dataPath(catalogFile))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := project.SaveCatalog(output, cat); err != nil {
		return fmt.Errorf("write catalog %s: %w", output, err)
	}
	printSuccess(w, "Exported %d activities", len(cat.Entries))
	printFile(w, output)
	return nil
}

// backupCommand creates the backup command.
func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config, catalog and templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write all application data to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBackupExport(cmd.OutOrStdout(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Replace application data from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBackupImport(cmd.OutOrStdout(), args[0])
		},
	})

	return cmd
}

func (c *CLI) runBackupExport(w io.Writer, output string) error {
	cfg, err := project.LoadAppConfig(c.config())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cat, err := project.LoadCatalog(c.dataPath(catalogFile))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, err := project.LoadTemplates(c.dataPath(templatesFile))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	if err := project.ExportAllData(output, cfg, cat, store); err != nil {
		return err
	}
	printSuccess(w, "Backup written")
	printFile(w, output)
	return nil
}

func (c *CLI) runBackupImport(w io.Writer, input string) error {
	data, err := project.ImportAllData(input)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(c.config(), data.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := project.SaveCatalog(c.dataPath(catalogFile), data.Catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := project.SaveTemplates(c.dataPath(templatesFile), data.Templates); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}

	printSuccess(w, "Restored backup from %s", data.CreatedAt)
	printKeyValue(w, "Activities", fmt.Sprintf("%d", len(data.Catalog.Entries)))
	printKeyValue(w, "Templates", fmt.Sprintf("%d", len(data.Templates.Templates)))
	return nil
}
