// Package cli implements the tilegrid command-line interface.
//
// The CLI lays out activity tiles on a fixed-width grid, compares item
// lists and grid widths, renders exports and edits saved boards. It is
// built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: compute and preview a layout for an item file
//   - diff: report whether two item lists need a new layout and how tiles move
//   - compare: lay out the same items at several grid widths
//   - export: write PDF, tile cards, spreadsheets, CSS or JSON
//   - board: create and edit a saved board with undo/redo
//   - catalog, backup: manage the activity library and application data
//
// # Settings
//
// Layout settings are resolved from the defaults, then the config file
// (--config, default ~/.tilegrid/config.json) and TILEGRID_* environment
// variables, then --width and --cell-size.
package cli

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/engine"
	"github.com/piwi3910/TileGrid/internal/model"
	"github.com/piwi3910/TileGrid/internal/project"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "tilegrid"

const (
	catalogFile   = "catalog.json"
	templatesFile = "templates.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	width      int
	cellSize   int
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "TileGrid packs activity tiles onto a fixed-width grid",
		Long:          `TileGrid arranges rectangular activity tiles on a fixed-width grid, alphabetically and as compactly as a first-fit scan allows, and renders the result as a terminal preview, PDF, tile cards, spreadsheets or CSS.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(versionTemplate())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.tilegrid/config.json)")
	root.PersistentFlags().IntVar(&c.width, "width", 0, "grid width in columns (overrides config)")
	root.PersistentFlags().IntVar(&c.cellSize, "cell-size", 0, "cell size in pixels (overrides config)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.backupCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

// settings resolves the layout settings for commands that work on plain
// item files.
func (c *CLI) settings() (model.LayoutSettings, error) {
	cfg, err := project.LoadAppConfigWithEnv(c.config())
	if err != nil {
		return model.LayoutSettings{}, err
	}
	s := model.DefaultSettings()
	cfg.ApplyToSettings(&s)
	c.applyFlags(&s)
	return s, nil
}

// applyFlags overrides s with any --width or --cell-size given.
func (c *CLI) applyFlags(s *model.LayoutSettings) bool {
	changed := false
	if c.width > 0 && s.GridWidth != c.width {
		s.GridWidth = c.width
		changed = true
	}
	if c.cellSize > 0 && s.CellSize != c.cellSize {
		s.CellSize = c.cellSize
		changed = true
	}
	return changed
}

func (c *CLI) newEngine(s model.LayoutSettings) *engine.Engine {
	return engine.New(s).WithLogger(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

func (c *CLI) config() string {
	if c.configPath != "" {
		return c.configPath
	}
	return project.DefaultConfigPath()
}

// dataPath returns a file next to the config file.
func (c *CLI) dataPath(name string) string {
	return filepath.Join(filepath.Dir(c.config()), name)
}
