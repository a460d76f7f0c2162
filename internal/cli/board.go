package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/engine"
	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/history"
	"github.com/piwi3910/TileGrid/internal/model"
	"github.com/piwi3910/TileGrid/internal/project"
)

// boardCommand creates the board command and its subcommands.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create and edit saved boards",
		Long: `Create and edit saved boards.

A board file (` + project.BoardExt + `) holds its items, per-item size overrides,
settings, the last computed layout and an undo history. Every edit records a
snapshot and recomputes the layout only when the set of items or their sizes
changed; tiles that moved are listed with their pixel coordinates.

Items are referenced by id or by exact title.`,
	}

	cmd.AddCommand(c.boardNewCommand())
	cmd.AddCommand(c.boardAddCommand())
	cmd.AddCommand(c.boardRemoveCommand())
	cmd.AddCommand(c.boardResizeCommand())
	cmd.AddCommand(c.boardHistoryCommand("undo", "Undo the last edit"))
	cmd.AddCommand(c.boardHistoryCommand("redo", "Redo the last undone edit"))
	cmd.AddCommand(c.boardShowCommand())
	cmd.AddCommand(c.boardTemplateCommand())

	return cmd
}

// =============================================================================
// board new
// =============================================================================

func (c *CLI) boardNewCommand() *cobra.Command {
	var (
		name        string
		template    string
		fromCatalog bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a board, empty or from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardNew(cmd.Context(), cmd.OutOrStdout(), args[0], name, template, fromCatalog, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "board name (default: file name)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "start from a saved template")
	cmd.Flags().BoolVar(&fromCatalog, "from-catalog", false, "start with every catalog activity")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runBoardNew(ctx context.Context, w io.Writer, path, name, template string, fromCatalog, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var b model.Board
	switch {
	case template != "":
		store, err := project.LoadTemplates(c.dataPath(templatesFile))
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		tmpl := store.FindByName(template)
		if tmpl == nil {
			return errors.New(errors.ErrCodeNotFound, "template %q not found", template)
		}
		b = tmpl.ToBoard(name)
		b.Settings = b.Settings.Normalized()
	default:
		s, err := c.settings()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		b = model.NewBoard()
		b.Name = name
		b.Settings = s
		if fromCatalog {
			cat, err := project.LoadCatalog(c.dataPath(catalogFile))
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			b.Items = cat.Items()
		}
	}

	c.relayout(ctx, w, &b, nil)
	if err := project.SaveBoard(path, b, history.NewHistory()); err != nil {
		return err
	}
	c.rememberBoard(ctx, path)

	printSuccess(w, "Board %q created with %d items", b.Name, len(b.Items))
	printFile(w, path)
	return nil
}

// =============================================================================
// board add / remove / resize
// =============================================================================

func (c *CLI) boardAddCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "add [file] [title] [width height]",
		Short: "Add an item, sized from the catalog or explicitly",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 4 {
				return fmt.Errorf("accepts 2 or 4 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardAdd(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], args[2:], id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "item id (default: generated)")

	return cmd
}

func (c *CLI) runBoardAdd(ctx context.Context, w io.Writer, path, title string, size []string, id string) error {
	var width, height int
	if len(size) == 2 {
		var err error
		if width, height, err = parseSizeArgs(size[0], size[1]); err != nil {
			return err
		}
	} else {
		cat, err := project.LoadCatalog(c.dataPath(catalogFile))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		entry := cat.FindByTitle(title)
		if entry == nil {
			return errors.New(errors.ErrCodeNotFound, "%q is not in the catalog; give a width and height", title)
		}
		width, height = entry.Width, entry.Height
	}

	item := model.NewGridItem(title, width, height)
	if id != "" {
		item.ID = id
	}

	err := c.editBoard(ctx, w, path, "add "+title, func(b *model.Board) error {
		if b.FindItem(item.ID) >= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "item id %q is already on the board", item.ID)
		}
		b.Items = append(b.Items, item)
		return nil
	})
	if err != nil {
		return err
	}
	printSuccess(w, "Added %q (%dx%d) as %s", title, width, height, item.ID)
	return nil
}

func (c *CLI) boardRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [file] [item]",
		Short: "Remove an item and its size override",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			err := c.editBoard(cmd.Context(), w, args[0], "remove "+args[1], func(b *model.Board) error {
				idx, err := resolveItem(*b, args[1])
				if err != nil {
					return err
				}
				b.RemoveItem(b.Items[idx].ID)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess(w, "Removed %q", args[1])
			return nil
		},
	}
}

func (c *CLI) boardResizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize [file] [item] [width] [height]",
		Short: "Override an item's tile size",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, height, err := parseSizeArgs(args[2], args[3])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			err = c.editBoard(cmd.Context(), w, args[0], "resize "+args[1], func(b *model.Board) error {
				idx, err := resolveItem(*b, args[1])
				if err != nil {
					return err
				}
				b.SetOverride(b.Items[idx].ID, width, height)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess(w, "Resized %q to %dx%d", args[1], width, height)
			return nil
		},
	}
}

// =============================================================================
// board undo / redo
// =============================================================================

func (c *CLI) boardHistoryCommand(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " [file]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardHistory(cmd.Context(), cmd.OutOrStdout(), args[0], verb == "redo")
		},
	}
}

func (c *CLI) runBoardHistory(ctx context.Context, w io.Writer, path string, redo bool) error {
	b, hist, err := project.LoadBoard(path)
	if err != nil {
		return err
	}

	stack, verb := hist.UndoStack, "undo"
	if redo {
		stack, verb = hist.RedoStack, "redo"
	}
	if len(stack) == 0 {
		printWarning(w, "Nothing to %s", verb)
		return nil
	}
	label := stack[len(stack)-1].Label

	before := b.EffectiveItems()
	current := history.MakeSnapshot(b, label)
	var snap history.Snapshot
	if redo {
		snap, _ = hist.Redo(current)
	} else {
		snap, _ = hist.Undo(current)
	}

	kept := b.Layout
	snap.Restore(&b)
	b.Layout = kept
	c.relayout(ctx, w, &b, before)

	if err := project.SaveBoard(path, b, hist); err != nil {
		return err
	}
	if label == "" {
		label = "last edit"
	}
	done := "Undone"
	if redo {
		done = "Redone"
	}
	printSuccess(w, "%s: %s", done, label)
	return nil
}

// =============================================================================
// board show / template
// =============================================================================

func (c *CLI) boardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a board with its layout preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardShow(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func (c *CLI) runBoardShow(ctx context.Context, w io.Writer, path string) error {
	b, hist, err := project.LoadBoard(path)
	if err != nil {
		return err
	}

	// Saved layouts are trusted only if they still match the items.
	if b.Layout == nil || c.applyFlags(&b.Settings) || !layoutMatches(*b.Layout, b.EffectiveItems()) {
		l := c.newEngine(b.Settings).CalculateLayout(b.EffectiveItems())
		b.Layout = &l
	}

	fmt.Fprintln(w, StyleTitle.Render(b.Name))
	printKeyValue(w, "Items", fmt.Sprintf("%d", len(b.Items)))
	printKeyValue(w, "Overrides", fmt.Sprintf("%d", len(b.Overrides)))
	printKeyValue(w, "History", fmt.Sprintf("%d undo, %d redo", len(hist.UndoStack), len(hist.RedoStack)))
	printNewline(w)
	printLayout(w, *b.Layout, titleIndex(b.Items))
	return nil
}

func (c *CLI) boardTemplateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "template [file] [name]",
		Short: "Save a board as a reusable template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardTemplate(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "template description")

	return cmd
}

func (c *CLI) runBoardTemplate(ctx context.Context, w io.Writer, path, name, description string) error {
	b, _, err := project.LoadBoard(path)
	if err != nil {
		return err
	}

	storePath := c.dataPath(templatesFile)
	store, err := project.LoadTemplates(storePath)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	if old := store.FindByName(name); old != nil {
		loggerFromContext(ctx).Info("replacing template", "name", name)
		store.Remove(old.ID)
	}
	store.Add(model.NewBoardTemplate(name, description, b))
	if err := project.SaveTemplates(storePath, store); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}

	printSuccess(w, "Template %q saved", name)
	printFile(w, storePath)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// editBoard loads a board, applies edit, records the prior state in the
// undo history, relays out if needed and saves.
func (c *CLI) editBoard(ctx context.Context, w io.Writer, path, label string, edit func(*model.Board) error) error {
	b, hist, err := project.LoadBoard(path)
	if err != nil {
		return err
	}

	before := b.EffectiveItems()
	snap := history.MakeSnapshot(b, label)
	if err := edit(&b); err != nil {
		return err
	}
	hist.Push(snap)

	c.relayout(ctx, w, &b, before)
	return project.SaveBoard(path, b, hist)
}

// relayout recomputes b.Layout when the effective items changed since
// before, or when no layout exists yet, and prints the tiles that moved.
func (c *CLI) relayout(ctx context.Context, w io.Writer, b *model.Board, before []model.GridItem) {
	logger := loggerFromContext(ctx)
	resized := c.applyFlags(&b.Settings)
	after := b.EffectiveItems()

	if b.Layout != nil && !resized && !engine.ShouldReorganizeLayout(before, after) {
		logger.Debug("layout unchanged", "board", b.Name)
		return
	}

	next := c.newEngine(b.Settings).CalculateLayout(after)
	if b.Layout != nil {
		if moves := engine.ComputeTransitions(*b.Layout, next, b.Settings.CellSize); len(moves) > 0 {
			printInfo(w, "%d tiles moved", len(moves))
			printTransitions(w, moves, titleIndex(after))
		}
	}
	for _, msg := range next.Warnings {
		printWarning(w, "%s", msg)
	}
	b.Layout = &next
}

// layoutMatches reports whether l places exactly the given items at their
// current sizes.
func layoutMatches(l model.GridLayout, items []model.GridItem) bool {
	if len(l.Positions) != len(items) {
		return false
	}
	for _, it := range items {
		p, ok := l.Positions[it.ID]
		if !ok {
			return false
		}
		clamped := it.Clamp(l.GridWidth)
		if p.Width != clamped.Width || p.Height != clamped.Height {
			return false
		}
	}
	return true
}

// resolveItem finds an item by ID, then by exact title.
func resolveItem(b model.Board, ref string) (int, error) {
	if idx := b.FindItem(ref); idx >= 0 {
		return idx, nil
	}
	for i, it := range b.Items {
		if it.Title == ref {
			return i, nil
		}
	}
	return -1, errors.New(errors.ErrCodeNotFound, "no item %q on the board", ref)
}

func parseSizeArgs(ws, hs string) (int, int, error) {
	w, err := strconv.Atoi(ws)
	if err != nil || w < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "width must be a positive integer, got %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "height must be a positive integer, got %q", hs)
	}
	return w, h, nil
}

// rememberBoard records path in the config's recent boards list. Failures
// are logged and otherwise ignored.
func (c *CLI) rememberBoard(ctx context.Context, path string) {
	logger := loggerFromContext(ctx)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	cfg, err := project.LoadAppConfig(c.config())
	if err != nil {
		logger.Warn("could not update recent boards", "err", err)
		return
	}
	cfg.AddRecentBoard(path)
	if err := project.SaveAppConfig(c.config(), cfg); err != nil {
		logger.Warn("could not update recent boards", "err", err)
	}
}
