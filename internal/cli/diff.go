package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/engine"
	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/model"
)

// diffReport is the json form of the diff command's output.
type diffReport struct {
	Reorganize  bool                        `json:"reorganize"`
	Added       []string                    `json:"added,omitempty"`
	Removed     []string                    `json:"removed,omitempty"`
	Transitions map[string]model.Transition `json:"transitions,omitempty"`
}

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff [old] [new]",
		Short: "Show how tiles move between two item lists",
		Long: `Show how tiles move between two item lists.

Items are matched by their id column. When both lists hold the same ids with
the same sizes the existing layout is kept. Otherwise both lists are laid out
and every tile whose position changed is listed with its pixel movement.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func (c *CLI) runDiff(ctx context.Context, w io.Writer, oldPath, newPath, format string) error {
	if format != "text" && format != "json" {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text or json)", format)
	}

	s, err := c.settings()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	prevItems, err := loadItems(ctx, oldPath)
	if err != nil {
		return err
	}
	nextItems, err := loadItems(ctx, newPath)
	if err != nil {
		return err
	}

	report := diffReport{Reorganize: engine.ShouldReorganizeLayout(prevItems, nextItems)}
	if report.Reorganize {
		e := c.newEngine(s)
		prev := e.CalculateLayout(prevItems)
		next := e.CalculateLayout(nextItems)
		report.Transitions = engine.ComputeTransitions(prev, next, s.CellSize)
		report.Added, report.Removed = membershipChanges(prev, next)
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if !report.Reorganize {
		printSuccess(w, "No reorganization needed")
		return nil
	}

	titles := titleIndex(append(append([]model.GridItem{}, prevItems...), nextItems...))
	printInfo(w, "Layout changes")
	printKeyValue(w, "Added", fmt.Sprintf("%d", len(report.Added)))
	printKeyValue(w, "Removed", fmt.Sprintf("%d", len(report.Removed)))
	printKeyValue(w, "Moved", fmt.Sprintf("%d", len(report.Transitions)))
	for _, id := range report.Added {
		printDetail(w, "+ %s", titleOr(titles, id))
	}
	for _, id := range report.Removed {
		printDetail(w, "- %s", titleOr(titles, id))
	}
	printTransitions(w, report.Transitions, titles)
	return nil
}

// printTransitions lists moved tiles by ID with their pixel coordinates.
func printTransitions(w io.Writer, moves map[string]model.Transition, titles map[string]string) {
	ids := make([]string, 0, len(moves))
	for id := range moves {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		t := moves[id]
		printDetail(w, "%s (%d,%d) %s (%d,%d)", titleOr(titles, id), t.From.X, t.From.Y, iconArrow, t.To.X, t.To.Y)
	}
}

// membershipChanges returns the sorted IDs only in next and only in prev.
func membershipChanges(prev, next model.GridLayout) (added, removed []string) {
	for id := range next.Positions {
		if _, ok := prev.Positions[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range prev.Positions {
		if _, ok := next.Positions[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

func titleOr(titles map[string]string, id string) string {
	if t := titles[id]; t != "" {
		return t
	}
	return id
}
