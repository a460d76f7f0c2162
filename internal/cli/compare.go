package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TileGrid/internal/engine"
	"github.com/piwi3910/TileGrid/internal/errors"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var widths []int

	cmd := &cobra.Command{
		Use:   "compare [items]",
		Short: "Lay out the same items at several grid widths",
		Long: `Lay out the same items at several grid widths.

Without --widths the current width is compared against two columns fewer, two
columns more and double the width. The row marked with a check has the fewest
fallback placements, then the fewest rows, then the highest utilization.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd.Context(), cmd.OutOrStdout(), args[0], widths)
		},
	}

	cmd.Flags().IntSliceVar(&widths, "widths", nil, "grid widths to compare (e.g. 6,8,12)")

	return cmd
}

func (c *CLI) runCompare(ctx context.Context, w io.Writer, input string, widths []int) error {
	s, err := c.settings()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var scenarios []engine.ComparisonScenario
	if len(widths) == 0 {
		scenarios = engine.BuildDefaultScenarios(s)
	} else {
		for _, width := range widths {
			if width < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "grid width must be positive, got %d", width)
			}
			alt := s
			alt.GridWidth = width
			scenarios = append(scenarios, engine.ComparisonScenario{
				Name:     fmt.Sprintf("%d columns", width),
				Settings: alt,
			})
		}
	}

	items, err := loadItems(ctx, input)
	if err != nil {
		return err
	}

	p := newProgress(loggerFromContext(ctx))
	results := engine.CompareWidths(scenarios, items, c.Logger)
	p.done(fmt.Sprintf("Compared %d widths", len(results)))

	best := bestResult(results)

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%-22s %6s %8s %6s %8s", "Scenario", "Rows", "Usage", "Gaps", "Warnings")))
	for i, r := range results {
		line := fmt.Sprintf("%-22s %6d %7.1f%% %6d %8d",
			r.Scenario.Name, r.TotalHeight, r.Utilization, r.GapCells, r.Warnings)
		if i == best {
			fmt.Fprintln(w, StyleSuccess.Render(line+" "+iconSuccess))
			continue
		}
		fmt.Fprintln(w, StyleValue.Render(line))
	}
	return nil
}

// bestResult returns the index of the preferred result, or -1 when empty.
func bestResult(results []engine.ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		switch {
		case r.Warnings != b.Warnings:
			if r.Warnings < b.Warnings {
				best = i
			}
		case r.TotalHeight != b.TotalHeight:
			if r.TotalHeight < b.TotalHeight {
				best = i
			}
		case r.Utilization > b.Utilization:
			best = i
		}
	}
	return best
}
