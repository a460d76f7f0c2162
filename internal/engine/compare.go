package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/TileGrid/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds the layout and computed statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Layout      model.GridLayout
	TotalHeight int
	Utilization float64
	GapCells    int
	Warnings    int
}

// CompareWidths lays out the same items once per scenario and returns the
// results in scenario order, so different board widths can be judged side
// by side.
func CompareWidths(scenarios []ComparisonScenario, items []model.GridItem, logger *log.Logger) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		eng := New(scenario.Settings).WithLogger(logger)
		layout := eng.CalculateLayout(items)

		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Layout:      layout,
			TotalHeight: layout.TotalHeight,
			Utilization: layout.Utilization(),
			GapCells:    layout.TotalCells() - min(layout.UsedCells(), layout.TotalCells()),
			Warnings:    len(layout.Warnings),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if scenarios around the current
// settings: the current width plus narrower and wider boards.
func BuildDefaultScenarios(base model.LayoutSettings) []ComparisonScenario {
	base = base.Normalized()
	scenarios := []ComparisonScenario{
		{
			Name:     fmt.Sprintf("Current (%d columns)", base.GridWidth),
			Settings: base,
		},
	}

	for _, w := range []int{base.GridWidth - 2, base.GridWidth + 2, base.GridWidth * 2} {
		if w < 1 || w == base.GridWidth || hasWidth(scenarios, w) {
			continue
		}
		alt := base
		alt.GridWidth = w
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%d columns", w),
			Settings: alt,
		})
	}

	return scenarios
}

func hasWidth(scenarios []ComparisonScenario, w int) bool {
	for _, s := range scenarios {
		if s.Settings.GridWidth == w {
			return true
		}
	}
	return false
}
