package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TileGrid/internal/model"
)

func TestComputeTransitions(t *testing.T) {
	prev := model.NewGridLayout(4)
	prev.Positions["x"] = model.GridPosition{X: 0, Y: 0, Width: 1, Height: 1}
	prev.Positions["still"] = model.GridPosition{X: 1, Y: 1, Width: 1, Height: 1}
	prev.Positions["gone"] = model.GridPosition{X: 3, Y: 0, Width: 1, Height: 1}

	next := model.NewGridLayout(4)
	next.Positions["x"] = model.GridPosition{X: 2, Y: 0, Width: 1, Height: 1}
	next.Positions["still"] = model.GridPosition{X: 1, Y: 1, Width: 2, Height: 1}
	next.Positions["new"] = model.GridPosition{X: 0, Y: 0, Width: 1, Height: 1}

	got := ComputeTransitions(prev, next, 100)

	require.Len(t, got, 1)
	assert.Equal(t, model.Transition{
		From: model.Point{X: 0, Y: 0},
		To:   model.Point{X: 200, Y: 0},
	}, got["x"])
	assert.NotContains(t, got, "gone")
	assert.NotContains(t, got, "new")
	assert.NotContains(t, got, "still", "resizing in place is not a move")
}

func TestComputeTransitions_ScalesByCellSize(t *testing.T) {
	prev := model.NewGridLayout(10)
	prev.Positions["a"] = model.GridPosition{X: 1, Y: 2, Width: 1, Height: 1}
	next := model.NewGridLayout(10)
	next.Positions["a"] = model.GridPosition{X: 3, Y: 0, Width: 1, Height: 1}

	got := ComputeTransitions(prev, next, 48)

	assert.Equal(t, model.Point{X: 48, Y: 96}, got["a"].From)
	assert.Equal(t, model.Point{X: 144, Y: 0}, got["a"].To)
}

func TestComputeTransitions_AfterRelayout(t *testing.T) {
	eng := newTestEngine(3)
	before := []model.GridItem{
		{ID: "b", Title: "B", Width: 1, Height: 1},
		{ID: "c", Title: "C", Width: 1, Height: 1},
	}
	after := append([]model.GridItem{{ID: "a", Title: "A", Width: 1, Height: 1}}, before...)

	require.True(t, ShouldReorganizeLayout(before, after))
	got := ComputeTransitions(eng.CalculateLayout(before), eng.CalculateLayout(after), 10)

	assert.Equal(t, model.Transition{From: model.Point{X: 0}, To: model.Point{X: 10}}, got["b"])
	assert.Equal(t, model.Transition{From: model.Point{X: 10}, To: model.Point{X: 20}}, got["c"])
	assert.NotContains(t, got, "a")
}
