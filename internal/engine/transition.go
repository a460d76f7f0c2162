package engine

import "github.com/piwi3910/TileGrid/internal/model"

// ComputeTransitions returns the pixel movement of every item that is
// present in both layouts and changed cell. Items that appear in only one
// layout, or did not move, are omitted.
func ComputeTransitions(prev, next model.GridLayout, cellSize int) map[string]model.Transition {
	transitions := make(map[string]model.Transition)
	for id, to := range next.Positions {
		from, ok := prev.Positions[id]
		if !ok {
			continue
		}
		if from.X == to.X && from.Y == to.Y {
			continue
		}
		transitions[id] = model.Transition{
			From: model.Point{X: from.X * cellSize, Y: from.Y * cellSize},
			To:   model.Point{X: to.X * cellSize, Y: to.Y * cellSize},
		}
	}
	return transitions
}
