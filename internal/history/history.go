// Package history keeps bounded undo/redo stacks of board edits.
package history

import "github.com/piwi3910/TileGrid/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the board items and size overrides at a point in time.
type Snapshot struct {
	Items     []model.GridItem    `json:"items"`
	Overrides model.SizeOverrides `json:"overrides,omitempty"`
	Label     string              `json:"label"` // Human-readable description (e.g. "add Journal")
}

// History manages undo/redo stacks of board snapshots. Its fields are
// exported so the stacks can be stored alongside the board.
type History struct {
	UndoStack []Snapshot `json:"undo,omitempty"`
	RedoStack []Snapshot `json:"redo,omitempty"`
	MaxDepth  int        `json:"max_depth,omitempty"`
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		MaxDepth: defaultMaxDepth,
	}
}

func (h *History) depth() int {
	if h.MaxDepth < 1 {
		return defaultMaxDepth
	}
	return h.MaxDepth
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// Call it with the state from before the modification.
func (h *History) Push(s Snapshot) {
	h.UndoStack = append(h.UndoStack, s)
	if limit := h.depth(); len(h.UndoStack) > limit {
		h.UndoStack = h.UndoStack[len(h.UndoStack)-limit:]
	}
	h.RedoStack = nil
}

// Undo pops the most recent snapshot and pushes current onto the redo
// stack. It returns false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.UndoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.UndoStack[len(h.UndoStack)-1]
	h.UndoStack = h.UndoStack[:len(h.UndoStack)-1]
	h.RedoStack = append(h.RedoStack, current)
	return last, true
}

// Redo pops the most recent redo snapshot and pushes current back onto
// the undo stack. It returns false when there is nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.RedoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.RedoStack[len(h.RedoStack)-1]
	h.RedoStack = h.RedoStack[:len(h.RedoStack)-1]
	h.UndoStack = append(h.UndoStack, current)
	return last, true
}

func (h *History) CanUndo() bool { return len(h.UndoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.RedoStack) > 0 }

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.UndoStack = nil
	h.RedoStack = nil
}

// MakeSnapshot copies the board's items and overrides into a snapshot.
func MakeSnapshot(b model.Board, label string) Snapshot {
	s := Snapshot{Label: label}
	if b.Items != nil {
		s.Items = make([]model.GridItem, len(b.Items))
		copy(s.Items, b.Items)
	}
	if len(b.Overrides) > 0 {
		s.Overrides = make(model.SizeOverrides, len(b.Overrides))
		for id, size := range b.Overrides {
			s.Overrides[id] = size
		}
	}
	return s
}

// Restore writes the snapshot's items and overrides back into b.
func (s Snapshot) Restore(b *model.Board) {
	b.Items = s.Items
	if b.Items == nil {
		b.Items = []model.GridItem{}
	}
	b.Overrides = s.Overrides
	if b.Overrides == nil {
		b.Overrides = model.SizeOverrides{}
	}
	b.Layout = nil
}
