package project

import (
	"encoding/json"
	"os"
	"time"

	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/history"
	"github.com/piwi3910/TileGrid/internal/model"
)

// BoardExt is the file extension for saved boards.
const BoardExt = ".tgboard"

const boardFileVersion = "1"

// boardFile is the on-disk form of a board and its edit history.
type boardFile struct {
	Version string           `json:"version"`
	SavedAt string           `json:"saved_at"`
	Board   model.Board      `json:"board"`
	History *history.History `json:"history,omitempty"`
}

// SaveBoard writes a board and its undo history to path.
func SaveBoard(path string, board model.Board, hist *history.History) error {
	f := boardFile{
		Version: boardFileVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Board:   board,
		History: hist,
	}
	if err := writeJSON(path, f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save board %s", path)
	}
	return nil
}

// LoadBoard reads a board saved by SaveBoard. Unlike the config files, a
// missing board is an error.
func LoadBoard(path string) (model.Board, *history.History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Board{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board %s", path)
		}
		return model.Board{}, nil, errors.Wrap(errors.ErrCodeInternal, err, "read board %s", path)
	}

	var f boardFile
	if err := json.Unmarshal(data, &f); err != nil {
		return model.Board{}, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse board %s", path)
	}
	if f.Version == "" {
		return model.Board{}, nil, errors.New(errors.ErrCodeInvalidFormat, "board %s: missing version field", path)
	}

	b := f.Board
	if b.Items == nil {
		b.Items = []model.GridItem{}
	}
	if b.Overrides == nil {
		b.Overrides = model.SizeOverrides{}
	}
	b.Settings = b.Settings.Normalized()

	hist := f.History
	if hist == nil {
		hist = history.NewHistory()
	}
	return b, hist, nil
}
