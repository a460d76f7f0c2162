package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TileGrid/internal/errors"
	"github.com/piwi3910/TileGrid/internal/history"
	"github.com/piwi3910/TileGrid/internal/model"
)

func TestSaveAndLoadBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week"+BoardExt)

	b := model.NewBoard()
	b.Name = "Week"
	b.Items = []model.GridItem{
		{ID: "walk", Title: "Morning Walk", Width: 2, Height: 1},
		{ID: "journal", Title: "Journal", Width: 1, Height: 1},
	}
	b.SetOverride("walk", 3, 1)
	b.Settings.GridWidth = 6
	layout := model.NewGridLayout(6)
	layout.Positions["walk"] = model.GridPosition{X: 0, Y: 0, Width: 3, Height: 1}
	b.Layout = &layout

	hist := history.NewHistory()
	hist.Push(history.MakeSnapshot(model.NewBoard(), "add walk"))

	if err := SaveBoard(path, b, hist); err != nil {
		t.Fatalf("SaveBoard failed: %v", err)
	}

	loaded, loadedHist, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard failed: %v", err)
	}

	if loaded.Name != "Week" {
		t.Errorf("expected name 'Week', got %q", loaded.Name)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if loaded.Overrides["walk"].Width != 3 {
		t.Errorf("override not restored: %+v", loaded.Overrides)
	}
	if loaded.Settings.GridWidth != 6 {
		t.Errorf("expected grid width 6, got %d", loaded.Settings.GridWidth)
	}
	if loaded.Layout == nil || loaded.Layout.Positions["walk"].Width != 3 {
		t.Errorf("layout not restored: %+v", loaded.Layout)
	}
	if !loadedHist.CanUndo() {
		t.Error("history should be restored")
	}
}

func TestLoadBoardWithoutHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain"+BoardExt)
	if err := SaveBoard(path, model.NewBoard(), nil); err != nil {
		t.Fatalf("SaveBoard failed: %v", err)
	}

	_, hist, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard failed: %v", err)
	}
	if hist == nil {
		t.Fatal("expected an empty history, got nil")
	}
	if hist.CanUndo() {
		t.Error("history should be empty")
	}
}

func TestLoadBoardMissingFile(t *testing.T) {
	_, _, err := LoadBoard(filepath.Join(t.TempDir(), "nope"+BoardExt))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadBoardInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad"+BoardExt)
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadBoard(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT for bad JSON, got %v", err)
	}

	noVersion := filepath.Join(dir, "old"+BoardExt)
	if err := os.WriteFile(noVersion, []byte(`{"board":{"name":"x"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadBoard(noVersion); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT for missing version, got %v", err)
	}
}

func TestLoadBoardNormalizesNilFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse"+BoardExt)
	data := []byte(`{"version":"1","board":{"name":"Sparse","items":null,"settings":{"grid_width":0}}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	b, _, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard failed: %v", err)
	}
	if b.Items == nil || b.Overrides == nil {
		t.Error("items and overrides should never be nil")
	}
	if b.Settings.GridWidth != model.DefaultGridWidth {
		t.Errorf("invalid grid width should normalize to default, got %d", b.Settings.GridWidth)
	}
}
