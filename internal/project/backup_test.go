package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TileGrid/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultGridWidth = 8
	cfg.Theme = "dark"
	templates := model.NewTemplateStore()
	templates.Add(model.NewBoardTemplate("Weekday", "", model.NewBoard()))

	if err := ExportAllData(path, cfg, model.DefaultCatalog(), templates); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultGridWidth != 8 {
		t.Errorf("expected DefaultGridWidth=8, got %d", backup.Config.DefaultGridWidth)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Catalog.Entries) != len(model.DefaultCatalog().Entries) {
		t.Errorf("catalog not preserved, got %d entries", len(backup.Catalog.Entries))
	}
	if len(backup.Templates.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(backup.Templates.Templates))
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"theme":"dark"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.Catalog{}, model.NewTemplateStore()); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2026-01-01T00:00:00Z","config":{"recent_boards":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentBoards == nil {
		t.Error("RecentBoards should not be nil after import")
	}
	if backup.Catalog.Entries == nil || backup.Templates.Templates == nil {
		t.Error("catalog and templates should not be nil after import")
	}
}
