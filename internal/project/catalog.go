package project

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/TileGrid/internal/model"
)

// DefaultCatalogPath returns the default file path for the activity catalog.
// This is located at ~/.tilegrid/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to path. Paths ending in .toml are written
// as [[activity]] tables; everything else is JSON.
func SaveCatalog(path string, c model.Catalog) error {
	if !isTOML(path) {
		return writeJSON(path, c)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadCatalog reads the catalog from path, as TOML or JSON by extension.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	c, err := readCatalog(path)
	if err != nil {
		if os.IsNotExist(err) {
			c = model.DefaultCatalog()
			return c, SaveCatalog(path, c)
		}
		return model.Catalog{}, err
	}
	return c, nil
}

// ImportCatalog merges the catalog at path into existing. Entries whose
// ID is already present are skipped.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	imported, err := readCatalog(path)
	if err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Entries))
	for _, e := range existing.Entries {
		ids[e.ID] = true
	}
	for _, e := range imported.Entries {
		if !ids[e.ID] {
			existing.Entries = append(existing.Entries, e)
			ids[e.ID] = true
		}
	}
	return existing, nil
}

func readCatalog(path string) (model.Catalog, error) {
	var c model.Catalog
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return model.Catalog{}, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Catalog{}, err
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return model.Catalog{}, err
		}
	}
	if c.Entries == nil {
		c.Entries = []model.CatalogEntry{}
	}
	return c, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
