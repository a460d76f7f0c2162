package importer

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/TileGrid/internal/model"
)

// ImportTOML imports items from a TOML catalog of [[activity]] tables:
//
//	[[activity]]
//	id = "walk"
//	title = "Morning Walk"
//	width = 2
//	height = 1
func ImportTOML(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportTOMLData(data)
}

// ImportTOMLData imports items from TOML catalog content.
func ImportTOMLData(data []byte) ImportResult {
	result := ImportResult{}

	var catalog model.Catalog
	md, err := toml.Decode(string(data), &catalog)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse TOML: %v", err))
		return result
	}
	for _, key := range md.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown key '%s' ignored", key.String()))
	}

	if len(catalog.Entries) == 0 {
		result.Errors = append(result.Errors, "No [[activity]] entries found")
		return result
	}

	seen := make(map[string]bool)
	for i, e := range catalog.Entries {
		label := fmt.Sprintf("Activity %d", i+1)
		if e.Width <= 0 || e.Height <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Width and height must be positive", label))
			continue
		}
		if e.Title == "" && e.ID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing title and id", label))
			continue
		}

		item := model.NewGridItem(e.Title, e.Width, e.Height)
		if e.ID != "" {
			item.ID = e.ID
		}
		if e.Height > model.MaxItemHeight {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Height %d exceeds %d and will be clamped", label, e.Height, model.MaxItemHeight))
		}
		if seen[item.ID] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate id '%s' skipped", label, item.ID))
			continue
		}
		seen[item.ID] = true

		result.Items = append(result.Items, item)
	}

	return result
}
