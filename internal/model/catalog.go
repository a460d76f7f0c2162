package model

import "github.com/google/uuid"

// CatalogEntry is a reusable activity definition with its default tile size.
type CatalogEntry struct {
	ID       string `json:"id" toml:"id"`
	Title    string `json:"title" toml:"title"`
	Width    int    `json:"width" toml:"width"`
	Height   int    `json:"height" toml:"height"`
	Category string `json:"category" toml:"category"`
}

// NewCatalogEntry creates a new CatalogEntry with a generated ID.
func NewCatalogEntry(title string, w, h int, category string) CatalogEntry {
	return CatalogEntry{
		ID:       uuid.New().String()[:8],
		Title:    title,
		Width:    w,
		Height:   h,
		Category: category,
	}
}

// ToGridItem converts the entry into a layout item keeping its ID.
func (e CatalogEntry) ToGridItem() GridItem {
	return GridItem{ID: e.ID, Title: e.Title, Width: e.Width, Height: e.Height}
}

// Catalog holds the activity library.
type Catalog struct {
	Entries []CatalogEntry `json:"entries" toml:"activity"`
}

// DefaultCatalog returns a small library of sample activities.
func DefaultCatalog() Catalog {
	return Catalog{
		Entries: []CatalogEntry{
			NewCatalogEntry("Morning Walk", 2, 1, "Movement"),
			NewCatalogEntry("Journal", 1, 1, "Reflection"),
			NewCatalogEntry("Read Biography", 2, 2, "Learning"),
			NewCatalogEntry("Cold Shower", 1, 1, "Discipline"),
			NewCatalogEntry("Deep Work Block", 3, 2, "Focus"),
			NewCatalogEntry("Call a Friend", 1, 2, "Connection"),
			NewCatalogEntry("Evening Review", 2, 1, "Reflection"),
		},
	}
}

// FindByID returns a pointer to the entry with the given ID, or nil.
func (c *Catalog) FindByID(id string) *CatalogEntry {
	for i := range c.Entries {
		if c.Entries[i].ID == id {
			return &c.Entries[i]
		}
	}
	return nil
}

// FindByTitle returns a pointer to the first entry with the given title, or nil.
func (c *Catalog) FindByTitle(title string) *CatalogEntry {
	for i := range c.Entries {
		if c.Entries[i].Title == title {
			return &c.Entries[i]
		}
	}
	return nil
}

// Titles returns the entry titles in catalog order.
func (c *Catalog) Titles() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Title
	}
	return names
}

// Items converts every entry into a layout item.
func (c *Catalog) Items() []GridItem {
	items := make([]GridItem, len(c.Entries))
	for i, e := range c.Entries {
		items[i] = e.ToGridItem()
	}
	return items
}

// Size is a tile size in grid units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SizeOverrides maps item IDs to user-chosen tile sizes.
type SizeOverrides map[string]Size

// Apply returns a copy of items with every overridden size substituted.
// Items without an override, and the input slice, are left untouched.
func (o SizeOverrides) Apply(items []GridItem) []GridItem {
	out := make([]GridItem, len(items))
	for i, it := range items {
		if s, ok := o[it.ID]; ok {
			it.Width = s.Width
			it.Height = s.Height
		}
		out[i] = it
	}
	return out
}
