package model

// AppConfig holds application-wide preferences and default settings.
// Environment variables take precedence over the values stored on disk.
type AppConfig struct {
	// Defaults applied to new boards
	DefaultGridWidth int `json:"default_grid_width" env:"TILEGRID_GRID_WIDTH"`
	DefaultCellSize  int `json:"default_cell_size" env:"TILEGRID_CELL_SIZE"`

	// Application preferences
	RecentBoards []string `json:"recent_boards"`
	Theme        string   `json:"theme" env:"TILEGRID_THEME"` // "light", "dark", "system"
}

// maxRecentBoards bounds the recent-boards list.
const maxRecentBoards = 10

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultGridWidth: defaults.GridWidth,
		DefaultCellSize:  defaults.CellSize,
		RecentBoards:     []string{},
		Theme:            "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// LayoutSettings struct, so new boards inherit the user's saved defaults.
// Non-positive values are ignored.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if c.DefaultGridWidth > 0 {
		s.GridWidth = c.DefaultGridWidth
	}
	if c.DefaultCellSize > 0 {
		s.CellSize = c.DefaultCellSize
	}
}

// AddRecentBoard moves path to the front of the recent list, dropping
// duplicates and the oldest entries past the limit.
func (c *AppConfig) AddRecentBoard(path string) {
	recent := []string{path}
	for _, p := range c.RecentBoards {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentBoards {
		recent = recent[:maxRecentBoards]
	}
	c.RecentBoards = recent
}
