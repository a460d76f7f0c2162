package model

// Board ties items, size overrides and settings together for save/load.
type Board struct {
	Name      string         `json:"name"`
	Items     []GridItem     `json:"items"`
	Overrides SizeOverrides  `json:"overrides,omitempty"`
	Settings  LayoutSettings `json:"settings"`
	Layout    *GridLayout    `json:"layout,omitempty"`
}

func NewBoard() Board {
	return Board{
		Name:      "Untitled",
		Items:     []GridItem{},
		Overrides: SizeOverrides{},
		Settings:  DefaultSettings(),
	}
}

// EffectiveItems returns the board items with size overrides applied.
func (b Board) EffectiveItems() []GridItem {
	return b.Overrides.Apply(b.Items)
}

// FindItem returns the index of the item with the given ID, or -1.
func (b Board) FindItem(id string) int {
	for i, it := range b.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// RemoveItem deletes an item and its override. Returns false if not found.
func (b *Board) RemoveItem(id string) bool {
	idx := b.FindItem(id)
	if idx < 0 {
		return false
	}
	b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
	delete(b.Overrides, id)
	return true
}

// SetOverride records a custom size for an item.
func (b *Board) SetOverride(id string, w, h int) {
	if b.Overrides == nil {
		b.Overrides = SizeOverrides{}
	}
	b.Overrides[id] = Size{Width: w, Height: h}
}
