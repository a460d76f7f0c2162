package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardTemplate is a reusable board configuration that captures items,
// size overrides and settings but not a computed layout.
type BoardTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Items       []GridItem     `json:"items"`
	Overrides   SizeOverrides  `json:"overrides,omitempty"`
	Settings    LayoutSettings `json:"settings"`
}

// NewBoardTemplate creates a template from the given board.
// The layout is intentionally left out.
func NewBoardTemplate(name, description string, b Board) BoardTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return BoardTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       copyItems(b.Items),
		Overrides:   copyOverrides(b.Overrides),
		Settings:    b.Settings,
	}
}

// ToBoard creates a new Board from this template.
// Items get fresh IDs so they are independent of the template; overrides
// follow their items.
func (t BoardTemplate) ToBoard(boardName string) Board {
	items := make([]GridItem, len(t.Items))
	overrides := SizeOverrides{}
	for i, it := range t.Items {
		items[i] = NewGridItem(it.Title, it.Width, it.Height)
		if s, ok := t.Overrides[it.ID]; ok {
			overrides[items[i].ID] = s
		}
	}

	return Board{
		Name:      boardName,
		Items:     items,
		Overrides: overrides,
		Settings:  t.Settings,
	}
}

// TemplateStore holds a collection of board templates.
type TemplateStore struct {
	Templates []BoardTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []BoardTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t BoardTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *BoardTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *BoardTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyItems(items []GridItem) []GridItem {
	if items == nil {
		return []GridItem{}
	}
	cp := make([]GridItem, len(items))
	copy(cp, items)
	return cp
}

func copyOverrides(o SizeOverrides) SizeOverrides {
	cp := make(SizeOverrides, len(o))
	for id, s := range o {
		cp[id] = s
	}
	return cp
}
