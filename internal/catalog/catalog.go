// Package catalog holds the system-defined category taxonomy. It is loaded
// once at startup from an embedded definition set and is read-only afterwards,
// so lookups need no synchronization.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finora-app/finora-backend/internal/models"
)

//go:embed categories.json
var defaultDefinitions []byte

const maxNameLength = 50

type Catalog struct {
	categories    map[string]models.Category
	order         []string
	subcategories map[string]map[string]models.Subcategory
	suborder      map[string][]string
}

type definitionFile struct {
	Categories    []models.Category    `json:"categories"`
	Subcategories []models.Subcategory `json:"subcategories"`
}

// Load parses the embedded definition set. A malformed set is a startup
// failure, never a runtime one.
func Load() (*Catalog, error) {
	return load(defaultDefinitions)
}

func load(raw []byte) (*Catalog, error) {
	var defs definitionFile
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse category definitions: %w", err)
	}

	c := &Catalog{
		categories:    make(map[string]models.Category, len(defs.Categories)),
		subcategories: make(map[string]map[string]models.Subcategory, len(defs.Categories)),
		suborder:      make(map[string][]string, len(defs.Categories)),
	}

	for _, cat := range defs.Categories {
		if err := validateName(cat.Name); err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.ID, err)
		}
		if !cat.Type.Valid() {
			return nil, fmt.Errorf("category %q: invalid type %q", cat.ID, cat.Type)
		}
		if _, exists := c.categories[cat.ID]; exists {
			return nil, fmt.Errorf("duplicate category id %q", cat.ID)
		}
		c.categories[cat.ID] = cat
		c.order = append(c.order, cat.ID)
	}

	for _, sub := range defs.Subcategories {
		if err := validateName(sub.Name); err != nil {
			return nil, fmt.Errorf("subcategory %q: %w", sub.ID, err)
		}
		if _, ok := c.categories[sub.CategoryID]; !ok {
			return nil, fmt.Errorf("subcategory %q references unknown category %q", sub.ID, sub.CategoryID)
		}
		subs := c.subcategories[sub.CategoryID]
		if subs == nil {
			subs = make(map[string]models.Subcategory)
			c.subcategories[sub.CategoryID] = subs
		}
		if _, exists := subs[sub.ID]; exists {
			return nil, fmt.Errorf("duplicate subcategory id %q under %q", sub.ID, sub.CategoryID)
		}
		subs[sub.ID] = sub
		c.suborder[sub.CategoryID] = append(c.suborder[sub.CategoryID], sub.ID)
	}

	return c, nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(trimmed) > maxNameLength {
		return fmt.Errorf("name must be %d characters or less", maxNameLength)
	}
	return nil
}

// Get returns the category for id.
func (c *Catalog) Get(id string) (models.Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

// GetSubcategory returns the subcategory only if it belongs to categoryID.
func (c *Catalog) GetSubcategory(categoryID, subID string) (models.Subcategory, bool) {
	subs, ok := c.subcategories[categoryID]
	if !ok {
		return models.Subcategory{}, false
	}
	sub, ok := subs[subID]
	return sub, ok
}

// Categories returns all categories in definition order.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.categories[id])
	}
	return out
}

// Subcategories returns a category's subcategories in definition order.
func (c *Catalog) Subcategories(categoryID string) []models.Subcategory {
	ids := c.suborder[categoryID]
	out := make([]models.Subcategory, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.subcategories[categoryID][id])
	}
	return out
}
