package content

import (
	"fmt"
	"maps"
	"slices"
)

// Catalog is an ordered registry of categories keyed by category key.
type Catalog struct {
	order      []string
	categories map[string]*Category
}

func NewCatalog() *Catalog {
	return &Catalog{
		categories: make(map[string]*Category),
	}
}

// Register validates and adds a category, replacing one with the same key
// in place.
func (c *Catalog) Register(category Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if _, exists := c.categories[category.Key]; !exists {
		c.order = append(c.order, category.Key)
	}
	c.categories[category.Key] = &category
	return nil
}

func (c *Catalog) Get(key string) (*Category, bool) {
	category, ok := c.categories[key]
	return category, ok
}

func (c *Catalog) Keys() []string {
	return slices.Clone(c.order)
}

func (c *Catalog) Categories() []*Category {
	categories := make([]*Category, 0, len(c.order))
	for _, key := range c.order {
		categories = append(categories, c.categories[key])
	}
	return categories
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// Title returns the display title for a key, or the key itself.
func (c *Catalog) Title(key string) string {
	if category, ok := c.categories[key]; ok && category.Title != "" {
		return category.Title
	}
	return key
}

// Clone returns a shallow copy that can be extended without touching c.
func (c *Catalog) Clone() *Catalog {
	clone := &Catalog{
		order:      slices.Clone(c.order),
		categories: make(map[string]*Category, len(c.categories)),
	}
	maps.Copy(clone.categories, c.categories)
	return clone
}
