package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the read-only list of items shown on the kiosk page.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

func NewCatalog(items []Item) (*Catalog, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]Item, len(items)),
	}
	copy(c.items, items)
	for _, item := range items {
		c.byID[item.ID] = item
	}
	return c, nil
}

// LoadFile reads a YAML catalog:
//
//	items:
//	  - id: burger
//	    name: 불고기버거
//	    price: 5000
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	var doc struct {
		Items []Item `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu file %s: %w", path, err)
	}

	return NewCatalog(doc.Items)
}

// Default is the built-in catalog used when no menu file is configured.
func Default() *Catalog {
	c, err := NewCatalog(DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}

func DefaultItems() []Item {
	return []Item{
		{ID: "bulgogi_burger", Name: "불고기버거", Price: 5000, Category: "burger"},
		{ID: "cheese_burger", Name: "치즈버거", Price: 5500, Category: "burger"},
		{ID: "chicken_burger", Name: "치킨버거", Price: 6000, Category: "burger"},
		{ID: "fries", Name: "감자튀김", Price: 2000, Category: "side"},
		{ID: "cheese_stick", Name: "치즈스틱", Price: 2500, Category: "side"},
		{ID: "cola", Name: "콜라", Price: 1500, Category: "drink"},
		{ID: "cider", Name: "사이다", Price: 1500, Category: "drink"},
		{ID: "soft_cone", Name: "소프트콘", Price: 1000, Category: "dessert"},
	}
}

// Items returns the catalog in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Lookup(id string) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}
