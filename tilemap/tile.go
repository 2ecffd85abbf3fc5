package tilemap

import (
	"fmt"
	"strings"
)

// Category is the coarse classification used for neighbor matching.
type Category int

const (
	Ground Category = iota
	Platform
	Decoration
	Water
)

func (c Category) String() string {
	switch c {
	case Ground:
		return "ground"
	case Platform:
		return "platform"
	case Decoration:
		return "decoration"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

// ParseCategory accepts the lowercase or capitalized category name.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ground":
		return Ground, nil
	case "platform":
		return Platform, nil
	case "decoration":
		return Decoration, nil
	case "water":
		return Water, nil
	}
	return 0, fmt.Errorf("tilemap: unknown category %q", s)
}

// UnmarshalYAML lets definition files spell categories by name.
func (c *Category) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Tile is the logical occupant of a grid cell.
type Tile struct {
	Type     string
	Category Category
	Variant  Variant
}

// Factory produces a fresh tile instance.
type Factory func() Tile

// Catalog resolves tile type names to factories.
type Catalog interface {
	Resolve(typeName string) (Factory, bool)
}

// MapCatalog is an in-memory Catalog keyed by type name.
type MapCatalog map[string]Category

func (m MapCatalog) Resolve(typeName string) (Factory, bool) {
	cat, ok := m[typeName]
	if !ok {
		return nil, false
	}
	return func() Tile {
		return Tile{Type: typeName, Category: cat}
	}, true
}
