// Package tiles is the tile catalog: named tile definitions grouped for the
// selection palette and loaded from YAML.
package tiles

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/milk9111/tilegrid/tilemap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidName is returned for empty, duplicate or unencodable tile names.
var ErrInvalidName = errors.New("tiles: invalid tile name")

// Definition describes one placeable tile type.
type Definition struct {
	Name     string           `yaml:"name"`
	Category tilemap.Category `yaml:"category"`
	Sprite   string           `yaml:"sprite"`
}

// Group is a palette tab of definitions.
type Group struct {
	Name  string       `yaml:"name"`
	Tiles []Definition `yaml:"tiles"`
}

type catalogSpec struct {
	Groups []Group `yaml:"groups"`
}

// Catalog resolves tile names to definitions. It is safe to Reload while
// other goroutines resolve.
type Catalog struct {
	dir string

	mu       sync.RWMutex
	groups   []Group
	byName   map[string]Definition
	loadedAt time.Time // mod time of the disk file last loaded, zero if embedded
}

// Load reads the catalog from dir (or the embedded default).
func Load(dir string) (*Catalog, error) {
	c := &Catalog{dir: dir}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse builds a catalog from YAML definitions. The result cannot Reload
// from disk.
func Parse(data []byte) (*Catalog, error) {
	groups, byName, err := parse(data)
	if err != nil {
		return nil, err
	}
	return &Catalog{groups: groups, byName: byName}, nil
}

// Reload re-reads the definitions. On error the previous table is kept.
func (c *Catalog) Reload() error {
	mt, _ := ModTime(c.dir)
	data, err := LoadDefinitions(c.dir)
	if err != nil {
		return fmt.Errorf("tiles: load %s: %w", DefinitionsFile, err)
	}
	groups, byName, err := parse(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.groups = groups
	c.byName = byName
	c.loadedAt = mt
	c.mu.Unlock()
	return nil
}

// Stale reports whether the definitions file on disk differs from the one
// last loaded.
func (c *Catalog) Stale() bool {
	mt, ok := ModTime(c.dir)
	if !ok {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !mt.Equal(c.loadedAt)
}

func parse(data []byte) ([]Group, map[string]Definition, error) {
	var spec catalogSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, nil, fmt.Errorf("tiles: unmarshal %s: %w", DefinitionsFile, err)
	}
	byName := make(map[string]Definition)
	for _, g := range spec.Groups {
		for _, d := range g.Tiles {
			if d.Name == "" || strings.ContainsAny(d.Name, ",;") {
				return nil, nil, fmt.Errorf("%w: %q in group %s", ErrInvalidName, d.Name, g.Name)
			}
			if _, dup := byName[d.Name]; dup {
				return nil, nil, fmt.Errorf("%w: duplicate %q", ErrInvalidName, d.Name)
			}
			byName[d.Name] = d
		}
	}
	return spec.Groups, byName, nil
}

// Resolve implements tilemap.Catalog.
func (c *Catalog) Resolve(typeName string) (tilemap.Factory, bool) {
	d, ok := c.Lookup(typeName)
	if !ok {
		return nil, false
	}
	return func() tilemap.Tile {
		return tilemap.Tile{Type: d.Name, Category: d.Category}
	}, true
}

func (c *Catalog) Lookup(name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.byName[name]
	return d, ok
}

// Groups returns the palette groups in file order.
func (c *Catalog) Groups() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		out[i] = Group{Name: g.Name, Tiles: append([]Definition(nil), g.Tiles...)}
	}
	return out
}

// Names returns every tile name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Watch reloads the catalog for every event on w until w is closed.
func (c *Catalog) Watch(w *Watcher) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if !c.Stale() {
				continue
			}
			if err := c.Reload(); err != nil {
				log.Printf("Failed to reload tile catalog after %s changed: %v", path, err)
				continue
			}
			log.Printf("Reloaded tile catalog (%s)", path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Tile catalog watcher error: %v", err)
		}
	}
}
