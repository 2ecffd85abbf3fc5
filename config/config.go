// Package config holds the editor settings read from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 100
	DefaultHeight   = 50
	DefaultTileSize = 1.0
)

type Config struct {
	Grid      GridConfig    `yaml:"grid"`
	Catalog   CatalogConfig `yaml:"catalog"`
	Clipboard bool          `yaml:"clipboard"`
}

type GridConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tile_size"`
}

type CatalogConfig struct {
	// Dir overrides the embedded tile definitions when it holds a tiles.yaml.
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads path and fills in defaults for anything left unset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Grid.Width == 0 {
		c.Grid.Width = DefaultWidth
	}
	if c.Grid.Height == 0 {
		c.Grid.Height = DefaultHeight
	}
	if c.Grid.TileSize == 0 {
		c.Grid.TileSize = DefaultTileSize
	}
}

// Validate rejects negative dimensions.
func (c Config) Validate() error {
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("config: grid size %dx%d must be positive", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.TileSize < 0 {
		return fmt.Errorf("config: tile size %v must be positive", c.Grid.TileSize)
	}
	return nil
}
