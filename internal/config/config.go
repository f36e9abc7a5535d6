package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/wordjournal/xcproj/internal/layout"
	"github.com/wordjournal/xcproj/internal/pbxproj"
)

// Config holds the CLI configuration.
type Config struct {
	// Root is the project directory holding the sources and the .xcodeproj
	// bundle. Defaults to the working directory.
	Root string `env:"XCPROJ_ROOT"`

	// LayoutPath is an optional YAML layout replacing the built-in one.
	LayoutPath string `env:"XCPROJ_LAYOUT"`

	Verbose bool `env:"XCPROJ_VERBOSE"`
}

// Load reads the environment and fills in defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.resolveRoot(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetRoot overrides the project directory.
func (c *Config) SetRoot(root string) error {
	c.Root = root
	return c.resolveRoot()
}

func (c *Config) resolveRoot() error {
	if c.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.Root = wd
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", c.Root, err)
	}
	c.Root = abs
	return nil
}

// Layout loads LayoutPath, or the built-in layout when none is set.
func (c *Config) Layout() (*layout.Project, error) {
	if c.LayoutPath == "" {
		return layout.Default()
	}
	return layout.Load(c.LayoutPath)
}

// ManifestPath returns the manifest location for app under Root.
func (c *Config) ManifestPath(app string) string {
	return pbxproj.ManifestPath(c.Root, app)
}
