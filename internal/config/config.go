package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	recursiveimport "github.com/FilipMalczak/recursive-import"
)

// Layout names accepted by the configuration.
const (
	LayoutGo     = "go"
	LayoutPython = "python"
)

// Config holds the settings of a recursive import run.
type Config struct {
	// Base is the directory holding the root container.
	Base string `yaml:"base"`
	// Layout names a predefined layout.
	Layout string `yaml:"layout"`
	// Marker, Suffix and Separator override the predefined layout when set.
	Marker    string `yaml:"marker"`
	Suffix    string `yaml:"suffix"`
	Separator string `yaml:"separator"`
	// BuildTags are passed to the go command when loading Go packages.
	BuildTags []string `yaml:"build_tags"`
	// Tests includes test files when loading Go packages.
	Tests bool `yaml:"tests"`
	// List prints every resolved name.
	List bool `yaml:"list"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Base:   ".",
		Layout: LayoutGo,
	}
}

// LoadFile reads a YAML configuration on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveLayout returns the effective layout.
func (c *Config) ResolveLayout() (recursiveimport.Layout, error) {
	var l recursiveimport.Layout
	switch strings.ToLower(c.Layout) {
	case "", LayoutGo:
		l = recursiveimport.GoLayout
	case LayoutPython:
		l = recursiveimport.PythonLayout
	default:
		return l, fmt.Errorf("unknown layout %q", c.Layout)
	}
	if c.Marker != "" {
		l.Marker = c.Marker
	}
	if c.Suffix != "" {
		l.Suffix = c.Suffix
	}
	if c.Separator != "" {
		l.Separator = c.Separator
	}
	return l, l.Validate()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Base == "" {
		return fmt.Errorf("base directory is empty")
	}
	fi, err := os.Stat(c.Base)
	if err != nil {
		return fmt.Errorf("invalid base directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("base %s is not a directory", c.Base)
	}
	_, err = c.ResolveLayout()
	return err
}

// IsGo reports whether units should be loaded as Go source.
func (c *Config) IsGo() bool {
	l, err := c.ResolveLayout()
	return err == nil && l.Suffix == recursiveimport.GoLayout.Suffix
}
