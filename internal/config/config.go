package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	FormatText      = "text"
	FormatJSON      = "json"
	FormatHighlight = "highlight"
)

type SourceConfig struct {
	Name         string `toml:"name"`
	LineOffset   int    `toml:"line_offset"`
	ColumnOffset int    `toml:"column_offset"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type CacheConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

type Config struct {
	Source SourceConfig `toml:"source"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

func defaults() Config {
	return Config{
		Source: SourceConfig{
			Name:         "GraphQL request",
			LineOffset:   1,
			ColumnOffset: 1,
		},
		Output: OutputConfig{Format: FormatText},
		Cache:  CacheConfig{Path: filepath.Join(".gqllex", "cache.db")},
		Server: ServerConfig{Listen: "unix:///tmp/gqllex.sock"},
	}
}

// Path returns the config file location for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, ".gqllex", "config")
}

func Load(projectDir string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(Path(projectDir))
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Path(projectDir), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Source.LineOffset <= 0 {
		return fmt.Errorf("source.line_offset must be positive, got %d", c.Source.LineOffset)
	}
	if c.Source.ColumnOffset <= 0 {
		return fmt.Errorf("source.column_offset must be positive, got %d", c.Source.ColumnOffset)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatHighlight:
	default:
		return fmt.Errorf("unknown output.format %q", c.Output.Format)
	}
	return nil
}

// Encode renders c in the on-disk TOML form.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := defaults()
	return &cfg
}
