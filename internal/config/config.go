// Package config loads CLI defaults from an optional TOML or YAML
// configuration file, auto-detected by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file's encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// Config holds CLI-wide defaults. Fields a config file leaves out keep
// their Default() values; a value the file sets, zero included, is used
// as is. The CLI reads DefaultSampleCount, DefaultSeed and
// UseDeterministicSeed; RecursionLimit and Formatter are loaded but not
// consumed (generation always stops at generate.MaxDepth, and diagnostic
// rendering follows the --no-color and --no-suggestions flags).
type Config struct {
	DefaultSampleCount   int             `toml:"default_sample_count" yaml:"default_sample_count"`
	DefaultSeed          uint64          `toml:"default_seed" yaml:"default_seed"`
	UseDeterministicSeed bool            `toml:"use_deterministic_seed" yaml:"use_deterministic_seed"`
	RecursionLimit       int             `toml:"recursion_limit" yaml:"recursion_limit"`
	Formatter            FormatterConfig `toml:"formatter" yaml:"formatter"`
}

// FormatterConfig holds diagnostic-formatter defaults.
type FormatterConfig struct {
	Colors      bool `toml:"colors" yaml:"colors"`
	Suggestions bool `toml:"suggestions" yaml:"suggestions"`
	ContextLine bool `toml:"context_line" yaml:"context_line"`
}

// Default returns the built-in configuration used when no config file
// is present.
func Default() *Config {
	return &Config{
		DefaultSampleCount: 1,
		RecursionLimit:     64,
		Formatter: FormatterConfig{
			Colors:      true,
			Suggestions: true,
			ContextLine: true,
		},
	}
}

// Load reads a TOML or YAML config file, picking the format from the
// file extension (.yaml/.yml → YAML, anything else → TOML). Missing
// fields keep their Default() values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch formatFor(path) {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	}

	return cfg, nil
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
