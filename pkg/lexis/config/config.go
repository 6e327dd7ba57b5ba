package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexis/pkg/lexis/cooccur"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// Output formats
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Config holds analysis settings
type Config struct {
	Window   int    `yaml:"window" toml:"window"`
	Encoding string `yaml:"encoding" toml:"encoding"`
	Filter   Filter `yaml:"filter" toml:"filter"`
	Output   Output `yaml:"output" toml:"output"`
	Store    Store  `yaml:"store" toml:"store"`
}

// Filter restricts which tokens are counted by length in characters.
// Zero means no bound.
type Filter struct {
	MinLength int `yaml:"min_length" toml:"min_length"`
	MaxLength int `yaml:"max_length" toml:"max_length"`
}

// Output controls how results are rendered
type Output struct {
	Format string `yaml:"format" toml:"format"`
	Top    int    `yaml:"top" toml:"top"` // rows shown per table, 0 = all
}

// Store configures the optional result database
type Store struct {
	Path string `yaml:"path" toml:"path"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Window:   cooccur.DefaultWindow,
		Encoding: source.DefaultEncoding,
		Output: Output{
			Format: FormatAuto,
		},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file on top of Default.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: unknown config file type %q", internalerr.ErrInvalidConfig, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", internalerr.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings for consistency
func (c Config) Validate() error {
	if c.Window < 0 {
		return fmt.Errorf("%w: window must be non-negative, got %d", internalerr.ErrInvalidConfig, c.Window)
	}
	if c.Filter.MinLength < 0 || c.Filter.MaxLength < 0 {
		return fmt.Errorf("%w: filter lengths must be non-negative", internalerr.ErrInvalidConfig)
	}
	if c.Filter.MaxLength > 0 && c.Filter.MaxLength < c.Filter.MinLength {
		return fmt.Errorf("%w: max_length %d is below min_length %d",
			internalerr.ErrInvalidConfig, c.Filter.MaxLength, c.Filter.MinLength)
	}
	switch c.Output.Format {
	case FormatAuto, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("%w: unknown output format %q", internalerr.ErrInvalidConfig, c.Output.Format)
	}
	if c.Output.Top < 0 {
		return fmt.Errorf("%w: top must be non-negative, got %d", internalerr.ErrInvalidConfig, c.Output.Top)
	}
	if err := source.CheckEncoding(c.Encoding); err != nil {
		return err
	}
	return nil
}
