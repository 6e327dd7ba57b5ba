package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window != 2 {
		t.Errorf("Default window should be 2, got %d", cfg.Window)
	}
	if cfg.Encoding != "utf-8" {
		t.Errorf("Default encoding should be utf-8, got %q", cfg.Encoding)
	}
	if cfg.Output.Format != FormatAuto {
		t.Errorf("Default format should be auto, got %q", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "lexis.yaml", `
window: 4
encoding: ISO-8859-1
filter:
  min_length: 3
  max_length: 12
output:
  format: json
  top: 25
store:
  path: results.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Valid YAML should load: %v", err)
	}

	if cfg.Window != 4 {
		t.Errorf("window = %d, want 4", cfg.Window)
	}
	if cfg.Encoding != "ISO-8859-1" {
		t.Errorf("encoding = %q", cfg.Encoding)
	}
	if cfg.Filter.MinLength != 3 || cfg.Filter.MaxLength != 12 {
		t.Errorf("filter = %+v", cfg.Filter)
	}
	if cfg.Output.Format != FormatJSON || cfg.Output.Top != 25 {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Store.Path != "results.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "lexis.toml", `
window = 1

[filter]
min_length = 4

[output]
format = "table"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Valid TOML should load: %v", err)
	}

	if cfg.Window != 1 {
		t.Errorf("window = %d, want 1", cfg.Window)
	}
	if cfg.Filter.MinLength != 4 {
		t.Errorf("min_length = %d, want 4", cfg.Filter.MinLength)
	}
	if cfg.Output.Format != FormatTable {
		t.Errorf("format = %q, want table", cfg.Output.Format)
	}
	// Untouched keys keep defaults
	if cfg.Encoding != "utf-8" {
		t.Errorf("encoding should default to utf-8, got %q", cfg.Encoding)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "partial.yml", "output:\n  top: 5\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Partial config should load: %v", err)
	}
	if cfg.Window != 2 {
		t.Errorf("window should default to 2, got %d", cfg.Window)
	}
	if cfg.Output.Format != FormatAuto {
		t.Errorf("format should default to auto, got %q", cfg.Output.Format)
	}
	if cfg.Output.Top != 5 {
		t.Errorf("top = %d, want 5", cfg.Output.Top)
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("/nonexistent/lexis.yaml")
	if err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "window: [unclosed\n")

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig on malformed YAML, got %v", err)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "bad.toml", "window = \n")

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig on malformed TOML, got %v", err)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeConfig(t, "lexis.ini", "window=2")

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for .ini, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative window", func(c *Config) { c.Window = -1 }},
		{"negative min length", func(c *Config) { c.Filter.MinLength = -2 }},
		{"max below min", func(c *Config) { c.Filter.MinLength = 5; c.Filter.MaxLength = 3 }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
		{"negative top", func(c *Config) { c.Output.Top = -1 }},
		{"unknown encoding", func(c *Config) { c.Encoding = "not-a-charset" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateWindowZero(t *testing.T) {
	cfg := Default()
	cfg.Window = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Window 0 is valid: %v", err)
	}
}
