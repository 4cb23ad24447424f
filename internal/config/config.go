// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"dimensional/internal/errors"
	"dimensional/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains unit catalog configuration
	Catalog CatalogConfig `json:"catalog"`

	// Display contains unit rendering configuration
	Display DisplayConfig `json:"display"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains catalog-related settings
type CatalogConfig struct {
	// Extra lists HCL catalog files merged over the built-in catalog
	Extra []string `json:"extra,omitempty" env:"DIMENSIONAL_CATALOG" envSeparator:","`
}

// DisplayConfig contains rendering settings
type DisplayConfig struct {
	// ProductGlyph joins unit terms
	ProductGlyph string `json:"product_glyph" env:"DIMENSIONAL_PRODUCT_GLYPH"`

	// ASCII renders integer exponents as ^n instead of superscripts
	ASCII bool `json:"ascii" env:"DIMENSIONAL_ASCII"`

	// Precision is the number of decimal places printed for converted values
	Precision int32 `json:"precision" env:"DIMENSIONAL_PRECISION"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Display: DisplayConfig{
			ProductGlyph: "⋅",
			ASCII:        false,
			Precision:    6,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.dimensional.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".dimensional.json")
}

// Load loads configuration from a file, then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrapf(errors.TypeConfig, err, "read %s", path)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "decode %s", path)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays DIMENSIONAL_* environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(errors.TypeConfig, "parse env", err)
	}
	return nil
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	if c.Display.ProductGlyph == "" {
		return errors.New(errors.TypeConfig, "display.product_glyph must not be empty")
	}
	if c.Display.Precision < 0 {
		return errors.Newf(errors.TypeConfig, "display.precision must be >= 0, got %d", c.Display.Precision)
	}
	for _, path := range c.Catalog.Extra {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(errors.TypeConfig, fmt.Sprintf("catalog file %s", path), err)
		}
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
