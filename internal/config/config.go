// Package config loads freightprint configuration: factor and rate
// policy tables, calculation fallbacks, validation ceilings, storage
// location, and logging. Values come from built-in defaults overlaid by
// an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/engine"
)

// Environment variable overrides.
const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "FREIGHTPRINT_CONFIG"

	// EnvDBPath overrides the database location.
	EnvDBPath = "FREIGHTPRINT_DB"

	// configDirName is the per-user configuration directory.
	configDirName = ".freightprint"
)

// Config is the root configuration document.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Emission    EmissionConfig    `yaml:"emission"`
	Rates       engine.Rates      `yaml:"rates"`
	Calculation CalculationConfig `yaml:"calculation"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// DatabaseConfig locates the record store.
type DatabaseConfig struct {
	// Path is the SQLite database file. Empty means the default under
	// the user config directory.
	Path string `yaml:"path"`
}

// EmissionConfig overrides entries of the emission factor tables. The
// scalar fields ship prefilled with the published defaults, so a file
// value replaces them even when it is zero; map entries overlay the
// resolver's tables key by key.
type EmissionConfig struct {
	ModeFactors       map[string]float64 `yaml:"mode_factors"`
	FuelFactors       map[string]float64 `yaml:"fuel_factors"`
	DefaultFactor     float64            `yaml:"default_factor"`
	CoolingMultiplier float64            `yaml:"cooling_multiplier"`
}

// CalculationConfig tunes the calculator's fallback and validation policy.
type CalculationConfig struct {
	// FallbackDistanceKm replaces the distance when coordinates are
	// missing. Prefilled with engine.DefaultDistanceKm; an explicit
	// zero is honored.
	FallbackDistanceKm float64 `yaml:"fallback_distance_km"`

	// UnitWeightCeilingT caps tonnes per unit at validation time.
	UnitWeightCeilingT float64 `yaml:"unit_weight_ceiling_t"`

	// QuantityCeiling caps the shipment quantity at validation time.
	QuantityCeiling float64 `yaml:"quantity_ceiling"`

	// StrictFuelBlend rejects truck shipments without a fuel blend.
	StrictFuelBlend bool `yaml:"strict_fuel_blend"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// Default returns the built-in configuration. Policy scalars are
// prefilled with the published defaults; loading a file overlays only
// the keys it sets, so explicit zeros survive.
func Default() *Config {
	return &Config{
		Emission: EmissionConfig{
			DefaultFactor:     emission.DefaultFactor,
			CoolingMultiplier: emission.CoolingMultiplier,
		},
		Rates: engine.DefaultRates(),
		Calculation: CalculationConfig{
			FallbackDistanceKm: engine.DefaultDistanceKm,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// DefaultConfigPath returns the per-user config file location, honoring
// EnvConfigPath.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, "config.yaml")
	}
	return filepath.Join(home, configDirName, "config.yaml")
}

// DatabasePath resolves the record store location: EnvDBPath, then the
// configured path, then the default next to the config file.
func (c *Config) DatabasePath() string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p
	}
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "freightprint.db")
}

// Load reads the config file at path, overlaying it on the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that would break calculation
// invariants (negative rates or factors).
func (c *Config) Validate() error {
	if err := c.Rates.Validate(); err != nil {
		return err
	}
	for mode, f := range c.Emission.ModeFactors {
		if f <= 0 {
			return fmt.Errorf("emission factor for mode %q must be positive, got %v", mode, f)
		}
	}
	for fuel, f := range c.Emission.FuelFactors {
		if f <= 0 {
			return fmt.Errorf("emission factor for fuel %q must be positive, got %v", fuel, f)
		}
	}
	if c.Emission.DefaultFactor < 0 {
		return fmt.Errorf("default emission factor must be non-negative, got %v", c.Emission.DefaultFactor)
	}
	if c.Emission.CoolingMultiplier < 0 {
		return fmt.Errorf("cooling multiplier must be non-negative, got %v", c.Emission.CoolingMultiplier)
	}
	if c.Calculation.FallbackDistanceKm < 0 {
		return fmt.Errorf("fallback distance must be non-negative, got %v", c.Calculation.FallbackDistanceKm)
	}
	return nil
}

// ResolverTables converts the emission overrides into resolver tables.
func (c *Config) ResolverTables() emission.ResolverTables {
	t := emission.ResolverTables{
		DefaultFactor: &c.Emission.DefaultFactor,
		CoolingMult:   &c.Emission.CoolingMultiplier,
	}
	if len(c.Emission.ModeFactors) > 0 {
		t.ModeFactors = make(map[emission.Mode]float64, len(c.Emission.ModeFactors))
		for mode, f := range c.Emission.ModeFactors {
			t.ModeFactors[emission.ParseMode(mode)] = f
		}
	}
	if len(c.Emission.FuelFactors) > 0 {
		t.FuelFactors = make(map[emission.Fuel]float64, len(c.Emission.FuelFactors))
		for fuel, f := range c.Emission.FuelFactors {
			t.FuelFactors[emission.ParseFuel(fuel)] = f
		}
	}
	return t
}

// ValidationPolicy converts the calculation section into the engine's
// validation policy.
func (c *Config) ValidationPolicy() engine.ValidationPolicy {
	return engine.ValidationPolicy{
		UnitWeightCeilingT: c.Calculation.UnitWeightCeilingT,
		QuantityCeiling:    c.Calculation.QuantityCeiling,
		StrictFuelBlend:    c.Calculation.StrictFuelBlend,
	}
}

// EnsureConfigDir creates the directory holding the config file and
// database.
func EnsureConfigDir() error {
	dir := filepath.Dir(DefaultConfigPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}
