// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Plant      PlantConfig      `yaml:"plant"`
	Water      WaterConfig      `yaml:"water"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WorldConfig holds grid defaults and the lake layout.
type WorldConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	SoilWater         float64 `yaml:"soil_water"`          // Initial soil moisture
	SoilResources     float64 `yaml:"soil_resources"`      // Initial resources per cell
	Temperature       float64 `yaml:"temperature"`         // Carried on every cell, inert
	LakeWater         float64 `yaml:"lake_water"`          // Water level of lake cells
	LakeRadiusDivisor int     `yaml:"lake_radius_divisor"` // Lake radius = min(w,h) / this
	DayStartHour      int     `yaml:"day_start_hour"`      // First daytime hour (inclusive)
	DayEndHour        int     `yaml:"day_end_hour"`        // Last daytime hour (inclusive)
}

// PlantConfig holds growth, aging and reproduction parameters.
type PlantConfig struct {
	InitialHealth     float64 `yaml:"initial_health"`
	InitialSize       float64 `yaml:"initial_size"`
	MaxSize           float64 `yaml:"max_size"`
	GrowthScale       float64 `yaml:"growth_scale"`       // growth = min(light, water) * this
	SizeRate          float64 `yaml:"size_rate"`          // size += growth * this
	WaterUptake       float64 `yaml:"water_uptake"`       // cell water -= growth * this
	TerrainPenalty    float64 `yaml:"terrain_penalty"`    // Health lost per tick off soil
	StarvePenalty     float64 `yaml:"starve_penalty"`     // Health lost per tick without growth
	SenescenceAge     int     `yaml:"senescence_age"`     // Age after which health decays
	SenescencePenalty float64 `yaml:"senescence_penalty"` // Health lost per tick past senescence
	MaturityAge       int     `yaml:"maturity_age"`       // Minimum age to reproduce
	MaturitySize      float64 `yaml:"maturity_size"`      // Minimum size to reproduce
	SeedChance        float64 `yaml:"seed_chance"`        // Per-neighbor placement roll
	DecayFraction     float64 `yaml:"decay_fraction"`     // Share of size returned as resources on death
	GrowingSize       float64 `yaml:"growing_size"`       // Seedling/growing boundary (display only)
	MatureSize        float64 `yaml:"mature_size"`        // Growing/mature boundary (display only)
}

// WaterConfig holds water cycle parameters.
type WaterConfig struct {
	LakeEvapLight    float64 `yaml:"lake_evap_light"`    // Lake evaporates above this light level
	LakeEvapAmount   float64 `yaml:"lake_evap_amount"`   // Added to the atmosphere per lake cell
	SoilEvapLight    float64 `yaml:"soil_evap_light"`    // Soil evaporates above this light level
	SoilEvapMax      float64 `yaml:"soil_evap_max"`      // Cap on evaporation per soil cell
	SoilEvapFraction float64 `yaml:"soil_evap_fraction"` // Share of soil water evaporated
	RainThreshold    float64 `yaml:"rain_threshold"`     // Daytime rain needs more atmospheric water than this
	RainChance       float64 `yaml:"rain_chance"`        // Per-cell rain probability
	RainMax          float64 `yaml:"rain_max"`           // Cap on rain per cell
	RainFraction     float64 `yaml:"rain_fraction"`      // Share of atmospheric water released
	MaxCellWater     float64 `yaml:"max_cell_water"`     // Soil water ceiling
}

// AtmosphereConfig holds global gas levels and drift.
type AtmosphereConfig struct {
	InitialCO2 float64 `yaml:"initial_co2"`
	InitialO2  float64 `yaml:"initial_o2"`
	CO2Drift   float64 `yaml:"co2_drift"` // Abiotic CO2 added per tick
	O2Drift    float64 `yaml:"o2_drift"`  // Abiotic O2 removed per tick
	MinCO2     float64 `yaml:"min_co2"`
	MinO2      float64 `yaml:"min_o2"`
}

// PopulationConfig holds initial seeding parameters.
type PopulationConfig struct {
	Initial      int `yaml:"initial"`       // Plants to place at construction
	SeedAttempts int `yaml:"seed_attempts"` // Random probes per plant before giving up
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
	BookmarkHistory     int `yaml:"bookmark_history"`      // Windows kept for bookmark detection
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.World.LakeRadiusDivisor <= 0 {
		return fmt.Errorf("world.lake_radius_divisor must be positive, got %d", c.World.LakeRadiusDivisor)
	}
	if c.World.DayStartHour > c.World.DayEndHour {
		return fmt.Errorf("world.day_start_hour (%d) is after day_end_hour (%d)", c.World.DayStartHour, c.World.DayEndHour)
	}
	if c.Population.Initial < 0 || c.Population.SeedAttempts < 0 {
		return fmt.Errorf("population values must not be negative")
	}
	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
