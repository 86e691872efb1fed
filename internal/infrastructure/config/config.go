package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/threatforge/insider-synth/internal/domain/behavior"
	"github.com/threatforge/insider-synth/internal/domain/geography"
)

// DefaultPath is where Load looks for a config file when none is given.
const DefaultPath = "configs/config.yaml"

type Config struct {
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`

	Generation GenerationConfig `koanf:"generation"`
	Simulation SimulationConfig `koanf:"simulation"`
	Noise      NoiseConfig      `koanf:"noise"`
	Export     ExportConfig     `koanf:"export"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

type GenerationConfig struct {
	Employees      int     `koanf:"employees" validate:"gt=0,lte=10000"`
	Days           int     `koanf:"days" validate:"gt=0,lte=1000"`
	MaliciousRatio float64 `koanf:"malicious_ratio" validate:"gte=0,lte=1"`

	// Seed pins the run's randomness; 0 means derive one from the clock.
	Seed int64 `koanf:"seed"`

	// Workers bounds the per-employee simulation goroutines; 0 means one
	// per CPU.
	Workers int `koanf:"workers" validate:"gte=0,lte=256"`
}

// SimulationConfig bounds the daily activity draws. The travel list replaces
// the built-in one wholesale when overridden; hostile-country tiers are keyed
// "1" through "3" and merge per tier.
type SimulationConfig struct {
	MinWorkHour          float64 `koanf:"min_work_hour" validate:"gte=0,lt=24"`
	MaxWorkHour          float64 `koanf:"max_work_hour" validate:"gt=0,lte=24,gtfield=MinWorkHour"`
	MinWorkDurationHours float64 `koanf:"min_work_duration_hours" validate:"gt=0,lte=16"`
	MinTripDays          int     `koanf:"min_trip_days" validate:"gte=1,lte=90"`
	MaxTripDays          int     `koanf:"max_trip_days" validate:"gte=1,lte=90,gtefield=MinTripDays"`

	TravelCountries  []string            `koanf:"travel_countries" validate:"min=1"`
	TravelWeights    []float64           `koanf:"travel_weights" validate:"min=1,dive,gte=0"`
	HostileCountries map[string][]string `koanf:"hostile_countries"`
}

// GeoTables converts the configured destination data into the domain form.
func (s SimulationConfig) GeoTables() (geography.Tables, error) {
	hostile := make(map[int][]string, len(s.HostileCountries))
	for key, countries := range s.HostileCountries {
		tier, err := strconv.Atoi(key)
		if err != nil || tier < 1 || tier > 3 {
			return geography.Tables{}, fmt.Errorf("hostile-country tier %q: must be 1 through 3", key)
		}
		hostile[tier] = countries
	}
	return geography.Tables{
		TravelCountries:  s.TravelCountries,
		TravelWeights:    s.TravelWeights,
		HostileCountries: hostile,
	}, nil
}

type NoiseConfig struct {
	Enabled       bool    `koanf:"enabled"`
	BurnRate      float64 `koanf:"burn_rate" validate:"gte=0,lte=1"`
	PrintRate     float64 `koanf:"print_rate" validate:"gte=0,lte=1"`
	EntryTimeRate float64 `koanf:"entry_time_rate" validate:"gte=0,lte=1"`
	Gaussian      bool    `koanf:"gaussian"`
}

type ExportConfig struct {
	OutputDir string `koanf:"output_dir" validate:"required"`
	Prefix    string `koanf:"prefix" validate:"required"`
	Format    string `koanf:"format" validate:"oneof=csv json both"`
}

type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	OTLPEndpoint string  `koanf:"otlp_endpoint"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"gte=0,lte=1"`
	Insecure     bool    `koanf:"insecure"`
}

type MetricsConfig struct {
	// Addr is the listen address of the Prometheus scrape endpoint;
	// empty disables it.
	Addr string `koanf:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Generation: GenerationConfig{
			Employees:      1666,
			Days:           180,
			MaliciousRatio: 0.05,
		},
		Simulation: SimulationConfig{
			MinWorkHour:          behavior.MinWorkHour,
			MaxWorkHour:          behavior.MaxWorkHour,
			MinWorkDurationHours: behavior.MinWorkDuration,
			MinTripDays:          behavior.MinTripDuration,
			MaxTripDays:          behavior.MaxTripDuration,
			TravelCountries:      geography.TravelCountries,
			TravelWeights:        geography.TravelWeights,
			HostileCountries: map[string][]string{
				"1": geography.HostileCountries[1],
				"2": geography.HostileCountries[2],
				"3": geography.HostileCountries[3],
			},
		},
		Noise: NoiseConfig{
			BurnRate:      0.05,
			PrintRate:     0.05,
			EntryTimeRate: 0.10,
		},
		Export: ExportConfig{
			OutputDir: "./output",
			Prefix:    "insider_threat_advanced",
			Format:    "both",
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
			SamplingRate: 1.0,
			Insecure:     true,
		},
	}
}

// Load builds the configuration by layering the defaults, an optional YAML
// file, and SYNTH_-prefixed environment variables, then validating the
// result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = DefaultPath
	}
	// Config file is optional.
	_ = k.Load(file.Provider(path), yaml.Parser())

	if err := k.Load(env.Provider("SYNTH_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "SYNTH_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its constraints. It is also
// called after command-line overrides are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if len(c.Simulation.TravelCountries) != len(c.Simulation.TravelWeights) {
		return fmt.Errorf("invalid configuration: travel_countries and travel_weights must be the same length")
	}
	if _, err := c.Simulation.GeoTables(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
