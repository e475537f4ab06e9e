// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Dish        DishConfig        `yaml:"dish"`
	Germ        GermConfig        `yaml:"germ"`
	Population  PopulationConfig  `yaml:"population"`
	Food        FoodConfig        `yaml:"food"`
	Environment EnvironmentConfig `yaml:"environment"`
	Treatment   TreatmentConfig   `yaml:"treatment"`
	Outbreak    OutbreakConfig    `yaml:"outbreak"`
	Scientist   ScientistConfig   `yaml:"scientist"`
	Audio       AudioConfig       `yaml:"audio"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Records     RecordsConfig     `yaml:"records"`
	Autopilot   AutopilotConfig   `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Title     string  `yaml:"title"`
	DT        float64 `yaml:"dt"` // Fixed step for headless runs
}

// DishConfig places the petri dish in world space (origin at screen center, y up).
type DishConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"` // Confinement radius for germs
}

// GermConfig holds per-germ behavior parameters.
type GermConfig struct {
	SpeedFactor       float64 `yaml:"speed_factor"`       // Speed = speed_factor * temperature
	DirectionInterval float64 `yaml:"direction_interval"` // Seconds between heading changes
	SplitTime         float64 `yaml:"split_time"`         // Base split interval
	SplitJitter       float64 `yaml:"split_jitter"`       // Uniform [0, jitter) added on reset
	DeathTime         float64 `yaml:"death_time"`         // Base lifespan
	DeathJitter       float64 `yaml:"death_jitter"`
	MutationChance    float64 `yaml:"mutation_chance"` // Per successful split
	Variants          int     `yaml:"variants"`        // Number of visual variants
}

// PopulationConfig holds population limits.
type PopulationConfig struct {
	Cap     int `yaml:"cap"`
	Initial int `yaml:"initial"` // Germs placed at session start
}

// FoodConfig holds nutrient parameters.
type FoodConfig struct {
	DecayRate float64 `yaml:"decay_rate"` // Food lost per second
}

// EnvironmentConfig holds slider defaults and stress thresholds (0-100 slider scale).
type EnvironmentConfig struct {
	TemperatureDefault float64 `yaml:"temperature_default"`
	RadiationDefault   float64 `yaml:"radiation_default"`
	HotThreshold       float64 `yaml:"hot_threshold"`
	ColdThreshold      float64 `yaml:"cold_threshold"`
	RadiationThreshold float64 `yaml:"radiation_threshold"`
	StressKillChance   float64 `yaml:"stress_kill_chance"` // Per tick, per unprotected germ
	NeutralLow         float64 `yaml:"neutral_low"`        // Temperature re-enters neutral inside (low, high)
	NeutralHigh        float64 `yaml:"neutral_high"`
	RadiationNeutral   float64 `yaml:"radiation_neutral"` // Radiation re-enters neutral below this
}

// TreatmentConfig holds one-shot treatment odds.
type TreatmentConfig struct {
	KillChance          float64 `yaml:"kill_chance"`           // Germs lacking the immunity
	ResistantKillChance float64 `yaml:"resistant_kill_chance"` // Germs holding it
}

// OutbreakConfig holds end-of-session parameters.
type OutbreakConfig struct {
	ReportDelay float64 `yaml:"report_delay"` // Seconds from outbreak to report
	MaxTime     float64 `yaml:"max_time"`     // Sentinel "no best time"
}

// ScientistConfig holds the report-screen runner parameters.
type ScientistConfig struct {
	Speed         float64 `yaml:"speed"`
	WrapMargin    float64 `yaml:"wrap_margin"`    // Wrap once x < -wrap_margin
	RespawnOffset float64 `yaml:"respawn_offset"` // Re-enter at width + offset
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	SfxDir       string  `yaml:"sfx_dir"`
	MasterVolume float64 `yaml:"master_volume"` // Scales every cue
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of sim time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// RecordsConfig holds best-time persistence settings.
type RecordsConfig struct {
	Path string `yaml:"path"`
}

// AutopilotConfig drives headless sessions.
type AutopilotConfig struct {
	AgarBelow         float64 `yaml:"agar_below"`
	TreatmentInterval float64 `yaml:"treatment_interval"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // Screen.DT as float32
	ScreenW32   float32
	ScreenH32   float32
	DishRadius2 float32 // Squared confinement radius
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

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range parameter.
func (c *Config) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", name, v))
		}
	}
	slider := func(name string, v float64) {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 100], got %v", name, v))
		}
	}

	positive("dish.radius", c.Dish.Radius)
	positive("germ.direction_interval", c.Germ.DirectionInterval)
	positive("germ.split_time", c.Germ.SplitTime)
	positive("germ.death_time", c.Germ.DeathTime)
	positive("screen.dt", c.Screen.DT)
	positive("outbreak.report_delay", c.Outbreak.ReportDelay)
	positive("telemetry.stats_window", c.Telemetry.StatsWindow)
	if c.Population.Cap <= 0 {
		errs = append(errs, fmt.Errorf("population.cap must be positive, got %d", c.Population.Cap))
	}
	if c.Germ.Variants <= 0 {
		errs = append(errs, fmt.Errorf("germ.variants must be positive, got %d", c.Germ.Variants))
	}
	if c.Germ.SplitJitter < 0 || c.Germ.DeathJitter < 0 {
		errs = append(errs, errors.New("germ jitter must not be negative"))
	}

	probability("germ.mutation_chance", c.Germ.MutationChance)
	probability("environment.stress_kill_chance", c.Environment.StressKillChance)
	probability("treatment.kill_chance", c.Treatment.KillChance)
	probability("treatment.resistant_kill_chance", c.Treatment.ResistantKillChance)

	slider("environment.temperature_default", c.Environment.TemperatureDefault)
	slider("environment.radiation_default", c.Environment.RadiationDefault)
	slider("environment.hot_threshold", c.Environment.HotThreshold)
	slider("environment.cold_threshold", c.Environment.ColdThreshold)
	slider("environment.radiation_threshold", c.Environment.RadiationThreshold)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Screen.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	r := float32(c.Dish.Radius)
	c.Derived.DishRadius2 = r * r
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
