// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Ball      BallConfig      `yaml:"ball"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Timer     TimerConfig     `yaml:"timer"`
	Modes     ModesConfig     `yaml:"modes"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The arena uses these logical
// dimensions regardless of the actual window size.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds integrator parameters.
type PhysicsConfig struct {
	FixedStep         float64 `yaml:"fixed_step"`           // seconds per tick
	Gravity           float64 `yaml:"gravity"`              // downward acceleration, px/s^2
	BounceDelayMS     float64 `yaml:"bounce_delay_ms"`      // min gap between shrink/growth events
	MaxStepsPerUpdate int     `yaml:"max_steps_per_update"` // backlog cap per Advance call
}

// BoundaryConfig holds the shrinking circle parameters.
type BoundaryConfig struct {
	Radius         float64 `yaml:"radius"`
	Decrement      float64 `yaml:"decrement"`
	Thickness      float64 `yaml:"thickness"`
	ResetThreshold float64 `yaml:"reset_threshold"` // session resets at or below this radius
}

// BallConfig holds per-ball parameters.
type BallConfig struct {
	Radius          float64    `yaml:"radius"`
	GrowthIncrement float64    `yaml:"growth_increment"`
	SpeedFactor     float64    `yaml:"speed_factor"` // per-bounce velocity multiplier in speed mode
	TrailLength     int        `yaml:"trail_length"`
	InitialVelocity [2]float64 `yaml:"initial_velocity"`
}

// SpawnConfig holds spawn placement parameters.
type SpawnConfig struct {
	Variance int `yaml:"variance"` // max jitter in px around the arena center, per axis
}

// TimerConfig holds freeze-mode parameters.
type TimerConfig struct {
	FreezeTimeMS float64 `yaml:"freeze_time_ms"`
}

// ModesConfig holds the feature flags. Fixed for the lifetime of a session.
type ModesConfig struct {
	Sound      bool `yaml:"sound"`
	Growing    bool `yaml:"growing"`
	Speed      bool `yaml:"speed"`
	Timer      bool `yaml:"timer"`
	Collisions bool `yaml:"collisions"`
}

// AudioConfig holds bounce sound synthesis parameters.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Frequency  float64 `yaml:"frequency"`
	DurationMS int     `yaml:"duration_ms"`
	AttackMS   int     `yaml:"attack_ms"`
	ReleaseMS  int     `yaml:"release_ms"`
	Volume     float64 `yaml:"volume"`
	MaxVoices  int     `yaml:"max_voices"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of simulated time
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CenterX, CenterY float64 // arena center (integer-truncated screen midpoint)
	StepMS           float64 // Physics.FixedStep in milliseconds
	TicksPerWindow   int     // Telemetry.StatsWindow in ticks
}

// modeKeys records which mode keys a file actually set.
type modeKeys struct {
	Sound      *bool `yaml:"sound"`
	Growing    *bool `yaml:"growing"`
	Speed      *bool `yaml:"speed"`
	Timer      *bool `yaml:"timer"`
	Collisions *bool `yaml:"collisions"`
}

// modesPresence accepts the flags either under a modes block or as flat
// top-level keys ({"sound": true, "growing": false, ...}).
type modesPresence struct {
	Flat  modeKeys `yaml:",inline"`
	Modes modeKeys `yaml:"modes"`
}

// merged returns the nested keys with any unset ones filled from the flat form.
func (p modesPresence) merged() modeKeys {
	m := p.Modes
	pick := func(nested, flat *bool) *bool {
		if nested != nil {
			return nested
		}
		return flat
	}
	m.Sound = pick(m.Sound, p.Flat.Sound)
	m.Growing = pick(m.Growing, p.Flat.Growing)
	m.Speed = pick(m.Speed, p.Flat.Speed)
	m.Timer = pick(m.Timer, p.Flat.Timer)
	m.Collisions = pick(m.Collisions, p.Flat.Collisions)
	return m
}

// value dereferences an optional flag.
func value(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// ErrMissingKey is returned when a required configuration key is absent.
var ErrMissingKey = errors.New("missing required key")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path.
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

// Defaults returns the embedded defaults with every mode disabled except
// ball-to-ball collisions.
func Defaults() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	cfg.Modes.Collisions = true
	cfg.computeDerived()
	return cfg
}

// Load reads a YAML (or JSON) config file and merges it over the embedded
// defaults. The file must exist and must set the growing, speed and timer
// flags, either under modes or at the top level.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse merges raw config bytes over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	var present modesPresence
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	keys := present.merged()
	required := []struct {
		key string
		val *bool
	}{
		{"growing", keys.Growing},
		{"speed", keys.Speed},
		{"timer", keys.Timer},
	}
	for _, r := range required {
		if r.val == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, r.key)
		}
	}

	// Unmarshal into same struct - only overwrites fields present in file
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Modes = ModesConfig{
		Sound:      value(keys.Sound, false),
		Growing:    *keys.Growing,
		Speed:      *keys.Speed,
		Timer:      *keys.Timer,
		Collisions: value(keys.Collisions, true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks that numeric parameters are usable by the integrator.
func (c *Config) Validate() error {
	switch {
	case c.Physics.FixedStep <= 0:
		return fmt.Errorf("physics.fixed_step must be positive, got %v", c.Physics.FixedStep)
	case c.Physics.MaxStepsPerUpdate < 1:
		return fmt.Errorf("physics.max_steps_per_update must be at least 1, got %d", c.Physics.MaxStepsPerUpdate)
	case c.Boundary.Radius <= 0:
		return fmt.Errorf("boundary.radius must be positive, got %v", c.Boundary.Radius)
	case c.Boundary.ResetThreshold >= c.Boundary.Radius:
		return fmt.Errorf("boundary.reset_threshold %v must be below boundary.radius %v",
			c.Boundary.ResetThreshold, c.Boundary.Radius)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("ball.radius must be positive, got %v", c.Ball.Radius)
	case c.Ball.TrailLength < 1:
		return fmt.Errorf("ball.trail_length must be at least 1, got %d", c.Ball.TrailLength)
	case c.Ball.SpeedFactor < 1:
		return fmt.Errorf("ball.speed_factor must be >= 1, got %v", c.Ball.SpeedFactor)
	case c.Spawn.Variance < 0:
		return fmt.Errorf("spawn.variance must not be negative, got %d", c.Spawn.Variance)
	case c.Timer.FreezeTimeMS <= 0:
		return fmt.Errorf("timer.freeze_time_ms must be positive, got %v", c.Timer.FreezeTimeMS)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CenterX = float64(c.Screen.Width / 2)
	c.Derived.CenterY = float64(c.Screen.Height / 2)
	c.Derived.StepMS = c.Physics.FixedStep * 1000

	// Round so 5s at a 1/240 step is 1200 ticks, not 1199.999...
	c.Derived.TicksPerWindow = max(1, int(math.Round(c.Telemetry.StatsWindow/c.Physics.FixedStep)))
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
