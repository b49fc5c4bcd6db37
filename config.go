package tween

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultCapacity is the number of pooled units a Scheduler starts with.
const DefaultCapacity = 200

// Config configures a Scheduler. Start from DefaultConfig; the zero value
// disables every warning.
type Config struct {
	// Capacity is the initial pool size. The pool doubles when exceeded.
	Capacity int `yaml:"capacity"`

	// DefaultEase replaces EaseDefault in tween settings. Must be a standard
	// curve.
	DefaultEase Ease `yaml:"default_ease"`

	// WarnEndValueEqualsStart logs a warning when a tween started from the
	// current value finds it already at the end value.
	WarnEndValueEqualsStart bool `yaml:"warn_end_value_equals_start"`

	// ValidateCustomCurves checks custom curves on creation and replaces
	// malformed ones with DefaultEase.
	ValidateCustomCurves bool `yaml:"validate_custom_curves"`

	// TimeScale multiplies dt for every tween not using unscaled time.
	TimeScale float64 `yaml:"time_scale"`

	// Logger receives diagnostics. Nil uses zerolog's global logger.
	Logger *zerolog.Logger `yaml:"-"`

	// Sink receives lifecycle events. Optional.
	Sink EventSink `yaml:"-"`
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:                DefaultCapacity,
		DefaultEase:             EaseOutQuad,
		WarnEndValueEqualsStart: true,
		ValidateCustomCurves:    true,
		TimeScale:               1,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig, so omitted keys keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse tween config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read tween config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports values New would have to replace.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("tween config: capacity must be >= 0, was %d", c.Capacity)
	}
	if c.DefaultEase <= EaseDefault || !c.DefaultEase.valid() {
		return fmt.Errorf("tween config: default_ease must be a standard curve, was %v", c.DefaultEase)
	}
	if c.TimeScale < 0 {
		return fmt.Errorf("tween config: time_scale must be >= 0, was %g", c.TimeScale)
	}
	return nil
}
