// Package config provides configuration loading and access for the chart engine.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orbit/trail"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine tuning parameters.
type Config struct {
	Trail      TrailConfig      `yaml:"trail"`
	Phone      PhoneConfig      `yaml:"phone"`
	Decode     DecodeConfig     `yaml:"decode"`
	View       ViewConfig       `yaml:"view"`
	Report     ReportConfig     `yaml:"report"`
	ClickTrack ClickTrackConfig `yaml:"click_track"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TrailConfig holds trail track construction parameters.
type TrailConfig struct {
	RestDegree     float64 `yaml:"rest_degree"`     // Trail angle when a chart has no keyframes
	TailMS         float64 `yaml:"tail_ms"`         // Far-future sentinel offset after the last keyframe
	EaseIterations int     `yaml:"ease_iterations"` // Bisection depth of the timing curve
}

// PhoneConfig holds phone orientation track parameters.
type PhoneConfig struct {
	RestDegree     float64 `yaml:"rest_degree"`      // Phone angle at distance 0
	TailMS         float64 `yaml:"tail_ms"`          // Sentinel offset after the last sample
	CatchWindowMS  float64 `yaml:"catch_window_ms"`  // A Catch this close after a note takes over its sample
	CatchLookahead int     `yaml:"catch_lookahead"`  // Following notes inspected for a Catch
	RotateSpreadMS float64 `yaml:"rotate_spread_ms"` // Samples this far either side of a Rotate
}

// DecodeConfig holds chart ingestion settings.
type DecodeConfig struct {
	Strict bool `yaml:"strict"` // Abort on the first malformed or unparseable line
}

// ViewConfig holds the play-field projection used for geometry output.
type ViewConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxRadius    float64 `yaml:"max_radius"`    // Judgement ring radius in pixels
	ShowDistance float64 `yaml:"show_distance"` // Scroll distance visible ahead of the current position
	PathSteps    int     `yaml:"path_steps"`    // Samples per trail segment
}

// ReportConfig holds report generation settings.
type ReportConfig struct {
	DensityWindowMS float64 `yaml:"density_window_ms"` // Sliding window for notes-per-second
	PathTimeMS      float64 `yaml:"path_time_ms"`      // Chart time at which path.csv is sampled
}

// ClickTrackConfig holds offline click track rendering parameters.
type ClickTrackConfig struct {
	SampleRate int       `yaml:"sample_rate"`
	ClickMS    float64   `yaml:"click_ms"`
	TailMS     float64   `yaml:"tail_ms"`
	Decay      float64   `yaml:"decay"`     // Exponential decay per second
	TickGain   float64   `yaml:"tick_gain"` // Slide tick amplitude relative to note heads
	Volume     float64   `yaml:"volume"`    // Linear output gain
	Pitches    []float64 `yaml:"pitches"`   // Click frequency per sound id, Hz
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ClickDuration time.Duration // ClickTrack.ClickMS
	ClickTail     time.Duration // ClickTrack.TailMS
	CenterX       float64       // View.Width / 2
	CenterY       float64       // View.Height / 2
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ClickDuration = time.Duration(c.ClickTrack.ClickMS * float64(time.Millisecond))
	c.Derived.ClickTail = time.Duration(c.ClickTrack.TailMS * float64(time.Millisecond))
	c.Derived.CenterX = c.View.Width / 2
	c.Derived.CenterY = c.View.Height / 2

	if c.Trail.EaseIterations <= 0 {
		c.Trail.EaseIterations = trail.DefaultEaseIterations
	}
	if c.View.PathSteps <= 0 {
		c.View.PathSteps = 100
	}
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
