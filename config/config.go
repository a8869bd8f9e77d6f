// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Arena     ArenaConfig     `yaml:"arena"`
	Player    PlayerConfig    `yaml:"player"`
	Chaser    ChaserConfig    `yaml:"chaser"`
	Collider  ColliderConfig  `yaml:"collider"`
	Chain     ChainConfig     `yaml:"chain"`
	Contact   ContactConfig   `yaml:"contact"`
	Effect    EffectConfig    `yaml:"effect"`
	Textures  TexturesConfig  `yaml:"textures"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"` // world units to screen pixels
}

// PhysicsConfig holds world stepping parameters.
type PhysicsConfig struct {
	DT                 float64 `yaml:"dt"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	GravityX           float64 `yaml:"gravity_x"`
	GravityY           float64 `yaml:"gravity_y"`
}

// ArenaConfig holds the static wall rectangle around the play field.
type ArenaConfig struct {
	MinX        float64 `yaml:"min_x"`
	MinY        float64 `yaml:"min_y"`
	MaxX        float64 `yaml:"max_x"`
	MaxY        float64 `yaml:"max_y"`
	Restitution float64 `yaml:"restitution"`
}

// PlayerConfig holds the ship body and steering parameters.
type PlayerConfig struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Radius        float64 `yaml:"radius"`
	LinearDamping float64 `yaml:"linear_damping"`
	Density       float64 `yaml:"density"`
	Restitution   float64 `yaml:"restitution"`
	Scale         float64 `yaml:"scale"`
	ForceGain     float64 `yaml:"force_gain"`    // pointer delta to force multiplier
	ForceCeiling  float64 `yaml:"force_ceiling"` // maximum force magnitude per sample
}

// ChaserConfig holds pursuit parameters shared by every chaser.
type ChaserConfig struct {
	PursuitForce float64 `yaml:"pursuit_force"`
	BaseRadius   float64 `yaml:"base_radius"` // collider radius at scale 1
}

// ColliderConfig holds parameters for weapon collider bodies.
type ColliderConfig struct {
	BaseRadius float64 `yaml:"base_radius"` // collider radius at scale 1
}

// ChainConfig holds the geometry of a single chain link.
type ChainConfig struct {
	LinkSize      float64 `yaml:"link_size"` // box side length
	LinkDensity   float64 `yaml:"link_density"`
	LinkAnchor    float64 `yaml:"link_anchor"`     // local anchor offset on both axes
	LinkMaxLength float64 `yaml:"link_max_length"` // rope limit between consecutive links
	TailMaxLength float64 `yaml:"tail_max_length"` // rope limit from last link to far endpoint
	LinkScale     float64 `yaml:"link_scale"`
}

// ContactConfig holds contact pipeline parameters.
type ContactConfig struct {
	ImpulseThreshold float64 `yaml:"impulse_threshold"`
}

// EffectConfig holds impact effect parameters.
type EffectConfig struct {
	Countdown    int32   `yaml:"countdown"` // ticks before removal
	Scale        float64 `yaml:"scale"`     // initial sprite scale
	Growth       float64 `yaml:"growth"`    // scale added over the effect lifetime
	FadeDuration float64 `yaml:"fade_duration"`
}

// TexturesConfig names the textures used for each object class.
type TexturesConfig struct {
	Player  string `yaml:"player"`
	Chaser  string `yaml:"chaser"`
	Default string `yaml:"default"`
	Effect  string `yaml:"effect"`
}

// AudioConfig holds impact sound parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32 // Screen.Width as float32
	ScreenH32    float32 // Screen.Height as float32
	ArenaCenterX float64
	ArenaCenterY float64
	Iterations   int // solver iterations handed to the engine
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
		return nil, errors.Wrap(err, "parsing embedded defaults")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", path)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.ArenaCenterX = (c.Arena.MinX + c.Arena.MaxX) / 2
	c.Derived.ArenaCenterY = (c.Arena.MinY + c.Arena.MaxY) / 2

	// The engine runs a single solver loop for velocity and position.
	// Ten is the engine's own default.
	c.Derived.Iterations = c.Physics.VelocityIterations
	if c.Physics.PositionIterations > c.Derived.Iterations {
		c.Derived.Iterations = c.Physics.PositionIterations
	}
	if c.Derived.Iterations < 1 {
		c.Derived.Iterations = 10
	}

	if c.Effect.Countdown < 1 {
		c.Effect.Countdown = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
