// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Visual    VisualConfig    `yaml:"visual"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// DepthMode selects how a sampled pixel's z coordinate is derived.
type DepthMode uint8

const (
	DepthBrightness DepthMode = iota
	DepthInverseBrightness
	DepthHue
	DepthSaturation
	DepthPerlin
	DepthRadial
	DepthLayered
)

// depthModeNames maps yaml values to modes. Order matches the constants.
var depthModeNames = []string{
	"brightness",
	"inverse_brightness",
	"hue",
	"saturation",
	"perlin",
	"radial",
	"layered",
}

// String returns the yaml name of the mode.
func (m DepthMode) String() string {
	if int(m) < len(depthModeNames) {
		return depthModeNames[m]
	}
	return "brightness"
}

// ParseDepthMode maps a yaml value to a DepthMode. Unknown values fall back
// to brightness.
func ParseDepthMode(s string) DepthMode {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range depthModeNames {
		if s == name {
			return DepthMode(i)
		}
	}
	return DepthBrightness
}

// DepthModeNames returns the yaml names of all modes, in constant order.
func DepthModeNames() []string {
	return depthModeNames
}

// SamplingConfig holds the image-to-particle sampling parameters.
// Changing any of these fields does not affect an already-sampled field;
// an explicit re-sample is required.
type SamplingConfig struct {
	Stride        int     `yaml:"stride"`         // pixel grid step, >= 1
	Threshold     float64 `yaml:"threshold"`      // brightness cutoff, 0-255
	MaxParticles  int     `yaml:"max_particles"`  // hard cap on emitted particles
	DepthMode     string  `yaml:"depth_mode"`     // see DepthModeNames
	DepthRange    float64 `yaml:"depth_range"`    // z extent in world units
	DepthInvert   bool    `yaml:"depth_invert"`   // negate z after mode mapping
	NoiseStrength float64 `yaml:"noise_strength"` // perlin mode only
}

// Mode returns the parsed depth mode.
func (s SamplingConfig) Mode() DepthMode {
	return ParseDepthMode(s.DepthMode)
}

// Equal reports whether two sampling configurations would produce the same
// field. Used to decide whether a re-sample is pending.
func (s SamplingConfig) Equal(o SamplingConfig) bool {
	return s.Stride == o.Stride &&
		s.Threshold == o.Threshold &&
		s.MaxParticles == o.MaxParticles &&
		s.Mode() == o.Mode() &&
		s.DepthRange == o.DepthRange &&
		s.DepthInvert == o.DepthInvert &&
		s.NoiseStrength == o.NoiseStrength
}

// ParticleShape selects the primitive mask used for every particle.
type ParticleShape uint8

const (
	ShapeCircle ParticleShape = iota
	ShapeSquare
	ShapeStar
	ShapeSnowflake
)

var shapeNames = []string{"circle", "square", "star", "snowflake"}

// String returns the yaml name of the shape.
func (s ParticleShape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "circle"
}

// Next returns the following shape, wrapping around. Used by the shape
// cycling key.
func (s ParticleShape) Next() ParticleShape {
	return ParticleShape((int(s) + 1) % len(shapeNames))
}

// ParseShape maps a yaml value to a ParticleShape.
func ParseShape(s string) ParticleShape {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range shapeNames {
		if s == name {
			return ParticleShape(i)
		}
	}
	return ShapeCircle
}

// VisualConfig holds the always-live rendering and interaction parameters.
// These take effect on the next frame without a re-sample.
type VisualConfig struct {
	BaseSize            float64 `yaml:"base_size"`            // world-space point size before weighting
	Glow                float64 `yaml:"glow"`                 // additive halo strength, 0 disables
	Saturation          float64 `yaml:"saturation"`           // color saturation multiplier
	Shape               string  `yaml:"shape"`                // see ParseShape
	InteractionRadius   float64 `yaml:"interaction_radius"`   // hand repulsion radius, world units
	InteractionStrength float64 `yaml:"interaction_strength"` // hand repulsion displacement
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance   float64 `yaml:"distance"`    // initial orbit distance
	Fovy       float64 `yaml:"fovy"`        // vertical field of view, degrees
	AutoRotate float64 `yaml:"auto_rotate"` // yaw speed, radians per second
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	LogStats    bool    `yaml:"log_stats"`    // emit window stats via slog
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	Mode      DepthMode
	Shape     ParticleShape
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.clamp()
	cfg.computeDerived()

	return cfg, nil
}

// clamp normalizes out-of-range values instead of rejecting the file.
func (c *Config) clamp() {
	if c.Sampling.Stride < 1 {
		c.Sampling.Stride = 1
	}
	if c.Sampling.Threshold < 0 {
		c.Sampling.Threshold = 0
	}
	if c.Sampling.Threshold > 255 {
		c.Sampling.Threshold = 255
	}
	if c.Sampling.MaxParticles < 1 {
		c.Sampling.MaxParticles = 1
	}
	if c.Sampling.DepthRange < 0 {
		c.Sampling.DepthRange = 0
	}
	if c.Visual.BaseSize <= 0 {
		c.Visual.BaseSize = 1
	}
	if c.Visual.Saturation < 0 {
		c.Visual.Saturation = 0
	}
	if c.Visual.InteractionRadius < 0 {
		c.Visual.InteractionRadius = 0
	}
	if c.Camera.Distance <= 0 {
		c.Camera.Distance = 600
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		c.Camera.Fovy = 45
	}
	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 5
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Mode = c.Sampling.Mode()
	c.Derived.Shape = ParseShape(c.Visual.Shape)
}

// WriteYAML saves the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
