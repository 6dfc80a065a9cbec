// Package config defines default configuration and loads overrides from
// ~/.foldcut.yaml and FOLDCUT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/DrSkyle/foldcut/pkg/policy"
	"github.com/DrSkyle/foldcut/pkg/render"
	"github.com/DrSkyle/foldcut/pkg/session"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix namespaces environment overrides, e.g. FOLDCUT_EDITOR_VERTEX_RADIUS.
const EnvPrefix = "FOLDCUT"

// Config is the full application configuration.
type Config struct {
	Canvas    CanvasConfig    `mapstructure:"canvas"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// CanvasConfig sizes the terminal paper in cells and the SVG output.
type CanvasConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Pixels is the width and height of rendered SVG.
	Pixels int `mapstructure:"pixels"`
}

// EditorConfig lengths are in paper units. The eraser reaches 1.1 vertex
// radii and two edge widths.
type EditorConfig struct {
	VertexRadius float64 `mapstructure:"vertex_radius"`
	EdgeWidth    float64 `mapstructure:"edge_width"`
	PickRadius   float64 `mapstructure:"pick_radius"`
	QuietHistory bool    `mapstructure:"quiet_history"`
}

type PolicyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Rules   []policy.Rule `mapstructure:"rules"`
}

type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// Default returns a configuration with sensible default values.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  60,
			Height: 30,
			Pixels: 800,
		},
		Editor: EditorConfig{
			VertexRadius: 0.005,
			EdgeWidth:    0.005,
			PickRadius:   0.02,
			QuietHistory: true,
		},
		Policy: PolicyConfig{
			Enabled: true,
			Rules:   policy.DefaultRules(),
		},
	}
}

// SetDefaults registers every scalar default with v so environment
// variables can override keys that no config file mentions.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("canvas.width", d.Canvas.Width)
	v.SetDefault("canvas.height", d.Canvas.Height)
	v.SetDefault("canvas.pixels", d.Canvas.Pixels)
	v.SetDefault("editor.vertex_radius", d.Editor.VertexRadius)
	v.SetDefault("editor.edge_width", d.Editor.EdgeWidth)
	v.SetDefault("editor.pick_radius", d.Editor.PickRadius)
	v.SetDefault("editor.quiet_history", d.Editor.QuietHistory)
	v.SetDefault("policy.enabled", d.Policy.Enabled)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
}

// NewViper returns a viper instance with defaults and env binding applied.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load decodes v over the defaults and validates the result.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	// Rules replace the defaults wholesale rather than merging by index.
	cfg.Policy.Rules = nil
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if !v.IsSet("policy.rules") {
		cfg.Policy.Rules = policy.DefaultRules()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the editor cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width < 8 || c.Canvas.Height < 4:
		return fmt.Errorf("%w: canvas must be at least 8x4 cells, got %dx%d", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.Pixels <= 0:
		return fmt.Errorf("%w: canvas.pixels must be positive", ErrInvalidConfig)
	case c.Editor.VertexRadius <= 0 || c.Editor.EdgeWidth <= 0:
		return fmt.Errorf("%w: editor.vertex_radius and editor.edge_width must be positive", ErrInvalidConfig)
	case c.Editor.PickRadius < 0:
		return fmt.Errorf("%w: editor.pick_radius must not be negative", ErrInvalidConfig)
	}
	for i, r := range c.Policy.Rules {
		if r.ID == "" {
			return fmt.Errorf("%w: policy rule %d has no id", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Session converts the editor settings.
func (c Config) Session() session.Config {
	return session.Config{
		VertexRadius: c.Editor.VertexRadius,
		EdgeWidth:    c.Editor.EdgeWidth,
		PickRadius:   c.Editor.PickRadius,
		QuietHistory: c.Editor.QuietHistory,
	}
}

// Render converts the drawing settings.
func (c Config) Render() render.Options {
	opts := render.DefaultOptions()
	opts.Pixels = c.Canvas.Pixels
	opts.VertexRadius = c.Editor.VertexRadius
	opts.EdgeWidth = c.Editor.EdgeWidth
	return opts
}
