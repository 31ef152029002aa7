// Package config holds the demo harness configuration, loaded from a
// YAML file and flags through viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// WindowConfig is the requested creation geometry and title.
type WindowConfig struct {
	Title  string `json:"title" mapstructure:"title"`
	X      int32  `json:"x" mapstructure:"x"`
	Y      int32  `json:"y" mapstructure:"y"`
	Width  uint32 `json:"width" mapstructure:"width"`
	Height uint32 `json:"height" mapstructure:"height"`
}

// FontConfig selects the text face for the drawing backend.
type FontConfig struct {
	// Path to a TTF file. Empty selects the packaged default face.
	Path string  `json:"path" mapstructure:"path"`
	Size float64 `json:"size" mapstructure:"size"`
}

// Config is the full harness configuration.
type Config struct {
	// Backend names the windowing backend: "x11" or "sdl".
	Backend   string       `json:"backend" mapstructure:"backend"`
	Window    WindowConfig `json:"window" mapstructure:"window"`
	Font      FontConfig   `json:"font" mapstructure:"font"`
	LogLevel  string       `json:"log_level" mapstructure:"log_level"`
	LogPretty bool         `json:"log_pretty" mapstructure:"log_pretty"`
}

// SetDefaults registers the default values on v. Called before any
// config file or flag binding so partial files work.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend", "x11")
	v.SetDefault("window.title", "sash")
	v.SetDefault("window.x", 0)
	v.SetDefault("window.y", 0)
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("font.size", 13.5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
}

// Load unmarshals and validates the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations no backend could honor.
func (c *Config) Validate() error {
	switch c.Backend {
	case "x11", "sdl":
	default:
		return fmt.Errorf("unknown backend %q (want x11 or sdl)", c.Backend)
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size %dx%d: both dimensions must be positive",
			c.Window.Width, c.Window.Height)
	}
	if c.Font.Size < 0 {
		return fmt.Errorf("font size %v: must not be negative", c.Font.Size)
	}
	return nil
}
