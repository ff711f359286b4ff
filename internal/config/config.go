// Package config loads runtime settings for the HSV wizard.
package config

import (
	"encoding/json"
	"os"
	"strings"
)

// Environment variables that override file settings.
const (
	EnvConfigPath = "HSV_WIZARD_CONFIG"
	EnvLogLevel   = "HSV_WIZARD_LOG_LEVEL"
)

// Config holds runtime configuration for the engine and its front ends.
// Fields may be loaded from a JSON file and overridden by environment
// variables or command-line flags.
type Config struct {
	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"` // "console" or "json"

	// View
	ZoomMin  float64 `json:"zoom_min"`
	ZoomMax  float64 `json:"zoom_max"`
	ZoomStep float64 `json:"zoom_step"`

	// Drawing
	SnapDegrees          float64 `json:"snap_degrees"`
	ScaleBarMargin       float64 `json:"scale_bar_margin"`
	ScaleBarHitTolerance float64 `json:"scale_bar_hit_tolerance"`

	// Threshold widgets
	WheelRadius  int `json:"wheel_radius"`
	HueBarWidth  int `json:"hue_bar_width"`
	HueBarHeight int `json:"hue_bar_height"`
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "console",
		ZoomMin:              0.1,
		ZoomMax:              10.0,
		ZoomStep:             1.1,
		SnapDegrees:          15,
		ScaleBarMargin:       50,
		ScaleBarHitTolerance: 8,
		WheelRadius:          150,
		HueBarWidth:          300,
		HueBarHeight:         50,
	}
}

// Validate clamps/normalizes values to safe ranges. Every field has a usable
// fallback, so it never fails.
func (c *Config) Validate() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat != "json" {
		c.LogFormat = "console"
	}
	// Resampling supports 0.1x to 10x.
	if c.ZoomMin < 0.1 || c.ZoomMin > 10 {
		c.ZoomMin = 0.1
	}
	if c.ZoomMax > 10 || c.ZoomMax < c.ZoomMin {
		c.ZoomMax = 10
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = 1.1
	}
	if c.SnapDegrees <= 0 || c.SnapDegrees > 90 {
		c.SnapDegrees = 15
	}
	if c.ScaleBarMargin < 0 {
		c.ScaleBarMargin = 50
	}
	if c.ScaleBarHitTolerance <= 0 {
		c.ScaleBarHitTolerance = 8
	}
	if c.WheelRadius <= 0 {
		c.WheelRadius = 150
	}
	if c.HueBarWidth <= 0 {
		c.HueBarWidth = 300
	}
	if c.HueBarHeight <= 0 {
		c.HueBarHeight = 50
	}
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns Default(). On JSON error it returns
// defaults with the error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, err
		}
		if err == nil {
			defer f.Close()
			if err := json.NewDecoder(f).Decode(cfg); err != nil {
				return Default(), err
			}
		}
	}
	cfg.ApplyEnv()
	cfg.Validate()
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
