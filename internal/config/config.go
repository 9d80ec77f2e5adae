// Package config handles tessellation and viewer configuration loading.
package config

import (
	"fmt"

	"github.com/Faultbox/polytess/pkg/tesselator"
)

// Config holds all settings.
type Config struct {
	Tessellation TessellationConfig `yaml:"tessellation"`
	Viewer       ViewerConfig       `yaml:"viewer"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// TessellationConfig holds buffer generation settings.
type TessellationConfig struct {
	IndexType      string  `yaml:"index_type"` // "uint16" or "uint32"
	Extruded       bool    `yaml:"extruded"`
	FP64           bool    `yaml:"fp64"`
	Wireframe      bool    `yaml:"wireframe"`
	ElevationScale float64 `yaml:"elevation_scale"`
	HeightProperty string  `yaml:"height_property"` // feature property read as height
	ColorProperty  string  `yaml:"color_property"`  // feature property read as fill color
	FillColor      string  `yaml:"fill_color"`      // CSS color name or #rrggbb[aa]
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tessellation: TessellationConfig{
			IndexType:      "uint32",
			Extruded:       false,
			FP64:           false,
			Wireframe:      false,
			ElevationScale: 1,
			HeightProperty: "height",
			ColorProperty:  "fill",
			FillColor:      "black",
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ParsedIndexType returns the parsed index width.
func (c TessellationConfig) ParsedIndexType() (tesselator.IndexType, error) {
	return tesselator.ParseIndexType(c.IndexType)
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.Tessellation.ParsedIndexType(); err != nil {
		return fmt.Errorf("tessellation.index_type: %w", err)
	}
	if c.Tessellation.ElevationScale < 0 {
		return fmt.Errorf("tessellation.elevation_scale: must not be negative, got %v", c.Tessellation.ElevationScale)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer: invalid size %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}
