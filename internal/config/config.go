// Package config holds the explicit rendering configuration. Chart
// cosmetics are plain data passed into the renderer, never process-global
// state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style configures the chart's figure geometry and cosmetics.
type Style struct {
	WidthPx  int `yaml:"width_px"`
	HeightPx int `yaml:"height_px"`

	MarkerSize    float64 `yaml:"marker_size"`    // body marker edge, px
	SpiralWidth   float64 `yaml:"spiral_width"`   // field line width, px
	GridWidth     float64 `yaml:"grid_width"`     // grid line width, px
	BoundaryWidth float64 `yaml:"boundary_width"` // enclosing circle width, px
	ArrowWidth    float64 `yaml:"arrow_width"`    // reference arrow width, px

	Background     string `yaml:"background"`       // #rrggbb
	GridColor      string `yaml:"grid_color"`       // #rrggbb
	AxisColor      string `yaml:"axis_color"`       // #rrggbb
	EarthAxisColor string `yaml:"earth_axis_color"` // secondary axis tick color
}

// DefaultStyle returns the canonical chart styling.
func DefaultStyle() Style {
	return Style{
		WidthPx:        1200,
		HeightPx:       800,
		MarkerSize:     9,
		SpiralWidth:    1.5,
		GridWidth:      1,
		BoundaryWidth:  2,
		ArrowWidth:     1.8,
		Background:     "#ffffff",
		GridColor:      "#c8c8c8",
		AxisColor:      "#000000",
		EarthAxisColor: "#006400",
	}
}

// LoadStyle reads a YAML style file, filling unset fields from the default.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style file: %w", err)
	}

	s := DefaultStyle()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Style{}, fmt.Errorf("parse style file: %w", err)
	}
	if s.WidthPx <= 0 || s.HeightPx <= 0 {
		return Style{}, fmt.Errorf("style: figure dimensions must be positive")
	}
	return s, nil
}
