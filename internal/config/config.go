// Package config handles the lowpoly settings: defaults, the yaml file and
// the command line flags.
package config

import (
	"strings"

	"github.com/esimov/lowpoly"
	"github.com/pkg/errors"
)

// Config holds all settings.
type Config struct {
	Entropy EntropyConfig `yaml:"entropy"`
	Points  PointsConfig  `yaml:"points"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Render  RenderConfig  `yaml:"render"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// EntropyConfig holds the entropy pre-pass settings.
type EntropyConfig struct {
	SampleRadius int `yaml:"sample_radius"`
	// Accuracy in [0, 15] selects the color depth of the entropy source.
	Accuracy   int  `yaml:"accuracy"`
	Grayscale  bool `yaml:"grayscale"`
	BlurRadius int  `yaml:"blur_radius"`
	Workers    int  `yaml:"workers"` // 0 = one per CPU
}

// PointsConfig holds the point placement settings.
type PointsConfig struct {
	Detail            int     `yaml:"detail"`
	Border            int     `yaml:"border"`
	InfluenceRadius   int     `yaml:"influence_radius"`
	InfluenceStrength float64 `yaml:"influence_strength"`
	// Random replaces the entropy driven points by this many uniform ones.
	Random int   `yaml:"random"`
	Seed   int64 `yaml:"seed"`
}

// MeshConfig holds the triangulation and coloring settings.
type MeshConfig struct {
	GradientRadius     float64 `yaml:"gradient_radius"`
	SuperTriangleAngle float64 `yaml:"super_triangle_angle"`
}

// RenderConfig holds the raster output settings.
type RenderConfig struct {
	Wireframe    string  `yaml:"wireframe"` // none, both or only
	LineWidth    float64 `yaml:"line_width"`
	SolidStroke  bool    `yaml:"solid_stroke"`
	Gradient     bool    `yaml:"gradient"`
	Noise        int     `yaml:"noise"`
	MinDimension int     `yaml:"min_dimension"`
}

// InputConfig holds the source image settings.
type InputConfig struct {
	// MaxDimension caps the working resolution. 0 keeps the source size.
	MaxDimension int  `yaml:"max_dimension"`
	Smooth       bool `yaml:"smooth"`
}

// OutputConfig holds the output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // png, svg, ply or debug
	// StrokeWidth outlines the svg triangles.
	StrokeWidth float64 `yaml:"stroke_width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Supported output formats.
const (
	FormatPNG   = "png"
	FormatSVG   = "svg"
	FormatPLY   = "ply"
	FormatDebug = "debug"
)

var wireframeModes = map[string]int{
	"none": lowpoly.WithoutWireframe,
	"both": lowpoly.WithWireframe,
	"only": lowpoly.WireframeOnly,
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := lowpoly.DefaultProcessor()
	return &Config{
		Entropy: EntropyConfig{
			SampleRadius: p.SampleRadius,
			Accuracy:     8,
			Grayscale:    p.Grayscale,
			BlurRadius:   p.BlurRadius,
		},
		Points: PointsConfig{
			Detail:            p.DetailPoints,
			Border:            p.BorderPoints,
			InfluenceRadius:   p.InfluenceRadius,
			InfluenceStrength: p.InfluenceStrength,
		},
		Mesh: MeshConfig{
			GradientRadius:     p.GradientRadiusModifier,
			SuperTriangleAngle: p.SuperTriangleAngle,
		},
		Render: RenderConfig{
			Wireframe:    "none",
			LineWidth:    1,
			Gradient:     true,
			MinDimension: lowpoly.DefaultMinDimension,
		},
		Input: InputConfig{
			MaxDimension: 350,
		},
		Output: OutputConfig{
			Format: FormatPNG,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings which are not covered by lowpoly.Processor.Validate.
func (c *Config) Validate() error {
	if c.Entropy.Accuracy < 0 || c.Entropy.Accuracy > 15 {
		return errors.Errorf("accuracy %d not in [0, 15]", c.Entropy.Accuracy)
	}
	if _, ok := wireframeModes[strings.ToLower(c.Render.Wireframe)]; !ok {
		return errors.Errorf("unknown wireframe mode %q", c.Render.Wireframe)
	}
	switch strings.ToLower(c.Output.Format) {
	case FormatPNG, FormatSVG, FormatPLY, FormatDebug:
	default:
		return errors.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Input.MaxDimension < 0 {
		return errors.Errorf("max dimension %d is negative", c.Input.MaxDimension)
	}
	if c.Points.Random < 0 {
		return errors.Errorf("random point count %d is negative", c.Points.Random)
	}
	return nil
}

// Processor converts the settings to pipeline parameters.
func (c *Config) Processor() lowpoly.Processor {
	return lowpoly.Processor{
		SampleRadius:           c.Entropy.SampleRadius,
		DetailPoints:           c.Points.Detail,
		BorderPoints:           c.Points.Border,
		InfluenceRadius:        c.Points.InfluenceRadius,
		InfluenceStrength:      c.Points.InfluenceStrength,
		GradientRadiusModifier: c.Mesh.GradientRadius,
		ColorDepth:             lowpoly.ColorDepthFromAccuracy(c.Entropy.Accuracy),
		Grayscale:              c.Entropy.Grayscale,
		BlurRadius:             c.Entropy.BlurRadius,
		SuperTriangleAngle:     c.Mesh.SuperTriangleAngle,
		Workers:                c.Entropy.Workers,
	}
}

// RenderOptions converts the settings to raster output options.
// An unknown wireframe mode falls back to none; Validate reports it.
func (c *Config) RenderOptions() lowpoly.RenderOptions {
	return lowpoly.RenderOptions{
		Wireframe:    wireframeModes[strings.ToLower(c.Render.Wireframe)],
		LineWidth:    c.Render.LineWidth,
		SolidStroke:  c.Render.SolidStroke,
		Gradient:     c.Render.Gradient,
		Noise:        c.Render.Noise,
		MinDimension: c.Render.MinDimension,
	}
}

// SVGOptions converts the settings to vector output options.
func (c *Config) SVGOptions() lowpoly.SVGOptions {
	return lowpoly.SVGOptions{
		Title:        "lowpoly",
		Description:  "Low-poly rendering driven by the local image entropy.",
		StrokeWidth:  c.Output.StrokeWidth,
		MinDimension: c.Render.MinDimension,
	}
}
