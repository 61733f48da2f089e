package config

import (
	"flag"
	"io"
)

// Flags holds the command line. Only the flags given explicitly override the
// config file, so a default flag value never hides a file setting.
type Flags struct {
	fs *flag.FlagSet

	Config      string
	Source      string
	Destination string
	Debug       bool
	Save        string

	sampleRadius int
	accuracy     int
	gray         bool
	blur         int
	workers      int

	points    int
	border    int
	influence int
	strength  float64
	random    int
	seed      int64

	gradient float64
	angle    float64

	wireframe string
	width     float64
	solid     bool
	flat      bool
	noise     int
	minDim    int

	maxDim int
	smooth bool

	format string
	stroke float64

	logFile string
}

// NewFlags declares the command line flags on a dedicated flag set.
func NewFlags(name string, output io.Writer) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	d := Default()
	fs := f.fs
	fs.SetOutput(output)

	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Source, "in", "", "Source image, directory or URL")
	fs.StringVar(&f.Destination, "out", "", "Destination file or directory")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Save, "save", "", "Write the effective config to this file")

	fs.IntVar(&f.sampleRadius, "radius", d.Entropy.SampleRadius, "Entropy sample radius")
	fs.IntVar(&f.accuracy, "accuracy", d.Entropy.Accuracy, "Detail accuracy (0-15)")
	fs.BoolVar(&f.gray, "gray", d.Entropy.Grayscale, "Measure the entropy on the grayscale image")
	fs.IntVar(&f.blur, "blur", d.Entropy.BlurRadius, "Blur radius applied before the entropy")
	fs.IntVar(&f.workers, "workers", d.Entropy.Workers, "Entropy workers (0 = one per CPU)")

	fs.IntVar(&f.points, "points", d.Points.Detail, "Number of detail points")
	fs.IntVar(&f.border, "border", d.Points.Border, "Border points per side")
	fs.IntVar(&f.influence, "influence", d.Points.InfluenceRadius, "Influence radius of a detail point")
	fs.Float64Var(&f.strength, "strength", d.Points.InfluenceStrength, "Influence strength of a detail point")
	fs.IntVar(&f.random, "random", d.Points.Random, "Use this many random points instead of the entropy")
	fs.Int64Var(&f.seed, "seed", d.Points.Seed, "Seed of the random points")

	fs.Float64Var(&f.gradient, "gradient", d.Mesh.GradientRadius, "Gradient radius modifier (0 = flat)")
	fs.Float64Var(&f.angle, "angle", d.Mesh.SuperTriangleAngle, "Super-triangle angle in degrees")

	fs.StringVar(&f.wireframe, "wireframe", d.Render.Wireframe, "Wireframe mode: none, both or only")
	fs.Float64Var(&f.width, "width", d.Render.LineWidth, "Wireframe line width")
	fs.BoolVar(&f.solid, "solid", d.Render.SolidStroke, "Solid line color")
	fs.BoolVar(&f.flat, "flat", !d.Render.Gradient, "Fill triangles with a single color")
	fs.IntVar(&f.noise, "noise", d.Render.Noise, "Noise factor")
	fs.IntVar(&f.minDim, "min", d.Render.MinDimension, "Minimum output side length")

	fs.IntVar(&f.maxDim, "max", d.Input.MaxDimension, "Maximum working side length (0 = source size)")
	fs.BoolVar(&f.smooth, "smooth", d.Input.Smooth, "Bilinear downscaling of the source")

	fs.StringVar(&f.format, "format", d.Output.Format, "Output format: png, svg, ply or debug")
	fs.Float64Var(&f.stroke, "stroke", d.Output.StrokeWidth, "SVG stroke width")

	fs.StringVar(&f.logFile, "log", d.Logging.LogFile, "Log file")

	return f
}

// Parse parses the arguments, program name excluded.
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// Usage prints the flag defaults.
func (f *Flags) Usage() {
	f.fs.PrintDefaults()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	return f.Config
}

// apply applies the flags set on the command line to the config.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.Debug {
				cfg.Logging.Level = "debug"
			}
		case "radius":
			cfg.Entropy.SampleRadius = f.sampleRadius
		case "accuracy":
			cfg.Entropy.Accuracy = f.accuracy
		case "gray":
			cfg.Entropy.Grayscale = f.gray
		case "blur":
			cfg.Entropy.BlurRadius = f.blur
		case "workers":
			cfg.Entropy.Workers = f.workers
		case "points":
			cfg.Points.Detail = f.points
		case "border":
			cfg.Points.Border = f.border
		case "influence":
			cfg.Points.InfluenceRadius = f.influence
		case "strength":
			cfg.Points.InfluenceStrength = f.strength
		case "random":
			cfg.Points.Random = f.random
		case "seed":
			cfg.Points.Seed = f.seed
		case "gradient":
			cfg.Mesh.GradientRadius = f.gradient
		case "angle":
			cfg.Mesh.SuperTriangleAngle = f.angle
		case "wireframe":
			cfg.Render.Wireframe = f.wireframe
		case "width":
			cfg.Render.LineWidth = f.width
		case "solid":
			cfg.Render.SolidStroke = f.solid
		case "flat":
			cfg.Render.Gradient = !f.flat
		case "noise":
			cfg.Render.Noise = f.noise
		case "min":
			cfg.Render.MinDimension = f.minDim
		case "max":
			cfg.Input.MaxDimension = f.maxDim
		case "smooth":
			cfg.Input.Smooth = f.smooth
		case "format":
			cfg.Output.Format = f.format
		case "stroke":
			cfg.Output.StrokeWidth = f.stroke
		case "log":
			cfg.Logging.LogFile = f.logFile
		}
	})
}
