package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/esimov/lowpoly"
	"github.com/esimov/lowpoly/internal/config"
	"github.com/esimov/lowpoly/internal/logger"
	"github.com/esimov/lowpoly/utils"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
)

// Supported image files.
var extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// job is one image to convert.
type job struct {
	in, out string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	flags := config.NewFlags("lowpoly", stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.Source == "" && flags.Save == "" {
		fmt.Fprintln(stderr, "Usage: lowpoly -in input.jpg [-out output.png] [options]")
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "lowpoly: %v\n", err)
		return 2
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(stderr, "lowpoly: %v\n", err)
		return 2
	}
	defer logger.Sync()

	if flags.Save != "" {
		if err := cfg.SaveTo(flags.Save); err != nil {
			logger.Error("unable to save the config", zap.String("path", flags.Save), zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("path", flags.Save))
		if flags.Source == "" {
			return 0
		}
	}

	jobs, err := collectJobs(flags.Source, flags.Destination, outputExt(cfg.Output.Format))
	if err != nil {
		logger.Error("unable to read the source", zap.String("source", flags.Source), zap.Error(err))
		return 1
	}

	interactive := isTerminal(stderr) && cfg.Logging.Level != "debug"
	au := aurora.NewAurora(isTerminal(stderr))

	proc := cfg.Processor()
	proc.Logger = logger.Log
	gen := lowpoly.NewGenerator(proc)

	failed := 0
	for _, j := range jobs {
		var s *utils.Spinner
		if interactive {
			s = utils.NewSpinner(stderr, true)
			s.Start("Generating triangulated image...")
		}
		start := time.Now()
		res, err := convert(gen, cfg, j)
		if s != nil {
			s.Stop()
		}

		if err != nil {
			failed++
			logger.Error("error converting image", zap.String("file", j.in), zap.Error(err))
			continue
		}
		took := time.Since(start)
		logger.Info("image converted",
			zap.String("file", j.in),
			zap.String("output", j.out),
			zap.Int("points", len(res.Points)),
			zap.Int("triangles", len(res.Triangles)),
			zap.Duration("took", took),
		)
		if interactive {
			fmt.Fprintf(stderr, "\nGenerated in: %s\n", au.Green(utils.FormatTime(took)))
			fmt.Fprintf(stderr, "Total number of %s triangles generated out of %s points\n",
				au.Green(len(res.Triangles)), au.Green(len(res.Points)))
			fmt.Fprintf(stderr, "Saved as: %s %s\n\n", filepath.Base(j.out), au.Green("✓"))
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func outputExt(format string) string {
	switch strings.ToLower(format) {
	case config.FormatSVG, config.FormatDebug:
		return "svg"
	case config.FormatPLY:
		return "ply"
	default:
		return "png"
	}
}

func isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// collectJobs maps every source image to its output file. A directory source
// needs a directory destination; a missing destination gets a timestamped name.
func collectJobs(source, destination, ext string) ([]job, error) {
	if isURL(source) {
		return []job{{in: source, out: singleOutput(destination, source, ext)}}, nil
	}

	fs, err := os.Stat(source)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open source")
	}
	if !fs.IsDir() {
		return []job{{in: source, out: singleOutput(destination, source, ext)}}, nil
	}

	if destination == "" {
		destination = "."
	}
	if dst, err := os.Stat(destination); err == nil && !dst.IsDir() {
		return nil, errors.Errorf("destination %s must be a directory", destination)
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return nil, errors.Wrap(err, "unable to create the destination directory")
	}

	files, err := os.ReadDir(source)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read dir")
	}
	var jobs []job
	for _, f := range files {
		if f.IsDir() || !isImage(f.Name()) {
			continue
		}
		jobs = append(jobs, job{
			in:  filepath.Join(source, f.Name()),
			out: filepath.Join(destination, utils.ReplaceExt(f.Name(), ext)),
		})
	}
	if len(jobs) == 0 {
		return nil, errors.Errorf("no image found in %s", source)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].in < jobs[k].in })
	return jobs, nil
}

func singleOutput(destination, source, ext string) string {
	if destination == "" {
		return utils.TimestampName(time.Now(), ext)
	}
	if fi, err := os.Stat(destination); err == nil && fi.IsDir() {
		name := filepath.Base(source)
		if isURL(source) || !isImage(name) {
			name = utils.TimestampName(time.Now(), ext)
		}
		return filepath.Join(destination, utils.ReplaceExt(name, ext))
	}
	return destination
}

func openSource(in string) (io.ReadCloser, func(), error) {
	if isURL(in) {
		f, err := utils.DownloadImage(in)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { os.Remove(f.Name()) }, nil
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to open source file")
	}
	return f, func() {}, nil
}

// convert decodes the source, runs the pipeline and writes the output.
func convert(gen *lowpoly.Generator, cfg *config.Config, j job) (*lowpoly.Result, error) {
	r, cleanup, err := openSource(j.in)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode image")
	}
	img := lowpoly.Resize(src, cfg.Input.MaxDimension, cfg.Input.Smooth)
	buf := lowpoly.PixelBufferFromImage(img)

	var res *lowpoly.Result
	if cfg.Points.Random > 0 {
		res, err = randomResult(cfg, buf)
	} else {
		res, err = gen.Generate(buf)
	}
	if err != nil {
		return nil, err
	}

	out, err := os.Create(j.out)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create the output file")
	}
	if err := write(out, cfg, res, buf); err != nil {
		out.Close()
		return nil, err
	}
	return res, errors.Wrap(out.Close(), "closing the output file")
}

// randomResult triangulates uniformly distributed points instead of the
// entropy driven ones.
func randomResult(cfg *config.Config, buf *lowpoly.PixelBuffer) (*lowpoly.Result, error) {
	p := cfg.Processor()
	if buf.Empty() {
		return nil, errors.Wrap(lowpoly.ErrEmptyInput, "random triangulation of an empty image")
	}
	var opts []lowpoly.TriangulationOption
	if p.SuperTriangleAngle != 0 {
		opts = append(opts, lowpoly.WithSuperTriangleAngle(p.SuperTriangleAngle))
	}
	points, tris, err := lowpoly.RandomTriangulation(cfg.Points.Random, buf.Size(), cfg.Points.Seed, opts...)
	if err != nil {
		return nil, err
	}
	mesh, err := lowpoly.Synthesize(tris, buf, p.GradientRadiusModifier)
	if err != nil {
		return nil, err
	}
	return &lowpoly.Result{Source: buf, Points: points, Triangles: tris, Mesh: mesh}, nil
}

func write(w io.Writer, cfg *config.Config, res *lowpoly.Result, buf *lowpoly.PixelBuffer) error {
	switch strings.ToLower(cfg.Output.Format) {
	case config.FormatSVG:
		return lowpoly.WriteSVG(w, res.Mesh, buf.Width, buf.Height, cfg.SVGOptions())
	case config.FormatDebug:
		return lowpoly.WriteDebugSVG(w, res.Triangles, res.Points, buf.Size(), cfg.SVGOptions())
	case config.FormatPLY:
		return lowpoly.WritePLY(w, res.Mesh)
	default:
		img, err := lowpoly.Render(res.Mesh, buf.Width, buf.Height, cfg.RenderOptions())
		if err != nil {
			return err
		}
		return errors.Wrap(png.Encode(w, img), "encoding png")
	}
}
