package lowpoly

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	debugTriangleStyle = "fill:none;stroke:rgb(40,40,40);stroke-width:1"
	debugCircleStyle   = "fill:none;stroke:rgb(230,70,70);stroke-width:1;stroke-opacity:0.4"
	debugCenterStyle   = "fill:rgb(230,70,70)"
	debugSiteStyle     = "fill:rgb(0,0,255)"
	debugBoundsStyle   = "fill:none;stroke:rgb(0,160,0);stroke-width:1;stroke-dasharray:4,4"
)

// SVGOptions configures the vector exports.
type SVGOptions struct {
	Title       string
	Description string
	// StrokeWidth outlines every triangle. 0 disables the outline.
	StrokeWidth float64
	// MinDimension upscales the drawing like RenderOptions.MinDimension.
	// svg coordinates are integers, so small meshes lose precision without it.
	MinDimension int
}

// errWriter remembers the first write error. The svg canvas ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func scaled(p Point, s float64) (int, int) {
	return int(math.Round(p.X * s)), int(math.Round(p.Y * s))
}

func rgb(c Color) string {
	n := c.NRGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", n.R, n.G, n.B)
}

// WriteSVG writes the mesh as an svg document, each triangle filled with
// the mean of its vertex colors.
func WriteSVG(w io.Writer, mesh *Mesh, width, height int, opts SVGOptions) error {
	if width <= 0 || height <= 0 {
		return invalidParam("svg size %dx%d", width, height)
	}
	s := RenderScale(width, height, opts.MinDimension)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(int(math.Ceil(float64(width)*s)), int(math.Ceil(float64(height)*s)))
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	if opts.Description != "" {
		canvas.Desc(opts.Description)
	}

	xs, ys := make([]int, 3), make([]int, 3)
	for i := 0; i < mesh.TriangleCount(); i++ {
		vs, cs := mesh.Triangle(i)
		for j, v := range vs {
			xs[j], ys[j] = scaled(v, s)
		}
		fill := rgb(mixColors(cs[:]...))
		style := "fill:" + fill
		if opts.StrokeWidth > 0 {
			style += fmt.Sprintf(";stroke:%s;stroke-width:%g;stroke-linejoin:round", fill, opts.StrokeWidth)
		}
		canvas.Polygon(xs, ys, style)
	}
	canvas.End()
	return ew.err
}

// WriteDebugSVG draws the triangulation as wireframe together with every
// circumcircle and its center, the input points and the sampling bounds.
func WriteDebugSVG(w io.Writer, tris []Triangle, points []Point, bounds Point, opts SVGOptions) error {
	if !(bounds.X > 0 && bounds.Y > 0) {
		return invalidParam("debug svg bounds %v", bounds)
	}
	width, height := int(math.Ceil(bounds.X)), int(math.Ceil(bounds.Y))
	s := RenderScale(width, height, opts.MinDimension)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(int(math.Ceil(bounds.X*s)), int(math.Ceil(bounds.Y*s)))
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, int(math.Ceil(bounds.X*s)), int(math.Ceil(bounds.Y*s)), "fill:rgb(255,255,255)")

	canvas.Gstyle(debugCircleStyle)
	for _, t := range tris {
		x, y := scaled(t.Center(), s)
		canvas.Circle(x, y, int(math.Round(t.Radius()*s)))
	}
	canvas.Gend()

	xs, ys := make([]int, 3), make([]int, 3)
	for _, t := range tris {
		for j, v := range t.Vertices() {
			xs[j], ys[j] = scaled(v, s)
		}
		canvas.Polygon(xs, ys, debugTriangleStyle)
		x, y := scaled(t.Center(), s)
		canvas.Circle(x, y, 2, debugCenterStyle)
	}
	for _, p := range points {
		x, y := scaled(p, s)
		canvas.Circle(x, y, 3, debugSiteStyle)
	}
	bx, by := scaled(bounds, s)
	canvas.Rect(0, 0, bx, by, debugBoundsStyle)
	canvas.End()
	return ew.err
}
