package lowpoly

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Wireframe modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// DefaultMinDimension is the smallest side length of a rendered image.
const DefaultMinDimension = 600

// RenderOptions configures Render.
type RenderOptions struct {
	// Wireframe is one of WithoutWireframe, WithWireframe and WireframeOnly.
	Wireframe int
	LineWidth float64
	// SolidStroke draws the wireframe in black instead of the triangle color.
	SolidStroke bool
	// Gradient fills every triangle with its interpolated vertex colors.
	// Otherwise the mean vertex color is used.
	Gradient bool
	// Noise is the amount of grain added to the rendered image.
	Noise int
	// MinDimension upscales the output so that its smaller side is at least
	// this long. 0 keeps the mesh size.
	MinDimension int
	// Background is painted below the triangles. Nil means white.
	Background color.Color
}

// DefaultRenderOptions returns gradient filled triangles without wireframe.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Wireframe:    WithoutWireframe,
		LineWidth:    1,
		Gradient:     true,
		MinDimension: DefaultMinDimension,
	}
}

// RenderScale returns the factor which brings the smaller of width and height
// to minDim. Images already large enough are not scaled.
func RenderScale(width, height, minDim int) float64 {
	short := Min(width, height)
	if minDim <= 0 || short <= 0 || short >= minDim {
		return 1
	}
	return float64(minDim) / float64(short)
}

// Render rasterizes the mesh built over a width×height image.
func Render(mesh *Mesh, width, height int, opts RenderOptions) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidParam("render size %dx%d", width, height)
	}
	switch opts.Wireframe {
	case WithoutWireframe, WithWireframe, WireframeOnly:
	default:
		return nil, invalidParam("unknown wireframe mode %d", opts.Wireframe)
	}
	if opts.Noise < 0 {
		return nil, invalidParam("noise %d is negative", opts.Noise)
	}

	scale := RenderScale(width, height, opts.MinDimension)
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))

	ctx := gg.NewContext(w, h)
	ctx.DrawRectangle(0, 0, float64(w), float64(h))
	if opts.Background != nil {
		ctx.SetColor(opts.Background)
	} else {
		ctx.SetRGBA(1, 1, 1, 1)
	}
	ctx.Fill()

	for i := 0; i < mesh.TriangleCount(); i++ {
		vs, cs := mesh.Triangle(i)
		for j := range vs {
			vs[j] = vs[j].Mul(scale)
		}

		ctx.Push()
		ctx.MoveTo(vs[0].X, vs[0].Y)
		ctx.LineTo(vs[1].X, vs[1].Y)
		ctx.LineTo(vs[2].X, vs[2].Y)
		ctx.ClosePath()

		mean := mixColors(cs[:]...)
		var fill gg.Pattern
		if opts.Gradient && !(cs[0] == cs[1] && cs[1] == cs[2]) {
			fill = newGradientPattern(vs, cs)
		} else {
			fill = gg.NewSolidPattern(mean)
		}

		var lineColor color.Color = mean
		if opts.SolidStroke {
			lineColor = color.Black
		}

		switch opts.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(fill)
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(fill)
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{R: 0, G: 0, B: 0, A: 20}))
			ctx.SetLineWidth(opts.LineWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
			ctx.SetLineWidth(opts.LineWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}

	img := ctx.Image()
	// Apply a noise on the final image. This will give it a more artistic look.
	if opts.Noise > 0 {
		return Noise(opts.Noise, img), nil
	}
	return img, nil
}

// gradientPattern interpolates the three vertex colors of a triangle with
// barycentric weights. Vertices are in device space.
type gradientPattern struct {
	v   [3]Point
	c   [3]Color
	den float64
}

func newGradientPattern(v [3]Point, c [3]Color) *gradientPattern {
	a, b, cc := v[0], v[1], v[2]
	return &gradientPattern{
		v:   v,
		c:   c,
		den: (b.Y-cc.Y)*(a.X-cc.X) + (cc.X-b.X)*(a.Y-cc.Y),
	}
}

// ColorAt implements gg.Pattern.
func (g *gradientPattern) ColorAt(x, y int) color.Color {
	if g.den == 0 {
		return mixColors(g.c[:]...)
	}
	a, b, c := g.v[0], g.v[1], g.v[2]
	px, py := float64(x)+0.5, float64(y)+0.5

	// Pixels on the antialiased border fall slightly outside the triangle.
	wa := clamp(((b.Y-c.Y)*(px-c.X)+(c.X-b.X)*(py-c.Y))/g.den, 0, 1)
	wb := clamp(((c.Y-a.Y)*(px-c.X)+(a.X-c.X)*(py-c.Y))/g.den, 0, 1)
	wc := math.Max(0, 1-wa-wb)
	sum := wa + wb + wc

	return Color{
		R: (wa*g.c[0].R + wb*g.c[1].R + wc*g.c[2].R) / sum,
		G: (wa*g.c[0].G + wb*g.c[1].G + wc*g.c[2].G) / sum,
		B: (wa*g.c[0].B + wb*g.c[1].B + wc*g.c[2].B) / sum,
	}
}
