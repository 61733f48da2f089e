package lowpoly

import "math"

// Filter is a pre-pass applied to the pixel buffer before the entropy is computed.
// A filter never modifies its input.
type Filter interface {
	Apply(src *PixelBuffer) (*PixelBuffer, error)
}

// Chain is a list of filters applied one after the other.
type Chain struct {
	Filters []Filter
}

// NewChain creates a new filter chain and initializes it with the given list of filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{
		Filters: filters,
	}
}

// Apply runs all the filters over src. An empty chain returns src itself.
func (c *Chain) Apply(src *PixelBuffer) (*PixelBuffer, error) {
	out := src
	for _, f := range c.Filters {
		next, err := f.Apply(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Grayscale converts the buffer to its luminance.
type Grayscale struct{}

// Apply implements Filter.
func (Grayscale) Apply(src *PixelBuffer) (*PixelBuffer, error) {
	dst := NewPixelBuffer(src.Width, src.Height)
	for i, c := range src.Pix {
		g := c.Gray()
		dst.Pix[i] = Color{g, g, g}
	}
	return dst, nil
}

// ColorDepth limits every channel to Depth+1 levels: round(v·depth)/depth.
// Lower depths drop compression noise which would otherwise show up as entropy.
type ColorDepth struct {
	Depth int
}

// Apply implements Filter.
func (f ColorDepth) Apply(src *PixelBuffer) (*PixelBuffer, error) {
	if f.Depth < 1 || f.Depth > 256 {
		return nil, invalidParam("color depth %d not in [1, 256]", f.Depth)
	}
	d := float64(f.Depth)
	q := func(v float64) float64 {
		return math.Round(v*d) / d
	}
	dst := NewPixelBuffer(src.Width, src.Height)
	for i, c := range src.Pix {
		dst.Pix[i] = Color{q(c.R), q(c.G), q(c.B)}
	}
	return dst, nil
}

// Blur applies a box blur of the given radius on every channel.
type Blur struct {
	Radius int
}

// Apply implements Filter.
func (f Blur) Apply(src *PixelBuffer) (*PixelBuffer, error) {
	if f.Radius < 0 {
		return nil, invalidParam("blur radius %d is negative", f.Radius)
	}
	if f.Radius == 0 {
		return src.Clone(), nil
	}
	var (
		n      = len(src.Pix)
		matrix = setBlurMatrix(f.Radius)
		r      = make([]float64, n)
		g      = make([]float64, n)
		b      = make([]float64, n)
	)
	for i, c := range src.Pix {
		r[i], g[i], b[i] = c.R, c.G, c.B
	}
	r = convolve(matrix, r, src.Width, src.Height)
	g = convolve(matrix, g, src.Width, src.Height)
	b = convolve(matrix, b, src.Width, src.Height)

	dst := NewPixelBuffer(src.Width, src.Height)
	for i := range dst.Pix {
		dst.Pix[i] = Color{r[i], g[i], b[i]}
	}
	return dst, nil
}

// ColorDepthFromAccuracy maps a detail accuracy in [0, 15] to the color depth
// used for the entropy pre-pass. Higher accuracy quantizes harder, so only
// strong structure is left to produce entropy.
func ColorDepthFromAccuracy(accuracy int) int {
	const maxAccuracy = 16
	return clamp(maxAccuracy-accuracy, 1, maxAccuracy)
}
