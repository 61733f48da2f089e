package lowpoly

import (
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// entropyImageScale maps typical entropy values into the displayable range.
const entropyImageScale = 5.0

// EntropyField is a per-pixel grid of local Shannon entropy values, stored row by row.
type EntropyField struct {
	Width, Height int
	Values        []float64
}

// NewEntropyField allocates a zeroed field.
func NewEntropyField(width, height int) *EntropyField {
	return &EntropyField{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the entropy at (x, y).
func (f *EntropyField) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Set sets the entropy at (x, y).
func (f *EntropyField) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

// Clone returns a deep copy.
func (f *EntropyField) Clone() *EntropyField {
	c := &EntropyField{Width: f.Width, Height: f.Height, Values: make([]float64, len(f.Values))}
	copy(c.Values, f.Values)
	return c
}

// Image returns a visualization of the field, each pixel being entropy/5
// clamped to [0, 1].
func (f *EntropyField) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for i, v := range f.Values {
		img.Pix[i] = entropyColor(v).Y
	}
	return img
}

// entropyOptions holds the ComputeEntropy settings.
type entropyOptions struct {
	workers int
}

// EntropyOption configures ComputeEntropy.
type EntropyOption func(*entropyOptions) error

// WithWorkers sets the number of goroutines sharing the rows of the image.
// Zero means one per CPU. The result does not depend on the worker count.
func WithWorkers(n int) EntropyOption {
	return func(o *entropyOptions) error {
		if n < 0 {
			return invalidParam("worker count %d is negative", n)
		}
		o.workers = n
		return nil
	}
}

// ComputeEntropy computes, for every pixel, the Shannon entropy of the gray
// levels found in the square window of the given radius around it. Windows are
// clipped to the image, so border pixels use fewer samples.
func ComputeEntropy(buf *PixelBuffer, sampleRadius int, opts ...EntropyOption) (*EntropyField, error) {
	if buf.Empty() {
		return nil, errors.Wrap(ErrEmptyInput, "entropy of an empty pixel buffer")
	}
	if sampleRadius < 0 {
		return nil, invalidParam("sample radius %d is negative", sampleRadius)
	}
	var o entropyOptions
	for _, set := range opts {
		if err := set(&o); err != nil {
			return nil, err
		}
	}
	workers := o.workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = clamp(workers, 1, buf.Height)

	levels, numLevels := grayLevels(buf)
	field := NewEntropyField(buf.Width, buf.Height)

	band := (buf.Height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < buf.Height; y0 += band {
		y1 := Min(y0+band, buf.Height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			h := newHistogram(numLevels)
			for y := y0; y < y1; y++ {
				for x := 0; x < buf.Width; x++ {
					field.Values[y*buf.Width+x] = h.window(levels, buf.Width, buf.Height, x, y, sampleRadius)
				}
			}
		}(y0, y1)
	}
	wg.Wait()

	return field, nil
}

// grayLevels maps every pixel to a dense index of its gray value. Indices are
// assigned in row-major order of first appearance.
func grayLevels(buf *PixelBuffer) ([]int32, int) {
	ids := make(map[float64]int32)
	levels := make([]int32, len(buf.Pix))
	for i, c := range buf.Pix {
		g := c.Gray()
		id, ok := ids[g]
		if !ok {
			id = int32(len(ids))
			ids[g] = id
		}
		levels[i] = id
	}
	return levels, len(ids)
}

// histogram counts gray levels inside one window. It is owned by a single
// goroutine and reused across pixels.
type histogram struct {
	counts  []int32
	touched []int32
	// parts memoizes p·log2(1/p) for p = count/total, per window total.
	parts map[int][]float64
}

func newHistogram(numLevels int) *histogram {
	return &histogram{
		counts: make([]int32, numLevels),
		parts:  make(map[int][]float64),
	}
}

func (h *histogram) window(levels []int32, width, height, x, y, r int) float64 {
	x0, x1 := Max(x-r, 0), Min(x+r, width-1)
	y0, y1 := Max(y-r, 0), Min(y+r, height-1)

	h.touched = h.touched[:0]
	for sy := y0; sy <= y1; sy++ {
		row := levels[sy*width : sy*width+width]
		for sx := x0; sx <= x1; sx++ {
			l := row[sx]
			if h.counts[l] == 0 {
				h.touched = append(h.touched, l)
			}
			h.counts[l]++
		}
	}

	total := (x1 - x0 + 1) * (y1 - y0 + 1)
	var entropy float64
	for _, l := range h.touched {
		entropy += h.part(int(h.counts[l]), total)
		h.counts[l] = 0
	}
	return entropy
}

func (h *histogram) part(count, total int) float64 {
	table, ok := h.parts[total]
	if !ok {
		table = make([]float64, total+1)
		for i := range table {
			table[i] = -1
		}
		h.parts[total] = table
	}
	if v := table[count]; v >= 0 {
		return v
	}
	p := float64(count) / float64(total)
	v := p * math.Log2(1/p)
	table[count] = v
	return v
}

// entropyColor is the visualization color of an entropy value.
func entropyColor(v float64) color.Gray {
	return color.Gray{Y: uint8(clamp(v/entropyImageScale, 0, 1)*255 + 0.5)}
}
