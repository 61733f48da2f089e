package lowpoly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayscale(t *testing.T) {
	src := NewPixelBuffer(2, 1)
	src.Set(0, 0, Color{R: 1})
	src.Set(1, 0, Color{1, 1, 1})

	dst, err := Grayscale{}.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, Color{0.299, 0.299, 0.299}, dst.At(0, 0))
	assert.InDelta(t, 1.0, dst.At(1, 0).R, 1e-12)

	// The source is untouched.
	assert.Equal(t, Color{R: 1}, src.At(0, 0))
}

func TestColorDepth(t *testing.T) {
	tests := []struct {
		depth int
		in    float64
		want  float64
	}{
		{1, 0.4, 0},
		{1, 0.6, 1},
		{2, 0.3, 0.5},
		{4, 0.3, 0.25},
		{4, 0.4, 0.5},
		{256, 1, 1},
	}
	for _, tt := range tests {
		src := NewPixelBuffer(1, 1)
		src.Set(0, 0, Color{tt.in, tt.in, tt.in})

		dst, err := ColorDepth{Depth: tt.depth}.Apply(src)
		require.NoError(t, err)
		assert.Equal(t, tt.want, dst.At(0, 0).R, "depth %d of %v", tt.depth, tt.in)
	}
}

func TestColorDepth_Invalid(t *testing.T) {
	for _, d := range []int{-1, 0, 257} {
		_, err := ColorDepth{Depth: d}.Apply(NewPixelBuffer(1, 1))
		assert.ErrorIs(t, err, ErrInvalidParameter, "depth %d", d)
	}
}

func TestColorDepthFromAccuracy(t *testing.T) {
	assert.Equal(t, 16, ColorDepthFromAccuracy(0))
	assert.Equal(t, 8, ColorDepthFromAccuracy(8))
	assert.Equal(t, 1, ColorDepthFromAccuracy(15))
	assert.Equal(t, 1, ColorDepthFromAccuracy(40))
}

func TestBlur(t *testing.T) {
	src := NewPixelBuffer(3, 3)
	src.Set(1, 1, Color{1, 1, 1})

	dst, err := Blur{Radius: 1}.Apply(src)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/9, dst.At(1, 1).R, 1e-12)
	// Border windows are clipped to four samples.
	assert.InDelta(t, 0.25, dst.At(0, 0).G, 1e-12)
	assert.InDelta(t, 1.0/6, dst.At(1, 0).B, 1e-12)

	uniform := uniformBuffer(5, 4, Color{0.5, 0.5, 0.5})
	dst, err = Blur{Radius: 2}.Apply(uniform)
	require.NoError(t, err)
	assert.Equal(t, uniform, dst)

	dst, err = Blur{}.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, src, dst)
	assert.NotSame(t, src, dst)

	_, err = Blur{Radius: -1}.Apply(src)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestChain(t *testing.T) {
	src := NewPixelBuffer(1, 1)
	src.Set(0, 0, Color{R: 1})

	dst, err := NewChain(Grayscale{}, ColorDepth{Depth: 1}).Apply(src)
	require.NoError(t, err)
	assert.Equal(t, Color{}, dst.At(0, 0))

	dst, err = NewChain().Apply(src)
	require.NoError(t, err)
	assert.Same(t, src, dst)

	_, err = NewChain(Grayscale{}, ColorDepth{}).Apply(src)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
