package lowpoly

import (
	"image"
	"image/color"
	"math"
)

// Color is an RGB sample with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// RGBA implements the color.Color interface. Channels are clamped to [0, 1]
// and the color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return to16(c.R), to16(c.G), to16(c.B), 0xffff
}

// NRGBA returns the 8 bit per channel equivalent.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
}

// Gray returns the luminance of the color.
func (c Color) Gray() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func to16(v float64) uint32 {
	return uint32(clamp(v, 0, 1)*0xffff + 0.5)
}

func to8(v float64) uint8 {
	return uint8(clamp(v, 0, 1)*0xff + 0.5)
}

// mixColors returns the channel-wise mean.
func mixColors(cs ...Color) Color {
	var m Color
	if len(cs) == 0 {
		return m
	}
	for _, c := range cs {
		m.R += c.R
		m.G += c.G
		m.B += c.B
	}
	n := float64(len(cs))
	return Color{m.R / n, m.G / n, m.B / n}
}

// PixelBuffer is a width×height grid of RGB samples stored row by row.
type PixelBuffer struct {
	Width, Height int
	Pix           []Color
}

// NewPixelBuffer allocates a black buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// PixelBufferFromImage converts any image to a PixelBuffer with its min-point at (0, 0).
// Alpha is ignored.
func PixelBufferFromImage(img image.Image) *PixelBuffer {
	src := ImgToNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	buf := NewPixelBuffer(w, h)

	for y := 0; y < h; y++ {
		si := src.PixOffset(0, y)
		for x := 0; x < w; x++ {
			buf.Pix[y*w+x] = Color{
				R: float64(src.Pix[si+0]) / 255,
				G: float64(src.Pix[si+1]) / 255,
				B: float64(src.Pix[si+2]) / 255,
			}
			si += 4
		}
	}
	return buf
}

// Empty reports whether the buffer has no pixels.
func (b *PixelBuffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0 || len(b.Pix) < b.Width*b.Height
}

// Bounds returns the buffer size as a rectangle.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Size returns the buffer dimensions as a point, which is also the
// rectangle the triangulation is built in.
func (b *PixelBuffer) Size() Point {
	return Point{X: float64(b.Width), Y: float64(b.Height)}
}

// At returns the pixel at (x, y).
func (b *PixelBuffer) At(x, y int) Color {
	return b.Pix[y*b.Width+x]
}

// Set sets the pixel at (x, y).
func (b *PixelBuffer) Set(x, y int, c Color) {
	b.Pix[y*b.Width+x] = c
}

// Gray returns the luminance of the pixel at (x, y).
func (b *PixelBuffer) Gray(x, y int) float64 {
	return b.Pix[y*b.Width+x].Gray()
}

// ColorAt returns the color of the pixel containing p. Coordinates outside
// the buffer are clamped to the nearest edge pixel.
func (b *PixelBuffer) ColorAt(p Point) Color {
	x := clamp(int(math.Floor(p.X)), 0, b.Width-1)
	y := clamp(int(math.Floor(p.Y)), 0, b.Height-1)
	return b.At(x, y)
}

// Clone returns a deep copy.
func (b *PixelBuffer) Clone() *PixelBuffer {
	c := &PixelBuffer{Width: b.Width, Height: b.Height, Pix: make([]Color, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Image converts the buffer back to an *image.NRGBA.
func (b *PixelBuffer) Image() *image.NRGBA {
	dst := image.NewNRGBA(b.Bounds())
	for i, c := range b.Pix {
		n := c.NRGBA()
		dst.Pix[i*4+0] = n.R
		dst.Pix[i*4+1] = n.G
		dst.Pix[i*4+2] = n.B
		dst.Pix[i*4+3] = n.A
	}
	return dst
}
