package lowpoly

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/image/draw"
)

// ImgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func ImgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := src.Pix[si]
				dst.Pix[di+0] = c
				dst.Pix[di+1] = c
				dst.Pix[di+2] = c
				dst.Pix[di+3] = 0xff
				di += 4
				si++
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// Resize shrinks the image so that neither side exceeds maxDim, keeping the
// aspect ratio. Images already small enough, or a non-positive maxDim, are
// returned unchanged. With smooth set the bilinear scaler is used, otherwise
// nearest neighbour sampling keeps hard pixel edges.
func Resize(img image.Image, maxDim int, smooth bool) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	ratio := math.Min(float64(maxDim)/float64(w), float64(maxDim)/float64(h))
	nw := Max(1, int(float64(w)*ratio))
	nh := Max(1, int(float64(h)*ratio))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// convolve applies the matrix over a single channel of width×height samples
// and returns the result. Neighbours falling outside the image are skipped and
// the remaining weights renormalized, so the borders do not darken.
func convolve(matrix []float64, src []float64, width, height int) []float64 {
	var (
		size = int(math.Sqrt(float64(len(matrix))))
		dim  = size / 2
		dst  = make([]float64, len(src))
	)

	for y := 0; y < height; y++ {
		istep := y * width

		for x := 0; x < width; x++ {
			var sum, weight float64

			for row := -dim; row <= dim; row++ {
				sy := y + row
				jstep := sy * width
				kstep := (row + dim) * size

				if sy >= 0 && sy < height {
					for col := -dim; col <= dim; col++ {
						sx := x + col
						v := matrix[(col+dim)+kstep]
						if sx >= 0 && sx < width {
							sum += src[sx+jstep] * v
							weight += v
						}
					}
				}
			}
			if weight != 0 {
				sum /= weight
			}
			dst[x+istep] = sum
		}
	}
	return dst
}

// setBlurMatrix populates a box matrix used in conjunction with the convolution operator.
func setBlurMatrix(size int) []float64 {
	var (
		side   = size*2 + 1
		length = side * side
		matrix = make([]float64, length)
	)

	for i := 0; i < length; i++ {
		matrix[i] = 1
	}

	return matrix
}

// Min returns the smallest value.
func Min[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value.
func Max[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
