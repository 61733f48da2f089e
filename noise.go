package lowpoly

import (
	"image"
	"image/color"
)

// prng is a Park–Miller minimal standard generator. It is deterministic, so
// the same image always gets the same grain.
type prng struct {
	a         int
	m         int
	randomNum int
	div       float64
}

func newPrng() *prng {
	return &prng{
		a:         16807,
		m:         0x7fffffff,
		randomNum: 1,
		div:       1.0 / 0x7fffffff,
	}
}

// Noise applies a noise factor, like adobe's grain filter.
func Noise(amount int, src image.Image) *image.NRGBA {
	img := ImgToNRGBA(src)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	rnd := newPrng()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			noise := (rnd.randomSeed() - 0.1) * float64(amount)
			c := img.NRGBAAt(x, y)
			rf, gf, bf := float64(c.R), float64(c.G), float64(c.B)

			// Leave the pixel untouched when a channel would overflow.
			if rf+noise < 255 && gf+noise < 255 && bf+noise < 255 {
				rf += noise
				gf += noise
				bf += noise
			}
			dst.SetNRGBA(x, y, color.NRGBA{
				R: uint8(clamp(rf, 0, 255)),
				G: uint8(clamp(gf, 0, 255)),
				B: uint8(clamp(bf, 0, 255)),
				A: c.A,
			})
		}
	}
	return dst
}

func (prng *prng) nextLongRand(seed int) int {
	lo := prng.a * (seed & 0xffff)
	hi := prng.a * (seed >> 16)
	lo += (hi & 0x7fff) << 16

	if lo > prng.m {
		lo &= prng.m
		lo++
	}
	lo += hi >> 15
	if lo > prng.m {
		lo &= prng.m
		lo++
	}
	return lo
}

func (prng *prng) randomSeed() float64 {
	prng.randomNum = prng.nextLongRand(prng.randomNum)
	return float64(prng.randomNum) * prng.div
}
