package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt uniformly distributed points inside
// [0, bounds.X)×[0, bounds.Y). The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, bounds r2.Point, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := 0; i < cnt; i++ {
		points[i] = r2.Point{
			X: random.Float64() * bounds.X,
			Y: random.Float64() * bounds.Y,
		}
	}

	return points
}
