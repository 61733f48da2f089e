package lowpoly

import (
	"math"

	"github.com/pkg/errors"
)

// SelectDetailPoints greedily picks count points from the entropy field. Each
// iteration takes the cell with the highest entropy, then lowers the entropy
// around it so that the next picks favour unexplored areas. The field itself
// is left untouched; the suppression runs on a private copy.
//
// Points are returned at pixel centers. When count exceeds the number of
// interesting cells, previously suppressed areas are picked again.
func SelectDetailPoints(field *EntropyField, count, influenceRadius int, influenceStrength float64) ([]Point, error) {
	if count < 0 {
		return nil, invalidParam("detail point count %d is negative", count)
	}
	if influenceRadius < 0 {
		return nil, invalidParam("influence radius %d is negative", influenceRadius)
	}
	if !(influenceStrength > 0) || math.IsInf(influenceStrength, 1) {
		return nil, invalidParam("influence strength %v must be positive", influenceStrength)
	}
	if count == 0 {
		return []Point{}, nil
	}
	if field == nil || field.Width <= 0 || field.Height <= 0 {
		return nil, errors.Wrap(ErrEmptyInput, "detail points from an empty entropy field")
	}

	work := field.Clone()
	points := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		x, y := work.ArgMax()
		points = append(points, Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		work.Suppress(x, y, influenceRadius, influenceStrength)
	}
	return points, nil
}

// ArgMax returns the cell holding the highest value. Ties go to the first
// cell found in row-major order.
func (f *EntropyField) ArgMax() (int, int) {
	best := 0
	for i, v := range f.Values {
		if v > f.Values[best] {
			best = i
		}
	}
	return best % f.Width, best / f.Width
}

// Suppress lowers the entropy in the square of the given radius around (cx, cy).
// Each cell is multiplied by ((|dx|+|dy|) / 2r) / strength clamped to [0, 1]:
// the center is zeroed and the factor grows towards the window border.
// With a zero radius only the center cell is zeroed.
func (f *EntropyField) Suppress(cx, cy, radius int, strength float64) {
	for dy := -radius; dy <= radius; dy++ {
		y := cy + dy
		// This row is out of bounds.
		if y < 0 || y >= f.Height {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := cx + dx
			if x < 0 || x >= f.Width {
				continue
			}
			var factor float64
			if radius > 0 {
				dist := float64(abs(dx) + abs(dy))
				factor = clamp(dist/float64(2*radius)*(1/strength), 0, 1)
			}
			f.Values[y*f.Width+x] *= factor
		}
	}
}

// BorderPoints returns the four corners of the width×height rectangle followed
// by evenly spaced points strictly between them. countPerSide points go on the
// longer sides; the shorter sides get a count scaled by the aspect ratio, so
// the spacing is about the same along both directions.
func BorderPoints(countPerSide int, width, height float64) ([]Point, error) {
	if countPerSide < 0 {
		return nil, invalidParam("border point count %d is negative", countPerSide)
	}
	if !(width > 0 && height > 0) {
		return nil, errors.Wrapf(ErrEmptyInput, "border of a %vx%v rectangle", width, height)
	}
	widthCount, heightCount := countPerSide, countPerSide
	if width >= height {
		heightCount = int(math.Round(float64(countPerSide) * height / width))
	} else {
		widthCount = int(math.Round(float64(countPerSide) * width / height))
	}

	points := make([]Point, 0, 4+2*widthCount+2*heightCount)
	points = append(points,
		Point{X: 0, Y: 0},
		Point{X: width, Y: 0},
		Point{X: width, Y: height},
		Point{X: 0, Y: height},
	)
	for i := 1; i <= widthCount; i++ {
		x := width * float64(i) / float64(widthCount+1)
		points = append(points, Point{X: x, Y: 0}, Point{X: x, Y: height})
	}
	for i := 1; i <= heightCount; i++ {
		y := height * float64(i) / float64(heightCount+1)
		points = append(points, Point{X: 0, Y: y}, Point{X: width, Y: y})
	}
	return points, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
