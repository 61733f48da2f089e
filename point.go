package lowpoly

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a 2D coordinate in pixel space. The origin is the top-left corner
// of the source image and pixel (x, y) covers [x, x+1)×[y, y+1).
type Point = r2.Point

// Edge is an unordered pair of points.
type Edge struct {
	P1, P2 Point
}

// Equal reports whether both edges join the same two points, in any order.
func (e Edge) Equal(o Edge) bool {
	return (e.P1 == o.P1 && e.P2 == o.P2) ||
		(e.P1 == o.P2 && e.P2 == o.P1)
}

// key returns the edge with its endpoints in lexicographic order,
// so that A–B and B–A map to the same value.
func (e Edge) key() Edge {
	if e.P2.X < e.P1.X || (e.P2.X == e.P1.X && e.P2.Y < e.P1.Y) {
		return Edge{e.P2, e.P1}
	}
	return e
}

// Length returns the euclidean length of the edge.
func (e Edge) Length() float64 {
	return e.P2.Sub(e.P1).Norm()
}

func squaredDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// uniquePoints drops exact duplicates, keeping the first occurrence.
func uniquePoints(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
