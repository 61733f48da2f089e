package lowpoly

import (
	"math"

	"github.com/pkg/errors"
)

// collinearTolerance is the smallest accepted |sin| of the angle at the first
// vertex. Anything flatter is treated as collinear.
const collinearTolerance = 1e-12

// Triangle is built from three points, its edges and the circumcircle which
// describes the triangle circumference. The circumcircle is computed once by
// NewTriangle and never changes: a Triangle is immutable.
type Triangle struct {
	a, b, c  Point
	center   Point
	radius   float64
	radiusSq float64
}

// NewTriangle creates a triangle and its circumscribed circle.
// It fails with ErrDegenerateGeometry when the points are coincident or collinear.
func NewTriangle(a, b, c Point) (Triangle, error) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y

	cross := bx*cy - by*cx
	scale := math.Hypot(bx, by) * math.Hypot(cx, cy)
	if scale == 0 || math.Abs(cross) <= collinearTolerance*scale {
		return Triangle{}, errors.Wrapf(ErrDegenerateGeometry, "triangle %v %v %v", a, b, c)
	}

	// Circumcenter relative to a, which keeps the magnitudes small.
	d := 2 * cross
	bb := bx*bx + by*by
	cc := cx*cx + cy*cy
	ux := (cy*bb - by*cc) / d
	uy := (bx*cc - cx*bb) / d

	t := Triangle{a: a, b: b, c: c}
	t.center = Point{X: a.X + ux, Y: a.Y + uy}
	t.radiusSq = ux*ux + uy*uy
	t.radius = math.Sqrt(t.radiusSq)

	return t, nil
}

// A returns the first vertex.
func (t Triangle) A() Point { return t.a }

// B returns the second vertex.
func (t Triangle) B() Point { return t.b }

// C returns the third vertex.
func (t Triangle) C() Point { return t.c }

// Vertices returns A, B and C.
func (t Triangle) Vertices() [3]Point {
	return [3]Point{t.a, t.b, t.c}
}

// Edges returns AB, BC and CA.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}}
}

// Center returns the circumcenter.
func (t Triangle) Center() Point { return t.center }

// Radius returns the circumradius.
func (t Triangle) Radius() float64 { return t.radius }

// CircumcircleContains reports whether p lies strictly inside the circumcircle.
// Points exactly on the circle are outside.
func (t Triangle) CircumcircleContains(p Point) bool {
	return squaredDistance(p, t.center) < t.radiusSq
}

// HasVertex reports whether p is one of the triangle corners.
func (t Triangle) HasVertex(p Point) bool {
	return t.a == p || t.b == p || t.c == p
}

// SharesVertex reports whether the two triangles have any corner in common.
func (t Triangle) SharesVertex(o Triangle) bool {
	return t.HasVertex(o.a) || t.HasVertex(o.b) || t.HasVertex(o.c)
}

// Area returns the unsigned area (shoelace formula).
func (t Triangle) Area() float64 {
	return math.Abs(signedArea(t.a, t.b, t.c))
}

// Perimeter returns the sum of the side lengths.
func (t Triangle) Perimeter() float64 {
	return distance(t.a, t.b) + distance(t.b, t.c) + distance(t.c, t.a)
}

func signedArea(a, b, c Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}

// IncircleCenter returns the center of the circle inscribed in the triangle abc,
// weighting each vertex by the length of the opposite side.
func IncircleCenter(a, b, c Point) Point {
	la := distance(b, c)
	lb := distance(a, c)
	lc := distance(a, b)
	p := la + lb + lc
	if p == 0 {
		return a
	}
	return Point{
		X: (la*a.X + lb*b.X + lc*c.X) / p,
		Y: (la*a.Y + lb*b.Y + lc*c.Y) / p,
	}
}

// Inradius returns the radius of the inscribed circle: 2·area / perimeter.
func Inradius(a, b, c Point) float64 {
	p := distance(a, b) + distance(b, c) + distance(c, a)
	if p == 0 {
		return 0
	}
	return 2 * math.Abs(signedArea(a, b, c)) / p
}
