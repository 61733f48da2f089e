package lowpoly

import (
	"math"

	"github.com/esimov/lowpoly/utils"
	"github.com/pkg/errors"
)

const (
	// DefaultSuperTriangleAngle is the corner angle, in degrees, used to derive
	// the two acute vertices of the super-triangle.
	DefaultSuperTriangleAngle = 45.0
	// BoundsEpsilon is the margin kept between the sampling rectangle and the
	// super-triangle, so that points on the rectangle border are strictly inside.
	BoundsEpsilon = 0.2
)

// TriangulationOptions holds the super-triangle settings.
type TriangulationOptions struct {
	Angle float64
	Eps   float64
}

// TriangulationOption configures Triangulate and NewDelaunay.
type TriangulationOption func(*TriangulationOptions) error

// WithSuperTriangleAngle sets the super-triangle corner angle in degrees.
// The angle must lie in the open range (0, 90).
func WithSuperTriangleAngle(angle float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if !(angle > 0 && angle < 90) {
			return invalidParam("super-triangle angle %v not in (0, 90)", angle)
		}
		o.Angle = angle
		return nil
	}
}

// WithBoundsEpsilon sets the margin between the bounds and the super-triangle.
func WithBoundsEpsilon(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if !(eps > 0) || math.IsInf(eps, 1) {
			return invalidParam("bounds epsilon %v must be positive", eps)
		}
		o.Eps = eps
		return nil
	}
}

// SuperTriangle returns a right triangle strictly containing the rectangle
// [0, bounds.X]×[0, bounds.Y]. The right angle sits at (-eps, -eps) and the
// legs exceed the eps-inflated rectangle by the tangent of the split angle,
// which places the inflated far corner exactly on the hypotenuse and the
// rectangle itself strictly inside.
func SuperTriangle(bounds Point, angle, eps float64) (Triangle, error) {
	if !(bounds.X > 0 && bounds.Y > 0) {
		return Triangle{}, invalidParam("bounds %v must be positive", bounds)
	}
	if !(angle > 0 && angle < 90) {
		return Triangle{}, invalidParam("super-triangle angle %v not in (0, 90)", angle)
	}
	if !(eps > 0) {
		return Triangle{}, invalidParam("bounds epsilon %v must be positive", eps)
	}
	w := bounds.X + 2*eps
	h := bounds.Y + 2*eps
	tan := math.Tan(angle * math.Pi / 180)

	a := Point{X: -eps, Y: -eps + h + w*tan}
	b := Point{X: -eps, Y: -eps}
	c := Point{X: -eps + w + h/tan, Y: -eps}

	return NewTriangle(a, b, c)
}

// Delaunay holds the state of an incremental Bowyer–Watson triangulation.
type Delaunay struct {
	bounds    Point
	super     Triangle
	triangles []Triangle
}

// NewDelaunay initializes the triangulation with the super-triangle
// enclosing the given bounds.
func NewDelaunay(bounds Point, opts ...TriangulationOption) (*Delaunay, error) {
	o := TriangulationOptions{
		Angle: DefaultSuperTriangleAngle,
		Eps:   BoundsEpsilon,
	}
	for _, set := range opts {
		if err := set(&o); err != nil {
			return nil, err
		}
	}
	super, err := SuperTriangle(bounds, o.Angle, o.Eps)
	if err != nil {
		return nil, err
	}
	return &Delaunay{
		bounds:    bounds,
		super:     super,
		triangles: []Triangle{super},
	}, nil
}

// Insert adds the points one by one, in order. For every point all the
// triangles whose circumcircle contains it are removed and the hole left
// behind is re-triangulated by joining its boundary edges to the point.
func (d *Delaunay) Insert(points []Point) error {
	for _, p := range points {
		var edges []Edge
		temps := make([]Triangle, 0, len(d.triangles)+2)

		for _, t := range d.triangles {
			if t.CircumcircleContains(p) {
				// Save the triangle edges; the triangle itself is dropped.
				e := t.Edges()
				edges = append(edges, e[0], e[1], e[2])
			} else {
				temps = append(temps, t)
			}
		}

		for _, e := range boundary(edges) {
			t, err := NewTriangle(e.P1, e.P2, p)
			if err != nil {
				return errors.Wrapf(err, "inserting point %v", p)
			}
			temps = append(temps, t)
		}
		d.triangles = temps
	}
	return nil
}

// boundary returns the edges occurring exactly once, in first-seen order.
// Edges shared by two removed triangles are inside the cavity and are dropped.
func boundary(edges []Edge) []Edge {
	count := make(map[Edge]int, len(edges))
	for _, e := range edges {
		count[e.key()]++
	}
	polygon := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if count[e.key()] == 1 {
			polygon = append(polygon, e)
		}
	}
	return polygon
}

// Triangles returns the current triangles, including the ones attached to
// the super-triangle.
func (d *Delaunay) Triangles() []Triangle {
	return d.triangles
}

// SuperTriangle returns the enclosing triangle used to seed the triangulation.
func (d *Delaunay) SuperTriangle() Triangle {
	return d.super
}

// Bounds returns the rectangle size the triangulation was seeded for.
func (d *Delaunay) Bounds() Point {
	return d.bounds
}

// Result returns the triangulation with every triangle sharing a vertex
// with the super-triangle removed.
func (d *Delaunay) Result() []Triangle {
	result := make([]Triangle, 0, len(d.triangles))
	for _, t := range d.triangles {
		if !t.SharesVertex(d.super) {
			result = append(result, t)
		}
	}
	return result
}

// Triangulate computes the Delaunay triangulation of points lying inside
// [0, bounds.X]×[0, bounds.Y]. Points are inserted in input order and are
// not deduplicated: passing the same point twice is a caller error.
func Triangulate(points []Point, bounds Point, opts ...TriangulationOption) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, errors.Wrapf(ErrEmptyInput, "triangulation needs at least 3 points, got %d", len(points))
	}
	d, err := NewDelaunay(bounds, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Insert(points); err != nil {
		return nil, err
	}
	return d.Result(), nil
}

// RandomTriangulation triangulates n uniformly distributed points inside
// bounds, together with the four corners. The same seed gives the same result.
func RandomTriangulation(n int, bounds Point, seed int64, opts ...TriangulationOption) ([]Point, []Triangle, error) {
	if n < 0 {
		return nil, nil, invalidParam("random point count %d is negative", n)
	}
	points := uniquePoints(append(
		utils.GenerateRandomPoints(n, bounds, seed),
		Point{X: 0, Y: 0}, Point{X: bounds.X, Y: 0},
		Point{X: bounds.X, Y: bounds.Y}, Point{X: 0, Y: bounds.Y},
	))
	tris, err := Triangulate(points, bounds, opts...)
	if err != nil {
		return nil, nil, err
	}
	return points, tris, nil
}
