package lowpoly

import (
	"fmt"
	"math"
	"testing"

	"github.com/esimov/lowpoly/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TriangulationOptions

func TestWithSuperTriangleAngle(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		wantErr bool
	}{
		{"default", 45, false},
		{"narrow", 1, false},
		{"wide", 89.5, false},
		{"zero", 0, true},
		{"right angle", 90, true},
		{"negative", -10, true},
		{"nan", math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &TriangulationOptions{Angle: DefaultSuperTriangleAngle, Eps: BoundsEpsilon}
			err := WithSuperTriangleAngle(tt.angle)(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithSuperTriangleAngle(%v) error = %v, wantErr %v", tt.angle, err, tt.wantErr)
			}
			if err != nil {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else if opts.Angle != tt.angle {
				t.Errorf("WithSuperTriangleAngle(%v) opts.Angle = %v, want %v", tt.angle, opts.Angle, tt.angle)
			}
		})
	}
}

func TestWithBoundsEpsilon(t *testing.T) {
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive", 0.5, false},
		{"eps zero", 0, true},
		{"eps negative", -1, true},
		{"eps infinite", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &TriangulationOptions{Angle: DefaultSuperTriangleAngle, Eps: BoundsEpsilon}
			err := WithBoundsEpsilon(tt.eps)(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithBoundsEpsilon(%v) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
			if err == nil && opts.Eps != tt.eps {
				t.Errorf("WithBoundsEpsilon(%v) opts.Eps = %v, want %v", tt.eps, opts.Eps, tt.eps)
			}
		})
	}
}

// SuperTriangle

// strictlyInside reports whether p is inside the triangle and on none of its edges.
func strictlyInside(tri Triangle, p Point) bool {
	d1 := signedArea(tri.A(), tri.B(), p)
	d2 := signedArea(tri.B(), tri.C(), p)
	d3 := signedArea(tri.C(), tri.A(), p)
	return (d1 > 0 && d2 > 0 && d3 > 0) || (d1 < 0 && d2 < 0 && d3 < 0)
}

func TestSuperTriangle_ContainsBounds(t *testing.T) {
	angles := []float64{1, 10, 30, 45, 60, 80, 89}
	bounds := []Point{{X: 1, Y: 1}, {X: 4, Y: 4}, {X: 640, Y: 480}, {X: 10, Y: 1000}, {X: 3000, Y: 2}}

	for _, angle := range angles {
		for _, b := range bounds {
			t.Run(fmt.Sprintf("%v° %vx%v", angle, b.X, b.Y), func(t *testing.T) {
				super, err := SuperTriangle(b, angle, BoundsEpsilon)
				require.NoError(t, err)

				corners := []Point{{X: 0, Y: 0}, {X: b.X, Y: 0}, {X: b.X, Y: b.Y}, {X: 0, Y: b.Y}}
				for _, c := range corners {
					assert.True(t, strictlyInside(super, c), "corner %v outside %v", c, super.Vertices())
					assert.True(t, super.CircumcircleContains(c), "corner %v outside the circumcircle", c)
				}
			})
		}
	}
}

func TestSuperTriangle_RightAngle(t *testing.T) {
	super, err := SuperTriangle(Point{X: 10, Y: 5}, 45, BoundsEpsilon)
	require.NoError(t, err)

	assert.Equal(t, Point{X: -BoundsEpsilon, Y: -BoundsEpsilon}, super.B())
	ba := super.A().Sub(super.B())
	bc := super.C().Sub(super.B())
	assert.InDelta(t, 0, ba.Dot(bc), 1e-9)
}

func TestSuperTriangle_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		bounds Point
		angle  float64
		eps    float64
	}{
		{"zero width", Point{X: 0, Y: 10}, 45, BoundsEpsilon},
		{"negative height", Point{X: 10, Y: -1}, 45, BoundsEpsilon},
		{"zero angle", Point{X: 10, Y: 10}, 0, BoundsEpsilon},
		{"right angle", Point{X: 10, Y: 10}, 90, BoundsEpsilon},
		{"zero eps", Point{X: 10, Y: 10}, 45, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SuperTriangle(tt.bounds, tt.angle, tt.eps)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

// Delaunay

func totalArea(tris []Triangle) float64 {
	var sum float64
	for _, t := range tris {
		sum += t.Area()
	}
	return sum
}

// assertDelaunay checks that no point lies strictly inside a circumcircle.
// Cocircular points sit on the circle up to rounding.
func assertDelaunay(t *testing.T, tris []Triangle, points []Point) {
	t.Helper()
	for i, tri := range tris {
		limit := tri.Radius()*tri.Radius() - 1e-9*math.Max(1, tri.Radius()*tri.Radius())
		for _, p := range points {
			if tri.HasVertex(p) {
				continue
			}
			if squaredDistance(p, tri.Center()) < limit {
				t.Errorf("triangle %d %v has %v inside its circumcircle", i, tri.Vertices(), p)
			}
		}
	}
}

func TestDelaunay_Insert(t *testing.T) {
	d, err := NewDelaunay(Point{X: 10, Y: 10})
	require.NoError(t, err)
	require.Len(t, d.Triangles(), 1)
	assert.Equal(t, d.SuperTriangle(), d.Triangles()[0])
	assert.Equal(t, Point{X: 10, Y: 10}, d.Bounds())

	require.NoError(t, d.Insert([]Point{{X: 5, Y: 5}}))
	assert.Len(t, d.Triangles(), 3, "a point inside a triangle splits it in three")
	assert.Empty(t, d.Result(), "every triangle still touches the super-triangle")

	require.NoError(t, d.Insert([]Point{{X: 1, Y: 1}, {X: 9, Y: 2}}))
	result := d.Result()
	require.Len(t, result, 1)
	assert.InDelta(t, 14.0, result[0].Area(), 1e-9)
}

func TestNewDelaunay_InvalidOption(t *testing.T) {
	_, err := NewDelaunay(Point{X: 10, Y: 10}, WithSuperTriangleAngle(120))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTriangulate_TooFewPoints(t *testing.T) {
	for n := 0; n < 3; n++ {
		points := make([]Point, n)
		for i := range points {
			points[i] = Point{X: float64(i), Y: 1}
		}
		_, err := Triangulate(points, Point{X: 4, Y: 4})
		assert.ErrorIs(t, err, ErrEmptyInput, "%d points", n)
	}
}

func TestTriangulate_Collinear(t *testing.T) {
	tris, err := Triangulate([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, Point{X: 2, Y: 1})
	require.NoError(t, err)
	assert.Empty(t, tris, "collinear points only form triangles with the super-triangle")
}

func TestTriangulate_Square(t *testing.T) {
	points := []Point{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	shifted := make([]Point, len(points))
	for i, p := range points {
		shifted[i] = p.Add(Point{X: 1, Y: 1})
	}
	tris, err := Triangulate(shifted, Point{X: 2, Y: 2})
	assert.NoError(t, err)
	assert.Len(t, tris, 2)
	assert.InDelta(t, 4.0, totalArea(tris), 1e-9)
}

func TestTriangulate_Grid(t *testing.T) {
	var points []Point
	for y := 0; y <= 2; y++ {
		for x := 0; x <= 2; x++ {
			points = append(points, Point{X: float64(x), Y: float64(y)})
		}
	}
	tris, err := Triangulate(points, Point{X: 2, Y: 2})
	require.NoError(t, err)

	// 2n - 2 - k with n = 9 points and k = 8 points on the hull.
	assert.Len(t, tris, 8)
	assert.InDelta(t, 4.0, totalArea(tris), 1e-9)
	assertDelaunay(t, tris, points)
}

func TestTriangulate_BorderPoints(t *testing.T) {
	points, err := BorderPoints(4, 4, 4)
	require.NoError(t, err)
	require.Len(t, points, 20)

	tris, err := Triangulate(points, Point{X: 4, Y: 4})
	require.NoError(t, err)

	// All 20 points are on the hull: 2n - 2 - k = 18.
	assert.Len(t, tris, 18)
	assert.InDelta(t, 16.0, totalArea(tris), 1e-9, "no gaps and no overlaps")
	assertDelaunay(t, tris, points)
}

func TestTriangulate_OrderIndependentArea(t *testing.T) {
	points, err := BorderPoints(6, 30, 20)
	require.NoError(t, err)
	reversed := make([]Point, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}

	a, err := Triangulate(points, Point{X: 30, Y: 20})
	require.NoError(t, err)
	b, err := Triangulate(reversed, Point{X: 30, Y: 20})
	require.NoError(t, err)

	assert.Equal(t, len(a), len(b))
	assert.InDelta(t, 600.0, totalArea(a), 1e-6)
	assert.InDelta(t, 600.0, totalArea(b), 1e-6)
}

func TestTriangulate_Random(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		seed   int64
		angle  float64
		bounds Point
	}{
		{"small", 10, 0, 45, Point{X: 50, Y: 50}},
		{"medium", 200, 1, 45, Point{X: 320, Y: 200}},
		{"narrow super-triangle", 200, 2, 20, Point{X: 320, Y: 200}},
		{"wide super-triangle", 200, 3, 70, Point{X: 100, Y: 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, tris, err := RandomTriangulation(tt.size, tt.bounds, tt.seed, WithSuperTriangleAngle(tt.angle))
			require.NoError(t, err)
			require.Len(t, points, tt.size+4)
			require.NotEmpty(t, tris)

			// Triangles touching the super-triangle are dropped, so the hull
			// may lose slivers along the long corner to corner edges.
			assert.LessOrEqual(t, len(tris), 2*len(points)-2-4)
			assert.LessOrEqual(t, totalArea(tris), tt.bounds.X*tt.bounds.Y+1e-6)
			assertDelaunay(t, tris, points)
		})
	}
}

func TestRandomTriangulation_Reproducible(t *testing.T) {
	bounds := Point{X: 100, Y: 100}
	p1, t1, err := RandomTriangulation(50, bounds, 9)
	require.NoError(t, err)
	p2, t2, err := RandomTriangulation(50, bounds, 9)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, t1, t2)

	_, _, err = RandomTriangulation(-1, bounds, 9)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTriangulate_InsertionOrderOfPoints(t *testing.T) {
	points := utils.GenerateRandomPoints(30, Point{X: 10, Y: 10}, 11)
	points = append(points, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, Point{X: 10, Y: 10}, Point{X: 0, Y: 10})

	tris, err := Triangulate(points, Point{X: 10, Y: 10})
	require.NoError(t, err)
	for _, tri := range tris {
		for _, v := range tri.Vertices() {
			assert.Contains(t, points, v, "every vertex is an input point")
		}
	}
}
