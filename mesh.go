package lowpoly

// ColorSource returns the color found at a point of the triangulation space.
type ColorSource interface {
	ColorAt(p Point) Color
}

// Mesh is a colored triangle list. Every triangle owns its three vertices, so
// it can be colored independently of its neighbours: vertex i belongs to
// triangle i/3 and Colors[i] is its color.
type Mesh struct {
	Vertices []Point
	Colors   []Color
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Indices returns the implicit index list, 0 … 3t-1.
func (m *Mesh) Indices() []int {
	idx := make([]int, len(m.Vertices))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Triangle returns the vertices and colors of the i-th triangle.
func (m *Mesh) Triangle(i int) ([3]Point, [3]Color) {
	j := i * 3
	return [3]Point{m.Vertices[j], m.Vertices[j+1], m.Vertices[j+2]},
		[3]Color{m.Colors[j], m.Colors[j+1], m.Colors[j+2]}
}

// Synthesize builds the mesh of the triangulation, sampling vertex colors from src.
//
// Vertices are emitted in A, C, B order. Each vertex color is taken at a point
// moved from the triangle incircle center towards that vertex by
// inradius·gradientRadiusModifier, never past the vertex itself. A zero
// modifier gives every triangle a single flat color; 1 samples close to the
// incircle, producing a gradient inside the triangle.
func Synthesize(tris []Triangle, src ColorSource, gradientRadiusModifier float64) (*Mesh, error) {
	if src == nil {
		return nil, invalidParam("nil color source")
	}
	if !(gradientRadiusModifier >= 0) {
		return nil, invalidParam("gradient radius modifier %v is negative", gradientRadiusModifier)
	}

	m := &Mesh{
		Vertices: make([]Point, 0, len(tris)*3),
		Colors:   make([]Color, 0, len(tris)*3),
	}
	for _, t := range tris {
		a, b, c := t.A(), t.B(), t.C()
		center := IncircleCenter(a, b, c)
		step := Inradius(a, b, c) * gradientRadiusModifier

		for _, v := range [3]Point{a, c, b} {
			m.Vertices = append(m.Vertices, v)
			m.Colors = append(m.Colors, src.ColorAt(samplePoint(center, v, step)))
		}
	}
	return m, nil
}

// samplePoint moves from center towards v by step, stopping at v.
func samplePoint(center, v Point, step float64) Point {
	d := v.Sub(center)
	dist := d.Norm()
	if dist == 0 || step == 0 {
		return center
	}
	return center.Add(d.Mul(Min(step, dist) / dist))
}
