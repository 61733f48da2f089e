package lowpoly

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WritePLY writes the mesh as an ascii PLY file: one vertex per triangle
// corner with its 8 bit color, z = 0, and one face per triangle.
func WritePLY(w io.Writer, mesh *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment lowpoly mesh")
	fmt.Fprintf(bw, "element vertex %d\n", len(mesh.Vertices))
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintln(bw, "property uchar red")
	fmt.Fprintln(bw, "property uchar green")
	fmt.Fprintln(bw, "property uchar blue")
	fmt.Fprintf(bw, "element face %d\n", mesh.TriangleCount())
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	for i, v := range mesh.Vertices {
		c := mesh.Colors[i].NRGBA()
		fmt.Fprintf(bw, "%g %g 0 %d %d %d\n", v.X, v.Y, c.R, c.G, c.B)
	}
	idx := mesh.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		fmt.Fprintf(bw, "3 %d %d %d\n", idx[i], idx[i+1], idx[i+2])
	}
	return errors.Wrap(bw.Flush(), "writing ply")
}
