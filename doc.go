/*
Package lowpoly is an image processing library which turns images into low-poly art.

Points are placed where the local Shannon entropy of the image is highest, the
points are triangulated with the Bowyer–Watson algorithm and every triangle is
colored from the pixels it covers, either flat or as a gradient between its
vertices.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ lowpoly --help

The result can be exposed as raster image, SVG document or PLY mesh.

Example to generate a low-poly image and output the result as a raster type:

	package main

	import (
		"image/png"
		"log"
		"os"

		"github.com/esimov/lowpoly"
	)

	func main() {
		p := lowpoly.DefaultProcessor()

		buf := lowpoly.PixelBufferFromImage(srcImg)
		res, err := p.Generate(buf)
		if err != nil {
			log.Fatal(err)
		}
		img, err := lowpoly.Render(res.Mesh, buf.Width, buf.Height, lowpoly.DefaultRenderOptions())
		if err != nil {
			log.Fatal(err)
		}
		png.Encode(os.Stdout, img)
	}

Example to output the same mesh as SVG:

	err := lowpoly.WriteSVG(w, res.Mesh, buf.Width, buf.Height, lowpoly.SVGOptions{
		Title:       "Low-poly image",
		Description: "Entropy driven Delaunay triangulation.",
	})

A Generator keeps the entropy and the triangulation of the last call, so that
tweaking the gradient or the point parameters does not recompute the whole
pipeline:

	gen := lowpoly.NewGenerator(lowpoly.DefaultProcessor())
	res, err := gen.Generate(buf)
	...
	gen.Processor.GradientRadiusModifier = 0
	res, err = gen.Generate(buf) // only the mesh is rebuilt
*/
package lowpoly
