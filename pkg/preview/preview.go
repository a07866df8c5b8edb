// Package preview renders a wireframe of the projected voxel volume, as a
// visual sanity check that the computed frame really encloses the silhouette.
// It supports SVG (vector) and WebP (raster) output.
package preview

import (
	"math"

	"github.com/tilecraft/isocam/pkg/blender"
	"github.com/tilecraft/isocam/pkg/geometry"
)

// defaultPadding is the margin around the frame rectangle in pixels.
const defaultPadding = 16

// Option configures a preview rendering.
type Option func(*renderer)

type renderer struct {
	padding float64
	stroke  string
}

// WithPadding sets the margin around the frame rectangle.
func WithPadding(px float64) Option {
	return func(r *renderer) { r.padding = px }
}

// WithStroke sets the wireframe stroke color (SVG only).
func WithStroke(color string) Option {
	return func(r *renderer) { r.stroke = color }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{padding: defaultPadding, stroke: "#2aa198"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// point is a projected corner in image coordinates (Y grows downward).
type point struct {
	x, y float64
}

// scene holds the projected wireframe ready for drawing.
type scene struct {
	points        [8]point
	width, height float64 // frame size in pixels, before padding
}

// project builds the drawing scene for the given dimensions: the scaled box
// is pushed through the camera, then shifted into image coordinates with the
// Y axis flipped.
func project(d blender.Dimensions) scene {
	side := d.SideLength()
	proj := geometry.NewBox(
		float64(d.XTiles)*side,
		float64(d.YTiles)*side,
		float64(d.ZTiles)*side,
	).Transform(geometry.Projection)

	minX, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range proj {
		minX = math.Min(minX, c.X())
		maxY = math.Max(maxY, c.Y())
	}

	var s scene
	for i, c := range proj {
		s.points[i] = point{x: c.X() - minX, y: maxY - c.Y()}
	}
	s.width = proj.ExtentX()
	s.height = proj.ExtentY()
	return s
}

// boxEdges lists the 12 corner index pairs forming the box's edges: pairs
// whose indices differ in exactly one sign bit.
var boxEdges = buildEdges()

func buildEdges() [][2]int {
	var edges [][2]int
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2]int{i, i | bit})
			}
		}
	}
	return edges
}
