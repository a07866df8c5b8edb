// Package blender derives Blender camera/export settings for rendering a
// voxel volume as a pixel-perfect isometric sprite.
//
// The volume is an axis-aligned box measured in whole tile units along X, Y
// and Z. Given a per-tile pixel size, Compute returns the image width and
// height in pixels plus the orthographic scale at which the projected volume
// exactly fills the frame under the fixed 60°/45° camera.
package blender

import (
	"math"

	"github.com/tilecraft/isocam/pkg/geometry"
)

// Dimensions is the user input: pixels per tile edge and the box extents in
// tile units. All values are non-negative integers; callers coerce invalid
// entry to zero before reaching this package.
type Dimensions struct {
	TileSize int `json:"tile_size" toml:"tile_size"`
	XTiles   int `json:"x_tiles" toml:"x_tiles"`
	YTiles   int `json:"y_tiles" toml:"y_tiles"`
	ZTiles   int `json:"z_tiles" toml:"z_tiles"`
}

// SideLength returns the world-space edge length of one tile. Under the
// 60°/45° camera a unit tile's projected diagonal spans TileSize pixels,
// which fixes the conversion at TileSize/√2.
func (d Dimensions) SideLength() float64 {
	return float64(d.TileSize) / math.Sqrt2
}

// Settings is the derived output: image size in pixels and the orthographic
// scale for the Blender camera. Stateless, recomputed on every input change.
type Settings struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

// unitHeightFactor is the projected Y-span between the all-negative corner
// of a unit cube and the corner directly above it: how much vertical image
// extent one tile of depth contributes under the camera. Fixed by the camera
// angles, computed once at startup.
var unitHeightFactor = zSpan(geometry.NewBox(1, 1, 1).Transform(geometry.Projection))

// Compute derives the settings for the given dimensions. Pure and
// deterministic: identical inputs yield identical outputs.
func Compute(d Dimensions) Settings {
	side := d.SideLength()
	box := geometry.NewBox(
		float64(d.XTiles)*side,
		float64(d.YTiles)*side,
		float64(d.ZTiles)*side,
	)
	proj := box.Transform(geometry.Projection)

	width := proj.ExtentX()
	height := proj.ExtentY()

	var scale float64
	if width >= height {
		scale = landscapeScale(max(d.XTiles, d.YTiles))
	} else {
		scale = portraitScale(d.ZTiles, proj, height)
	}

	return Settings{
		Width:  int(math.Round(width)),
		Height: int(math.Round(height)),
		Scale:  scale,
	}
}

// landscapeScale handles silhouettes at least as wide as they are tall.
// The projected top face is a rotated square whose footprint grows by a
// half-diagonal per extra tile along the longer horizontal axis, so the
// scale is affine in that tile count and independent of Z and tile size:
//
//	scale = √2 + (√2/2)·(maxDim−1)
func landscapeScale(maxDim int) float64 {
	return math.Sqrt2 + math.Sqrt2/2*float64(maxDim-1)
}

// portraitScale handles silhouettes taller than wide, where vertical
// stacking along Z drives the frame. The unit cube's per-tile vertical
// footprint is rescaled by the Z tile count, normalized by the fraction of
// the real box's projected height that the Z axis actually occupies.
//
// A zero denominator (a box with no Z contribution routed here) yields 0
// rather than NaN so callers always receive a finite scale.
func portraitScale(zTiles int, proj geometry.Box, height float64) float64 {
	if height == 0 {
		return 0
	}
	proportionOfZ := zSpan(proj) / height
	if proportionOfZ == 0 {
		return 0
	}
	return float64(zTiles) * unitHeightFactor / proportionOfZ
}

// zSpan measures the projected Y distance attributable to depth alone: the
// span between the all-negative corner and the corner differing only by +Z.
func zSpan(proj geometry.Box) float64 {
	return proj.CornerAt(-1, -1, -1).Y() - proj.CornerAt(-1, -1, +1).Y()
}
