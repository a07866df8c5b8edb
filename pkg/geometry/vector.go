// Package geometry provides the small fixed-function 3D toolkit behind the
// camera settings computation: a value-type vector and matrix, axis rotations,
// the isometric camera operator, and projected bounding measurement of a box.
package geometry

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}
