package geometry

// Camera angles for the fixed isometric-style view: the camera looks down at
// 60° from vertical after a 45° turn around the up axis. Matching Blender's
// classic dimetric sprite setup.
const (
	CameraTiltDeg = 60
	CameraSpinDeg = 45
)

// Projection is the fixed camera operator Rx(60°)·Rz(45°), applied to column
// vectors on the left. Computed once at startup and never mutated.
var Projection = Mat3Mul(RotX(Deg2Rad(CameraTiltDeg)), RotZ(Deg2Rad(CameraSpinDeg)))
