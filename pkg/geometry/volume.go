package geometry

// Box holds the 8 corners of an axis-aligned box centered at the origin.
// Corners are ordered by binary sign enumeration: index bit 0 selects the X
// sign, bit 1 the Y sign, bit 2 the Z sign (bit set = positive half-extent).
// Corner 0 is therefore the all-negative corner and corner 4 differs from it
// only by +Z. The scale derivation indexes those two corners, so the order
// is part of the contract; use CornerAt instead of raw indices.
type Box [8]Vec3

// NewBox builds a box from full extents along each axis, centered at the
// origin. Zero and negative extents are accepted; the result is a degenerate
// or mirrored box, which measures the same.
func NewBox(x, y, z float64) Box {
	xs, ys, zs := x/2, y/2, z/2
	var b Box
	for i := range b {
		b[i] = Vec3{sign(i&1) * xs, sign(i&2) * ys, sign(i&4) * zs}
	}
	return b
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}

// CornerAt returns the corner with the given sign on each axis. Negative or
// zero arguments select the negative half-extent, positive the positive one.
func (b Box) CornerAt(sx, sy, sz int) Vec3 {
	i := 0
	if sx > 0 {
		i |= 1
	}
	if sy > 0 {
		i |= 2
	}
	if sz > 0 {
		i |= 4
	}
	return b[i]
}

// Transform applies m to every corner and returns the transformed box.
func (b Box) Transform(m Mat3) Box {
	var out Box
	for i, c := range b {
		out[i] = m.MulVec3(c)
	}
	return out
}

// ExtentX returns the width of the box's bounding rectangle in the XY plane,
// i.e. max−min over the X components of all corners.
func (b Box) ExtentX() float64 {
	return b.extent(0)
}

// ExtentY returns the height of the box's bounding rectangle in the XY plane.
func (b Box) ExtentY() float64 {
	return b.extent(1)
}

// extent measures max−min of the given component across all 8 corners.
// The box is always non-empty, so the measurement is total.
func (b Box) extent(axis int) float64 {
	lo, hi := b[0][axis], b[0][axis]
	for _, c := range b[1:] {
		if c[axis] < lo {
			lo = c[axis]
		}
		if c[axis] > hi {
			hi = c[axis]
		}
	}
	return hi - lo
}
