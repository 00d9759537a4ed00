package pathdata

import "math"

// Corners holds per-corner radii in the order
// top-left, top-right, bottom-right, bottom-left.
type Corners [4]float64

// Uniform reports whether all radii are equal within tol.
func (c Corners) Uniform(tol float64) bool {
	for i := 1; i < 4; i++ {
		if math.Abs(c[i]-c[0]) > tol {
			return false
		}
	}
	return true
}

// Clamp limits every radius to [0, limit].
func (c Corners) Clamp(limit float64) Corners {
	for i, r := range c {
		c[i] = math.Max(0, math.Min(r, limit))
	}
	return c
}

// Offset moves every non-zero radius by d, clamping at zero.
// Sharp corners stay sharp.
func (c Corners) Offset(d float64) Corners {
	for i, r := range c {
		if r > 0 {
			c[i] = math.Max(0, r+d)
		}
	}
	return c
}

// RoundedRect traces the rect (x, y, w, h) with per-corner radii clockwise,
// starting after the top-left corner:
//
//	M -> H+arc (top-right) -> V+arc (bottom-right) -> H+arc (bottom-left) -> V+arc (top-left) -> Z
//
// offset > 0 traces the outer rect grown by offset on every side,
// offset < 0 the inner rect shrunk by -offset; the radii follow.
func RoundedRect(x, y, w, h float64, radii Corners, offset float64) Path {
	x -= offset
	y -= offset
	w = math.Max(0, w+2*offset)
	h = math.Max(0, h+2*offset)
	r := radii.Offset(offset).Clamp(math.Min(w, h) / 2)
	tl, tr, br, bl := r[0], r[1], r[2], r[3]

	return Build().
		M(x+tl, y).
		HArc(x+w-tr, tr, tr, tr).
		VArc(y+h-br, br, -br, br).
		HArc(x+bl, bl, -bl, -bl).
		VArc(y+tl, tl, tl, -tl).
		Z().
		Path()
}
