package svg

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/pathdata"
	"github.com/gogpu/xdlayout/xd"
)

// Radius tolerances.
const (
	uniformTolerance = 1e-4
	seamTolerance    = 0.01
)

// geometry is a drawable outline that can be painted and, for the
// parametric shapes, grown or shrunk uniformly.
type geometry interface {
	element(p Paint) Element
	bounds() gg.Rect
	// offset returns the outline moved d outward on every side,
	// or nil when the shape cannot be offset exactly.
	offset(d float64) geometry
}

type rectGeom struct{ x, y, w, h, rx float64 }

func (g rectGeom) element(p Paint) Element {
	return &Rect{Paint: p, X: g.x, Y: g.y, Width: g.w, Height: g.h, RX: g.rx}
}

func (g rectGeom) bounds() gg.Rect {
	return gg.Rect{Min: gg.Pt(g.x, g.y), Max: gg.Pt(g.x+g.w, g.y+g.h)}
}

func (g rectGeom) offset(d float64) geometry {
	w, h := math.Max(0, g.w+2*d), math.Max(0, g.h+2*d)
	rx := g.rx
	if rx > 0 {
		rx = math.Min(math.Max(0, rx+d), math.Min(w, h)/2)
	}
	return rectGeom{x: g.x - d, y: g.y - d, w: w, h: h, rx: rx}
}

// roundRectGeom is a rect with differing corner radii, which only a path
// can express.
type roundRectGeom struct {
	x, y, w, h float64
	radii      pathdata.Corners
	grow       float64
}

func (g roundRectGeom) path() pathdata.Path {
	return pathdata.RoundedRect(g.x, g.y, g.w, g.h, g.radii, g.grow)
}

func (g roundRectGeom) element(p Paint) Element {
	return &Path{Paint: p, D: g.path()}
}

func (g roundRectGeom) bounds() gg.Rect {
	return gg.Rect{
		Min: gg.Pt(g.x-g.grow, g.y-g.grow),
		Max: gg.Pt(g.x+g.w+g.grow, g.y+g.h+g.grow),
	}
}

func (g roundRectGeom) offset(d float64) geometry {
	g.grow += d
	return g
}

type circleGeom struct{ cx, cy, r float64 }

func (g circleGeom) element(p Paint) Element {
	return &Circle{Paint: p, CX: g.cx, CY: g.cy, R: g.r}
}

func (g circleGeom) bounds() gg.Rect {
	return gg.Rect{Min: gg.Pt(g.cx-g.r, g.cy-g.r), Max: gg.Pt(g.cx+g.r, g.cy+g.r)}
}

func (g circleGeom) offset(d float64) geometry {
	g.r = math.Max(0, g.r+d)
	return g
}

type ellipseGeom struct{ cx, cy, rx, ry float64 }

func (g ellipseGeom) element(p Paint) Element {
	return &Ellipse{Paint: p, CX: g.cx, CY: g.cy, RX: g.rx, RY: g.ry}
}

func (g ellipseGeom) bounds() gg.Rect {
	return gg.Rect{Min: gg.Pt(g.cx-g.rx, g.cy-g.ry), Max: gg.Pt(g.cx+g.rx, g.cy+g.ry)}
}

func (g ellipseGeom) offset(d float64) geometry {
	g.rx = math.Max(0, g.rx+d)
	g.ry = math.Max(0, g.ry+d)
	return g
}

type lineGeom struct{ x1, y1, x2, y2 float64 }

func (g lineGeom) element(p Paint) Element {
	p.Fill = ""
	return &Line{Paint: p, X1: g.x1, Y1: g.y1, X2: g.x2, Y2: g.y2}
}

func (g lineGeom) bounds() gg.Rect {
	return gg.NewRect(gg.Pt(g.x1, g.y1), gg.Pt(g.x2, g.y2))
}

func (lineGeom) offset(float64) geometry { return nil }

type pathGeom struct {
	d        pathdata.Path
	fillRule string
}

func (g pathGeom) element(p Paint) Element {
	p.FillRule = g.fillRule
	return &Path{Paint: p, D: g.d}
}

func (g pathGeom) bounds() gg.Rect {
	return pathdata.Bounds(g.d)
}

func (pathGeom) offset(float64) geometry { return nil }

// normalizeRadius collapses equal corners to a scalar and clamps every
// corner to half the short side. A radius within seamTolerance of that
// limit snaps to it exactly so that a nearly round end renders without a
// seam.
func normalizeRadius(r xd.Radius, w, h float64) (radii pathdata.Corners, uniform bool) {
	if !r.Set {
		return pathdata.Corners{}, true
	}
	radii = pathdata.Corners(r.Corners)
	limit := math.Min(w, h) / 2
	radii = radii.Clamp(limit)
	for i, v := range radii {
		if limit-v < seamTolerance {
			radii[i] = limit
		}
	}
	return radii, radii.Uniform(uniformTolerance)
}

func grow(r gg.Rect, d float64) gg.Rect {
	return gg.Rect{Min: gg.Pt(r.Min.X-d, r.Min.Y-d), Max: gg.Pt(r.Max.X+d, r.Max.Y+d)}
}
