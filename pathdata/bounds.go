package pathdata

import (
	"math"

	"github.com/gogpu/gg"
)

// Sink receives flattened path segments. *gg.Context satisfies it directly;
// use ToPath for a *gg.Path.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// Replay feeds the commands to s. Horizontal and vertical lines become
// line-tos and every arc is converted to cubic segments.
func Replay(p Path, s Sink) {
	var cx, cy, sx, sy float64
	for _, c := range p {
		switch c := c.(type) {
		case MoveTo:
			s.MoveTo(c.X, c.Y)
			cx, cy, sx, sy = c.X, c.Y, c.X, c.Y
		case LineTo:
			s.LineTo(c.X, c.Y)
			cx, cy = c.X, c.Y
		case HorizontalLineTo:
			s.LineTo(c.X, cy)
			cx = c.X
			if c.Arc != nil {
				cx, cy = replayRelArc(s, cx, cy, c.Arc)
			}
		case VerticalLineTo:
			s.LineTo(cx, c.Y)
			cy = c.Y
			if c.Arc != nil {
				cx, cy = replayRelArc(s, cx, cy, c.Arc)
			}
		case ArcTo:
			arcToCubics(s, cx, cy, c.RX, c.RY, c.Rotation, c.LargeArc, c.Sweep, c.X, c.Y)
			cx, cy = c.X, c.Y
		case CubicTo:
			s.CubicTo(c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
			cx, cy = c.X, c.Y
		case QuadTo:
			s.QuadraticTo(c.X1, c.Y1, c.X, c.Y)
			cx, cy = c.X, c.Y
		case ClosePath:
			s.ClosePath()
			cx, cy = sx, sy
		}
	}
}

func replayRelArc(s Sink, cx, cy float64, a *RelativeArc) (float64, float64) {
	x, y := cx+a.DX, cy+a.DY
	arcToCubics(s, cx, cy, a.RX, a.RY, 0, false, a.Sweep, x, y)
	return x, y
}

// ToPath converts the commands into a gg path.
func ToPath(p Path) *gg.Path {
	out := gg.NewPath()
	Replay(p, pathSink{out})
	return out
}

// Bounds returns the tight axis-aligned bounding box of the commands.
func Bounds(p Path) gg.Rect {
	return ToPath(p).BoundingBox()
}

type pathSink struct{ *gg.Path }

func (s pathSink) ClosePath() { s.Close() }

// arcToCubics appends the SVG endpoint arc from (x1, y1) to (x2, y2) as at
// most four cubic segments per full turn.
func arcToCubics(s Sink, x1, y1, rx, ry, rotation float64, large, sweep bool, x2, y2 float64) {
	if x1 == x2 && y1 == y2 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		s.LineTo(x2, y2)
		return
	}

	phi := rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2, dy2 := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Scale radii up when the end point is out of reach.
	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		k := math.Sqrt(lambda)
		rx, ry = rx*k, ry*k
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 {
		coef = math.Sqrt(math.Max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	theta1 := vectorAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := vectorAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if n == 0 {
		s.LineTo(x2, y2)
		return
	}
	step := dtheta / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	mapPoint := func(ux, uy float64) (float64, float64) {
		return cx + rx*ux*cosPhi - ry*uy*sinPhi, cy + rx*ux*sinPhi + ry*uy*cosPhi
	}

	t1 := theta1
	for i := 0; i < n; i++ {
		t2 := t1 + step
		cos1, sin1 := math.Cos(t1), math.Sin(t1)
		cos2, sin2 := math.Cos(t2), math.Sin(t2)
		c1x, c1y := mapPoint(cos1-alpha*sin1, sin1+alpha*cos1)
		c2x, c2y := mapPoint(cos2+alpha*sin2, sin2-alpha*cos2)
		ex, ey := mapPoint(cos2, sin2)
		if i == n-1 {
			ex, ey = x2, y2
		}
		s.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		t1 = t2
	}
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
