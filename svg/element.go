// Package svg turns design shapes into a small canonical vector tree and
// serializes it as SVG markup.
//
// The element set is closed: Path, Rect, Circle, Ellipse, Line, Group,
// ClipPathDef, LinearGradientDef and RadialGradientDef. Serialize is the
// single place that knows how each variant is written.
package svg

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/pathdata"
)

// Element is one node of a canonical vector tree.
type Element interface {
	isElement()
}

// Paint holds the presentation attributes shared by all drawable elements.
// Empty strings and nil pointers are not emitted.
type Paint struct {
	Fill          string // color, "none" or "url(#id)"
	FillOpacity   *float64
	FillRule      string
	Stroke        string
	StrokeWidth   float64
	StrokeOpacity *float64
	LineCap       string
	LineJoin      string
	MiterLimit    float64
	DashArray     []float64
	Opacity       *float64
	Transform     *gg.Matrix
	ClipPath      string
	Style         string
}

// Float returns a pointer to v, for optional Paint fields.
func Float(v float64) *float64 {
	return &v
}

// Path is a path-data element.
type Path struct {
	Paint
	D pathdata.Path
}

// Rect is a rectangle with an optional uniform corner radius.
type Rect struct {
	Paint
	X, Y          float64
	Width, Height float64
	RX            float64
}

// Circle is a circle.
type Circle struct {
	Paint
	CX, CY, R float64
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Paint
	CX, CY, RX, RY float64
}

// Line is a straight segment.
type Line struct {
	Paint
	X1, Y1, X2, Y2 float64
}

// Group is an ordered list of children sharing paint attributes.
type Group struct {
	Paint
	Children []Element
}

// ClipPathDef defines a clip region referenced as url(#ID).
type ClipPathDef struct {
	ID       string
	Children []Element
}

// Stop is a gradient color stop.
type Stop struct {
	Offset  float64
	Color   string
	Opacity float64
}

// LinearGradientDef is a linear gradient referenced as url(#ID).
type LinearGradientDef struct {
	ID             string
	Units          string
	X1, Y1, X2, Y2 float64
	Stops          []Stop
}

// RadialGradientDef is a radial gradient referenced as url(#ID).
type RadialGradientDef struct {
	ID        string
	Units     string
	CX, CY, R float64
	FX, FY    *float64
	Stops     []Stop
}

func (*Path) isElement()              {}
func (*Rect) isElement()              {}
func (*Circle) isElement()            {}
func (*Ellipse) isElement()           {}
func (*Line) isElement()              {}
func (*Group) isElement()             {}
func (*ClipPathDef) isElement()       {}
func (*LinearGradientDef) isElement() {}
func (*RadialGradientDef) isElement() {}
