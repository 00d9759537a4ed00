package svg

import (
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/pathdata"
)

// Serialize writes e as SVG markup.
func Serialize(e Element) string {
	w := &writer{}
	w.element(e)
	return w.String()
}

// Document is a complete SVG document.
type Document struct {
	Width, Height float64
	ViewBox       gg.Rect
	Defs          []Element
	Elements      []Element
}

// Markup returns the full <svg> document.
func (d *Document) Markup() string {
	w := &writer{}
	w.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	w.num("width", d.Width)
	w.num("height", d.Height)
	w.WriteString(` viewBox="`)
	w.raw(d.ViewBox.Min.X)
	w.WriteByte(' ')
	w.raw(d.ViewBox.Min.Y)
	w.WriteByte(' ')
	w.raw(d.ViewBox.Width())
	w.WriteByte(' ')
	w.raw(d.ViewBox.Height())
	w.WriteString(`">`)
	if len(d.Defs) > 0 {
		w.WriteString("<defs>")
		for _, e := range d.Defs {
			w.element(e)
		}
		w.WriteString("</defs>")
	}
	for _, e := range d.Elements {
		w.element(e)
	}
	w.WriteString("</svg>")
	return w.String()
}

type writer struct {
	strings.Builder
	buf []byte
}

func (w *writer) raw(v float64) {
	w.buf = pathdata.AppendNum(w.buf[:0], v)
	w.Write(w.buf)
}

func (w *writer) num(name string, v float64) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.raw(v)
	w.WriteByte('"')
}

func (w *writer) radius(name string, v float64) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.buf = pathdata.AppendRadius(w.buf[:0], v)
	w.Write(w.buf)
	w.WriteByte('"')
}

func (w *writer) attr(name, v string) {
	if v == "" {
		return
	}
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.WriteString(v)
	w.WriteByte('"')
}

func (w *writer) element(e Element) {
	switch e := e.(type) {
	case *Path:
		w.WriteString("<path")
		w.attr("d", e.D.String())
		w.paint(&e.Paint)
		w.WriteString("/>")
	case *Rect:
		w.WriteString("<rect")
		if e.X != 0 {
			w.num("x", e.X)
		}
		if e.Y != 0 {
			w.num("y", e.Y)
		}
		w.num("width", e.Width)
		w.num("height", e.Height)
		if e.RX > 0 {
			w.radius("rx", e.RX)
		}
		w.paint(&e.Paint)
		w.WriteString("/>")
	case *Circle:
		w.WriteString("<circle")
		w.num("cx", e.CX)
		w.num("cy", e.CY)
		w.radius("r", e.R)
		w.paint(&e.Paint)
		w.WriteString("/>")
	case *Ellipse:
		w.WriteString("<ellipse")
		w.num("cx", e.CX)
		w.num("cy", e.CY)
		w.radius("rx", e.RX)
		w.radius("ry", e.RY)
		w.paint(&e.Paint)
		w.WriteString("/>")
	case *Line:
		w.WriteString("<line")
		w.num("x1", e.X1)
		w.num("y1", e.Y1)
		w.num("x2", e.X2)
		w.num("y2", e.Y2)
		w.paint(&e.Paint)
		w.WriteString("/>")
	case *Group:
		w.WriteString("<g")
		w.paint(&e.Paint)
		w.WriteByte('>')
		for _, c := range e.Children {
			w.element(c)
		}
		w.WriteString("</g>")
	case *ClipPathDef:
		w.WriteString("<clipPath")
		w.attr("id", e.ID)
		w.WriteByte('>')
		for _, c := range e.Children {
			w.element(c)
		}
		w.WriteString("</clipPath>")
	case *LinearGradientDef:
		w.WriteString("<linearGradient")
		w.attr("id", e.ID)
		w.num("x1", e.X1)
		w.num("y1", e.Y1)
		w.num("x2", e.X2)
		w.num("y2", e.Y2)
		w.attr("gradientUnits", e.Units)
		w.WriteByte('>')
		w.stops(e.Stops)
		w.WriteString("</linearGradient>")
	case *RadialGradientDef:
		w.WriteString("<radialGradient")
		w.attr("id", e.ID)
		w.num("cx", e.CX)
		w.num("cy", e.CY)
		w.radius("r", e.R)
		if e.FX != nil {
			w.num("fx", *e.FX)
		}
		if e.FY != nil {
			w.num("fy", *e.FY)
		}
		w.attr("gradientUnits", e.Units)
		w.WriteByte('>')
		w.stops(e.Stops)
		w.WriteString("</radialGradient>")
	}
}

func (w *writer) stops(stops []Stop) {
	for _, s := range stops {
		w.WriteString("<stop")
		w.num("offset", s.Offset)
		w.attr("stop-color", s.Color)
		if s.Opacity < 1 {
			w.num("stop-opacity", s.Opacity)
		}
		w.WriteString("/>")
	}
}

func (w *writer) paint(p *Paint) {
	w.attr("fill", p.Fill)
	if p.FillOpacity != nil {
		w.num("fill-opacity", *p.FillOpacity)
	}
	w.attr("fill-rule", p.FillRule)
	if p.Stroke != "" {
		w.attr("stroke", p.Stroke)
		if p.Stroke != "none" {
			w.num("stroke-width", p.StrokeWidth)
		}
	}
	if p.StrokeOpacity != nil {
		w.num("stroke-opacity", *p.StrokeOpacity)
	}
	w.attr("stroke-linecap", p.LineCap)
	w.attr("stroke-linejoin", p.LineJoin)
	if p.MiterLimit > 0 {
		w.num("stroke-miterlimit", p.MiterLimit)
	}
	if len(p.DashArray) > 0 {
		w.WriteString(` stroke-dasharray="`)
		for i, d := range p.DashArray {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.raw(d)
		}
		w.WriteByte('"')
	}
	if p.Opacity != nil {
		w.num("opacity", *p.Opacity)
	}
	if p.Transform != nil {
		w.attr("transform", transform(*p.Transform))
	}
	if p.ClipPath != "" {
		w.attr("clip-path", "url(#"+p.ClipPath+")")
	}
	w.attr("style", p.Style)
}

// transform writes m in SVG notation, using translate() when m has no
// linear part.
func transform(m gg.Matrix) string {
	var b []byte
	if m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1 {
		b = append(b, "translate("...)
		b = pathdata.AppendNum(b, m.C)
		b = append(b, ' ')
		b = pathdata.AppendNum(b, m.F)
		return string(append(b, ')'))
	}
	b = append(b, "matrix("...)
	for i, v := range [6]float64{m.A, m.D, m.B, m.E, m.C, m.F} {
		if i > 0 {
			b = append(b, ' ')
		}
		b = pathdata.AppendNum(b, v)
	}
	return string(append(b, ')'))
}
