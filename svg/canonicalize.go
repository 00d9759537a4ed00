package svg

import (
	"strconv"

	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/obb"
	"github.com/gogpu/xdlayout/pathdata"
	"github.com/gogpu/xdlayout/xd"
)

// Warner receives recoverable problems. *diag.Collector implements it.
type Warner interface {
	Warn(node diag.Node, reason diag.Reason, format string, args ...any)
}

// Canonicalizer converts design objects into canonical vector trees.
// It holds no per-call state and may be shared.
type Canonicalizer struct {
	// Gradients is the document's gradient table, keyed by ref.
	Gradients map[string]*xd.GradientResource
	// Warn receives cosmetic problems. Nil discards them.
	Warn Warner
}

// Result is the canonical form of one object in its own local frame.
type Result struct {
	// Bounds covers the painted area, stroke included.
	Bounds   gg.Rect
	Elements []Element
	Defs     []Element
}

// Document wraps the result in an SVG document whose view box is Bounds.
func (r *Result) Document() *Document {
	return &Document{
		Width:    r.Bounds.Width(),
		Height:   r.Bounds.Height(),
		ViewBox:  r.Bounds,
		Defs:     r.Defs,
		Elements: r.Elements,
	}
}

// Markup returns the result as a complete SVG document.
func (r *Result) Markup() string {
	return r.Document().Markup()
}

// Canonicalize converts obj, a shape or a group of shapes, ignoring obj's
// own transform. Repeated calls on the same object return identical output.
//
// Hidden and zero-opacity descendants are skipped, but obj itself is always
// drawn: its visibility is carried by the layout element, not the asset.
func (c *Canonicalizer) Canonicalize(obj *xd.Object) (*Result, error) {
	s := &state{c: c}
	el, bounds, err := s.object(obj, true)
	if err != nil {
		return nil, err
	}
	res := &Result{Bounds: bounds, Defs: s.defs}
	if el != nil {
		res.Elements = []Element{el}
	}
	return res, nil
}

// state carries the id counters of one Canonicalize call.
type state struct {
	c        *Canonicalizer
	defs     []Element
	gradient int
	clip     int
}

func (s *state) warn(obj *xd.Object, reason diag.Reason, format string, args ...any) {
	if s.c.Warn != nil {
		s.c.Warn.Warn(obj.Node(), reason, format, args...)
	}
}

func (s *state) object(obj *xd.Object, root bool) (Element, gg.Rect, error) {
	if !root && (!obj.IsVisible() || obj.Opacity() <= 0) {
		return nil, gg.Rect{}, nil
	}

	var (
		el     Element
		bounds gg.Rect
		err    error
	)
	switch obj.Type {
	case xd.TypeGroup, xd.TypeArtboard:
		el, bounds, err = s.group(obj)
	case xd.TypeShape:
		el, bounds, err = s.leaf(obj)
	case xd.TypeText:
		s.warn(obj, diag.ReasonUnsupported, "text inside a vector group is skipped")
		return nil, gg.Rect{}, nil
	default:
		return nil, gg.Rect{}, diag.Fatal(obj.Node(), diag.ReasonUnknownObject, "object type %q", obj.Type)
	}
	if err != nil || el == nil {
		return nil, gg.Rect{}, err
	}

	if o := obj.Opacity(); o > 0 && o < 1 {
		if g, ok := el.(*Group); ok {
			g.Opacity = Float(o)
		} else {
			el = &Group{Paint: Paint{Opacity: Float(o)}, Children: []Element{el}}
		}
	}
	if !root && !obj.Transform.IsIdentity() {
		m := obj.Matrix()
		el = &Group{Paint: Paint{Transform: &m}, Children: []Element{el}}
		bounds = obb.TransformRect(m, bounds)
	}
	return el, bounds, nil
}

func (s *state) group(obj *xd.Object) (Element, gg.Rect, error) {
	g := &Group{}
	var bounds gg.Rect
	first := true
	for _, child := range obj.Children() {
		el, b, err := s.object(child, false)
		if err != nil {
			return nil, gg.Rect{}, err
		}
		if el == nil {
			continue
		}
		g.Children = append(g.Children, el)
		if first {
			bounds, first = b, false
		} else {
			bounds = bounds.Union(b)
		}
	}

	if clip := obj.UX().ClipPathResources; clip != nil && len(clip.Children) > 0 {
		def := &ClipPathDef{}
		var clipBounds gg.Rect
		for _, child := range clip.Children {
			el, b, err := s.object(child, false)
			if err != nil {
				return nil, gg.Rect{}, err
			}
			if el == nil {
				continue
			}
			if len(def.Children) == 0 {
				clipBounds = b
			} else {
				clipBounds = clipBounds.Union(b)
			}
			def.Children = append(def.Children, el)
		}
		s.clip++
		def.ID = "clip-path-" + strconv.Itoa(s.clip)
		s.defs = append(s.defs, def)
		g.ClipPath = def.ID
		bounds = clipBounds
	}

	if obj.Style != nil {
		g.Style = blendStyle(obj.Style)
	}
	return g, bounds, nil
}

func blendStyle(st *xd.Style) string {
	var out string
	switch st.BlendMode {
	case "", "normal", "pass-through":
	default:
		out = "mix-blend-mode: " + st.BlendMode
	}
	if st.Isolation == "isolate" {
		if out != "" {
			out += "; "
		}
		out += "isolation: isolate"
	}
	return out
}

func (s *state) leaf(obj *xd.Object) (Element, gg.Rect, error) {
	geom, err := s.geometry(obj)
	if err != nil {
		return nil, gg.Rect{}, err
	}
	fill, err := s.fill(obj)
	if err != nil {
		return nil, gg.Rect{}, err
	}
	st, err := s.stroke(obj)
	if err != nil {
		return nil, gg.Rect{}, err
	}

	bounds := geom.bounds()
	if st == nil {
		return geom.element(fill), bounds, nil
	}

	half := st.width / 2
	var outline geometry
	switch st.align {
	case xd.AlignOutside:
		outline = geom.offset(half)
	case xd.AlignInside:
		outline = geom.offset(-half)
	}
	if outline == nil {
		if st.align != xd.AlignCenter {
			s.warn(obj, diag.ReasonUnsupported, "%s stroke on %s shape drawn centered", st.align, obj.Shape.Type)
		}
		p := fill
		mergeStroke(&p, &st.paint)
		return geom.element(p), grow(bounds, half), nil
	}

	// The body keeps the design geometry and fill; only the stroke moves
	// onto the outline offset by half the stroke width.
	body := geom.element(fill)
	line := st.paint
	line.Fill = "none"
	el := &Group{Children: []Element{body, outline.element(line)}}
	if st.align == xd.AlignOutside {
		bounds = grow(bounds, st.width)
	}
	return el, bounds, nil
}

func (s *state) geometry(obj *xd.Object) (geometry, error) {
	sh := obj.Shape
	if sh == nil {
		return nil, diag.Fatal(obj.Node(), diag.ReasonInvalidGeometry, "shape object without shape data")
	}
	switch sh.Type {
	case xd.ShapeRect:
		radii, uniform := normalizeRadius(sh.R, sh.Width, sh.Height)
		if uniform {
			return rectGeom{x: sh.X, y: sh.Y, w: sh.Width, h: sh.Height, rx: radii[0]}, nil
		}
		return roundRectGeom{x: sh.X, y: sh.Y, w: sh.Width, h: sh.Height, radii: radii}, nil
	case xd.ShapeCircle:
		return circleGeom{cx: sh.CX, cy: sh.CY, r: sh.R.Value()}, nil
	case xd.ShapeEllipse:
		return ellipseGeom{cx: sh.CX, cy: sh.CY, rx: sh.RX, ry: sh.RY}, nil
	case xd.ShapeLine:
		return lineGeom{x1: sh.X1, y1: sh.Y1, x2: sh.X2, y2: sh.Y2}, nil
	case xd.ShapePath, xd.ShapeCompound:
		if sh.Path == "" {
			return nil, diag.Fatal(obj.Node(), diag.ReasonInvalidGeometry, "%s shape without path data", sh.Type)
		}
		d, err := pathdata.Parse(sh.Path)
		if err != nil {
			return nil, diag.Fatal(obj.Node(), diag.ReasonInvalidGeometry, "%w", err)
		}
		return pathGeom{d: d, fillRule: fillRule(sh.Winding)}, nil
	case xd.ShapePolygon:
		if len(sh.Points) < 2 {
			return nil, diag.Fatal(obj.Node(), diag.ReasonInvalidGeometry, "polygon with %d points", len(sh.Points))
		}
		if sh.R.Set && sh.R.Value() != 0 {
			s.warn(obj, diag.ReasonUnsupported, "corner radius on polygon ignored")
		}
		b := pathdata.Build().M(sh.Points[0].X, sh.Points[0].Y)
		for _, p := range sh.Points[1:] {
			b.L(p.X, p.Y)
		}
		return pathGeom{d: b.Z().Path(), fillRule: fillRule(sh.Winding)}, nil
	}
	return nil, diag.Fatal(obj.Node(), diag.ReasonUnknownShape, "shape type %q", sh.Type)
}

func fillRule(winding string) string {
	if winding == "evenodd" {
		return "evenodd"
	}
	return ""
}

func (s *state) fill(obj *xd.Object) (Paint, error) {
	var p Paint
	var f *xd.Fill
	if obj.Style != nil {
		f = obj.Style.Fill
	}
	if f == nil {
		p.Fill = "none"
		return p, nil
	}
	switch f.Type {
	case "", xd.FillNone:
		p.Fill = "none"
	case xd.FillSolid:
		setColor(&p.Fill, &p.FillOpacity, f.Color)
	case xd.FillGradient:
		s.gradientFill(obj, f, &p)
	case xd.FillPattern:
		// Bitmaps are exported separately; vector output gets a placeholder.
		p.Fill = "#000000"
	default:
		return p, diag.Fatal(obj.Node(), diag.ReasonUnknownFill, "fill type %q", f.Type)
	}
	return p, nil
}

func setColor(dst *string, opacity **float64, c *xd.Color) {
	if c == nil {
		*dst = "#000000"
		return
	}
	*dst = c.Hex()
	if a := c.A(); a < 1 {
		*opacity = Float(a)
	}
}

func (s *state) gradientFill(obj *xd.Object, f *xd.Fill, p *Paint) {
	g := f.Gradient
	if g == nil {
		s.warn(obj, diag.ReasonUnknownGradient, "gradient fill without gradient data")
		p.Fill = "none"
		return
	}
	res := s.c.Gradients[g.Ref]
	if res == nil {
		s.warn(obj, diag.ReasonUnknownGradient, "gradient %q not found", g.Ref)
		p.Fill = "none"
		return
	}

	stops := make([]Stop, len(res.Stops))
	for i, st := range res.Stops {
		stops[i] = Stop{Offset: st.Offset, Color: st.Color.Hex(), Opacity: st.Color.A()}
	}
	units := ""
	if g.Units == "userSpaceOnUse" {
		units = g.Units
	}

	var def Element
	id := "gradient-" + strconv.Itoa(s.gradient+1)
	switch res.Type {
	case xd.GradientLinear:
		def = &LinearGradientDef{ID: id, Units: units, X1: g.X1, Y1: g.Y1, X2: g.X2, Y2: g.Y2, Stops: stops}
	case xd.GradientRadial:
		def = &RadialGradientDef{ID: id, Units: units, CX: g.CX, CY: g.CY, R: g.R, FX: g.FX, FY: g.FY, Stops: stops}
	default:
		s.warn(obj, diag.ReasonUnknownGradient, "gradient type %q drawn as solid color", res.Type)
		if len(res.Stops) == 0 {
			p.Fill = "none"
			return
		}
		setColor(&p.Fill, &p.FillOpacity, &res.Stops[0].Color)
		return
	}
	s.gradient++
	s.defs = append(s.defs, def)
	p.Fill = "url(#" + id + ")"
}

type strokeSpec struct {
	paint Paint
	width float64
	align string
}

func (s *state) stroke(obj *xd.Object) (*strokeSpec, error) {
	if obj.Style == nil || obj.Style.Stroke == nil {
		return nil, nil
	}
	st := obj.Style.Stroke
	switch st.Type {
	case "", xd.FillNone:
		return nil, nil
	case xd.FillSolid:
	default:
		return nil, diag.Fatal(obj.Node(), diag.ReasonUnknownStroke, "stroke type %q", st.Type)
	}

	align := st.Align
	switch align {
	case "":
		align = xd.AlignCenter
	case xd.AlignCenter, xd.AlignInside, xd.AlignOutside:
	default:
		return nil, diag.Fatal(obj.Node(), diag.ReasonUnknownStrokeAlign, "stroke align %q", st.Align)
	}
	if st.Width <= 0 {
		return nil, nil
	}

	spec := &strokeSpec{width: st.Width, align: align}
	p := &spec.paint
	setColor(&p.Stroke, &p.StrokeOpacity, st.Color)
	p.StrokeWidth = st.Width
	if st.Cap != "" && st.Cap != "butt" {
		p.LineCap = st.Cap
	}
	if st.Join != "" && st.Join != "miter" {
		p.LineJoin = st.Join
	}
	if st.MiterLimit != nil && *st.MiterLimit != 4 {
		p.MiterLimit = *st.MiterLimit
	}
	p.DashArray = st.Dash
	return spec, nil
}

func mergeStroke(dst, src *Paint) {
	dst.Stroke = src.Stroke
	dst.StrokeWidth = src.StrokeWidth
	dst.StrokeOpacity = src.StrokeOpacity
	dst.LineCap = src.LineCap
	dst.LineJoin = src.LineJoin
	dst.MiterLimit = src.MiterLimit
	dst.DashArray = src.DashArray
}
