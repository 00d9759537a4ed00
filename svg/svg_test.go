package svg

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/pathdata"
	"github.com/gogpu/xdlayout/xd"
)

func rectObject(w, h float64, r xd.Radius) *xd.Object {
	return &xd.Object{
		ID:   "r1",
		Name: "Box",
		Type: xd.TypeShape,
		Style: &xd.Style{
			Fill: &xd.Fill{Type: xd.FillSolid, Color: xd.RGB(255, 0, 0)},
		},
		Shape: &xd.Shape{Type: xd.ShapeRect, Width: w, Height: h, R: r},
	}
}

func withStroke(o *xd.Object, width float64, align string) *xd.Object {
	o.Style.Stroke = &xd.Stroke{Type: xd.FillSolid, Color: xd.RGB(0, 0, 0), Width: width, Align: align}
	return o
}

func canonicalize(t *testing.T, o *xd.Object) *Result {
	t.Helper()
	res, err := (&Canonicalizer{}).Canonicalize(o)
	if err != nil {
		t.Fatalf("Canonicalize() error: %v", err)
	}
	return res
}

func TestPlainRect(t *testing.T) {
	res := canonicalize(t, rectObject(100, 50, xd.Radius{}))
	got := Serialize(res.Elements[0])
	want := `<rect width="100" height="50" fill="#ff0000"/>`
	if got != want {
		t.Errorf("Serialize() = %s, want %s", got, want)
	}
	if res.Bounds.Width() != 100 || res.Bounds.Height() != 50 {
		t.Errorf("Bounds = %+v, want 100x50", res.Bounds)
	}
}

func TestHiddenRoot(t *testing.T) {
	hidden := rectObject(100, 50, xd.Radius{})
	hidden.Visible = new(bool)
	faded := rectObject(100, 50, xd.Radius{})
	faded.Style.Opacity = new(float64)

	tests := []struct {
		name string
		obj  *xd.Object
	}{
		{"hidden", hidden},
		{"zero opacity", faded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := canonicalize(t, tt.obj)
			if res.Bounds.Width() != 100 || res.Bounds.Height() != 50 {
				t.Errorf("Bounds = %+v, want 100x50", res.Bounds)
			}
			want := `<rect width="100" height="50" fill="#ff0000"/>`
			if len(res.Elements) != 1 || Serialize(res.Elements[0]) != want {
				t.Errorf("Elements = %v, want %s", res.Elements, want)
			}
		})
	}

	child := rectObject(10, 10, xd.Radius{})
	child.Visible = new(bool)
	child.Transform = xd.Translation(50, 50)
	g := &xd.Object{ID: "g", Type: xd.TypeGroup, Group: &xd.Group{Children: []*xd.Object{rectObject(20, 20, xd.Radius{}), child}}}
	res := canonicalize(t, g)
	if res.Bounds.Width() != 20 || res.Bounds.Height() != 20 {
		t.Errorf("group Bounds = %+v, want the hidden child left out", res.Bounds)
	}
}

func TestRadiusRounding(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		r    float64
		want string
	}{
		{"seam snap", 10, 20, 4.999, `rx="5"`},
		{"ceil", 100, 100, 4.9991, `rx="5"`},
		{"ceil fraction", 100, 100, 1.2341, `rx="1.235"`},
		{"clean", 40, 40, 8, `rx="8"`},
		{"clamped", 10, 30, 9, `rx="5"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(canonicalize(t, rectObject(tt.w, tt.h, xd.Scalar(tt.r))).Elements[0])
			if !strings.Contains(got, tt.want) {
				t.Errorf("Serialize() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUniformCornersCollapse(t *testing.T) {
	r := xd.PerCornerRadius(4, 4.00005, 4, 4)
	el := canonicalize(t, rectObject(20, 20, r)).Elements[0]
	if _, ok := el.(*Rect); !ok {
		t.Fatalf("element = %T, want *Rect", el)
	}
}

func TestIdempotent(t *testing.T) {
	o := withStroke(rectObject(33.3333, 20, xd.PerCornerRadius(1, 2, 3, 4)), 1.5, xd.AlignOutside)
	o.Style.Fill = &xd.Fill{Type: xd.FillGradient, Gradient: &xd.GradientFill{Ref: "g", X2: 1}}
	c := &Canonicalizer{Gradients: map[string]*xd.GradientResource{
		"g": {Type: xd.GradientLinear, Stops: []xd.GradientStop{
			{Offset: 0, Color: *xd.RGB(0, 0, 0)},
			{Offset: 1, Color: *xd.RGB(255, 255, 255)},
		}},
	}}
	a, err := c.Canonicalize(o)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Canonicalize(o)
	if err != nil {
		t.Fatal(err)
	}
	if a.Markup() != b.Markup() {
		t.Errorf("non-deterministic output:\n%s\n%s", a.Markup(), b.Markup())
	}
	if !strings.Contains(a.Markup(), `<linearGradient id="gradient-1"`) {
		t.Errorf("Markup() = %s, want gradient-1 definition", a.Markup())
	}
}

func TestStrokeOutside(t *testing.T) {
	res := canonicalize(t, withStroke(rectObject(40, 40, xd.Scalar(8)), 4, xd.AlignOutside))
	g, ok := res.Elements[0].(*Group)
	if !ok || len(g.Children) != 2 {
		t.Fatalf("element = %s, want group of two", Serialize(res.Elements[0]))
	}

	body := g.Children[0].(*Rect)
	if body.Width != 40 || body.X != 0 || body.Stroke != "" {
		t.Errorf("body = %s, want 40x40 fill only", Serialize(body))
	}
	outline := g.Children[1].(*Rect)
	if outline.Width != 44 || outline.Height != 44 || outline.X != -2 || outline.Y != -2 {
		t.Errorf("outline = %s, want 44x44 at (-2,-2)", Serialize(outline))
	}
	if outline.Fill != "none" || outline.StrokeWidth != 4 {
		t.Errorf("outline paint = %s, want stroke only", Serialize(outline))
	}

	want := `<g><rect width="40" height="40" rx="8" fill="#ff0000"/>` +
		`<rect x="-2" y="-2" width="44" height="44" rx="10" fill="none" stroke="#000000" stroke-width="4"/></g>`
	if got := Serialize(g); got != want {
		t.Errorf("Serialize() = %s, want %s", got, want)
	}
	if res.Bounds.Min.X != -4 || res.Bounds.Width() != 48 {
		t.Errorf("Bounds = %+v, want 48x48 at -4", res.Bounds)
	}
}

func TestStrokeInside(t *testing.T) {
	res := canonicalize(t, withStroke(rectObject(40, 30, xd.Scalar(8)), 4, xd.AlignInside))
	outline := res.Elements[0].(*Group).Children[1].(*Rect)
	if outline.Width != 36 || outline.Height != 26 || outline.X != 2 || outline.Y != 2 || outline.RX != 6 {
		t.Errorf("outline = %s, want 36x26 at (2,2) rx 6", Serialize(outline))
	}
	if res.Bounds.Width() != 40 || res.Bounds.Height() != 30 {
		t.Errorf("Bounds = %+v, want 40x30", res.Bounds)
	}
}

func TestStrokePerCorner(t *testing.T) {
	res := canonicalize(t, withStroke(rectObject(40, 40, xd.PerCornerRadius(8, 8, 0, 0)), 4, xd.AlignOutside))
	g := res.Elements[0].(*Group)
	body, ok := g.Children[0].(*Path)
	if !ok {
		t.Fatalf("body = %T, want *Path", g.Children[0])
	}
	if got, want := body.D.String(), "M8,0H32a8,8 0 0 1 8,8V40H0V8a8,8 0 0 1 8,-8Z"; got != want {
		t.Errorf("body d = %q, want %q", got, want)
	}
	outline := g.Children[1].(*Path)
	b := pathdata.Bounds(outline.D)
	if !near(b.Width(), 44) || !near(b.Min.X, -2) || !near(b.Min.Y, -2) {
		t.Errorf("outline bounds = %+v, want 44x44 at (-2,-2)", b)
	}
	if !strings.HasPrefix(outline.D.String(), "M8,-2H32a10,10 0 0 1 10,10") {
		t.Errorf("outline d = %q", outline.D.String())
	}
}

func TestStrokeCircleAndCenter(t *testing.T) {
	circle := &xd.Object{
		ID: "c", Type: xd.TypeShape,
		Style: &xd.Style{Fill: &xd.Fill{Type: xd.FillNone}},
		Shape: &xd.Shape{Type: xd.ShapeCircle, CX: 10, CY: 10, R: xd.Scalar(10)},
	}
	withStroke(circle, 2, xd.AlignOutside)
	g := canonicalize(t, circle).Elements[0].(*Group)
	if c := g.Children[1].(*Circle); c.R != 11 {
		t.Errorf("outline r = %v, want 11", c.R)
	}

	centered := canonicalize(t, withStroke(rectObject(10, 10, xd.Radius{}), 2, ""))
	want := `<rect width="10" height="10" fill="#ff0000" stroke="#000000" stroke-width="2"/>`
	if got := Serialize(centered.Elements[0]); got != want {
		t.Errorf("Serialize() = %s, want %s", got, want)
	}
	if centered.Bounds.Min.X != -1 || centered.Bounds.Width() != 12 {
		t.Errorf("Bounds = %+v, want 12 wide at -1", centered.Bounds)
	}
}

func TestFatalKinds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *xd.Object)
		reason diag.Reason
	}{
		{"shape", func(o *xd.Object) { o.Shape.Type = "star" }, diag.ReasonUnknownShape},
		{"fill", func(o *xd.Object) { o.Style.Fill.Type = "noise" }, diag.ReasonUnknownFill},
		{"stroke", func(o *xd.Object) { withStroke(o, 1, "").Style.Stroke.Type = "dotted" }, diag.ReasonUnknownStroke},
		{"align", func(o *xd.Object) { withStroke(o, 1, "middle") }, diag.ReasonUnknownStrokeAlign},
		{"object", func(o *xd.Object) { o.Type = "widget" }, diag.ReasonUnknownObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := rectObject(10, 10, xd.Radius{})
			tt.mutate(o)
			_, err := (&Canonicalizer{}).Canonicalize(o)
			if !diag.IsReason(err, tt.reason) {
				t.Fatalf("Canonicalize() error = %v, want %s", err, tt.reason)
			}
			if !strings.Contains(err.Error(), `"Box"`) {
				t.Errorf("error %q does not name the object", err)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	warn := diag.NewCollector(nil)
	c := &Canonicalizer{Warn: warn, Gradients: map[string]*xd.GradientResource{
		"odd": {Type: "conic", Stops: []xd.GradientStop{{Color: *xd.RGB(0, 255, 0)}}},
	}}

	o := rectObject(10, 10, xd.Radius{})
	o.Style.Fill = &xd.Fill{Type: xd.FillGradient, Gradient: &xd.GradientFill{Ref: "odd"}}
	res, err := c.Canonicalize(o)
	if err != nil {
		t.Fatal(err)
	}
	if got := Serialize(res.Elements[0]); !strings.Contains(got, `fill="#00ff00"`) {
		t.Errorf("Serialize() = %s, want first stop color", got)
	}

	poly := &xd.Object{
		ID: "p", Type: xd.TypeShape,
		Style: &xd.Style{Stroke: &xd.Stroke{Type: xd.FillSolid, Width: 2, Align: xd.AlignInside}},
		Shape: &xd.Shape{Type: xd.ShapePolygon, R: xd.Scalar(3), Points: []xd.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}},
	}
	res, err = c.Canonicalize(poly)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Serialize(res.Elements[0]), `<path d="M0,0L10,0L5,8Z" fill="none" stroke="#000000" stroke-width="2"/>`; got != want {
		t.Errorf("Serialize() = %s, want %s", got, want)
	}
	if n := len(warn.Warnings()); n != 3 {
		t.Errorf("warnings = %d, want 3: %v", n, warn.Warnings())
	}
}

func TestMaskGroup(t *testing.T) {
	clip := &xd.Object{ID: "clip", Type: xd.TypeShape, Shape: &xd.Shape{Type: xd.ShapeEllipse, CX: 5, CY: 5, RX: 5, RY: 5}}
	group := &xd.Object{
		ID: "g", Type: xd.TypeGroup,
		Style: &xd.Style{BlendMode: "multiply"},
		Meta:  &xd.Meta{UX: &xd.UX{ClipPathResources: &xd.ClipPathResources{Type: "clipPath", Children: []*xd.Object{clip}}}},
		Group: &xd.Group{Children: []*xd.Object{
			{ID: "big", Type: xd.TypeShape, Transform: xd.Translation(-5, 0),
				Style: &xd.Style{Fill: &xd.Fill{Type: xd.FillSolid, Color: xd.RGB(0, 0, 255)}},
				Shape: &xd.Shape{Type: xd.ShapeRect, Width: 40, Height: 40}},
		}},
	}
	res := canonicalize(t, group)
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">` +
		`<defs><clipPath id="clip-path-1"><ellipse cx="5" cy="5" rx="5" ry="5" fill="none"/></clipPath></defs>` +
		`<g clip-path="url(#clip-path-1)" style="mix-blend-mode: multiply">` +
		`<g transform="translate(-5 0)"><rect width="40" height="40" fill="#0000ff"/></g></g></svg>`
	if got := res.Markup(); got != want {
		t.Errorf("Markup() =\n%s\nwant\n%s", got, want)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
