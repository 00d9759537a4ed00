package convert

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/measure"
	"github.com/gogpu/xdlayout/svg"
	"github.com/gogpu/xdlayout/xd"
)

// resourcePrefix is where bitmap pattern fills live in the archive.
const resourcePrefix = "resources/"

type scrollbarParser struct{}

func (scrollbarParser) Name() string { return "scrollbar" }

func (scrollbarParser) Match(_ *Context, n *Node) bool {
	return n.Object.HasParam(xd.ParamScrollbar) || n.Object.HasSuffix("scrollbar")
}

func (scrollbarParser) Rect(c *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	if n.Object.Type != xd.TypeShape {
		return union, nil
	}
	res, err := c.canonical(n)
	if err != nil {
		return gg.Rect{}, err
	}
	return res.Bounds, nil
}

func (scrollbarParser) Render(c *Context, n *Node) (Output, error) {
	dir := "vertical"
	if n.box.Width > n.box.Height {
		dir = "horizontal"
	}
	out := Output{Components: []layout.Component{layout.Scrollbar{Direction: dir}}}
	if n.Object.Type == xd.TypeShape {
		img, err := c.imageOutput(n)
		if err != nil {
			return Output{}, err
		}
		out.Components = append(out.Components, img.Components...)
		out.Assets = img.Assets
		out.SkipChildren = true
	}
	return out, nil
}

type shapeParser struct{}

func (shapeParser) Name() string { return "shape" }

func (shapeParser) Match(_ *Context, n *Node) bool {
	return n.Object.Type == xd.TypeShape
}

func (shapeParser) Rect(c *Context, n *Node, _ gg.Rect) (gg.Rect, error) {
	res, err := c.canonical(n)
	if err != nil {
		return gg.Rect{}, err
	}
	return res.Bounds, nil
}

func (shapeParser) Render(c *Context, n *Node) (Output, error) {
	return c.imageOutput(n)
}

// imageOutput returns an Image component drawing n. Nodes whose drawing
// covers no area get no image.
func (c *Context) imageOutput(n *Node) (Output, error) {
	a, err := c.imageAsset(n)
	if err != nil || a == nil {
		return Output{SkipChildren: true}, err
	}
	return Output{
		Components:   []layout.Component{layout.Image{Sprite: a.FileName}},
		Assets:       []*layout.Asset{a},
		SkipChildren: true,
	}, nil
}

// imageAsset returns the asset drawing n, or nil when the drawing is
// empty. Bitmap pattern fills pass the archive resource through;
// everything else becomes a vector asset.
func (c *Context) imageAsset(n *Node) (*layout.Asset, error) {
	obj := n.Object
	res, err := c.canonical(n)
	if err != nil {
		return nil, err
	}
	if res.Bounds.Width() <= 0 || res.Bounds.Height() <= 0 {
		c.warn(n, diag.ReasonInvalidGeometry, "drawing is %vx%v, no image exported", res.Bounds.Width(), res.Bounds.Height())
		return nil, nil
	}
	if uid := patternUID(obj); uid != "" {
		resource := resourcePrefix + uid
		if c.Archive != nil {
			if _, err := c.Archive.ReadBytes(resource); err == nil {
				return c.assets.bitmap(obj.SimpleName(), resource, res.Bounds.Width(), res.Bounds.Height()), nil
			}
		}
		c.warn(n, diag.ReasonMissingResource, "bitmap %s not found, drawing placeholder", resource)
	}
	var border *layout.Border
	if obj.HasParam(xd.ParamSlice) {
		border = c.sliceBorder(n, res)
	}
	return c.assets.vector(obj.SimpleName(), res, border), nil
}

func patternUID(obj *xd.Object) string {
	if obj.Style == nil || obj.Style.Fill == nil || obj.Style.Fill.Type != xd.FillPattern {
		return ""
	}
	p := obj.Style.Fill.Pattern
	if p == nil || p.Meta == nil {
		return ""
	}
	return p.Meta.UX.UID
}

// sliceBorder returns a nine-slice border that keeps the corners of a
// rounded rect intact, stroke included.
func (c *Context) sliceBorder(n *Node, res *svg.Result) *layout.Border {
	sh := n.Object.Shape
	if sh == nil || sh.Type != xd.ShapeRect || !sh.R.Set {
		c.warn(n, diag.ReasonUnsupported, "nine-slice needs a rounded rect")
		return nil
	}
	r := 0.0
	for _, v := range sh.R.Corners {
		r = math.Max(r, v)
	}
	r = math.Min(r, math.Min(sh.Width, sh.Height)/2)
	r += math.Max(0, (res.Bounds.Width()-sh.Width)/2)
	v := math.Ceil(r * c.Scale)
	return &layout.Border{Top: v, Right: v, Bottom: v, Left: v}
}

type textParser struct{}

func (textParser) Name() string { return "text" }

func (textParser) Match(_ *Context, n *Node) bool {
	return n.Object.Type == xd.TypeText
}

func (textParser) Rect(c *Context, n *Node, _ gg.Rect) (gg.Rect, error) {
	obj := n.Object
	t := obj.Text
	if t == nil {
		return gg.Rect{}, diag.Fatal(obj.Node(), diag.ReasonUnknownObject, "text object has no text payload")
	}
	f := fontOf(obj)
	lh := lineHeight(obj)
	height := func(m measure.Metrics) float64 {
		if lh > 0 {
			return float64(m.Lines) * lh
		}
		return m.Height
	}

	switch frameType(t) {
	case xd.FrameArea, xd.FrameFixed:
		return gg.Rect{Max: gg.Pt(t.Frame.Width, t.Frame.Height)}, nil
	case xd.FrameAutoHeight:
		m := c.measureText(n, f, t.RawText, t.Frame.Width)
		return gg.Rect{Max: gg.Pt(t.Frame.Width, height(m))}, nil
	}
	m := c.measureText(n, f, t.RawText, 0)
	x, y := 0.0, m.Ascent
	if len(t.Paragraphs) > 0 && len(t.Paragraphs[0].Lines) > 0 && len(t.Paragraphs[0].Lines[0]) > 0 {
		run := t.Paragraphs[0].Lines[0][0]
		x, y = run.X, run.Y
	}
	top := y - m.Ascent
	return gg.Rect{Min: gg.Pt(x, top), Max: gg.Pt(x+m.Width, top+height(m))}, nil
}

func (textParser) Render(_ *Context, n *Node) (Output, error) {
	obj := n.Object
	f := fontOf(obj)
	comp := layout.Text{
		Text:       obj.Text.RawText,
		Font:       f.PostscriptName,
		Size:       f.Size,
		Align:      "left",
		LineHeight: lineHeight(obj),
	}
	switch frameType(obj.Text) {
	case xd.FrameArea, xd.FrameFixed, xd.FrameAutoHeight:
		comp.Wrap = true
	}
	if st := obj.Style; st != nil {
		if st.Fill != nil && st.Fill.Type == xd.FillSolid && st.Fill.Color != nil {
			comp.Color = st.Fill.Color.Hex()
		}
		if ta := st.TextAttributes; ta != nil {
			if ta.ParagraphAlign != "" {
				comp.Align = ta.ParagraphAlign
			}
			comp.LetterSpacing = ta.LetterSpacing
		}
	}
	return Output{Components: []layout.Component{comp}, SkipChildren: true}, nil
}

func frameType(t *xd.Text) string {
	if t.Frame == nil || t.Frame.Type == "" {
		return xd.FramePositioned
	}
	return t.Frame.Type
}

func fontOf(obj *xd.Object) measure.Font {
	if obj.Style == nil || obj.Style.Font == nil {
		return measure.Font{Size: 12}
	}
	f := obj.Style.Font
	return measure.Font{PostscriptName: f.PostscriptName, Family: f.Family, Style: f.Style, Size: f.Size}
}

func lineHeight(obj *xd.Object) float64 {
	if obj.Style == nil || obj.Style.TextAttributes == nil || obj.Style.TextAttributes.LineHeight == nil {
		return 0
	}
	return *obj.Style.TextAttributes.LineHeight
}

// measureText measures with the configured measurer, falling back to
// built-in metrics when none is set or the font is missing.
func (c *Context) measureText(n *Node, f measure.Font, s string, wrap float64) measure.Metrics {
	if c.Measurer != nil {
		m, err := c.Measurer.Measure(f, s, wrap)
		if err == nil {
			return m
		}
		c.warn(n, diag.ReasonMissingResource, "%v, using fallback metrics", err)
	}
	return measure.Fallback(f, s, wrap)
}
