package convert

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/obb"
	"github.com/gogpu/xdlayout/svg"
	"github.com/gogpu/xdlayout/xd"
)

// withAlpha appends an Alpha component for translucent groups.
func withAlpha(n *Node, comps ...layout.Component) []layout.Component {
	if a := n.Object.Opacity(); a < 1 {
		comps = append(comps, layout.Alpha{Alpha: a})
	}
	return comps
}

func unionRect(_ *Context, _ *Node, union gg.Rect) (gg.Rect, error) {
	return union, nil
}

type buttonParser struct{}

func (buttonParser) Name() string { return "button" }

func (buttonParser) Match(_ *Context, n *Node) bool {
	return n.Object.HasParam(xd.ParamButton) || n.Object.HasSuffix("button")
}

func (buttonParser) Rect(c *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	return unionRect(c, n, union)
}

func (buttonParser) Render(_ *Context, n *Node) (Output, error) {
	return Output{Components: withAlpha(n, layout.Button{})}, nil
}

type inputFieldParser struct{}

func (inputFieldParser) Name() string { return "inputfield" }

func (inputFieldParser) Match(_ *Context, n *Node) bool {
	return n.Object.HasParam(xd.ParamInputField)
}

func (inputFieldParser) Rect(c *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	return unionRect(c, n, union)
}

func (inputFieldParser) Render(_ *Context, n *Node) (Output, error) {
	return Output{Components: withAlpha(n, layout.InputField{})}, nil
}

type toggleParser struct{}

func (toggleParser) Name() string { return "toggle" }

func (toggleParser) Match(_ *Context, n *Node) bool {
	return n.Object.HasParam(xd.ParamToggle)
}

func (toggleParser) Rect(c *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	return unionRect(c, n, union)
}

func (toggleParser) Render(_ *Context, n *Node) (Output, error) {
	return Output{Components: withAlpha(n, layout.Toggle{})}, nil
}

type alphaParser struct{}

func (alphaParser) Name() string { return "alpha" }

func (alphaParser) Match(_ *Context, n *Node) bool {
	return n.Object.Opacity() < 1
}

func (alphaParser) Rect(c *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	return unionRect(c, n, union)
}

func (alphaParser) Render(_ *Context, n *Node) (Output, error) {
	return Output{Components: withAlpha(n)}, nil
}

// svgParser flattens a whole group into one vector image.
type svgParser struct{}

func (svgParser) Name() string { return "svg" }

func (svgParser) Match(_ *Context, n *Node) bool {
	return n.Object.HasParam(xd.ParamSVG) || n.Object.HasParam(xd.ParamImage)
}

func (svgParser) Rect(c *Context, n *Node, _ gg.Rect) (gg.Rect, error) {
	res, err := c.canonical(n)
	if err != nil {
		return gg.Rect{}, err
	}
	return res.Bounds, nil
}

func (svgParser) Render(c *Context, n *Node) (Output, error) {
	return c.imageOutput(n)
}

// maskParser clips a group to the shape in its clip path resources.
type maskParser struct{}

func (maskParser) Name() string { return "mask" }

func (maskParser) Match(_ *Context, n *Node) bool {
	cp := n.Object.UX().ClipPathResources
	return cp != nil && len(cp.Children) > 0
}

func (maskParser) Rect(c *Context, n *Node, _ gg.Rect) (gg.Rect, error) {
	res, err := c.maskShape(n)
	if err != nil {
		return gg.Rect{}, err
	}
	return res.Bounds, nil
}

func (maskParser) Render(c *Context, n *Node) (Output, error) {
	res, err := c.maskShape(n)
	if err != nil {
		return Output{}, err
	}
	a := c.assets.vector(n.Object.SimpleName()+"_mask", res, nil)
	return Output{
		Components: withAlpha(n, layout.Mask{}, layout.Image{Sprite: a.FileName}),
		Assets:     []*layout.Asset{a},
	}, nil
}

// maskShape canonicalizes the clip shapes of n in n's local space.
func (c *Context) maskShape(n *Node) (*svg.Result, error) {
	key := n.Key + "#mask"
	if res, ok := c.shapes[key]; ok {
		return res, nil
	}
	obj := n.Object
	clip := &xd.Object{
		ID:    obj.ID + "-mask",
		GUID:  obj.GUID,
		Name:  obj.Name,
		Type:  xd.TypeGroup,
		Group: &xd.Group{Children: obj.UX().ClipPathResources.Children},
	}
	res, err := c.canon.Canonicalize(clip)
	if err != nil {
		return nil, err
	}
	if len(res.Elements) == 0 {
		return nil, diag.Fatal(obj.Node(), diag.ReasonInvalidGeometry, "mask has no visible clip shape")
	}
	c.shapes[key] = res
	return res, nil
}

// repeatGridParser lays out the cells of a standalone repeat grid.
type repeatGridParser struct{}

func (repeatGridParser) Name() string { return "repeatgrid" }

func (repeatGridParser) Match(_ *Context, n *Node) bool {
	return n.Object.UX().RepeatGrid != nil
}

func (repeatGridParser) Rect(_ *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	g := n.Object.UX().RepeatGrid
	if g.Width <= 0 || g.Height <= 0 {
		return union, nil
	}
	return gg.Rect{Max: gg.Pt(g.Width, g.Height)}, nil
}

func (repeatGridParser) Render(_ *Context, n *Node) (Output, error) {
	g := n.Object.UX().RepeatGrid
	var comp layout.Component
	switch {
	case g.Columns > 1 && g.Rows > 1:
		comp = layout.GridLayout{SpacingX: g.PaddingX, SpacingY: g.PaddingY}
	case g.Columns > 1:
		comp = layout.HorizontalLayout{Spacing: g.PaddingX}
	default:
		comp = layout.VerticalLayout{Spacing: g.PaddingY}
	}
	return Output{Components: withAlpha(n, comp)}, nil
}

// scrollParser turns a scroll group into a viewport, and into a
// virtualized list when it was built from a repeat grid.
type scrollParser struct{}

func (scrollParser) Name() string { return "scroll" }

func (scrollParser) Match(_ *Context, n *Node) bool {
	return n.Object.UX().ScrollingType != ""
}

func (scrollParser) Rect(_ *Context, n *Node, union gg.Rect) (gg.Rect, error) {
	ux := n.Object.UX()
	if n.List != nil && n.List.Multi {
		n.List.Special = specialSpacings(n.List, ux.ScrollingType == xd.ScrollHorizontal)
	}
	if ux.OffsetX == nil && ux.OffsetY == nil && ux.ViewportWidth == nil && ux.ViewportHeight == nil {
		return union, nil
	}
	x, y := deref(ux.OffsetX), deref(ux.OffsetY)
	w, h := union.Width(), union.Height()
	if ux.ViewportWidth != nil {
		w = *ux.ViewportWidth
	}
	if ux.ViewportHeight != nil {
		h = *ux.ViewportHeight
	}
	return gg.Rect{Min: gg.Pt(x, y), Max: gg.Pt(x+w, y+h)}, nil
}

func (scrollParser) Render(c *Context, n *Node) (Output, error) {
	typ := n.Object.UX().ScrollingType
	horizontal := typ == xd.ScrollHorizontal
	comps := []layout.Component{layout.Scroll{
		Vertical:   typ == xd.ScrollVertical || typ == xd.ScrollPanning,
		Horizontal: horizontal || typ == xd.ScrollPanning,
	}}
	if l := n.List; l != nil {
		lead, trail := c.listPadding(n, horizontal)
		if horizontal {
			comps = append(comps, layout.HorizontalList{
				Spacing:         l.Grid.PaddingX,
				PaddingLeft:     lead,
				PaddingRight:    trail,
				SpecialSpacings: l.Special,
			})
		} else {
			comps = append(comps, layout.VerticalList{
				Spacing:         l.Grid.PaddingY,
				PaddingTop:      lead,
				PaddingBottom:   trail,
				SpecialSpacings: l.Special,
			})
		}
	}
	return Output{Components: withAlpha(n, comps...)}, nil
}

// listPadding returns the space before the first item and the size of the
// spacer along the scroll axis.
func (c *Context) listPadding(n *Node, horizontal bool) (lead, trail float64) {
	for i, it := range n.List.Items {
		r := it.box.Bounds()
		v := r.Min.Y
		if horizontal {
			v = r.Min.X
		}
		if i == 0 || v < lead {
			lead = v
		}
	}
	lead = max(0, lead)
	if n.Spacer == nil {
		return lead, 0
	}
	res, err := c.canon.Canonicalize(n.Spacer)
	if err != nil {
		c.warn(n, diag.ReasonInvalidGeometry, "spacer ignored: %v", err)
		return lead, 0
	}
	r := obb.TransformRect(n.Spacer.Matrix(), res.Bounds)
	if horizontal {
		return lead, r.Width()
	}
	return lead, r.Height()
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
