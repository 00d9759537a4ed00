// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster draws canonical vector documents with the gg software
// renderer and encodes the result as PNG.
//
// Only the closed element set produced by the svg package is supported:
// shapes, groups with opacity and transforms, clip paths, and linear or
// radial gradients referenced from the document defs.
package raster

import (
	"bytes"
	"image"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/xdlayout/svg"
)

// Errors returned by Rasterize.
var (
	ErrEmpty       = errors.Base("raster: empty view box or target size")
	ErrUnsupported = errors.Base("raster: unsupported element")
)

// Rasterizer renders documents. The zero value is ready to use.
type Rasterizer struct {
	// Background fills the canvas before drawing. Zero is transparent.
	Background gg.RGBA
}

// New returns a Rasterizer with a transparent background.
func New() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize draws doc scaled to width x height pixels and returns PNG bytes.
func (r *Rasterizer) Rasterize(doc *svg.Document, width, height int) ([]byte, error) {
	dc, err := r.draw(doc, width, height)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Errorf("raster: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// Image draws doc and returns the pixels.
func (r *Rasterizer) Image(doc *svg.Document, width, height int) (image.Image, error) {
	dc, err := r.draw(doc, width, height)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

func (r *Rasterizer) draw(doc *svg.Document, width, height int) (*gg.Context, error) {
	vb := doc.ViewBox
	if width <= 0 || height <= 0 || vb.Width() <= 0 || vb.Height() <= 0 {
		return nil, errors.Errorf("%w: %vx%v into %dx%d", ErrEmpty, vb.Width(), vb.Height(), width, height)
	}
	dc := gg.NewContext(width, height)
	if r.Background.A > 0 {
		dc.ClearWithColor(r.Background)
	}
	dc.Scale(float64(width)/vb.Width(), float64(height)/vb.Height())
	dc.Translate(-vb.Min.X, -vb.Min.Y)

	d := &drawer{dc: dc, defs: make(map[string]svg.Element, len(doc.Defs))}
	for _, def := range doc.Defs {
		if id := defID(def); id != "" {
			d.defs[id] = def
		}
	}
	for _, e := range doc.Elements {
		if err := d.element(e); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

func defID(e svg.Element) string {
	switch e := e.(type) {
	case *svg.ClipPathDef:
		return e.ID
	case *svg.LinearGradientDef:
		return e.ID
	case *svg.RadialGradientDef:
		return e.ID
	}
	return ""
}

// drawer walks one document.
type drawer struct {
	dc   *gg.Context
	defs map[string]svg.Element
}

// begin applies the state a Paint opens: transform, clip and group
// opacity. end undoes it.
func (d *drawer) begin(p *svg.Paint) error {
	d.dc.Push()
	if p.Transform != nil {
		d.dc.Transform(*p.Transform)
	}
	if p.ClipPath != "" {
		clip, ok := d.defs[p.ClipPath].(*svg.ClipPathDef)
		if !ok {
			return errors.Errorf("raster: clip path %q not defined", p.ClipPath)
		}
		for _, c := range clip.Children {
			if err := d.outline(c); err != nil {
				return err
			}
		}
		d.dc.Clip()
	}
	if p.Opacity != nil && *p.Opacity < 1 {
		d.dc.PushLayer(gg.BlendNormal, *p.Opacity)
	}
	return nil
}

func (d *drawer) end(p *svg.Paint) {
	if p.Opacity != nil && *p.Opacity < 1 {
		d.dc.PopLayer()
	}
	d.dc.Pop()
}

func (d *drawer) element(e svg.Element) error {
	p := paintOf(e)
	if p == nil {
		return errors.Errorf("%w: %T", ErrUnsupported, e)
	}
	if err := d.begin(p); err != nil {
		return err
	}
	defer d.end(p)

	if g, ok := e.(*svg.Group); ok {
		for _, c := range g.Children {
			if err := d.element(c); err != nil {
				return err
			}
		}
		return nil
	}

	if _, line := e.(*svg.Line); !line && p.Fill != "none" {
		if err := d.outline(e); err != nil {
			return err
		}
		d.setFillRule(p.FillRule)
		fill := p.Fill
		if fill == "" {
			fill = "#000000"
		}
		brush, err := d.brush(e, fill, p.FillOpacity)
		if err != nil {
			return err
		}
		d.dc.SetFillBrush(brush)
		if err := d.dc.Fill(); err != nil {
			return errors.Errorf("raster: fill: %w", err)
		}
	}
	if p.Stroke != "" && p.Stroke != "none" && p.StrokeWidth > 0 {
		if err := d.outline(e); err != nil {
			return err
		}
		brush, err := d.brush(e, p.Stroke, p.StrokeOpacity)
		if err != nil {
			return err
		}
		d.setStroke(p)
		d.dc.SetStrokeBrush(brush)
		if err := d.dc.Stroke(); err != nil {
			return errors.Errorf("raster: stroke: %w", err)
		}
	}
	return nil
}

func paintOf(e svg.Element) *svg.Paint {
	switch e := e.(type) {
	case *svg.Path:
		return &e.Paint
	case *svg.Rect:
		return &e.Paint
	case *svg.Circle:
		return &e.Paint
	case *svg.Ellipse:
		return &e.Paint
	case *svg.Line:
		return &e.Paint
	case *svg.Group:
		return &e.Paint
	}
	return nil
}

func (d *drawer) setFillRule(rule string) {
	if rule == "evenodd" {
		d.dc.SetFillRule(gg.FillRuleEvenOdd)
		return
	}
	d.dc.SetFillRule(gg.FillRuleNonZero)
}

func (d *drawer) setStroke(p *svg.Paint) {
	d.dc.SetLineWidth(p.StrokeWidth)
	switch p.LineCap {
	case "round":
		d.dc.SetLineCap(gg.LineCapRound)
	case "square":
		d.dc.SetLineCap(gg.LineCapSquare)
	default:
		d.dc.SetLineCap(gg.LineCapButt)
	}
	switch p.LineJoin {
	case "round":
		d.dc.SetLineJoin(gg.LineJoinRound)
	case "bevel":
		d.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		d.dc.SetLineJoin(gg.LineJoinMiter)
	}
	if p.MiterLimit > 0 {
		d.dc.SetMiterLimit(p.MiterLimit)
	} else {
		d.dc.SetMiterLimit(4)
	}
	if len(p.DashArray) > 0 {
		d.dc.SetDash(p.DashArray...)
	} else {
		d.dc.ClearDash()
	}
}

// brush resolves a paint value: a hex color or a gradient reference.
func (d *drawer) brush(e svg.Element, value string, opacity *float64) (gg.Brush, error) {
	alpha := 1.0
	if opacity != nil {
		alpha = *opacity
	}
	id, ok := strings.CutPrefix(value, "url(#")
	if !ok {
		c := gg.Hex(value)
		c.A *= alpha
		return gg.Solid(c), nil
	}
	id = strings.TrimSuffix(id, ")")
	box := bounds(e)
	switch g := d.defs[id].(type) {
	case *svg.LinearGradientDef:
		x1, y1 := d.gradientPoint(g.Units, box, g.X1, g.Y1)
		x2, y2 := d.gradientPoint(g.Units, box, g.X2, g.Y2)
		b := gg.NewLinearGradientBrush(x1, y1, x2, y2)
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, stopColor(s, alpha))
		}
		return b, nil
	case *svg.RadialGradientDef:
		cx, cy := d.gradientPoint(g.Units, box, g.CX, g.CY)
		r := d.gradientLength(g.Units, box, g.R)
		b := gg.NewRadialGradientBrush(cx, cy, 0, r)
		if g.FX != nil && g.FY != nil {
			b.SetFocus(d.gradientPoint(g.Units, box, *g.FX, *g.FY))
		}
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, stopColor(s, alpha))
		}
		return b, nil
	}
	return nil, errors.Errorf("raster: paint server %q not defined", id)
}

func stopColor(s svg.Stop, alpha float64) gg.RGBA {
	c := gg.Hex(s.Color)
	c.A *= s.Opacity * alpha
	return c
}

// gradientPoint maps a gradient coordinate to device space. Brushes are
// sampled in device pixels.
func (d *drawer) gradientPoint(units string, box gg.Rect, x, y float64) (float64, float64) {
	if units != "userSpaceOnUse" {
		x = box.Min.X + x*box.Width()
		y = box.Min.Y + y*box.Height()
	}
	return d.dc.TransformPoint(x, y)
}

func (d *drawer) gradientLength(units string, box gg.Rect, r float64) float64 {
	if units != "userSpaceOnUse" {
		r *= math.Hypot(box.Width(), box.Height()) / math.Sqrt2
	}
	m := d.dc.GetTransform()
	return r * math.Sqrt(math.Abs(m.A*m.E-m.B*m.D))
}
