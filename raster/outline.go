// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"github.com/gogpu/gg"
	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/xdlayout/pathdata"
	"github.com/gogpu/xdlayout/svg"
)

// outline appends the geometry of a shape element to the current path.
func (d *drawer) outline(e svg.Element) error {
	switch e := e.(type) {
	case *svg.Rect:
		if e.RX > 0 {
			d.dc.DrawRoundedRectangle(e.X, e.Y, e.Width, e.Height, e.RX)
		} else {
			d.dc.DrawRectangle(e.X, e.Y, e.Width, e.Height)
		}
	case *svg.Circle:
		d.dc.DrawCircle(e.CX, e.CY, e.R)
	case *svg.Ellipse:
		d.dc.DrawEllipse(e.CX, e.CY, e.RX, e.RY)
	case *svg.Line:
		d.dc.MoveTo(e.X1, e.Y1)
		d.dc.LineTo(e.X2, e.Y2)
	case *svg.Path:
		d.dc.NewSubPath()
		pathdata.Replay(e.D, d.dc)
	case *svg.Group:
		for _, c := range e.Children {
			if err := d.outline(c); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("%w: %T as outline", ErrUnsupported, e)
	}
	return nil
}

// bounds returns the element box gradients in bounding-box units refer to.
func bounds(e svg.Element) gg.Rect {
	switch e := e.(type) {
	case *svg.Rect:
		return gg.Rect{Min: gg.Pt(e.X, e.Y), Max: gg.Pt(e.X+e.Width, e.Y+e.Height)}
	case *svg.Circle:
		return gg.Rect{Min: gg.Pt(e.CX-e.R, e.CY-e.R), Max: gg.Pt(e.CX+e.R, e.CY+e.R)}
	case *svg.Ellipse:
		return gg.Rect{Min: gg.Pt(e.CX-e.RX, e.CY-e.RY), Max: gg.Pt(e.CX+e.RX, e.CY+e.RY)}
	case *svg.Line:
		return gg.NewRect(gg.Pt(e.X1, e.Y1), gg.Pt(e.X2, e.Y2))
	case *svg.Path:
		return pathdata.Bounds(e.D)
	}
	return gg.Rect{}
}
