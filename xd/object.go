package xd

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/diag"
)

// Node returns the object's identity for diagnostics.
func (o *Object) Node() diag.Node {
	if o == nil {
		return diag.Node{Name: "<nil>"}
	}
	return diag.Node{Name: o.Name, ID: o.ID, GUID: o.GUID}
}

// Key returns the GUID when present and the ID otherwise.
func (o *Object) Key() string {
	if o.GUID != "" {
		return o.GUID
	}
	return o.ID
}

// IsVisible reports whether the object is shown. Missing means visible.
func (o *Object) IsVisible() bool {
	return o.Visible == nil || *o.Visible
}

// IsGroup reports whether the object carries children.
func (o *Object) IsGroup() bool {
	return o.Type == TypeGroup || o.Type == TypeArtboard
}

// Children returns the ordered children of a group or artboard.
func (o *Object) Children() []*Object {
	switch {
	case o.Group != nil:
		return o.Group.Children
	case o.Artboard != nil:
		return o.Artboard.Children
	}
	return nil
}

// WithChildren returns a shallow copy of o whose child list is children.
// The receiver is left untouched.
func (o *Object) WithChildren(children []*Object) *Object {
	c := *o
	if o.Artboard != nil && o.Group == nil {
		c.Artboard = &Group{Children: children}
	} else {
		c.Group = &Group{Children: children}
	}
	return &c
}

// Clone returns a shallow copy of o.
func (o *Object) Clone() *Object {
	c := *o
	return &c
}

// UX returns the layout metadata, never nil.
func (o *Object) UX() *UX {
	if o.Meta == nil || o.Meta.UX == nil {
		return &UX{}
	}
	return o.Meta.UX
}

// Opacity returns the style opacity, 1 when unset.
func (o *Object) Opacity() float64 {
	if o.Style == nil || o.Style.Opacity == nil {
		return 1
	}
	return *o.Style.Opacity
}

// Matrix returns the local-to-parent transform.
func (o *Object) Matrix() gg.Matrix {
	return o.Transform.Matrix()
}

// Rotation returns the object's rotation in degrees, clockwise in the
// document's Y-down space.
func (o *Object) Rotation() float64 {
	if r := o.UX().Rotation; r != nil {
		return *r
	}
	if o.Transform == nil {
		return 0
	}
	return math.Atan2(o.Transform.B, o.Transform.A) * 180 / math.Pi
}

// Matrix converts t to a gg matrix. A nil transform is the identity.
func (t *Transform) Matrix() gg.Matrix {
	if t == nil {
		return gg.Identity()
	}
	return gg.Matrix{A: t.A, B: t.C, C: t.TX, D: t.B, E: t.D, F: t.TY}
}

// Translation returns a pure translation transform.
func Translation(x, y float64) *Transform {
	return &Transform{A: 1, D: 1, TX: x, TY: y}
}

// Multiply returns t applied after u (t * u).
func (t *Transform) Multiply(u *Transform) *Transform {
	if t == nil {
		t = &Transform{A: 1, D: 1}
	}
	if u == nil {
		u = &Transform{A: 1, D: 1}
	}
	return &Transform{
		A:  t.A*u.A + t.C*u.B,
		B:  t.B*u.A + t.D*u.B,
		C:  t.A*u.C + t.C*u.D,
		D:  t.B*u.C + t.D*u.D,
		TX: t.A*u.TX + t.C*u.TY + t.TX,
		TY: t.B*u.TX + t.D*u.TY + t.TY,
	}
}

// IsIdentity reports whether t is nil or the identity.
func (t *Transform) IsIdentity() bool {
	return t == nil || (t.A == 1 && t.B == 0 && t.C == 0 && t.D == 1 && t.TX == 0 && t.TY == 0)
}

// Hex returns the color as #rrggbb.
func (c *Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.Value.R), channel(c.Value.G), channel(c.Value.B))
}

// A returns the alpha in 0..1, defaulting to 1.
func (c *Color) A() float64 {
	if c == nil || c.Alpha == nil {
		return 1
	}
	return *c.Alpha
}

// RGBA converts the color to a gg color.
func (c *Color) RGBA() gg.RGBA {
	return gg.RGBA{
		R: float64(channel(c.Value.R)) / 255,
		G: float64(channel(c.Value.G)) / 255,
		B: float64(channel(c.Value.B)) / 255,
		A: c.A(),
	}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

// RGB returns an opaque color from 0..255 channels.
func RGB(r, g, b float64) *Color {
	return &Color{Mode: "RGB", Value: ColorValue{R: r, G: g, B: b}}
}
