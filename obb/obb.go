// Package obb provides oriented bounding boxes and the write-once table
// that stores one box per layout node. Table keys are node paths rather
// than object ids, since repeat-grid cells share ids; the render pass
// reads every box back through the table.
//
// Boxes live in their parent's local space, which grows downward in Y.
// Position is the box's top-left corner before rotation; the box rotates
// clockwise by Rotation degrees around that corner.
package obb

import (
	"math"
	"sync"

	"github.com/gogpu/gg"
	"gitlab.com/tozd/go/errors"
)

// OBB is an oriented bounding box.
type OBB struct {
	Position gg.Point
	Width    float64
	Height   float64
	Rotation float64 // degrees
	Parent   *OBB
}

// FromRect returns an unrotated box covering r.
func FromRect(r gg.Rect, parent *OBB) *OBB {
	return &OBB{Position: r.Min, Width: r.Width(), Height: r.Height(), Parent: parent}
}

// Matrix maps the box's own space into its parent's space.
func (o *OBB) Matrix() gg.Matrix {
	m := gg.Translate(o.Position.X, o.Position.Y)
	if o.Rotation != 0 {
		m = m.Multiply(gg.Rotate(o.Rotation * math.Pi / 180))
	}
	return m
}

// WorldMatrix maps the box's own space into the root's space.
func (o *OBB) WorldMatrix() gg.Matrix {
	m := o.Matrix()
	for p := o.Parent; p != nil; p = p.Parent {
		m = p.Matrix().Multiply(m)
	}
	return m
}

// Rect returns the unrotated rect at Position.
func (o *OBB) Rect() gg.Rect {
	return gg.Rect{Min: o.Position, Max: gg.Pt(o.Position.X+o.Width, o.Position.Y+o.Height)}
}

// Bounds returns the axis-aligned bounds of the rotated box in parent space.
func (o *OBB) Bounds() gg.Rect {
	return o.bounds(o.Matrix())
}

// WorldRect returns the axis-aligned bounds of the box in root space.
func (o *OBB) WorldRect() gg.Rect {
	return o.bounds(o.WorldMatrix())
}

func (o *OBB) bounds(m gg.Matrix) gg.Rect {
	return TransformRect(m, gg.Rect{Max: gg.Pt(o.Width, o.Height)})
}

// Center returns the box center in parent space.
func (o *OBB) Center() gg.Point {
	return o.Matrix().TransformPoint(gg.Pt(o.Width/2, o.Height/2))
}

// Offset returns a copy moved by (dx, dy).
func (o *OBB) Offset(dx, dy float64) *OBB {
	c := *o
	c.Position = gg.Pt(o.Position.X+dx, o.Position.Y+dy)
	return &c
}

// LocalPosition returns the center of the box relative to the center of a
// parent of the given size, with Y pointing up.
func (o *OBB) LocalPosition(parentWidth, parentHeight float64) gg.Point {
	c := o.Center()
	return gg.Pt(c.X-parentWidth/2, -(c.Y - parentHeight/2))
}

// TransformRect returns the axis-aligned bounds of r mapped through m.
func TransformRect(m gg.Matrix, r gg.Rect) gg.Rect {
	out := gg.NewRect(m.TransformPoint(r.Min), m.TransformPoint(r.Max))
	return out.Union(gg.NewRect(
		m.TransformPoint(gg.Pt(r.Max.X, r.Min.Y)),
		m.TransformPoint(gg.Pt(r.Min.X, r.Max.Y)),
	))
}

// Table errors.
var (
	ErrAlreadySet = errors.Base("obb: box already set")
	ErrNotFound   = errors.Base("obb: box not found")
)

// Table stores one box per key. A key can be set only once.
// It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	boxes map[string]*OBB
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{boxes: map[string]*OBB{}}
}

// Set stores box under key.
func (t *Table) Set(key string, box *OBB) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.boxes[key]; ok {
		return errors.Errorf("%w: %s", ErrAlreadySet, key)
	}
	t.boxes[key] = box
	return nil
}

// Get returns the box stored under key.
func (t *Table) Get(key string) (*OBB, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	box, ok := t.boxes[key]
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrNotFound, key)
	}
	return box, nil
}

// Len returns the number of stored boxes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.boxes)
}
