package convert

import (
	"math"
	"sort"

	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/obb"
)

// Solve computes the box of every node in post-order and stores it in the
// context table under the node key.
//
// A node's rect comes from its parser; groups start from the union of
// their children's boxes. Children are then moved so that the rect's
// top-left corner is their origin, and the node's box is the rect placed
// through the object transform. The artboard is fixed at its own size and
// never moves its children.
func (c *Context) Solve(root *Node) error {
	box, err := c.solve(root)
	if err != nil {
		return err
	}
	return c.Table.Set(root.Key, box)
}

func (c *Context) solve(n *Node) (*obb.OBB, error) {
	var union gg.Rect
	for i, ch := range n.Children {
		box, err := c.solve(ch)
		if err != nil {
			return nil, diag.Annotate(c.Logger, ch.Object.Node(), err)
		}
		if i == 0 {
			union = box.Bounds()
		} else {
			union = union.Union(box.Bounds())
		}
	}

	var rect gg.Rect
	if n.IsRoot() {
		rect = gg.Rect{Max: gg.Pt(c.Artboard.Width, c.Artboard.Height)}
	} else {
		p, err := c.selectParser(n)
		if err != nil {
			return nil, err
		}
		if rect, err = p.Rect(c, n, union); err != nil {
			return nil, err
		}
	}

	box := &obb.OBB{Width: rect.Width(), Height: rect.Height()}
	if !n.IsRoot() {
		box.Position = n.Object.Matrix().TransformPoint(rect.Min)
		box.Rotation = n.Object.Rotation()
	}
	for _, ch := range n.Children {
		if !n.IsRoot() {
			ch.box.Position = gg.Pt(ch.box.Position.X-rect.Min.X, ch.box.Position.Y-rect.Min.Y)
		}
		ch.box.Parent = box
		if err := c.Table.Set(ch.Key, ch.box); err != nil {
			return nil, err
		}
	}
	n.box = box
	c.Logger.Debug("solved",
		"name", n.Object.Name, "parser", parserName(n),
		"x", box.Position.X, "y", box.Position.Y, "w", box.Width, "h", box.Height)
	return box, nil
}

func parserName(n *Node) string {
	if n.parser == nil {
		return "artboard"
	}
	return n.parser.Name()
}

// specialSpacings measures the gaps between consecutive items of a
// multi-item list along its scroll axis. Items promoted from a nested grid
// also repeat after themselves with that grid's padding.
func specialSpacings(l *List, horizontal bool) []layout.SpecialSpacing {
	items := append([]*Node(nil), l.Items...)
	lo := func(r gg.Rect) float64 { return r.Min.Y }
	hi := func(r gg.Rect) float64 { return r.Max.Y }
	if horizontal {
		lo = func(r gg.Rect) float64 { return r.Min.X }
		hi = func(r gg.Rect) float64 { return r.Max.X }
	}
	sort.SliceStable(items, func(i, j int) bool {
		return lo(items[i].box.Bounds()) < lo(items[j].box.Bounds())
	})

	var out []layout.SpecialSpacing
	for i, it := range items {
		name := it.Object.SimpleName()
		if pad, ok := l.nested[it.Object]; ok {
			out = append(out, layout.SpecialSpacing{Item1: name, Item2: name, Spacing: pad})
		}
		if i+1 == len(items) {
			break
		}
		next := items[i+1]
		gap := lo(next.box.Bounds()) - hi(it.box.Bounds())
		out = append(out, layout.SpecialSpacing{
			Item1:   name,
			Item2:   next.Object.SimpleName(),
			Spacing: math.Round(gap*1000) / 1000,
		})
	}
	return out
}
