package convert

import (
	"strconv"
	"strings"

	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/obb"
	"github.com/gogpu/xdlayout/xd"
)

// Node is one layout node: a resolved object plus the structure the solve
// and render passes walk. Expand builds nodes without mutating objects.
type Node struct {
	Object   *xd.Object
	Key      string
	Parent   *Node
	Children []*Node

	// Spacer is the trailing "spacer" child removed from a scroll group.
	Spacer *xd.Object
	// List is set on scroll groups whose content is a repeat grid.
	List *List

	box    *obb.OBB
	parser Parser
}

// List describes the virtualized list a scroll group was built from.
type List struct {
	Grid xd.RepeatGrid
	// Multi is set for "@multiitems" lists whose template items are
	// promoted to list level.
	Multi bool
	// Items are the list item nodes, in document order.
	Items []*Node
	// Special is filled by Solve for multi-item lists.
	Special []layout.SpecialSpacing

	// nested maps an item promoted from a nested grid to that grid's
	// vertical padding.
	nested map[*xd.Object]float64
	items  map[*xd.Object]bool
}

// Box returns the solved box, or nil before Solve.
func (n *Node) Box() *obb.OBB {
	return n.box
}

// IsRoot reports whether n is the artboard node.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Walk calls fn for n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Expand builds the node tree of a resolved artboard.
//
// A scroll group loses a trailing child named "spacer", and a repeat grid
// inside it is replaced by its first cell with the grid transform folded
// in. A standalone repeat grid keeps all its cells, minus any single
// wrapper group around them.
func Expand(root *xd.Object) *Node {
	return expand(root, nil, root.ID)
}

func expand(obj *xd.Object, parent *Node, key string) *Node {
	n := &Node{Object: obj, Key: key, Parent: parent}
	children := obj.Children()
	ux := obj.UX()
	switch {
	case ux.ScrollingType != "" && obj.IsGroup():
		children, n.Spacer = splitSpacer(children)
		children, n.List = expandList(obj, children)
	case ux.RepeatGrid != nil:
		children = cells(children)
	}
	for i, c := range children {
		child := expand(c, n, key+"/"+strconv.Itoa(i)+":"+c.ID)
		n.Children = append(n.Children, child)
		if n.List != nil && n.List.items[c] {
			n.List.Items = append(n.List.Items, child)
		}
	}
	return n
}

func splitSpacer(children []*xd.Object) ([]*xd.Object, *xd.Object) {
	if len(children) == 0 {
		return children, nil
	}
	last := children[len(children)-1]
	if !strings.EqualFold(last.SimpleName(), "spacer") {
		return children, nil
	}
	return children[:len(children)-1], last
}

// cells returns the cells of a repeat grid, looking through one wrapper
// group.
func cells(children []*xd.Object) []*xd.Object {
	if len(children) != 1 {
		return children
	}
	w := children[0]
	if !w.IsGroup() || w.UX().RepeatGrid != nil || len(w.Children()) == 0 {
		return children
	}
	out := make([]*xd.Object, 0, len(w.Children()))
	for _, c := range w.Children() {
		out = append(out, withTransform(c, w.Transform.Multiply(c.Transform)))
	}
	return out
}

func withTransform(obj *xd.Object, t *xd.Transform) *xd.Object {
	c := obj.Clone()
	c.Transform = t
	return c
}

// expandList replaces the first repeat grid among a scroll group's
// children by its template cell.
func expandList(obj *xd.Object, children []*xd.Object) ([]*xd.Object, *List) {
	var list *List
	out := make([]*xd.Object, 0, len(children))
	for _, c := range children {
		g := c.UX().RepeatGrid
		if g == nil || list != nil {
			out = append(out, c)
			continue
		}
		list = &List{
			Grid:   *g,
			Multi:  obj.HasParam(xd.ParamMultiItems),
			nested: make(map[*xd.Object]float64),
			items:  make(map[*xd.Object]bool),
		}
		grid := cells(c.Children())
		if len(grid) == 0 {
			continue
		}
		tmpl := withTransform(grid[0], c.Transform.Multiply(grid[0].Transform))
		if !list.Multi || len(tmpl.Children()) == 0 {
			out = append(out, tmpl)
			list.items[tmpl] = true
			continue
		}
		for _, item := range tmpl.Children() {
			t := tmpl.Transform.Multiply(item.Transform)
			ng := item.UX().RepeatGrid
			if ng == nil {
				it := withTransform(item, t)
				out = append(out, it)
				list.items[it] = true
				continue
			}
			inner := cells(item.Children())
			if len(inner) == 0 {
				continue
			}
			it := withTransform(inner[0], t.Multiply(inner[0].Transform))
			out = append(out, it)
			list.items[it] = true
			list.nested[it] = ng.PaddingY
		}
	}
	return out, list
}
