package convert

import (
	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
)

const idMask = 1<<31 - 1

// Render walks a solved tree top-down and builds the layout.
func (c *Context) Render(root *Node) (*layout.Layout, error) {
	c.elements = c.elements[:0]
	if _, err := c.render(root); err != nil {
		return nil, err
	}
	l := &layout.Layout{
		Name:     c.Artboard.Name,
		Root:     layout.RootID,
		Elements: c.elements,
		Assets:   c.assets.list,
	}
	hash, err := l.ComputeHash()
	if err != nil {
		return nil, err
	}
	l.Hash = hash
	return l, nil
}

func (c *Context) render(n *Node) (int, error) {
	obj := n.Object
	box, err := c.Table.Get(n.Key)
	if err != nil {
		return 0, err
	}
	el := &layout.Element{
		Name:     obj.SimpleName(),
		Size:     layout.Vec2{X: box.Width, Y: box.Height},
		AnchorX:  layout.Center,
		AnchorY:  layout.Middle,
		Visible:  obj.IsVisible() && obj.Opacity() > 0,
		Children: []int{},
	}
	if el.Name == "" {
		el.Name = obj.Type
	}
	if n.IsRoot() {
		el.ID = layout.RootID
	} else {
		el.ID = c.elementID(n)
		parent := box.Parent
		p := box.LocalPosition(parent.Width, parent.Height)
		el.Position = layout.Vec2{X: p.X, Y: p.Y}
		el.Rotation = -box.Rotation
		ux := obj.UX()
		el.AnchorX = layout.HorizontalAnchor(isSet(ux.ConstraintLeft), isSet(ux.ConstraintRight))
		el.AnchorY = layout.VerticalAnchor(isSet(ux.ConstraintTop), isSet(ux.ConstraintBottom))
	}
	c.elements = append(c.elements, el)

	var out Output
	if n.parser != nil {
		if out, err = n.parser.Render(c, n); err != nil {
			return 0, err
		}
	}
	el.Components = append(layout.Components{}, out.Components...)
	for _, a := range out.Assets {
		c.assets.add(a)
	}
	if out.SkipChildren {
		return el.ID, nil
	}
	for _, ch := range n.Children {
		id, err := c.render(ch)
		if err != nil {
			return 0, diag.Annotate(c.Logger, ch.Object.Node(), err)
		}
		el.Children = append(el.Children, id)
	}
	return el.ID, nil
}

func isSet(b *bool) bool {
	return b != nil && *b
}

// elementID hashes the object's GUID or id. A collision re-hashes with the
// node's ancestry path, then probes upward.
func (c *Context) elementID(n *Node) int {
	id := hashID(n.Object.Key())
	if c.ids[id] {
		id = hashID(n.Key)
	}
	for c.ids[id] {
		id = id%idMask + 1
	}
	c.ids[id] = true
	return id
}

func hashID(s string) int {
	id := int(xxhash.Sum64String(s) & idMask)
	if id == 0 {
		id = 1
	}
	return id
}
