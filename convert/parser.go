package convert

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
)

// Output is what a parser renders for one node.
type Output struct {
	Components   []layout.Component
	Assets       []*layout.Asset
	SkipChildren bool
}

// Parser handles one kind of node in both passes.
type Parser interface {
	// Name identifies the parser in logs.
	Name() string
	// Match reports whether the parser handles n.
	Match(c *Context, n *Node) bool
	// Rect returns n's rect in its own local space. union is the bounds
	// of the solved children, zero for leaves.
	Rect(c *Context, n *Node, union gg.Rect) (gg.Rect, error)
	// Render returns n's components and assets.
	Render(c *Context, n *Node) (Output, error)
}

// Object parsers are tried first, on every node.
var objectParsers = []Parser{
	scrollbarParser{},
	shapeParser{},
	textParser{},
}

// Group parsers are tried on groups no object parser claimed.
var groupParsers = []Parser{
	buttonParser{},
	repeatGridParser{},
	scrollParser{},
	inputFieldParser{},
	svgParser{},
	alphaParser{},
	maskParser{},
	toggleParser{},
}

// plainGroup renders a group with no special behavior.
type plainGroup struct{}

func (plainGroup) Name() string                           { return "group" }
func (plainGroup) Match(*Context, *Node) bool             { return true }
func (plainGroup) Render(*Context, *Node) (Output, error) { return Output{}, nil }

func (plainGroup) Rect(_ *Context, _ *Node, union gg.Rect) (gg.Rect, error) {
	return union, nil
}

// selectParser picks n's parser and remembers it for the render pass.
func (c *Context) selectParser(n *Node) (Parser, error) {
	if n.parser != nil {
		return n.parser, nil
	}
	for _, p := range objectParsers {
		if p.Match(c, n) {
			n.parser = p
			return p, nil
		}
	}
	if !n.Object.IsGroup() {
		return nil, diag.Fatal(n.Object.Node(), diag.ReasonUnknownObject, "no parser for %q object", n.Object.Type)
	}
	n.parser = plainGroup{}
	for _, p := range groupParsers {
		if p.Match(c, n) {
			n.parser = p
			break
		}
	}
	return n.parser, nil
}
