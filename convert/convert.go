// Package convert turns a resolved artboard into a layout.
//
// Conversion runs three passes over a Node tree. Expand reshapes lists and
// repeat grids, Solve computes one oriented bounding box per node
// bottom-up, and Render walks the tree top-down emitting elements,
// components and assets. Solve and Render select behavior through the
// same capability-matched parser chain, so a node is always solved and
// rendered by the same parser.
package convert

import (
	"log/slog"

	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/measure"
	"github.com/gogpu/xdlayout/obb"
	"github.com/gogpu/xdlayout/svg"
	"github.com/gogpu/xdlayout/xd"
)

// Format is the encoding of vector assets.
type Format string

// Asset formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Measurer measures text. *measure.Measurer implements it.
type Measurer interface {
	Measure(f measure.Font, s string, wrapWidth float64) (measure.Metrics, error)
}

// Rasterizer renders a vector document to encoded image bytes at the given
// pixel size.
type Rasterizer interface {
	Rasterize(doc *svg.Document, width, height int) ([]byte, error)
}

// Options configures a conversion. The zero value writes SVG assets at
// scale 1, measures text with fallback metrics and logs nothing.
type Options struct {
	Format     Format
	Scale      float64
	Measurer   Measurer
	Rasterizer Rasterizer
	// Archive supplies bitmap resources referenced by pattern fills.
	Archive  xd.Archive
	Logger   *slog.Logger
	Warnings *diag.Collector
}

// Context is the per-artboard state shared by the passes.
type Context struct {
	Options
	Artboard *xd.Artboard
	Table    *obb.Table

	canon    *svg.Canonicalizer
	shapes   map[string]*svg.Result
	assets   *assetStore
	ids      map[int]bool
	elements []*layout.Element
}

// NewContext prepares a conversion of ab.
func NewContext(ab *xd.Artboard, opts Options) *Context {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Warnings == nil {
		opts.Warnings = diag.NewCollector(opts.Logger)
	}
	c := &Context{
		Options:  opts,
		Artboard: ab,
		Table:    obb.NewTable(),
		canon:    &svg.Canonicalizer{Warn: opts.Warnings},
		shapes:   make(map[string]*svg.Result),
		assets:   newAssetStore(opts.Format, opts.Scale),
		ids:      map[int]bool{layout.RootID: true},
	}
	if ab.Resources != nil {
		c.canon.Gradients = ab.Resources.Resources.Gradients
	}
	return c
}

// Result is a converted artboard.
type Result struct {
	Layout   *layout.Layout
	Warnings []diag.Warning
	Root     *Node

	assets     *assetStore
	rasterizer Rasterizer
	archive    xd.Archive
}

// Convert runs Expand, Solve and Render over a resolved artboard root.
func Convert(ab *xd.Artboard, root *xd.Object, opts Options) (*Result, error) {
	c := NewContext(ab, opts)
	n := Expand(root)
	if err := c.Solve(n); err != nil {
		return nil, diag.Annotate(c.Logger, root.Node(), err)
	}
	l, err := c.Render(n)
	if err != nil {
		return nil, diag.Annotate(c.Logger, root.Node(), err)
	}
	return &Result{
		Layout:     l,
		Warnings:   c.Warnings.Warnings(),
		Root:       n,
		assets:     c.assets,
		rasterizer: c.Rasterizer,
		archive:    c.Archive,
	}, nil
}

func (c *Context) warn(n *Node, reason diag.Reason, format string, args ...any) {
	c.Warnings.Warn(n.Object.Node(), reason, format, args...)
}

// canonical returns the cached vector form of n's object.
func (c *Context) canonical(n *Node) (*svg.Result, error) {
	if res, ok := c.shapes[n.Key]; ok {
		return res, nil
	}
	res, err := c.canon.Canonicalize(n.Object)
	if err != nil {
		return nil, err
	}
	c.shapes[n.Key] = res
	return res, nil
}
