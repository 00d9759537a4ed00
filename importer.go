package xdlayout

import (
	"context"
	"log/slog"
	"slices"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/xdlayout/container"
	"github.com/gogpu/xdlayout/convert"
	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/raster"
	"github.com/gogpu/xdlayout/xd"
)

// ErrArtboardNotFound is returned when WithArtboards names an artboard the
// document does not contain.
var ErrArtboardNotFound = errors.Base("xdlayout: artboard not found")

// Importer converts design documents. It is safe for concurrent use.
type Importer struct {
	opts options
}

// New returns an Importer configured by opts.
func New(opts ...Option) *Importer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.format == convert.FormatPNG && o.rasterizer == nil {
		o.rasterizer = raster.New()
	}
	return &Importer{opts: o}
}

func (im *Importer) logger() *slog.Logger {
	if im.opts.logger != nil {
		return im.opts.logger
	}
	return Logger()
}

// Artboard is one converted artboard.
type Artboard struct {
	Name string
	*convert.Result
}

// Import is the result of converting a document.
type Import struct {
	Document  *xd.Document
	Artboards []*Artboard
}

// Warnings returns the warnings of every artboard in order.
func (r *Import) Warnings() []diag.Warning {
	var out []diag.Warning
	for _, ab := range r.Artboards {
		out = append(out, ab.Warnings...)
	}
	return out
}

// Entries returns the artboards ready to be packed by the container package.
func (r *Import) Entries() []container.Entry {
	out := make([]container.Entry, 0, len(r.Artboards))
	for _, ab := range r.Artboards {
		out = append(out, container.Entry{Name: ab.Name, Layout: ab.Layout, Assets: ab.Result})
	}
	return out
}

// ImportFile reads the named design file and converts it.
func (im *Importer) ImportFile(ctx context.Context, filename string) (*Import, error) {
	arc, err := xd.OpenZip(ctx, filename)
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, arc)
}

// Import loads the document in arc and converts its artboards concurrently.
// The first artboard to fail cancels the others.
func (im *Importer) Import(ctx context.Context, arc xd.Archive) (*Import, error) {
	doc, err := xd.Load(ctx, arc)
	if err != nil {
		return nil, err
	}
	boards, err := im.selectArtboards(doc)
	if err != nil {
		return nil, err
	}
	logger := im.logger()
	logger.Info("importing", "artboards", len(boards), "format", im.opts.format)

	// Triggers run on this goroutine only.
	resolver := xd.NewResolver(doc.Resources.Resources.Meta.UX.Symbols, im.opts.triggers...)
	roots := make([]*xd.Object, len(boards))
	for i, ab := range boards {
		if roots[i], err = resolveRoot(resolver, ab); err != nil {
			return nil, errors.Errorf("xdlayout: artboard %q: %w", ab.Name, err)
		}
	}

	out := make([]*Artboard, len(boards))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.concurrency)
	for i, ab := range boards {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := im.convert(doc, ab, roots[i], logger.With("artboard", ab.Name))
			if err != nil {
				return errors.Errorf("xdlayout: artboard %q: %w", ab.Name, err)
			}
			out[i] = &Artboard{Name: ab.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Import{Document: doc, Artboards: out}, nil
}

func resolveRoot(resolver *xd.Resolver, ab *xd.Artboard) (*xd.Object, error) {
	root, err := resolver.Resolve(ab.Root)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, diag.Fatal(ab.Root.Node(), diag.ReasonFailed, "artboard removed by import trigger")
	}
	return root, nil
}

func (im *Importer) convert(doc *xd.Document, ab *xd.Artboard, root *xd.Object, logger *slog.Logger) (*convert.Result, error) {
	warnings := diag.NewCollector(logger)
	res, err := convert.Convert(ab, root, convert.Options{
		Format:     im.opts.format,
		Scale:      im.opts.scale,
		Measurer:   im.opts.measurer,
		Rasterizer: im.opts.rasterizer,
		Archive:    doc.Archive,
		Logger:     logger,
		Warnings:   warnings,
	})
	if err != nil {
		return nil, err
	}
	if im.opts.strict {
		if err := warnings.Err(); err != nil {
			return nil, err
		}
	}
	logger.Info("converted", "elements", len(res.Layout.Elements), "assets", len(res.Layout.Assets), "warnings", len(res.Warnings))
	return res, nil
}

func (im *Importer) selectArtboards(doc *xd.Document) ([]*xd.Artboard, error) {
	if len(im.opts.artboards) == 0 {
		return doc.Artboards, nil
	}
	var out []*xd.Artboard
	for _, name := range im.opts.artboards {
		i := slices.IndexFunc(doc.Artboards, func(ab *xd.Artboard) bool { return ab.Name == name })
		if i < 0 {
			return nil, errors.Errorf("%w: %q", ErrArtboardNotFound, name)
		}
		out = append(out, doc.Artboards[i])
	}
	return out, nil
}
