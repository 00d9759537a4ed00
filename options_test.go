package xdlayout

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/gogpu/xdlayout/convert"
	"github.com/gogpu/xdlayout/raster"
	"github.com/gogpu/xdlayout/svg"
	"github.com/gogpu/xdlayout/xd"
)

type stubRasterizer struct{}

func (stubRasterizer) Rasterize(*svg.Document, int, int) ([]byte, error) { return nil, nil }

func TestDefaultOptions(t *testing.T) {
	o := New().opts
	if o.format != convert.FormatSVG || o.scale != 1 || o.concurrency != runtime.GOMAXPROCS(0) {
		t.Errorf("defaults = %v %v %v, want svg 1 GOMAXPROCS", o.format, o.scale, o.concurrency)
	}
	if o.rasterizer != nil {
		t.Error("svg importer should not install a rasterizer")
	}
	if New().logger() != Logger() {
		t.Error("importer without WithLogger should use the package logger")
	}
}

func TestOptions(t *testing.T) {
	logger := slog.Default()
	im := New(
		WithLogger(logger),
		WithConcurrency(0),
		WithStrict(true),
		WithTriggers(xd.SkipInvisible),
		WithTriggers(xd.SkipInvisible),
		WithArtboards("A", "B"),
		WithFormat(convert.FormatPNG),
		WithScale(-1),
	)
	o := im.opts
	if o.concurrency != 1 {
		t.Errorf("concurrency = %d, want 1", o.concurrency)
	}
	if !o.strict || len(o.triggers) != 2 || len(o.artboards) != 2 {
		t.Errorf("strict/triggers/artboards = %v/%d/%d, want true/2/2", o.strict, len(o.triggers), len(o.artboards))
	}
	if o.scale != 1 {
		t.Errorf("scale = %v, want 1 after a non-positive WithScale", o.scale)
	}
	if _, ok := o.rasterizer.(*raster.Rasterizer); !ok {
		t.Errorf("rasterizer = %T, want *raster.Rasterizer for png", o.rasterizer)
	}
	if im.logger() != logger {
		t.Error("WithLogger was not applied")
	}

	custom := New(WithFormat(convert.FormatPNG), WithRasterizer(stubRasterizer{}))
	if _, ok := custom.opts.rasterizer.(stubRasterizer); !ok {
		t.Errorf("rasterizer = %T, want the injected one", custom.opts.rasterizer)
	}
}
