package xdlayout

import (
	"log/slog"
	"runtime"

	"github.com/gogpu/xdlayout/convert"
	"github.com/gogpu/xdlayout/xd"
)

// Option configures an Importer.
//
// Example:
//
//	im := xdlayout.New(
//	    xdlayout.WithFormat(convert.FormatPNG),
//	    xdlayout.WithScale(2),
//	    xdlayout.WithTriggers(xd.SkipInvisible),
//	)
type Option func(*options)

type options struct {
	logger      *slog.Logger
	concurrency int
	strict      bool
	triggers    []xd.Trigger
	artboards   []string
	format      convert.Format
	scale       float64
	measurer    convert.Measurer
	rasterizer  convert.Rasterizer
}

func defaultOptions() options {
	return options{
		concurrency: runtime.GOMAXPROCS(0),
		format:      convert.FormatSVG,
		scale:       1,
	}
}

// WithLogger sets the logger for one importer, overriding SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConcurrency bounds how many artboards convert at once.
// Values below 1 mean one at a time.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(1, n)
	}
}

// WithStrict makes any conversion warning fail the artboard.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithTriggers appends import triggers, run on every resolved object in
// registration order. Triggers are called from one goroutine before any
// artboard is converted.
func WithTriggers(triggers ...xd.Trigger) Option {
	return func(o *options) {
		o.triggers = append(o.triggers, triggers...)
	}
}

// WithArtboards limits the import to the named artboards.
func WithArtboards(names ...string) Option {
	return func(o *options) {
		o.artboards = append(o.artboards, names...)
	}
}

// WithFormat selects how vector assets are encoded.
func WithFormat(f convert.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithScale sets the pixel density of raster assets.
func WithScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithMeasurer sets the text measurer. Without one, text is measured with
// built-in fallback metrics.
func WithMeasurer(m convert.Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}

// WithRasterizer sets the rasterizer used for FormatPNG assets.
// Without one, a raster.Rasterizer is used.
func WithRasterizer(r convert.Rasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}
