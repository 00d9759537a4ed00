// Package xdlayout converts XD design documents into layout trees.
//
// # Overview
//
// A design document is a zip archive of JSON object graphs: one graph per
// artboard plus a shared resources graph holding symbols and gradients.
// xdlayout resolves symbol references, computes an oriented bounding box
// for every object and emits a neutral layout tree of elements with typed
// components (image, text, list, scroll, button, mask and others), plus
// the vector or raster assets the images refer to.
//
// # Quick Start
//
//	im := xdlayout.New(
//	    xdlayout.WithFormat(convert.FormatPNG),
//	    xdlayout.WithScale(2),
//	    xdlayout.WithTriggers(xd.SkipInvisible),
//	)
//	res, err := im.ImportFile(ctx, "design.xd")
//	if err != nil {
//	    return err
//	}
//	err = container.WriteFile(ctx, "design.zip", res.Entries())
//
// # Architecture
//
// The module is organized into:
//   - xd: document schema, archive access, symbol resolution, import triggers
//   - pathdata, svg: path data and canonical vector shapes
//   - obb: oriented bounding boxes
//   - convert: expansion, solving and rendering of one artboard
//   - layout: the output tree and its JSON encoding
//   - measure, raster: text measurement and rasterization with gogpu/gg
//   - container: zip bundles of layouts and assets
//
// Conversion errors name the failing object. Recoverable problems are
// collected as warnings on each artboard, and fail the import under
// WithStrict.
package xdlayout
