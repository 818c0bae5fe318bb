// Package pkg provides the core libraries of the GIV genomic feature viewer.
//
// # Overview
//
// GIV turns a feature document (a frame of panel groups, tracks, groups and
// glyphs over one sequence extent) into a packed layout: overlapping
// features in a track are spread over rows so none collide, and the result
// is drawn as SVG, PNG, PDF or JSON. The pkg directory is organized into
// three areas:
//
//  1. [giv] - Domain logic (intervals, styles, tiling, the layout tree, sinks)
//  2. [pipeline] - Orchestration (parse → layout → render) with caching
//  3. Infrastructure ([cache], [errors], [observability], [render], [fonts])
//
// # Architecture
//
// The typical data flow:
//
//	Feature document (XML) or BED/GFF/UCSC records
//	         ↓
//	    [giv/givxml] or [giv/importer] (build the layout tree)
//	         ↓
//	    [giv/frame] (tracks tile their units on demand)
//	         ↓
//	    [giv/scene] (flatten to paint-ordered nodes)
//	         ↓
//	    [giv/sink] SVG/PNG/PDF/JSON/tree output
//
// # Quick Start
//
//	res, err := givxml.ParseBytes(doc)
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics {
//	    log.Warn(d.Message, "path", d.Path)
//	}
//	sc := scene.Build(res.Frame)
//	svg := sink.RenderSVG(sc, sink.WithBands())
//
// # Main Packages
//
// ## Domain
//
// [giv/feature] - Intervals and glyph styles.
//
// [giv/layout] - The tiling algorithm. Units are packed into rows by
// buoyancy (floating, sinking, stackUp, stackDown) with horizontal and
// vertical gaps.
//
// [giv/mosaic] - Placeable units: glyphs, and groups that tile their own
// children before being placed as one block.
//
// [giv/frame] - Tracks, panel groups and the frame. Layouts are cached per
// track and recomputed when scale, gaps, buoyancy or content change.
//
// [giv/colors] - The named color table and shading.
//
// [giv/givxml] - Document parsing with per-element diagnostics, and writing.
//
// [giv/importer] - Documents from BED, GFF and UCSC gene tables.
//
// [giv/scene] and [giv/sink] - Flattening and output formats.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline used by the CLI and the render service.
//
// [cache] - File, Redis and null caches behind one interface.
//
// [render] - SVG conversion through rsvg-convert, and Graphviz tree
// diagrams in [render/nodelink].
//
// # Testing
//
//	go test ./pkg/...
//	go test ./pkg/giv/layout/...
//	go test -run Example ./pkg/...
package pkg
