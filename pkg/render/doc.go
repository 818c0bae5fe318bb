// Package render holds format conversion shared by the GIV sinks.
//
// [ToPDF] and [ToPNG] convert any SVG document using the external
// rsvg-convert tool from librsvg. The feature map sinks in pkg/giv/sink
// and the layout tree diagrams in [nodelink] both export through them.
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/render/nodelink
package render
