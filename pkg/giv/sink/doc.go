// Package sink turns a [scene.Scene] into output formats.
//
// # Formats
//
//   - SVG: [RenderSVG], the primary output
//   - JSON: [RenderJSON], nodes plus the relation table for external tools
//   - PNG: [RenderPNG], rasterized in-process with gg and Go Mono
//   - PDF: [RenderPDF], the SVG converted by rsvg-convert
//   - Tree: [RenderTreeSVG], the frame hierarchy as a Graphviz diagram
//
// Every sink takes functional options:
//
//	svg := sink.RenderSVG(sc,
//	    sink.WithBackground("white"),
//	    sink.WithMargin(10),
//	    sink.WithBands(),
//	)
//
// PDF needs librsvg installed (brew install librsvg, apt install
// librsvg2-bin). PNG does not.
//
// [scene.Scene]: github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene.Scene
package sink

// Format names used by the CLI and the render service.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatTree = "tree"
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatTree}
