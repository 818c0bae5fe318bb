// Package nodelink draws a GIV layout tree as a node-link diagram.
//
// Where the feature map shows where things landed, the tree diagram shows
// how the document is nested: frame, panel groups, tracks, groups and
// glyphs as boxes joined by arrows. It is a debugging view for documents
// whose packing looks wrong.
//
//	dot := nodelink.ToDOT(f, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process, so no dot binary is needed. PDF and PNG go through
// rsvg-convert like the other sinks.
package nodelink
