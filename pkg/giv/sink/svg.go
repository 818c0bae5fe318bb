package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/fonts"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/colors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
)

const svgCSS = `
    .bar { shape-rendering: crispEdges; }
    .group { fill-opacity: 0.45; }
    .band { stroke: #d0d0d0; stroke-width: 0.5; stroke-dasharray: 2 2; }
    .label { font-family: %s; dominant-baseline: hanging; }
    .bar:hover { stroke-width: 2; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	margin     float64
	bands      bool
	title      string
}

// WithBackground fills the canvas with a named or hex color.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithMargin pads the drawing on every side.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = max(m, 0) } }

// WithBands draws a dashed separator under each track.
func WithBands() SVGOption { return func(r *svgRenderer) { r.bands = true } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the scene. Node IDs and element paths are written as
// element ids and data attributes so a viewer can map clicks back to
// features.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w := s.Width + 2*r.margin
	h := s.Height + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>"+svgCSS+"\n  </style>\n", fonts.FallbackFontFamily)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colors.Resolve(r.background).Hex())
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", r.margin, r.margin)
	if r.bands {
		for _, b := range s.Bands {
			y := b.Y + b.H
			fmt.Fprintf(&buf, `    <line class="band" x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", y, s.Width, y)
		}
	}
	for _, n := range s.Nodes {
		renderNode(&buf, n, s.Relations[n.ID])
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNode(buf *bytes.Buffer, n scene.Node, ref scene.Ref) {
	path := html.EscapeString(ref.Path)
	switch n.Kind {
	case scene.KindGroupBackground:
		fill := n.Fill
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(buf, `    <rect id="n%d" class="group" data-path="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			n.ID, path, n.X, n.Y, n.W, n.H, fill)
	case scene.KindBar:
		fmt.Fprintf(buf, `    <rect id="n%d" class="bar" data-path="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`,
			n.ID, path, n.X, n.Y, n.W, n.H, n.Fill)
		if n.Border > 0 {
			fmt.Fprintf(buf, ` stroke="%s" stroke-width="%d"`, n.Stroke, n.Border)
		}
		if ref.Label != "" {
			fmt.Fprintf(buf, "><title>%s %d..%d</title></rect>\n", html.EscapeString(ref.Label), ref.Start, ref.Stop)
		} else {
			buf.WriteString("/>\n")
		}
	case scene.KindLabel:
		fmt.Fprintf(buf, `    <text id="n%d" class="label" data-path="%s" x="%.1f" y="%.1f" font-size="%.0f" fill="%s">%s</text>`+"\n",
			n.ID, path, n.X, n.Y, n.FontSize, n.Fill, html.EscapeString(n.Text))
	}
}
