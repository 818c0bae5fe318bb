package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/render"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed adds spans, heights and row counts to node labels.
	// When false, only labels are shown.
	Detailed bool
}

// ToDOT converts a frame to Graphviz DOT source. Node IDs are element
// paths, so they match parser diagnostics and scene relations.
func ToDOT(f *frame.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	w := &writer{buf: &buf, opts: opts}
	root := "frame"
	rootLabel := fmt.Sprintf("frame\nextent %d", f.Extent())
	if opts.Detailed {
		width, height := f.Size()
		rootLabel += fmt.Sprintf("\nscale %g\n%gx%g", f.Scale(), width, height)
	}
	w.node(root, rootLabel, "fillcolor=lightsteelblue")

	for pi, p := range f.Panels() {
		pid := fmt.Sprintf("%s/panel-group[%d]", root, pi+1)
		w.node(pid, orDefault(p.Label(), "panel-group"), "fillcolor=lightgrey")
		w.edge(root, pid)
		for ti, t := range p.Tracks() {
			tid := fmt.Sprintf("%s/track[%d]", pid, ti+1)
			label := orDefault(t.Label(), "track") + "\n" + t.Buoyancy().String()
			if opts.Detailed {
				label += fmt.Sprintf("\nrows %d\nheight %g", len(t.Layout().Rows), t.Height())
			}
			w.node(tid, label, "fillcolor=honeydew")
			w.edge(pid, tid)
			w.units(tid, t.Units())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf  *bytes.Buffer
	opts Options
}

func (w *writer) node(id, label string, extra ...string) {
	attrs := append([]string{fmt.Sprintf("label=%q", label)}, extra...)
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
}

func (w *writer) edge(from, to string) {
	fmt.Fprintf(w.buf, "  %q -> %q;\n", from, to)
}

func (w *writer) units(parent string, units []mosaic.Unit) {
	counts := map[string]int{}
	for _, u := range units {
		switch u := u.(type) {
		case *mosaic.Glyph:
			counts["glyph"]++
			id := fmt.Sprintf("%s/glyph[%d]", parent, counts["glyph"])
			iv := u.Interval()
			label := orDefault(iv.Label(), "glyph")
			if w.opts.Detailed {
				label += fmt.Sprintf("\n%d..%d\ny %g", iv.Start(), iv.Stop(), u.Offset())
			}
			w.node(id, label)
			w.edge(parent, id)
		case *mosaic.Group:
			counts["group"]++
			id := fmt.Sprintf("%s/group[%d]", parent, counts["group"])
			label := orDefault(u.Label(), "group") + "\n" + u.Buoyancy().String()
			if w.opts.Detailed {
				s := u.Span()
				label += fmt.Sprintf("\n%d..%d\nheight %g", s.Start, s.Stop, u.Height())
			}
			w.node(id, label, "style=\"rounded,filled,dashed\"", "fillcolor=lavender")
			w.edge(parent, id)
			w.units(id, u.Units())
		}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
