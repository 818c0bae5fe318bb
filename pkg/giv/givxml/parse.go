package givxml

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/charmbracelet/log"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/colors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	style  feature.Style
	strict bool
	logger *log.Logger
}

// WithStyle sets the style glyphs start from before their attributes apply.
func WithStyle(s feature.Style) Option {
	return func(o *options) { o.style = s.Normalize() }
}

// WithStrict turns the first recovered problem into an INVALID_ATTRIBUTE
// (or COLOR_LOOKUP_MISS) error.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithLogger logs every diagnostic at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Parse reads a document and builds its layout tree.
func Parse(r io.Reader, opts ...Option) (*Result, error) {
	o := options{
		style:  feature.DefaultStyle(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaViolation, err, "malformed document")
	}
	root, err := rootElement(doc)
	if err != nil {
		return nil, err
	}

	extent, err := readExtent(root)
	if err != nil {
		return nil, err
	}

	p := &parser{opts: o, res: &Result{Extent: extent}}
	p.res.Frame = p.frame(root, extent)

	if o.strict && len(p.res.Diagnostics) > 0 {
		return p.res, p.res.Diagnostics[0].Err()
	}
	return p.res, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte, opts ...Option) (*Result, error) {
	return Parse(bytes.NewReader(data), opts...)
}

func readExtent(root *xmlquery.Node) (int, error) {
	v, ok := attr(root, "extent")
	if !ok {
		return 0, errors.New(errors.ErrCodeMissingExtent, "<frame> has no extent attribute")
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMissingExtent, err, "frame extent %q is not an integer", v)
	}
	if err := errors.ValidateExtent(n); err != nil {
		return 0, err
	}
	return n, nil
}

type parser struct {
	opts options
	res  *Result
}

func (p *parser) record(d Diagnostic) {
	p.res.Diagnostics = append(p.res.Diagnostics, d)
	p.opts.logger.Debug("document diagnostic", "code", d.Code, "path", d.Path, "attr", d.Attr, "dropped", d.Dropped)
}

func (p *parser) warn(path, name, value, format string, args ...any) {
	p.record(Diagnostic{
		Code:    errors.ErrCodeInvalidAttribute,
		Path:    path,
		Attr:    name,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) frame(root *xmlquery.Node, extent int) *frame.Frame {
	f := frame.New(extent)
	f.SetPanelGap(p.float(root, elemFrame, "panelGap", frame.DefaultPanelGap))

	n := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		n++
		path := childPath(elemFrame, elemPanelGroup, n)
		pg := frame.NewPanelGroup(p.label(c, path))
		pg.SetTrackGap(p.float(c, path, "trackGap", frame.DefaultTrackGap))
		p.tracks(c, path, f, pg)
		// Tracks come from f.NewTrack, so the extents always agree.
		_ = f.AddPanelGroup(pg)
	}

	if v, ok := attr(root, "scale"); ok {
		s, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || s <= 0 {
			p.warn(elemFrame, "scale", v, "expected a positive number, using 1")
		} else {
			f.SetScale(s)
		}
	}
	return f
}

func (p *parser) tracks(n *xmlquery.Node, path string, f *frame.Frame, pg *frame.PanelGroup) {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		i++
		tpath := childPath(path, elemTrack, i)
		t := f.NewTrack(p.label(c, tpath),
			frame.WithTrackBuoyancy(p.buoyancy(c, tpath)),
			frame.WithTrackGaps(
				p.float(c, tpath, "hgap", layout.DefaultHGap),
				p.float(c, tpath, "vgap", layout.DefaultVGap),
			),
		)
		p.units(c, tpath, t.AddUnit)
		pg.AddTrack(t)
	}
}

func (p *parser) units(n *xmlquery.Node, path string, add func(mosaic.Unit)) {
	counts := map[string]int{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		counts[c.Data]++
		cpath := childPath(path, c.Data, counts[c.Data])
		switch c.Data {
		case elemGlyph:
			if g, ok := p.glyph(c, cpath); ok {
				add(g)
			}
		case elemGroup:
			add(p.group(c, cpath))
		}
	}
}

func (p *parser) group(n *xmlquery.Node, path string) *mosaic.Group {
	opts := []mosaic.GroupOption{
		mosaic.WithBuoyancy(p.buoyancy(n, path)),
		mosaic.WithGaps(
			p.float(n, path, "hgap", layout.DefaultHGap),
			p.float(n, path, "vgap", layout.DefaultVGap),
		),
	}
	if v, ok := attr(n, "color"); ok {
		opts = append(opts, mosaic.WithColor(p.color(path, "color", v)))
	}
	g := mosaic.NewGroup(p.label(n, path), opts...)
	p.units(n, path, g.AddUnit)
	return g
}

func (p *parser) glyph(n *xmlquery.Node, path string) (*mosaic.Glyph, bool) {
	start, ok := p.coordinate(n, path, "start")
	if !ok {
		return nil, false
	}
	stop, ok := p.coordinate(n, path, "stop")
	if !ok {
		return nil, false
	}

	st := p.opts.style
	st.BarHeight = p.int(n, path, "barHeight", st.BarHeight)
	st.BarBorder = p.int(n, path, "barBorder", st.BarBorder)
	if st.BarBorder != feature.ClampBorder(st.BarBorder) {
		p.warn(path, "barBorder", strconv.Itoa(st.BarBorder), "clamped to [%d,%d]", feature.MinBarBorder, feature.MaxBarBorder)
		st.BarBorder = feature.ClampBorder(st.BarBorder)
	}
	st.LabelSize = p.int(n, path, "labelSize", st.LabelSize)
	if v, ok := attr(n, "barColor"); ok {
		st.BarColor = p.color(path, "barColor", v)
	}
	if v, ok := attr(n, "labelColor"); ok {
		st.LabelColor = p.color(path, "labelColor", v)
	}
	if v, ok := attr(n, "labelPosition"); ok {
		pos, known := feature.ParseLabelPosition(v)
		if !known {
			p.warn(path, "labelPosition", v, "unknown label position, using %s", pos)
		}
		st.LabelPosition = pos
	}

	return mosaic.NewGlyph(feature.NewInterval(p.label(n, path), start, stop), st), true
}

// coordinate reads start or stop. Failures drop the glyph.
func (p *parser) coordinate(n *xmlquery.Node, path, name string) (int, bool) {
	v, _ := attr(n, name)
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 {
		p.record(Diagnostic{
			Code:    errors.ErrCodeInvalidAttribute,
			Path:    path,
			Attr:    name,
			Value:   v,
			Message: "expected a non-negative integer",
			Dropped: true,
		})
		return 0, false
	}
	return i, true
}

func (p *parser) label(n *xmlquery.Node, path string) string {
	v, _ := attr(n, "label")
	if err := errors.ValidateLabel(v); err != nil {
		p.warn(path, "label", v, "%s", errors.UserMessage(err))
	}
	return v
}

func (p *parser) int(n *xmlquery.Node, path, name string, def int) int {
	v, ok := attr(n, name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 {
		p.warn(path, name, v, "expected a non-negative integer, using %d", def)
		return def
	}
	return i
}

func (p *parser) float(n *xmlquery.Node, path, name string, def float64) float64 {
	v, ok := attr(n, name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		p.warn(path, name, v, "expected a non-negative number, using %g", def)
		return def
	}
	return f
}

func (p *parser) buoyancy(n *xmlquery.Node, path string) layout.Buoyancy {
	v, ok := attr(n, "buoyancy")
	if !ok {
		return layout.Floating
	}
	b, known := layout.ParseBuoyancy(v)
	if !known {
		p.warn(path, "buoyancy", v, "unknown buoyancy, using %s", b)
	}
	return b
}

func (p *parser) color(path, name, value string) string {
	shade, ok := colors.Lookup(value)
	if !ok {
		p.record(Diagnostic{
			Code:    errors.ErrCodeColorLookupMiss,
			Path:    path,
			Attr:    name,
			Value:   value,
			Message: fmt.Sprintf("unknown color, using %s", colors.Fallback),
		})
		return colors.Fallback
	}
	if strings.HasPrefix(shade.Name, "#") {
		return shade.Name
	}
	return value
}
