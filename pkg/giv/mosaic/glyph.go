package mosaic

import (
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/fonts"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
)

// labelPad separates a label placed above or below the bar.
const labelPad = 1.0

// Bar is the filled rectangle of a glyph, in glyph-local coordinates.
type Bar struct {
	Top    float64
	Height float64
	Color  string
	Border int
}

// Label is the text box of a glyph, in glyph-local coordinates. Width is in
// pixels and is used for drawing only.
type Label struct {
	Text     string
	Top      float64
	Height   float64
	Width    float64
	Size     float64
	Color    string
	Position feature.LabelPosition
}

// Glyph is a leaf feature: one interval drawn as a bar with an optional
// label.
type Glyph struct {
	iv     feature.Interval
	style  feature.Style
	bar    Bar
	label  *Label
	height float64
	y      float64
}

// NewGlyph builds a glyph and derives its bar and label geometry. It never
// fails: out-of-range style values are clamped.
//
// Height depends on label placement: above or below adds the label height
// plus one; inside overlays the bar; hidden (or an empty label) omits the
// label.
func NewGlyph(iv feature.Interval, style feature.Style) *Glyph {
	st := style.Normalize()
	g := &Glyph{iv: iv, style: st}

	barH := float64(st.BarHeight)
	g.bar = Bar{Height: barH, Color: st.BarColor, Border: st.BarBorder}
	g.height = barH

	text := iv.Label()
	if text == "" || st.LabelPosition == feature.LabelHidden {
		return g
	}

	size := float64(st.LabelSize)
	lbl := &Label{
		Text:     text,
		Height:   size,
		Width:    fonts.Measure(text, size),
		Size:     size,
		Color:    st.LabelColor,
		Position: st.LabelPosition,
	}

	switch st.LabelPosition {
	case feature.LabelAbove:
		g.bar.Top = size + labelPad
		g.height = barH + size + labelPad
	case feature.LabelBelow:
		lbl.Top = barH + labelPad
		g.height = barH + size + labelPad
	case feature.LabelInside:
		lbl.Top = (barH - size) / 2
	}
	g.label = lbl
	return g
}

// Interval returns the feature interval.
func (g *Glyph) Interval() feature.Interval { return g.iv }

// Style returns the normalized style.
func (g *Glyph) Style() feature.Style { return g.style }

// Bar returns the bar geometry.
func (g *Glyph) Bar() Bar { return g.bar }

// LabelBox returns the label geometry, if the glyph shows a label.
func (g *Glyph) LabelBox() (Label, bool) {
	if g.label == nil {
		return Label{}, false
	}
	return *g.label, true
}

func (g *Glyph) Label() string { return g.iv.Label() }

func (g *Glyph) Span() layout.Span {
	return layout.Span{Start: g.iv.Start(), Stop: g.iv.Stop()}
}

func (g *Glyph) Height() float64 { return g.height }

func (g *Glyph) SetOffset(y float64) { g.y = y }

func (g *Glyph) Offset() float64 { return g.y }

func (g *Glyph) Bounds() layout.Box {
	return layout.Box{
		Left:   float64(g.iv.Start()),
		Right:  float64(g.iv.Stop()),
		Top:    g.y,
		Bottom: g.y + g.height,
	}
}

// SetScale is a no-op: glyph geometry is scale independent.
func (g *Glyph) SetScale(float64) {}

func (g *Glyph) Stale() bool { return false }

func (g *Glyph) isUnit() {}
