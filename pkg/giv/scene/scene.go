package scene

import (
	"fmt"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/colors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

// Kind identifies what a node draws.
type Kind int

const (
	KindGroupBackground Kind = iota
	KindBar
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindLabel:
		return "label"
	default:
		return "group"
	}
}

// MarshalText lets JSON sinks write kinds by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText reads a kind written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bar":
		*k = KindBar
	case "label":
		*k = KindLabel
	case "group":
		*k = KindGroupBackground
	default:
		return fmt.Errorf("unknown node kind %q", b)
	}
	return nil
}

// Node is one drawable rectangle or text run in pixels.
type Node struct {
	ID       int     `json:"id"`
	Kind     Kind    `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Text     string  `json:"text,omitempty"`
	Fill     string  `json:"fill,omitempty"`
	Stroke   string  `json:"stroke,omitempty"`
	Border   int     `json:"border,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Position string  `json:"position,omitempty"`
}

// Contains reports whether (x, y) lies inside the node, edges included.
func (n Node) Contains(x, y float64) bool {
	return x >= n.X && x <= n.X+n.W && y >= n.Y && y <= n.Y+n.H
}

// Ref names the source of a node.
type Ref struct {
	Panel int    `json:"panel"`
	Track int    `json:"track"`
	Path  string `json:"path"`
	Label string `json:"label,omitempty"`
	Start int    `json:"start"`
	Stop  int    `json:"stop"`
}

// Band is the vertical extent of one track.
type Band struct {
	Panel      int     `json:"panel"`
	Track      int     `json:"track"`
	PanelLabel string  `json:"panelLabel,omitempty"`
	Label      string  `json:"label,omitempty"`
	Y          float64 `json:"y"`
	H          float64 `json:"h"`
	Rows       int     `json:"rows"`
}

// Scene is a frame flattened into paint order.
type Scene struct {
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Extent    int         `json:"extent"`
	Scale     float64     `json:"scale"`
	Nodes     []Node      `json:"nodes"`
	Bands     []Band      `json:"tracks"`
	Relations map[int]Ref `json:"relations"`
}

// Build lays out f if needed and flattens it. Group backgrounds are emitted
// before their children so later nodes paint on top.
func Build(f *frame.Frame) *Scene {
	w, h := f.Size()
	s := &Scene{
		Width:     w,
		Height:    h,
		Extent:    f.Extent(),
		Scale:     f.Scale(),
		Relations: make(map[int]Ref),
	}

	panelY := f.PanelOffsets()
	for pi, p := range f.Panels() {
		trackY := p.TrackOffsets()
		for ti, t := range p.Tracks() {
			y := panelY[pi] + trackY[ti]
			s.Bands = append(s.Bands, Band{
				Panel:      pi,
				Track:      ti,
				PanelLabel: p.Label(),
				Label:      t.Label(),
				Y:          y,
				H:          t.Height(),
				Rows:       len(t.Layout().Rows),
			})
			b := builder{scene: s, scale: t.Scale(), panel: pi, track: ti}
			b.units(t.Units(), fmt.Sprintf("frame/panel-group[%d]/track[%d]", pi+1, ti+1), y)
		}
	}
	return s
}

type builder struct {
	scene *Scene
	scale float64
	panel int
	track int
}

func (b *builder) add(n Node, ref Ref) {
	n.ID = len(b.scene.Nodes)
	b.scene.Nodes = append(b.scene.Nodes, n)
	b.scene.Relations[n.ID] = ref
}

// units emits units whose offsets are relative to originY.
func (b *builder) units(units []mosaic.Unit, path string, originY float64) {
	counts := map[string]int{}
	for _, u := range units {
		switch u := u.(type) {
		case *mosaic.Glyph:
			counts["glyph"]++
			b.glyph(u, fmt.Sprintf("%s/glyph[%d]", path, counts["glyph"]), originY+u.Offset())
		case *mosaic.Group:
			counts["group"]++
			b.group(u, fmt.Sprintf("%s/group[%d]", path, counts["group"]), originY+u.Offset())
		}
	}
}

func (b *builder) x(start, stop int) (x, w float64) {
	x = float64(start-1) * b.scale
	return x, float64(max(stop-start+1, 1)) * b.scale
}

func (b *builder) group(g *mosaic.Group, path string, top float64) {
	span := g.Span()
	ref := Ref{Panel: b.panel, Track: b.track, Path: path, Label: g.Label(), Start: span.Start, Stop: span.Stop}
	if !g.Vacant() {
		x, w := b.x(span.Start, span.Stop)
		n := Node{Kind: KindGroupBackground, X: x, Y: top, W: w, H: g.Height(), Text: g.Label()}
		if g.Color() != "" {
			n.Fill = colors.Resolve(g.Color()).Hex()
		}
		b.add(n, ref)
	}
	b.units(g.Units(), path, top)
}

func (b *builder) glyph(g *mosaic.Glyph, path string, top float64) {
	iv := g.Interval()
	ref := Ref{Panel: b.panel, Track: b.track, Path: path, Label: iv.Label(), Start: iv.Start(), Stop: iv.Stop()}
	x, w := b.x(iv.Start(), iv.Stop())

	bar := g.Bar()
	shade := colors.Resolve(bar.Color)
	b.add(Node{
		Kind:   KindBar,
		X:      x,
		Y:      top + bar.Top,
		W:      w,
		H:      bar.Height,
		Fill:   shade.Hex(),
		Stroke: shade.DarkHex(),
		Border: bar.Border,
	}, ref)

	lbl, ok := g.LabelBox()
	if !ok {
		return
	}
	lx := x
	if lbl.Position == feature.LabelInside {
		lx = x + (w-lbl.Width)/2
	}
	b.add(Node{
		Kind:     KindLabel,
		X:        lx,
		Y:        top + lbl.Top,
		W:        lbl.Width,
		H:        lbl.Height,
		Text:     lbl.Text,
		Fill:     colors.Resolve(lbl.Color).Hex(),
		FontSize: lbl.Size,
		Position: lbl.Position.String(),
	}, ref)
}

// HitTest returns the topmost node containing (x, y) and its source. Bars
// and labels win over group backgrounds.
func (s *Scene) HitTest(x, y float64) (Node, Ref, bool) {
	var (
		best  Node
		found bool
	)
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		n := s.Nodes[i]
		if !n.Contains(x, y) {
			continue
		}
		if n.Kind != KindGroupBackground {
			return n, s.Relations[n.ID], true
		}
		if !found {
			best, found = n, true
		}
	}
	if !found {
		return Node{}, Ref{}, false
	}
	return best, s.Relations[best.ID], true
}

// Count returns the number of nodes of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, node := range s.Nodes {
		if node.Kind == k {
			n++
		}
	}
	return n
}
