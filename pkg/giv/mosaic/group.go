package mosaic

import "github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithBuoyancy sets the placement policy for the group's children.
func WithBuoyancy(b layout.Buoyancy) GroupOption {
	return func(g *Group) { g.buoyancy = b }
}

// WithGaps sets the horizontal and vertical gaps between children.
func WithGaps(hgap, vgap float64) GroupOption {
	return func(g *Group) { g.hgap, g.vgap = hgap, vgap }
}

// WithColor sets the background color name drawn behind the children.
func WithColor(name string) GroupOption {
	return func(g *Group) { g.color = name }
}

// Group is an ordered container of units laid out as a single unit.
type Group struct {
	label    string
	color    string
	buoyancy layout.Buoyancy
	hgap     float64
	vgap     float64
	children []Unit

	scale float64
	y     float64

	cached *groupLayout
	dirty  bool
}

type groupLayout struct {
	result layout.Result
	span   layout.Span
	box    layout.Box
}

// NewGroup returns an empty group. Gaps default to the layout defaults.
func NewGroup(label string, opts ...GroupOption) *Group {
	g := &Group{
		label: label,
		hgap:  layout.DefaultHGap,
		vgap:  layout.DefaultVGap,
		scale: 1,
		dirty: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddUnit appends a child and invalidates the cached layout.
func (g *Group) AddUnit(u Unit) {
	g.children = append(g.children, u)
	g.dirty = true
}

// Units returns the children in insertion order.
func (g *Group) Units() []Unit { return g.children }

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }

// Color returns the background color name, possibly empty.
func (g *Group) Color() string { return g.color }

// Buoyancy returns the placement policy for the children.
func (g *Group) Buoyancy() layout.Buoyancy { return g.buoyancy }

// Gaps returns the horizontal and vertical gaps between children.
func (g *Group) Gaps() (hgap, vgap float64) { return g.hgap, g.vgap }

// Layout packs the children if needed and returns the result.
func (g *Group) Layout() layout.Result {
	return g.ensure().result
}

func (g *Group) Label() string { return g.label }

func (g *Group) Span() layout.Span { return g.ensure().span }

func (g *Group) Height() float64 { return g.ensure().result.Height }

func (g *Group) SetOffset(y float64) { g.y = y }

func (g *Group) Offset() float64 { return g.y }

// Bounds returns the union of the children's boxes in the parent's
// coordinates. A vacant group has a zero box.
func (g *Group) Bounds() layout.Box {
	if g.Vacant() {
		return layout.Box{}
	}
	return g.ensure().box.Translate(0, g.y)
}

// Vacant reports whether the group holds no glyph, directly or through
// nested groups. Vacant groups are skipped by the layout of their parent.
func (g *Group) Vacant() bool {
	for _, c := range g.children {
		if !layout.IsVacant(c) {
			return false
		}
	}
	return true
}

func (g *Group) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale != g.scale {
		g.scale = scale
		g.dirty = true
	}
}

func (g *Group) Stale() bool {
	if g.dirty || g.cached == nil {
		return true
	}
	for _, c := range g.children {
		// Vacant children are never laid out, so their caches stay cold.
		if !layout.IsVacant(c) && c.Stale() {
			return true
		}
	}
	return false
}

func (g *Group) isUnit() {}

// ensure recomputes the cached layout when the group or any descendant
// changed. The new layout is built completely before it replaces the old.
func (g *Group) ensure() *groupLayout {
	if !g.Stale() {
		return g.cached
	}

	units := make([]layout.Unit, len(g.children))
	for i, c := range g.children {
		c.SetScale(g.scale)
		units[i] = c
	}

	next := &groupLayout{
		result: layout.Tile(units, layout.Config{
			Scale:    g.scale,
			HGap:     g.hgap,
			VGap:     g.vgap,
			Buoyancy: g.buoyancy,
		}),
	}
	filled := false
	for _, c := range g.children {
		if layout.IsVacant(c) {
			continue
		}
		s, box := c.Span(), c.Bounds()
		if !filled {
			next.span, next.box = s, box
			filled = true
			continue
		}
		next.span.Start = min(next.span.Start, s.Start)
		next.span.Stop = max(next.span.Stop, s.Stop)
		next.box = next.box.Union(box)
	}

	g.cached = next
	g.dirty = false
	return g.cached
}
