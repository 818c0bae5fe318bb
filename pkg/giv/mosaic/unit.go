package mosaic

import "github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"

// Unit is a placeable element of a track: a *Glyph or a *Group.
type Unit interface {
	layout.Unit

	// Label returns the display label, possibly empty.
	Label() string

	// Offset returns the vertical offset assigned by the last layout.
	Offset() float64

	// Bounds returns the bounding box in the parent's coordinates: x in
	// sequence positions, y in layout units.
	Bounds() layout.Box

	// SetScale sets the layout units per sequence position used when the
	// unit packs its own children.
	SetScale(scale float64)

	// Stale reports whether a cached layout inside the unit is out of date.
	Stale() bool

	isUnit()
}

var (
	_ Unit = (*Glyph)(nil)
	_ Unit = (*Group)(nil)
)

// Walk visits u and every unit below it in pre-order. Returning false from
// fn skips the children of that unit.
func Walk(u Unit, fn func(u Unit, depth int) bool) {
	walk(u, 0, fn)
}

func walk(u Unit, depth int, fn func(Unit, int) bool) {
	if !fn(u, depth) {
		return
	}
	if g, ok := u.(*Group); ok {
		for _, c := range g.children {
			walk(c, depth+1, fn)
		}
	}
}

// CountGlyphs returns the number of glyphs in units, including nested ones.
func CountGlyphs(units []Unit) int {
	n := 0
	for _, u := range units {
		Walk(u, func(u Unit, _ int) bool {
			if _, ok := u.(*Glyph); ok {
				n++
			}
			return true
		})
	}
	return n
}
