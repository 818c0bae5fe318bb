package layout

import "github.com/biogo/store/interval"

// pos is a layout-space coordinate usable as an interval tree key.
type pos float64

func (p pos) Compare(c interval.Comparable) int {
	q := c.(pos)
	switch {
	case p < q:
		return -1
	case p > q:
		return 1
	}
	return 0
}

// segment is a half-open occupied range [lo, hi) within a row.
type segment struct {
	lo, hi pos
	id     uintptr
}

func (s segment) Overlap(b interval.Range) bool {
	lo, hi := b.Start().(pos), b.End().(pos)
	return s.hi > lo && s.lo < hi
}
func (s segment) ID() uintptr                  { return s.id }
func (s segment) Start() interval.Comparable   { return s.lo }
func (s segment) End() interval.Comparable     { return s.hi }
func (s segment) NewMutable() interval.Mutable { return &mutableSegment{s.lo, s.hi} }

type mutableSegment struct{ lo, hi pos }

func (m *mutableSegment) Start() interval.Comparable     { return m.lo }
func (m *mutableSegment) End() interval.Comparable       { return m.hi }
func (m *mutableSegment) SetStart(c interval.Comparable) { m.lo = c.(pos) }
func (m *mutableSegment) SetEnd(c interval.Comparable)   { m.hi = c.(pos) }

// row accumulates units and indexes the ranges they occupy.
type row struct {
	units  []int
	height float64
	tree   interval.Tree
}

// collides reports whether [lo, hi) intersects any occupied range.
func (r *row) collides(lo, hi float64) bool {
	if r.tree.Len() == 0 {
		return false
	}
	return len(r.tree.Get(segment{lo: pos(lo), hi: pos(hi)})) > 0
}

// occupy records unit i over [lo, hi) with height h.
func (r *row) occupy(i int, lo, hi, h float64) {
	r.units = append(r.units, i)
	r.height = max(r.height, h)
	if hi > lo {
		// Ranges are validated above; Insert only rejects lo > hi.
		_ = r.tree.Insert(segment{lo: pos(lo), hi: pos(hi), id: uintptr(i)}, false)
	}
}
