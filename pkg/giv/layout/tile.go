package layout

import "slices"

// Default gaps in layout units.
const (
	DefaultHGap = 2.0
	DefaultVGap = 2.0
)

// Span is a closed range [Start, Stop] of sequence positions.
type Span struct {
	Start, Stop int
}

// Width returns the number of positions covered, at least 1.
func (s Span) Width() int {
	if s.Stop < s.Start {
		return 1
	}
	return s.Stop - s.Start + 1
}

// Unit is anything the engine can place: a fixed horizontal span, a height,
// and a settable vertical offset.
type Unit interface {
	Span() Span
	Height() float64
	SetOffset(y float64)
}

// Vacant is implemented by units that can hold nothing to draw, such as a
// group without glyphs. A vacant unit gets offset 0, occupies no span and
// joins no row.
type Vacant interface {
	Vacant() bool
}

// IsVacant reports whether u is a Vacant unit that is currently empty.
func IsVacant(u Unit) bool {
	v, ok := u.(Vacant)
	return ok && v.Vacant()
}

// Config holds the tuning inputs of one layout pass.
type Config struct {
	// Extent is the sequence length. It is informational: spans beyond it
	// are placed unclamped.
	Extent int

	// Scale is layout units per sequence position. Values <= 0 mean 1.
	Scale float64

	// HGap is the minimum horizontal clearance between units in a row.
	HGap float64

	// VGap is the vertical space between rows.
	VGap float64

	Buoyancy Buoyancy
}

func (c Config) normalized() Config {
	if c.Scale <= 0 {
		c.Scale = 1
	}
	c.HGap = max(c.HGap, 0)
	c.VGap = max(c.VGap, 0)
	return c
}

// Project maps a span to its half-open layout range [lo, hi).
func (c Config) Project(s Span) (lo, hi float64) {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	lo = float64(s.Start-1) * scale
	return lo, lo + float64(s.Width())*scale
}

// Row is one packed row in visual order.
type Row struct {
	Y      float64
	Height float64
	Units  []int
}

// Result describes a completed layout pass.
type Result struct {
	Height float64
	// Rows lists rows top to bottom; each row lists unit indices in the
	// order they were placed.
	Rows []Row
}

// RowOf returns the visual row index holding unit i, or -1.
func (r Result) RowOf(i int) int {
	for n, row := range r.Rows {
		if slices.Contains(row.Units, i) {
			return n
		}
	}
	return -1
}

// Tile assigns a vertical offset to every unit and returns the packed rows.
// Units are visited in slice order; see the package documentation for the
// placement rules of each Buoyancy.
func Tile(units []Unit, cfg Config) Result {
	cfg = cfg.normalized()

	var rows []*row
	if cfg.Buoyancy.Stacked() {
		for i, u := range units {
			if IsVacant(u) {
				u.SetOffset(0)
				continue
			}
			r := &row{}
			lo, hi := cfg.Project(u.Span())
			r.occupy(i, lo, hi, u.Height())
			rows = append(rows, r)
		}
	} else {
		rows = firstFit(units, cfg)
	}

	// Rows were created in scan order. Sinking and StackUp grow upward, so
	// their visual order is the reverse.
	if cfg.Buoyancy == Sinking || cfg.Buoyancy == StackUp {
		slices.Reverse(rows)
	}

	res := Result{Rows: make([]Row, len(rows))}
	y := 0.0
	for n, r := range rows {
		if n > 0 {
			y += cfg.VGap
		}
		for _, i := range r.units {
			units[i].SetOffset(y)
		}
		res.Rows[n] = Row{Y: y, Height: r.height, Units: r.units}
		y += r.height
	}
	res.Height = max(y, 0)
	return res
}

// firstFit places each unit in the first scanned row it does not collide
// with, opening a new row when none fits.
func firstFit(units []Unit, cfg Config) []*row {
	var rows []*row
	for i, u := range units {
		if IsVacant(u) {
			u.SetOffset(0)
			continue
		}
		lo, hi := cfg.Project(u.Span())
		h := u.Height()

		// Widening both ranges by HGap/2 equals widening the query by HGap.
		qlo, qhi := lo-cfg.HGap, hi+cfg.HGap

		placed := false
		for _, r := range rows {
			if !r.collides(qlo, qhi) {
				r.occupy(i, lo, hi, h)
				placed = true
				break
			}
		}
		if !placed {
			r := &row{}
			r.occupy(i, lo, hi, h)
			rows = append(rows, r)
		}
	}
	return rows
}
