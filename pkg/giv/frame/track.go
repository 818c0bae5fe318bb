package frame

import (
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

// Track is one horizontal band of features sharing a layout policy.
//
// The track caches its packed layout and recomputes it lazily: AddUnit,
// SetScale, SetBuoyancy and SetGaps only mark the cache dirty, and the next
// size query runs the engine.
type Track struct {
	label    string
	extent   int
	scale    float64
	buoyancy layout.Buoyancy
	hgap     float64
	vgap     float64
	units    []mosaic.Unit

	cached *trackLayout
	dirty  bool
}

type trackLayout struct {
	result layout.Result
	width  float64
}

// TrackOption configures a Track.
type TrackOption func(*Track)

// WithTrackBuoyancy sets the track's placement policy.
func WithTrackBuoyancy(b layout.Buoyancy) TrackOption {
	return func(t *Track) { t.buoyancy = b }
}

// WithTrackGaps sets the horizontal and vertical gaps between units.
func WithTrackGaps(hgap, vgap float64) TrackOption {
	return func(t *Track) { t.hgap, t.vgap = hgap, vgap }
}

// NewTrack returns an empty track over a sequence of length extent.
func NewTrack(label string, extent int, opts ...TrackOption) *Track {
	t := &Track{
		label:  label,
		extent: extent,
		scale:  1,
		hgap:   layout.DefaultHGap,
		vgap:   layout.DefaultVGap,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Label returns the track label.
func (t *Track) Label() string { return t.label }

// Extent returns the sequence length.
func (t *Track) Extent() int { return t.extent }

// Scale returns layout units per sequence position.
func (t *Track) Scale() float64 { return t.scale }

// Buoyancy returns the placement policy.
func (t *Track) Buoyancy() layout.Buoyancy { return t.buoyancy }

// Gaps returns the horizontal and vertical gaps.
func (t *Track) Gaps() (hgap, vgap float64) { return t.hgap, t.vgap }

// Units returns the top-level units in insertion order.
func (t *Track) Units() []mosaic.Unit { return t.units }

// AddUnit appends a glyph or group and invalidates the layout.
func (t *Track) AddUnit(u mosaic.Unit) {
	t.units = append(t.units, u)
	t.dirty = true
}

// SetScale changes the zoom level. Non-positive values mean 1.
func (t *Track) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale != t.scale {
		t.scale = scale
		t.dirty = true
	}
}

// SetBuoyancy changes the placement policy.
func (t *Track) SetBuoyancy(b layout.Buoyancy) {
	if b != t.buoyancy {
		t.buoyancy = b
		t.dirty = true
	}
}

// SetGaps changes the gaps between units.
func (t *Track) SetGaps(hgap, vgap float64) {
	t.hgap, t.vgap = hgap, vgap
	t.dirty = true
}

// Size returns the track's pixel width (extent times scale) and height.
func (t *Track) Size() (width, height float64) {
	l := t.ensure()
	return l.width, l.result.Height
}

// Height returns the packed height.
func (t *Track) Height() float64 { return t.ensure().result.Height }

// Layout returns the packed rows, laying the track out if needed.
func (t *Track) Layout() layout.Result { return t.ensure().result }

// Config returns the engine configuration the track lays out with.
func (t *Track) Config() layout.Config {
	return layout.Config{
		Extent:   t.extent,
		Scale:    t.scale,
		HGap:     t.hgap,
		VGap:     t.vgap,
		Buoyancy: t.buoyancy,
	}
}

// Stale reports whether the next size query will re-run the layout.
func (t *Track) Stale() bool {
	if t.dirty || t.cached == nil {
		return true
	}
	for _, u := range t.units {
		if !layout.IsVacant(u) && u.Stale() {
			return true
		}
	}
	return false
}

func (t *Track) ensure() *trackLayout {
	if !t.Stale() {
		return t.cached
	}

	units := make([]layout.Unit, len(t.units))
	for i, u := range t.units {
		u.SetScale(t.scale)
		units[i] = u
	}

	next := &trackLayout{
		result: layout.Tile(units, t.Config()),
		width:  float64(t.extent) * t.scale,
	}
	t.cached = next
	t.dirty = false
	return t.cached
}
