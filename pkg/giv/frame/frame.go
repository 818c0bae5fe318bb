package frame

import (
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

// DefaultPanelGap separates panel groups within a frame.
const DefaultPanelGap = 8.0

// Frame is the root of a layout tree: panel groups over one sequence.
// Every track in a frame uses the frame's extent and shares its scale.
type Frame struct {
	extent   int
	scale    float64
	panelGap float64
	panels   []*PanelGroup
}

// New returns an empty frame over a sequence of length extent.
func New(extent int) *Frame {
	return &Frame{extent: extent, scale: 1, panelGap: DefaultPanelGap}
}

// Extent returns the sequence length.
func (f *Frame) Extent() int { return f.extent }

// Scale returns the shared zoom level.
func (f *Frame) Scale() float64 { return f.scale }

// PanelGap returns the space between panel groups.
func (f *Frame) PanelGap() float64 { return f.panelGap }

// SetPanelGap changes the space between panel groups. Negative values mean 0.
func (f *Frame) SetPanelGap(gap float64) { f.panelGap = max(gap, 0) }

// Panels returns the panel groups top to bottom.
func (f *Frame) Panels() []*PanelGroup { return f.panels }

// NewTrack returns a track sized to this frame's extent and scale.
func (f *Frame) NewTrack(label string, opts ...TrackOption) *Track {
	t := NewTrack(label, f.extent, opts...)
	t.SetScale(f.scale)
	return t
}

// AddPanelGroup appends a panel group. Every track in it must use the
// frame's extent.
func (f *Frame) AddPanelGroup(p *PanelGroup) error {
	for _, t := range p.tracks {
		if t.extent != f.extent {
			return errors.New(errors.ErrCodeExtentMismatch,
				"track %q has extent %d, frame has %d", t.label, t.extent, f.extent)
		}
		t.SetScale(f.scale)
	}
	f.panels = append(f.panels, p)
	return nil
}

// Validate checks the cross-track invariants, including tracks added to a
// panel after the panel joined the frame.
func (f *Frame) Validate() error {
	if err := errors.ValidateExtent(f.extent); err != nil {
		return err
	}
	for _, t := range f.Tracks() {
		if t.extent != f.extent {
			return errors.New(errors.ErrCodeExtentMismatch,
				"track %q has extent %d, frame has %d", t.label, t.extent, f.extent)
		}
	}
	return nil
}

// SetScale sets the zoom level on the frame and every track. Tracks lay
// themselves out again on the next size query.
func (f *Frame) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	f.scale = scale
	for _, t := range f.Tracks() {
		t.SetScale(scale)
	}
}

// Tracks returns every track in panel order.
func (f *Frame) Tracks() []*Track {
	var out []*Track
	for _, p := range f.panels {
		out = append(out, p.tracks...)
	}
	return out
}

// Size returns the total pixel size: extent times scale wide, and the sum
// of panel heights plus panel gaps tall.
func (f *Frame) Size() (width, height float64) {
	return float64(f.extent) * f.scale, f.height()
}

func (f *Frame) height() float64 {
	h := 0.0
	for i, p := range f.panels {
		if i > 0 {
			h += f.panelGap
		}
		h += p.Height()
	}
	return h
}

// PanelOffsets returns the y offset of each panel group.
func (f *Frame) PanelOffsets() []float64 {
	offs := make([]float64, len(f.panels))
	y := 0.0
	for i, p := range f.panels {
		if i > 0 {
			y += f.panelGap
		}
		offs[i] = y
		y += p.Height()
	}
	return offs
}

// Stats summarizes the size of a layout tree.
type Stats struct {
	Panels int
	Tracks int
	Glyphs int
	Groups int
	Rows   int
}

// Stats counts the tree's elements. Rows forces a layout of every track.
func (f *Frame) Stats() Stats {
	s := Stats{Panels: len(f.panels)}
	for _, t := range f.Tracks() {
		s.Tracks++
		s.Rows += len(t.Layout().Rows)
		for _, u := range t.units {
			mosaic.Walk(u, func(u mosaic.Unit, _ int) bool {
				switch u.(type) {
				case *mosaic.Glyph:
					s.Glyphs++
				case *mosaic.Group:
					s.Groups++
				}
				return true
			})
		}
	}
	return s
}
