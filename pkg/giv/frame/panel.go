package frame

// DefaultTrackGap separates tracks within a panel group.
const DefaultTrackGap = 4.0

// PanelGroup is an ordered, labeled stack of tracks.
type PanelGroup struct {
	label    string
	trackGap float64
	tracks   []*Track
}

// NewPanelGroup returns an empty panel group.
func NewPanelGroup(label string) *PanelGroup {
	return &PanelGroup{label: label, trackGap: DefaultTrackGap}
}

// Label returns the panel label.
func (p *PanelGroup) Label() string { return p.label }

// TrackGap returns the space between tracks.
func (p *PanelGroup) TrackGap() float64 { return p.trackGap }

// SetTrackGap changes the space between tracks. Negative values mean 0.
func (p *PanelGroup) SetTrackGap(gap float64) { p.trackGap = max(gap, 0) }

// Tracks returns the tracks top to bottom.
func (p *PanelGroup) Tracks() []*Track { return p.tracks }

// AddTrack appends a track.
func (p *PanelGroup) AddTrack(t *Track) { p.tracks = append(p.tracks, t) }

// Height returns the sum of track heights plus the gaps between them.
func (p *PanelGroup) Height() float64 {
	h := 0.0
	for i, t := range p.tracks {
		if i > 0 {
			h += p.trackGap
		}
		h += t.Height()
	}
	return h
}

// TrackOffsets returns the y offset of each track within the panel.
func (p *PanelGroup) TrackOffsets() []float64 {
	offs := make([]float64, len(p.tracks))
	y := 0.0
	for i, t := range p.tracks {
		if i > 0 {
			y += p.trackGap
		}
		offs[i] = y
		y += t.Height()
	}
	return offs
}
