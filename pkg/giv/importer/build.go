package importer

import (
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

// Bar height of the transcript line drawn under a coding region.
const transcriptBarHeight = 3

// BuildOptions controls how records become a frame.
type BuildOptions struct {
	// Panel labels the single panel group.
	Panel string

	// Region restricts and rebases the frame. When From is set, position
	// From becomes position 1 and the extent is To-From+1.
	Region Filter

	// SplitStrands puts forward features on a floating track and reverse
	// features on a sinking one, so the two strands grow away from each
	// other.
	SplitStrands bool

	// Style is the base glyph style. Zero means feature.DefaultStyle.
	Style feature.Style
}

// Build creates a frame from records. Records outside the region are
// skipped; records straddling its edges are clipped.
func Build(records []Record, opts BuildOptions) (*frame.Frame, error) {
	style := opts.Style
	if style == (feature.Style{}) {
		style = feature.DefaultStyle()
	}

	records = opts.Region.Apply(records)
	offset := 0
	if opts.Region.From > 0 {
		offset = opts.Region.From - 1
	}

	extent := 0
	if opts.Region.To > 0 {
		extent = opts.Region.To - offset
	} else {
		for _, r := range records {
			extent = max(extent, r.Stop-offset)
		}
	}
	if extent <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no features to import")
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	SortByStart(sorted)

	f := frame.New(extent)
	panel := frame.NewPanelGroup(opts.Panel)

	type lane struct {
		track *frame.Track
		used  bool
	}
	var lanes map[Strand]*lane
	if opts.SplitStrands {
		lanes = map[Strand]*lane{
			StrandForward: {track: f.NewTrack("forward")},
			StrandReverse: {track: f.NewTrack("reverse", frame.WithTrackBuoyancy(layout.Sinking))},
			StrandNone:    {track: f.NewTrack("unstranded")},
		}
	} else {
		all := &lane{track: f.NewTrack("features")}
		lanes = map[Strand]*lane{StrandForward: all, StrandReverse: all, StrandNone: all}
	}

	for _, r := range sorted {
		u, ok := unit(r, offset, extent, style)
		if !ok {
			continue
		}
		l := lanes[r.Strand]
		l.track.AddUnit(u)
		l.used = true
	}

	seen := map[*frame.Track]bool{}
	for _, s := range []Strand{StrandForward, StrandReverse, StrandNone} {
		l := lanes[s]
		if seen[l.track] || (!l.used && opts.SplitStrands) {
			continue
		}
		seen[l.track] = true
		panel.AddTrack(l.track)
	}

	if err := f.AddPanelGroup(panel); err != nil {
		return nil, err
	}
	return f, nil
}

func clip(start, stop, offset, extent int) (int, int, bool) {
	start, stop = max(start-offset, 1), min(stop-offset, extent)
	return start, stop, start <= stop
}

func unit(r Record, offset, extent int, style feature.Style) (mosaic.Unit, bool) {
	start, stop, ok := clip(r.Start, r.Stop, offset, extent)
	if !ok {
		return nil, false
	}
	if !r.HasCDS() {
		return mosaic.NewGlyph(feature.NewInterval(r.Label, start, stop), style), true
	}

	cdsStart, cdsStop, ok := clip(r.CDSStart, r.CDSStop, offset, extent)
	if !ok {
		return mosaic.NewGlyph(feature.NewInterval(r.Label, start, stop), style), true
	}

	line := style
	line.BarHeight = transcriptBarHeight
	line.BarBorder = 0
	line.LabelPosition = feature.LabelHidden

	g := mosaic.NewGroup(r.Label, mosaic.WithBuoyancy(layout.StackDown), mosaic.WithGaps(0, 0))
	g.AddUnit(mosaic.NewGlyph(feature.NewInterval(r.Label, start, stop), line))
	g.AddUnit(mosaic.NewGlyph(feature.NewInterval(r.Label, cdsStart, cdsStop), style))
	return g, true
}
