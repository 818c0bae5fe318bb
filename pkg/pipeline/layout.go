package pipeline

import (
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
)

// ApplyOverrides replaces document placement values with the ones set in
// opts. Each setter marks only the affected caches stale.
func ApplyOverrides(f *frame.Frame, opts Options) {
	if opts.PanelGap != nil {
		f.SetPanelGap(*opts.PanelGap)
	}
	for _, p := range f.Panels() {
		if opts.TrackGap != nil {
			p.SetTrackGap(*opts.TrackGap)
		}
		for _, t := range p.Tracks() {
			if opts.HGap == nil && opts.VGap == nil {
				continue
			}
			hgap, vgap := t.Gaps()
			if opts.HGap != nil {
				hgap = *opts.HGap
			}
			if opts.VGap != nil {
				vgap = *opts.VGap
			}
			t.SetGaps(hgap, vgap)
		}
	}
	if opts.Scale > 0 {
		f.SetScale(opts.Scale)
	}
}

// Layout tiles every track of f and flattens the result.
func Layout(f *frame.Frame) *scene.Scene {
	return scene.Build(f)
}
