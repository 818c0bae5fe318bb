// Package frame provides the containers above the composite model:
// [Track], [PanelGroup] and the root [Frame].
//
// A Frame covers one sequence of length extent and stacks panel groups,
// each of which stacks tracks. Tracks own their units and lay them out
// lazily with the tile engine; containers derive their heights from the
// tracks, so resizing flows bottom-up:
//
//	f := frame.New(48502)
//	genes := frame.NewPanelGroup("genes")
//	t := f.NewTrack("forward", frame.WithTrackBuoyancy(layout.Sinking))
//	t.AddUnit(mosaic.NewGlyph(feature.NewInterval("cI", 37227, 37940), feature.DefaultStyle()))
//	genes.AddTrack(t)
//	_ = f.AddPanelGroup(genes)
//
//	f.SetScale(0.02)
//	w, h := f.Size() // lays out every track at the new scale
package frame
