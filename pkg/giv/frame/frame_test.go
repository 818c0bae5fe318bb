package frame

import (
	"math/rand"
	"testing"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

func bar(label string, start, stop, height int) *mosaic.Glyph {
	s := feature.DefaultStyle()
	s.BarHeight = height
	s.LabelPosition = feature.LabelHidden
	return mosaic.NewGlyph(feature.NewInterval(label, start, stop), s)
}

func TestTrackLazyLayout(t *testing.T) {
	tr := NewTrack("genes", 100, WithTrackGaps(2, 3))
	if !tr.Stale() {
		t.Error("new track should be stale")
	}

	tr.AddUnit(bar("a", 10, 30, 12))
	tr.AddUnit(bar("b", 20, 40, 12))
	tr.AddUnit(bar("c", 35, 50, 12))

	w, h := tr.Size()
	if w != 100 || h != 27 {
		t.Errorf("Size() = %vx%v, want 100x27", w, h)
	}
	if tr.Stale() {
		t.Error("track should not be stale after Size()")
	}
}

func TestTrackSetScaleInvalidates(t *testing.T) {
	tr := NewTrack("t", 20, WithTrackGaps(4, 0))
	tr.AddUnit(bar("a", 1, 10, 5))
	tr.AddUnit(bar("b", 12, 20, 5))

	if got := tr.Height(); got != 10 {
		t.Fatalf("Height() = %v, want 10", got)
	}

	tr.SetScale(10)
	if !tr.Stale() {
		t.Error("SetScale should invalidate the layout")
	}
	w, h := tr.Size()
	if w != 200 || h != 5 {
		t.Errorf("Size() after zoom = %vx%v, want 200x5", w, h)
	}

	tr.SetScale(-1)
	if tr.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1 for non-positive input", tr.Scale())
	}
}

func TestTrackSetBuoyancy(t *testing.T) {
	tr := NewTrack("t", 1000)
	for i := 0; i < 4; i++ {
		tr.AddUnit(bar("", i*100+1, i*100+10, 5))
	}
	if got := len(tr.Layout().Rows); got != 1 {
		t.Errorf("floating rows = %d, want 1", got)
	}
	tr.SetBuoyancy(layout.StackUp)
	if got := len(tr.Layout().Rows); got != 4 {
		t.Errorf("stackUp rows = %d, want 4", got)
	}
}

func TestTrackHeightMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	tr := NewTrack("t", 2000)
	prev := 0.0
	for i := 0; i < 80; i++ {
		start := 1 + r.Intn(1900)
		tr.AddUnit(bar("", start, start+r.Intn(200), 4+r.Intn(10)))
		h := tr.Height()
		if h < prev {
			t.Fatalf("height decreased from %v to %v after unit %d", prev, h, i)
		}
		prev = h
	}
}

func TestTrackSeesNestedChanges(t *testing.T) {
	tr := NewTrack("t", 100, WithTrackGaps(0, 0))
	g := mosaic.NewGroup("g", mosaic.WithGaps(0, 0))
	g.AddUnit(bar("", 1, 10, 10))
	tr.AddUnit(g)

	if got := tr.Height(); got != 10 {
		t.Fatalf("Height() = %v, want 10", got)
	}
	g.AddUnit(bar("", 5, 15, 10))
	if got := tr.Height(); got != 20 {
		t.Errorf("Height() after nested AddUnit = %v, want 20", got)
	}
}

func TestPanelGroupHeight(t *testing.T) {
	p := NewPanelGroup("genes")
	p.SetTrackGap(5)

	a := NewTrack("a", 100, WithTrackGaps(0, 0))
	a.AddUnit(bar("", 1, 10, 10))
	b := NewTrack("b", 100, WithTrackGaps(0, 0))
	b.AddUnit(bar("", 1, 10, 7))
	empty := NewTrack("empty", 100)

	p.AddTrack(a)
	p.AddTrack(b)
	p.AddTrack(empty)

	if got := p.Height(); got != 10+5+7+5+0 {
		t.Errorf("Height() = %v, want 27", got)
	}
	offs := p.TrackOffsets()
	if offs[0] != 0 || offs[1] != 15 || offs[2] != 27 {
		t.Errorf("TrackOffsets() = %v, want [0 15 27]", offs)
	}
}

func TestFrameSizeAndScale(t *testing.T) {
	f := New(500)
	f.SetPanelGap(10)

	p1 := NewPanelGroup("one")
	t1 := f.NewTrack("t1", WithTrackGaps(0, 0))
	t1.AddUnit(bar("", 1, 100, 10))
	p1.AddTrack(t1)

	p2 := NewPanelGroup("two")
	t2 := f.NewTrack("t2", WithTrackGaps(0, 0))
	t2.AddUnit(bar("", 1, 100, 6))
	t2.AddUnit(bar("", 50, 150, 6))
	p2.AddTrack(t2)

	if err := f.AddPanelGroup(p1); err != nil {
		t.Fatal(err)
	}
	if err := f.AddPanelGroup(p2); err != nil {
		t.Fatal(err)
	}

	w, h := f.Size()
	if w != 500 || h != 10+10+12 {
		t.Errorf("Size() = %vx%v, want 500x32", w, h)
	}

	f.SetScale(2)
	for _, tr := range f.Tracks() {
		if tr.Scale() != 2 {
			t.Errorf("track %s scale = %v, want 2", tr.Label(), tr.Scale())
		}
	}
	if w, _ := f.Size(); w != 1000 {
		t.Errorf("width after SetScale(2) = %v, want 1000", w)
	}

	if offs := f.PanelOffsets(); offs[1] != 20 {
		t.Errorf("PanelOffsets() = %v, want second at 20", offs)
	}
}

func TestFrameExtentMismatch(t *testing.T) {
	f := New(100)
	p := NewPanelGroup("p")
	p.AddTrack(NewTrack("wrong", 200))

	err := f.AddPanelGroup(p)
	if !errors.Is(err, errors.ErrCodeExtentMismatch) {
		t.Errorf("AddPanelGroup() error = %v, want %s", err, errors.ErrCodeExtentMismatch)
	}

	ok := NewPanelGroup("ok")
	if err := f.AddPanelGroup(ok); err != nil {
		t.Fatal(err)
	}
	ok.AddTrack(NewTrack("late", 50))
	if err := f.Validate(); !errors.Is(err, errors.ErrCodeExtentMismatch) {
		t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeExtentMismatch)
	}
}

func TestTrackEmptyGroup(t *testing.T) {
	tr := NewTrack("t", 100, WithTrackGaps(2, 5))
	tr.AddUnit(bar("a", 1, 20, 10))
	tr.AddUnit(mosaic.NewGroup("empty"))

	if got, rows := tr.Height(), len(tr.Layout().Rows); got != 10 || rows != 1 {
		t.Errorf("Height() = %v with %d rows, want 10 with 1 row", got, rows)
	}
	if tr.Stale() {
		t.Error("Stale() = true after layout")
	}
}

func TestFrameZeroExtent(t *testing.T) {
	f := New(0)
	p := NewPanelGroup("empty")
	p.AddTrack(f.NewTrack("t"))
	if err := f.AddPanelGroup(p); err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if w, h := f.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = (%v, %v), want (0, 0)", w, h)
	}

	if err := New(-1).Validate(); !errors.Is(err, errors.ErrCodeMissingExtent) {
		t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeMissingExtent)
	}
}

func TestFrameStats(t *testing.T) {
	f := New(100)
	p := NewPanelGroup("p")
	tr := f.NewTrack("t")
	g := mosaic.NewGroup("g")
	g.AddUnit(bar("a", 1, 10, 5))
	g.AddUnit(bar("b", 20, 30, 5))
	tr.AddUnit(g)
	tr.AddUnit(bar("c", 5, 50, 5))
	p.AddTrack(tr)
	_ = f.AddPanelGroup(p)

	s := f.Stats()
	if s.Panels != 1 || s.Tracks != 1 || s.Glyphs != 3 || s.Groups != 1 || s.Rows != 2 {
		t.Errorf("Stats() = %+v", s)
	}
}
