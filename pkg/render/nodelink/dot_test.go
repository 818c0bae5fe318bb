package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

func sample() *frame.Frame {
	f := frame.New(200)
	p := frame.NewPanelGroup("genes")
	t := f.NewTrack("forward")
	g := mosaic.NewGroup("operon")
	g.AddUnit(mosaic.NewGlyph(feature.NewInterval("lacZ", 10, 90), feature.DefaultStyle()))
	t.AddUnit(g)
	t.AddUnit(mosaic.NewGlyph(feature.NewInterval("", 120, 150), feature.DefaultStyle()))
	p.AddTrack(t)
	_ = f.AddPanelGroup(p)
	return f
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		`"frame" -> "frame/panel-group[1]"`,
		`"frame/panel-group[1]" -> "frame/panel-group[1]/track[1]"`,
		`"frame/panel-group[1]/track[1]" -> "frame/panel-group[1]/track[1]/group[1]"`,
		`"frame/panel-group[1]/track[1]/group[1]" -> "frame/panel-group[1]/track[1]/group[1]/glyph[1]"`,
		`"frame/panel-group[1]/track[1]" -> "frame/panel-group[1]/track[1]/glyph[1]"`,
		`label="lacZ"`,
		`label="glyph"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
	if strings.Contains(dot, "rows") {
		t.Error("ToDOT() without Detailed should not include row counts")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})
	for _, want := range []string{`10..90`, `rows 1`, `extent 200`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT(Detailed) missing %q", want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Error("RenderSVG() should normalize the svg tag")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="4pt" viewBox="0.00 0.00 8.00 4.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8.00 4.00" width="8" height="4"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
