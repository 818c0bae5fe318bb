package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/render"
)

func sampleFrame() *frame.Frame {
	f := frame.New(120)
	p := frame.NewPanelGroup("genes")
	t := f.NewTrack("forward")

	st := feature.DefaultStyle()
	st.BarColor = "steelblue"
	t.AddUnit(mosaic.NewGlyph(feature.NewInterval("lacZ <beta>", 10, 60), st))

	g := mosaic.NewGroup("operon", mosaic.WithColor("lavender"))
	g.AddUnit(mosaic.NewGlyph(feature.NewInterval("lacY", 40, 80), feature.DefaultStyle()))
	g.AddUnit(mosaic.NewGlyph(feature.NewInterval("lacA", 85, 110), feature.DefaultStyle()))
	t.AddUnit(g)

	p.AddTrack(t)
	_ = f.AddPanelGroup(p)
	return f
}

func TestRenderSVG(t *testing.T) {
	s := scene.Build(sampleFrame())
	svg := string(RenderSVG(s, WithBackground("white"), WithMargin(5), WithBands(), WithTitle("lac")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("RenderSVG() should start with an svg tag, got %.40s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() should end with </svg>")
	}
	checks := []string{
		`<title>lac</title>`,
		`fill="#ffffff"`,
		`translate(5.0,5.0)`,
		`class="band"`,
		`class="group"`,
		`data-path="frame/panel-group[1]/track[1]/glyph[1]"`,
		`data-path="frame/panel-group[1]/track[1]/group[1]/glyph[2]"`,
		`lacZ &lt;beta&gt;`,
		`fill="#4682b4"`,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %s", want)
		}
	}
	if got := strings.Count(svg, `class="bar"`); got != 3 {
		t.Errorf("bar count = %d, want 3", got)
	}
}

func TestRenderSVGDefaults(t *testing.T) {
	s := scene.Build(sampleFrame())
	svg := string(RenderSVG(s))
	if strings.Contains(svg, `class="band"`) {
		t.Error("bands should be off by default")
	}
	if !strings.Contains(svg, `width="120"`) {
		t.Error("width should equal extent times scale")
	}
}

func TestRenderJSON(t *testing.T) {
	f := sampleFrame()
	s := scene.Build(f)

	data, err := RenderJSON(s, WithJSONStats(f.Stats()), WithJSONWarnings([]string{"w1"}))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Width     float64              `json:"width"`
		Extent    int                  `json:"extent"`
		Nodes     []map[string]any     `json:"nodes"`
		Relations map[string]scene.Ref `json:"relations"`
		Stats     map[string]int       `json:"stats"`
		Warnings  []string             `json:"warnings"`
		Tracks    []map[string]any     `json:"tracks"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 120 || out.Extent != 120 {
		t.Errorf("width/extent = %v/%v, want 120/120", out.Width, out.Extent)
	}
	if len(out.Nodes) != len(s.Nodes) {
		t.Errorf("nodes = %d, want %d", len(out.Nodes), len(s.Nodes))
	}
	if out.Nodes[0]["kind"] != "bar" {
		t.Errorf("first node kind = %v, want bar", out.Nodes[0]["kind"])
	}
	if ref := out.Relations["0"]; ref.Label != "lacZ <beta>" || ref.Start != 10 {
		t.Errorf("relation 0 = %+v", ref)
	}
	if out.Stats["glyphs"] != 3 || out.Stats["groups"] != 1 {
		t.Errorf("stats = %v", out.Stats)
	}
	if len(out.Warnings) != 1 || len(out.Tracks) != 1 {
		t.Errorf("warnings = %v, tracks = %v", out.Warnings, out.Tracks)
	}
}

func TestRenderPNG(t *testing.T) {
	s := scene.Build(sampleFrame())

	data, err := RenderPNG(s, WithScale(2), WithPNGMargin(4))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	b := img.Bounds()
	wantW := int((s.Width + 8) * 2)
	if b.Dx() != wantW {
		t.Errorf("png width = %d, want %d", b.Dx(), wantW)
	}
}

func TestRenderPNGMaxSide(t *testing.T) {
	s := scene.Build(sampleFrame())
	data, err := RenderPNG(s, WithScale(10), WithMaxSide(100))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width > 100 || cfg.Height > 100 {
		t.Errorf("png size = %dx%d, want at most 100", cfg.Width, cfg.Height)
	}
}

func TestRenderPDF(t *testing.T) {
	s := scene.Build(sampleFrame())
	out, err := RenderPDF(context.Background(), s)
	if !render.Available() {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("RenderPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
		}
		return
	}
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("RenderPDF() output is not a PDF")
	}
}

func TestRenderTreeSVG(t *testing.T) {
	svg, err := RenderTreeSVG(context.Background(), sampleFrame(), true)
	if err != nil {
		t.Fatalf("RenderTreeSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "operon") {
		t.Error("tree should include the group label")
	}
}
