package givxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

const lambda = `<?xml version="1.0"?>
<frame extent="100">
  <panel-group label="genes" trackGap="5">
    <track label="forward" hgap="2" vgap="3">
      <glyph label="a" start="10" stop="30" barHeight="12" labelPosition="hidden"/>
      <glyph label="b" start="20" stop="40" barHeight="12" labelPosition="hidden"/>
      <glyph label="c" start="35" stop="50" barHeight="12" labelPosition="hidden"/>
    </track>
    <track label="operons" buoyancy="Sinking">
      <group label="late" color="Lavender Blush">
        <glyph label="S" start="60" stop="70" barColor="red"/>
        <glyph label="R" start="65" stop="80" labelPosition="below"/>
      </group>
    </track>
  </panel-group>
</frame>
`

func TestParseValid(t *testing.T) {
	res, err := Parse(strings.NewReader(lambda))
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.Partial())
	assert.Equal(t, 100, res.Extent)

	f := res.Frame
	require.Len(t, f.Panels(), 1)
	p := f.Panels()[0]
	assert.Equal(t, "genes", p.Label())
	assert.Equal(t, 5.0, p.TrackGap())
	require.Len(t, p.Tracks(), 2)

	fwd := p.Tracks()[0]
	assert.Equal(t, 27.0, fwd.Height())
	assert.Equal(t, []int{0, 2}, fwd.Layout().Rows[0].Units)

	ops := p.Tracks()[1]
	assert.Equal(t, layout.Sinking, ops.Buoyancy())
	require.Len(t, ops.Units(), 1)
	g, ok := ops.Units()[0].(*mosaic.Group)
	require.True(t, ok)
	assert.Equal(t, "Lavender Blush", g.Color())
	require.Equal(t, 2, g.Len())

	s := g.Units()[0].(*mosaic.Glyph)
	assert.Equal(t, "red", s.Style().BarColor)
	r := g.Units()[1].(*mosaic.Glyph)
	assert.Equal(t, feature.LabelBelow, r.Style().LabelPosition)

	stats := f.Stats()
	assert.Equal(t, 5, stats.Glyphs)
	assert.Equal(t, 1, stats.Groups)
}

func TestParseExtent(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing", `<frame/>`},
		{"not a number", `<frame extent="long"/>`},
		{"float", `<frame extent="10.5"/>`},
		{"negative", `<frame extent="-4"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc))
			if !errors.Is(err, errors.ErrCodeMissingExtent) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeMissingExtent)
			}
		})
	}
}

func TestParseZeroExtent(t *testing.T) {
	res, err := ParseBytes([]byte(`<frame extent="0"><panel-group><track/></panel-group></frame>`))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Extent)
	assert.Empty(t, res.Diagnostics)

	w, h := res.Frame.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.NoError(t, res.Frame.Validate())
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `<frame extent="10"><panel-group></frame>`},
		{"wrong root", `<track extent="10"/>`},
		{"unknown element", `<frame extent="10"><legend/></frame>`},
		{"unknown attribute", `<frame extent="10" zoom="2"/>`},
		{"bad nesting", `<frame extent="10"><track/></frame>`},
		{"glyph in panel", `<frame extent="10"><panel-group><glyph start="1" stop="2"/></panel-group></frame>`},
		{"glyph with children", `<frame extent="10"><panel-group><track>
			<glyph start="1" stop="2"><glyph start="1" stop="2"/></glyph></track></panel-group></frame>`},
		{"text content", `<frame extent="10"><panel-group>genes</panel-group></frame>`},
		{"missing start", `<frame extent="10"><panel-group><track><glyph stop="2"/></track></panel-group></frame>`},
		{"missing stop", `<frame extent="10"><panel-group><track><glyph start="2"/></track></panel-group></frame>`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc))
			if !errors.Is(err, errors.ErrCodeSchemaViolation) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeSchemaViolation)
			}
		})
	}
}

func TestParseSchemaCheckedBeforeExtent(t *testing.T) {
	_, err := ParseBytes([]byte(`<frame><bogus/></frame>`))
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaViolation), "got %v", err)
}

func TestParseDropsBadGlyph(t *testing.T) {
	doc := `<frame extent="100"><panel-group><track>
		<glyph label="ok" start="1" stop="10"/>
		<glyph label="bad" start="ten" stop="20"/>
		<glyph label="neg" start="5" stop="-3"/>
		<glyph label="ok2" start="30" stop="40"/>
	</track></panel-group></frame>`

	res, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.True(t, res.Partial())

	dropped := res.Dropped()
	require.Len(t, dropped, 2)
	assert.Equal(t, "frame/panel-group[1]/track[1]/glyph[2]", dropped[0].Path)
	assert.Equal(t, "start", dropped[0].Attr)
	assert.Equal(t, errors.ErrCodeInvalidAttribute, dropped[0].Code)
	assert.Equal(t, "stop", dropped[1].Attr)

	units := res.Frame.Tracks()[0].Units()
	require.Len(t, units, 2)
	assert.Equal(t, "ok", units[0].Label())
	assert.Equal(t, "ok2", units[1].Label())
}

func TestParseDefaultsOnBadStyle(t *testing.T) {
	doc := `<frame extent="100"><panel-group><track>
		<glyph label="g" start="1" stop="10" barHeight="tall" barBorder="9" labelSize="-2" labelPosition="sideways"/>
	</track></panel-group></frame>`

	res, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.False(t, res.Partial())

	attrs := map[string]bool{}
	for _, d := range res.Warnings() {
		attrs[d.Attr] = true
	}
	for _, a := range []string{"barHeight", "barBorder", "labelSize", "labelPosition"} {
		assert.True(t, attrs[a], "expected a warning for %s", a)
	}

	g := res.Frame.Tracks()[0].Units()[0].(*mosaic.Glyph)
	st := g.Style()
	assert.Equal(t, feature.DefaultBarHeight, st.BarHeight)
	assert.Equal(t, feature.MaxBarBorder, st.BarBorder)
	assert.Equal(t, feature.DefaultLabelSize, st.LabelSize)
	assert.Equal(t, feature.LabelAbove, st.LabelPosition)
}

func TestParseUnknownColor(t *testing.T) {
	doc := `<frame extent="100"><panel-group><track>
		<glyph start="1" stop="10" barColor="octarine"/>
	</track></panel-group></frame>`

	res, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, errors.ErrCodeColorLookupMiss, d.Code)
	assert.Equal(t, "octarine", d.Value)
	assert.False(t, d.Dropped)

	g := res.Frame.Tracks()[0].Units()[0].(*mosaic.Glyph)
	assert.Equal(t, "gray", g.Style().BarColor)
}

func TestParseBuoyancy(t *testing.T) {
	tests := []struct {
		value string
		want  layout.Buoyancy
		warn  bool
	}{
		{"floating", layout.Floating, false},
		{"SINKING", layout.Sinking, false},
		{"stackup", layout.StackUp, false},
		{"StackDown", layout.StackDown, false},
		{"hovering", layout.Floating, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			doc := `<frame extent="10"><panel-group><track buoyancy="` + tt.value + `"/></panel-group></frame>`
			res, err := ParseBytes([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Frame.Tracks()[0].Buoyancy())
			assert.Equal(t, tt.warn, len(res.Warnings()) == 1)
		})
	}
}

func TestParseStrict(t *testing.T) {
	doc := `<frame extent="100"><panel-group><track>
		<glyph start="x" stop="10"/>
	</track></panel-group></frame>`

	res, err := ParseBytes([]byte(doc), WithStrict())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidAttribute), "got %v", err)
	require.NotNil(t, res)
	assert.True(t, res.Partial())

	_, err = ParseBytes([]byte(lambda), WithStrict())
	assert.NoError(t, err)
}

func TestParseWithStyle(t *testing.T) {
	st := feature.DefaultStyle()
	st.BarHeight = 4
	st.LabelPosition = feature.LabelHidden

	doc := `<frame extent="10"><panel-group><track><glyph label="g" start="1" stop="5"/></track></panel-group></frame>`
	res, err := ParseBytes([]byte(doc), WithStyle(st))
	require.NoError(t, err)
	g := res.Frame.Tracks()[0].Units()[0].(*mosaic.Glyph)
	assert.Equal(t, 4.0, g.Height())
}

func TestParseScale(t *testing.T) {
	doc := `<frame extent="50" scale="2" panelGap="3"><panel-group><track/></panel-group></frame>`
	res, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	w, _ := res.Frame.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 3.0, res.Frame.PanelGap())
	assert.Equal(t, 2.0, res.Frame.Tracks()[0].Scale())

	res, err = ParseBytes([]byte(`<frame extent="50" scale="-1"/>`))
	require.NoError(t, err)
	assert.Len(t, res.Warnings(), 1)
	assert.Equal(t, 1.0, res.Frame.Scale())
}

func TestWriteRoundTrip(t *testing.T) {
	res, err := ParseBytes([]byte(lambda))
	require.NoError(t, err)

	out, err := Marshal(res.Frame)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<?xml"))

	again, err := ParseBytes(out)
	require.NoError(t, err)
	assert.Empty(t, again.Diagnostics)

	want, got := res.Frame, again.Frame
	assert.Equal(t, want.Extent(), got.Extent())
	assert.Equal(t, want.Stats(), got.Stats())
	wantW, wantH := want.Size()
	gotW, gotH := got.Size()
	assert.Equal(t, wantW, gotW)
	assert.Equal(t, wantH, gotH)

	for i, tr := range want.Tracks() {
		other := got.Tracks()[i]
		assert.Equal(t, tr.Label(), other.Label())
		assert.Equal(t, tr.Buoyancy(), other.Buoyancy())
		assert.Equal(t, tr.Layout(), other.Layout())
	}

	// A second pass is byte stable.
	out2, err := Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))
}
