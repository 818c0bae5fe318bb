package givxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

// Write serializes f as an indented document.
func Write(w io.Writer, f *frame.Frame) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := start(elemFrame,
		"extent", strconv.Itoa(f.Extent()),
	)
	if f.Scale() != 1 {
		root = with(root, "scale", ftoa(f.Scale()))
	}
	if f.PanelGap() != frame.DefaultPanelGap {
		root = with(root, "panelGap", ftoa(f.PanelGap()))
	}

	err := element(enc, root, func() error {
		for _, p := range f.Panels() {
			if err := writePanel(enc, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		err = enc.Flush()
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Marshal is Write into a byte slice.
func Marshal(f *frame.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePanel(enc *xml.Encoder, p *frame.PanelGroup) error {
	el := labelled(start(elemPanelGroup), p.Label())
	if p.TrackGap() != frame.DefaultTrackGap {
		el = with(el, "trackGap", ftoa(p.TrackGap()))
	}
	return element(enc, el, func() error {
		for _, t := range p.Tracks() {
			if err := writeTrack(enc, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTrack(enc *xml.Encoder, t *frame.Track) error {
	hgap, vgap := t.Gaps()
	el := placement(labelled(start(elemTrack), t.Label()), t.Buoyancy(), hgap, vgap)
	return element(enc, el, func() error { return writeUnits(enc, t.Units()) })
}

func writeUnits(enc *xml.Encoder, units []mosaic.Unit) error {
	for _, u := range units {
		var err error
		switch u := u.(type) {
		case *mosaic.Glyph:
			err = writeGlyph(enc, u)
		case *mosaic.Group:
			err = writeGroup(enc, u)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeGroup(enc *xml.Encoder, g *mosaic.Group) error {
	hgap, vgap := g.Gaps()
	el := placement(labelled(start(elemGroup), g.Label()), g.Buoyancy(), hgap, vgap)
	if g.Color() != "" {
		el = with(el, "color", g.Color())
	}
	return element(enc, el, func() error { return writeUnits(enc, g.Units()) })
}

func writeGlyph(enc *xml.Encoder, g *mosaic.Glyph) error {
	iv, st := g.Interval(), g.Style()
	el := labelled(start(elemGlyph), iv.Label())
	el = with(el,
		"start", strconv.Itoa(iv.Start()),
		"stop", strconv.Itoa(iv.Stop()),
		"barHeight", strconv.Itoa(st.BarHeight),
		"barBorder", strconv.Itoa(st.BarBorder),
		"barColor", st.BarColor,
		"labelPosition", st.LabelPosition.String(),
		"labelSize", strconv.Itoa(st.LabelSize),
		"labelColor", st.LabelColor,
	)
	return element(enc, el, nil)
}

func element(enc *xml.Encoder, el xml.StartElement, body func() error) error {
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	if body != nil {
		if err := body(); err != nil {
			return err
		}
	}
	return enc.EncodeToken(el.End())
}

func start(name string, kv ...string) xml.StartElement {
	return with(xml.StartElement{Name: xml.Name{Local: name}}, kv...)
}

func with(el xml.StartElement, kv ...string) xml.StartElement {
	for i := 0; i+1 < len(kv); i += 2 {
		el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: kv[i]}, Value: kv[i+1]})
	}
	return el
}

func labelled(el xml.StartElement, label string) xml.StartElement {
	if label == "" {
		return el
	}
	return with(el, "label", label)
}

func placement(el xml.StartElement, b layout.Buoyancy, hgap, vgap float64) xml.StartElement {
	return with(el,
		"buoyancy", b.String(),
		"hgap", ftoa(hgap),
		"vgap", ftoa(vgap),
	)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
