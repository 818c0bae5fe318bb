package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/fonts"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/colors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
)

// DefaultMaxPNGSide caps either side of a PNG, in pixels.
const DefaultMaxPNGSide = 16384

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	maxSide    int
	background string
	margin     float64
}

// WithScale sets the pixel density (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithMaxSide caps the image size; larger scenes are scaled down to fit.
func WithMaxSide(px int) PNGOption {
	return func(r *pngRenderer) { r.maxSide = px }
}

// WithPNGBackground sets the canvas color (default white).
func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithPNGMargin pads the drawing on every side.
func WithPNGMargin(m float64) PNGOption {
	return func(r *pngRenderer) { r.margin = max(m, 0) }
}

// RenderPNG rasterizes the scene without external tools.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, maxSide: DefaultMaxPNGSide, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w := s.Width + 2*r.margin
	h := s.Height + 2*r.margin
	if side := max(w, h) * r.scale; r.maxSide > 0 && side > float64(r.maxSide) {
		r.scale *= float64(r.maxSide) / side
	}
	pw := max(int(math.Ceil(w*r.scale)), 1)
	ph := max(int(math.Ceil(h*r.scale)), 1)

	dc := gg.NewContext(pw, ph)
	dc.SetColor(colors.Resolve(r.background).Base)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(r.margin, r.margin)

	faces := map[float64]font.Face{}
	for _, n := range s.Nodes {
		switch n.Kind {
		case scene.KindGroupBackground:
			if n.Fill == "" {
				continue
			}
			c := colors.Resolve(n.Fill).Base
			dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 115)
			dc.DrawRectangle(n.X, n.Y, n.W, n.H)
			dc.Fill()
		case scene.KindBar:
			dc.DrawRectangle(n.X, n.Y, n.W, n.H)
			dc.SetHexColor(n.Fill)
			if n.Border > 0 {
				dc.FillPreserve()
				dc.SetHexColor(n.Stroke)
				dc.SetLineWidth(float64(n.Border))
				dc.Stroke()
			} else {
				dc.Fill()
			}
		case scene.KindLabel:
			face, err := labelFace(faces, n.FontSize)
			if err != nil {
				return nil, err
			}
			dc.SetFontFace(face)
			dc.SetHexColor(n.Fill)
			dc.DrawStringAnchored(n.Text, n.X, n.Y+n.H/2, 0, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// labelFace returns a face private to one render, since faces are not safe
// for concurrent use.
func labelFace(cache map[float64]font.Face, size float64) (font.Face, error) {
	if f, ok := cache[size]; ok {
		return f, nil
	}
	mono, err := fonts.Mono()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}
	f := truetype.NewFace(mono, &truetype.Options{Size: size, DPI: 72})
	cache[size] = f
	return f, nil
}
