// Package fonts provides the label font used for measuring and rasterizing
// glyph labels.
//
// GIV uses Go Mono (golang.org/x/image/font/gofont/gomono), which ships as
// Go source, so no font files need to be installed. Faces are parsed once
// and cached per point size.
package fonts

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// FontFamily is the CSS font-family name written into SVG output.
const FontFamily = "Go Mono"

// FallbackFontFamily lists fallbacks for viewers without Go Mono.
const FallbackFontFamily = `'Go Mono', 'DejaVu Sans Mono', Menlo, monospace`

// charWidthRatio approximates a Go Mono advance as a fraction of the em size.
// Used only when the embedded font fails to parse.
const charWidthRatio = 0.6

var (
	parseOnce sync.Once
	parsed    *truetype.Font
	parseErr  error

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Mono returns the parsed Go Mono font.
func Mono() (*truetype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = truetype.Parse(gomono.TTF)
	})
	return parsed, parseErr
}

// Face returns a Go Mono face at the given point size (72 DPI, so points
// equal pixels).
func Face(size float64) (font.Face, error) {
	f, err := Mono()
	if err != nil {
		return nil, err
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces[size] = face
	return face, nil
}

// Measure returns the advance width of s in pixels at the given size.
func Measure(s string, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}
	face, err := Face(size)
	if err != nil {
		return float64(len([]rune(s))) * size * charWidthRatio
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	adv := font.MeasureString(face, s)
	return math.Ceil(float64(adv) / 64)
}

// Truncate shortens label so that it fits in width pixels at size,
// replacing the tail with "..". At least three characters are kept.
func Truncate(label string, width, size float64) string {
	if Measure(label, size) <= width {
		return label
	}
	runes := []rune(label)
	for n := len(runes) - 1; n >= 3; n-- {
		s := string(runes[:n-2]) + ".."
		if Measure(s, size) <= width {
			return s
		}
	}
	if len(runes) <= 3 {
		return label
	}
	return string(runes[:1]) + ".."
}
