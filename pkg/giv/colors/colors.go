// Package colors resolves the color names used in GIV documents.
//
// Names follow the SVG 1.1 keyword set (golang.org/x/image/colornames),
// matched case-insensitively with spaces ignored, so "Light Blue" and
// "lightblue" are the same color. "#rrggbb" hex strings are accepted too.
// Every resolved color carries a darker shade used for bar outlines.
package colors

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Fallback is the color name used when a lookup misses.
const Fallback = "gray"

// darken scales Lab lightness to derive outline shades.
const darken = 0.7

// Shade is a resolved color and its darker outline variant.
type Shade struct {
	Name string
	Base color.RGBA
	Dark color.RGBA
}

// Hex returns the base color as "#rrggbb".
func (s Shade) Hex() string { return toColorful(s.Base).Hex() }

// DarkHex returns the outline color as "#rrggbb".
func (s Shade) DarkHex() string { return toColorful(s.Dark).Hex() }

// Lookup resolves a color name. The second result is false when the name
// is unknown, in which case the Fallback shade is returned.
func Lookup(name string) (Shade, bool) {
	key := normalize(name)
	if strings.HasPrefix(key, "#") {
		if c, err := colorful.Hex(key); err == nil {
			return newShade(key, rgba(c)), true
		}
	} else if c, ok := colornames.Map[key]; ok {
		return newShade(key, c), true
	}
	return newShade(Fallback, colornames.Map[Fallback]), false
}

// Resolve is Lookup without the hit flag.
func Resolve(name string) Shade {
	s, _ := Lookup(name)
	return s
}

// Known reports whether name resolves without falling back.
func Known(name string) bool {
	_, ok := Lookup(name)
	return ok
}

func newShade(name string, base color.RGBA) Shade {
	l, a, b := toColorful(base).Lab()
	dark := colorful.Lab(l*darken, a, b).Clamped()
	return Shade{Name: name, Base: base, Dark: rgba(dark)}
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
}

func toColorful(c color.RGBA) colorful.Color {
	cf, _ := colorful.MakeColor(c)
	return cf
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
