package feature

import "strings"

// LabelPosition places a glyph's label relative to its bar.
type LabelPosition int

const (
	LabelAbove LabelPosition = iota
	LabelInside
	LabelBelow
	LabelHidden
)

var labelPositionNames = [...]string{
	LabelAbove:  "above",
	LabelInside: "inside",
	LabelBelow:  "below",
	LabelHidden: "hidden",
}

func (p LabelPosition) String() string {
	if p < 0 || int(p) >= len(labelPositionNames) {
		return labelPositionNames[LabelAbove]
	}
	return labelPositionNames[p]
}

// ParseLabelPosition maps a case-insensitive name to a LabelPosition.
// Unknown names return LabelAbove and false.
func ParseLabelPosition(s string) (LabelPosition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above":
		return LabelAbove, true
	case "inside":
		return LabelInside, true
	case "below":
		return LabelBelow, true
	case "hidden":
		return LabelHidden, true
	}
	return LabelAbove, false
}

// Border limits for bar outlines.
const (
	MinBarBorder = 0
	MaxBarBorder = 2
)

// Default style values.
const (
	DefaultBarHeight  = 10
	DefaultBarBorder  = 1
	DefaultBarColor   = "gray"
	DefaultLabelSize  = 10
	DefaultLabelColor = "black"
)

// Style describes how a glyph is drawn. Colors are names resolved by the
// colors package at render time.
type Style struct {
	BarHeight     int
	BarBorder     int
	BarColor      string
	LabelPosition LabelPosition
	LabelSize     int
	LabelColor    string
}

// DefaultStyle returns the style used when a document omits attributes.
func DefaultStyle() Style {
	return Style{
		BarHeight:     DefaultBarHeight,
		BarBorder:     DefaultBarBorder,
		BarColor:      DefaultBarColor,
		LabelPosition: LabelAbove,
		LabelSize:     DefaultLabelSize,
		LabelColor:    DefaultLabelColor,
	}
}

// Normalize clamps numeric fields into their legal ranges and fills empty
// color names with defaults.
func (s Style) Normalize() Style {
	if s.BarHeight < 0 {
		s.BarHeight = 0
	}
	if s.LabelSize < 0 {
		s.LabelSize = 0
	}
	s.BarBorder = ClampBorder(s.BarBorder)
	if s.BarColor == "" {
		s.BarColor = DefaultBarColor
	}
	if s.LabelColor == "" {
		s.LabelColor = DefaultLabelColor
	}
	if s.LabelPosition < LabelAbove || s.LabelPosition > LabelHidden {
		s.LabelPosition = LabelAbove
	}
	return s
}

// ClampBorder restricts a border width to [MinBarBorder, MaxBarBorder].
func ClampBorder(b int) int {
	return min(max(b, MinBarBorder), MaxBarBorder)
}
