// Package feature defines the leaf value types of the layout model: a
// labeled sequence [Interval] and the visual [Style] attached to it.
//
// Coordinates are 1-based and inclusive. [NewInterval] normalizes reversed
// bounds, so every Interval satisfies Start <= Stop. Both types are plain
// values; a Style is copied into each glyph built from it.
//
//	iv := feature.NewInterval("lacZ", 3000, 1200) // Start 1200, Stop 3000
//	st := feature.DefaultStyle()
//	st.LabelPosition = feature.LabelBelow
package feature
