// Package layout packs horizontally positioned units into non-overlapping
// rows.
//
// # Overview
//
// [Tile] is the tile layout engine. Every unit has a fixed horizontal
// [Span] in sequence coordinates and a height; the engine only decides its
// vertical offset. Units are assigned to rows so that no two units in one
// row collide, where "collide" means their projected spans intersect after
// each is widened by HGap/2 on both sides.
//
// # Buoyancy
//
// The [Buoyancy] policy controls row assignment:
//
//   - [Floating]: first fit, rows scanned top to bottom, new rows appended
//     at the bottom. Features float up.
//   - [Sinking]: the mirror image. Rows are scanned bottom to top and new
//     rows are added at the top, so features rest on the baseline.
//   - [StackDown]: one row per unit, the first unit on top.
//   - [StackUp]: one row per unit, the first unit at the bottom.
//
// The greedy first fit is order-dependent and deliberately not optimal:
// identical input in identical order always yields identical rows.
//
// # Geometry
//
// A row is as tall as its tallest unit. Rows are separated by VGap, so the
// total height is the sum of row heights plus VGap*(rows-1), or 0 when
// there are no units. Each unit is placed at the top of its row.
//
// Spans are projected to layout space as [(Start-1)*Scale, Stop*Scale),
// so a zero-width interval still occupies one position and adjacent
// intervals touch without colliding. Spans beyond the extent are placed
// as-is.
package layout
