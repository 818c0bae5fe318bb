// Package mosaic provides the composite layout model: [Glyph] leaves and
// recursive [Group] containers.
//
// Both implement the sealed [Unit] interface, so a Group holds an ordered
// mix of glyphs and nested groups and the layout engine treats them
// uniformly. A Group lays its children out lazily: the first query of its
// span, height or bounds after a change runs the engine over the children,
// and child groups do the same when the engine asks for their height. The
// pass is therefore post-order, leaves first.
//
// Horizontal geometry is in sequence positions and never changes after
// construction. Vertical geometry is in layout units relative to the
// parent's origin and is assigned by the engine through SetOffset.
package mosaic
