// Package scene flattens a laid-out frame into drawable nodes.
//
// A [Scene] is what every sink consumes: rectangles and text placed in a
// single pixel space whose width is extent times scale. Nodes carry no
// pointers back into the layout tree. Instead [Scene.Relations] maps each
// node ID to a [Ref] naming the feature it came from, so a click can be
// resolved with [Scene.HitTest] after the tree is gone.
package scene
