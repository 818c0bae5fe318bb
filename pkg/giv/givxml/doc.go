// Package givxml reads and writes GIV documents, the XML form of a layout
// tree.
//
// # Document shape
//
// The element hierarchy mirrors the tree itself (see [DTD]):
//
//	<frame extent="48502">
//	  <panel-group label="genes">
//	    <track label="forward" buoyancy="sinking">
//	      <glyph label="cI" start="37227" stop="37940" barColor="red"/>
//	      <group label="late operon" color="lavender">
//	        <glyph label="S" start="45186" stop="45509"/>
//	      </group>
//	    </track>
//	  </panel-group>
//	</frame>
//
// # Error handling
//
// [Parse] works in three steps. Structural problems (malformed XML, unknown
// elements or attributes, illegal nesting, missing required attributes)
// fail the whole document with SCHEMA_VIOLATION. A missing or unreadable
// frame extent fails with MISSING_EXTENT. Everything after that recovers:
// a glyph whose start or stop is not a number is dropped, bad style numbers
// and unknown names fall back to defaults, and each recovery is recorded as
// a [Diagnostic] on the [Result].
//
// [Write] serializes a frame so that Parse(Write(f)) rebuilds an equivalent
// tree.
package givxml
