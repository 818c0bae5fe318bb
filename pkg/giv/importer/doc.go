// Package importer builds GIV frames from external feature sources.
//
// Sources produce [Record] values: BED and GFF files through the biogo
// feature readers, and gene tables from the UCSC public MySQL server.
// [Build] turns records into a frame with one panel group and a track per
// strand, ready to lay out or to write as a document with givxml.Write.
//
// Coordinates are converted on the way in. BED and GFF readers report
// zero-based half-open ranges; records carry one-based closed ranges like
// the rest of GIV.
package importer
