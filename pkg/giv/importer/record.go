package importer

import (
	"cmp"
	"slices"
	"strings"
)

// Strand of a feature.
type Strand int8

const (
	StrandNone    Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// ParseStrand maps "+", "-" and anything else to a Strand.
func ParseStrand(s string) Strand {
	switch strings.TrimSpace(s) {
	case "+":
		return StrandForward
	case "-":
		return StrandReverse
	}
	return StrandNone
}

// Record is one imported feature in one-based closed coordinates.
type Record struct {
	Label  string
	Seq    string
	Kind   string
	Start  int
	Stop   int
	Strand Strand

	// CDSStart and CDSStop mark a coding region inside the feature.
	// Both zero means none.
	CDSStart int
	CDSStop  int
}

// HasCDS reports whether the record carries a non-empty coding region.
func (r Record) HasCDS() bool {
	return r.CDSStart > 0 && r.CDSStop >= r.CDSStart
}

// Filter selects records by sequence name and region.
type Filter struct {
	// Seq keeps only records on this sequence. Empty keeps all.
	Seq string
	// From and To bound the region, one-based and inclusive. Zero means
	// unbounded.
	From, To int
}

// Keep reports whether r passes the filter. Records overlapping the
// region are kept whole.
func (f Filter) Keep(r Record) bool {
	if f.Seq != "" && r.Seq != f.Seq {
		return false
	}
	if f.From > 0 && r.Stop < f.From {
		return false
	}
	if f.To > 0 && r.Start > f.To {
		return false
	}
	return true
}

// Apply returns the records that pass the filter.
func (f Filter) Apply(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if f.Keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByStart orders records by start then stop. Packing is order
// dependent, and sorted input gives the most compact rows.
func SortByStart(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.Stop, b.Stop))
	})
}
