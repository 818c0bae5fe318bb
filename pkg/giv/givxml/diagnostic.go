package givxml

import (
	"fmt"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
)

// Diagnostic records one recovered problem in a document.
type Diagnostic struct {
	Code    errors.Code
	Path    string // element path, e.g. frame/panel-group[1]/track[2]/glyph[3]
	Attr    string
	Value   string
	Message string
	// Dropped is set when the element was left out of the tree.
	Dropped bool
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s", d.Path, d.Message)
	if d.Attr != "" {
		s = fmt.Sprintf("%s: %s=%q: %s", d.Path, d.Attr, d.Value, d.Message)
	}
	if d.Dropped {
		s += " (dropped)"
	}
	return s
}

// Err converts the diagnostic to a structured error.
func (d Diagnostic) Err() error {
	return errors.New(d.Code, "%s", d.String())
}

// Result is a parsed document.
type Result struct {
	Frame       *frame.Frame
	Extent      int
	Diagnostics []Diagnostic
}

// Partial reports whether any element was dropped while building the tree.
func (r *Result) Partial() bool {
	for _, d := range r.Diagnostics {
		if d.Dropped {
			return true
		}
	}
	return false
}

// Dropped returns the diagnostics of elements left out of the tree.
func (r *Result) Dropped() []Diagnostic {
	return r.filter(true)
}

// Warnings returns the diagnostics of values replaced by defaults.
func (r *Result) Warnings() []Diagnostic {
	return r.filter(false)
}

func (r *Result) filter(dropped bool) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Dropped == dropped {
			out = append(out, d)
		}
	}
	return out
}
