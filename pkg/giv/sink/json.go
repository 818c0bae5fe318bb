package sink

import (
	"encoding/json"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	stats    *frame.Stats
	warnings []string
}

// WithJSONStats includes tree statistics in the output.
func WithJSONStats(s frame.Stats) JSONOption {
	return func(r *jsonRenderer) { r.stats = &s }
}

// WithJSONWarnings includes parser diagnostics in the output.
func WithJSONWarnings(w []string) JSONOption {
	return func(r *jsonRenderer) { r.warnings = w }
}

type jsonOutput struct {
	*scene.Scene
	Stats    *jsonStats `json:"stats,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
}

type jsonStats struct {
	Panels int `json:"panels"`
	Tracks int `json:"tracks"`
	Glyphs int `json:"glyphs"`
	Groups int `json:"groups"`
	Rows   int `json:"rows"`
}

// RenderJSON exports the scene, including the relation table, as indented
// JSON. It does not modify s.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Scene: s, Warnings: r.warnings}
	if r.stats != nil {
		st := jsonStats(*r.stats)
		out.Stats = &st
	}
	return json.MarshalIndent(out, "", "  ")
}
