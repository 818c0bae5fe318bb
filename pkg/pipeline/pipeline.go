// Package pipeline provides the document pipeline shared by the CLI and the
// render service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read a document into a layout tree, collecting diagnostics
//  2. Layout: tile every track and flatten the frame into a scene
//  3. Render: write the scene in the requested formats (SVG, JSON, PNG, PDF, tree)
//
// Each stage can be run on its own or through a [Runner], which caches
// scenes and artifacts by document hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	parsed, err := pipeline.Parse(ctx, doc, opts)
//	pipeline.ApplyOverrides(parsed.Frame, opts)
//	sc := pipeline.Layout(parsed.Frame)
//	artifacts, err := pipeline.Render(ctx, parsed, sc, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/cache"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/feature"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPNGScale is the pixel density of PNG output.
	DefaultPNGScale = 2.0

	// DefaultMargin pads rendered images on every side, in pixels.
	DefaultMargin = 10.0

	// DefaultBackground is the canvas color of rendered images.
	DefaultBackground = "white"

	// MaxScale bounds the pixels-per-base factor accepted from callers.
	MaxScale = 1000.0
)

// Format constants for output formats.
const (
	FormatSVG  = sink.FormatSVG
	FormatJSON = sink.FormatJSON
	FormatPNG  = sink.FormatPNG
	FormatPDF  = sink.FormatPDF
	FormatTree = sink.FormatTree
)

// Glyph style presets. A preset is the style glyphs start from before their
// own attributes apply.
const (
	StyleDefault   = "default"
	StyleCompact   = "compact"
	StyleUnlabeled = "unlabeled"
)

// DefaultStyle is the default glyph style preset.
const DefaultStyle = StyleDefault

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatTree: true,
}

// ValidStyles is the set of supported glyph style presets.
var ValidStyles = map[string]bool{
	StyleDefault:   true,
	StyleCompact:   true,
	StyleUnlabeled: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Style  string `json:"style,omitempty"`
	Strict bool   `json:"strict,omitempty"`

	// Layout options. Zero scale and nil gaps keep the document's values.
	Scale    float64  `json:"scale,omitempty"`
	HGap     *float64 `json:"hgap,omitempty"`
	VGap     *float64 `json:"vgap,omitempty"`
	TrackGap *float64 `json:"track_gap,omitempty"`
	PanelGap *float64 `json:"panel_gap,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"`
	Margin     float64  `json:"margin,omitempty"`
	Bands      bool     `json:"bands,omitempty"`
	Title      string   `json:"title,omitempty"`
	PNGScale   float64  `json:"png_scale,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // Tree diagram shows spans and rows
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Parse is the parsed document with its diagnostics.
	Parse *givxml.Result

	// DocHash is the content hash of the input document.
	DocHash string

	// Scene is the flattened layout.
	Scene *scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool

	// SceneHit reports whether the scene came from the cache.
	SceneHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	frame.Stats
	Diagnostics int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// Float returns a pointer to v, for the optional gap fields.
func Float(v float64) *float64 { return &v }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(sink.Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style preset is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: default, compact, unlabeled)", style)
	}
	return nil
}

// StyleFor returns the glyph style of a preset. Unknown names get the
// default style.
func StyleFor(name string) feature.Style {
	s := feature.DefaultStyle()
	switch name {
	case StyleCompact:
		s.BarHeight = 6
		s.BarBorder = 0
		s.LabelSize = 8
	case StyleUnlabeled:
		s.LabelPosition = feature.LabelHidden
	}
	return s
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse validates and sets defaults for parsing.
func (o *Options) ValidateForParse() error {
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateStyle(o.Style)
}

// ValidateForLayout checks the layout overrides.
func (o *Options) ValidateForLayout() error {
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, %g]", o.Scale, MaxScale)
	}
	for name, v := range map[string]*float64{
		"hgap": o.HGap, "vgap": o.VGap, "track_gap": o.TrackGap, "panel_gap": o.PanelGap,
	} {
		if v != nil && *v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must not be negative", name)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative")
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png_scale must be positive")
	}
	o.Formats = slices.Compact(o.Formats)
	return ValidateFormats(o.Formats)
}

// SceneKeyOpts returns cache key options for the layout stage.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Scale:    o.Scale,
		HGap:     orUnset(o.HGap),
		VGap:     orUnset(o.VGap),
		TrackGap: orUnset(o.TrackGap),
		PanelGap: orUnset(o.PanelGap),
		Style:    o.Style,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Scene:  o.SceneKeyOpts(),
		Format: format,
	}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		k.Background = o.Background
		k.Margin = o.Margin
		k.Bands = o.Bands
		k.Title = o.Title
	case FormatTree:
		k.Detailed = o.Detailed
	}
	if format == FormatPNG {
		k.PNGScale = o.PNGScale
	}
	return k
}

func orUnset(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}
