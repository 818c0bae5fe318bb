package pipeline

import (
	"context"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, parsed *givxml.Result, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, format, parsed, sc, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(ctx context.Context, format string, parsed *givxml.Result, sc *scene.Scene, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(sc, buildSVGOptions(opts)...)
	case FormatJSON:
		data, err = sink.RenderJSON(sc, buildJSONOptions(parsed)...)
	case FormatPNG:
		data, err = sink.RenderPNG(sc,
			sink.WithScale(opts.PNGScale),
			sink.WithPNGBackground(opts.Background),
			sink.WithPNGMargin(opts.Margin),
		)
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, sc, buildSVGOptions(opts)...)
	case FormatTree:
		if parsed == nil || parsed.Frame == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "tree output needs a parsed document")
		}
		data, err = sink.RenderTreeSVG(ctx, parsed.Frame, opts.Detailed)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithBackground(opts.Background),
		sink.WithMargin(opts.Margin),
	}
	if opts.Bands {
		svgOpts = append(svgOpts, sink.WithBands())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}

func buildJSONOptions(parsed *givxml.Result) []sink.JSONOption {
	if parsed == nil || parsed.Frame == nil {
		return nil
	}
	return []sink.JSONOption{
		sink.WithJSONStats(parsed.Frame.Stats()),
		sink.WithJSONWarnings(Warnings(parsed)),
	}
}
