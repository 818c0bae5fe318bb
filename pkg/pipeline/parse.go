package pipeline

import (
	"bytes"
	"context"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
)

// Parse reads a document into a layout tree. Diagnostics are logged at warn
// level; in strict mode the first one fails the parse.
func Parse(ctx context.Context, doc []byte, opts Options) (*givxml.Result, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "parse cancelled")
	}

	parseOpts := []givxml.Option{
		givxml.WithStyle(StyleFor(opts.Style)),
		givxml.WithLogger(opts.Logger),
	}
	if opts.Strict {
		parseOpts = append(parseOpts, givxml.WithStrict())
	}

	res, err := givxml.Parse(bytes.NewReader(doc), parseOpts...)
	if err != nil {
		return res, err
	}
	for _, d := range res.Diagnostics {
		opts.Logger.Warn(d.Message, "code", d.Code, "path", d.Path, "attr", d.Attr, "value", d.Value, "dropped", d.Dropped)
	}
	return res, nil
}

// Warnings formats the diagnostics of a parse for display and JSON output.
func Warnings(res *givxml.Result) []string {
	if res == nil || len(res.Diagnostics) == 0 {
		return nil
	}
	out := make([]string, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		out[i] = d.String()
	}
	return out
}
