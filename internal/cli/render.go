package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

// renderFlags holds the output flags of the render command.
type renderFlags struct {
	output     string
	formats    string
	noCache    bool
	refresh    bool
	bands      bool
	title      string
	background string
	margin     float64
	pngScale   float64
	detailed   bool
	copy       bool
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("bands") {
		opts.Bands = f.bands
	}
	if changed("background") {
		opts.Background = f.background
	}
	if changed("margin") {
		opts.Margin = f.margin
	}
	if changed("png-scale") {
		opts.PNGScale = f.pngScale
	}
	opts.Title = f.title
	opts.Detailed = f.detailed
	opts.Refresh = f.refresh
}

// renderCommand creates the render command: document in, images out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [doc.xml]",
		Short: "Render a feature document to SVG, PNG, PDF or JSON",
		Long: `Render a feature document.

The document is parsed, every track is packed into rows and the frame is
written in each requested format. Use "-" to read the document from stdin.

A single format is written to --output as given. Several formats share the
output's base name: -o map.svg -f svg,png writes map.svg and map.png.

Layouts and rendered outputs are cached by document content; --refresh
recomputes them and --no-cache skips the cache entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &lf)
			rf.apply(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], opts, rf)
		},
	}

	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, tree (comma-separated)")
	cmd.Flags().BoolVar(&rf.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&rf.refresh, "refresh", false, "recompute cached layouts and outputs")
	cmd.Flags().BoolVar(&rf.bands, "bands", false, "shade alternate tracks")
	cmd.Flags().StringVar(&rf.title, "title", "", "title drawn above the frame")
	cmd.Flags().StringVar(&rf.background, "background", pipeline.DefaultBackground, "canvas color")
	cmd.Flags().Float64Var(&rf.margin, "margin", pipeline.DefaultMargin, "margin around the frame in pixels")
	cmd.Flags().Float64Var(&rf.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG pixel density")
	cmd.Flags().BoolVar(&rf.detailed, "detailed", false, "show spans and rows in tree diagrams")
	cmd.Flags().BoolVar(&rf.copy, "copy", false, "copy the SVG output to the clipboard")
	lf.bind(cmd)

	return cmd
}

// runRender renders input to every requested format and writes the files.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, rf renderFlags) error {
	doc, err := readInput(input)
	if err != nil {
		return err
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if rf.copy && !slices.Contains(opts.Formats, pipeline.FormatSVG) {
		opts.Formats = append(opts.Formats, pipeline.FormatSVG)
	}

	runner, err := c.newRunner(ctx, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+input+"...")
	spinner.Start()

	var result *pipeline.Result
	err = withStageSpinner(spinner, input, func() error {
		var err error
		result, err = runner.Execute(ctx, doc, opts)
		return err
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		if result != nil && result.Parse != nil {
			printDiagnostics(result.Parse.Diagnostics)
		}
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if n := result.Stats.Diagnostics; n > 0 {
		printWarning("%d diagnostics; run '%s validate %s' for details", n, appName, input)
	}

	paths := outputPaths(rf.output, input, opts.Formats)
	printSuccess("Rendered %s", input)
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return errors.New(errors.ErrCodeInternal, "no %s output", format)
		}
		if err := writeOutput(paths[format], data); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
		printFile(paths[format])
	}

	if rf.copy {
		if err := clipboard.WriteAll(string(result.Artifacts[pipeline.FormatSVG])); err != nil {
			printWarning("Clipboard unavailable: %v", err)
		} else {
			printDetail("SVG copied to clipboard")
		}
	}

	printStats(result.Stats.Glyphs, result.Stats.Tracks, result.Stats.Rows, result.CacheHit)
	return nil
}
