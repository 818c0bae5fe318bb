package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/sink"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

// layoutCommand creates the layout command, which packs a document and
// reports the resulting rows per track.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf     layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [doc.xml]",
		Short: "Compute the layout of a feature document",
		Long: `Compute the layout of a feature document.

Every track is packed into rows and a summary table is printed: buoyancy,
glyph count, rows and height per track. With --output the flattened scene
(the same JSON as 'render -f json') is written as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &lf)
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the scene as JSON to this file")
	lf.bind(cmd)

	return cmd
}

// runLayout parses input, applies overrides and prints the track table.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	doc, err := readInput(input)
	if err != nil {
		return err
	}
	if err := opts.ValidateForParse(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	parsed, err := pipeline.Parse(ctx, doc, opts)
	if err != nil {
		if parsed != nil {
			printDiagnostics(parsed.Diagnostics)
		}
		return err
	}
	pipeline.ApplyOverrides(parsed.Frame, opts)
	sc := pipeline.Layout(parsed.Frame)
	prog.done("Layout computed")

	fmt.Println(trackTable(parsed.Frame).Render())

	w, h := parsed.Frame.Size()
	stats := parsed.Frame.Stats()
	printKeyValue("Extent", strconv.Itoa(parsed.Frame.Extent()))
	printKeyValue("Scale", strconv.FormatFloat(parsed.Frame.Scale(), 'g', -1, 64))
	printKeyValue("Size", fmt.Sprintf("%.0f x %.0f px", w, h))
	printStats(stats.Glyphs, stats.Tracks, stats.Rows, false)
	if n := len(parsed.Diagnostics); n > 0 {
		printWarning("%d diagnostics; run '%s validate %s' for details", n, appName, input)
	}

	if output == "" {
		return nil
	}
	data, err := sink.RenderJSON(sc, sink.WithJSONStats(stats), sink.WithJSONWarnings(pipeline.Warnings(parsed)))
	if err != nil {
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printFile(output)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s", appName, input))
	return nil
}

// trackTable summarizes every track of f.
func trackTable(f *frame.Frame) *table.Table {
	var rows [][]string
	for _, p := range f.Panels() {
		for _, t := range p.Tracks() {
			hgap, vgap := t.Gaps()
			rows = append(rows, []string{
				orDash(p.Label()),
				orDash(t.Label()),
				t.Buoyancy().String(),
				strconv.Itoa(mosaic.CountGlyphs(t.Units())),
				strconv.Itoa(len(t.Layout().Rows)),
				strconv.FormatFloat(t.Height(), 'f', 1, 64),
				fmt.Sprintf("%g / %g", hgap, vgap),
			})
		}
	}
	return newTable("Panel", "Track", "Buoyancy", "Glyphs", "Rows", "Height", "Gaps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return tableHeaderStyle
			}
			if col >= 3 {
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return base.Foreground(colorWhite)
		})
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
