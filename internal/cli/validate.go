package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

// validateCommand creates the validate command, which parses a document and
// lists every diagnostic.
func (c *CLI) validateCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "validate [doc.xml]",
		Short: "Check a feature document and list its diagnostics",
		Long: `Check a feature document.

Schema violations and a missing extent fail the document. Bad attribute
values are reported per element: dropped elements are left out of the
layout, other attributes fall back to their defaults. With --strict any
diagnostic fails validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &lf)
			// Diagnostics are printed as a table below.
			opts.Logger = nil
			return c.runValidate(cmd.Context(), args[0], opts)
		},
	}

	lf.bind(cmd)
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, opts pipeline.Options) error {
	doc, err := readInput(input)
	if err != nil {
		return err
	}

	parsed, err := pipeline.Parse(ctx, doc, opts)
	if err != nil {
		if parsed != nil {
			printDiagnostics(parsed.Diagnostics)
		}
		printError("%s is invalid: %s", input, errors.UserMessage(err))
		return err
	}

	if len(parsed.Diagnostics) == 0 {
		printSuccess("%s is valid", input)
	} else {
		printDiagnostics(parsed.Diagnostics)
		if parsed.Partial() {
			printWarning("%s is valid with %d dropped elements", input, len(parsed.Dropped()))
		} else {
			printWarning("%s is valid with %d warnings", input, len(parsed.Warnings()))
		}
	}

	stats := parsed.Frame.Stats()
	printStats(stats.Glyphs, stats.Tracks, 0, false)
	return nil
}
