package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/cache"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/importer"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

// importFlags are shared by every import source.
type importFlags struct {
	output       string
	panel        string
	style        string
	seq          string
	from, to     int
	splitStrands bool
}

func (f *importFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output document (default: stdout)")
	cmd.Flags().StringVar(&f.panel, "panel", "", "panel group label (default: the sequence name)")
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "glyph style preset: default, compact, unlabeled")
	cmd.Flags().StringVar(&f.seq, "seq", "", "keep only features on this sequence")
	cmd.Flags().IntVar(&f.from, "from", 0, "region start, 1-based inclusive")
	cmd.Flags().IntVar(&f.to, "to", 0, "region end, 1-based inclusive")
	cmd.Flags().BoolVar(&f.splitStrands, "split-strands", false, "forward and reverse strands on separate tracks")
}

func (f *importFlags) filter() importer.Filter {
	return importer.Filter{Seq: f.seq, From: f.from, To: f.to}
}

func (f *importFlags) buildOptions() (importer.BuildOptions, error) {
	if err := pipeline.ValidateStyle(f.style); err != nil {
		return importer.BuildOptions{}, err
	}
	if f.from < 0 || f.to < 0 || (f.to > 0 && f.from > f.to) {
		return importer.BuildOptions{}, errors.New(errors.ErrCodeInvalidInput, "invalid region %d-%d", f.from, f.to)
	}
	panel := f.panel
	if panel == "" {
		panel = f.seq
	}
	return importer.BuildOptions{
		Panel:        panel,
		Region:       f.filter(),
		SplitStrands: f.splitStrands,
		Style:        pipeline.StyleFor(f.style),
	}, nil
}

// importCommand creates the import command group.
func (c *CLI) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create a feature document from BED, GFF or the UCSC browser",
	}

	cmd.AddCommand(c.importBEDCommand())
	cmd.AddCommand(c.importGFFCommand())
	cmd.AddCommand(c.importUCSCCommand())

	return cmd
}

func (c *CLI) importBEDCommand() *cobra.Command {
	var (
		f       importFlags
		columns int
	)
	cmd := &cobra.Command{
		Use:   "bed [file.bed]",
		Short: "Import features from a BED file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.importFile(args[0], f, func(r *os.File) ([]importer.Record, error) {
				return importer.ReadBED(r, columns)
			})
		},
	}
	f.bind(cmd)
	cmd.Flags().IntVar(&columns, "columns", importer.BEDColumns, "BED column count: 3, 4, 5, 6 or 12")
	return cmd
}

func (c *CLI) importGFFCommand() *cobra.Command {
	var f importFlags
	cmd := &cobra.Command{
		Use:   "gff [file.gff]",
		Short: "Import features from a GFF2/GFF3 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.importFile(args[0], f, func(r *os.File) ([]importer.Record, error) {
				return importer.ReadGFF(r)
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *CLI) importUCSCCommand() *cobra.Command {
	var (
		f       importFlags
		q       importer.UCSCQuery
		host    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "ucsc",
		Short: "Import genes from the UCSC Genome Browser database",
		Long: `Import genes from a UCSC genePred table (refGene by default).

A genome and chromosome are required; --from and --to narrow the region.
Query results are cached, so repeated imports of the same region do not
hit the public server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host == "" {
				host = c.cfg.Import.UCSCHost
			}
			q.Filter = f.filter()
			return c.importUCSC(cmd.Context(), host, q, f, noCache)
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&q.Genome, "genome", "", "genome database, e.g. hg38 or sacCer3")
	cmd.Flags().StringVar(&q.Table, "table", importer.DefaultGeneTable, "genePred table")
	cmd.Flags().StringVar(&host, "host", "", "MySQL host:port (default: the public UCSC server)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("genome")
	_ = cmd.MarkFlagRequired("seq")
	return cmd
}

// importFile reads records from path with read and writes the document.
func (c *CLI) importFile(path string, f importFlags, read func(*os.File) ([]importer.Record, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer file.Close()

	records, err := read(file)
	if err != nil {
		return err
	}
	c.Logger.Debug("read records", "path", path, "count", len(records))
	return c.writeImport(records, f)
}

// importUCSC queries the browser database, retrying transient network
// failures, and caches the records.
func (c *CLI) importUCSC(ctx context.Context, host string, q importer.UCSCQuery, f importFlags, noCache bool) error {
	if err := q.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	key := runner.Keyer.ImportKey("ucsc", struct {
		Host  string
		Query importer.UCSCQuery
	}{host, q})

	var records []importer.Record
	cached := false
	if data, ok, _ := runner.Cache.Get(ctx, key); ok && json.Unmarshal(data, &records) == nil {
		cached = true
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Querying %s %s...", q.Genome, q.Filter.Seq))
		spinner.Start()
		err = cache.RetryWithBackoff(ctx, func() error {
			var err error
			records, err = importer.FetchUCSC(ctx, host, q)
			if errors.Is(err, errors.ErrCodeNetwork) {
				return cache.Retryable(err)
			}
			return err
		})
		if err != nil {
			spinner.StopWithError("UCSC query failed")
			return err
		}
		spinner.Stop()
		if data, err := json.Marshal(records); err == nil {
			_ = runner.Cache.Set(ctx, key, data, cache.TTLImport)
		}
	}

	c.Logger.Debug("fetched genes", "genome", q.Genome, "seq", q.Filter.Seq, "count", len(records), "cached", cached)
	return c.writeImport(records, f)
}

// writeImport builds a frame from records and writes it as a document.
func (c *CLI) writeImport(records []importer.Record, f importFlags) error {
	opts, err := f.buildOptions()
	if err != nil {
		return err
	}
	fr, err := importer.Build(records, opts)
	if err != nil {
		return err
	}

	out, err := openOutput(f.output)
	if err != nil {
		return err
	}
	if err := givxml.Write(out, fr); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if f.output != "" {
		stats := fr.Stats()
		printSuccess("Imported %s", plural(stats.Glyphs+stats.Groups, "feature"))
		printFile(f.output)
		printStats(stats.Glyphs, stats.Tracks, stats.Rows, false)
		printNewline()
		printNextStep("Render", fmt.Sprintf("%s render %s", appName, f.output))
	}
	return nil
}
