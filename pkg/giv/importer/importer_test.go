package importer

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
)

const bedData = "chr1\t99\t200\tgeneA\t0\t+\n" +
	"chr1\t149\t300\tgeneB\t0\t-\n" +
	"chr1\t399\t500\tgeneC\t0\t+\n" +
	"chr2\t0\t50\tother\t0\t+\n"

const gffData = "##gff-version 2\n" +
	"chr1\ttest\tgene\t100\t200\t.\t+\t.\n" +
	"chr1\ttest\texon\t150\t300\t.\t-\t.\n"

func TestReadBED(t *testing.T) {
	recs, err := ReadBED(strings.NewReader(bedData), 6)
	if err != nil {
		t.Fatalf("ReadBED() error: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("ReadBED() = %d records, want 4", len(recs))
	}
	want := Record{Label: "geneA", Seq: "chr1", Kind: "feature", Start: 100, Stop: 200, Strand: StrandForward}
	if recs[0] != want {
		t.Errorf("record 0 = %+v, want %+v", recs[0], want)
	}
	if recs[1].Strand != StrandReverse {
		t.Errorf("record 1 strand = %v, want reverse", recs[1].Strand)
	}
}

func TestReadGFF(t *testing.T) {
	recs, err := ReadGFF(strings.NewReader(gffData))
	if err != nil {
		t.Fatalf("ReadGFF() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ReadGFF() = %d records, want 2", len(recs))
	}
	r := recs[0]
	if r.Start != 100 || r.Stop != 200 || r.Kind != "gene" || r.Label != "gene" || r.Strand != StrandForward {
		t.Errorf("record 0 = %+v", r)
	}
	if recs[1].Strand != StrandReverse {
		t.Errorf("record 1 strand = %v, want reverse", recs[1].Strand)
	}
}

func TestFilter(t *testing.T) {
	recs := []Record{
		{Seq: "chr1", Start: 10, Stop: 20},
		{Seq: "chr1", Start: 50, Stop: 60},
		{Seq: "chr2", Start: 10, Stop: 20},
	}
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"sequence", Filter{Seq: "chr1"}, 2},
		{"region", Filter{Seq: "chr1", From: 15, To: 40}, 1},
		{"open end", Filter{From: 55}, 1},
		{"nothing", Filter{Seq: "chrX"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.filter.Apply(recs)); got != tt.want {
				t.Errorf("Apply() = %d records, want %d", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	recs, err := ReadBED(strings.NewReader(bedData), 6)
	if err != nil {
		t.Fatal(err)
	}

	f, err := Build(recs, BuildOptions{Panel: "chr1", Region: Filter{Seq: "chr1"}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if f.Extent() != 500 {
		t.Errorf("Extent() = %d, want 500", f.Extent())
	}
	tracks := f.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(tracks))
	}
	if got := len(tracks[0].Units()); got != 3 {
		t.Errorf("units = %d, want 3", got)
	}
	if got := len(tracks[0].Layout().Rows); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
}

func TestBuildSplitStrandsAndRegion(t *testing.T) {
	recs, err := ReadBED(strings.NewReader(bedData), 6)
	if err != nil {
		t.Fatal(err)
	}

	f, err := Build(recs, BuildOptions{
		Region:       Filter{Seq: "chr1", From: 101, To: 400},
		SplitStrands: true,
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if f.Extent() != 300 {
		t.Errorf("Extent() = %d, want 300", f.Extent())
	}

	tracks := f.Tracks()
	if len(tracks) != 2 {
		t.Fatalf("tracks = %d, want forward and reverse", len(tracks))
	}
	if tracks[1].Buoyancy() != layout.Sinking {
		t.Errorf("reverse track buoyancy = %v, want sinking", tracks[1].Buoyancy())
	}

	first := tracks[0].Units()[0].(*mosaic.Glyph).Interval()
	if first.Start() != 1 || first.Stop() != 100 {
		t.Errorf("clipped geneA = %v, want 1..100", first)
	}
	last := tracks[0].Units()[1].(*mosaic.Glyph).Interval()
	if last.Start() != 300 || last.Stop() != 300 {
		t.Errorf("clipped geneC = %v, want 300..300", last)
	}
}

func TestBuildCDSGroup(t *testing.T) {
	recs := []Record{{Label: "lacZ", Seq: "chr1", Start: 10, Stop: 100, CDSStart: 20, CDSStop: 90}}
	f, err := Build(recs, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	g, ok := f.Tracks()[0].Units()[0].(*mosaic.Group)
	if !ok {
		t.Fatalf("coding record should become a group")
	}
	if g.Len() != 2 || len(g.Layout().Rows) != 2 {
		t.Errorf("group children = %d, rows = %d, want 2 and 2", g.Len(), len(g.Layout().Rows))
	}
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil, BuildOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Build(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestUCSCQuery(t *testing.T) {
	q := UCSCQuery{Genome: "sacCer3", Table: "sgdGene", Filter: Filter{Seq: "chrI", From: 1000, To: 5000}}
	if err := q.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	stmt, args := q.SQL()
	want := "SELECT name, chrom, strand, txStart, txEnd, cdsStart, cdsEnd FROM sgdGene WHERE chrom = ? AND txEnd >= ? AND txStart < ? ORDER BY txStart"
	if stmt != want {
		t.Errorf("SQL() = %q, want %q", stmt, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v", args)
	}

	bad := []UCSCQuery{
		{Genome: "hg38; DROP TABLE x", Filter: Filter{Seq: "chr1"}},
		{Genome: "hg38", Table: "refGene where 1", Filter: Filter{Seq: "chr1"}},
		{Genome: "hg38"},
	}
	for _, q := range bad {
		if err := q.Validate(); err == nil {
			t.Errorf("Validate(%+v) should fail", q)
		}
	}
}

func TestGeneRecord(t *testing.T) {
	r := geneRecord("YAL001C", "chrI", "-", 147593, 151166, 147593, 151166)
	if r.Start != 147594 || r.Stop != 151166 || r.Strand != StrandReverse || !r.HasCDS() {
		t.Errorf("geneRecord() = %+v", r)
	}
	nc := geneRecord("tRNA", "chrI", "+", 100, 172, 172, 172)
	if nc.HasCDS() {
		t.Error("non-coding gene should have no CDS")
	}
}

func TestDSN(t *testing.T) {
	cfg, err := mysql.ParseDSN(DSN("", "hg38"))
	if err != nil {
		t.Fatalf("ParseDSN() error = %v", err)
	}
	if cfg.User != "genome" || cfg.Addr != UCSCHost || cfg.DBName != "hg38" || cfg.Net != "tcp" {
		t.Errorf("DSN() config = %+v", cfg)
	}
	if cfg.Timeout == 0 {
		t.Error("DSN() should set a dial timeout")
	}
}
