package importer

import (
	"io"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/bed"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
)

// BEDColumns is the column count read when none is given.
const BEDColumns = 6

// ReadBED reads a BED file with the given number of columns (3, 4, 5, 6
// or 12). Names, when present, become labels.
func ReadBED(r io.Reader, columns int) ([]Record, error) {
	if columns == 0 {
		columns = BEDColumns
	}
	br, err := bed.NewReader(r, columns)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bed reader")
	}
	return scan(br, "bed", fromBED)
}

// ReadGFF reads a GFF2/GFF3 file. Labels come from the Name, gene or ID
// attribute, falling back to the feature type.
func ReadGFF(r io.Reader) ([]Record, error) {
	return scan(gff.NewReader(r), "gff", fromGFF)
}

func scan(r featio.Reader, format string, convert func(feat.Feature) (Record, bool)) ([]Record, error) {
	var out []Record
	sc := featio.NewScanner(r)
	for sc.Next() {
		if rec, ok := convert(sc.Feat()); ok {
			out = append(out, rec)
		}
	}
	if err := sc.Error(); err != nil {
		return out, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", format)
	}
	return out, nil
}

func fromBED(f feat.Feature) (Record, bool) {
	rec := Record{Start: f.Start() + 1, Stop: f.End(), Kind: "feature"}
	switch b := f.(type) {
	case *bed.Bed3:
		rec.Seq = b.Chrom
	case *bed.Bed4:
		rec.Seq, rec.Label = b.Chrom, b.FeatName
	case *bed.Bed5:
		rec.Seq, rec.Label = b.Chrom, b.FeatName
	case *bed.Bed6:
		rec.Seq, rec.Label, rec.Strand = b.Chrom, b.FeatName, strand(b.FeatStrand)
	case *bed.Bed12:
		rec.Seq, rec.Label, rec.Strand = b.Chrom, b.FeatName, strand(b.FeatStrand)
		if b.ThickEnd > b.ThickStart {
			rec.CDSStart, rec.CDSStop = b.ThickStart+1, b.ThickEnd
		}
	default:
		return Record{}, false
	}
	return rec, true
}

func fromGFF(f feat.Feature) (Record, bool) {
	g, ok := f.(*gff.Feature)
	if !ok {
		return Record{}, false
	}
	rec := Record{
		Seq:    g.SeqName,
		Kind:   g.Feature,
		Start:  g.FeatStart + 1,
		Stop:   g.FeatEnd,
		Strand: strand(g.FeatStrand),
	}
	for _, tag := range []string{"Name", "gene", "ID"} {
		if v := g.FeatAttributes.Get(tag); v != "" {
			rec.Label = v
			break
		}
	}
	if rec.Label == "" {
		rec.Label = g.Feature
	}
	return rec, true
}

func strand(s seq.Strand) Strand {
	switch s {
	case seq.Plus:
		return StrandForward
	case seq.Minus:
		return StrandReverse
	}
	return StrandNone
}
