package importer

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
)

// UCSCHost is the public UCSC Genome Browser MySQL server.
const UCSCHost = "genome-mysql.soe.ucsc.edu:3306"

// DefaultGeneTable is the gene prediction table queried when none is given.
const DefaultGeneTable = "refGene"

var identRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// UCSCQuery selects genes from a genePred table.
type UCSCQuery struct {
	Genome string // e.g. hg38, sacCer3
	Table  string // e.g. refGene, knownGene
	Filter Filter
}

// Validate checks that names are safe to splice into SQL.
func (q UCSCQuery) Validate() error {
	if !identRe.MatchString(q.Genome) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid genome name %q", q.Genome)
	}
	if q.Table != "" && !identRe.MatchString(q.Table) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid table name %q", q.Table)
	}
	if q.Filter.Seq == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a chromosome is required for UCSC queries")
	}
	return nil
}

// SQL returns the statement and arguments for q. Coordinates in genePred
// tables are zero-based half-open.
func (q UCSCQuery) SQL() (string, []any) {
	table := q.Table
	if table == "" {
		table = DefaultGeneTable
	}
	stmt := fmt.Sprintf("SELECT name, chrom, strand, txStart, txEnd, cdsStart, cdsEnd FROM %s WHERE chrom = ?", table)
	args := []any{q.Filter.Seq}
	if q.Filter.From > 0 {
		stmt += " AND txEnd >= ?"
		args = append(args, q.Filter.From)
	}
	if q.Filter.To > 0 {
		stmt += " AND txStart < ?"
		args = append(args, q.Filter.To)
	}
	return stmt + " ORDER BY txStart", args
}

// DSN returns the MySQL data source name for a genome database.
func DSN(host, genome string) string {
	if host == "" {
		host = UCSCHost
	}
	cfg := mysql.NewConfig()
	cfg.User = "genome"
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = genome
	cfg.Timeout = 10 * time.Second
	cfg.ReadTimeout = 60 * time.Second
	return cfg.FormatDSN()
}

// FetchUCSC runs q against host (UCSCHost when empty).
func FetchUCSC(ctx context.Context, host string, q UCSCQuery) ([]Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", DSN(host, q.Genome))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "open %s", q.Genome)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to %s", host)
	}
	return QueryGenes(ctx, db, q)
}

// QueryGenes runs q on an open database.
func QueryGenes(ctx context.Context, db *sql.DB, q UCSCQuery) ([]Record, error) {
	stmt, args := q.SQL()
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s", q.Table)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			name, chrom, str             string
			txFrom, txTo, cdsFrom, cdsTo int
		)
		if err := rows.Scan(&name, &chrom, &str, &txFrom, &txTo, &cdsFrom, &cdsTo); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "scan gene row")
		}
		out = append(out, geneRecord(name, chrom, str, txFrom, txTo, cdsFrom, cdsTo))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read gene rows")
	}
	return out, nil
}

func geneRecord(name, chrom, str string, txFrom, txTo, cdsFrom, cdsTo int) Record {
	r := Record{
		Label:  name,
		Seq:    chrom,
		Kind:   "gene",
		Start:  txFrom + 1,
		Stop:   txTo,
		Strand: ParseStrand(str),
	}
	// Non-coding genes have cdsStart == cdsEnd.
	if cdsTo > cdsFrom {
		r.CDSStart, r.CDSStop = cdsFrom+1, cdsTo
	}
	return r
}
