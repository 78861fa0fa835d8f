// Package report builds annotated variant reports from VCF records.
package report

import (
	"fmt"

	"github.com/inodb/vep-report/internal/ensembl"
	"github.com/inodb/vep-report/internal/vcf"
)

// Entry is one fully-processed record: the normalized variant, the INFO
// fields carried over from the source record, and the merged annotation
// response. Entries accumulate in input order and are the unit written to
// every output artifact.
type Entry struct {
	ensembl.Variant

	Info       map[string]string
	Annotation ensembl.Result
}

// Normalize maps a decoded VCF record into the canonical variant shape,
// keeping only the first alternate allele of a multi-allelic record.
// A record with no alternate alleles is an error; callers decide whether
// to skip or abort.
func Normalize(v *vcf.Variant) (ensembl.Variant, error) {
	alts := v.AltAlleles()
	if len(alts) == 0 {
		return ensembl.Variant{}, fmt.Errorf("record %s:%d has no alternate allele", v.Chrom, v.Pos)
	}

	return ensembl.Variant{
		Chrom: v.Chrom,
		Pos:   v.Pos,
		Ref:   v.Ref,
		Alt:   alts[0],
	}, nil
}
