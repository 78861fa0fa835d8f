// Package vcf provides VCF file parsing functionality.
package vcf

import "strings"

// Variant represents a single record from a VCF file.
type Variant struct {
	Chrom  string            // Chromosome name (e.g., "1", "chr1")
	Pos    int64             // Genomic position as written in the file
	ID     string            // Variant identifier ("." if absent)
	Ref    string            // Reference allele
	Alt    string            // Alternate allele field, possibly comma-separated
	Qual   float64           // Quality score
	Filter string            // Filter status (PASS or filter name)
	Info   map[string]string // INFO field key-value pairs; flags map to "1"
}

// AltAlleles returns the alternate alleles as a slice.
// A missing ALT field (".") yields an empty slice.
func (v *Variant) AltAlleles() []string {
	if v.Alt == "" || v.Alt == "." {
		return nil
	}
	return strings.Split(v.Alt, ",")
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}
