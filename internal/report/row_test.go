package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vep-report/internal/ensembl"
)

func entryAt(col string) int {
	for i, c := range Columns {
		if c == col {
			return i
		}
	}
	return -1
}

func TestRow_Percentages(t *testing.T) {
	e := Entry{
		Variant: ensembl.Variant{Chrom: "1", Pos: 1000000, Ref: "G", Alt: "A"},
		Info:    map[string]string{"DP": "100", "AO": "25"},
	}

	row := Row(e)
	assert.Equal(t, "25.0", row[entryAt("percent_alt_reads")])
	assert.Equal(t, "75.0", row[entryAt("percent_ref_reads")])
}

func TestRow_PercentRounding(t *testing.T) {
	e := Entry{
		Variant: ensembl.Variant{Chrom: "1", Pos: 1, Ref: "G", Alt: "A"},
		Info:    map[string]string{"DP": "3", "AO": "1"},
	}

	row := Row(e)
	assert.Equal(t, "33.33", row[entryAt("percent_alt_reads")])
	assert.Equal(t, "66.67", row[entryAt("percent_ref_reads")])
}

func TestRow_PercentagesBlankWithoutCounts(t *testing.T) {
	tests := []struct {
		name string
		info map[string]string
	}{
		{"no info", nil},
		{"depth only", map[string]string{"DP": "100"}},
		{"zero alt reads", map[string]string{"DP": "100", "AO": "0"}},
		{"non-numeric depth", map[string]string{"DP": "n/a", "AO": "25"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row(Entry{Info: tt.info})
			assert.Empty(t, row[entryAt("percent_alt_reads")])
			assert.Empty(t, row[entryAt("percent_ref_reads")])
		})
	}
}

func TestRow_Somatic(t *testing.T) {
	e := Entry{
		Annotation: ensembl.Result{"id": "COSV56056643"},
	}
	assert.Equal(t, "1", Row(e)[entryAt("somatic")])

	e = Entry{
		Annotation: ensembl.Result{"id": "rs121913529"},
	}
	assert.Equal(t, "", Row(e)[entryAt("somatic")])
}

func TestRow_Consequences(t *testing.T) {
	e := Entry{
		Variant: ensembl.Variant{Chrom: "12", Pos: 25245350, Ref: "C", Alt: "A"},
		Annotation: ensembl.Result{
			"transcript_consequences": []interface{}{
				map[string]interface{}{
					"gene_symbol":       "KRAS",
					"consequence_terms": []interface{}{"missense_variant", "splice_region_variant"},
				},
				map[string]interface{}{
					"gene_symbol": "IGNORED",
				},
			},
		},
	}

	row := Row(e)
	assert.Equal(t, "KRAS", row[entryAt("gene")])
	assert.Equal(t, "missense_variant, splice_region_variant", row[entryAt("variant_effect")])
}

func TestRow_MissingAnnotationDefaults(t *testing.T) {
	e := Entry{
		Variant: ensembl.Variant{Chrom: "1", Pos: 42, Ref: "A", Alt: "T"},
	}

	row := Row(e)
	assert.Len(t, row, len(Columns))
	assert.Equal(t, []string{"1", "42", "A", "T"}, row[:4])
	for i := 4; i < len(row); i++ {
		assert.Empty(t, row[i], "column %s should default to empty", Columns[i])
	}
}

func TestRow_MinorAllele(t *testing.T) {
	e := Entry{
		Info: map[string]string{"MA": "T", "MAF": "0.01"},
	}

	row := Row(e)
	assert.Equal(t, "T", row[entryAt("minor_allele")])
	assert.Equal(t, "0.01", row[entryAt("minor_allele_frequency")])
}
