package report

import (
	"math"
	"strconv"
	"strings"
)

// Columns is the fixed CSV header.
var Columns = []string{
	"chrom",
	"pos",
	"ref",
	"alt",
	"depth",
	"alt_reads",
	"percent_alt_reads",
	"percent_ref_reads",
	"gene",
	"variant_effect",
	"minor_allele",
	"minor_allele_frequency",
	"somatic",
	"id",
}

// Row projects an entry onto the fixed column set. Missing fields default
// to the empty string; percentage columns are filled only when both depth
// and alternate read count are present and nonzero.
func Row(e Entry) []string {
	depth := e.Info["DP"]
	altReads := e.Info["AO"]

	percentAlt, percentRef := "", ""
	dp, dpErr := strconv.ParseFloat(depth, 64)
	ao, aoErr := strconv.ParseFloat(altReads, 64)
	if dpErr == nil && aoErr == nil && dp != 0 && ao != 0 {
		percentAlt = formatPercent(ao / dp * 100)
		percentRef = formatPercent((dp - ao) / dp * 100)
	}

	gene, variantEffect := consequence(e.Annotation)

	id, _ := e.Annotation["id"].(string)
	somatic := ""
	if strings.Contains(id, "COSV") {
		somatic = "1"
	}

	return []string{
		e.Chrom,
		strconv.FormatInt(e.Pos, 10),
		e.Ref,
		e.Alt,
		depth,
		altReads,
		percentAlt,
		percentRef,
		gene,
		variantEffect,
		e.Info["MA"],
		e.Info["MAF"],
		somatic,
		id,
	}
}

// consequence extracts the gene symbol and joined consequence terms from
// the first transcript consequence of an annotation, if any.
func consequence(ann map[string]interface{}) (gene, effect string) {
	tcs, ok := ann["transcript_consequences"].([]interface{})
	if !ok || len(tcs) == 0 {
		return "", ""
	}

	first, ok := tcs[0].(map[string]interface{})
	if !ok {
		return "", ""
	}

	gene, _ = first["gene_symbol"].(string)

	if terms, ok := first["consequence_terms"].([]interface{}); ok {
		parts := make([]string, 0, len(terms))
		for _, t := range terms {
			if s, ok := t.(string); ok {
				parts = append(parts, s)
			}
		}
		effect = strings.Join(parts, ", ")
	}

	return gene, effect
}

// formatPercent rounds to two decimals and always keeps at least one
// decimal digit, so whole percentages render as "25.0" rather than "25".
func formatPercent(v float64) string {
	r := math.Round(v*100) / 100
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
