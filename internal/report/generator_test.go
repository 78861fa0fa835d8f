package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vep-report/internal/ensembl"
	"github.com/inodb/vep-report/internal/vcf"
)

// fakeAnnotator records queried variants and returns a canned result.
type fakeAnnotator struct {
	queried []ensembl.Variant
	result  ensembl.Result
}

func (f *fakeAnnotator) Annotate(_ context.Context, v ensembl.Variant) ensembl.Result {
	f.queried = append(f.queried, v)
	return f.result
}

const generatorVCF = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
1	100	.	A	G	.	PASS	DP=50;AO=10
2	200	.	C	T,G	.	PASS	DP=40;AO=5
3	300	.	G	.	.	PASS	DP=30
4	400	.	T	A	.	PASS	.
`

func TestGenerator_Run(t *testing.T) {
	parser, err := vcf.NewParserFromReader(strings.NewReader(generatorVCF))
	require.NoError(t, err)
	defer parser.Close()

	fake := &fakeAnnotator{result: ensembl.Result{"id": "rs1"}}
	gen := NewGenerator(fake)

	entries, err := gen.Run(context.Background(), parser)
	require.NoError(t, err)

	// The record without an alternate allele is skipped, not fatal
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[0].Chrom)
	assert.Equal(t, "T", entries[1].Alt, "multi-allelic record keeps first alternate")
	assert.Equal(t, "4", entries[2].Chrom)

	// One annotation call per surviving record, in order
	require.Len(t, fake.queried, 3)
	assert.Equal(t, int64(100), fake.queried[0].Pos)

	// Annotation and INFO are both merged into the entry
	assert.Equal(t, "rs1", entries[0].Annotation["id"])
	assert.Equal(t, "50", entries[0].Info["DP"])
}

func TestGenerator_EndToEnd(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			// One failing lookup must not abort the batch
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"COSV99999999"}`))
	}))
	defer server.Close()

	parser, err := vcf.NewParserFromReader(strings.NewReader(generatorVCF))
	require.NoError(t, err)
	defer parser.Close()

	gen := NewGenerator(ensembl.NewClient(server.URL))

	entries, err := gen.Run(context.Background(), parser)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "COSV99999999", entries[0].Annotation["id"])
	assert.Empty(t, entries[1].Annotation, "failed lookup degrades to empty annotation")

	// Both artifacts reflect the same entry count
	var gobBuf, csvBuf bytes.Buffer
	require.NoError(t, WriteGob(&gobBuf, entries))
	require.NoError(t, WriteCSV(&csvBuf, entries))

	decoded, err := ReadGob(&gobBuf)
	require.NoError(t, err)
	assert.Len(t, decoded, 3)

	lines := strings.Split(strings.TrimRight(csvBuf.String(), "\n"), "\n")
	assert.Len(t, lines, 4, "header plus one row per entry")
}
