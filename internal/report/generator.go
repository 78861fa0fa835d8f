package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vep-report/internal/ensembl"
	"github.com/inodb/vep-report/internal/vcf"
)

// Annotator fetches annotations for a normalized variant. Implementations
// must degrade to an empty result rather than fail; see ensembl.Client.
type Annotator interface {
	Annotate(ctx context.Context, v ensembl.Variant) ensembl.Result
}

// Generator runs the report pipeline: decode, normalize, annotate, merge.
// Processing is fully sequential; one record completes before the next
// begins, and nothing is written until the whole input has been read.
type Generator struct {
	annotator Annotator
	logger    *zap.Logger
}

// NewGenerator creates a generator backed by the given annotator.
func NewGenerator(a Annotator) *Generator {
	return &Generator{
		annotator: a,
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (g *Generator) SetLogger(l *zap.Logger) {
	g.logger = l
}

// Run reads every record from the parser and returns one entry per record,
// in input order. Records without an alternate allele are logged and
// skipped. Annotation failures never abort the run; the affected entry
// simply carries an empty annotation.
func (g *Generator) Run(ctx context.Context, parser vcf.VariantParser) ([]Entry, error) {
	var entries []Entry

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := parser.Next()
		if err != nil {
			return nil, fmt.Errorf("read variant: %w", err)
		}
		if rec == nil {
			break
		}

		v, err := Normalize(rec)
		if err != nil {
			g.logger.Warn("skipping record without alternate allele",
				zap.String("chrom", rec.Chrom),
				zap.Int64("pos", rec.Pos),
				zap.Int("line", parser.LineNumber()))
			continue
		}

		entries = append(entries, Entry{
			Variant:    v,
			Info:       rec.Info,
			Annotation: g.annotator.Annotate(ctx, v),
		})
	}

	g.logger.Info("processed variants", zap.Int("count", len(entries)))

	return entries, nil
}
