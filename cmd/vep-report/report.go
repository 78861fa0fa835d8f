package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vep-report/internal/duckdb"
	"github.com/inodb/vep-report/internal/ensembl"
	"github.com/inodb/vep-report/internal/report"
	"github.com/inodb/vep-report/internal/vcf"
)

// Config holds the annotation service settings, sourced from flags and
// ~/.vep-report.yaml.
type Config struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
	Timeout  int    `mapstructure:"timeout" validate:"gt=0"`
}

func newReportCmd(debug *bool) *cobra.Command {
	var duckdbPath string

	cmd := &cobra.Command{
		Use:   "report <input.vcf> <output.csv> <output.gob>",
		Short: "Generate an annotated variant report",
		Long: `Read variants from a VCF file, query the annotation service once per
record, and write the merged results to a gob snapshot and a CSV file.
Both files are written only after the full input has been processed.`,
		Example: `  vep-report report input.vcf report.csv report.gob
  vep-report report --duckdb report.duckdb input.vcf report.csv report.gob
  vep-report report --endpoint http://rest.ensembl.org/vep/human/region input.vcf out.csv out.gob`,
		Args: cobra.ExactArgs(3),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("endpoint", cmd.Flags().Lookup("endpoint")); err != nil {
				return err
			}
			return viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), args[0], args[1], args[2], duckdbPath, *debug)
		},
	}

	cmd.Flags().StringVar(&duckdbPath, "duckdb", "", "Also write entries to a DuckDB database at this path")
	cmd.Flags().String("endpoint", ensembl.DefaultBaseURL, "Annotation service URL")
	cmd.Flags().Int("timeout", defaultTimeout, "Annotation request timeout in seconds")

	return cmd
}

func runReport(ctx context.Context, inputPath, csvPath, gobPath, duckdbPath string, debug bool) error {
	logger, err := createLogger(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	client := ensembl.NewClient(cfg.Endpoint,
		ensembl.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
		ensembl.WithLogger(logger))

	gen := report.NewGenerator(client)
	gen.SetLogger(logger)

	entries, err := gen.Run(ctx, parser)
	if err != nil {
		return err
	}

	if err := writeGobFile(gobPath, entries); err != nil {
		return err
	}

	if err := writeCSVFile(csvPath, entries); err != nil {
		return err
	}

	if duckdbPath != "" {
		store, err := duckdb.Open(duckdbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.WriteEntries(entries); err != nil {
			return err
		}
	}

	logger.Info("report written",
		zap.Int("entries", len(entries)),
		zap.String("csv", csvPath),
		zap.String("dump", gobPath))

	fmt.Printf("Data written to %s\n", csvPath)
	return nil
}

func writeGobFile(path string, entries []report.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}

	if err := report.WriteGob(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSVFile(path string, entries []report.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	if err := report.WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
