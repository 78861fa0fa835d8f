// Package duckdb persists report entries in a queryable DuckDB table.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vep-report/internal/report"
)

// Store manages a DuckDB connection holding report entries.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates the report table if it doesn't exist. Columns mirror
// the CSV projection so both artifacts answer the same questions.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS report_entries (
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		depth VARCHAR,
		alt_reads VARCHAR,
		percent_alt_reads VARCHAR,
		percent_ref_reads VARCHAR,
		gene VARCHAR,
		variant_effect VARCHAR,
		minor_allele VARCHAR,
		minor_allele_frequency VARCHAR,
		somatic VARCHAR,
		id VARCHAR
	)`)
	return err
}

// WriteEntries batch-inserts entries using the Appender API, in entry order.
func (s *Store) WriteEntries(entries []report.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "report_entries")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, e := range entries {
		row := report.Row(e)
		if err := appender.AppendRow(
			e.Chrom, e.Pos, e.Ref, e.Alt,
			row[4], row[5], row[6], row[7],
			row[8], row[9], row[10], row[11],
			row[12], row[13],
		); err != nil {
			return fmt.Errorf("append report entry: %w", err)
		}
	}

	return appender.Flush()
}

// EntryCount returns the number of stored entries.
func (s *Store) EntryCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM report_entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count report entries: %w", err)
	}
	return count, nil
}
