package report

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
)

func init() {
	// Annotation values arrive as decoded JSON; register the container
	// types so they survive gob round-trips inside interface fields.
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
}

// WriteCSV writes the header row followed by one projected row per entry,
// in entry order.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		if err := cw.Write(Row(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteGob serializes the full entry collection as a binary snapshot.
func WriteGob(w io.Writer, entries []Entry) error {
	if err := gob.NewEncoder(w).Encode(entries); err != nil {
		return fmt.Errorf("encode report dump: %w", err)
	}
	return nil
}

// ReadGob loads a snapshot previously written by WriteGob.
func ReadGob(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := gob.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode report dump: %w", err)
	}
	return entries, nil
}
