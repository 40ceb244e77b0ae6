package reader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/record"
)

// CSVReader reads comma-separated sources with a header row. The header
// defines the column declaration order; each subsequent row becomes one
// record keyed by header name.
type CSVReader struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// TrimSpace trims surrounding whitespace from header names and values.
	TrimSpace bool
}

// NewCSVReader returns a CSV reader with default settings.
func NewCSVReader() *CSVReader {
	return &CSVReader{TrimSpace: true}
}

// Read parses the source into a record set. Ragged rows, quoting errors,
// duplicate headers and an empty header all fail with ErrSourceRead.
func (r *CSVReader) Read(ctx context.Context, src io.Reader) (record.Set, error) {
	cr := csv.NewReader(src)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return record.Set{}, fmt.Errorf("%w: empty source", errors.ErrSourceRead)
	}
	if err != nil {
		return record.Set{}, fmt.Errorf("%w: %v", errors.ErrSourceRead, err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if r.TrimSpace {
			name = strings.TrimSpace(name)
		}
		if name == "" {
			return record.Set{}, fmt.Errorf("%w: empty column name at index %d", errors.ErrSourceRead, i)
		}
		// Duplicate headers would silently collapse row values.
		if seen[name] {
			return record.Set{}, fmt.Errorf("%w: duplicate column %q", errors.ErrSourceRead, name)
		}
		seen[name] = true
		columns[i] = name
	}

	set := record.Set{Columns: columns}
	rowNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return record.Set{}, errors.Wrap(err, "CSVReader", "Read", "context check")
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return record.Set{}, fmt.Errorf("%w: row %d: %v", errors.ErrSourceRead, rowNum, err)
		}

		rec := make(record.Record, len(columns))
		for i, col := range columns {
			value := row[i]
			if r.TrimSpace {
				value = strings.TrimSpace(value)
			}
			rec[col] = value
		}
		set.Rows = append(set.Rows, rec)
		rowNum++
	}

	return set, nil
}
