package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"moviedash/pkg/contracts/domain"
)

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Delimiter rune
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// DefaultWriteOptions writes comma separated UTF-8 with a BOM.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Delimiter: ',', BOMPrefix: true}
}

// CSVWriter writes movie rows as delimited text
type CSVWriter struct {
	options WriteOptions
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(options WriteOptions) *CSVWriter {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	return &CSVWriter{options: options}
}

// WriteMovies writes the header and one line per record.
func (cw *CSVWriter) WriteMovies(w io.Writer, records []domain.MovieRecord) error {
	if cw.options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	writer.Comma = cw.options.Delimiter

	if err := writer.Write(MovieHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range records {
		if err := writer.Write(movieRow(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
