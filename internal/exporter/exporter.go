package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"moviedash/pkg/contracts/domain"
)

// Write encodes records in the requested format.
func Write(w io.Writer, format Format, records []domain.MovieRecord) error {
	switch format {
	case FormatCSV:
		return NewCSVWriter(DefaultWriteOptions()).WriteMovies(w, records)
	case FormatXLSX:
		return NewXLSXWriter().WriteMovies(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile exports records to path, creating parent directories. The format
// is taken from the file extension.
func WriteFile(path string, records []domain.MovieRecord) error {
	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}

	slog.Info("Writing export file",
		slog.String("file_path", path),
		slog.String("format", string(format)),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, format, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
