package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"moviedash/pkg/contracts/domain"
)

// Delimiter separates fields in movie files.
const Delimiter = ';'

// ErrLoad marks every fatal load failure.
var ErrLoad = errors.New("movie data load failed")

// LoadError describes why a movie file could not be turned into a raw table.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrLoad) match any LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// ParseFile reads a movie file into a raw table. Workbooks (.xlsx) are read
// from their first sheet, anything else is treated as Latin-1 delimited text.
func ParseFile(path string) (*domain.RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return parseWorkbook(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	return ParseDelimited(f, path)
}

// ParseDelimited decodes Latin-1 text split on Delimiter. Lines that cannot be
// parsed, or that carry more fields than the header, are skipped. Short lines
// are padded with empty (missing) cells.
func ParseDelimited(r io.Reader, source string) (*domain.RawTable, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: source, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &LoadError{Path: source, Reason: "unreadable header", Err: err}
	}

	table := &domain.RawTable{Source: source, Columns: normalizeHeader(header)}
	if err := checkRequiredColumns(table); err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				slog.Debug("Skipping malformed line",
					slog.String("source", source),
					slog.Int("line", parseErr.Line))
				table.Skipped++
				continue
			}
			return nil, &LoadError{Path: source, Reason: "read failed", Err: err}
		}
		if !appendRow(table, record) {
			table.Skipped++
		}
	}

	if len(table.Rows) == 0 {
		return nil, &LoadError{Path: source, Reason: "no parsable rows"}
	}
	return table, nil
}

func parseWorkbook(path string) (*domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot read sheet " + sheets[0], Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Reason: "file is empty"}
	}

	table := &domain.RawTable{Source: path, Columns: normalizeHeader(rows[0])}
	if err := checkRequiredColumns(table); err != nil {
		return nil, err
	}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if !appendRow(table, row) {
			table.Skipped++
		}
	}

	if len(table.Rows) == 0 {
		return nil, &LoadError{Path: path, Reason: "no parsable rows"}
	}
	return table, nil
}

func normalizeHeader(header []string) []string {
	cols := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.TrimPrefix(h, "ï»¿") // UTF-8 BOM read as Latin-1
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return cols
}

func checkRequiredColumns(table *domain.RawTable) error {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if table.Index(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &LoadError{
			Path:   table.Source,
			Reason: "missing required columns: " + strings.Join(missing, ", "),
		}
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// appendRow copies a record into the table, padding short records. Records
// wider than the header are rejected.
func appendRow(table *domain.RawTable, record []string) bool {
	if len(record) > len(table.Columns) {
		return false
	}
	row := make([]string, len(table.Columns))
	copy(row, record)
	table.Rows = append(table.Rows, row)
	return true
}
