package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"moviedash/pkg/contracts/domain"
)

// SheetName is the worksheet holding exported movies.
const SheetName = "Movies"

// XLSXWriter writes movie rows as a single sheet workbook
type XLSXWriter struct{}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WriteMovies streams the header and records into a workbook and writes it to w.
// Numeric columns are stored as numbers; missing derived values are left empty.
func (xw *XLSXWriter) WriteMovies(w io.Writer, records []domain.MovieRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(MovieHeaders))
	for i, h := range MovieHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, workbookRow(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func workbookRow(r domain.MovieRecord) []interface{} {
	var roi, month interface{}
	if r.HasFiniteROI() {
		roi = r.ROI
	}
	if r.HasReleaseMonth() {
		month = r.ReleaseMonth
	}
	return []interface{}{
		r.Name, r.Rating, r.Genre, r.Year, r.Released, r.Score, r.Votes,
		r.Director, r.Writer, r.Star, r.Country, r.Budget, r.Gross,
		r.Company, r.Runtime, roi, month,
	}
}
