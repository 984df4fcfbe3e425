package exporter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"moviedash/pkg/contracts/domain"
)

// Format is a download format for the filtered table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for any format other than csv or xlsx.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat accepts a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the download name for an export in this format.
func (f Format) FileName() string {
	return "movies_filtered." + string(f)
}

// MovieHeaders are the exported columns: the schema in file order followed by
// the two derived columns.
var MovieHeaders = append(append([]string{}, domain.RequiredColumns...), "roi", "release_month")

// formatFloat keeps the shortest exact representation; non-finite values are blank
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatMonth(month int) string {
	if month == 0 {
		return ""
	}
	return strconv.Itoa(month)
}

// movieRow renders a record in MovieHeaders order.
func movieRow(r domain.MovieRecord) []string {
	return []string{
		r.Name,
		r.Rating,
		r.Genre,
		formatInt(int64(r.Year)),
		r.Released,
		formatFloat(r.Score),
		formatInt(r.Votes),
		r.Director,
		r.Writer,
		r.Star,
		r.Country,
		formatFloat(r.Budget),
		formatFloat(r.Gross),
		r.Company,
		formatFloat(r.Runtime),
		formatFloat(r.ROI),
		formatMonth(r.ReleaseMonth),
	}
}
