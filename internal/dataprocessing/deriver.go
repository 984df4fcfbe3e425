package dataprocessing

import (
	"strings"
	"time"

	"moviedash/pkg/contracts/domain"
)

// releaseLayouts are tried in order when reading a release date.
var releaseLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"2006-01",
}

// ComputeROI returns (gross - budget) / budget. A zero budget yields +Inf,
// -Inf or NaN rather than a failure.
func ComputeROI(gross, budget float64) float64 {
	return (gross - budget) / budget
}

// ParseReleaseMonth extracts the calendar month from a release text such as
// "June 13, 1980 (United States)". It returns false when no layout matches.
func ParseReleaseMonth(released string) (int, bool) {
	s := strings.TrimSpace(released)
	if i := strings.Index(s, "("); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return 0, false
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return int(t.Month()), true
		}
	}
	return 0, false
}

// Derive returns copies of the records with ROI and ReleaseMonth filled in.
// The input slice is not modified.
func Derive(records []domain.MovieRecord) []domain.MovieRecord {
	out := make([]domain.MovieRecord, len(records))
	for i, r := range records {
		r.ROI = ComputeROI(r.Gross, r.Budget)
		if month, ok := ParseReleaseMonth(r.Released); ok {
			r.ReleaseMonth = month
		} else {
			r.ReleaseMonth = 0
		}
		out[i] = r
	}
	return out
}
