package dataprocessing

import (
	"log/slog"

	"moviedash/pkg/contracts/domain"
)

// BuildBaseTable runs load, clean and derive for one file. Only load failures
// are returned as errors; data-quality defects shrink the table instead.
func BuildBaseTable(path string, logger *slog.Logger) (*domain.BaseTable, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Movie file parsed",
		slog.String("source", raw.Source),
		slog.Int("rows", len(raw.Rows)),
		slog.Int("skipped_lines", raw.Skipped),
		slog.Int("columns", len(raw.Columns)))

	table := BuildFromRaw(raw)
	logger.Info("Base table ready",
		slog.Int("clean_rows", table.Report.CleanRows),
		slog.Int("dropped_required", table.Report.DroppedRequired),
		slog.Int("dropped_incomplete", table.Report.DroppedIncomplete),
		slog.Int("missing_months", table.Report.MissingMonths),
		slog.Int("non_finite_roi", table.Report.NonFiniteROI),
		slog.Int("genres", len(table.Genres)),
		slog.Int("ratings", len(table.Ratings)))

	return table, nil
}

// BuildFromRaw cleans and derives an already parsed table.
func BuildFromRaw(raw *domain.RawTable) *domain.BaseTable {
	cleaned, cleanReport := Clean(raw)
	records := Derive(cleaned)

	report := domain.LoadReport{
		Source:            raw.Source,
		ParsedRows:        len(raw.Rows),
		SkippedLines:      raw.Skipped,
		DroppedRequired:   cleanReport.DroppedRequired,
		DroppedIncomplete: cleanReport.DroppedIncomplete,
		CleanRows:         len(records),
	}
	for _, r := range records {
		if !r.HasReleaseMonth() {
			report.MissingMonths++
		}
		if !r.HasFiniteROI() {
			report.NonFiniteROI++
		}
	}

	return &domain.BaseTable{
		Records: records,
		Genres:  DistinctGenres(records),
		Ratings: DistinctRatings(records),
		Report:  report,
	}
}
