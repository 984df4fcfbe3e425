package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"moviedash/pkg/contracts/domain"
)

// naTokens are the cell values read as missing, in addition to blanks.
var naTokens = map[string]bool{
	"NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true,
	"-NaN": true, "-nan": true, "NULL": true, "null": true, "None": true,
	"<NA>": true, "#N/A": true, "#NA": true, "#N/A N/A": true,
	"-1.#IND": true, "-1.#QNAN": true, "1.#IND": true, "1.#QNAN": true,
}

// IsMissing reports whether a raw cell holds no value.
func IsMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	return cell == "" || naTokens[cell]
}

// ParseNumber coerces a raw cell to a finite float. Anything else is missing.
func ParseNumber(cell string) (float64, bool) {
	if IsMissing(cell) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// CleanReport counts the rows removed by each cleaning step.
type CleanReport struct {
	Input             int
	DroppedRequired   int
	DroppedIncomplete int
	Output            int
}

// Clean turns raw rows into typed movie records:
//
//  1. rows missing gross or company are dropped
//  2. budget and gross are coerced to numbers, failures become missing
//  3. rows with any missing schema value are dropped
//  4. year is truncated to an integer
//
// Defective rows are removed, never reported as errors. The result may be empty.
func Clean(raw *domain.RawTable) ([]domain.MovieRecord, CleanReport) {
	report := CleanReport{Input: len(raw.Rows)}
	cols := columnIndexes(raw)

	records := make([]domain.MovieRecord, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		cell := func(name string) string { return strings.TrimSpace(row[cols[name]]) }

		if IsMissing(cell(domain.ColumnGross)) || IsMissing(cell(domain.ColumnCompany)) {
			report.DroppedRequired++
			continue
		}

		record, ok := typedRecord(cell)
		if !ok {
			report.DroppedIncomplete++
			continue
		}
		records = append(records, record)
	}

	report.Output = len(records)
	return records, report
}

func columnIndexes(raw *domain.RawTable) map[string]int {
	cols := make(map[string]int, len(domain.RequiredColumns))
	for _, name := range domain.RequiredColumns {
		cols[name] = raw.Index(name)
	}
	return cols
}

// typedRecord applies steps 2-4 to one row. Numeric columns that do not parse
// count as missing.
func typedRecord(cell func(string) string) (domain.MovieRecord, bool) {
	for _, name := range domain.RequiredColumns {
		if IsMissing(cell(name)) {
			return domain.MovieRecord{}, false
		}
	}

	budget, ok := ParseNumber(cell(domain.ColumnBudget))
	if !ok {
		return domain.MovieRecord{}, false
	}
	gross, ok := ParseNumber(cell(domain.ColumnGross))
	if !ok {
		return domain.MovieRecord{}, false
	}
	year, ok := ParseNumber(cell(domain.ColumnYear))
	if !ok {
		return domain.MovieRecord{}, false
	}
	score, ok := ParseNumber(cell(domain.ColumnScore))
	if !ok {
		return domain.MovieRecord{}, false
	}
	votes, ok := ParseNumber(cell(domain.ColumnVotes))
	if !ok {
		return domain.MovieRecord{}, false
	}
	runtime, ok := ParseNumber(cell(domain.ColumnRuntime))
	if !ok {
		return domain.MovieRecord{}, false
	}

	return domain.MovieRecord{
		Name:     cell(domain.ColumnName),
		Rating:   cell(domain.ColumnRating),
		Genre:    cell(domain.ColumnGenre),
		Year:     int(math.Trunc(year)),
		Released: cell(domain.ColumnReleased),
		Score:    score,
		Votes:    int64(votes),
		Director: cell(domain.ColumnDirector),
		Writer:   cell(domain.ColumnWriter),
		Star:     cell(domain.ColumnStar),
		Country:  cell(domain.ColumnCountry),
		Budget:   budget,
		Gross:    gross,
		Company:  cell(domain.ColumnCompany),
		Runtime:  runtime,
	}, true
}
