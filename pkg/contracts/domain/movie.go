package domain

import (
	"math"
)

// Column names of the movie dataset header
const (
	ColumnName     = "name"
	ColumnRating   = "rating"
	ColumnGenre    = "genre"
	ColumnYear     = "year"
	ColumnReleased = "released"
	ColumnScore    = "score"
	ColumnVotes    = "votes"
	ColumnDirector = "director"
	ColumnWriter   = "writer"
	ColumnStar     = "star"
	ColumnCountry  = "country"
	ColumnBudget   = "budget"
	ColumnGross    = "gross"
	ColumnCompany  = "company"
	ColumnRuntime  = "runtime"
)

// RequiredColumns lists every column a movie file must carry, in the
// canonical dataset order.
var RequiredColumns = []string{
	ColumnName, ColumnRating, ColumnGenre, ColumnYear, ColumnReleased,
	ColumnScore, ColumnVotes, ColumnDirector, ColumnWriter, ColumnStar,
	ColumnCountry, ColumnBudget, ColumnGross, ColumnCompany, ColumnRuntime,
}

// MovieRecord is one cleaned movie row plus its derived columns.
type MovieRecord struct {
	Name     string  `json:"name"`
	Rating   string  `json:"rating"`
	Genre    string  `json:"genre"`
	Year     int     `json:"year"`
	Released string  `json:"released"`
	Score    float64 `json:"score"`
	Votes    int64   `json:"votes"`
	Director string  `json:"director"`
	Writer   string  `json:"writer"`
	Star     string  `json:"star"`
	Country  string  `json:"country"`
	Budget   float64 `json:"budget"`
	Gross    float64 `json:"gross"`
	Company  string  `json:"company"`
	Runtime  float64 `json:"runtime"`

	// Derived
	ROI          float64 `json:"-"`
	ReleaseMonth int     `json:"release_month,omitempty"` // 1-12, 0 when unknown
}

// HasFiniteROI reports whether ROI is a usable number (budget was non-zero).
func (m MovieRecord) HasFiniteROI() bool {
	return !math.IsNaN(m.ROI) && !math.IsInf(m.ROI, 0)
}

// HasReleaseMonth reports whether the release month could be parsed.
func (m MovieRecord) HasReleaseMonth() bool {
	return m.ReleaseMonth >= 1 && m.ReleaseMonth <= 12
}

// RawTable is the loader output: header order preserved, cells untyped.
type RawTable struct {
	Source  string     `json:"source"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"-"`
	Skipped int        `json:"skipped"`
}

// Index returns the position of a column in the header, or -1.
func (t *RawTable) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// LoadReport summarises what happened to the rows between file and base table.
type LoadReport struct {
	Source            string `json:"source"`
	ParsedRows        int    `json:"parsed_rows"`
	SkippedLines      int    `json:"skipped_lines"`
	DroppedRequired   int    `json:"dropped_required"`
	DroppedIncomplete int    `json:"dropped_incomplete"`
	CleanRows         int    `json:"clean_rows"`
	MissingMonths     int    `json:"missing_months"`
	NonFiniteROI      int    `json:"non_finite_roi"`
}

// BaseTable is the cleaned and derived table. It is built once and only read
// afterwards; callers must not modify Records.
type BaseTable struct {
	Records []MovieRecord
	Genres  []string
	Ratings []string
	Report  LoadReport
}

// Len returns the number of rows.
func (t *BaseTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Selection is the user's genre/rating choice. A nil slice selects every
// value; a non-nil empty slice selects nothing.
type Selection struct {
	Genres  []string `json:"genres" validate:"omitempty,dive,max=64"`
	Ratings []string `json:"ratings" validate:"omitempty,dive,max=32"`
}

// AllSelected is the default selection.
func AllSelected() Selection {
	return Selection{}
}

// FilterOptions are the values offered by the two multi-select controls.
type FilterOptions struct {
	Genres  []string `json:"genres"`
	Ratings []string `json:"ratings"`
}
