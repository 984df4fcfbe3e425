package testutil

import (
	"math"

	"moviedash/pkg/contracts/domain"
)

// MovieRecords returns a small cleaned table covering two genres, two
// ratings, a zero-budget film and a film without a release month.
func MovieRecords() []domain.MovieRecord {
	return []domain.MovieRecord{
		{Name: "Alpha", Rating: "PG", Genre: "Action", Year: 1990, Released: "March 1, 1990 (United States)",
			Score: 7.5, Votes: 250000, Director: "A. Director", Budget: 10_000_000, Gross: 50_000_000,
			Company: "Studio One", Runtime: 110, ROI: 4, ReleaseMonth: 3},
		{Name: "Bravo", Rating: "R", Genre: "Drama", Year: 1995, Released: "July 4, 1995 (United States)",
			Score: 8.1, Votes: 400000, Director: "B. Director", Budget: 20_000_000, Gross: 30_000_000,
			Company: "Studio Two", Runtime: 125, ROI: 0.5, ReleaseMonth: 7},
		{Name: "Charlie", Rating: "PG", Genre: "Drama", Year: 2001, Released: "2001",
			Score: 6.2, Votes: 90000, Director: "C. Director", Budget: 5_000_000, Gross: 15_000_000,
			Company: "Studio One", Runtime: 98, ROI: 2, ReleaseMonth: 0},
		{Name: "Delta", Rating: "R", Genre: "Action", Year: 2010, Released: "October 8, 2010 (United States)",
			Score: 5.9, Votes: 120000, Director: "D. Director", Budget: 0, Gross: 1_000_000,
			Company: "Studio Three", Runtime: 101, ROI: math.Inf(1), ReleaseMonth: 10},
		{Name: "Echo", Rating: "PG", Genre: "Action", Year: 2015, Released: "December 18, 2015 (United States)",
			Score: 7.9, Votes: 800000, Director: "E. Director", Budget: 200_000_000, Gross: 900_000_000,
			Company: "Studio One", Runtime: 138, ROI: 3.5, ReleaseMonth: 12},
	}
}

// BaseTable wraps MovieRecords in a base table with the matching options.
func BaseTable() *domain.BaseTable {
	records := MovieRecords()
	return &domain.BaseTable{
		Records: records,
		Genres:  []string{"Action", "Drama"},
		Ratings: []string{"PG", "R"},
		Report: domain.LoadReport{
			Source:        "fixture.csv",
			ParsedRows:    len(records),
			CleanRows:     len(records),
			MissingMonths: 1,
			NonFiniteROI:  1,
		},
	}
}
