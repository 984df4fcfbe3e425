// Package dataprocessing turns a movie file into the immutable base table the
// dashboard renders from, and provides the selection filter and descriptive
// statistics used by the charts.
//
// # Architecture
//
// The package is organized as a linear pipeline:
//
// 1. Parser: reads ';'-delimited Latin-1 text (or an .xlsx sheet) into a RawTable
// 2. Cleaner: drops incomplete rows and types the remaining cells
// 3. Deriver: adds ROI and release month
// 4. Filter: projects the base table onto a genre/rating selection
//
// # Usage
//
//	table, err := dataprocessing.BuildBaseTable("movies.csv", logger)
//	if err != nil {
//	    // errors.Is(err, dataprocessing.ErrLoad) for every fatal load failure
//	}
//	rows := dataprocessing.Filter(table.Records, domain.Selection{Genres: []string{"Drama"}})
//
// # Data Flow
//
//	File → Parser → RawTable → Cleaner → MovieRecords → Deriver → BaseTable → Filter → filtered rows
//
// # Error Handling
//
// Only fatal load problems are errors: an unreadable file, a header without
// the required columns, or a file with no parsable rows. Malformed lines,
// missing values and non-numeric cells remove rows silently; an unparsable
// release date leaves the month unset. ROI of a zero-budget movie is a
// non-finite float, which the statistics helpers skip.
package dataprocessing
