// Package exporter writes the filtered movie table for download.
//
// Two formats are supported:
//
//	csv   comma separated UTF-8 with a BOM so spreadsheet tools pick the encoding
//	xlsx  a single "Movies" sheet streamed with excelize
//
// Columns are the fifteen schema columns followed by roi and release_month.
// Non-finite ROI and missing months are written as empty cells.
//
// Example usage:
//
//	err := exporter.Write(w, exporter.FormatCSV, rows)
//	err = exporter.WriteFile("out/movies.xlsx", rows)
package exporter
