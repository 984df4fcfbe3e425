package exporter

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"moviedash/pkg/contracts/domain"
)

func sampleMovies() []domain.MovieRecord {
	return []domain.MovieRecord{
		{
			Name: "The Shining", Rating: "R", Genre: "Drama", Year: 1980,
			Released: "June 13, 1980 (United States)", Score: 8.4, Votes: 927000,
			Director: "Stanley Kubrick", Writer: "Stephen King", Star: "Jack Nicholson",
			Country: "United Kingdom", Budget: 19000000, Gross: 46998772,
			Company: "Warner Bros.", Runtime: 146, ROI: 1.4736195789473684, ReleaseMonth: 6,
		},
		{
			Name: "Free, Film", Rating: "PG", Genre: "Comedy", Year: 1990,
			Released: "1990", Score: 5, Votes: 10, Budget: 0, Gross: 100,
			Company: "Indie", Runtime: 90, ROI: math.Inf(1),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Equal(t, "movies_filtered.xlsx", FormatXLSX.FileName())
}

func TestFormatValues(t *testing.T) {
	assert.Equal(t, "8.4", formatFloat(8.4))
	assert.Equal(t, "19000000", formatFloat(19000000))
	assert.Equal(t, "", formatFloat(math.Inf(-1)))
	assert.Equal(t, "", formatFloat(math.NaN()))
	assert.Equal(t, "", formatMonth(0))
	assert.Equal(t, "12", formatMonth(12))
}

func TestCSVWriter_WriteMovies(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(DefaultWriteOptions()).WriteMovies(&buf, sampleMovies()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, MovieHeaders, rows[0])
	assert.Equal(t, "The Shining", rows[1][0])
	assert.Equal(t, "1980", rows[1][3])
	assert.Equal(t, "6", rows[1][16])
	assert.Equal(t, "Free, Film", rows[2][0])
	assert.Equal(t, "", rows[2][15], "infinite ROI is blank")
	assert.Equal(t, "", rows[2][16], "missing month is blank")
}

func TestCSVWriter_Delimiter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(WriteOptions{Delimiter: ';'})
	require.NoError(t, w.WriteMovies(&buf, nil))

	assert.Equal(t, strings.Join(MovieHeaders, ";")+"\n", buf.String())
}

func TestXLSXWriter_WriteMovies(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter().WriteMovies(&buf, sampleMovies()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, MovieHeaders, rows[0])
	assert.Equal(t, "The Shining", rows[1][0])
	assert.Equal(t, "Warner Bros.", rows[1][13])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "nested", "out.csv")
	require.NoError(t, WriteFile(csvPath, sampleMovies()))
	info, err := os.Stat(csvPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	xlsxPath := filepath.Join(dir, "out.xlsx")
	require.NoError(t, WriteFile(xlsxPath, sampleMovies()))
	_, err = os.Stat(xlsxPath)
	require.NoError(t, err)

	err = WriteFile(filepath.Join(dir, "out.pdf"), sampleMovies())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("json"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
