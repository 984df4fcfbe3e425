package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func TestIsMissing(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"NA", true},
		{"NaN", true},
		{"null", true},
		{"#N/A", true},
		{"0", false},
		{"Drama", false},
		{"None of the above", false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMissing(tt.cell))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		cell   string
		want   float64
		wantOK bool
	}{
		{"19000000", 19000000, true},
		{" 8.4 ", 8.4, true},
		{"1e6", 1e6, true},
		{"-5", -5, true},
		{"abc", 0, false},
		{"$100", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := ParseNumber(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name           string
		lines          []string
		wantOutput     int
		wantRequired   int
		wantIncomplete int
	}{
		{
			name:       "valid row kept",
			lines:      []string{movieLine(nil)},
			wantOutput: 1,
		},
		{
			name:         "missing gross dropped as required",
			lines:        []string{movieLine(map[string]string{"gross": ""})},
			wantRequired: 1,
		},
		{
			name:         "missing company dropped as required",
			lines:        []string{movieLine(map[string]string{"company": "NA"})},
			wantRequired: 1,
		},
		{
			name:           "non-numeric budget dropped as incomplete",
			lines:          []string{movieLine(map[string]string{"budget": "unknown"})},
			wantIncomplete: 1,
		},
		{
			name:           "missing rating dropped as incomplete",
			lines:          []string{movieLine(map[string]string{"rating": ""})},
			wantIncomplete: 1,
		},
		{
			name:           "non-numeric votes dropped as incomplete",
			lines:          []string{movieLine(map[string]string{"votes": "many"})},
			wantIncomplete: 1,
		},
		{
			name: "all budgets non-numeric gives empty result",
			lines: []string{
				movieLine(map[string]string{"budget": "n/a-ish"}),
				movieLine(map[string]string{"budget": "lots"}),
			},
			wantIncomplete: 2,
		},
		{
			name: "mixed rows",
			lines: []string{
				movieLine(nil),
				movieLine(map[string]string{"gross": ""}),
				movieLine(map[string]string{"runtime": "long"}),
				movieLine(map[string]string{"name": "Alien"}),
			},
			wantOutput:     2,
			wantRequired:   1,
			wantIncomplete: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := movieHeader + "\n" + strings.Join(tt.lines, "\n") + "\n"
			raw, err := ParseDelimited(strings.NewReader(input), "clean.csv")
			require.NoError(t, err)

			records, report := Clean(raw)
			assert.Len(t, records, tt.wantOutput)
			assert.Equal(t, len(tt.lines), report.Input)
			assert.Equal(t, tt.wantOutput, report.Output)
			assert.Equal(t, tt.wantRequired, report.DroppedRequired)
			assert.Equal(t, tt.wantIncomplete, report.DroppedIncomplete)
		})
	}
}

func TestClean_TypesValues(t *testing.T) {
	input := movieHeader + "\n" + movieLine(map[string]string{"year": "1980.7", "votes": "927000.0"}) + "\n"
	raw, err := ParseDelimited(strings.NewReader(input), "typed.csv")
	require.NoError(t, err)

	records, _ := Clean(raw)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "The Shining", r.Name)
	assert.Equal(t, 1980, r.Year)
	assert.Equal(t, int64(927000), r.Votes)
	assert.Equal(t, 8.4, r.Score)
	assert.Equal(t, 19000000.0, r.Budget)
	assert.Equal(t, 46998772.0, r.Gross)
	assert.Equal(t, 146.0, r.Runtime)
	assert.Equal(t, "Warner Bros.", r.Company)
}
