package dashboard

import (
	"cmp"
	"fmt"
	"slices"

	"moviedash/internal/dataprocessing"
	"moviedash/pkg/contracts/domain"
)

// CorrelationLabels are the numeric columns of the correlation heatmap.
var CorrelationLabels = []string{"budget", "gross", "score", "votes", "runtime", "ROI"}

// CompanyCount is the number of movies one company produced.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

func correlationView(rows []domain.MovieRecord) domain.View {
	columns := make([][]float64, len(CorrelationLabels))
	for i := range columns {
		columns[i] = make([]float64, len(rows))
	}
	for j, r := range rows {
		columns[0][j] = r.Budget
		columns[1][j] = r.Gross
		columns[2][j] = r.Score
		columns[3][j] = float64(r.Votes)
		columns[4][j] = r.Runtime
		columns[5][j] = r.ROI
	}

	return domain.View{
		ID:      ViewCorrelation,
		Title:   "🔗 Feature Correlation",
		Caption: Caption(ViewCorrelation),
		Chart: domain.ChartSpec{
			Type:   domain.ChartHeatmap,
			Title:  "Feature Correlation",
			Series: []domain.Series{},
			Matrix: &domain.Matrix{
				Labels: slices.Clone(CorrelationLabels),
				Cells:  dataprocessing.CorrelationMatrix(columns),
			},
		},
	}
}

func budgetVsGrossView(rows []domain.MovieRecord) domain.View {
	series := make([]domain.Series, 0)
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Rating]
		if !ok {
			i = len(series)
			index[r.Rating] = i
			series = append(series, domain.Series{
				Name:   r.Rating,
				Color:  colorAt(defaultColors, i),
				Points: []domain.Point{},
			})
		}
		series[i].Points = append(series[i].Points, domain.Point{Label: r.Name, X: r.Budget, Y: r.Gross})
	}

	return domain.View{
		ID:      ViewBudgetVsGross,
		Title:   "💰 Budget vs Gross",
		Caption: Caption(ViewBudgetVsGross),
		Chart: domain.ChartSpec{
			Type:       domain.ChartScatter,
			Title:      "Budget vs Gross",
			XAxis:      "budget",
			YAxis:      "gross",
			Series:     series,
			ShowLegend: true,
		},
	}
}

// TopGrossing returns at most n rows ordered by gross, highest first. Ties
// keep their input order.
func TopGrossing(rows []domain.MovieRecord, n int) []domain.MovieRecord {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.MovieRecord) int {
		return cmp.Compare(b.Gross, a.Gross)
	})
	return head(sorted, n)
}

func topGrossingView(rows []domain.MovieRecord, n int) domain.View {
	top := TopGrossing(rows, n)

	series := make([]domain.Series, 0)
	index := make(map[string]int)
	for rank, r := range top {
		i, ok := index[r.Company]
		if !ok {
			i = len(series)
			index[r.Company] = i
			series = append(series, domain.Series{
				Name:   r.Company,
				Color:  colorAt(defaultColors, i),
				Points: []domain.Point{},
			})
		}
		series[i].Points = append(series[i].Points, domain.Point{Label: r.Name, X: float64(rank), Y: r.Gross})
	}

	return domain.View{
		ID:      ViewTopGrossing,
		Title:   fmt.Sprintf("🏆 Top %d Grossing Movies", n),
		Caption: Caption(ViewTopGrossing),
		Chart: domain.ChartSpec{
			Type:       domain.ChartBar,
			Title:      fmt.Sprintf("Top %d Highest Grossing Movies", n),
			XAxis:      "name",
			YAxis:      "gross",
			Series:     series,
			ShowLegend: true,
		},
	}
}

// TopRated returns at most n rows with more than minVotes votes, ordered by
// score, highest first. Ties keep their input order.
func TopRated(rows []domain.MovieRecord, minVotes int64, n int) []domain.MovieRecord {
	eligible := make([]domain.MovieRecord, 0, len(rows))
	for _, r := range rows {
		if r.Votes > minVotes {
			eligible = append(eligible, r)
		}
	}
	slices.SortStableFunc(eligible, func(a, b domain.MovieRecord) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return head(eligible, n)
}

func topRatedView(rows []domain.MovieRecord, minVotes int64, n int) domain.View {
	top := TopRated(rows, minVotes, n)

	points := make([]domain.Point, len(top))
	for i, r := range top {
		points[i] = domain.Point{Label: r.Name, X: r.Score, Y: float64(i)}
	}
	series := []domain.Series{}
	if len(points) > 0 {
		series = append(series, domain.Series{Name: "score", Color: colorAt(viridis, 0), Points: points})
	}

	return domain.View{
		ID:      ViewTopRated,
		Title:   fmt.Sprintf("🎖️ Top Rated Movies (Votes > %s)", compactCount(minVotes)),
		Caption: Caption(ViewTopRated),
		Chart: domain.ChartSpec{
			Type:   domain.ChartHorizontalBar,
			Title:  "Top Rated Movies",
			XAxis:  "score",
			YAxis:  "name",
			Series: series,
		},
	}
}

// TopCompanies counts movies per company and returns the n largest counts.
// Companies with equal counts keep the order they first appear in.
func TopCompanies(rows []domain.MovieRecord, n int) []CompanyCount {
	counts := make([]CompanyCount, 0)
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Company]
		if !ok {
			i = len(counts)
			index[r.Company] = i
			counts = append(counts, CompanyCount{Company: r.Company})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b CompanyCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return head(counts, n)
}

func topCompaniesView(rows []domain.MovieRecord, n int) domain.View {
	top := TopCompanies(rows, n)

	points := make([]domain.Point, len(top))
	for i, c := range top {
		points[i] = domain.Point{Label: c.Company, X: float64(c.Count), Y: float64(i)}
	}
	series := []domain.Series{}
	if len(points) > 0 {
		series = append(series, domain.Series{Name: "movies", Color: colorAt(defaultColors, 0), Points: points})
	}

	return domain.View{
		ID:      ViewTopCompanies,
		Title:   "🏭 Most Movie-Producing Companies",
		Caption: Caption(ViewTopCompanies),
		Chart: domain.ChartSpec{
			Type:   domain.ChartHorizontalBar,
			Title:  "Most Movie-Producing Companies",
			XAxis:  "count",
			YAxis:  "company",
			Series: series,
		},
	}
}

func releaseDistributionView(rows []domain.MovieRecord, bins, densityPoints int) domain.View {
	years := make([]float64, len(rows))
	for i, r := range rows {
		years[i] = float64(r.Year)
	}

	histogram := dataprocessing.Histogram(years, bins)
	var density []domain.Point
	if len(histogram) > 0 {
		density = dataprocessing.DensityCurve(years, densityPoints, histogram[0].Upper-histogram[0].Lower)
	}

	return domain.View{
		ID:      ViewReleaseDistribution,
		Title:   "📆 Movie Releases Over Time",
		Caption: Caption(ViewReleaseDistribution),
		Chart: domain.ChartSpec{
			Type:    domain.ChartHistogram,
			Title:   "Movie Releases Over Time",
			XAxis:   "year",
			YAxis:   "count",
			Series:  []domain.Series{},
			Bins:    histogram,
			Density: density,
		},
	}
}

func roiByRatingView(rows []domain.MovieRecord) domain.View {
	groups := make([]string, 0)
	values := make(map[string][]float64)
	for _, r := range rows {
		if _, ok := values[r.Rating]; !ok {
			groups = append(groups, r.Rating)
		}
		values[r.Rating] = append(values[r.Rating], r.ROI)
	}

	boxes := make([]domain.BoxStats, 0, len(groups))
	for _, g := range groups {
		if box, ok := dataprocessing.BoxSummary(g, values[g]); ok {
			boxes = append(boxes, box)
		}
	}

	return domain.View{
		ID:      ViewROIByRating,
		Title:   "📊 ROI Distribution",
		Caption: Caption(ViewROIByRating),
		Chart: domain.ChartSpec{
			Type:   domain.ChartBox,
			Title:  "ROI by Rating",
			XAxis:  "rating",
			YAxis:  "ROI",
			Series: []domain.Series{},
			Boxes:  boxes,
		},
	}
}

func head[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// compactCount formats 100000 as "100K" and 2000000 as "2M".
func compactCount(n int64) string {
	switch {
	case n >= 1_000_000 && n%1_000_000 == 0:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n >= 1_000 && n%1_000 == 0:
		return fmt.Sprintf("%dK", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
