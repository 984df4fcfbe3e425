package dashboard

import (
	"moviedash/internal/dataprocessing"
	"moviedash/pkg/contracts/domain"
)

// Options tunes the aggregate views.
type Options struct {
	HistogramBins int
	DensityPoints int
	TopN          int
	VoteThreshold int64
}

// DefaultOptions matches the original dashboard: 30 year bins, top 10 lists
// and a 100000 vote floor for the rating chart.
func DefaultOptions() Options {
	return Options{
		HistogramBins: 30,
		DensityPoints: 200,
		TopN:          10,
		VoteThreshold: 100_000,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HistogramBins <= 0 {
		o.HistogramBins = d.HistogramBins
	}
	if o.DensityPoints < 2 {
		o.DensityPoints = d.DensityPoints
	}
	if o.TopN <= 0 {
		o.TopN = d.TopN
	}
	if o.VoteThreshold < 0 {
		o.VoteThreshold = d.VoteThreshold
	}
	return o
}

// Render filters the base table with the selection and builds the full page.
func Render(base *domain.BaseTable, sel domain.Selection, opts Options) domain.Dashboard {
	rows := dataprocessing.Filter(base.Records, sel)
	return domain.Dashboard{
		Title:     PageTitle,
		Subtitle:  PageSubtitle,
		Selection: sel,
		Options:   domain.FilterOptions{Genres: base.Genres, Ratings: base.Ratings},
		RowCount:  len(rows),
		Views:     BuildViews(rows, opts),
		Insights:  Insights,
	}
}

// BuildViews renders the seven views over already filtered rows.
func BuildViews(rows []domain.MovieRecord, opts Options) []domain.View {
	opts = opts.withDefaults()
	return []domain.View{
		correlationView(rows),
		budgetVsGrossView(rows),
		topGrossingView(rows, opts.TopN),
		topRatedView(rows, opts.VoteThreshold, opts.TopN),
		topCompaniesView(rows, opts.TopN),
		releaseDistributionView(rows, opts.HistogramBins, opts.DensityPoints),
		roiByRatingView(rows),
	}
}
