package dashboard

const (
	PageTitle    = "🎬 Movie Data Exploratory Analysis Dashboard"
	PageSubtitle = "Explore trends, profits, and insights from 4000 movies."
)

// View identifiers in display order.
const (
	ViewCorrelation         = "correlation"
	ViewBudgetVsGross       = "budget-vs-gross"
	ViewTopGrossing         = "top-grossing"
	ViewTopRated            = "top-rated"
	ViewTopCompanies        = "top-companies"
	ViewReleaseDistribution = "release-distribution"
	ViewROIByRating         = "roi-by-rating"
)

// ViewOrder lists every view identifier in the order they are rendered.
var ViewOrder = []string{
	ViewCorrelation,
	ViewBudgetVsGross,
	ViewTopGrossing,
	ViewTopRated,
	ViewTopCompanies,
	ViewReleaseDistribution,
	ViewROIByRating,
}

var captions = map[string]string{
	ViewCorrelation: "Movies with higher budgets tend to earn more at the box office. " +
		"However, this doesn't always mean they are more profitable. We also added a new column called ROI (Return on Investment), " +
		"which shows how much profit a movie made compared to its cost. " +
		"For example, if a movie had a budget of $10 million and made $30 million, " +
		"its ROI would be 2.0, meaning it earned 200% of its cost back.",
	ViewBudgetVsGross: "In general, movies with bigger budgets make more money, but there are also lower-budget movies " +
		"that did really well. So, spending more doesn't always guarantee success.",
	ViewTopGrossing: "These are the highest earning movies. As expected, most of them come from big production companies " +
		"like Warner Bros. or Universal.",
	ViewTopRated: "These are the top-rated movies on IMDb, based on user reviews. We included only those with more than " +
		"100,000 votes to make sure the ratings are reliable.",
	ViewTopCompanies: "These studios have produced the most number of movies in the dataset. Bigger studios usually " +
		"release more films every year.",
	ViewReleaseDistribution: "The number of movies released has grown over the years, with a big rise in the 2000s and 2010s.",
	ViewROIByRating: "Return on Investment (ROI) shows how profitable a movie was based on how much it earned compared to " +
		"its budget. Some movies with lower ratings still made a lot of money, which means they were financially " +
		"successful even if not critically praised.",
}

// Caption returns the fixed narrative text shown under a view.
func Caption(viewID string) string {
	return captions[viewID]
}

// Insights is the closing summary shown after the seven views.
var Insights = []string{
	"💰 Movies with bigger budgets usually earn more, but not all high-budget films are profitable.",
	"📈 ROI (Return on Investment) helps us understand how much money a movie made compared to its cost. " +
		"It's a great way to find low-budget movies that made huge profits.",
	"🌟 Top-rated movies often have a lot of votes, showing they are popular and respected.",
	"🏢 Studios like Warner Bros. and Universal lead in terms of output and earnings.",
	"🗓️ Movie production has increased a lot since 2000.",
	"🎯 Some low-rated movies still made great profits, meaning popularity and profitability don't always go hand in hand.",
}

// defaultColors is the categorical palette for series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// viridis is a ten step sequential palette for ranked bars.
var viridis = []string{
	"#440154", "#482878", "#3E4A89", "#31688E", "#26828E",
	"#1F9E89", "#35B779", "#6ECE58", "#B5DE2B", "#FDE725",
}

func colorAt(palette []string, i int) string {
	return palette[i%len(palette)]
}
