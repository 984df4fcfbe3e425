package domain

// ChartType identifies how a chart specification is drawn
type ChartType string

const (
	ChartHeatmap       ChartType = "heatmap"
	ChartScatter       ChartType = "scatter"
	ChartBar           ChartType = "bar"
	ChartHorizontalBar ChartType = "horizontal_bar"
	ChartHistogram     ChartType = "histogram"
	ChartBox           ChartType = "box"
)

// Point is a single chart mark. Label is used by categorical axes, X/Y by
// numeric ones.
type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Series is a named group of points sharing a color.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

// Matrix is an annotated square matrix. A nil cell is undefined.
type Matrix struct {
	Labels []string     `json:"labels"`
	Cells  [][]*float64 `json:"cells"`
}

// HistogramBin is one bar of a histogram, covering [Lower, Upper).
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BoxStats is the five-number summary of one box plot group.
type BoxStats struct {
	Group         string    `json:"group"`
	Count         int       `json:"count"`
	LowerWhisker  float64   `json:"lower_whisker"`
	Q1            float64   `json:"q1"`
	Median        float64   `json:"median"`
	Q3            float64   `json:"q3"`
	UpperWhisker  float64   `json:"upper_whisker"`
	Outliers      []float64 `json:"outliers"`
	ExcludedCount int       `json:"excluded_count,omitempty"`
}

// ChartSpec is a render-ready chart description.
type ChartSpec struct {
	Type       ChartType      `json:"type"`
	Title      string         `json:"title"`
	XAxis      string         `json:"x_axis,omitempty"`
	YAxis      string         `json:"y_axis,omitempty"`
	Series     []Series       `json:"series"`
	Matrix     *Matrix        `json:"matrix,omitempty"`
	Bins       []HistogramBin `json:"bins,omitempty"`
	Density    []Point        `json:"density,omitempty"`
	Boxes      []BoxStats     `json:"boxes,omitempty"`
	ShowLegend bool           `json:"show_legend"`
}

// IsEmpty reports whether the chart carries no data marks.
func (c ChartSpec) IsEmpty() bool {
	if c.Matrix != nil && len(c.Matrix.Cells) > 0 {
		for _, row := range c.Matrix.Cells {
			for _, cell := range row {
				if cell != nil {
					return false
				}
			}
		}
	}
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return len(c.Bins) == 0 && len(c.Boxes) == 0
}

// View is one titled dashboard section.
type View struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Caption string    `json:"caption"`
	Chart   ChartSpec `json:"chart"`
}

// Dashboard is the output of one render pass.
type Dashboard struct {
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle"`
	Selection Selection     `json:"selection"`
	Options   FilterOptions `json:"options"`
	RowCount  int           `json:"row_count"`
	Views     []View        `json:"views"`
	Insights  []string      `json:"insights"`
}
