package dataprocessing

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"moviedash/pkg/contracts/domain"
)

// whiskerReach is how many IQRs a box plot whisker may extend past the box.
const whiskerReach = 1.5

// Pearson returns the correlation of x and y over the pairs where both values
// are finite. It reports false when fewer than two pairs remain or either
// side has no variance.
func Pearson(x, y []float64) (float64, bool) {
	n := min(len(x), len(y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if isFinite(x[i]) && isFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) < 2 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if !isFinite(r) {
		return 0, false
	}
	return r, true
}

// CorrelationMatrix computes pairwise Pearson coefficients between columns.
// Undefined cells are nil.
func CorrelationMatrix(columns [][]float64) [][]*float64 {
	cells := make([][]*float64, len(columns))
	for i := range columns {
		cells[i] = make([]*float64, len(columns))
		for j := range columns {
			if r, ok := Pearson(columns[i], columns[j]); ok {
				v := r
				cells[i][j] = &v
			}
		}
	}
	return cells
}

// Quantile returns the p-th quantile of sorted values using linear
// interpolation between closest ranks.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// BoxSummary computes box plot statistics for one group. Non-finite values
// are left out and counted in ExcludedCount. ok is false when nothing is left.
func BoxSummary(group string, values []float64) (domain.BoxStats, bool) {
	box := domain.BoxStats{Group: group, Outliers: []float64{}}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			finite = append(finite, v)
		} else {
			box.ExcludedCount++
		}
	}
	if len(finite) == 0 {
		return box, false
	}
	slices.Sort(finite)

	box.Count = len(finite)
	box.Q1 = Quantile(finite, 0.25)
	box.Median = Quantile(finite, 0.5)
	box.Q3 = Quantile(finite, 0.75)

	iqr := box.Q3 - box.Q1
	lowFence := box.Q1 - whiskerReach*iqr
	highFence := box.Q3 + whiskerReach*iqr

	box.LowerWhisker = box.Q1
	box.UpperWhisker = box.Q3
	for _, v := range finite {
		if v >= lowFence {
			box.LowerWhisker = min(box.LowerWhisker, v)
			break
		}
	}
	for i := len(finite) - 1; i >= 0; i-- {
		if finite[i] <= highFence {
			box.UpperWhisker = max(box.UpperWhisker, finite[i])
			break
		}
	}
	for _, v := range finite {
		if v < lowFence || v > highFence {
			box.Outliers = append(box.Outliers, v)
		}
	}
	return box, true
}

// Histogram splits values into equal-width bins spanning their range. The
// last bin includes its upper edge. A constant sample gets a unit-wide range
// centred on the value.
func Histogram(values []float64, bins int) []domain.HistogramBin {
	finite := finiteValues(values)
	if len(finite) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := slices.Min(finite), slices.Max(finite)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range finite {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// DensityCurve evaluates a Gaussian kernel density estimate at evenly spaced
// points across the sample range, scaled so it overlays a histogram whose
// bins are binWidth wide. Scott's rule picks the bandwidth. Samples with fewer
// than two values or no spread have no curve.
func DensityCurve(values []float64, points int, binWidth float64) []domain.Point {
	finite := finiteValues(values)
	if len(finite) < 2 || points < 2 {
		return nil
	}
	sd := stat.StdDev(finite, nil)
	if sd == 0 || !isFinite(sd) {
		return nil
	}
	n := float64(len(finite))
	bandwidth := sd * math.Pow(n, -0.2)
	lo, hi := slices.Min(finite), slices.Max(finite)
	step := (hi - lo) / float64(points-1)
	norm := 1 / (n * bandwidth * math.Sqrt(2*math.Pi))

	curve := make([]domain.Point, points)
	for i := range curve {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range finite {
			z := (x - v) / bandwidth
			sum += math.Exp(-0.5 * z * z)
		}
		curve[i] = domain.Point{X: x, Y: sum * norm * n * binWidth}
	}
	return curve
}

func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
