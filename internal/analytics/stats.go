// Package analytics aggregates the loaded datasets: descriptive statistics,
// group-by summaries, the dog-license analyses and the salary survey's six
// business questions.
package analytics

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean of values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median computes the median of a slice of float64 values
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile calculates the value at the given percentile (0..1) with
// linear interpolation between ranks
func Percentile(values []float64, percentile float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if percentile <= 0 {
		return sorted[0]
	}
	if percentile >= 1 {
		return sorted[n-1]
	}

	index := percentile * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// StdDev computes the sample standard deviation around the given mean
func StdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// PearsonR computes the Pearson correlation coefficient between x and y.
// Returns 0 when the inputs are degenerate (mismatched, short, or constant).
func PearsonR(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	if sumXX == 0 || sumYY == 0 {
		return 0
	}
	return sumXY / math.Sqrt(sumXX*sumYY)
}

// LinearRegression fits y = slope*x + intercept by least squares.
// Degenerate input yields (0, 0).
func LinearRegression(x, y []float64) (slope, intercept float64) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumXX float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sumXY += dx * (y[i] - meanY)
		sumXX += dx * dx
	}

	if sumXX == 0 {
		return 0, 0
	}
	slope = sumXY / sumXX
	intercept = meanY - slope*meanX
	return slope, intercept
}

// Histogram buckets values into nbins equal-width bins over [min, max]
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram computes an equal-width histogram of values
func Histogram(values []float64, nbins int) []HistogramBin {
	if len(values) == 0 || nbins < 1 {
		return nil
	}

	low, high := values[0], values[0]
	for _, v := range values {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}

	bins := make([]HistogramBin, nbins)
	width := (high - low) / float64(nbins)
	if width == 0 {
		bins[0] = HistogramBin{Low: low, High: high, Count: len(values)}
		return bins[:1]
	}

	for i := range bins {
		bins[i].Low = low + float64(i)*width
		bins[i].High = bins[i].Low + width
	}
	for _, v := range values {
		idx := int((v - low) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		bins[idx].Count++
	}
	return bins
}
