package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{42}, want: 42},
		{name: "several", values: []float64{1, 2, 3, 4}, want: 2.5},
		{name: "negative", values: []float64{-2, 2}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values), 1e-9)
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "odd count", values: []float64{3, 1, 2}, want: 2},
		{name: "even count", values: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "unsorted input untouched", values: []float64{9, 1, 5}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]float64(nil), tt.values...)
			assert.InDelta(t, tt.want, Median(tt.values), 1e-9)
			assert.Equal(t, input, tt.values, "input slice must not be reordered")
		})
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		name       string
		percentile float64
		want       float64
	}{
		{name: "zero", percentile: 0, want: 10},
		{name: "quartile interpolates", percentile: 0.25, want: 20},
		{name: "median", percentile: 0.5, want: 30},
		{name: "p90", percentile: 0.9, want: 46},
		{name: "one", percentile: 1, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(values, tt.percentile), 1e-9)
		})
	}

	assert.Zero(t, Percentile(nil, 0.5))
}

func TestStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := Mean(values)
	// Sample standard deviation of the classic example set.
	assert.InDelta(t, 2.13809, StdDev(values, mean), 1e-4)

	assert.Zero(t, StdDev([]float64{5}, 5))
	assert.Zero(t, StdDev(nil, 0))
}

func TestPearsonR(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{10, 20, 30, 40}
		assert.InDelta(t, 1.0, PearsonR(x, y), 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{8, 6, 4, 2}
		assert.InDelta(t, -1.0, PearsonR(x, y), 1e-9)
	})

	t.Run("constant series degenerate", func(t *testing.T) {
		assert.Zero(t, PearsonR([]float64{1, 2, 3}, []float64{5, 5, 5}))
	})

	t.Run("length mismatch degenerate", func(t *testing.T) {
		assert.Zero(t, PearsonR([]float64{1, 2}, []float64{1}))
	})
}

func TestLinearRegression(t *testing.T) {
	t.Run("exact line", func(t *testing.T) {
		x := []float64{0, 1, 2, 3}
		y := []float64{5, 7, 9, 11}
		slope, intercept := LinearRegression(x, y)
		assert.InDelta(t, 2.0, slope, 1e-9)
		assert.InDelta(t, 5.0, intercept, 1e-9)
	})

	t.Run("constant x degenerate", func(t *testing.T) {
		slope, intercept := LinearRegression([]float64{3, 3, 3}, []float64{1, 2, 3})
		assert.Zero(t, slope)
		assert.Zero(t, intercept)
	})

	t.Run("residuals minimized", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{2, 4.1, 5.9, 8.2, 9.8}
		slope, intercept := LinearRegression(x, y)
		// Slope near 2, intercept near 0 for this noisy line.
		assert.InDelta(t, 2.0, slope, 0.1)
		assert.True(t, math.Abs(intercept) < 0.5)
	})
}

func TestHistogram(t *testing.T) {
	t.Run("equal width bins", func(t *testing.T) {
		values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
		bins := Histogram(values, 5)
		assert.Len(t, bins, 5)
		assert.InDelta(t, 0.0, bins[0].Low, 1e-9)
		assert.InDelta(t, 2.0, bins[0].High, 1e-9)
		assert.InDelta(t, 10.0, bins[4].High, 1e-9)

		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, len(values), total)
	})

	t.Run("max value lands in last bin", func(t *testing.T) {
		bins := Histogram([]float64{0, 10}, 2)
		assert.Equal(t, 1, bins[1].Count)
	})

	t.Run("constant values collapse to one bin", func(t *testing.T) {
		bins := Histogram([]float64{3, 3, 3}, 10)
		assert.Len(t, bins, 1)
		assert.Equal(t, 3, bins[0].Count)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 5))
	})
}
