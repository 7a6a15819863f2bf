// Package stats provides the small numeric helpers the boosting engine and
// the tree builder share: mean, median, the split point rule and MSE.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/boostviz/pkg/errors"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// Median returns the middle element of the sorted values for odd lengths and
// the average of the two middle elements for even lengths. values is not
// modified. An empty slice yields 0.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MiddleElement returns sorted(values)[len(values)/2] without averaging.
// For even lengths this is the upper of the two middle values.
func MiddleElement(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sortedCopy(values)[len(values)/2]
}

// MSE returns the mean of squared elementwise differences between actual and
// predicted. The slices must have equal length.
func MSE(actual, predicted []float64) (float64, error) {
	if len(actual) != len(predicted) {
		return 0, errors.NewDimensionError("stats.MSE", len(actual), len(predicted), 0)
	}
	if len(actual) == 0 {
		return 0, nil
	}
	var sum float64
	for i, a := range actual {
		diff := a - predicted[i]
		sum += diff * diff
	}
	return sum / float64(len(actual)), nil
}

// MinMax returns the smallest and largest value across all given slices.
// Empty input yields (0, 0).
func MinMax(series ...[]float64) (lo, hi float64) {
	first := true
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		sMin, sMax := floats.Min(s), floats.Max(s)
		if first {
			lo, hi = sMin, sMax
			first = false
			continue
		}
		if sMin < lo {
			lo = sMin
		}
		if sMax > hi {
			hi = sMax
		}
	}
	return lo, hi
}

// Fill returns a slice of n copies of v.
func Fill(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
