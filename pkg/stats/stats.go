// Package stats provides statistical summaries over per-file scores.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ScoreStats summarizes a distribution of quality scores.
type ScoreStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes score statistics. Returns zero stats for empty input.
// StdDev is 0 for fewer than two samples.
func Summarize(scores []float64) ScoreStats {
	if len(scores) == 0 {
		return ScoreStats{}
	}

	s := ScoreStats{
		Mean: stat.Mean(scores, nil),
		Min:  scores[0],
		Max:  scores[0],
	}
	for _, v := range scores[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}

	if len(scores) > 1 {
		s.StdDev = stat.StdDev(scores, nil)
	}

	return s
}

// Correlation returns the Pearson correlation between two series, or 0 when
// fewer than two pairs exist or either series is constant.
func Correlation(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// Percentile calculates the p-th percentile of a series. The input is
// copied and sorted. Returns 0 for empty input.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}
