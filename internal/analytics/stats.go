package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StableThreshold is the absolute percent change below which a trend is reported as stable.
const StableThreshold = 3.0

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// StdDev returns the sample (n-1) standard deviation, or 0 when fewer than two values exist.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// Percentile returns the p-th percentile of values using linear interpolation
// between the closest ranks of a sorted copy. The input is left untouched.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower < 0 {
		lower = 0
	}
	if upper > len(sorted)-1 {
		upper = len(sorted) - 1
	}
	if lower >= upper {
		return sorted[lower]
	}
	return sorted[lower] + (sorted[upper]-sorted[lower])*(index-float64(lower))
}

// Trend fits an ordinary least-squares line of value against index and
// expresses the slope over the whole window as a percentage of the mean.
// Callers choose the window by slicing values before the call.
func Trend(values []float64) TrendResult {
	if len(values) < 2 {
		return NeutralTrend()
	}

	n := len(values)
	xs := floats.Span(make([]float64, n), 0, float64(n-1))
	_, slope := stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		slope = 0
	}

	mean := Mean(values)
	percentChange := 0.0
	if mean != 0 {
		percentChange = (slope * float64(n) / mean) * 100
	}

	direction := TrendStable
	if math.Abs(percentChange) >= StableThreshold {
		if slope > 0 {
			direction = TrendUp
		} else {
			direction = TrendDown
		}
	}

	return TrendResult{Direction: direction, PercentChange: percentChange}
}

// ConsistencyScore maps the coefficient of variation onto 0-100, where 100
// means no variation at all. Returns 0 when the mean is 0.
func ConsistencyScore(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	cv := StdDev(values) / mean * 100
	return Clamp(100-math.Min(cv, 100), 0, 100)
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// MinMax returns the smallest and largest value, or zeros for an empty slice.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return floats.Min(values), floats.Max(values)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Round rounds half up to the nearest integer, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// RoundTo rounds half up to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return Round(v*scale) / scale
}

// Round1 rounds to one decimal.
func Round1(v float64) float64 { return RoundTo(v, 1) }

// Round2 rounds to two decimals.
func Round2(v float64) float64 { return RoundTo(v, 2) }

// RoundInt rounds half up and converts to int.
func RoundInt(v float64) int {
	return int(Round(v))
}
