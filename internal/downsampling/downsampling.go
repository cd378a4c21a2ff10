// Package downsampling reduces long heart-rate series to a chartable number
// of samples while keeping their visual shape.
package downsampling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/healthlens/healthlens/internal/models"
)

// Mode represents the downsampling mode
type Mode string

const (
	// ModeNone returns the series unchanged
	ModeNone Mode = "none"
	// ModeAuto picks an algorithm from the spikiness of the series
	ModeAuto Mode = "auto"
	// ModeLTTB uses Largest-Triangle-Three-Buckets
	ModeLTTB Mode = "lttb"
	// ModeMinMax keeps the min and max sample of each bucket
	ModeMinMax Mode = "minmax"
	// ModeM4 keeps first, min, max and last of each bucket
	ModeM4 Mode = "m4"
)

// DefaultPoints is the target size when none is requested.
const DefaultPoints = 1000

// minPoints is the smallest target that still keeps both endpoints and one
// interior sample.
const minPoints = 3

// ParseMode validates a mode string. An empty string means ModeNone.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeNone, nil
	case ModeNone, ModeAuto, ModeLTTB, ModeMinMax, ModeM4:
		return m, nil
	default:
		return "", fmt.Errorf("invalid downsample mode %q: must be one of none, auto, lttb, minmax, m4", s)
	}
}

// HeartRate returns at most about points samples chosen from the series.
// Samples are kept verbatim, never synthesized, and stay in input order.
func HeartRate(samples []models.HeartRateSample, mode Mode, points int) []models.HeartRateSample {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s.HeartRate)
	}

	idx := Indices(values, mode, points)
	if len(idx) == len(samples) {
		return samples
	}

	out := make([]models.HeartRateSample, len(idx))
	for i, j := range idx {
		out[i] = samples[j]
	}
	return out
}

// Indices selects ascending indices into values. The full range is returned
// when mode is ModeNone or values already fit in points.
func Indices(values []float64, mode Mode, points int) []int {
	if points <= 0 {
		points = DefaultPoints
	}
	if points < minPoints {
		points = minPoints
	}
	if mode == ModeNone || mode == "" || len(values) <= points {
		return allIndices(len(values))
	}
	if mode == ModeAuto {
		mode = detect(values)
	}

	switch mode {
	case ModeMinMax:
		return minmax(values, points)
	case ModeM4:
		return m4(values, points)
	default:
		return lttb(values, points)
	}
}

// detect chooses minmax for spiky series, m4 for moderately spiky ones and
// lttb otherwise.
func detect(values []float64) Mode {
	s := spikiness(values)
	switch {
	case s > 0.2:
		return ModeMinMax
	case s > 0.1:
		return ModeM4
	default:
		return ModeLTTB
	}
}

// spikiness blends the share of samples beyond two standard deviations with
// the share of jumps larger than one standard deviation. Result is in [0, 1].
func spikiness(values []float64) float64 {
	if len(values) < 10 {
		return 0
	}
	mean, sd := stat.PopMeanStdDev(values, nil)
	if sd == 0 {
		return 0
	}

	outliers, jumps := 0, 0
	for i, v := range values {
		if math.Abs(v-mean) > 2*sd {
			outliers++
		}
		if i > 0 && math.Abs(v-values[i-1]) > sd {
			jumps++
		}
	}

	absolute := float64(outliers) / float64(len(values))
	derivative := float64(jumps) / float64(len(values)-1)
	return math.Min((absolute+1.5*derivative)/2.5, 1)
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// bucketBounds splits n values into count equal buckets and returns the
// half-open range of bucket i.
func bucketBounds(n, count, i int) (int, int) {
	size := float64(n) / float64(count)
	start := int(float64(i) * size)
	end := int(float64(i+1) * size)
	if end > n {
		end = n
	}
	return start, end
}

// lttb keeps the first and last samples and, for every bucket in between,
// the sample forming the largest triangle with the previous pick and the
// average of the next bucket.
func lttb(values []float64, points int) []int {
	n := len(values)
	picked := make([]int, 0, points)
	picked = append(picked, 0)

	size := float64(n-2) / float64(points-2)
	prev := 0

	for i := 0; i < points-2; i++ {
		nextStart := int(math.Floor(float64(i+1)*size)) + 1
		nextEnd := int(math.Floor(float64(i+2)*size)) + 1
		if nextEnd > n {
			nextEnd = n
		}
		var avgX, avgY float64
		for j := nextStart; j < nextEnd; j++ {
			avgX += float64(j)
			avgY += values[j]
		}
		if span := float64(nextEnd - nextStart); span > 0 {
			avgX /= span
			avgY /= span
		}

		from := int(math.Floor(float64(i)*size)) + 1
		to := int(math.Floor(float64(i+1)*size)) + 1
		ax, ay := float64(prev), values[prev]

		best, bestArea := from, -1.0
		for j := from; j < to; j++ {
			area := math.Abs((ax-avgX)*(values[j]-ay)-(ax-float64(j))*(avgY-ay)) / 2
			if area > bestArea {
				bestArea = area
				best = j
			}
		}

		picked = append(picked, best)
		prev = best
	}

	return append(picked, n-1)
}

// minmax keeps the lowest and highest sample of points/2 buckets.
func minmax(values []float64, points int) []int {
	buckets := points / 2
	if buckets < 1 {
		buckets = 1
	}

	picked := make([]int, 0, buckets*2)
	for i := 0; i < buckets; i++ {
		start, end := bucketBounds(len(values), buckets, i)
		if start >= end {
			continue
		}
		lo, hi := extremes(values, start, end)
		switch {
		case lo == hi:
			picked = append(picked, lo)
		case lo < hi:
			picked = append(picked, lo, hi)
		default:
			picked = append(picked, hi, lo)
		}
	}
	return picked
}

// m4 keeps the first, lowest, highest and last sample of points/4 buckets.
func m4(values []float64, points int) []int {
	buckets := points / 4
	if buckets < 1 {
		buckets = 1
	}

	picked := make([]int, 0, buckets*4)
	for i := 0; i < buckets; i++ {
		start, end := bucketBounds(len(values), buckets, i)
		if start >= end {
			continue
		}
		first, last := start, end-1
		lo, hi := extremes(values, start, end)
		if lo > hi {
			lo, hi = hi, lo
		}

		picked = append(picked, first)
		for _, j := range [...]int{lo, hi, last} {
			if j > picked[len(picked)-1] {
				picked = append(picked, j)
			}
		}
	}
	return picked
}

// extremes returns the first index of the minimum and maximum in values[start:end].
func extremes(values []float64, start, end int) (int, int) {
	lo, hi := start, start
	for j := start + 1; j < end; j++ {
		if values[j] < values[lo] {
			lo = j
		}
		if values[j] > values[hi] {
			hi = j
		}
	}
	return lo, hi
}
