// Package aggregation rolls record series up into calendar buckets
// (month, quarter, year) for long-term trend tables and the dashboard overview.
package aggregation

import (
	"math"
	"sort"
)

// AggregatedField represents statistics for a single field within one bucket
type AggregatedField struct {
	Count      int64   `json:"count"`
	Sum        float64 `json:"sum"`
	Avg        float64 `json:"avg"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	SumSquares float64 `json:"-"` // For variance calculation
}

// NewAggregatedField creates a new aggregated field from a single value
func NewAggregatedField(value float64) *AggregatedField {
	return &AggregatedField{
		Count:      1,
		Sum:        value,
		Avg:        value,
		Min:        value,
		Max:        value,
		SumSquares: value * value,
	}
}

// Merge combines another aggregated field into this one
func (af *AggregatedField) Merge(other *AggregatedField) {
	if other == nil || other.Count == 0 {
		return
	}
	if af.Count == 0 {
		*af = *other
		return
	}

	af.Count += other.Count
	af.Sum += other.Sum
	af.SumSquares += other.SumSquares
	af.Min = math.Min(af.Min, other.Min)
	af.Max = math.Max(af.Max, other.Max)
	af.Avg = af.Sum / float64(af.Count)
}

// AddValue adds a single value to the aggregation
func (af *AggregatedField) AddValue(value float64) {
	if af.Count == 0 {
		*af = *NewAggregatedField(value)
		return
	}

	af.Count++
	af.Sum += value
	af.SumSquares += value * value
	af.Min = math.Min(af.Min, value)
	af.Max = math.Max(af.Max, value)
	af.Avg = af.Sum / float64(af.Count)
}

// Variance calculates the population variance of the aggregated values
func (af *AggregatedField) Variance() float64 {
	if af.Count <= 1 {
		return 0
	}
	// Var = E[X²] - (E[X])²
	v := (af.SumSquares / float64(af.Count)) - (af.Avg * af.Avg)
	if v < 0 {
		return 0
	}
	return v
}

// StdDev calculates the standard deviation
func (af *AggregatedField) StdDev() float64 {
	return math.Sqrt(af.Variance())
}

// Mean returns Avg, or 0 for a nil or empty field.
func (af *AggregatedField) Mean() float64 {
	if af == nil || af.Count == 0 {
		return 0
	}
	return af.Avg
}

// Buckets groups named fields under calendar bucket labels at one level.
type Buckets struct {
	level  AggregationLevel
	fields map[string]map[string]*AggregatedField
}

// NewBuckets creates an empty bucket set at level.
func NewBuckets(level AggregationLevel) *Buckets {
	return &Buckets{level: level, fields: map[string]map[string]*AggregatedField{}}
}

// Level returns the bucket size.
func (b *Buckets) Level() AggregationLevel {
	return b.level
}

// Touch registers the bucket of date without adding a value and returns its label.
// ok is false when date cannot be parsed.
func (b *Buckets) Touch(date string) (label string, ok bool) {
	label, ok = BucketLabel(b.level, date)
	if !ok {
		return "", false
	}
	b.bucket(label)
	return label, true
}

// Add records value for field in the bucket of date. Unparseable dates are ignored.
func (b *Buckets) Add(date, field string, value float64) {
	if label, ok := BucketLabel(b.level, date); ok {
		b.AddLabel(label, field, value)
	}
}

// AddLabel records value for field in the bucket named label.
func (b *Buckets) AddLabel(label, field string, value float64) {
	bucket := b.bucket(label)
	af, ok := bucket[field]
	if !ok {
		af = &AggregatedField{}
		bucket[field] = af
	}
	af.AddValue(value)
}

// Field returns the aggregate of field in bucket label, or nil.
func (b *Buckets) Field(label, field string) *AggregatedField {
	return b.fields[label][field]
}

// Labels returns every bucket label in chronological order.
func (b *Buckets) Labels() []string {
	labels := make([]string, 0, len(b.fields))
	for label := range b.fields {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Len returns the number of buckets.
func (b *Buckets) Len() int {
	return len(b.fields)
}

func (b *Buckets) bucket(label string) map[string]*AggregatedField {
	bucket, ok := b.fields[label]
	if !ok {
		bucket = map[string]*AggregatedField{}
		b.fields[label] = bucket
	}
	return bucket
}
