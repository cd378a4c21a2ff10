package aggregation

import (
	"strconv"
	"time"

	"github.com/healthlens/healthlens/internal/analytics"
)

// AggregationLevel represents the calendar bucket size
type AggregationLevel string

const (
	AggregationMonthly   AggregationLevel = "1M"
	AggregationQuarterly AggregationLevel = "1Q"
	AggregationYearly    AggregationLevel = "1y"
)

// TruncateToMonth truncates time to the start of the month
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TruncateToQuarter truncates time to the start of its calendar quarter
func TruncateToQuarter(t time.Time) time.Time {
	first := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), first, 1, 0, 0, 0, 0, t.Location())
}

// TruncateToYear truncates time to the start of the year
func TruncateToYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// Quarter returns the 1-based calendar quarter of t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// LabelFor renders the bucket label of t at level:
// "2024-03" (monthly), "2024 Q1" (quarterly) or "2024" (yearly).
// Labels sort chronologically as plain strings.
func LabelFor(level AggregationLevel, t time.Time) string {
	switch level {
	case AggregationQuarterly:
		return strconv.Itoa(t.Year()) + " Q" + strconv.Itoa(Quarter(t))
	case AggregationYearly:
		return strconv.Itoa(t.Year())
	default:
		return TruncateToMonth(t).Format("2006-01")
	}
}

// BucketLabel parses the leading calendar day of date and returns its label at level.
func BucketLabel(level AggregationLevel, date string) (string, bool) {
	day, ok := analytics.ParseDay(date)
	if !ok {
		return "", false
	}
	return LabelFor(level, day), true
}
