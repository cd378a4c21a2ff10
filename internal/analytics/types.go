// Package analytics turns raw health record series into derived statistics:
// trends, percentiles, streaks, consistency scores, sleep architecture,
// heart-rate zones, an HRV proxy and time-bucketed averages.
//
// Every exported Calculate* function is pure. It never mutates its input and
// returns a fully populated neutral result for empty or degenerate input.
package analytics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TrendDirection is the reported direction of a regression trend.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendResult is the direction and relative size of a linear trend.
type TrendResult struct {
	Direction     TrendDirection `json:"direction"`
	PercentChange float64        `json:"percent_change"`
}

// NeutralTrend is the trend reported when fewer than two points are available.
func NeutralTrend() TrendResult {
	return TrendResult{Direction: TrendStable, PercentChange: 0}
}

// DateRange holds the first and last calendar day of a series.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Weekdays lists day names in Sunday-first order. Best/worst day selection
// iterates in this order and keeps the first day that wins a strict comparison.
var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const (
	dayLayout       = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// ParseDay parses the leading YYYY-MM-DD part of s in UTC.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(dayLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dayLayout, s[:len(dayLayout)], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// timestampLayouts are tried in order by ParseTimestamp. Values without an
// offset are read as UTC.
var timestampLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	dayLayout,
}

// ParseTimestamp parses "YYYY-MM-DD", "YYYY-MM-DD HH:MM[:SS]" with an optional
// "+0000"-style offset, or RFC3339. The result is in UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DayPart returns the calendar-day portion of a "YYYY-MM-DD HH:MM:SS" string.
func DayPart(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i >= 0 {
		return s[:i]
	}
	return s
}

// MonthKey returns the YYYY-MM prefix of a date string, or "" if it is too short.
func MonthKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 7 {
		return ""
	}
	return s[:7]
}

// WeekdayName returns the UTC weekday name of a date string.
func WeekdayName(date string) (string, bool) {
	t, ok := ParseDay(date)
	if !ok {
		return "", false
	}
	return Weekdays[t.Weekday()], true
}

var clockPattern = regexp.MustCompile(`(\d{2}):(\d{2})`)

// ClockMinutes extracts the first HH:MM found in s as minutes after midnight.
func ClockMinutes(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil || h > 23 {
		return 0, false
	}
	mins, err := strconv.Atoi(m[2])
	if err != nil || mins > 59 {
		return 0, false
	}
	return h*60 + mins, true
}

// FormatClock renders minutes after midnight as HH:MM on a 24h clock.
func FormatClock(minutes float64) string {
	total := RoundInt(minutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return twoDigits(total/60) + ":" + twoDigits(total%60)
}

func twoDigits(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// weekdayStats accumulates values per weekday and reports rounded means
// together with the highest and lowest non-empty day.
type weekdayStats struct {
	values [7][]float64
}

func (w *weekdayStats) add(date string, v float64) {
	t, ok := ParseDay(date)
	if !ok {
		return
	}
	w.addDay(t.Weekday(), v)
}

func (w *weekdayStats) addDay(day time.Weekday, v float64) {
	w.values[day] = append(w.values[day], v)
}

// summarize returns rounded means per day name and the first day with the
// strictly highest and lowest mean. Days without values are skipped.
func (w *weekdayStats) summarize() (map[string]int, string, string) {
	avgs := make(map[string]int, len(Weekdays))
	best, worst := "", ""
	maxAvg, minAvg := 0.0, 0.0
	for i, name := range Weekdays {
		avg := Mean(w.values[i])
		avgs[name] = RoundInt(avg)
		if len(w.values[i]) == 0 {
			continue
		}
		if best == "" || avg > maxAvg {
			maxAvg = avg
			best = name
		}
		if worst == "" || avg < minAvg {
			minAvg = avg
			worst = name
		}
	}
	return avgs, best, worst
}

// monthBuckets groups values by YYYY-MM key.
type monthBuckets map[string][]float64

func (m monthBuckets) add(key string, v float64) {
	if key == "" {
		return
	}
	m[key] = append(m[key], v)
}

// lastMonths returns the ascending month keys, keeping at most limit of the latest ones.
func lastMonths[V any](m map[string]V, limit int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}
	return keys
}

// tail returns the last n elements of values without copying.
func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// MonthsRetained is how many calendar months monthly progressions keep.
const MonthsRetained = 12
