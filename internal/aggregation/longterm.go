package aggregation

import (
	"fmt"
	"time"

	"github.com/healthlens/healthlens/internal/analytics"
	"github.com/healthlens/healthlens/internal/models"
)

// Interval selects how far back the quarterly table reaches.
type Interval string

const (
	Interval3Months Interval = "3m"
	Interval6Months Interval = "6m"
	Interval1Year   Interval = "1y"
	IntervalAll     Interval = "all"

	DefaultInterval = Interval1Year
)

// Field names used inside long-term buckets.
const (
	fieldSteps  = "steps"
	fieldSleep  = "sleep_hours"
	fieldWeight = "weight"
	fieldHR     = "heart_rate"
)

// ParseInterval validates s. An empty string selects DefaultInterval.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case "":
		return DefaultInterval, nil
	case Interval3Months, Interval6Months, Interval1Year, IntervalAll:
		return Interval(s), nil
	default:
		return "", fmt.Errorf("invalid interval %q: must be one of 3m, 6m, 1y, all", s)
	}
}

// Cutoff returns the earliest instant included for the interval ending at asOf.
// IntervalAll returns the zero time, which precedes every record.
func (i Interval) Cutoff(asOf time.Time) time.Time {
	switch i {
	case Interval3Months:
		return asOf.AddDate(0, -3, 0)
	case Interval6Months:
		return asOf.AddDate(0, -6, 0)
	case Interval1Year:
		return asOf.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Input carries the raw series and the already computed summaries.
type Input struct {
	Activity []models.ActivityRecord
	Sleep    []models.SleepRecord
	Body     []models.BodyRecord
	Sport    []models.SportRecord

	ActivityStats analytics.ActivityAnalytics
	SleepStats    analytics.SleepAnalytics
	BodyStats     analytics.BodyAnalytics
	StressStats   analytics.StressAnalytics
}

// Options tunes BuildLongTerm.
type Options struct {
	Interval Interval
	AsOf     time.Time
}

// QuarterSummary is one row of the quarterly table.
type QuarterSummary struct {
	Quarter   string   `json:"quarter"`
	AvgSteps  int      `json:"avg_steps"`
	AvgSleep  float64  `json:"avg_sleep"` // hours
	AvgWeight *float64 `json:"avg_weight"`
	AvgHR     int      `json:"avg_hr"`
}

// YearSummary is one row of the yearly table.
type YearSummary struct {
	Year        string   `json:"year"`
	AvgSteps    int      `json:"avg_steps"`
	AvgSleep    float64  `json:"avg_sleep"` // hours
	AvgWeight   *float64 `json:"avg_weight"`
	AvgHR       int      `json:"avg_hr"`
	TotalSteps  int      `json:"total_steps"`
	DaysTracked int      `json:"days_tracked"`
}

// DomainRanges holds the covered calendar range of each record kind.
type DomainRanges struct {
	Activity analytics.DateRange `json:"activity"`
	Sleep    analytics.DateRange `json:"sleep"`
	Body     analytics.DateRange `json:"body"`
	Stress   analytics.DateRange `json:"stress"`
}

// AllTimeStats are lifetime totals taken from the per-domain summaries.
type AllTimeStats struct {
	TotalSteps        int          `json:"total_steps"`
	TotalDistance     float64      `json:"total_distance"` // km
	TotalCalories     float64      `json:"total_calories"`
	TotalNights       int          `json:"total_nights"`
	AvgTotalSleep     float64      `json:"avg_total_sleep"`
	TotalMeasurements int          `json:"total_measurements"`
	WeightChange      float64      `json:"weight_change"`
	TotalHRReadings   int          `json:"total_hr_readings"`
	DateRange         DomainRanges `json:"date_range"`
}

// LongTermView is the multi-year trend page.
type LongTermView struct {
	Interval      Interval         `json:"interval"`
	Quarterly     []QuarterSummary `json:"quarterly"`
	Yearly        []YearSummary    `json:"yearly"`
	BestStepsYear *YearSummary     `json:"best_steps_year"`
	BestSleepYear *YearSummary     `json:"best_sleep_year"`
	AllTime       AllTimeStats     `json:"all_time"`
}

// BuildLongTerm aggregates the input into quarterly rows restricted to the
// interval, yearly rows over the full series and lifetime totals. Monthly heart
// rate comes from the stress summary and is not restricted by the interval.
func BuildLongTerm(in Input, opts Options) LongTermView {
	interval := opts.Interval
	if interval == "" {
		interval = DefaultInterval
	}
	cutoff := interval.Cutoff(opts.AsOf)

	quarterly := NewBuckets(AggregationQuarterly)
	collect(quarterly, in, func(date string) bool {
		at, ok := analytics.ParseTimestamp(date)
		if !ok {
			at, ok = analytics.ParseDay(date)
		}
		return ok && !at.Before(cutoff)
	})

	yearly := NewBuckets(AggregationYearly)
	collect(yearly, in, func(string) bool { return true })

	view := LongTermView{
		Interval:  interval,
		Quarterly: make([]QuarterSummary, 0, quarterly.Len()),
		Yearly:    make([]YearSummary, 0, yearly.Len()),
		AllTime:   allTimeStats(in),
	}

	for _, label := range quarterly.Labels() {
		view.Quarterly = append(view.Quarterly, QuarterSummary{
			Quarter:   label,
			AvgSteps:  analytics.RoundInt(quarterly.Field(label, fieldSteps).Mean()),
			AvgSleep:  analytics.Round1(quarterly.Field(label, fieldSleep).Mean()),
			AvgWeight: roundedMean(quarterly.Field(label, fieldWeight)),
			AvgHR:     analytics.RoundInt(quarterly.Field(label, fieldHR).Mean()),
		})
	}

	for _, label := range yearly.Labels() {
		steps := yearly.Field(label, fieldSteps)
		row := YearSummary{
			Year:      label,
			AvgSteps:  analytics.RoundInt(steps.Mean()),
			AvgSleep:  analytics.Round1(yearly.Field(label, fieldSleep).Mean()),
			AvgWeight: roundedMean(yearly.Field(label, fieldWeight)),
			AvgHR:     analytics.RoundInt(yearly.Field(label, fieldHR).Mean()),
		}
		if steps != nil {
			row.TotalSteps = int(steps.Sum)
			row.DaysTracked = int(steps.Count)
		}
		view.Yearly = append(view.Yearly, row)
	}

	if len(view.Yearly) > 0 {
		bestSteps, bestSleep := 0, 0
		for i, row := range view.Yearly {
			if row.AvgSteps > view.Yearly[bestSteps].AvgSteps {
				bestSteps = i
			}
			if row.AvgSleep > view.Yearly[bestSleep].AvgSleep {
				bestSleep = i
			}
		}
		steps, sleep := view.Yearly[bestSteps], view.Yearly[bestSleep]
		view.BestStepsYear = &steps
		view.BestSleepYear = &sleep
	}

	return view
}

// collect feeds every record accepted by include into b. Each record opens its
// bucket even when its value is filtered out.
func collect(b *Buckets, in Input, include func(date string) bool) {
	for _, r := range in.Activity {
		if !include(r.Date) {
			continue
		}
		if label, ok := b.Touch(r.Date); ok && r.Steps > 0 {
			b.AddLabel(label, fieldSteps, float64(r.Steps))
		}
	}
	for _, r := range in.Sleep {
		if !include(r.Date) {
			continue
		}
		if label, ok := b.Touch(r.Date); ok && r.TotalMinutes() > 0 {
			b.AddLabel(label, fieldSleep, float64(r.TotalMinutes())/60)
		}
	}
	for _, r := range in.Body {
		if !include(r.Time) {
			continue
		}
		if label, ok := b.Touch(r.Time); ok && r.Weight > 0 {
			b.AddLabel(label, fieldWeight, r.Weight)
		}
	}
	for _, m := range in.StressStats.MonthlyAvgHR {
		b.Add(m.Month+"-01", fieldHR, float64(m.AvgHR))
	}
}

func allTimeStats(in Input) AllTimeStats {
	stats := AllTimeStats{
		TotalSteps:        in.ActivityStats.TotalSteps,
		TotalDistance:     in.ActivityStats.TotalDistance,
		TotalCalories:     in.ActivityStats.TotalCalories,
		TotalNights:       in.SleepStats.TotalNights,
		AvgTotalSleep:     in.SleepStats.AvgTotalSleep,
		TotalMeasurements: in.BodyStats.TotalMeasurements,
		WeightChange:      in.BodyStats.WeightChange,
		TotalHRReadings:   in.StressStats.TotalReadings,
	}
	stats.DateRange.Body = in.BodyStats.DateRange
	stats.DateRange.Stress = in.StressStats.DateRange
	if n := len(in.Activity); n > 0 {
		stats.DateRange.Activity = analytics.DateRange{Start: in.Activity[0].Date, End: in.Activity[n-1].Date}
	}
	if n := len(in.Sleep); n > 0 {
		stats.DateRange.Sleep = analytics.DateRange{Start: in.Sleep[0].Date, End: in.Sleep[n-1].Date}
	}
	return stats
}

func roundedMean(af *AggregatedField) *float64 {
	if af == nil || af.Count == 0 {
		return nil
	}
	v := analytics.Round1(af.Avg)
	return &v
}
