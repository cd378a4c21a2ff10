package analytics

import (
	"sort"
	"time"

	"github.com/healthlens/healthlens/internal/models"
)

// RateWindow is how far back from the evaluation instant the weekly weight
// rate of change looks.
const RateWindow = 28 * 24 * time.Hour

// BodyOptions tunes body analytics.
type BodyOptions struct {
	// AsOf is the evaluation instant for the recent rate-of-change window.
	// A zero AsOf leaves the window unbounded on the left.
	AsOf time.Time
}

// BodyComposition is the most recent measurement carrying a body fat reading.
type BodyComposition struct {
	FatRate     *float64 `json:"fat_rate"`
	MuscleRate  *float64 `json:"muscle_rate"`
	Metabolism  *float64 `json:"metabolism"`
	VisceralFat *float64 `json:"visceral_fat"`
}

// MonthlyBody is the average weight and BMI of a calendar month.
type MonthlyBody struct {
	Month     string  `json:"month"`
	AvgWeight float64 `json:"avg_weight"`
	AvgBmi    float64 `json:"avg_bmi"`
}

// BodyAnalytics summarizes a series of scale measurements.
type BodyAnalytics struct {
	TotalMeasurements int       `json:"total_measurements"`
	DateRange         DateRange `json:"date_range"`

	CurrentWeight       float64 `json:"current_weight"`
	StartWeight         float64 `json:"start_weight"`
	WeightChange        float64 `json:"weight_change"`
	WeightChangePercent float64 `json:"weight_change_percent"`

	CurrentBmi  float64 `json:"current_bmi"`
	BmiCategory string  `json:"bmi_category"`

	AvgWeight float64 `json:"avg_weight"`
	AvgBmi    float64 `json:"avg_bmi"`

	StdDevWeight float64 `json:"std_dev_weight"`
	MinWeight    float64 `json:"min_weight"`
	MaxWeight    float64 `json:"max_weight"`
	WeightRange  float64 `json:"weight_range"`

	Trend30d TrendResult `json:"trend_30d"`
	Trend90d TrendResult `json:"trend_90d"`

	Composition *BodyComposition `json:"composition"`

	MonthlyAverages []MonthlyBody `json:"monthly_averages"`

	WeightChangePerWeek float64 `json:"weight_change_per_week"` // kg per week over the rate window
}

// BmiCategory classifies a BMI value using the standard adult thresholds.
func BmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	case bmi < 35:
		return "Obese Class I"
	case bmi < 40:
		return "Obese Class II"
	default:
		return "Obese Class III"
	}
}

type timedBody struct {
	models.BodyRecord
	at time.Time
}

// CalculateBody computes weight and composition statistics. Records are
// sorted by timestamp here; callers need not pre-sort.
func CalculateBody(records []models.BodyRecord, opts BodyOptions) BodyAnalytics {
	valid := make([]timedBody, 0, len(records))
	for _, r := range records {
		if r.Weight <= 0 {
			continue
		}
		at, ok := ParseTimestamp(r.Time)
		if !ok {
			continue
		}
		valid = append(valid, timedBody{BodyRecord: r, at: at})
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].at.Before(valid[j].at) })

	weights := make([]float64, len(valid))
	bmis := make([]float64, 0, len(valid))
	type monthAcc struct{ weights, bmis []float64 }
	months := map[string]*monthAcc{}

	for i, r := range valid {
		weights[i] = r.Weight
		if r.BMI > 0 {
			bmis = append(bmis, r.BMI)
		}
		key := MonthKey(r.Time)
		acc, ok := months[key]
		if !ok {
			acc = &monthAcc{}
			months[key] = acc
		}
		acc.weights = append(acc.weights, r.Weight)
		if r.BMI > 0 {
			acc.bmis = append(acc.bmis, r.BMI)
		}
	}

	minW, maxW := MinMax(weights)
	result := BodyAnalytics{
		TotalMeasurements: len(valid),

		AvgWeight: Round1(Mean(weights)),
		AvgBmi:    Round1(Mean(bmis)),

		StdDevWeight: Round1(StdDev(weights)),
		MinWeight:    minW,
		MaxWeight:    maxW,
		WeightRange:  Round1(maxW - minW),

		Trend30d: Trend(tail(weights, 30)),
		Trend90d: Trend(tail(weights, 90)),

		WeightChangePerWeek: Round2(weeklyRate(valid, opts.AsOf)),
	}

	if len(valid) > 0 {
		first, latest := valid[0], valid[len(valid)-1]
		result.DateRange = DateRange{Start: DayPart(first.Time), End: DayPart(latest.Time)}
		result.CurrentWeight = latest.Weight
		result.StartWeight = first.Weight
		result.WeightChange = Round1(latest.Weight - first.Weight)
		if first.Weight != 0 {
			result.WeightChangePercent = Round1((latest.Weight - first.Weight) / first.Weight * 100)
		}
		result.CurrentBmi = latest.BMI
		result.BmiCategory = BmiCategory(latest.BMI)
	}

	for i := len(valid) - 1; i >= 0; i-- {
		r := valid[i]
		if r.FatRate != nil && *r.FatRate > 0 {
			result.Composition = &BodyComposition{
				FatRate:     positive(r.FatRate),
				MuscleRate:  positive(r.MuscleRate),
				Metabolism:  positive(r.Metabolism),
				VisceralFat: positive(r.VisceralFat),
			}
			break
		}
	}

	result.MonthlyAverages = make([]MonthlyBody, 0, MonthsRetained)
	for _, month := range lastMonths(months, MonthsRetained) {
		acc := months[month]
		result.MonthlyAverages = append(result.MonthlyAverages, MonthlyBody{
			Month:     month,
			AvgWeight: Round1(Mean(acc.weights)),
			AvgBmi:    Round1(Mean(acc.bmis)),
		})
	}

	return result
}

// weeklyRate is the weight change per 7 days between the first and last
// measurement inside the rate window ending at asOf.
func weeklyRate(sorted []timedBody, asOf time.Time) float64 {
	recent := sorted
	if !asOf.IsZero() {
		cutoff := asOf.Add(-RateWindow)
		start := sort.Search(len(sorted), func(i int) bool { return !sorted[i].at.Before(cutoff) })
		recent = sorted[start:]
	}
	if len(recent) < 2 {
		return 0
	}
	first, last := recent[0], recent[len(recent)-1]
	days := last.at.Sub(first.at).Hours() / 24
	if days <= 0 {
		return 0
	}
	return (last.Weight - first.Weight) / days * 7
}

func positive(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	out := *v
	return &out
}
