package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/healthlens/healthlens/internal/models"
)

// Heart-rate analysis constants.
const (
	// MaxConsecutiveGap is the longest gap between two samples that still
	// counts as a consecutive pair for the HRV proxy.
	MaxConsecutiveGap = 2 * time.Minute

	restingFraction    = 0.1
	highStressDayHR    = 85.0
	nightHighHR        = 100
	recentDailyMinimum = 30
)

// StressLevel buckets a 0-100 stress score.
type StressLevel string

const (
	StressLow      StressLevel = "Low"
	StressModerate StressLevel = "Moderate"
	StressHigh     StressLevel = "High"
	StressVeryHigh StressLevel = "Very High"
)

// HRVCategory buckets the HRV proxy in milliseconds.
type HRVCategory string

const (
	HRVPoor         HRVCategory = "Poor"
	HRVBelowAverage HRVCategory = "Below Average"
	HRVAverage      HRVCategory = "Average"
	HRVGood         HRVCategory = "Good"
	HRVExcellent    HRVCategory = "Excellent"
)

// ZoneDistribution is the rounded share of samples in each heart-rate band.
// Bands are <60, 60-80, 80-100, 100-120 and >=120 bpm. Independent rounding
// may leave the sum one or two points away from 100.
type ZoneDistribution struct {
	Relaxed  int `json:"relaxed"`
	Normal   int `json:"normal"`
	Elevated int `json:"elevated"`
	High     int `json:"high"`
	VeryHigh int `json:"very_high"`
}

// MonthlyHeartRate is the average heart rate and a simplified stress score of a month.
type MonthlyHeartRate struct {
	Month       string `json:"month"`
	AvgHR       int    `json:"avg_hr"`
	StressScore int    `json:"stress_score"`
}

// StressAnalytics summarizes a heart-rate sample stream.
type StressAnalytics struct {
	TotalReadings int       `json:"total_readings"`
	DateRange     DateRange `json:"date_range"`

	AvgRestingHR   int         `json:"avg_resting_hr"`
	MinRestingHR   int         `json:"min_resting_hr"`
	MaxRestingHR   int         `json:"max_resting_hr"`
	RestingHRTrend TrendResult `json:"resting_hr_trend"`

	ZoneDistribution ZoneDistribution `json:"zone_distribution"`

	AvgStressScore int         `json:"avg_stress_score"`
	StressLevel    StressLevel `json:"stress_level"`

	EstimatedHRV int         `json:"estimated_hrv"` // ms
	HRVCategory  HRVCategory `json:"hrv_category"`

	AvgHRByHour      map[int]int `json:"avg_hr_by_hour"`
	PeakStressHour   int         `json:"peak_stress_hour"`
	LowestStressHour int         `json:"lowest_stress_hour"`

	AvgHRByDayOfWeek  map[string]int `json:"avg_hr_by_day_of_week"`
	MostStressfulDay  string         `json:"most_stressful_day"`
	LeastStressfulDay string         `json:"least_stressful_day"`

	AvgSleepHR    int `json:"avg_sleep_hr"`
	AvgDaytimeHR  int `json:"avg_daytime_hr"`
	RecoveryScore int `json:"recovery_score"`

	HighHREvents       int `json:"high_hr_events"`
	DaysWithHighStress int `json:"days_with_high_stress"`

	MonthlyAvgHR []MonthlyHeartRate `json:"monthly_avg_hr"`
}

// ClassifyStress buckets a stress score.
func ClassifyStress(score int) StressLevel {
	switch {
	case score < 25:
		return StressLow
	case score < 50:
		return StressModerate
	case score < 75:
		return StressHigh
	default:
		return StressVeryHigh
	}
}

// ClassifyHRV buckets an HRV estimate in milliseconds.
func ClassifyHRV(hrv int) HRVCategory {
	switch {
	case hrv < 20:
		return HRVPoor
	case hrv < 40:
		return HRVBelowAverage
	case hrv < 60:
		return HRVAverage
	case hrv < 100:
		return HRVGood
	default:
		return HRVExcellent
	}
}

// StressScore combines mean heart rate and the HRV proxy into 0-100.
// Higher heart rate and lower HRV both raise the score.
func StressScore(meanHR float64, hrv float64) int {
	hrComponent := Clamp((meanHR-50)/70*50, 0, 50)
	hrvComponent := Clamp(50-hrv/2, 0, 50)
	return RoundInt(math.Min(hrComponent+hrvComponent, 100))
}

// EstimateHRV averages the absolute difference of inter-beat intervals
// (60000/bpm) between time-adjacent samples. Pairs further apart than
// MaxConsecutiveGap, or sharing a timestamp, are skipped. samples must be
// sorted by timestamp.
func EstimateHRV(samples []models.HeartRateSample) float64 {
	diffs := make([]float64, 0, len(samples))
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		gap := cur.Timestamp.Sub(prev.Timestamp)
		if gap <= 0 || gap > MaxConsecutiveGap || prev.HeartRate <= 0 || cur.HeartRate <= 0 {
			continue
		}
		diffs = append(diffs, math.Abs(60000/float64(cur.HeartRate)-60000/float64(prev.HeartRate)))
	}
	return Mean(diffs)
}

func neutralStress() StressAnalytics {
	return StressAnalytics{
		RestingHRTrend:   NeutralTrend(),
		StressLevel:      StressLow,
		HRVCategory:      HRVAverage,
		AvgHRByHour:      map[int]int{},
		PeakStressHour:   12,
		LowestStressHour: 4,
		AvgHRByDayOfWeek: map[string]int{},
		MonthlyAvgHR:     []MonthlyHeartRate{},
	}
}

// CalculateStress derives resting heart rate, zones, the HRV proxy, a stress
// score and circadian patterns from heart-rate samples. Hours and weekdays
// come from the sample timestamps in UTC.
func CalculateStress(samples []models.HeartRateSample) StressAnalytics {
	if len(samples) == 0 {
		return neutralStress()
	}

	sorted := make([]models.HeartRateSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	n := len(sorted)
	all := make([]float64, n)
	var zones [5]int
	var byHour [24][]float64
	var weekly weekdayStats
	var sleepHRs, dayHRs []float64
	months := monthBuckets{}
	byDate := map[string][]float64{}
	dateOrder := make([]string, 0)
	result := neutralStress()

	for i, s := range sorted {
		hr := float64(s.HeartRate)
		all[i] = hr

		switch {
		case s.HeartRate < 60:
			zones[0]++
		case s.HeartRate < 80:
			zones[1]++
		case s.HeartRate < 100:
			zones[2]++
		case s.HeartRate < 120:
			zones[3]++
		default:
			zones[4]++
		}

		ts := s.Timestamp.UTC()
		hour := ts.Hour()
		byHour[hour] = append(byHour[hour], hr)
		weekly.addDay(ts.Weekday(), hr)

		if hour >= 23 || hour < 7 {
			sleepHRs = append(sleepHRs, hr)
		}
		if hour >= 9 && hour < 21 {
			dayHRs = append(dayHRs, hr)
		}
		if hour < 6 && s.HeartRate > nightHighHR {
			result.HighHREvents++
		}

		if _, seen := byDate[s.Date]; !seen {
			dateOrder = append(dateOrder, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], hr)
		months.add(MonthKey(s.Date), hr)
	}

	result.TotalReadings = n
	result.DateRange = DateRange{Start: sorted[0].Date, End: sorted[n-1].Date}

	// Resting estimate: the lowest tenth of all readings by value.
	byValue := make([]float64, n)
	copy(byValue, all)
	sort.Float64s(byValue)
	restCount := int(math.Floor(float64(n) * restingFraction))
	if restCount < 1 {
		restCount = 1
	}
	resting := byValue[:restCount]
	result.AvgRestingHR = RoundInt(Mean(resting))
	result.MinRestingHR = int(resting[0])
	result.MaxRestingHR = int(resting[len(resting)-1])

	result.ZoneDistribution = ZoneDistribution{
		Relaxed:  zonePercent(zones[0], n),
		Normal:   zonePercent(zones[1], n),
		Elevated: zonePercent(zones[2], n),
		High:     zonePercent(zones[3], n),
		VeryHigh: zonePercent(zones[4], n),
	}

	result.EstimatedHRV = RoundInt(EstimateHRV(sorted))
	result.HRVCategory = ClassifyHRV(result.EstimatedHRV)
	result.AvgStressScore = StressScore(Mean(all), float64(result.EstimatedHRV))
	result.StressLevel = ClassifyStress(result.AvgStressScore)

	result.AvgHRByHour, result.PeakStressHour, result.LowestStressHour = hourlyPattern(byHour)
	result.AvgHRByDayOfWeek, result.MostStressfulDay, result.LeastStressfulDay = weekly.summarize()

	result.AvgSleepHR = RoundInt(Mean(sleepHRs))
	result.AvgDaytimeHR = RoundInt(Mean(dayHRs))
	if result.AvgDaytimeHR > 0 {
		day, night := float64(result.AvgDaytimeHR), float64(result.AvgSleepHR)
		result.RecoveryScore = RoundInt(Clamp((day-night)/day*200, 0, 100))
	}

	dailyMins := make([]float64, 0, len(dateOrder))
	for _, date := range dateOrder {
		hrs := byDate[date]
		if Mean(hrs) > highStressDayHR {
			result.DaysWithHighStress++
		}
		lo, _ := MinMax(hrs)
		dailyMins = append(dailyMins, lo)
	}
	result.RestingHRTrend = Trend(tail(dailyMins, recentDailyMinimum))

	for _, month := range lastMonths(months, MonthsRetained) {
		avg := Mean(months[month])
		result.MonthlyAvgHR = append(result.MonthlyAvgHR, MonthlyHeartRate{
			Month:       month,
			AvgHR:       RoundInt(avg),
			StressScore: RoundInt(Clamp((avg-50)/50*100, 0, 100)),
		})
	}

	return result
}

// hourlyPattern returns the rounded mean per hour for all 24 hours and the
// first hour with the strictly highest and lowest mean among non-empty hours.
func hourlyPattern(byHour [24][]float64) (map[int]int, int, int) {
	avgs := make(map[int]int, 24)
	peak, lowest := 12, 4
	maxAvg, minAvg := math.Inf(-1), math.Inf(1)
	for h := 0; h < 24; h++ {
		avg := Mean(byHour[h])
		avgs[h] = RoundInt(avg)
		if len(byHour[h]) == 0 {
			continue
		}
		if avg > maxAvg {
			maxAvg = avg
			peak = h
		}
		if avg < minAvg {
			minAvg = avg
			lowest = h
		}
	}
	return avgs, peak, lowest
}

func zonePercent(count, total int) int {
	if total == 0 {
		return 0
	}
	return RoundInt(Clamp(float64(count)/float64(total)*100, 0, 100))
}
