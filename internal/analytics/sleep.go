package analytics

import (
	"math"

	"github.com/healthlens/healthlens/internal/models"
)

// DefaultRecommendedSleepHours is the nightly sleep target used for sleep debt.
const DefaultRecommendedSleepHours = 7.5

const minutesPerDay = 24 * 60

// SleepOptions tunes sleep analytics.
type SleepOptions struct {
	RecommendedHours float64
}

// NightRecord identifies a single night and its total sleep.
type NightRecord struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"total_minutes"`
}

// MonthlySleep is the average nightly sleep of a calendar month.
type MonthlySleep struct {
	Month    string  `json:"month"`
	AvgHours float64 `json:"avg_hours"`
}

// SleepAnalytics summarizes a series of tracked nights. Durations are hours
// unless the field name says otherwise.
type SleepAnalytics struct {
	TotalNights int `json:"total_nights"`

	AvgTotalSleep float64 `json:"avg_total_sleep"`
	AvgDeepSleep  float64 `json:"avg_deep_sleep"`
	AvgLightSleep float64 `json:"avg_light_sleep"`
	AvgRemSleep   float64 `json:"avg_rem_sleep"`
	AvgWakeTime   int     `json:"avg_wake_time"` // minutes awake

	DeepSleepPercent  int `json:"deep_sleep_percent"`
	LightSleepPercent int `json:"light_sleep_percent"`
	RemSleepPercent   int `json:"rem_sleep_percent"`
	WakePercent       int `json:"wake_percent"`
	SleepEfficiency   int `json:"sleep_efficiency"`

	StdDevTotalSleep float64 `json:"std_dev_total_sleep"`
	ConsistencyScore int     `json:"consistency_score"`

	P25TotalSleep float64 `json:"p25_total_sleep"`
	P50TotalSleep float64 `json:"p50_total_sleep"`
	P75TotalSleep float64 `json:"p75_total_sleep"`

	BestNight     NightRecord `json:"best_night"`
	ShortestNight NightRecord `json:"shortest_night"`

	Trend7d  TrendResult `json:"trend_7d"`
	Trend30d TrendResult `json:"trend_30d"`

	RecommendedSleep       float64 `json:"recommended_sleep"`
	AvgSleepDebt           float64 `json:"avg_sleep_debt"`
	NightsUnderRecommended int     `json:"nights_under_recommended"`

	AvgByDayOfWeek map[string]int `json:"avg_by_day_of_week"` // minutes
	BestSleepDay   string         `json:"best_sleep_day"`
	WorstSleepDay  string         `json:"worst_sleep_day"`

	AvgBedtime    string `json:"avg_bedtime"`
	AvgWakeUpTime string `json:"avg_wake_up_time"`

	MonthlyAverages []MonthlySleep `json:"monthly_averages"`
}

// CalculateSleep computes sleep statistics over nights with recorded deep or light sleep.
func CalculateSleep(records []models.SleepRecord, opts SleepOptions) SleepAnalytics {
	recommended := opts.RecommendedHours
	if recommended <= 0 {
		recommended = DefaultRecommendedSleepHours
	}

	valid := make([]models.SleepRecord, 0, len(records))
	for _, r := range records {
		if r.DeepSleepTime > 0 || r.ShallowSleepTime > 0 {
			valid = append(valid, r)
		}
	}

	n := len(valid)
	totals := make([]float64, n)
	deep := make([]float64, n)
	light := make([]float64, n)
	rem := make([]float64, n)
	wake := make([]float64, n)
	debts := make([]float64, n)
	bedtimes := make([]float64, 0, n)
	wakeUps := make([]float64, 0, n)
	var weekly weekdayStats
	months := monthBuckets{}
	recommendedMins := recommended * 60

	for i, r := range valid {
		totals[i] = float64(r.TotalMinutes())
		deep[i] = float64(r.DeepSleepTime)
		light[i] = float64(r.ShallowSleepTime)
		rem[i] = float64(r.REMTime)
		wake[i] = float64(r.WakeTime)
		debts[i] = math.Max(0, recommendedMins-totals[i])

		if m, ok := ClockMinutes(r.Start); ok {
			// Onsets before noon belong to the previous evening's clock, midnight included.
			if m < 12*60 {
				m += minutesPerDay
			}
			bedtimes = append(bedtimes, float64(m))
		}
		if m, ok := ClockMinutes(r.Stop); ok && m > 0 {
			wakeUps = append(wakeUps, float64(m))
		}

		weekly.add(r.Date, totals[i])
		months.add(MonthKey(r.Date), totals[i])
	}

	avgTotal := Mean(totals)
	avgDeep := Mean(deep)
	avgLight := Mean(light)
	avgRem := Mean(rem)
	avgWake := Mean(wake)

	result := SleepAnalytics{
		TotalNights: n,

		AvgTotalSleep: minutesToHours(avgTotal),
		AvgDeepSleep:  minutesToHours(avgDeep),
		AvgLightSleep: minutesToHours(avgLight),
		AvgRemSleep:   minutesToHours(avgRem),
		AvgWakeTime:   RoundInt(avgWake),

		StdDevTotalSleep: minutesToHours(StdDev(totals)),
		ConsistencyScore: RoundInt(ConsistencyScore(totals)),

		P25TotalSleep: minutesToHours(Percentile(totals, 25)),
		P50TotalSleep: minutesToHours(Percentile(totals, 50)),
		P75TotalSleep: minutesToHours(Percentile(totals, 75)),

		Trend7d:  Trend(tail(totals, 7)),
		Trend30d: Trend(tail(totals, 30)),

		RecommendedSleep: recommended,
		AvgSleepDebt:     minutesToHours(Mean(debts)),
	}

	if avgTotal > 0 {
		result.DeepSleepPercent = percentOf(avgDeep, avgTotal)
		result.LightSleepPercent = percentOf(avgLight, avgTotal)
		result.RemSleepPercent = percentOf(avgRem, avgTotal)
		result.WakePercent = percentOf(avgWake, avgTotal+avgWake)
		result.SleepEfficiency = percentOf(avgTotal, avgTotal+avgWake)
	}

	for _, d := range debts {
		if d > 0 {
			result.NightsUnderRecommended++
		}
	}

	result.BestNight, result.ShortestNight = nightExtremes(valid)
	result.AvgByDayOfWeek, result.BestSleepDay, result.WorstSleepDay = weekly.summarize()

	if len(bedtimes) > 0 {
		result.AvgBedtime = FormatClock(math.Mod(Mean(bedtimes), minutesPerDay))
	}
	if len(wakeUps) > 0 {
		result.AvgWakeUpTime = FormatClock(Mean(wakeUps))
	}

	result.MonthlyAverages = make([]MonthlySleep, 0, MonthsRetained)
	for _, month := range lastMonths(months, MonthsRetained) {
		result.MonthlyAverages = append(result.MonthlyAverages, MonthlySleep{
			Month:    month,
			AvgHours: minutesToHours(Mean(months[month])),
		})
	}

	return result
}

// nightExtremes returns the longest night (earliest on ties) and the
// shortest night (latest on ties).
func nightExtremes(valid []models.SleepRecord) (NightRecord, NightRecord) {
	if len(valid) == 0 {
		return NightRecord{}, NightRecord{}
	}
	best, worst := valid[0], valid[0]
	for _, r := range valid[1:] {
		if r.TotalMinutes() > best.TotalMinutes() {
			best = r
		}
		if r.TotalMinutes() <= worst.TotalMinutes() {
			worst = r
		}
	}
	return NightRecord{Date: best.Date, TotalMinutes: best.TotalMinutes()},
		NightRecord{Date: worst.Date, TotalMinutes: worst.TotalMinutes()}
}

func minutesToHours(minutes float64) float64 {
	return Round1(minutes / 60)
}

// percentOf returns part/whole as a rounded percentage clamped to [0, 100].
func percentOf(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return RoundInt(Clamp(part/whole*100, 0, 100))
}
