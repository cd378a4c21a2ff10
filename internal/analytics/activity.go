package analytics

import "github.com/healthlens/healthlens/internal/models"

// DefaultStepGoal is the daily step goal used for streaks when none is given.
const DefaultStepGoal = 10000

// ActivityOptions tunes activity analytics.
type ActivityOptions struct {
	StepGoal int
}

// DayRecord identifies a single day and its step count.
type DayRecord struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// MonthlySteps is the average daily step count of a calendar month.
type MonthlySteps struct {
	Month    string `json:"month"`
	AvgSteps int    `json:"avg_steps"`
}

// ActivityAnalytics summarizes a series of daily activity records.
type ActivityAnalytics struct {
	TotalDays     int     `json:"total_days"`
	TotalSteps    int     `json:"total_steps"`
	TotalDistance float64 `json:"total_distance"` // km
	TotalCalories float64 `json:"total_calories"`

	AvgDailySteps    int     `json:"avg_daily_steps"`
	AvgDailyDistance float64 `json:"avg_daily_distance"` // km
	AvgDailyCalories int     `json:"avg_daily_calories"`

	StdDevSteps      int `json:"std_dev_steps"`
	ConsistencyScore int `json:"consistency_score"`

	P25Steps int `json:"p25_steps"`
	P50Steps int `json:"p50_steps"`
	P75Steps int `json:"p75_steps"`
	P90Steps int `json:"p90_steps"`
	P95Steps int `json:"p95_steps"`

	BestDay        DayRecord `json:"best_day"`
	WorstActiveDay DayRecord `json:"worst_active_day"`

	Trend7d  TrendResult `json:"trend_7d"`
	Trend30d TrendResult `json:"trend_30d"`

	StepGoal      int `json:"step_goal"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	DaysAbove10k int `json:"days_above_10k"`
	DaysAbove5k  int `json:"days_above_5k"`
	DaysBelow2k  int `json:"days_below_2k"`

	AvgByDayOfWeek map[string]int `json:"avg_by_day_of_week"`
	MostActiveDay  string         `json:"most_active_day"`
	LeastActiveDay string         `json:"least_active_day"`

	MonthlyAverages []MonthlySteps `json:"monthly_averages"`
}

// CalculateActivity computes activity statistics over days with at least one step.
func CalculateActivity(records []models.ActivityRecord, opts ActivityOptions) ActivityAnalytics {
	goal := opts.StepGoal
	if goal <= 0 {
		goal = DefaultStepGoal
	}

	active := make([]models.ActivityRecord, 0, len(records))
	for _, r := range records {
		if r.Steps > 0 {
			active = append(active, r)
		}
	}

	steps := make([]float64, len(active))
	distances := make([]float64, len(active))
	calories := make([]float64, len(active))
	totalSteps := 0
	var weekly weekdayStats
	months := monthBuckets{}

	for i, r := range active {
		steps[i] = float64(r.Steps)
		distances[i] = r.Distance / 1000
		calories[i] = r.Calories
		totalSteps += r.Steps
		weekly.add(r.Date, steps[i])
		months.add(MonthKey(r.Date), steps[i])
	}

	result := ActivityAnalytics{
		TotalDays:     len(active),
		TotalSteps:    totalSteps,
		TotalDistance: Round1(Sum(distances)),
		TotalCalories: Sum(calories),

		AvgDailySteps:    RoundInt(Mean(steps)),
		AvgDailyDistance: Round1(Mean(distances)),
		AvgDailyCalories: RoundInt(Mean(calories)),

		StdDevSteps:      RoundInt(StdDev(steps)),
		ConsistencyScore: RoundInt(ConsistencyScore(steps)),

		P25Steps: RoundInt(Percentile(steps, 25)),
		P50Steps: RoundInt(Percentile(steps, 50)),
		P75Steps: RoundInt(Percentile(steps, 75)),
		P90Steps: RoundInt(Percentile(steps, 90)),
		P95Steps: RoundInt(Percentile(steps, 95)),

		Trend7d:  Trend(tail(steps, 7)),
		Trend30d: Trend(tail(steps, 30)),

		StepGoal: goal,
	}

	result.BestDay, result.WorstActiveDay = stepExtremes(active)
	result.CurrentStreak, result.LongestStreak = stepStreaks(active, goal)

	for _, s := range active {
		if s.Steps >= 10000 {
			result.DaysAbove10k++
		}
		if s.Steps >= 5000 {
			result.DaysAbove5k++
		}
		if s.Steps < 2000 {
			result.DaysBelow2k++
		}
	}

	result.AvgByDayOfWeek, result.MostActiveDay, result.LeastActiveDay = weekly.summarize()

	result.MonthlyAverages = make([]MonthlySteps, 0, MonthsRetained)
	for _, month := range lastMonths(months, MonthsRetained) {
		result.MonthlyAverages = append(result.MonthlyAverages, MonthlySteps{
			Month:    month,
			AvgSteps: RoundInt(Mean(months[month])),
		})
	}

	return result
}

// stepExtremes returns the highest-step day (earliest on ties) and the
// lowest-step day (latest on ties).
func stepExtremes(active []models.ActivityRecord) (DayRecord, DayRecord) {
	if len(active) == 0 {
		return DayRecord{}, DayRecord{}
	}
	best, worst := active[0], active[0]
	for _, r := range active[1:] {
		if r.Steps > best.Steps {
			best = r
		}
		if r.Steps <= worst.Steps {
			worst = r
		}
	}
	return DayRecord{Date: best.Date, Steps: best.Steps}, DayRecord{Date: worst.Date, Steps: worst.Steps}
}

// stepStreaks walks from the most recent record backward. The current streak
// is the run of goal-meeting records ending at the most recent one; the
// longest streak is the longest such run anywhere in the series.
func stepStreaks(active []models.ActivityRecord, goal int) (current, longest int) {
	run := 0
	inCurrent := true
	for i := len(active) - 1; i >= 0; i-- {
		if active[i].Steps >= goal {
			run++
			if inCurrent {
				current = run
			}
		} else {
			inCurrent = false
			run = 0
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}
