package aggregation

import (
	"strconv"
	"strings"
	"time"

	"github.com/healthlens/healthlens/internal/analytics"
)

// RecentEntries is how many trailing records the overview averages over.
const RecentEntries = 7

// Overview holds the dashboard header figures.
type Overview struct {
	AvgSteps          int     `json:"avg_steps"`
	AvgSleepMinutes   int     `json:"avg_sleep_minutes"`
	TotalCaloriesWeek float64 `json:"total_calories_week"`
	WorkoutsThisMonth int     `json:"workouts_this_month"`
	TodaySteps        int     `json:"today_steps"`
	TodayCalories     float64 `json:"today_calories"`
	LatestWeight      float64 `json:"latest_weight"`
	LatestBmi         float64 `json:"latest_bmi"`
}

// BuildOverview summarizes the trailing RecentEntries activity and sleep
// records, the workouts started in the calendar month of asOf (UTC) and the
// newest activity and body records. Records are taken in input order.
func BuildOverview(in Input, asOf time.Time) Overview {
	var out Overview

	recent := in.Activity
	if len(recent) > RecentEntries {
		recent = recent[len(recent)-RecentEntries:]
	}
	if len(recent) > 0 {
		steps := 0
		for _, r := range recent {
			steps += r.Steps
			out.TotalCaloriesWeek += r.Calories
		}
		out.AvgSteps = analytics.RoundInt(float64(steps) / float64(len(recent)))
		latest := recent[len(recent)-1]
		out.TodaySteps = latest.Steps
		out.TodayCalories = latest.Calories
	}

	nights := in.Sleep
	if len(nights) > RecentEntries {
		nights = nights[len(nights)-RecentEntries:]
	}
	if len(nights) > 0 {
		total := 0
		for _, r := range nights {
			total += r.TotalMinutes()
		}
		out.AvgSleepMinutes = analytics.RoundInt(float64(total) / float64(len(nights)))
	}

	month := asOf.UTC().Format("2006-01")
	for _, s := range in.Sport {
		if start, ok := sportStart(s.StartTime); ok && start.Format("2006-01") == month {
			out.WorkoutsThisMonth++
		}
	}

	if n := len(in.Body); n > 0 {
		out.LatestWeight = in.Body[n-1].Weight
		out.LatestBmi = in.Body[n-1].BMI
	}

	return out
}

// sportStart accepts a calendar timestamp, a "+0000"-style offset suffix or
// Unix seconds.
func sportStart(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, ok := analytics.ParseTimestamp(s); ok {
		return t, true
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}
