package chat

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/healthlens/healthlens/internal/analytics"
	"github.com/healthlens/healthlens/internal/models"
	"github.com/healthlens/healthlens/internal/utils"
)

const notAvailable = "N/A"

// BuildHealthContext summarizes the snapshot as plain text for the assistant.
// Averages and best days cover the most recent utils.ChatContextEntries
// records of each series.
func BuildHealthContext(snap *models.Snapshot) string {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	p := message.NewPrinter(language.English)

	activity := lastN(snap.Activity, utils.ChatContextEntries)
	sleep := lastN(snap.Sleep, utils.ChatContextEntries)
	var latestBody *models.BodyRecord
	if n := len(snap.Body); n > 0 {
		latestBody = &snap.Body[n-1]
	}

	steps := make([]float64, len(activity))
	calories := make([]float64, len(activity))
	bestSteps := models.ActivityRecord{Date: notAvailable}
	for i, a := range activity {
		steps[i] = float64(a.Steps)
		calories[i] = a.Calories
		if i == 0 || a.Steps > bestSteps.Steps {
			bestSteps = a
		}
	}

	sleepTotals := make([]float64, len(sleep))
	bestSleep := models.SleepRecord{Date: notAvailable}
	for i, s := range sleep {
		sleepTotals[i] = float64(s.TotalMinutes())
		if i == 0 || s.TotalMinutes() > bestSleep.TotalMinutes() {
			bestSleep = s
		}
	}
	avgSleep := analytics.RoundInt(analytics.Mean(sleepTotals))

	name := "User"
	height := "Unknown"
	if snap.User != nil && snap.User.NickName != "" {
		name = snap.User.NickName
	}
	switch {
	case snap.User != nil && snap.User.Height > 0:
		height = formatNumber(snap.User.Height)
	case latestBody != nil && latestBody.Height > 0:
		height = formatNumber(latestBody.Height)
	}
	weight, bmi := "Unknown", "Unknown"
	if latestBody != nil {
		weight = formatNumber(latestBody.Weight)
		if latestBody.BMI > 0 {
			bmi = strconv.FormatFloat(analytics.Round1(latestBody.BMI), 'f', 1, 64)
		}
	}

	var b strings.Builder
	b.WriteString("User Profile:\n")
	p.Fprintf(&b, "- Name: %s\n", name)
	p.Fprintf(&b, "- Height: %s cm\n", height)
	p.Fprintf(&b, "- Current Weight: %s kg\n", weight)
	p.Fprintf(&b, "- BMI: %s\n\n", bmi)

	b.WriteString("Recent Activity (Last 30 days):\n")
	p.Fprintf(&b, "- Average Steps: %d per day\n", analytics.RoundInt(analytics.Mean(steps)))
	p.Fprintf(&b, "- Average Calories Burned: %v kcal per day\n", analytics.RoundInt(analytics.Mean(calories)))
	p.Fprintf(&b, "- Best Day: %s with %d steps\n", bestSteps.Date, bestSteps.Steps)
	p.Fprintf(&b, "- Total Records: %v\n\n", len(snap.Activity))

	b.WriteString("Recent Sleep (Last 30 days):\n")
	p.Fprintf(&b, "- Average Total Sleep: %v minutes per night\n", avgSleep)
	p.Fprintf(&b, "- Average in hours: %s hours\n", strconv.FormatFloat(analytics.Round1(float64(avgSleep)/60), 'f', 1, 64))
	p.Fprintf(&b, "- Best Sleep Night: %s with %v minutes\n", bestSleep.Date, bestSleep.TotalMinutes())
	p.Fprintf(&b, "- Total Records: %v\n\n", len(snap.Sleep))

	b.WriteString("Body Composition (Latest):\n")
	if latestBody == nil {
		p.Fprintf(&b, "- Weight: %s kg\n", notAvailable)
	} else {
		p.Fprintf(&b, "- Weight: %s kg\n", formatNumber(latestBody.Weight))
	}
	p.Fprintf(&b, "- Body Fat: %s%%\n", optional(latestBody, func(r *models.BodyRecord) *float64 { return r.FatRate }))
	p.Fprintf(&b, "- Muscle Rate: %s%%\n", optional(latestBody, func(r *models.BodyRecord) *float64 { return r.MuscleRate }))
	p.Fprintf(&b, "- Metabolism: %s kcal", optional(latestBody, func(r *models.BodyRecord) *float64 { return r.Metabolism }))

	return b.String()
}

// SystemPrompt wraps a health context in the assistant instructions.
func SystemPrompt(healthContext string) string {
	return "You are a helpful health assistant analyzing the user's fitness and health data. " +
		"Be encouraging and provide actionable insights. Here is the user's health data summary:\n\n" +
		healthContext +
		"\n\nAnswer questions about their health data. Be specific with numbers when available. " +
		"If asked about trends, use the available data. Keep responses concise and friendly."
}

func lastN[T any](records []T, n int) []T {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optional(r *models.BodyRecord, field func(*models.BodyRecord) *float64) string {
	if r == nil {
		return notAvailable
	}
	v := field(r)
	if v == nil || *v == 0 {
		return notAvailable
	}
	return formatNumber(*v)
}
