package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthlens/healthlens/internal/models"
)

func float(v float64) *float64 { return &v }

func TestBuildHealthContext(t *testing.T) {
	snap := &models.Snapshot{
		User: &models.UserProfile{NickName: "Sam", Height: 178},
		Activity: []models.ActivityRecord{
			{Date: "2024-01-01", Steps: 8000, Calories: 300},
			{Date: "2024-01-02", Steps: 12500, Calories: 500},
			{Date: "2024-01-03", Steps: 12500, Calories: 400},
		},
		Sleep: []models.SleepRecord{
			{Date: "2024-01-01", DeepSleepTime: 90, ShallowSleepTime: 240, REMTime: 90},
			{Date: "2024-01-02", DeepSleepTime: 100, ShallowSleepTime: 260, REMTime: 90},
		},
		Body: []models.BodyRecord{
			{Time: "2024-01-01 08:00:00", Weight: 81, BMI: 25.6},
			{Time: "2024-01-03 08:00:00", Weight: 80.5, BMI: 25.43, FatRate: float(21.4), Metabolism: float(1720)},
		},
	}

	text := BuildHealthContext(snap)

	for _, want := range []string{
		"- Name: Sam",
		"- Height: 178 cm",
		"- Current Weight: 80.5 kg",
		"- BMI: 25.4",
		"- Average Steps: 11,000 per day",
		"- Average Calories Burned: 400 kcal per day",
		"- Best Day: 2024-01-02 with 12,500 steps",
		"- Average Total Sleep: 435 minutes per night",
		"- Average in hours: 7.3 hours",
		"- Best Sleep Night: 2024-01-02 with 450 minutes",
		"- Body Fat: 21.4%",
		"- Muscle Rate: N/A%",
		"- Metabolism: 1720 kcal",
	} {
		assert.Contains(t, text, want)
	}
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestBuildHealthContext_OnlyRecentEntries(t *testing.T) {
	activity := make([]models.ActivityRecord, 0, 40)
	for i := 0; i < 40; i++ {
		steps := 100
		if i < 10 {
			steps = 900
		}
		activity = append(activity, models.ActivityRecord{Date: "2024-02-01", Steps: steps})
	}

	text := BuildHealthContext(&models.Snapshot{Activity: activity})
	assert.Contains(t, text, "- Average Steps: 100 per day")
	assert.Contains(t, text, "- Total Records: 40")
}

func TestBuildHealthContext_Empty(t *testing.T) {
	text := BuildHealthContext(nil)

	assert.Contains(t, text, "- Name: User")
	assert.Contains(t, text, "- Height: Unknown cm")
	assert.Contains(t, text, "- BMI: Unknown")
	assert.Contains(t, text, "- Average Steps: 0 per day")
	assert.Contains(t, text, "- Best Day: N/A with 0 steps")
	assert.Contains(t, text, "- Weight: N/A kg")
	assert.Contains(t, text, "- Body Fat: N/A%")
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt("CONTEXT")
	assert.Contains(t, prompt, "health assistant")
	assert.Contains(t, prompt, "\n\nCONTEXT\n\n")
}
