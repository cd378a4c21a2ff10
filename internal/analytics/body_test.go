package analytics

import (
	"testing"
	"time"

	"github.com/healthlens/healthlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestBmiCategory(t *testing.T) {
	tests := []struct {
		bmi      float64
		expected string
	}{
		{17.9, "Underweight"},
		{18.5, "Normal"},
		{24.9, "Normal"},
		{29.9, "Overweight"},
		{34.9, "Obese Class I"},
		{39.9, "Obese Class II"},
		{40.0, "Obese Class III"},
	}

	for _, tt := range tests {
		if got := BmiCategory(tt.bmi); got != tt.expected {
			t.Errorf("BmiCategory(%v) = %q, expected %q", tt.bmi, got, tt.expected)
		}
	}
}

func TestCalculateBody(t *testing.T) {
	// Deliberately out of order.
	records := []models.BodyRecord{
		{Time: "2024-03-15 08:00:00", Weight: 79, BMI: 25.8},
		{Time: "2024-01-01 08:00:00", Weight: 85, BMI: 27.8},
		{Time: "2024-03-01 08:00:00", Weight: 80, BMI: 26.1, FatRate: ptr(22.5), MuscleRate: ptr(0), Metabolism: ptr(1650)},
	}
	asOf := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	result := CalculateBody(records, BodyOptions{AsOf: asOf})

	assert.Equal(t, 3, result.TotalMeasurements)
	assert.Equal(t, DateRange{Start: "2024-01-01", End: "2024-03-15"}, result.DateRange)
	assert.Equal(t, 85.0, result.StartWeight)
	assert.Equal(t, 79.0, result.CurrentWeight)
	assert.InDelta(t, -6.0, result.WeightChange, 1e-9)
	assert.InDelta(t, -7.1, result.WeightChangePercent, 1e-9)
	assert.InDelta(t, 81.3, result.AvgWeight, 1e-9)
	assert.InDelta(t, 6.0, result.WeightRange, 1e-9)
	assert.Equal(t, 79.0, result.MinWeight)
	assert.Equal(t, 85.0, result.MaxWeight)
	assert.InDelta(t, -0.5, result.WeightChangePerWeek, 1e-9)

	assert.Equal(t, 25.8, result.CurrentBmi)
	assert.Equal(t, "Overweight", result.BmiCategory)
	assert.Equal(t, TrendDown, result.Trend30d.Direction)

	require.NotNil(t, result.Composition)
	require.NotNil(t, result.Composition.FatRate)
	assert.Equal(t, 22.5, *result.Composition.FatRate)
	assert.Nil(t, result.Composition.MuscleRate, "zero readings are reported as missing")
	require.NotNil(t, result.Composition.Metabolism)
	assert.Equal(t, 1650.0, *result.Composition.Metabolism)
	assert.Nil(t, result.Composition.VisceralFat)

	require.Len(t, result.MonthlyAverages, 2)
	assert.Equal(t, MonthlyBody{Month: "2024-01", AvgWeight: 85, AvgBmi: 27.8}, result.MonthlyAverages[0])
	assert.Equal(t, "2024-03", result.MonthlyAverages[1].Month)
	assert.InDelta(t, 79.5, result.MonthlyAverages[1].AvgWeight, 1e-9)
}

func TestCalculateBody_RateWindow(t *testing.T) {
	records := []models.BodyRecord{
		{Time: "2024-01-01", Weight: 90},
		{Time: "2024-01-29", Weight: 86},
	}

	unbounded := CalculateBody(records, BodyOptions{})
	assert.InDelta(t, -1.0, unbounded.WeightChangePerWeek, 1e-9)

	stale := CalculateBody(records, BodyOptions{AsOf: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, 0.0, stale.WeightChangePerWeek, "no measurements inside the window")
}

func TestCalculateBody_SkipsInvalidRecords(t *testing.T) {
	records := []models.BodyRecord{
		{Time: "2024-01-01 08:00:00", Weight: 0, BMI: 22},
		{Time: "not a time", Weight: 70},
		{Time: "2024-01-02 08:00:00", Weight: 72, BMI: 23.5},
	}

	result := CalculateBody(records, BodyOptions{})

	assert.Equal(t, 1, result.TotalMeasurements)
	assert.Equal(t, 72.0, result.CurrentWeight)
	assert.Equal(t, 0.0, result.WeightChange)
	assert.Nil(t, result.Composition)
}

func TestCalculateBody_OffsetTimestamps(t *testing.T) {
	records := []models.BodyRecord{
		{Time: "2024-03-15 08:00:00+0000", Weight: 79, BMI: 25.8},
		{Time: "2024-03-01 08:00:00+0000", Weight: 80, BMI: 26.1},
	}

	result := CalculateBody(records, BodyOptions{AsOf: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)})

	assert.Equal(t, 2, result.TotalMeasurements)
	assert.Equal(t, 80.0, result.StartWeight)
	assert.Equal(t, 79.0, result.CurrentWeight)
	assert.Equal(t, DateRange{Start: "2024-03-01", End: "2024-03-15"}, result.DateRange)
	assert.InDelta(t, -0.5, result.WeightChangePerWeek, 1e-9)
	require.Len(t, result.MonthlyAverages, 1)
	assert.Equal(t, "2024-03", result.MonthlyAverages[0].Month)
}

func TestCalculateBody_Idempotent(t *testing.T) {
	// Out of order so the internal sort would show up as a mutation.
	records := []models.BodyRecord{
		{Time: "2024-03-15 08:00:00", Weight: 79, BMI: 25.8},
		{Time: "2024-01-01 08:00:00", Weight: 85, BMI: 27.8, FatRate: ptr(24)},
		{Time: "2024-03-01 08:00:00+0000", Weight: 80, BMI: 26.1},
		{Time: "bad", Weight: 70},
	}
	snapshot := make([]models.BodyRecord, len(records))
	copy(snapshot, records)

	opts := BodyOptions{AsOf: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)}
	first := CalculateBody(records, opts)
	second := CalculateBody(records, opts)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, records, "input must not be mutated")
}

func TestCalculateBody_EmptyInput(t *testing.T) {
	result := CalculateBody(nil, BodyOptions{AsOf: time.Now()})

	assert.Equal(t, 0, result.TotalMeasurements)
	assert.Equal(t, "", result.BmiCategory)
	assert.Equal(t, DateRange{}, result.DateRange)
	assert.Nil(t, result.Composition)
	assert.Equal(t, NeutralTrend(), result.Trend90d)
	assert.NotNil(t, result.MonthlyAverages)
	assert.Empty(t, result.MonthlyAverages)
}
