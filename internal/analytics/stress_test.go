package analytics

import (
	"testing"
	"time"

	"github.com/healthlens/healthlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(ts time.Time, hr int) models.HeartRateSample {
	return models.HeartRateSample{
		Date:      ts.Format("2006-01-02"),
		Time:      ts.Format("15:04"),
		HeartRate: hr,
		Timestamp: ts,
	}
}

func TestClassifyStress(t *testing.T) {
	assert.Equal(t, StressLow, ClassifyStress(0))
	assert.Equal(t, StressLow, ClassifyStress(24))
	assert.Equal(t, StressModerate, ClassifyStress(25))
	assert.Equal(t, StressHigh, ClassifyStress(50))
	assert.Equal(t, StressVeryHigh, ClassifyStress(75))
}

func TestClassifyHRV(t *testing.T) {
	assert.Equal(t, HRVPoor, ClassifyHRV(19))
	assert.Equal(t, HRVBelowAverage, ClassifyHRV(20))
	assert.Equal(t, HRVAverage, ClassifyHRV(59))
	assert.Equal(t, HRVGood, ClassifyHRV(60))
	assert.Equal(t, HRVExcellent, ClassifyHRV(100))
}

func TestStressScore(t *testing.T) {
	tests := []struct {
		meanHR   float64
		hrv      float64
		expected int
	}{
		{85, 40, 55},
		{50, 100, 0},
		{120, 0, 100},
		{40, 200, 0},
	}

	for _, tt := range tests {
		if got := StressScore(tt.meanHR, tt.hrv); got != tt.expected {
			t.Errorf("StressScore(%v, %v) = %d, expected %d", tt.meanHR, tt.hrv, got, tt.expected)
		}
	}
}

func TestEstimateHRV(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("consecutive pair", func(t *testing.T) {
		samples := []models.HeartRateSample{sampleAt(base, 60), sampleAt(base.Add(time.Minute), 75)}
		assert.InDelta(t, 200, EstimateHRV(samples), 1e-9)
	})

	t.Run("gap too large", func(t *testing.T) {
		samples := []models.HeartRateSample{
			sampleAt(base, 60),
			sampleAt(base.Add(time.Minute), 75),
			sampleAt(base.Add(10*time.Minute), 60),
		}
		assert.InDelta(t, 200, EstimateHRV(samples), 1e-9)
	})

	t.Run("exactly two minutes apart", func(t *testing.T) {
		samples := []models.HeartRateSample{sampleAt(base, 60), sampleAt(base.Add(MaxConsecutiveGap), 75)}
		assert.InDelta(t, 200, EstimateHRV(samples), 1e-9)
	})

	t.Run("duplicate timestamps", func(t *testing.T) {
		samples := []models.HeartRateSample{sampleAt(base, 60), sampleAt(base, 75)}
		assert.Equal(t, 0.0, EstimateHRV(samples))
	})
}

func TestCalculateStress_Zones(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	samples := make([]models.HeartRateSample, 10)
	for i := range samples {
		samples[i] = sampleAt(base.Add(time.Duration(i)*time.Minute), 70)
	}

	result := CalculateStress(samples)

	assert.Equal(t, ZoneDistribution{Normal: 100}, result.ZoneDistribution)
	assert.Equal(t, 10, result.TotalReadings)
	assert.Equal(t, 0, result.EstimatedHRV)
	assert.Equal(t, HRVPoor, result.HRVCategory)
	assert.Equal(t, 64, result.AvgStressScore)
	assert.Equal(t, StressHigh, result.StressLevel)
}

func TestCalculateStress_RestingHeartRate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]models.HeartRateSample, 20)
	for i := range samples {
		// One reading per hour keeps every pair outside the HRV gap.
		samples[i] = sampleAt(base.Add(time.Duration(i)*time.Hour), 69-i)
	}

	result := CalculateStress(samples)

	assert.Equal(t, 51, result.AvgRestingHR)
	assert.Equal(t, 50, result.MinRestingHR)
	assert.Equal(t, 51, result.MaxRestingHR)

	single := CalculateStress(samples[:1])
	assert.Equal(t, 69, single.AvgRestingHR, "at least one reading forms the resting set")
	assert.Equal(t, 69, single.MinRestingHR)
	assert.Equal(t, 69, single.MaxRestingHR)
}

func TestCalculateStress_CircadianPattern(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday
	samples := []models.HeartRateSample{
		sampleAt(day.Add(3*time.Hour), 110),
		sampleAt(day.Add(4*time.Hour), 50),
		sampleAt(day.Add(5*time.Hour), 50),
		sampleAt(day.Add(6*time.Hour), 40),
		sampleAt(day.Add(10*time.Hour), 100),
		sampleAt(day.Add(15*time.Hour), 100),
	}

	result := CalculateStress(samples)

	assert.Equal(t, 1, result.HighHREvents)
	assert.Equal(t, 3, result.PeakStressHour)
	assert.Equal(t, 6, result.LowestStressHour)
	require.Len(t, result.AvgHRByHour, 24)
	assert.Equal(t, 110, result.AvgHRByHour[3])
	assert.Equal(t, 0, result.AvgHRByHour[12])

	assert.Equal(t, 63, result.AvgSleepHR)
	assert.Equal(t, 100, result.AvgDaytimeHR)
	assert.Equal(t, 74, result.RecoveryScore)

	assert.Equal(t, "Monday", result.MostStressfulDay)
	assert.Equal(t, "Monday", result.LeastStressfulDay)
	assert.Equal(t, 75, result.AvgHRByDayOfWeek["Monday"])
}

func TestCalculateStress_RecoveryScore(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := []models.HeartRateSample{
		sampleAt(day.Add(2*time.Hour), 60),
		sampleAt(day.Add(12*time.Hour), 80),
	}

	result := CalculateStress(samples)

	assert.Equal(t, 60, result.AvgSleepHR)
	assert.Equal(t, 80, result.AvgDaytimeHR)
	assert.Equal(t, 50, result.RecoveryScore)
}

func TestCalculateStress_DailyAndMonthly(t *testing.T) {
	samples := []models.HeartRateSample{
		sampleAt(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 90),
		sampleAt(time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), 90),
		sampleAt(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), 60),
		sampleAt(time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), 75),
	}

	result := CalculateStress(samples)

	assert.Equal(t, 1, result.DaysWithHighStress)
	assert.Equal(t, DateRange{Start: "2024-01-01", End: "2024-02-01"}, result.DateRange)
	require.Len(t, result.MonthlyAvgHR, 2)
	assert.Equal(t, MonthlyHeartRate{Month: "2024-01", AvgHR: 80, StressScore: 60}, result.MonthlyAvgHR[0])
	assert.Equal(t, MonthlyHeartRate{Month: "2024-02", AvgHR: 75, StressScore: 50}, result.MonthlyAvgHR[1])
}

func TestCalculateStress_UnsortedInput(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	samples := []models.HeartRateSample{
		sampleAt(base.Add(time.Minute), 75),
		sampleAt(base, 60),
	}

	result := CalculateStress(samples)

	assert.Equal(t, 200, result.EstimatedHRV)
	assert.Equal(t, 75, samples[0].HeartRate, "input order is preserved")
}

func TestCalculateStress_EmptyInput(t *testing.T) {
	result := CalculateStress(nil)

	assert.Equal(t, 0, result.TotalReadings)
	assert.Equal(t, StressLow, result.StressLevel)
	assert.Equal(t, HRVAverage, result.HRVCategory)
	assert.Equal(t, 12, result.PeakStressHour)
	assert.Equal(t, 4, result.LowestStressHour)
	assert.Equal(t, NeutralTrend(), result.RestingHRTrend)
	assert.Equal(t, ZoneDistribution{}, result.ZoneDistribution)
	assert.NotNil(t, result.AvgHRByHour)
	assert.NotNil(t, result.MonthlyAvgHR)
}

func TestCalculateStress_Idempotent(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	samples := []models.HeartRateSample{
		sampleAt(base.Add(3*time.Minute), 88),
		sampleAt(base, 64),
		sampleAt(base.Add(time.Minute), 70),
		sampleAt(base.Add(26*time.Hour), 110),
		sampleAt(base.Add(2*time.Minute), 66),
	}
	snapshot := make([]models.HeartRateSample, len(samples))
	copy(snapshot, samples)

	first := CalculateStress(samples)
	second := CalculateStress(samples)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, samples, "input must not be mutated")
}
