package downsampling

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthlens/healthlens/internal/models"
)

func sine(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 70 + 15*math.Sin(float64(i)/40)
	}
	return values
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeNone, false},
		{"none", ModeNone, false},
		{"auto", ModeAuto, false},
		{"lttb", ModeLTTB, false},
		{"minmax", ModeMinMax, false},
		{"m4", ModeM4, false},
		{"avg", "", true},
		{"LTTB", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndices_NoReduction(t *testing.T) {
	values := sine(50)

	assert.Len(t, Indices(values, ModeNone, 10), 50)
	assert.Len(t, Indices(values, ModeLTTB, 100), 50)
	assert.Empty(t, Indices(nil, ModeLTTB, 10))
}

func TestIndices_Algorithms(t *testing.T) {
	values := sine(5000)

	for _, mode := range []Mode{ModeLTTB, ModeMinMax, ModeM4, ModeAuto} {
		t.Run(string(mode), func(t *testing.T) {
			idx := Indices(values, mode, 200)

			require.NotEmpty(t, idx)
			assert.LessOrEqual(t, len(idx), 200)
			assert.True(t, sort.IntsAreSorted(idx), "indices must stay in time order")
			for i := 1; i < len(idx); i++ {
				assert.NotEqual(t, idx[i-1], idx[i], "indices must be unique")
			}
			assert.Equal(t, 0, idx[0])
		})
	}
}

func TestLTTB_KeepsEndpoints(t *testing.T) {
	values := sine(1000)
	idx := Indices(values, ModeLTTB, 100)

	require.Len(t, idx, 100)
	assert.Equal(t, 0, idx[0])
	assert.Equal(t, 999, idx[99])
}

func TestMinMax_KeepsPeak(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = 60
	}
	values[437] = 180

	idx := Indices(values, ModeMinMax, 20)
	assert.Contains(t, idx, 437)
}

func TestM4_KeepsBucketEdges(t *testing.T) {
	values := sine(400)
	idx := Indices(values, ModeM4, 8)

	// two buckets of 200 samples
	assert.Contains(t, idx, 0)
	assert.Contains(t, idx, 199)
	assert.Contains(t, idx, 200)
	assert.Contains(t, idx, 399)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, ModeLTTB, detect(sine(2000)))

	flat := make([]float64, 100)
	for i := range flat {
		flat[i] = 65
	}
	assert.Equal(t, ModeLTTB, detect(flat))

	spiky := make([]float64, 100)
	for i := range spiky {
		if i%2 == 0 {
			spiky[i] = 60
		} else {
			spiky[i] = 120
		}
	}
	assert.Equal(t, ModeMinMax, detect(spiky))
}

func TestHeartRate(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]models.HeartRateSample, 1440)
	for i := range samples {
		ts := start.Add(time.Duration(i) * time.Minute)
		samples[i] = models.HeartRateSample{
			Date:      ts.Format("2006-01-02"),
			Time:      ts.Format("15:04"),
			HeartRate: 60 + i%30,
			Timestamp: ts,
		}
	}

	reduced := HeartRate(samples, ModeLTTB, 120)
	require.Len(t, reduced, 120)
	assert.Equal(t, samples[0], reduced[0])
	assert.Equal(t, samples[1439], reduced[119])
	for i := 1; i < len(reduced); i++ {
		assert.True(t, reduced[i].Timestamp.After(reduced[i-1].Timestamp))
	}

	same := HeartRate(samples[:10], ModeLTTB, 120)
	assert.Len(t, same, 10)
}
