package models

import "time"

// ActivityRecord is one day of step, distance and calorie totals.
type ActivityRecord struct {
	Date        string  `json:"date"`         // YYYY-MM-DD
	Steps       int     `json:"steps"`        // step count
	Distance    float64 `json:"distance"`     // meters
	RunDistance float64 `json:"run_distance"` // meters
	Calories    float64 `json:"calories"`     // kcal
}

// SleepRecord is one tracked night. Stage durations are minutes.
type SleepRecord struct {
	Date             string `json:"date"`
	DeepSleepTime    int    `json:"deep_sleep_time"`
	ShallowSleepTime int    `json:"shallow_sleep_time"`
	REMTime          int    `json:"rem_time"`
	WakeTime         int    `json:"wake_time"`
	Start            string `json:"start"` // sleep onset, contains HH:MM
	Stop             string `json:"stop"`  // wake instant, contains HH:MM
	Naps             string `json:"naps,omitempty"`
}

// TotalMinutes returns deep + light + REM minutes.
func (r SleepRecord) TotalMinutes() int {
	return r.DeepSleepTime + r.ShallowSleepTime + r.REMTime
}

// BodyRecord is a scale measurement. Composition fields are nil when the scale
// did not report them.
type BodyRecord struct {
	Time          string   `json:"time"` // YYYY-MM-DD[ HH:MM:SS]
	Weight        float64  `json:"weight"`
	Height        float64  `json:"height"`
	BMI           float64  `json:"bmi"`
	FatRate       *float64 `json:"fat_rate"`
	BodyWaterRate *float64 `json:"body_water_rate"`
	BoneMass      *float64 `json:"bone_mass"`
	Metabolism    *float64 `json:"metabolism"`
	MuscleRate    *float64 `json:"muscle_rate"`
	VisceralFat   *float64 `json:"visceral_fat"`
}

// HeartRateSample is a single automatic heart-rate reading.
type HeartRateSample struct {
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	HeartRate int       `json:"heart_rate"`
	Timestamp time.Time `json:"timestamp"`
}

// SportRecord is a recorded workout.
type SportRecord struct {
	Type      int     `json:"type"`
	StartTime string  `json:"start_time"`
	SportTime int     `json:"sport_time"` // seconds
	MaxPace   float64 `json:"max_pace"`
	MinPace   float64 `json:"min_pace"`
	Distance  float64 `json:"distance"` // meters
	AvgPace   float64 `json:"avg_pace"`
	Calories  float64 `json:"calories"`
}

// UserProfile is the exported account profile.
type UserProfile struct {
	UserID   string  `json:"user_id"`
	Gender   int     `json:"gender"` // 1 = male, 0 = female
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	NickName string  `json:"nick_name"`
	Avatar   string  `json:"avatar"`
	Birthday string  `json:"birthday"`
}

// Snapshot is every record series loaded at one point in time.
type Snapshot struct {
	Activity  []ActivityRecord  `json:"activity"`
	Sleep     []SleepRecord     `json:"sleep"`
	Body      []BodyRecord      `json:"body"`
	HeartRate []HeartRateSample `json:"heart_rate"`
	Sport     []SportRecord     `json:"sport"`
	User      *UserProfile      `json:"user"`
}

// LatestData summarizes the newest record of each series and the series sizes.
type LatestData struct {
	User           *UserProfile    `json:"user"`
	LatestActivity *ActivityRecord `json:"latest_activity"`
	LatestSleep    *SleepRecord    `json:"latest_sleep"`
	LatestBody     *BodyRecord     `json:"latest_body"`
	ActivityCount  int             `json:"activity_count"`
	SleepCount     int             `json:"sleep_count"`
	HeartRateCount int             `json:"heart_rate_count"`
	SportCount     int             `json:"sport_count"`
	BodyCount      int             `json:"body_count"`
}

// Latest builds a LatestData view of the snapshot.
func (s *Snapshot) Latest() LatestData {
	out := LatestData{
		User:           s.User,
		ActivityCount:  len(s.Activity),
		SleepCount:     len(s.Sleep),
		HeartRateCount: len(s.HeartRate),
		SportCount:     len(s.Sport),
		BodyCount:      len(s.Body),
	}
	if n := len(s.Activity); n > 0 {
		a := s.Activity[n-1]
		out.LatestActivity = &a
	}
	if n := len(s.Sleep); n > 0 {
		sl := s.Sleep[n-1]
		out.LatestSleep = &sl
	}
	if n := len(s.Body); n > 0 {
		b := s.Body[n-1]
		out.LatestBody = &b
	}
	return out
}
