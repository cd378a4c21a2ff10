// Package loader reads a fitness-tracker export directory into typed record
// slices. Each record kind lives in its own folder holding one CSV file.
package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/healthlens/healthlens/internal/analytics"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/models"
	"github.com/healthlens/healthlens/internal/utils"
	"golang.org/x/sync/errgroup"
)

// Loader reads records from an export directory. It holds no state between
// calls, so every call sees the files as they are on disk.
type Loader struct {
	dataDir string
}

// New creates a Loader rooted at dataDir
func New(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// DataDir returns the export root
func (l *Loader) DataDir() string {
	return l.dataDir
}

// rows loads every row of the CSV in folder; a missing folder or file yields nil.
func (l *Loader) rows(ctx context.Context, folder string) ([]row, error) {
	path, err := findCSV(filepath.Join(l.dataDir, folder))
	if err != nil {
		return nil, err
	}
	if path == "" {
		logging.FromContext(ctx).Debug("No export file", "folder", folder)
		return nil, nil
	}
	return readRows(ctx, path)
}

// LoadActivity loads daily activity, keeping days with steps or calories
func (l *Loader) LoadActivity(ctx context.Context) ([]models.ActivityRecord, error) {
	rows, err := l.rows(ctx, utils.FolderActivity)
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}

	out := make([]models.ActivityRecord, 0, len(rows))
	for _, r := range rows {
		rec := models.ActivityRecord{
			Date:        r.get("date"),
			Steps:       utils.ToInt(r.get("steps")),
			Distance:    utils.MustToFloat64(r.get("distance")),
			RunDistance: utils.MustToFloat64(r.get("runDistance")),
			Calories:    utils.MustToFloat64(r.get("calories")),
		}
		if rec.Steps > 0 || rec.Calories > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// LoadSleep loads nightly sleep, keeping nights with deep or light sleep
func (l *Loader) LoadSleep(ctx context.Context) ([]models.SleepRecord, error) {
	rows, err := l.rows(ctx, utils.FolderSleep)
	if err != nil {
		return nil, fmt.Errorf("sleep: %w", err)
	}

	out := make([]models.SleepRecord, 0, len(rows))
	for _, r := range rows {
		rec := models.SleepRecord{
			Date:             r.get("date"),
			DeepSleepTime:    utils.ToInt(r.get("deepSleepTime")),
			ShallowSleepTime: utils.ToInt(r.get("shallowSleepTime")),
			REMTime:          utils.ToInt(r.get("REMTime")),
			WakeTime:         utils.ToInt(r.get("wakeTime")),
			Start:            r.get("start"),
			Stop:             r.get("stop"),
			Naps:             r.get("naps"),
		}
		if rec.DeepSleepTime > 0 || rec.ShallowSleepTime > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// LoadBody loads scale measurements with a positive weight
func (l *Loader) LoadBody(ctx context.Context) ([]models.BodyRecord, error) {
	rows, err := l.rows(ctx, utils.FolderBody)
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}

	out := make([]models.BodyRecord, 0, len(rows))
	for _, r := range rows {
		rec := models.BodyRecord{
			Time:          r.get("time"),
			Weight:        utils.MustToFloat64(r.get("weight")),
			Height:        utils.MustToFloat64(r.get("height")),
			BMI:           utils.MustToFloat64(r.get("bmi")),
			FatRate:       utils.ToFloat64Ptr(r.get("fatRate")),
			BodyWaterRate: utils.ToFloat64Ptr(r.get("bodyWaterRate")),
			BoneMass:      utils.ToFloat64Ptr(r.get("boneMass")),
			Metabolism:    utils.ToFloat64Ptr(r.get("metabolism")),
			MuscleRate:    utils.ToFloat64Ptr(r.get("muscleRate")),
			VisceralFat:   utils.ToFloat64Ptr(r.get("visceralFat")),
		}
		if rec.Weight > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// LoadHeartRate loads automatic heart-rate samples. Samples without a
// positive reading or a parseable date and time are skipped.
func (l *Loader) LoadHeartRate(ctx context.Context) ([]models.HeartRateSample, error) {
	rows, err := l.rows(ctx, utils.FolderHeartRate)
	if err != nil {
		return nil, fmt.Errorf("heart rate: %w", err)
	}

	out := make([]models.HeartRateSample, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		hr := utils.ToInt(r.get("heartRate"))
		date, clock := r.get("date"), r.get("time")
		ts, ok := analytics.ParseTimestamp(date + " " + clock)
		if hr <= 0 || !ok {
			skipped++
			continue
		}
		out = append(out, models.HeartRateSample{Date: date, Time: clock, HeartRate: hr, Timestamp: ts})
	}
	if skipped > 0 {
		logging.WarnCtx(ctx, "Skipped heart-rate rows", "count", skipped)
	}
	return out, nil
}

// LoadSport loads workouts. Unit-suffixed export columns such as
// "sportTime(s)" take precedence over bare names.
func (l *Loader) LoadSport(ctx context.Context) ([]models.SportRecord, error) {
	rows, err := l.rows(ctx, utils.FolderSport)
	if err != nil {
		return nil, fmt.Errorf("sport: %w", err)
	}

	out := make([]models.SportRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.SportRecord{
			Type:      utils.ToInt(r.get("type")),
			StartTime: r.get("startTime"),
			SportTime: int(utils.FirstNumeric(r.get("sportTime(s)"), r.get("sportTime"))),
			MaxPace:   utils.FirstNumeric(r.get("maxPace(/meter)"), r.get("maxPace")),
			MinPace:   utils.FirstNumeric(r.get("minPace(/meter)"), r.get("minPace")),
			Distance:  utils.FirstNumeric(r.get("distance(m)"), r.get("distance")),
			AvgPace:   utils.FirstNumeric(r.get("avgPace(/meter)"), r.get("avgPace")),
			Calories:  utils.FirstNumeric(r.get("calories(kcal)"), r.get("calories")),
		})
	}
	return out, nil
}

// LoadUser loads the first profile row, or nil when none exists
func (l *Loader) LoadUser(ctx context.Context) (*models.UserProfile, error) {
	rows, err := l.rows(ctx, utils.FolderUser)
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	r := rows[0]
	return &models.UserProfile{
		UserID:   r.get("userId"),
		Gender:   utils.ToInt(r.get("gender")),
		Height:   utils.MustToFloat64(r.get("height")),
		Weight:   utils.MustToFloat64(r.get("weight")),
		NickName: r.get("nickName"),
		Avatar:   r.get("avatar"),
		Birthday: r.get("birthday"),
	}, nil
}

// LoadSnapshot loads every record kind concurrently
func (l *Loader) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { snap.Activity, err = l.LoadActivity(gctx); return })
	g.Go(func() (err error) { snap.Sleep, err = l.LoadSleep(gctx); return })
	g.Go(func() (err error) { snap.Body, err = l.LoadBody(gctx); return })
	g.Go(func() (err error) { snap.HeartRate, err = l.LoadHeartRate(gctx); return })
	g.Go(func() (err error) { snap.Sport, err = l.LoadSport(gctx); return })
	g.Go(func() (err error) { snap.User, err = l.LoadUser(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load snapshot from %s: %w", l.dataDir, err)
	}
	return &snap, nil
}

// Load returns the records of one kind, ready for JSON encoding
func (l *Loader) Load(ctx context.Context, kind models.DataKind) (interface{}, error) {
	switch kind {
	case models.DataKindActivity:
		return l.LoadActivity(ctx)
	case models.DataKindSleep:
		return l.LoadSleep(ctx)
	case models.DataKindHeartRate:
		return l.LoadHeartRate(ctx)
	case models.DataKindSport:
		return l.LoadSport(ctx)
	case models.DataKindBody:
		return l.LoadBody(ctx)
	case models.DataKindUser:
		return l.LoadUser(ctx)
	case models.DataKindLatest:
		snap, err := l.LoadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		return snap.Latest(), nil
	default:
		return nil, fmt.Errorf("unknown data kind %q", kind)
	}
}
