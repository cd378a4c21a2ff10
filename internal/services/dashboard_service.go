package services

import (
	"context"
	"fmt"
	"time"

	"github.com/healthlens/healthlens/internal/aggregation"
	"github.com/healthlens/healthlens/internal/analytics"
	"github.com/healthlens/healthlens/internal/config"
	"github.com/healthlens/healthlens/internal/downsampling"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/models"
)

// Source provides health records. *loader.Loader satisfies it.
type Source interface {
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
	Load(ctx context.Context, kind models.DataKind) (interface{}, error)
}

// AnalyticsKind names one analytics summary.
type AnalyticsKind string

const (
	AnalyticsActivity AnalyticsKind = "activity"
	AnalyticsSleep    AnalyticsKind = "sleep"
	AnalyticsBody     AnalyticsKind = "body"
	AnalyticsStress   AnalyticsKind = "stress"
)

// ParseAnalyticsKind validates a raw analytics kind.
func ParseAnalyticsKind(s string) (AnalyticsKind, bool) {
	switch k := AnalyticsKind(s); k {
	case AnalyticsActivity, AnalyticsSleep, AnalyticsBody, AnalyticsStress:
		return k, true
	}
	return "", false
}

// AnalyticsParams overrides the configured analytics targets for one request.
// Zero values fall back to the configuration.
type AnalyticsParams struct {
	StepGoal         int
	RecommendedHours float64
}

// AnalyticsReport bundles the four domain summaries.
type AnalyticsReport struct {
	Activity analytics.ActivityAnalytics `json:"activity"`
	Sleep    analytics.SleepAnalytics    `json:"sleep"`
	Body     analytics.BodyAnalytics     `json:"body"`
	Stress   analytics.StressAnalytics   `json:"stress"`
}

// DashboardService loads a fresh snapshot per call and derives the dashboard views.
type DashboardService struct {
	logger   *logging.Logger
	source   Source
	defaults config.AnalyticsConfig
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(logger *logging.Logger, source Source, defaults config.AnalyticsConfig) *DashboardService {
	return &DashboardService{
		logger:   logger,
		source:   source,
		defaults: defaults,
		now:      time.Now,
	}
}

// DataOptions shapes a raw heart-rate series for charting. Other kinds ignore it.
type DataOptions struct {
	Downsample downsampling.Mode
	Points     int
}

// Data returns the raw records of one kind.
func (s *DashboardService) Data(ctx context.Context, rawKind string, opts DataOptions) (interface{}, error) {
	kind, ok := models.ParseDataKind(rawKind)
	if !ok {
		return nil, NewServiceErrorWithDetails(CodeInvalidDataType,
			fmt.Sprintf("invalid data type: %s", rawKind),
			map[string]interface{}{"type": rawKind})
	}

	data, err := s.source.Load(ctx, kind)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}

	if samples, ok := data.([]models.HeartRateSample); ok && opts.Downsample != "" && opts.Downsample != downsampling.ModeNone {
		reduced := downsampling.HeartRate(samples, opts.Downsample, opts.Points)
		s.logger.Debug("Heart rate series downsampled",
			"mode", string(opts.Downsample),
			"original", len(samples),
			"returned", len(reduced))
		return reduced, nil
	}
	return data, nil
}

// Snapshot loads every record series.
func (s *DashboardService) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap, err := s.source.LoadSnapshot(ctx)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}
	return snap, nil
}

// Analytics computes all four summaries.
func (s *DashboardService) Analytics(ctx context.Context, params AnalyticsParams) (*AnalyticsReport, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	report := s.report(snap, params)
	return &report, nil
}

// AnalyticsFor computes a single summary.
func (s *DashboardService) AnalyticsFor(ctx context.Context, rawKind string, params AnalyticsParams) (interface{}, error) {
	kind, ok := ParseAnalyticsKind(rawKind)
	if !ok {
		return nil, NewServiceErrorWithDetails(CodeInvalidAnalyticsType,
			fmt.Sprintf("invalid analytics type: %s", rawKind),
			map[string]interface{}{"type": rawKind})
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case AnalyticsActivity:
		return analytics.CalculateActivity(snap.Activity, s.activityOptions(params)), nil
	case AnalyticsSleep:
		return analytics.CalculateSleep(snap.Sleep, s.sleepOptions(params)), nil
	case AnalyticsBody:
		return analytics.CalculateBody(snap.Body, analytics.BodyOptions{AsOf: s.now()}), nil
	default:
		return analytics.CalculateStress(snap.HeartRate), nil
	}
}

// Trends builds the long-term view for an interval ("" means the default).
func (s *DashboardService) Trends(ctx context.Context, rawInterval string) (*aggregation.LongTermView, error) {
	interval, err := aggregation.ParseInterval(rawInterval)
	if err != nil {
		return nil, NewServiceErrorWithDetails(CodeInvalidInterval, err.Error(),
			map[string]interface{}{"interval": rawInterval})
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	view := aggregation.BuildLongTerm(s.input(snap, AnalyticsParams{}), aggregation.Options{
		Interval: interval,
		AsOf:     s.now(),
	})

	s.logger.Debug("Long-term view built",
		"interval", string(interval),
		"quarters", len(view.Quarterly),
		"years", len(view.Yearly),
		"latency_ms", time.Since(startTime).Milliseconds())

	return &view, nil
}

// Overview builds the dashboard header stats.
func (s *DashboardService) Overview(ctx context.Context) (*aggregation.Overview, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	overview := aggregation.BuildOverview(aggregation.Input{
		Activity: snap.Activity,
		Sleep:    snap.Sleep,
		Body:     snap.Body,
		Sport:    snap.Sport,
	}, s.now())
	return &overview, nil
}

func (s *DashboardService) report(snap *models.Snapshot, params AnalyticsParams) AnalyticsReport {
	return AnalyticsReport{
		Activity: analytics.CalculateActivity(snap.Activity, s.activityOptions(params)),
		Sleep:    analytics.CalculateSleep(snap.Sleep, s.sleepOptions(params)),
		Body:     analytics.CalculateBody(snap.Body, analytics.BodyOptions{AsOf: s.now()}),
		Stress:   analytics.CalculateStress(snap.HeartRate),
	}
}

func (s *DashboardService) input(snap *models.Snapshot, params AnalyticsParams) aggregation.Input {
	report := s.report(snap, params)
	return aggregation.Input{
		Activity:      snap.Activity,
		Sleep:         snap.Sleep,
		Body:          snap.Body,
		Sport:         snap.Sport,
		ActivityStats: report.Activity,
		SleepStats:    report.Sleep,
		BodyStats:     report.Body,
		StressStats:   report.Stress,
	}
}

func (s *DashboardService) activityOptions(params AnalyticsParams) analytics.ActivityOptions {
	goal := params.StepGoal
	if goal <= 0 {
		goal = s.defaults.StepGoal
	}
	return analytics.ActivityOptions{StepGoal: goal}
}

func (s *DashboardService) sleepOptions(params AnalyticsParams) analytics.SleepOptions {
	hours := params.RecommendedHours
	if hours <= 0 {
		hours = s.defaults.RecommendedSleepHours
	}
	return analytics.SleepOptions{RecommendedHours: hours}
}

func (s *DashboardService) loadFailed(ctx context.Context, err error) error {
	s.logger.WithContext(ctx).Error("Failed to load health data", "error", err)
	return NewServiceError(CodeLoadFailed, err.Error())
}
