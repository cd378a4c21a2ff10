// Command report prints the analytics, long-term view and overview of a
// health export as one JSON document.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/healthlens/healthlens/internal/aggregation"
	"github.com/healthlens/healthlens/internal/config"
	"github.com/healthlens/healthlens/internal/loader"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/services"
)

type report struct {
	DataDir   string                    `json:"data_dir"`
	Analytics *services.AnalyticsReport `json:"analytics"`
	Trends    *aggregation.LongTermView `json:"trends"`
	Overview  *aggregation.Overview     `json:"overview"`
}

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	dataDir := flag.String("data-dir", "", "Export directory (overrides config)")
	interval := flag.String("interval", string(aggregation.DefaultInterval), "Long-term interval (3m, 6m, 1y, all)")
	stepGoal := flag.Int("step-goal", 0, "Daily step goal (0 uses config)")
	sleepHours := flag.Float64("sleep-hours", 0, "Recommended nightly sleep in hours (0 uses config)")
	pretty := flag.Bool("pretty", true, "Indent the JSON output")

	flag.Parse()

	cfg := config.LoadOrDefault(*configPath)
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	// stdout carries the report
	cfg.Logging.OutputPath = "stderr"
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		log.Fatalf("Error initializing logger: %v\n", err)
	}
	svc := services.NewDashboardService(logger, loader.New(cfg.Data.Dir), cfg.Analytics)
	ctx := context.Background()

	out := report{DataDir: cfg.Data.Dir}

	out.Analytics, err = svc.Analytics(ctx, services.AnalyticsParams{StepGoal: *stepGoal, RecommendedHours: *sleepHours})
	if err != nil {
		log.Fatalf("Error computing analytics: %v\n", err)
	}
	out.Trends, err = svc.Trends(ctx, *interval)
	if err != nil {
		log.Fatalf("Error building trends: %v\n", err)
	}
	out.Overview, err = svc.Overview(ctx)
	if err != nil {
		log.Fatalf("Error building overview: %v\n", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Error writing report: %v\n", err)
	}
}
