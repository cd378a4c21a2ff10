package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/healthlens/healthlens/internal/config"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/router"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Dashboard service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	if _, err := os.Stat(cfg.Data.Dir); err != nil {
		logger.Warn("Data directory not readable, endpoints will return empty series",
			"dir", cfg.Data.Dir, "error", err)
	} else {
		logger.Info("Reading health export", "dir", cfg.Data.Dir)
	}

	if cfg.Chat.ChatEnabled() {
		logger.Info("Chat assistant enabled", "model", cfg.Chat.Model)
	} else {
		logger.Warn("Chat assistant DISABLED - no API key configured")
	}

	// Initialize router
	app := router.New(logger, *cfg)

	// Start server in goroutine
	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
