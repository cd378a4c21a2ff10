package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`             // Bind address for server (e.g., 0.0.0.0 for all interfaces)
	HTTPPort        int           `mapstructure:"http_port"`        // HTTP server port
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Grace period for in-flight requests
	AllowOrigins    string        `mapstructure:"allow_origins"`    // CORS allowed origins, comma separated
}

// DataConfig points at the exported tracker data
type DataConfig struct {
	Dir string `mapstructure:"dir"` // Directory holding ACTIVITY/, SLEEP/, BODY/, ... folders
}

// AnalyticsConfig holds the user goals the analytics are measured against
type AnalyticsConfig struct {
	StepGoal              int     `mapstructure:"step_goal"`
	RecommendedSleepHours float64 `mapstructure:"recommended_sleep_hours"`
}

// ChatConfig represents the chat-completion upstream
type ChatConfig struct {
	URL         string        `mapstructure:"url"`
	APIKey      string        `mapstructure:"api_key"` // Empty disables the chat endpoint
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Referer     string        `mapstructure:"referer"`
	Title       string        `mapstructure:"title"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data config: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("analytics config: %w", err)
	}

	if err := c.Chat.Validate(); err != nil {
		return fmt.Errorf("chat config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout cannot be negative")
	}

	return nil
}

// Validate validates data configuration
func (c *DataConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	return nil
}

// Validate validates analytics configuration
func (c *AnalyticsConfig) Validate() error {
	if c.StepGoal <= 0 {
		return fmt.Errorf("analytics.step_goal must be positive")
	}

	if c.RecommendedSleepHours <= 0 || c.RecommendedSleepHours > 24 {
		return fmt.Errorf("analytics.recommended_sleep_hours must be in (0, 24]")
	}

	return nil
}

// Validate validates chat configuration. The API key is optional.
func (c *ChatConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("chat.url is required")
	}

	if c.Model == "" {
		return fmt.Errorf("chat.model is required")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("chat.temperature must be between 0 and 2")
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("chat.max_tokens must be positive")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("chat.timeout must be positive")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
