package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Chat credentials are read from these variables (or a .env file) so existing
// OpenRouter setups work without a config file.
const (
	EnvChatAPIKey = "OPENROUTER_API_KEY"
	EnvChatModel  = "MODEL_ID"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")               // Current directory
		v.AddConfigPath("./configs")       // Project configs directory
		v.AddConfigPath("./config")        // Alternative config directory
		v.AddConfigPath("/etc/healthlens") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("HEALTHLENS")
	v.AutomaticEnv()
	_ = v.BindEnv("chat.api_key", "HEALTHLENS_CHAT_API_KEY", EnvChatAPIKey)
	_ = v.BindEnv("chat.model", "HEALTHLENS_CHAT_MODEL", EnvChatModel)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Server defaults
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout.String())
	v.SetDefault("server.allow_origins", d.Server.AllowOrigins)

	// Data defaults
	v.SetDefault("data.dir", d.Data.Dir)

	// Analytics defaults
	v.SetDefault("analytics.step_goal", d.Analytics.StepGoal)
	v.SetDefault("analytics.recommended_sleep_hours", d.Analytics.RecommendedSleepHours)

	// Chat defaults
	v.SetDefault("chat.url", d.Chat.URL)
	v.SetDefault("chat.model", d.Chat.Model)
	v.SetDefault("chat.temperature", d.Chat.Temperature)
	v.SetDefault("chat.max_tokens", d.Chat.MaxTokens)
	v.SetDefault("chat.timeout", d.Chat.Timeout.String())
	v.SetDefault("chat.referer", d.Chat.Referer)
	v.SetDefault("chat.title", d.Chat.Title)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        3000,
			ShutdownTimeout: 10 * time.Second,
			AllowOrigins:    "*",
		},
		Data: DataConfig{
			Dir: "./personal_data",
		},
		Analytics: AnalyticsConfig{
			StepGoal:              10000,
			RecommendedSleepHours: 7.5,
		},
		Chat: ChatConfig{
			URL:         "https://openrouter.ai/api/v1/chat/completions",
			Model:       "xiaomi/mimo-v2-flash:free",
			Temperature: 0.7,
			MaxTokens:   500,
			Timeout:     60 * time.Second,
			Referer:     "https://healthlens.local",
			Title:       "HealthLens",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
