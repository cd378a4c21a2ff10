package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "default config should be valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid http port",
			mutate:  func(c *Config) { c.Server.HTTPPort = 0 },
			wantErr: true,
		},
		{
			name:    "negative shutdown timeout",
			mutate:  func(c *Config) { c.Server.ShutdownTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "missing data dir",
			mutate:  func(c *Config) { c.Data.Dir = "" },
			wantErr: true,
		},
		{
			name:    "zero step goal",
			mutate:  func(c *Config) { c.Analytics.StepGoal = 0 },
			wantErr: true,
		},
		{
			name:    "sleep target over a day",
			mutate:  func(c *Config) { c.Analytics.RecommendedSleepHours = 25 },
			wantErr: true,
		},
		{
			name:    "missing chat url",
			mutate:  func(c *Config) { c.Chat.URL = "" },
			wantErr: true,
		},
		{
			name:    "chat temperature out of range",
			mutate:  func(c *Config) { c.Chat.Temperature = 3 },
			wantErr: true,
		},
		{
			name:    "missing api key is allowed",
			mutate:  func(c *Config) { c.Chat.APIKey = "" },
			wantErr: false,
		},
		{
			name: "invalid logging level",
			mutate: func(c *Config) {
				c.Logging = LoggingConfig{Level: "invalid", Format: "json"}
			},
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.HTTPPort != 3000 {
		t.Errorf("expected HTTPPort 3000, got %d", cfg.Server.HTTPPort)
	}

	if cfg.Analytics.StepGoal != 10000 {
		t.Errorf("expected step goal 10000, got %d", cfg.Analytics.StepGoal)
	}

	if cfg.Analytics.RecommendedSleepHours != 7.5 {
		t.Errorf("expected recommended sleep 7.5, got %v", cfg.Analytics.RecommendedSleepHours)
	}

	if cfg.Chat.Temperature != 0.7 || cfg.Chat.MaxTokens != 500 {
		t.Errorf("unexpected chat defaults: %+v", cfg.Chat)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IsDevelopment() {
		t.Error("default config should not be development mode")
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"

	if !cfg.IsDevelopment() {
		t.Error("config with debug/console should be development mode")
	}

	if addr := cfg.GetServerAddress(); addr != "0.0.0.0:3000" {
		t.Errorf("expected '0.0.0.0:3000', got %s", addr)
	}

	if cfg.Chat.ChatEnabled() {
		t.Error("chat should be disabled without an API key")
	}
	cfg.Chat.APIKey = "sk-test"
	if !cfg.Chat.ChatEnabled() {
		t.Error("chat should be enabled with an API key")
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv(EnvChatAPIKey, "")
	t.Setenv(EnvChatModel, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http_port: 8088
data:
  dir: /var/lib/healthlens
analytics:
  step_goal: 8000
chat:
  timeout: 15s
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.HTTPPort)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, "/var/lib/healthlens", cfg.Data.Dir)
	assert.Equal(t, 8000, cfg.Analytics.StepGoal)
	assert.Equal(t, 7.5, cfg.Analytics.RecommendedSleepHours)
	assert.Equal(t, 15*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, DefaultConfig().Chat.Model, cfg.Chat.Model)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: 8088\n"), 0o644))

	t.Setenv(EnvChatAPIKey, "sk-from-env")
	t.Setenv(EnvChatModel, "some/model")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.Chat.APIKey)
	assert.Equal(t, "some/model", cfg.Chat.Model)
	assert.True(t, cfg.Chat.ChatEnabled())
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analytics:\n  step_goal: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, DefaultConfig(), cfg)
}
