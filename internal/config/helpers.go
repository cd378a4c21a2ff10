package config

import (
	"net"
	"strconv"
)

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.HTTPPort))
}

// ChatEnabled reports whether an API key is configured for the chat upstream
func (c *ChatConfig) ChatEnabled() bool {
	return c.APIKey != ""
}
