// Package chat talks to an OpenAI-compatible chat-completions endpoint and
// builds the health summary the assistant answers from.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/healthlens/healthlens/internal/config"
	"github.com/healthlens/healthlens/internal/logging"
)

// NoResponse is returned when the completion carries no message content.
const NoResponse = "No response generated"

// maxErrorBody caps how much of a failed upstream response is kept.
const maxErrorBody = 4096

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("chat API key not configured")

// UpstreamError is a non-2xx reply from the completion endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("chat endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the chat-completions request body.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// CompletionResponse is the subset of the chat-completions reply we read.
type CompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Client sends completions to the configured endpoint.
type Client struct {
	cfg        config.ChatConfig
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a new chat client.
func NewClient(cfg config.ChatConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "chat_client"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.cfg.ChatEnabled()
}

// Complete sends a system prompt and a user message and returns the reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	reqBody, err := json.Marshal(CompletionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		httpReq.Header.Set("X-Title", c.cfg.Title)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Chat completion failed",
			"status", resp.StatusCode,
			"body", string(body))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Chat completion received",
		"model", c.cfg.Model,
		"choices", len(completion.Choices),
		"latency_ms", time.Since(start).Milliseconds())

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return NoResponse, nil
	}
	return completion.Choices[0].Message.Content, nil
}
