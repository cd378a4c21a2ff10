package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/healthlens/healthlens/internal/chat"
	"github.com/healthlens/healthlens/internal/logging"
)

// Completer answers a user message given a system prompt. *chat.Client satisfies it.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ChatService answers questions about the user's health data.
type ChatService struct {
	logger    *logging.Logger
	source    Source
	completer Completer
}

// NewChatService creates a new ChatService. A nil completer disables chat.
func NewChatService(logger *logging.Logger, source Source, completer Completer) *ChatService {
	return &ChatService{
		logger:    logger,
		source:    source,
		completer: completer,
	}
}

// Reply builds the health context from a fresh snapshot and asks the assistant.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", NewServiceError(CodeMessageRequired, "Message is required")
	}
	if s.completer == nil || !s.completer.Enabled() {
		return "", NewServiceError(CodeChatNotConfigured, "Chat API key not configured")
	}

	snap, err := s.source.LoadSnapshot(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error("Failed to load health data for chat", "error", err)
		return "", NewServiceError(CodeLoadFailed, err.Error())
	}

	startTime := time.Now()
	reply, err := s.completer.Complete(ctx, chat.SystemPrompt(chat.BuildHealthContext(snap)), message)
	if err != nil {
		s.logger.WithContext(ctx).Error("Chat completion failed",
			"error", err,
			"latency_ms", time.Since(startTime).Milliseconds())
		if errors.Is(err, chat.ErrNotConfigured) {
			return "", NewServiceError(CodeChatNotConfigured, "Chat API key not configured")
		}
		return "", NewServiceError(CodeChatFailed, "Failed to get AI response")
	}

	s.logger.WithContext(ctx).Info("Chat reply generated",
		"message_length", len(message),
		"latency_ms", time.Since(startTime).Milliseconds())

	return reply, nil
}
