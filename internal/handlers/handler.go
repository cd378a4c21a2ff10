package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/models"
	"github.com/healthlens/healthlens/internal/services"
	"github.com/healthlens/healthlens/internal/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	// Services
	dashboardService *services.DashboardService
	chatService      *services.ChatService
}

// New creates a new handler instance
func New(logger *logging.Logger, dashboardService *services.DashboardService, chatService *services.ChatService) *Handler {
	return &Handler{
		logger:           logger,
		dashboardService: dashboardService,
		chatService:      chatService,
	}
}

// requestContext bounds a request with utils.DefaultRequestTimeout
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), utils.DefaultRequestTimeout)
}

// serviceErrorStatus maps a service error code to an HTTP status
func serviceErrorStatus(code string) int {
	switch code {
	case services.CodeInvalidDataType, services.CodeInvalidAnalyticsType,
		services.CodeInvalidInterval, services.CodeInvalidParameter,
		services.CodeMessageRequired:
		return fiber.StatusBadRequest
	case services.CodeChatNotConfigured:
		return fiber.StatusServiceUnavailable
	case services.CodeChatFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// handleServiceError renders err as an ErrorResponse
func (h *Handler) handleServiceError(c *fiber.Ctx, err error, fallbackCode string) error {
	if svcErr, ok := services.AsServiceError(err); ok {
		return c.Status(serviceErrorStatus(svcErr.Code)).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Path:    c.Path(),
				Details: svcErr.Details,
			},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    fallbackCode,
			Message: err.Error(),
			Path:    c.Path(),
		},
	})
}

// badRequest renders a 400 ErrorResponse
func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Path:    c.Path(),
		},
	})
}
