package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/healthlens/healthlens/internal/models"
	"github.com/healthlens/healthlens/internal/services"
)

// Chat handles assistant requests
// POST /api/chat
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_REQUEST", "Invalid request body: "+err.Error())
	}

	// The chat client carries its own timeout.
	reply, err := h.chatService.Reply(c.UserContext(), req.Message)
	if err != nil {
		return h.handleServiceError(c, err, services.CodeChatFailed)
	}

	return c.JSON(models.ChatResponse{Message: reply})
}
