// Package middleware holds Fiber middleware shared by the HTTP API.
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/models"
)

// ErrorHandler returns a custom error handler middleware
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		logger.WithContext(c.UserContext()).Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errorCode(code),
				Message: message,
				Path:    c.Path(),
			},
		})
	}
}

// errorCode derives an upper snake case code from the HTTP status text,
// e.g. 405 becomes METHOD_NOT_ALLOWED.
func errorCode(status int) string {
	text := utils.StatusMessage(status)
	if text == "" {
		return "ERROR"
	}
	text = strings.ToUpper(text)
	return strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text)
}
