package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/models"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{"bad request", fiber.ErrBadRequest, fiber.StatusBadRequest, "BAD_REQUEST", "Bad Request"},
		{"not found", fiber.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Not Found"},
		{"method not allowed", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed"},
		{"service unavailable", fiber.ErrServiceUnavailable, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service Unavailable"},
		{"teapot", fiber.NewError(fiber.StatusTeapot, "short and stout"), fiber.StatusTeapot, "IM_A_TEAPOT", "short and stout"},
		{"plain error", errors.New("database exploded"), fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logging.Nop())})
			app.Get("/test", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedCode, body.Error.Code)
			assert.Equal(t, tt.expectedMsg, body.Error.Message)
			assert.Equal(t, "/test", body.Error.Path)
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "UNPROCESSABLE_ENTITY", errorCode(fiber.StatusUnprocessableEntity))
	assert.Equal(t, "ERROR", errorCode(999))
}
