package router

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthlens/healthlens/internal/config"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/models"
	"github.com/healthlens/healthlens/internal/utils"
)

func writeCSV(t *testing.T, dir, folder, content string) {
	t.Helper()
	path := filepath.Join(dir, folder)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, folder+".csv"), []byte(content), 0o644))
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, dir, utils.FolderActivity, "date,steps,distance,runDistance,calories\n"+
		"2024-05-01,10400,7300,0,410\n"+
		"2024-05-02,8600,6000,0,350\n")
	writeCSV(t, dir, utils.FolderSleep, "date,deepSleepTime,shallowSleepTime,wakeTime,start,stop,REMTime,naps\n"+
		"2024-05-01,85,240,12,2024-05-01 23:10:00+0000,2024-05-02 06:50:00+0000,75,\n")

	cfg := *config.DefaultConfig()
	cfg.Data.Dir = dir
	cfg.Chat.APIKey = ""
	return cfg
}

func TestNew_Routes(t *testing.T) {
	app := New(logging.Nop(), testConfig(t))

	tests := []struct {
		method string
		target string
		status int
	}{
		{"GET", "/health", fiber.StatusOK},
		{"GET", "/api/data/activity", fiber.StatusOK},
		{"GET", "/api/data/heartrate", fiber.StatusOK},
		{"GET", "/api/data/nope", fiber.StatusBadRequest},
		{"GET", "/api/analytics", fiber.StatusOK},
		{"GET", "/api/analytics/sleep", fiber.StatusOK},
		{"GET", "/api/trends?interval=6m", fiber.StatusOK},
		{"GET", "/api/overview", fiber.StatusOK},
		{"GET", "/api/unknown", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(logging.RequestIDHeader))
		})
	}
}

func TestNew_DataFromDisk(t *testing.T) {
	app := New(logging.Nop(), testConfig(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/data/activity", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var records []models.ActivityRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, 10400, records[0].Steps)
}

func TestNew_ChatWithoutKey(t *testing.T) {
	app := New(logging.Nop(), testConfig(t))

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestNew_CORS(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.AllowOrigins = "https://dashboard.example"
	app := New(logging.Nop(), cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://dashboard.example")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://dashboard.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
