package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/seasonal/internal/config"
	"github.com/soltixdb/seasonal/internal/logging"
	"github.com/soltixdb/seasonal/internal/models"
)

// newHealthApp mounts the health endpoint and the 404 fallthrough the way
// the router does.
func newHealthApp() *fiber.App {
	h := New(logging.NewDevelopment(), config.ForecastConfig{
		MaxSeriesLength: 1000,
		MaxHorizon:      100,
	})

	app := fiber.New()
	app.Get("/health", h.Health)
	app.Use(h.NotFound)
	return app
}

func TestHandler_Health(t *testing.T) {
	app := newHealthApp()

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var healthResp models.HealthResponse
	if err := json.Unmarshal(body, &healthResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if healthResp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", healthResp.Status)
	}
	if healthResp.Version != Version {
		t.Errorf("Expected version '%s', got '%s'", Version, healthResp.Version)
	}
	if _, err := time.Parse(time.RFC3339, healthResp.Timestamp); err != nil {
		t.Errorf("Expected RFC3339 timestamp, got '%s': %v", healthResp.Timestamp, err)
	}
}

func TestHandler_NotFound(t *testing.T) {
	app := newHealthApp()

	req := httptest.NewRequest("GET", "/v1/forecasts/multiplicative", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", fiber.StatusNotFound, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if errResp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected error code 'NOT_FOUND', got '%s'", errResp.Error.Code)
	}
	if errResp.Error.Path != "/v1/forecasts/multiplicative" {
		t.Errorf("Expected the missed path in the error detail, got '%s'", errResp.Error.Path)
	}
}
