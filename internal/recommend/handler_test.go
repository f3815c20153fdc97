package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(newTestService(t, nil)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCreateRecommendationReturnsThreeScenarios(t *testing.T) {
	r := newTestRouter(t)
	body := `{
		"stage": "seed",
		"teamSize": "small",
		"automation": "hybrid",
		"techSavviness": "decent",
		"budgetPerUser": 50,
		"costSensitivity": "balanced",
		"currentTools": "notion, slack"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload Response
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(payload.Scenarios))
	}
	if payload.RunID == "" {
		t.Fatal("empty run id")
	}
}

func TestCreateRecommendationMalformedBody(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_request") {
		t.Fatalf("expected invalid_request code, got %s", resp.Body.String())
	}
}

func TestCreateRecommendationInvalidAssessment(t *testing.T) {
	r := newTestRouter(t)
	body := `{"stage": "seed", "teamSize": "galactic", "automation": "hybrid", "techSavviness": "decent", "costSensitivity": "balanced"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_assessment") {
		t.Fatalf("expected invalid_assessment code, got %s", resp.Body.String())
	}
}
