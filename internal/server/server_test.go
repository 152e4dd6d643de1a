package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scribe/internal/config"
	"scribe/internal/pipeline"
)

func testConfig() config.Server {
	return config.Server{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  "5s",
		WriteTimeout: "30s",
		CORS:         config.CORS{AllowedOrigins: []string{"https://example.com"}},
	}
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := New(&mockRecapService{}, testConfig())

	rec := do(t, s, http.MethodGet, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("body = %+v", body)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestStatus(t *testing.T) {
	svc := &mockRecapService{
		StatusFunc: func() pipeline.StatusReport {
			return pipeline.StatusReport{
				PipelineStatus: "operational",
				Agents:         pipeline.AgentStatus{DataCollector: "initialized", Researcher: "initialized", Writer: "initialized"},
				DataFlow:       "Data Collector → Research → Writer",
			}
		},
	}
	s := New(svc, testConfig())

	rec := do(t, s, http.MethodGet, "/api/v1/status")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"pipeline_status":"operational"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGenerateRecap(t *testing.T) {
	tests := []struct {
		name       string
		gameID     string
		success    bool
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{name: "success", gameID: "1035037", success: true, wantStatus: http.StatusOK, wantBody: `"content":"Mock recap"`, wantCalls: 1},
		{name: "pipeline failure", gameID: "42", success: false, wantStatus: http.StatusInternalServerError, wantBody: `"error_step":"data_collection"`, wantCalls: 1},
		{name: "non numeric id", gameID: "abc", wantStatus: http.StatusBadRequest, wantBody: "positive integer"},
		{name: "zero id", gameID: "0", wantStatus: http.StatusBadRequest, wantBody: "positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRecapService{
				GenerateRecapFunc: func(ctx context.Context, gameID string) *pipeline.Result {
					if tt.success {
						return &pipeline.Result{Success: true, GameID: gameID, Content: "Mock recap"}
					}
					return &pipeline.Result{
						GameID:   gameID,
						Error:    "No data available for game " + gameID + ": []",
						Metadata: pipeline.Metadata{ErrorOccurred: true, ErrorStep: pipeline.StageDataCollection},
					}
				},
			}
			s := New(svc, testConfig())

			rec := do(t, s, http.MethodPost, "/api/v1/recaps/"+tt.gameID)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want %s", rec.Body.String(), tt.wantBody)
			}
			if len(svc.GameIDs) != tt.wantCalls {
				t.Errorf("calls = %v", svc.GameIDs)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
		})
	}
}

func TestRecapRequiresPost(t *testing.T) {
	s := New(&mockRecapService{}, testConfig())

	rec := do(t, s, http.MethodGet, "/api/v1/recaps/1")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	s := New(&mockRecapService{}, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{Enabled: true, Requests: 2, Window: "1m"}
	s := New(&mockRecapService{}, cfg)

	// burst is half the window allowance
	if rec := do(t, s, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("retry after = %q", rec.Header().Get("Retry-After"))
	}
}
