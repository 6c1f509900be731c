package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/app"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := config.NewDefaultConfig()
	logger := common.NewSilentLogger()

	application, err := app.New(cfg, logger)
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", body["status"])
	}
	if body["endpoints_count"] != float64(0) {
		t.Errorf("expected endpoints_count 0, got %v", body["endpoints_count"])
	}
}

func TestRoutes_APIHealthAlias(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 on /api/health alias, got %d", w.Code)
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version field in response")
	}
}

func TestRoutes_APINotFound(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/nonexistent", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404 body, got content type %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["success"] != false {
		t.Errorf("expected success false, got %v", body["success"])
	}
	if body["message"] != "Not found" {
		t.Errorf("expected message 'Not found', got %v", body["message"])
	}
}

func TestRoutes_MiddlewareApplied(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	// Verify correlation ID middleware is applied
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware")
	}

	// Verify CORS middleware is applied
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header from middleware")
	}
}

func TestRoutes_CorrelationIDPassthrough(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-ID"); got != "req-42" {
		t.Errorf("expected caller correlation ID echoed, got %q", got)
	}
}

func TestRoutes_CORSPreflight(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("OPTIONS", "/api/endpoints", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Access-Control-Allow-Methods header")
	}
}

func TestRoutes_ManagementFlow(t *testing.T) {
	srv := New(newTestApp(t))
	handler := srv.Handler()

	// Register an endpoint through the management API.
	payload := `{"name":"get_weather","url":"https://api.example.com/weather","method":"GET"}`
	req := httptest.NewRequest("POST", "/api/endpoints", strings.NewReader(payload))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	// It shows up in the listing.
	req = httptest.NewRequest("GET", "/api/endpoints", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	var list map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list: failed to unmarshal: %v", err)
	}
	if list["count"] != float64(1) {
		t.Fatalf("list: expected count 1, got %v", list["count"])
	}

	// Remove it again.
	req = httptest.NewRequest("DELETE", "/api/endpoints/get_weather", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/endpoints", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	json.Unmarshal(w.Body.Bytes(), &list)
	if list["count"] != float64(0) {
		t.Errorf("expected count 0 after delete, got %v", list["count"])
	}
}

func TestRoutes_MCPEndpointMounted(t *testing.T) {
	srv := New(newTestApp(t))

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test-client","version":"0.0.1"}}}`
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(initialize))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 from MCP initialize, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "serverInfo") {
		t.Errorf("expected initialize result with serverInfo, got: %s", w.Body.String())
	}
}
