package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"analyzer-backend/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "8080",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		DefaultModel:    "gpt-3.5-turbo",
		LLMTimeoutSecs:  5,
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := NewRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected health body: %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestModelsEndpointRegistered(t *testing.T) {
	r := NewRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "gpt-3.5-turbo") {
		t.Fatalf("unexpected models body: %s", w.Body.String())
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":9090": ":9090",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Errorf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
