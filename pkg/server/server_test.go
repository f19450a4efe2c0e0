package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helpdesk-hq/agentd/pkg/config"
	"helpdesk-hq/agentd/pkg/telemetry/health"
	"helpdesk-hq/agentd/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.App.Environment = "production"
	cfg.Server.CORS.Enabled = true
	cfg.Telemetry.Metrics.Enabled = true
	return cfg
}

func newTestServer(t *testing.T) (*Server, *metrics.Collector) {
	t.Helper()

	cfg := testConfig()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())

	checker := health.New(0)
	checker.SetInfo("2.4.1", cfg.App.Environment)

	srv := NewServer(cfg, collector, checker, BuildInfo{
		Version:   "2.4.1",
		Commit:    "abc123",
		BuildTime: "2026-08-23T00:00:00Z",
	})
	return srv, collector
}

func TestServer_RootBanner(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var banner bannerResponse
	if err := json.NewDecoder(w.Body).Decode(&banner); err != nil {
		t.Fatalf("Failed to decode banner: %v", err)
	}
	if banner.Name != config.DefaultAppName {
		t.Errorf("Name = %q, want %q", banner.Name, config.DefaultAppName)
	}
	if banner.Status != "operational" {
		t.Errorf("Status = %q, want operational", banner.Status)
	}
	if banner.Version != "2.4.1" {
		t.Errorf("Version = %q, want 2.4.1", banner.Version)
	}
}

func TestServer_UnknownPathIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestServer_HealthAndVersionEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	for _, path := range []string{"/health", "/ready", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, w.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var info health.VersionInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode version info: %v", err)
	}
	if info.Version != "2.4.1" || info.Commit != "abc123" {
		t.Errorf("Version info = %+v, want version 2.4.1 commit abc123", info)
	}
}

func TestServer_RequestIDHeaderOnResponses(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header on response")
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	// Generate some traffic first.
	body := strings.NewReader(`{"category":"billing_inquiry","channel":"email"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	exposition, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatalf("Failed to read exposition: %v", err)
	}
	if !strings.Contains(string(exposition), "ai_agent_tickets_processed_total") {
		t.Error("Expected processed-ticket counter in exposition")
	}
}

func TestServer_HTTPMetricsUseRoutePattern(t *testing.T) {
	srv, collector := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets/TKT-123", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() != "ai_agent_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "endpoint" && label.GetValue() == "GET /api/v1/tickets/{id}" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("Expected endpoint label with route pattern, not raw path")
	}
}

func TestServer_NilCollectorServes(t *testing.T) {
	cfg := testConfig()
	checker := health.New(0)
	srv := NewServer(cfg, nil, checker, BuildInfo{Version: "dev"})
	handler := srv.Handler()

	body := strings.NewReader(`{"subject":"help"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	// No metrics endpoint without a collector.
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Metrics status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestServer_ProcessedTicketsCounted(t *testing.T) {
	srv, collector := newTestServer(t)
	handler := srv.Handler()

	for range 3 {
		body := strings.NewReader(`{"category":"technical_support","channel":"chat"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", body)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}
	}

	count, err := testutil.GatherAndCount(collector.Registry(), "ai_agent_tickets_processed_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single processed series, got %d", count)
	}

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "ai_agent_tickets_processed_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if got := m.GetCounter().GetValue(); got != 3 {
				t.Errorf("Processed counter = %v, want 3", got)
			}
		}
	}
}
