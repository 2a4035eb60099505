package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tmdb-proxy-go/internal/client"
	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/metrics"
	"tmdb-proxy-go/internal/model"
	"tmdb-proxy-go/internal/service"
)

const testKey = "handler-test-key"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:         baseURL,
			TimeoutSeconds:  5,
			IdleConnections: 10,
		},
		CORS: config.CORSConfig{
			AllowOrigin:  "*",
			AllowHeaders: "Content-Type",
			AllowMethods: "GET, OPTIONS",
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func testCORS(cfg *config.Config) *model.CORSPolicy {
	return &model.CORSPolicy{
		AllowOrigin:  cfg.CORS.AllowOrigin,
		AllowHeaders: cfg.CORS.AllowHeaders,
		AllowMethods: cfg.CORS.AllowMethods,
	}
}

// newTestProxyService creates a ProxyService that accepts any upstream host (for httptest).
func newTestProxyService(t *testing.T, cfg *config.Config, keys service.KeySource, m *metrics.Metrics) *service.ProxyService {
	t.Helper()
	logger := discardLogger()
	tc := client.NewTMDBClient(cfg, logger, m)
	svc, err := service.NewProxyServiceForTest(tc, cfg, keys, testCORS(cfg), m, logger)
	if err != nil {
		t.Fatalf("NewProxyServiceForTest: %v", err)
	}
	return svc
}

// newUpstream starts a fake TMDB that answers every request with status and body.
func newUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != testKey {
			t.Errorf("upstream api_key = %q, want %q", got, testKey)
		}
		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
