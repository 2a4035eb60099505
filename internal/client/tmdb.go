// Package client provides the upstream HTTP client for the TMDB API.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/metrics"
	"tmdb-proxy-go/internal/model"
)

const userAgent = "tmdb-proxy-go/1.0"

// TMDBClient issues GET requests against the TMDB API.
type TMDBClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewTMDBClient creates a TMDBClient with a pooled transport and an overall
// per-call timeout of upstream.timeout_seconds. m may be nil.
func NewTMDBClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *TMDBClient {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &TMDBClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "tmdb_client"),
		metrics: m,
	}
}

// Get sends a bodiless GET to rawURL. Canceling ctx aborts the call, so a
// client that disconnects stops the TMDB request too. The caller closes the
// returned body.
func (c *TMDBClient) Get(ctx context.Context, rawURL string) (*model.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// rawURL carries the key in its query; only the path is logged.
	c.logger.Debug("upstream request", "path", req.URL.Path)

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:bodyclose // closed by the caller
	c.observe(start, resp)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}

	return &model.UpstreamResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// observe records call latency, and the status when TMDB answered.
func (c *TMDBClient) observe(start time.Time, resp *http.Response) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamDuration.WithLabelValues(http.MethodGet).Observe(time.Since(start).Seconds())
	if resp != nil {
		c.metrics.UpstreamResponses.WithLabelValues(http.MethodGet, strconv.Itoa(resp.StatusCode)).Inc()
	}
}
