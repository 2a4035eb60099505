// Package service implements the core proxy forwarding logic.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"tmdb-proxy-go/internal/client"
	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/metrics"
	"tmdb-proxy-go/internal/model"
)

// Client-facing error messages.
const (
	msgKeyMissing      = "TMDB API key not configured"
	msgEndpointMissing = "Endpoint parameter required"
	msgEndpointInvalid = "Invalid endpoint parameter"
	msgFetchFailed     = "Failed to fetch data from TMDB"
)

const (
	defaultMaxResponseBytes = 10 * 1024 * 1024
	// drainLimit bounds how much of an error body is read to allow connection reuse.
	drainLimit = 64 * 1024
)

// allowedUpstreamHosts restricts which hosts the proxy will forward to.
var allowedUpstreamHosts = map[string]bool{
	"api.themoviedb.org": true,
}

// ProxyService turns one inbound invocation into at most one TMDB call.
type ProxyService struct {
	client  *client.TMDBClient
	cfg     *config.Config
	keys    KeySource
	cors    *model.CORSPolicy
	metrics *metrics.Metrics
	logger  *slog.Logger
	baseURL *url.URL
}

// NewProxyService creates a ProxyService.
func NewProxyService(
	c *client.TMDBClient,
	cfg *config.Config,
	keys KeySource,
	cors *model.CORSPolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*ProxyService, error) {
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}
	if !allowedUpstreamHosts[u.Hostname()] {
		return nil, fmt.Errorf("upstream host %q is not in the allowlist", u.Hostname())
	}
	return newProxyService(c, cfg, keys, cors, m, logger, u), nil
}

// NewProxyServiceForTest creates a ProxyService without host allowlist validation.
// This is intended only for tests that use httptest servers on localhost.
func NewProxyServiceForTest(
	c *client.TMDBClient,
	cfg *config.Config,
	keys KeySource,
	cors *model.CORSPolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*ProxyService, error) {
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}
	return newProxyService(c, cfg, keys, cors, m, logger, u), nil
}

func newProxyService(
	c *client.TMDBClient,
	cfg *config.Config,
	keys KeySource,
	cors *model.CORSPolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
	u *url.URL,
) *ProxyService {
	return &ProxyService{
		client:  c,
		cfg:     cfg,
		keys:    keys,
		cors:    cors,
		metrics: m,
		logger:  logger.With("component", "proxy_service"),
		baseURL: u,
	}
}

// Handle runs one proxy invocation. It never fails: every outcome, including
// missing configuration and upstream errors, is a JSON response carrying the
// CORS headers.
//
// Order of checks: preflight, API key, endpoint parameter, endpoint
// validation, then the upstream call.
func (s *ProxyService) Handle(ctx context.Context, req *model.Request) *model.Response {
	if model.IsPreflight(req.Method) {
		s.metrics.ObserveOutcome(metrics.OutcomePreflight)
		return s.respond(http.StatusOK, nil)
	}

	apiKey := s.keys.APIKey()
	body, err := s.fetch(ctx, req.Query, apiKey)
	if err != nil {
		return s.mapError(err, req.Query.Get(endpointParam), apiKey)
	}

	s.metrics.ObserveOutcome(metrics.OutcomeOK)
	return s.respond(http.StatusOK, body)
}

// fetch validates the request and returns the upstream body as JSON.
func (s *ProxyService) fetch(ctx context.Context, query url.Values, apiKey string) ([]byte, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	raw := query.Get(endpointParam)
	if raw == "" {
		return nil, ErrMissingEndpoint
	}

	p, embedded, err := parseEndpoint(raw, s.cfg.TMDB.TrustEndpoint)
	if err != nil {
		return nil, err
	}

	upstreamURL := s.buildUpstreamURL(p, upstreamQuery(embedded, query, apiKey))

	s.logger.Debug("forwarding request", "endpoint", p)

	resp, err := s.client.Get(ctx, upstreamURL)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("upstream returned status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	limit := s.maxResponseBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("read upstream body: %w", err)}
	}
	if int64(len(data)) > limit {
		return nil, &UpstreamError{Err: ErrResponseTooLarge}
	}
	return encodeBody(data), nil
}

func (s *ProxyService) buildUpstreamURL(p string, query url.Values) string {
	u := *s.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + p
	u.RawPath = ""
	u.RawQuery = query.Encode()
	return u.String()
}

func (s *ProxyService) maxResponseBytes() int64 {
	if s.cfg.Upstream.MaxResponseBytes > 0 {
		return s.cfg.Upstream.MaxResponseBytes
	}
	return defaultMaxResponseBytes
}

// encodeBody passes valid JSON through untouched and encodes anything else
// as a JSON string, so the response body is always JSON.
func encodeBody(data []byte) []byte {
	if json.Valid(data) {
		return data
	}
	quoted, _ := json.Marshal(string(data))
	return quoted
}

func (s *ProxyService) mapError(err error, endpoint, apiKey string) *model.Response {
	kind := classify(err)
	logArgs := []any{
		"kind", kind,
		"endpoint", Redact(endpoint, apiKey),
		"err", Redact(err.Error(), apiKey),
	}

	switch {
	case errors.Is(err, ErrMissingAPIKey):
		s.logger.Error("proxy error", logArgs...)
		s.metrics.ObserveOutcome(metrics.OutcomeConfigError)
		return s.respondError(http.StatusInternalServerError, model.ErrorBody{Error: msgKeyMissing})
	case errors.Is(err, ErrMissingEndpoint):
		s.logger.Warn("proxy error", logArgs...)
		s.metrics.ObserveOutcome(metrics.OutcomeValidationError)
		return s.respondError(http.StatusBadRequest, model.ErrorBody{Error: msgEndpointMissing})
	case errors.Is(err, ErrInvalidEndpoint):
		s.logger.Warn("proxy error", logArgs...)
		s.metrics.ObserveOutcome(metrics.OutcomeValidationError)
		return s.respondError(http.StatusBadRequest, model.ErrorBody{Error: msgEndpointInvalid})
	}

	s.logger.Error("proxy error", logArgs...)
	s.metrics.ObserveOutcome(metrics.OutcomeUpstreamError)

	status := http.StatusInternalServerError
	message := err.Error()
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		if upErr.StatusCode != 0 {
			status = upErr.StatusCode
		}
		message = upErr.Err.Error()
	}
	return s.respondError(status, model.ErrorBody{
		Error:   msgFetchFailed,
		Message: Redact(message, apiKey),
	})
}

func (s *ProxyService) respond(status int, body []byte) *model.Response {
	h := make(http.Header)
	if s.cors != nil {
		s.cors.Apply(h)
	}
	if len(body) > 0 {
		h.Set("Content-Type", "application/json")
	}
	return &model.Response{StatusCode: status, Header: h, Body: body}
}

func (s *ProxyService) respondError(status int, eb model.ErrorBody) *model.Response {
	body, err := json.Marshal(eb)
	if err != nil {
		body = []byte(`{"error":"` + msgFetchFailed + `"}`)
	}
	return s.respond(status, body)
}
