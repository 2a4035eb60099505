package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/service"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	cfg     *config.Config
	keys    service.KeySource
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, keys service.KeySource, v Version) *HealthHandler {
	return &HealthHandler{cfg: cfg, keys: keys, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns proxy status information. It reports whether an API key is
// available, never the key itself.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":             "ok",
		"version":            string(h.version),
		"upstream_url":       h.cfg.Upstream.BaseURL,
		"api_key_configured": h.keys.APIKey() != "",
	})
}
