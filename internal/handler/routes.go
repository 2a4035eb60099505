package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/metrics"
)

// ProxyRoutes are the paths that serve the proxy. The second matches the
// path of the equivalent Netlify function so existing clients keep working.
var ProxyRoutes = []string{"/tmdb", "/.netlify/functions/tmdb"}

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, tmdb *TMDBHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)
	for _, route := range ProxyRoutes {
		e.Any(route, tmdb.Handle)
	}
	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
}
