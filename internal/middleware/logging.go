// Package middleware provides Echo middleware for CORS, logging, metrics,
// rate limiting and security headers.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"tmdb-proxy-go/internal/service"
)

// RequestLogger returns an Echo middleware that logs each request with slog.
// The query string is never logged; only the endpoint parameter is, and it
// passes through redaction first since callers sometimes embed keys in it.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"remote_ip", c.RealIP(),
				"bytes_out", res.Size,
			}
			if ep := req.URL.Query().Get("endpoint"); ep != "" {
				attrs = append(attrs, "endpoint", service.Redact(ep, ""))
			}

			logger.Info("request", attrs...)

			return err
		}
	}
}
