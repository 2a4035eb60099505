// Package app holds the dependency graph shared by the HTTP server and the
// Lambda entry point.
package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"

	"tmdb-proxy-go/internal/client"
	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/metrics"
	"tmdb-proxy-go/internal/model"
	"tmdb-proxy-go/internal/service"
)

// Module provides everything between a loaded *config.Config and a
// *service.ProxyService. Callers supply the config, the transport and a
// *metrics.Metrics: metrics.New where /metrics is served, NoMetrics where
// nothing would ever scrape it.
var Module = fx.Options(
	fx.Provide(
		NewLogger,
		NewCORSPolicy,
		service.NewKeySource,
		client.NewTMDBClient,
		service.NewProxyService,
	),
)

// NoMetrics provides a nil *metrics.Metrics. Every recorder in the proxy
// treats nil as disabled.
func NoMetrics() *metrics.Metrics {
	return nil
}

// NewLogger builds the process logger on stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h)
}

// NewCORSPolicy returns the CORS headers configured for every response.
func NewCORSPolicy(cfg *config.Config) *model.CORSPolicy {
	return &model.CORSPolicy{
		AllowOrigin:  cfg.CORS.AllowOrigin,
		AllowHeaders: cfg.CORS.AllowHeaders,
		AllowMethods: cfg.CORS.AllowMethods,
	}
}
