package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tmdb-proxy-go/internal/metrics"
	"tmdb-proxy-go/internal/model"
)

// CORS returns an Echo middleware that stamps the policy headers on every
// response, including 404s and errors. Register it with e.Pre so the
// headers are in place before routing.
func CORS(p *model.CORSPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p.Apply(c.Response().Header())
			return next(c)
		}
	}
}

// Preflight returns an Echo middleware that answers OPTIONS on any path with
// 200 and an empty body. Register it with e.Use after the logging, metrics
// and security middleware so preflights pass through them. m may be nil.
func Preflight(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !model.IsPreflight(c.Request().Method) {
				return next(c)
			}
			m.ObserveOutcome(metrics.OutcomePreflight)
			return c.NoContent(http.StatusOK)
		}
	}
}
