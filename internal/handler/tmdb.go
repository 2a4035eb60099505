// Package handler adapts the proxy service to Echo routes and Lambda events.
package handler

import (
	"github.com/labstack/echo/v4"

	"tmdb-proxy-go/internal/model"
	"tmdb-proxy-go/internal/service"
)

// TMDBHandler serves the proxy endpoint over Echo.
type TMDBHandler struct {
	service *service.ProxyService
}

// NewTMDBHandler creates a TMDBHandler.
func NewTMDBHandler(svc *service.ProxyService) *TMDBHandler {
	return &TMDBHandler{service: svc}
}

// Handle runs the proxy for the current request and writes its response.
func (h *TMDBHandler) Handle(c echo.Context) error {
	req := c.Request()
	resp := h.service.Handle(req.Context(), &model.Request{
		Method: req.Method,
		Query:  c.QueryParams(),
	})
	return writeResponse(c, resp)
}

func writeResponse(c echo.Context, resp *model.Response) error {
	header := c.Response().Header()
	for key, vals := range resp.Header {
		header[key] = vals
	}
	if len(resp.Body) == 0 {
		return c.NoContent(resp.StatusCode)
	}
	return c.Blob(resp.StatusCode, echo.MIMEApplicationJSON, resp.Body)
}
