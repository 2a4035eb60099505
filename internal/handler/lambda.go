package handler

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aws/aws-lambda-go/events"

	"tmdb-proxy-go/internal/model"
	"tmdb-proxy-go/internal/service"
)

// LambdaHandler serves the proxy as an API Gateway (REST, proxy integration)
// Lambda function.
type LambdaHandler struct {
	service *service.ProxyService
	logger  *slog.Logger
}

// NewLambdaHandler creates a LambdaHandler.
func NewLambdaHandler(svc *service.ProxyService, logger *slog.Logger) *LambdaHandler {
	return &LambdaHandler{
		service: svc,
		logger:  logger.With("component", "lambda_handler"),
	}
}

// Handle converts the event, runs the proxy, and converts the result back.
// The returned error is always nil so API Gateway relays the JSON body
// instead of a generic 502.
func (h *LambdaHandler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.service.Handle(ctx, &model.Request{
		Method: event.HTTPMethod,
		Query:  eventQuery(event),
	})

	h.logger.Debug("invocation",
		"method", event.HTTPMethod,
		"path", event.Path,
		"status", resp.StatusCode,
		"request_id", event.RequestContext.RequestID,
	)

	headers := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		headers[key] = resp.Header.Get(key)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(resp.Body),
	}, nil
}

// eventQuery prefers the multi-value parameters, which API Gateway fills
// whenever a query string is present.
func eventQuery(event events.APIGatewayProxyRequest) url.Values {
	q := make(url.Values)
	if len(event.MultiValueQueryStringParameters) > 0 {
		for k, v := range event.MultiValueQueryStringParameters {
			q[k] = append([]string(nil), v...)
		}
		return q
	}
	for k, v := range event.QueryStringParameters {
		q.Set(k, v)
	}
	return q
}
