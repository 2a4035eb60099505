// Package model defines shared types for the proxy.
package model

import (
	"io"
	"net/http"
	"net/url"
)

// Request is an inbound proxy invocation, independent of the transport
// (Echo server or Lambda event) it arrived on.
type Request struct {
	Method string
	Query  url.Values
}

// Response is the result of one invocation. Body is JSON or empty.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UpstreamResponse is the status and unread body of a TMDB call.
// The caller is responsible for closing Body.
type UpstreamResponse struct {
	StatusCode int
	Body       io.ReadCloser
}
