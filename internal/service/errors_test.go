package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", ErrMissingAPIKey, kindConfig},
		{"missing endpoint", ErrMissingEndpoint, kindValidation},
		{"invalid endpoint", fmt.Errorf("%w: dot segment", ErrInvalidEndpoint), kindValidation},
		{"upstream status", &UpstreamError{StatusCode: 404, Err: errors.New("upstream returned status 404 Not Found")}, kindStatus},
		{"deadline", &UpstreamError{Err: fmt.Errorf("upstream request: %w", context.DeadlineExceeded)}, kindTimeout},
		{"canceled", &UpstreamError{Err: fmt.Errorf("upstream request: %w", context.Canceled)}, kindCanceled},
		{"dns", &UpstreamError{Err: &url.Error{Op: "Get", URL: "https://api.themoviedb.org/3", Err: &net.DNSError{Err: "no such host", Name: "api.themoviedb.org"}}}, kindDNS},
		{"net timeout", &UpstreamError{Err: &url.Error{Op: "Get", URL: "https://api.themoviedb.org/3", Err: timeoutErr{}}}, kindTimeout},
		{"connection", &UpstreamError{Err: &url.Error{Op: "Get", URL: "https://api.themoviedb.org/3", Err: errors.New("connection refused")}}, kindConnection},
		{"too large", &UpstreamError{Err: ErrResponseTooLarge}, kindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpstreamError(t *testing.T) {
	inner := errors.New("boom")

	withStatus := &UpstreamError{StatusCode: 502, Err: inner}
	if got := withStatus.Error(); got != "upstream status 502: boom" {
		t.Errorf("Error() = %q, want %q", got, "upstream status 502: boom")
	}
	if !errors.Is(withStatus, inner) {
		t.Error("errors.Is should unwrap to the inner error")
	}

	transport := &UpstreamError{Err: inner}
	if got := transport.Error(); got != "boom" {
		t.Errorf("Error() = %q, want %q", got, "boom")
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		apiKey string
		want   string
	}{
		{
			name: "redacts api_key in URL",
			msg:  `Get "https://api.themoviedb.org/3/movie/550?api_key=secret123&language=en": connection refused`,
			want: `Get "https://api.themoviedb.org/3/movie/550?api_key=[REDACTED]&language=en": connection refused`,
		},
		{
			name: "redacts api_key at end of URL",
			msg:  `Get "https://api.themoviedb.org/3/movie/550?api_key=secret123": EOF`,
			want: `Get "https://api.themoviedb.org/3/movie/550?api_key=[REDACTED]": EOF`,
		},
		{
			name: "redacts apikey variant",
			msg:  `search/movie?ApiKey=secret123`,
			want: `search/movie?ApiKey=[REDACTED]`,
		},
		{
			name:   "redacts literal key",
			msg:    `unexpected token near secret123`,
			apiKey: "secret123",
			want:   `unexpected token near [REDACTED]`,
		},
		{
			name: "no key unchanged",
			msg:  "connection refused",
			want: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.msg, tt.apiKey); got != tt.want {
				t.Errorf("Redact() = %q, want %q", got, tt.want)
			}
		})
	}
}
