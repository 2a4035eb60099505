package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	// ErrMissingAPIKey is returned when no TMDB API key is available.
	ErrMissingAPIKey = errors.New("TMDB API key not configured")
	// ErrMissingEndpoint is returned when the endpoint parameter is absent or empty.
	ErrMissingEndpoint = errors.New("endpoint parameter required")
	// ErrInvalidEndpoint is returned when the endpoint parameter fails validation.
	ErrInvalidEndpoint = errors.New("invalid endpoint parameter")
	// ErrResponseTooLarge is returned when the upstream body exceeds upstream.max_response_bytes.
	ErrResponseTooLarge = errors.New("upstream response exceeds size limit")
)

// UpstreamError reports a failed TMDB call. StatusCode is the upstream
// status when TMDB answered, or zero for transport failures.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream status %d: %v", e.StatusCode, e.Err)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Failure kinds used in log lines.
const (
	kindConfig     = "config"
	kindValidation = "validation"
	kindStatus     = "status"
	kindTimeout    = "timeout"
	kindCanceled   = "canceled"
	kindDNS        = "dns"
	kindConnection = "connection"
	kindOther      = "other"
)

// classify maps an error to a failure kind for logging.
func classify(err error) string {
	if errors.Is(err, ErrMissingAPIKey) {
		return kindConfig
	}
	if errors.Is(err, ErrMissingEndpoint) || errors.Is(err, ErrInvalidEndpoint) {
		return kindValidation
	}

	var upErr *UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode != 0 {
		return kindStatus
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return kindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return kindCanceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return kindDNS
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return kindTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return kindConnection
	}
	return kindOther
}
