package service

import (
	"fmt"
	"net/url"
	"strings"
)

// endpointParam is the inbound query parameter holding the TMDB path.
const endpointParam = "endpoint"

// parseEndpoint splits raw into a relative API path and its embedded query,
// e.g. "search/movie?query=alien". Leading slashes are dropped. Unless trust
// is set, paths that could escape the API base are rejected.
func parseEndpoint(raw string, trust bool) (string, url.Values, error) {
	p, rawQuery, _ := strings.Cut(raw, "?")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", nil, fmt.Errorf("%w: empty path", ErrInvalidEndpoint)
	}

	if !trust {
		if err := checkPath(p); err != nil {
			return "", nil, err
		}
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	return p, query, nil
}

func checkPath(p string) error {
	if strings.Contains(p, "://") {
		return fmt.Errorf("%w: absolute URL", ErrInvalidEndpoint)
	}
	if strings.ContainsRune(p, '\\') {
		return fmt.Errorf("%w: backslash", ErrInvalidEndpoint)
	}
	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: control character", ErrInvalidEndpoint)
		}
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			return fmt.Errorf("%w: dot segment", ErrInvalidEndpoint)
		}
	}
	return nil
}

// isAPIKeyParam reports whether a query parameter name would carry a key upstream.
func isAPIKeyParam(name string) bool {
	return strings.EqualFold(name, "api_key") || strings.EqualFold(name, "apikey")
}

// upstreamQuery merges the endpoint's embedded query with the inbound
// parameters other than endpoint, drops any client-supplied key, and sets
// the server key last.
func upstreamQuery(embedded, inbound url.Values, apiKey string) url.Values {
	q := make(url.Values)
	for k, v := range embedded {
		q[k] = append(q[k], v...)
	}
	for k, v := range inbound {
		if k == endpointParam {
			continue
		}
		q[k] = append(q[k], v...)
	}
	for k := range q {
		if isAPIKeyParam(k) {
			delete(q, k)
		}
	}
	q.Set("api_key", apiKey)
	return q
}
