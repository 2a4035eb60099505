package model

import "net/http"

// CORSPolicy is the fixed set of cross-origin headers stamped on every response.
type CORSPolicy struct {
	AllowOrigin  string
	AllowHeaders string
	AllowMethods string
}

// Apply sets the CORS headers on h, replacing any existing values.
func (p *CORSPolicy) Apply(h http.Header) {
	h.Set("Access-Control-Allow-Origin", p.AllowOrigin)
	h.Set("Access-Control-Allow-Headers", p.AllowHeaders)
	h.Set("Access-Control-Allow-Methods", p.AllowMethods)
}

// IsPreflight reports whether method is a CORS preflight.
func IsPreflight(method string) bool {
	return method == http.MethodOptions
}
