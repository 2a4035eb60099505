package model

import (
	"net/http"
	"testing"
)

func TestCORSPolicy_Apply(t *testing.T) {
	p := &CORSPolicy{
		AllowOrigin:  "*",
		AllowHeaders: "Content-Type",
		AllowMethods: "GET, OPTIONS",
	}
	h := http.Header{"Access-Control-Allow-Origin": {"https://stale.example"}}

	p.Apply(h)

	tests := []struct {
		key  string
		want string
	}{
		{"Access-Control-Allow-Origin", "*"},
		{"Access-Control-Allow-Headers", "Content-Type"},
		{"Access-Control-Allow-Methods", "GET, OPTIONS"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := h.Values(tt.key); len(got) != 1 || got[0] != tt.want {
				t.Errorf("%s = %v, want [%q]", tt.key, got, tt.want)
			}
		})
	}
}

func TestIsPreflight(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{http.MethodOptions, true},
		{http.MethodGet, false},
		{http.MethodPost, false},
		{"options", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := IsPreflight(tt.method); got != tt.want {
				t.Errorf("IsPreflight(%q) = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}
