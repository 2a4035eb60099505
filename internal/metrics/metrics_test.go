package metrics

import (
	"testing"
)

func TestNew_GathersMetrics(t *testing.T) {
	m := New()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	// Should include at least Go runtime and process collectors.
	if len(families) == 0 {
		t.Fatal("expected non-empty metric families from Gather()")
	}

	// Vec collectors only show up once a label set exists.
	m.RequestsTotal.WithLabelValues("GET", "200", "/tmdb").Inc()

	families, err = m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "tmdb_proxy_http_requests_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected tmdb_proxy_http_requests_total in gathered metrics")
	}
}

func TestObserveOutcome(t *testing.T) {
	m := New()
	m.ObserveOutcome(OutcomeOK)
	m.ObserveOutcome(OutcomeOK)
	m.ObserveOutcome(OutcomeValidationError)

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := make(map[string]float64)
	for _, f := range families {
		if f.GetName() != "tmdb_proxy_outcomes_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "outcome" {
					got[lp.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}

	if got[OutcomeOK] != 2 {
		t.Errorf("outcome ok = %v, want 2", got[OutcomeOK])
	}
	if got[OutcomeValidationError] != 1 {
		t.Errorf("outcome validation_error = %v, want 1", got[OutcomeValidationError])
	}
}

func TestObserveOutcome_NilReceiver(t *testing.T) {
	var m *Metrics
	m.ObserveOutcome(OutcomeOK) // must not panic
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"GET", "GET"},
		{"POST", "POST"},
		{"PUT", "PUT"},
		{"DELETE", "DELETE"},
		{"PATCH", "PATCH"},
		{"HEAD", "HEAD"},
		{"OPTIONS", "OPTIONS"},
		{"FOOBAR", "other"},
		{"get", "other"},
		{"X-CUSTOM", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := NormalizeMethod(tt.method)
			if got != tt.want {
				t.Errorf("NormalizeMethod(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmdb", "/tmdb"},
		{"/tmdb/", "/tmdb"},
		{"/.netlify/functions/tmdb", "/.netlify/functions/tmdb"},
		{"/healthz", "/healthz"},
		{"/proxy/status", "/proxy/status"},
		{"/metrics", "/metrics"},
		{"/tmdbx", "other"},
		{"/unknown", "other"},
		{"/", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := NormalizePath(tt.path)
			if got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
