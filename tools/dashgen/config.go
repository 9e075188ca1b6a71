package main

import "errors"

// KnownMetrics is the set of metric names exported by the auction browser
// client and mock backend, plus the recording rule names referenced in
// dashboards and alerts.
var KnownMetrics = map[string]bool{
	// API client metrics.
	"auction_browser_client_request_duration_seconds": true,
	"auction_browser_client_requests_total":           true,

	// View metrics.
	"auction_browser_view_loads_total":                 true,
	"auction_browser_view_stale_results_dropped_total": true,

	// Data quality and session metrics.
	"auction_browser_reason_fuzzy_matches_total": true,
	"auction_browser_session_changes_total":      true,

	// Mock backend metrics.
	"auction_browser_mock_backend_http_request_duration_seconds": true,
	"auction_browser_mock_backend_http_requests_total":           true,
	"auction_browser_mock_backend_panics_recovered_total":        true,

	// Recording rules.
	"auction_browser:client_requests:rate5m":       true,
	"auction_browser:client_errors:rate5m":         true,
	"auction_browser:view_load_errors:rate5m":      true,
	"auction_browser:mock_backend_requests:rate5m": true,
	"auction_browser:mock_backend_errors:rate5m":   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
