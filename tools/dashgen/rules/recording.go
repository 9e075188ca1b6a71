package rules

// RecordingRules returns the 5m rates the dashboard and alerts read.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("auction-browser-recording-rules", RuleGroup{
		Name: "auction-browser-recording",
		Rules: []Rule{
			record("client_requests",
				`sum(rate(auction_browser_client_requests_total[5m]))`),
			record("client_errors",
				`sum(rate(auction_browser_client_requests_total{status!~"2.."}[5m]))`),
			record("view_load_errors",
				`sum(rate(auction_browser_view_loads_total{outcome="error"}[5m]))`),
			record("mock_backend_requests",
				`sum(rate(auction_browser_mock_backend_http_requests_total[5m]))`),
			record("mock_backend_errors",
				`sum(rate(auction_browser_mock_backend_http_requests_total{status=~"5.."}[5m]))`),
		},
	})
}
