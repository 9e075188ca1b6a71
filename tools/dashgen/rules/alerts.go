package rules

// AlertRules returns the alerts for the client and the mock backend.
func AlertRules() PrometheusRule {
	return newPrometheusRule("auction-browser-alerts", RuleGroup{
		Name: "auction-browser-alerts",
		Rules: []Rule{
			alert("MockBackendDown", SeverityCritical,
				`absent(up{job="auction-browser-mock"})`, "2m",
				"Auction mock backend is down",
				"The auction-browser-mock job has been absent for more than 2 minutes."),
			alert("ClientErrorRate", SeverityWarning,
				`auction_browser:client_errors:rate5m / auction_browser:client_requests:rate5m > 0.1`, "5m",
				"High backend error rate seen by the auction browser",
				"More than 10% of client requests failed or returned non-2xx over the last 5 minutes."),
			alert("ViewLoadErrors", SeverityWarning,
				`auction_browser:view_load_errors:rate5m > 0`, "10m",
				"Screens are failing to load",
				"View loads have been ending in error for more than 10 minutes."),
			alert("MockBackendErrors", SeverityWarning,
				`auction_browser:mock_backend_errors:rate5m / auction_browser:mock_backend_requests:rate5m > 0.05`, "5m",
				"Mock backend is returning 5xx",
				"More than 5% of mock backend requests returned 5xx over the last 5 minutes."),
			alert("MockBackendPanics", SeverityWarning,
				`increase(auction_browser_mock_backend_panics_recovered_total[15m]) > 0`, "0m",
				"Mock backend handlers are panicking",
				"The mock backend recovered from handler panics in the last 15 minutes."),
			alert("FuzzyReasons", SeverityInfo,
				`increase(auction_browser_reason_fuzzy_matches_total[1h]) > 0`, "0m",
				"Non-canonical auction reasons observed",
				"Some auctions were classified as negotiated sales only by substring match on the reason code."),
		},
	})
}
