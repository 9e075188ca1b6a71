package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const (
	backendRequests = "auction_browser_mock_backend_http_requests_total"
	backendDuration = "auction_browser_mock_backend_http_request_duration_seconds"
	backendPanics   = "auction_browser_mock_backend_panics_recovered_total"
)

// BackendRequestRate shows mock backend requests per second by route.
func BackendRequestRate() *timeseries.PanelBuilder {
	return series("Mock Backend Request Rate", "Requests served per second by route", "reqps").
		WithTarget(PromQuery(SumRate(backendRequests, "route"), "{{route}}", "A")).
		Legend(TableLegend("mean", "max"))
}

// BackendLatency shows the p95 mock backend latency by route.
func BackendLatency() *timeseries.PanelBuilder {
	return series("Mock Backend Latency (p95)", "95th percentile request duration by route", "s").
		WithTarget(PromQuery(Quantile(0.95, backendDuration, "route"), "{{route}}", "A")).
		Thresholds(Thresholds("green", Step{0.1, "yellow"}, Step{0.5, "red"}))
}

// BackendPanics shows handler panics recovered by the mock backend, by route.
func BackendPanics() *timeseries.PanelBuilder {
	return series("Mock Backend Recovered Panics", "Handler panics turned into 500 responses, by route", "short").
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum by (route) (increase(`+backendPanics+`[5m]))`,
			"{{route}}", "A",
		)).
		Thresholds(Thresholds("green", Step{1, "red"})).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleBars)
}
