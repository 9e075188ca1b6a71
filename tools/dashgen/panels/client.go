package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

const (
	clientRequests = "auction_browser_client_requests_total"
	clientDuration = "auction_browser_client_request_duration_seconds"
)

// ClientRequestRate shows API client requests per second, total and by
// endpoint template.
func ClientRequestRate() *timeseries.PanelBuilder {
	return series("Client Request Rate", "Backend API requests per second by endpoint", "reqps").
		WithTarget(PromQuery(`auction_browser:client_requests:rate5m`, "total", "A")).
		WithTarget(PromQuery(SumRate(clientRequests, "endpoint"), "{{endpoint}}", "B")).
		Legend(TableLegend("mean", "max"))
}

// ClientLatency shows p50, p95 and p99 request latency as seen by the client.
func ClientLatency() *timeseries.PanelBuilder {
	p := series("Client Latency Percentiles",
		"Backend API request duration percentiles as seen by the client", "s").
		Legend(TableLegend("mean", "max"))
	for _, t := range []struct {
		q      float64
		legend string
		ref    string
	}{
		{0.50, "p50", "A"},
		{0.95, "p95", "B"},
		{0.99, "p99", "C"},
	} {
		p = p.WithTarget(PromQuery(Quantile(t.q, clientDuration, ""), t.legend, t.ref))
	}
	return p
}

// ClientErrorRate shows non-2xx responses and transport failures as a
// share of client requests.
func ClientErrorRate() *timeseries.PanelBuilder {
	return series("Client Error Rate %",
		"Non-2xx responses and transport failures as percentage of client requests", "percent").
		Span(FullWidth).
		WithTarget(PromQuery(
			`auction_browser:client_errors:rate5m / auction_browser:client_requests:rate5m * 100`,
			"error %", "A",
		)).
		Thresholds(Thresholds("green", Step{5, "yellow"}, Step{10, "red"})).
		ColorScheme(ColorSchemeThresholds())
}
