package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ViewLoads shows screen loads per second by view and outcome.
func ViewLoads() *timeseries.PanelBuilder {
	return series("View Loads", "Screen loads per second by view and outcome", "ops").
		WithTarget(PromQuery(
			SumRate("auction_browser_view_loads_total", "view, outcome"),
			"{{view}} {{outcome}}", "A",
		)).
		Legend(TableLegend("mean", "max"))
}

// StaleResults shows load results discarded because the screen was closed
// or a newer load had started.
func StaleResults() *timeseries.PanelBuilder {
	return series("Dropped Stale Results",
		"Load results discarded because the view was closed or superseded", "ops").
		WithTarget(PromQuery(
			SumRate("auction_browser_view_stale_results_dropped_total", "view"),
			"{{view}}", "A",
		)).
		DrawStyle(common.GraphDrawStyleBars)
}
