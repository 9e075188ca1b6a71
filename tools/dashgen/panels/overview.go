package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func statPanel(title, description string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		GraphMode(common.BigValueGraphModeNone)
}

// BackendUpStat shows whether the mock backend is being scraped.
func BackendUpStat() *stat.PanelBuilder {
	return statPanel("Mock Backend Up", "Scrape status of the mock backend (1 = up, 0 = down)").
		WithTarget(PromQuery(`up{job="`+MockBackendJob+`"}`, "", "A")).
		Thresholds(Thresholds("red", Step{1, "green"})).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		TextMode(common.BigValueTextModeValue)
}

// UptimeStat shows time since the mock backend process started.
func UptimeStat() *stat.PanelBuilder {
	return statPanel("Uptime", "Time since the mock backend process started").
		WithTarget(PromQuery(`time() - process_start_time_seconds{job="`+MockBackendJob+`"}`, "", "A")).
		Unit("s").
		Thresholds(Thresholds("green")).
		ColorScheme(ColorSchemeThresholds())
}

// SessionChangesStat shows logins, registrations and logouts over the
// last day.
func SessionChangesStat() *stat.PanelBuilder {
	return statPanel("Session Changes (24h)", "Logins, registrations and logouts in the last 24 hours").
		WithTarget(PromQuery(
			`sum by (action) (increase(auction_browser_session_changes_total[24h]))`,
			"{{action}}", "A",
		)).
		Thresholds(Thresholds("green")).
		ColorScheme(ColorSchemePaletteClassic()).
		TextMode(common.BigValueTextModeValueAndName)
}

// FuzzyReasonStat counts auctions classified as negotiated only through
// the substring fallback.
func FuzzyReasonStat() *stat.PanelBuilder {
	return statPanel("Fuzzy Reason Matches (24h)",
		"Auctions whose reason matched the negotiated tab only by substring").
		WithTarget(PromQuery(`increase(auction_browser_reason_fuzzy_matches_total[24h])`, "", "A")).
		Thresholds(Thresholds("green", Step{1, "yellow"}, Step{20, "red"})).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
