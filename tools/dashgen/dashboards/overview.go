// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/auction-browser/tools/dashgen/panels"
)

// OverviewUID is the stable dashboard UID; it is also the generated file name.
const OverviewUID = "auction-browser-overview"

// BuildOverview constructs the Auction Browser Overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Auction Browser Overview").
		Uid(OverviewUID).
		Tags([]string{"auction-browser", "subastas"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.BackendUpStat()).
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.SessionChangesStat()).
		WithPanel(panels.FuzzyReasonStat()))

	// Row 2: API client.
	b.WithRow(dashboard.NewRowBuilder("API Client").
		WithPanel(panels.ClientRequestRate()).
		WithPanel(panels.ClientLatency()).
		WithPanel(panels.ClientErrorRate()))

	// Row 3: Views.
	b.WithRow(dashboard.NewRowBuilder("Views").
		WithPanel(panels.ViewLoads()).
		WithPanel(panels.StaleResults()))

	// Row 4: Mock backend.
	b.WithRow(dashboard.NewRowBuilder("Mock Backend").
		WithPanel(panels.BackendRequestRate()).
		WithPanel(panels.BackendLatency()).
		WithPanel(panels.BackendPanics()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
