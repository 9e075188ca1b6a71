package metrics

import (
	"testing"

	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, ClientRequestDuration)
	assert.NotNil(t, ClientRequestsTotal)
	assert.NotNil(t, ViewLoadsTotal)
	assert.NotNil(t, ViewStaleResultsDropped)
	assert.NotNil(t, ReasonFuzzyMatchesTotal)
	assert.NotNil(t, SessionChangesTotal)
	assert.NotNil(t, MockHTTPRequestDuration)
	assert.NotNil(t, MockHTTPRequestsTotal)
	assert.NotNil(t, MockHTTPPanicsTotal)
}

func TestSessionChangesTotal_Labels(t *testing.T) {
	t.Parallel()

	c, err := SessionChangesTotal.GetMetricWithLabelValues("metrics_test")
	require.NoError(t, err)
	c.Inc()

	m := &io_prometheus_client.Metric{}
	require.NoError(t, c.Write(m))
	assert.InDelta(t, 1, m.GetCounter().GetValue(), 0)
}
