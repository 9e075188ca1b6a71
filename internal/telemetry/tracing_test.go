package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/donaldgifford/auction-browser/internal/config"
	"github.com/donaldgifford/auction-browser/pkg/logger"
)

func TestTracer_Disabled(t *testing.T) {
	t.Parallel()

	tp, shutdown, err := Tracer(context.Background(), config.TracingConfig{}, "subastas", "dev", nil)
	require.NoError(t, err)
	assert.IsType(t, noop.TracerProvider{}, tp)
	require.NoError(t, shutdown(context.Background()))
}

func TestTracer_Enabled(t *testing.T) {
	t.Parallel()

	cfg := config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		SampleRatio: 1,
	}
	tp, shutdown, err := Tracer(context.Background(), cfg, "subastas", "dev", logger.Discard())
	require.NoError(t, err)
	require.IsType(t, &sdktrace.TracerProvider{}, tp)

	// No span is recorded, so shutdown has nothing to export.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, shutdown(ctx))
}
