package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/weathernow/weathernow/internal/telemetry"
)

func TestProviderMetrics_RecordRequest(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	pm, err := telemetry.NewProviderMetrics("openmeteo")
	require.NoError(t, err)

	pm.RecordRequest("geocode", 120*time.Millisecond, nil)
	pm.RecordRequest("forecast", 80*time.Millisecond, errors.New("timeout"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
			if m.Name == "provider.request.total" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				assert.Equal(t, int64(2), total)
			}
		}
	}
	assert.True(t, names["provider.request.duration"])
	assert.True(t, names["provider.request.total"])
}

func TestProviderMetrics_NilReceiver(t *testing.T) {
	var pm *telemetry.ProviderMetrics
	assert.NotPanics(t, func() {
		pm.RecordRequest("geocode", time.Second, nil)
	})
}
