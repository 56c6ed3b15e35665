package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"urlcheck/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewMeterProvider_ExportsToRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	counter, err := mp.Meter(metrics.MeterName).Int64Counter("urlcheck.test.events")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "urlcheck_test_events") {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			require.InDelta(t, 3, mf.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
	require.True(t, found, "counter should be exported to the registry")
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	hist, err := mp.Meter(metrics.MeterName).Float64Histogram("urlcheck.test.duration")
	require.NoError(t, err)
	hist.Record(context.Background(), 0.2)

	path := filepath.Join(t.TempDir(), "urlcheck.prom")
	require.NoError(t, metrics.WriteTextfile(path, reg))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "urlcheck_test_duration")
}

func TestWriteTextfile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "urlcheck.prom")
	require.Error(t, metrics.WriteTextfile(path, prometheus.NewRegistry()))
}
