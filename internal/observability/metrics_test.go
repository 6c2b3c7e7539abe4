package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.RowsLoaded.Add(10)
	a.RowsDropped.WithLabelValues("bad_timestamp").Inc()

	assert.Equal(t, float64(10), testutil.ToFloat64(a.RowsLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(a.RowsDropped.WithLabelValues("bad_timestamp")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.RowsLoaded))
}

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	require.NoError(t, reg.Register(m.RowsLoaded))
	require.NoError(t, reg.Register(m.ArtifactsRendered))

	m.ArtifactsRendered.WithLabelValues("accidents_by_hour.png").Inc()
	n, err := testutil.GatherAndCount(reg, "accident_eda_artifacts_rendered_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
