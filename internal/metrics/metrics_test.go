package metrics_test

import (
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvkv/nvkv/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()
	m.ByteWrites.Add(3)
	m.SkippedWrites.Add(2)
	assert.Equal(t, int64(3), m.ByteWrites.Value())
	assert.Equal(t, int64(2), m.SkippedWrites.Value())
}

func TestMetrics_PublishOnce(t *testing.T) {
	m := metrics.New()
	m.Publish("metricstest")
	// Publishing the same prefix again must not panic on duplicate
	// expvar registration.
	m.Publish("metricstest")

	v := expvar.Get("metricstest_byte_writes")
	require.NotNil(t, v)
	m.ByteWrites.Add(1)
	assert.Equal(t, "1", v.String())
}
