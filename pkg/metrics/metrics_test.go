package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("clinic")

	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "registering twice must fail")
}

func TestMetrics_ObserveQuery(t *testing.T) {
	m := New("clinic")

	m.ObserveQuery("list_doctors", time.Now(), nil)
	m.ObserveQuery("list_doctors", time.Now(), errors.New("db down"))
	m.ObserveQuery("list_doctors", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("list_doctors", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("list_doctors", "error")))
}

func TestMetrics_ObserveQueryNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveQuery("noop", time.Now(), nil) })
}
