package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMetrics(t *testing.T) (*PrometheusMetrics, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	return NewPrometheusMetricsWithRegistry("test", registry, zap.NewNop()), registry
}

func TestPopupCounter(t *testing.T) {
	pm, _ := newTestMetrics(t)

	pm.RecordPopupDismissed("关闭按钮")
	pm.RecordPopupDismissed("关闭按钮")
	pm.RecordPopupDismissed("Cookie提示")

	assert.Equal(t, 2.0, testutil.ToFloat64(pm.popupsDismissed.WithLabelValues("关闭按钮")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.popupsDismissed.WithLabelValues("Cookie提示")))
}

func TestRecordCounters(t *testing.T) {
	pm, _ := newTestMetrics(t)

	pm.RecordNavigation("success")
	pm.RecordNavigation("success")
	pm.RecordFlightRecords("structured", 3)
	pm.RecordFormFill("departure", "filled")
	pm.RecordSoftError("submit")
	pm.SetRunDuration(42.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(pm.navigationsTotal.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pm.recordsTotal.WithLabelValues("structured")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.formFillsTotal.WithLabelValues("departure", "filled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.softErrorsTotal.WithLabelValues("submit")))
	assert.Equal(t, 42.5, testutil.ToFloat64(pm.runDuration))
}

func TestGather(t *testing.T) {
	pm, _ := newTestMetrics(t)
	pm.RecordNavigation("success")

	families, err := pm.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_probe_navigations_total")
}

func TestCollectorLogSummaryDoesNotPanic(t *testing.T) {
	mc := NewMetricsCollector("test", zap.NewNop())
	mc.RecordNavigationSuccess()
	mc.RecordPopupDismissed("关闭按钮")
	mc.RecordFlightRecords(ModeStructured, 0) // zero records are not counted
	mc.SetRunDuration(1.5)
	mc.LogSummary()
}
