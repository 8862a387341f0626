package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
)

// PrometheusMetrics holds the run-local Prometheus instruments. The probe
// is a one-shot process, so instruments live in a private registry and are
// gathered once at teardown instead of being scraped.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	navigationsTotal *prometheus.CounterVec
	popupsDismissed  *prometheus.CounterVec
	formFillsTotal   *prometheus.CounterVec
	recordsTotal     *prometheus.CounterVec
	softErrorsTotal  *prometheus.CounterVec
	runDuration      prometheus.Gauge

	logger *zap.Logger
}

// NewPrometheusMetrics creates the instruments in a fresh registry.
func NewPrometheusMetrics(namespace string, logger *zap.Logger) *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	return NewPrometheusMetricsWithRegistry(namespace, registry, logger)
}

// NewPrometheusMetricsWithRegistry creates the instruments in the given
// registry. Used by tests to inspect collected values.
func NewPrometheusMetricsWithRegistry(namespace string, registry *prometheus.Registry, logger *zap.Logger) *PrometheusMetrics {
	pm := &PrometheusMetrics{
		registry: registry,
		logger:   logger,
	}

	pm.navigationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "navigations_total",
		Help:      "Page navigations performed",
	}, []string{"status"}) // status: success, error

	pm.popupsDismissed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "popups_dismissed_total",
		Help:      "Interstitial elements clicked away, by pattern label",
	}, []string{"pattern"})

	pm.formFillsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "form_fills_total",
		Help:      "Search form interactions",
	}, []string{"field", "status"}) // status: filled, skipped, error

	pm.recordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "flight_records_total",
		Help:      "Flight records extracted, by extraction mode",
	}, []string{"mode"}) // mode: structured, fallback

	pm.softErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "soft_errors_total",
		Help:      "Non-fatal step failures that were logged and skipped",
	}, []string{"step"})

	pm.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of the whole run",
	})

	registry.MustRegister(
		pm.navigationsTotal,
		pm.popupsDismissed,
		pm.formFillsTotal,
		pm.recordsTotal,
		pm.softErrorsTotal,
		pm.runDuration,
	)

	return pm
}

// RecordNavigation counts one navigation with its outcome.
func (pm *PrometheusMetrics) RecordNavigation(status string) {
	pm.navigationsTotal.WithLabelValues(status).Inc()
}

// RecordPopupDismissed counts one dismissed popup for a pattern label.
func (pm *PrometheusMetrics) RecordPopupDismissed(pattern string) {
	pm.popupsDismissed.WithLabelValues(pattern).Inc()
}

// RecordFormFill counts one form field interaction.
func (pm *PrometheusMetrics) RecordFormFill(field, status string) {
	pm.formFillsTotal.WithLabelValues(field, status).Inc()
}

// RecordFlightRecords counts extracted records for one mode.
func (pm *PrometheusMetrics) RecordFlightRecords(mode string, n int) {
	pm.recordsTotal.WithLabelValues(mode).Add(float64(n))
}

// RecordSoftError counts one swallowed step failure.
func (pm *PrometheusMetrics) RecordSoftError(step string) {
	pm.softErrorsTotal.WithLabelValues(step).Inc()
}

// SetRunDuration records the total run duration.
func (pm *PrometheusMetrics) SetRunDuration(seconds float64) {
	pm.runDuration.Set(seconds)
}

// Gather returns the collected metric families.
func (pm *PrometheusMetrics) Gather() ([]*dto.MetricFamily, error) {
	return pm.registry.Gather()
}
