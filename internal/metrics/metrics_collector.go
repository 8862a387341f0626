// Package metrics centralizes run counters for the probe: navigations,
// dismissed popups, form interactions, extracted records and swallowed
// soft errors. Counters live in a run-local Prometheus registry and are
// summarized into the log at teardown.
package metrics

import (
	"go.uber.org/zap"
)

// Navigation outcome labels.
const (
	NavigationSuccess = "success"
	NavigationError   = "error"
)

// Form fill outcome labels.
const (
	FillFilled  = "filled"
	FillSkipped = "skipped"
	FillError   = "error"
)

// Extraction mode labels.
const (
	ModeStructured = "structured"
	ModeFallback   = "fallback"
)

// MetricsCollector centralizes all metrics recording for a probe run.
type MetricsCollector struct {
	prometheus *PrometheusMetrics
	logger     *zap.Logger
}

// NewMetricsCollector creates a new MetricsCollector instance.
func NewMetricsCollector(namespace string, logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		prometheus: NewPrometheusMetrics(namespace, logger),
		logger:     logger,
	}
}

// RecordNavigationSuccess records a completed page load.
func (mc *MetricsCollector) RecordNavigationSuccess() {
	mc.prometheus.RecordNavigation(NavigationSuccess)
}

// RecordNavigationError records a failed page load.
func (mc *MetricsCollector) RecordNavigationError() {
	mc.prometheus.RecordNavigation(NavigationError)
}

// RecordPopupDismissed records one clicked-away interstitial.
func (mc *MetricsCollector) RecordPopupDismissed(pattern string) {
	mc.prometheus.RecordPopupDismissed(pattern)
}

// RecordFormFill records one form field interaction outcome.
func (mc *MetricsCollector) RecordFormFill(field, status string) {
	mc.prometheus.RecordFormFill(field, status)
}

// RecordFlightRecords records how many records an extraction mode yielded.
func (mc *MetricsCollector) RecordFlightRecords(mode string, n int) {
	if n > 0 {
		mc.prometheus.RecordFlightRecords(mode, n)
	}
}

// RecordSoftError records a non-fatal step failure.
func (mc *MetricsCollector) RecordSoftError(step string) {
	mc.prometheus.RecordSoftError(step)
}

// SetRunDuration records the total run duration in seconds.
func (mc *MetricsCollector) SetRunDuration(seconds float64) {
	mc.prometheus.SetRunDuration(seconds)
}

// LogSummary gathers the registry and writes one log line per non-zero
// metric, giving the run a closing accounting.
func (mc *MetricsCollector) LogSummary() {
	families, err := mc.prometheus.Gather()
	if err != nil {
		mc.logger.Warn("Failed to gather run metrics", zap.Error(err))
		return
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			default:
				continue
			}
			if value == 0 {
				continue
			}

			fields := []zap.Field{zap.Float64("value", value)}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			mc.logger.Info("Run metric: "+family.GetName(), fields...)
		}
	}
}
