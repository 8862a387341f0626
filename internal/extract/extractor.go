package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/internal/browser"
	"github.com/flightscan/flightscan/internal/metrics"
	"github.com/flightscan/flightscan/pkg/types"
)

// Extractor runs the two-phase extraction over a live session: structured
// card parsing over an HTML snapshot, then the text-scan fallback when no
// cards survive.
type Extractor struct {
	session *browser.Session
	logger  *zap.Logger
	metrics *metrics.MetricsCollector

	results types.WaitPolicy
}

// NewExtractor creates an Extractor. results is the readiness policy for
// the flight-list region.
func NewExtractor(session *browser.Session, logger *zap.Logger, mc *metrics.MetricsCollector,
	results types.WaitPolicy,
) *Extractor {
	return &Extractor{
		session: session,
		logger:  logger,
		metrics: mc,
		results: results,
	}
}

// AwaitResults waits for the flight-list region per the results policy. A
// timeout is logged and absorbed: extraction proceeds against whatever the
// page currently shows.
func (e *Extractor) AwaitResults(ctx context.Context) {
	if err := e.session.AwaitSelector(ctx, e.results); err != nil {
		e.logger.Warn("Flight list not detected, extracting anyway", zap.Error(err))
		e.metrics.RecordSoftError("results_wait")
	}
}

// Extract snapshots the page and parses flight records from it. The
// returned records may be empty; errors on the snapshot itself propagate
// since there is nothing to extract from without one.
func (e *Extractor) Extract(ctx context.Context) ([]types.FlightRecord, error) {
	html, err := e.session.RenderedHTML(ctx)
	if err != nil {
		return nil, err
	}

	records, err := FromHTML(html, e.logger)
	if err != nil {
		e.logger.Warn("Structured extraction failed", zap.Error(err))
		e.metrics.RecordSoftError("extract_structured")
	}
	if len(records) > 0 {
		e.metrics.RecordFlightRecords(metrics.ModeStructured, len(records))
		return records, nil
	}

	e.logger.Info("Structured extraction empty, falling back to text scan")
	text, err := e.session.BodyText(ctx)
	if err != nil {
		e.logger.Warn("Body text read failed", zap.Error(err))
		e.metrics.RecordSoftError("extract_fallback")
		return nil, nil
	}

	records = FromText(text, e.logger)
	e.metrics.RecordFlightRecords(metrics.ModeFallback, len(records))
	return records, nil
}
