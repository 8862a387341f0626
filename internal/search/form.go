// Package search drives the flight search form: locating the city inputs,
// typing the route, and firing the search. The URL already encodes the
// route and date, so the form pass is a reinforcement step and every part
// of it is best-effort.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/internal/browser"
	"github.com/flightscan/flightscan/internal/metrics"
	"github.com/flightscan/flightscan/pkg/cascade"
	"github.com/flightscan/flightscan/pkg/types"
)

const (
	fieldDeparture = "departure"
	fieldArrival   = "arrival"
)

// fieldProbeTimeout bounds each individual selector probe while resolving
// an input cascade.
const fieldProbeTimeout = 2 * time.Second

// departureCascade locates the departure city input. Placeholder text is
// the most stable hook on this page; class names churn with every deploy.
var departureCascade = cascade.New(
	cascade.Strategy{Selector: `input[placeholder*="出发"]`, Label: "出发占位符"},
	cascade.Strategy{Selector: `input[placeholder*="请输入"]`, Label: "通用占位符"},
)

// arrivalCascade locates the arrival city input.
var arrivalCascade = cascade.New(
	cascade.Strategy{Selector: `input[placeholder*="到达"]`, Label: "到达占位符"},
	cascade.Strategy{Selector: `input[placeholder*="目的"]`, Label: "目的地占位符"},
)

// Filler fills the origin and destination city inputs.
type Filler struct {
	session *browser.Session
	logger  *zap.Logger
	metrics *metrics.MetricsCollector

	// confirmDelay lets the autocomplete dropdown appear before Enter
	// commits the selection.
	confirmDelay time.Duration
}

// NewFiller creates a form filler.
func NewFiller(session *browser.Session, logger *zap.Logger, mc *metrics.MetricsCollector,
	confirmDelay time.Duration,
) *Filler {
	return &Filler{
		session:      session,
		logger:       logger,
		metrics:      mc,
		confirmDelay: confirmDelay,
	}
}

// FillRoute types the route's cities into the search form. Missing inputs
// are skipped and typing failures are absorbed; the caller proceeds to
// submit regardless.
func (f *Filler) FillRoute(ctx context.Context, route types.Route) {
	f.fillField(ctx, fieldDeparture, departureCascade, route.OriginCity)
	f.fillField(ctx, fieldArrival, arrivalCascade, route.DestinationCity)
}

func (f *Filler) fillField(ctx context.Context, field string, c cascade.Cascade, value string) {
	strategy, ok := c.Resolve(func(s cascade.Strategy) (bool, error) {
		return f.session.FirstVisible(ctx, s.Selector, fieldProbeTimeout)
	})
	if !ok {
		f.logger.Info("Search form input not found, skipping",
			zap.String("field", field))
		f.metrics.RecordFormFill(field, metrics.FillSkipped)
		return
	}

	if err := f.typeInto(ctx, strategy.Selector, value); err != nil {
		f.logger.Warn("Failed to fill search form input",
			zap.String("field", field),
			zap.String("strategy", strategy.Label),
			zap.Error(err))
		f.metrics.RecordFormFill(field, metrics.FillError)
		f.metrics.RecordSoftError("form_fill")
		return
	}

	f.logger.Info("Filled search form input",
		zap.String("field", field),
		zap.String("strategy", strategy.Label),
		zap.String("value", value))
	f.metrics.RecordFormFill(field, metrics.FillFilled)
}

// typeInto focuses the input, replaces its content, and commits the
// autocomplete suggestion with Enter.
func (f *Filler) typeInto(ctx context.Context, selector, value string) error {
	if err := f.session.Click(ctx, selector, fieldProbeTimeout); err != nil {
		return err
	}
	if err := f.session.ClearAndType(ctx, selector, value); err != nil {
		return err
	}
	time.Sleep(f.confirmDelay)
	return f.session.PressEnter(ctx)
}
