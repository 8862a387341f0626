// Package popup clicks away the interstitials the target site throws at a
// fresh visitor: login nags, ad modals, app-download banners, cookie
// consent. Dismissal is strictly best-effort and idempotent; it never
// fails the run.
package popup

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/internal/browser"
	"github.com/flightscan/flightscan/internal/metrics"
)

// maxClicksPerPattern bounds runaway pages that keep respawning matches.
const maxClicksPerPattern = 10

// Dismisser scans the page for known interstitial patterns and clicks
// every visible match. Safe to call any number of times.
type Dismisser struct {
	session  *browser.Session
	patterns []Pattern
	logger   *zap.Logger
	metrics  *metrics.MetricsCollector

	visTimeout   time.Duration
	clickTimeout time.Duration
	settleDelay  time.Duration
}

// NewDismisser creates a Dismisser over the default pattern list.
// visTimeout and clickTimeout together bound one probe-and-click pass.
func NewDismisser(session *browser.Session, logger *zap.Logger, mc *metrics.MetricsCollector,
	visTimeout, clickTimeout, settleDelay time.Duration,
) *Dismisser {
	return &Dismisser{
		session:      session,
		patterns:     DefaultPatterns(),
		logger:       logger,
		metrics:      mc,
		visTimeout:   visTimeout,
		clickTimeout: clickTimeout,
		settleDelay:  settleDelay,
	}
}

// DismissAll runs every pattern in order and returns how many elements
// were clicked. Per-pattern failures are logged and discarded; DismissAll
// itself never returns an error.
func (d *Dismisser) DismissAll(ctx context.Context) int {
	total := 0
	for _, p := range d.patterns {
		total += d.dismissPattern(ctx, p)
	}
	return total
}

// dismissPattern clicks visible matches of one pattern, one at a time,
// with a settle delay after each successful click.
func (d *Dismisser) dismissPattern(ctx context.Context, p Pattern) int {
	expr, err := clickOneExpr(p)
	if err != nil {
		d.logger.Debug("Failed to build popup click expression",
			zap.String("pattern", p.Label), zap.Error(err))
		return 0
	}

	// The visibility check and the click run as one page-side pass, so
	// both budgets bound the same evaluation.
	passTimeout := d.visTimeout + d.clickTimeout

	clicks := 0
	for clicks < maxClicksPerPattern {
		clicked, err := d.session.ClickOnePending(ctx, expr, passTimeout)
		if err != nil {
			// The page may be mid-navigation or the selector engine may
			// reject the pattern; either way this popup is not our problem.
			d.logger.Debug("Popup pattern probe failed",
				zap.String("pattern", p.Label), zap.Error(err))
			d.metrics.RecordSoftError("popup")
			return clicks
		}
		if !clicked {
			return clicks
		}

		clicks++
		d.metrics.RecordPopupDismissed(p.Label)
		d.logger.Info("Dismissed popup", zap.String("pattern", p.Label))
		time.Sleep(d.settleDelay)
	}

	d.logger.Warn("Popup pattern hit click cap",
		zap.String("pattern", p.Label), zap.Int("clicks", clicks))
	return clicks
}

// clickOneExpr builds the JS that clicks the first visible, not yet
// dismissed element matching the pattern and reports whether it clicked
// anything. Clicked elements are tagged via dataset so repeated calls
// are idempotent even when a click has no visible effect.
func clickOneExpr(p Pattern) (string, error) {
	textsJSON, err := json.Marshal(p.Texts)
	if err != nil {
		return "", fmt.Errorf("failed to encode text filters: %w", err)
	}

	return fmt.Sprintf(`(function() {
	var els = Array.prototype.slice.call(document.querySelectorAll(%s));
	var texts = %s;
	if (texts && texts.length > 0) {
		els = els.filter(function(el) {
			var t = (el.textContent || '').trim();
			return texts.some(function(x) { return t.indexOf(x) !== -1; });
		});
	}
	var visible = %s;
	for (var i = 0; i < els.length; i++) {
		var el = els[i];
		if (el.dataset && el.dataset.fsDismissed) continue;
		if (!visible(el)) continue;
		if (el.dataset) el.dataset.fsDismissed = '1';
		el.click();
		return true;
	}
	return false;
})()`, strconv.Quote(p.Selector), string(textsJSON), browser.IsVisibleJS), nil
}
