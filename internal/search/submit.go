package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/internal/browser"
	"github.com/flightscan/flightscan/internal/metrics"
)

// submitTexts are the button captions the site has used for the search
// action. Matched by text containment since CSS cannot express it.
var submitTexts = []string{"搜索", "查询"}

// submitSelectors holds the CSS-addressable submit candidates tried after
// the text match.
var submitSelectors = []string{
	`.search-btn`,
	`[class*="search"]`,
	`button[type="submit"]`,
}

// Submitter clicks the search button.
type Submitter struct {
	session *browser.Session
	logger  *zap.Logger
	metrics *metrics.MetricsCollector

	visTimeout time.Duration
}

// NewSubmitter creates a Submitter.
func NewSubmitter(session *browser.Session, logger *zap.Logger, mc *metrics.MetricsCollector,
	visTimeout time.Duration,
) *Submitter {
	return &Submitter{
		session:    session,
		logger:     logger,
		metrics:    mc,
		visTimeout: visTimeout,
	}
}

// Submit tries each submit-button candidate in order and clicks the first
// visible one. Reports whether anything was clicked; finding no button is
// not an error since the URL query may already have triggered the search.
func (s *Submitter) Submit(ctx context.Context) bool {
	clicked, err := s.session.ClickOnePending(ctx, submitByTextExpr(), s.visTimeout)
	if err != nil {
		s.logger.Debug("Text-matched submit probe failed", zap.Error(err))
		s.metrics.RecordSoftError("submit")
	} else if clicked {
		s.logger.Info("Clicked search button", zap.String("strategy", "按钮文本"))
		return true
	}

	for _, selector := range submitSelectors {
		visible, err := s.session.FirstVisible(ctx, selector, s.visTimeout)
		if err != nil || !visible {
			continue
		}
		if err := s.session.Click(ctx, selector, s.visTimeout); err != nil {
			s.logger.Debug("Submit click failed",
				zap.String("selector", selector), zap.Error(err))
			s.metrics.RecordSoftError("submit")
			continue
		}
		s.logger.Info("Clicked search button", zap.String("strategy", selector))
		return true
	}

	s.logger.Info("No search button found, relying on URL query")
	return false
}

// submitByTextExpr clicks the first visible button whose caption contains
// one of the known search texts.
func submitByTextExpr() string {
	textsJSON, _ := json.Marshal(submitTexts)
	return fmt.Sprintf(`(function() {
	var texts = %s;
	var els = Array.prototype.slice.call(document.querySelectorAll('button'));
	var visible = %s;
	for (var i = 0; i < els.length; i++) {
		var el = els[i];
		var t = (el.textContent || '').trim();
		if (!texts.some(function(x) { return t.indexOf(x) !== -1; })) continue;
		if (!visible(el)) continue;
		el.click();
		return true;
	}
	return false;
})()`, string(textsJSON), browser.IsVisibleJS)
}
