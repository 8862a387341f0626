package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// IsVisibleJS is the shared element visibility predicate. Bounding-rect
// based: offsetParent is null for position:fixed elements, which is
// exactly what popups tend to be.
const IsVisibleJS = `function(el) {
	if (!el) return false;
	var r = el.getBoundingClientRect();
	if (r.width <= 0 || r.height <= 0) return false;
	return getComputedStyle(el).visibility !== 'hidden';
}`

// RenderedHTML returns the full rendered document HTML.
func (s *Session) RenderedHTML(ctx context.Context) (string, error) {
	runCtx, release := s.runCtx(ctx)
	defer release()

	var html string
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			root, err := dom.GetDocument().Do(ctx)
			if err != nil {
				lastErr = err
				time.Sleep(300 * time.Millisecond)
				continue
			}
			out, err := dom.GetOuterHTML().WithNodeID(root.NodeID).Do(ctx)
			if err != nil {
				lastErr = err
				time.Sleep(300 * time.Millisecond)
				continue
			}
			html = out
			return nil
		}
		return fmt.Errorf("%w after 3 attempts: %v", ErrExtractHTML, lastErr)
	}))
	return html, err
}

// BodyText returns the visible text of the page body.
func (s *Session) BodyText(ctx context.Context) (string, error) {
	runCtx, release := s.runCtx(ctx)
	defer release()

	var text string
	err := chromedp.Run(runCtx,
		chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &text))
	return text, err
}

// FirstVisible reports whether the first element matching selector exists
// and is visible, checking for up to timeout.
func (s *Session) FirstVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	expr := fmt.Sprintf(`(function() {
		var el = document.querySelector(%s);
		return (%s)(el);
	})()`, strconv.Quote(selector), IsVisibleJS)
	return s.evalBool(ctx, expr, timeout)
}

// Click clicks the first element matching selector, waiting up to timeout
// for it to become visible.
func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) error {
	runCtx, release := s.runCtx(ctx)
	defer release()

	clickCtx, cancel := context.WithTimeout(runCtx, timeout)
	defer cancel()

	if err := chromedp.Run(clickCtx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return err
	}
	s.pace()
	return nil
}

// ClearAndType empties the first input matching selector and types value
// into it, firing key events so autocomplete widgets react.
func (s *Session) ClearAndType(ctx context.Context, selector, value string) error {
	runCtx, release := s.runCtx(ctx)
	defer release()

	err := chromedp.Run(runCtx,
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		return err
	}
	s.pace()
	return nil
}

// PressEnter sends an Enter keypress to the focused element.
func (s *Session) PressEnter(ctx context.Context) error {
	runCtx, release := s.runCtx(ctx)
	defer release()

	if err := chromedp.Run(runCtx, chromedp.KeyEvent(kb.Enter)); err != nil {
		return err
	}
	s.pace()
	return nil
}

// ClickOnePending evaluates a click-one expression: JS that clicks the
// first eligible element and returns whether it clicked anything. Used by
// the popup dismisser and text-matched submit buttons, which cannot be
// addressed by CSS alone.
func (s *Session) ClickOnePending(ctx context.Context, expr string, timeout time.Duration) (bool, error) {
	clicked, err := s.evalBool(ctx, expr, timeout)
	if err != nil {
		return false, err
	}
	if clicked {
		s.pace()
	}
	return clicked, nil
}

// evalBool evaluates a boolean JS expression with a deadline.
func (s *Session) evalBool(ctx context.Context, expr string, timeout time.Duration) (bool, error) {
	runCtx, release := s.runCtx(ctx)
	defer release()

	evalCtx, cancel := context.WithTimeout(runCtx, timeout)
	defer cancel()

	var result bool
	if err := chromedp.Run(evalCtx, chromedp.Evaluate(expr, &result)); err != nil {
		return false, err
	}
	return result, nil
}
