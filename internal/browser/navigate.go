package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/flightscan/flightscan/pkg/types"
)

// lifecycleDOMContentLoaded is the page lifecycle event navigation blocks on.
const lifecycleDOMContentLoaded = "DOMContentLoaded"

// Navigate loads url and blocks until the DOM reaches content-loaded state
// or timeout elapses. A timeout here is a hard failure: it is not caught
// locally and propagates to the top-level handler. After the load the
// settle policy is applied so client-side rendering can catch up.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration, settle types.WaitPolicy) error {
	runCtx, release := s.runCtx(ctx)
	defer release()

	start := time.Now()
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		frameID, loaderID, _, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return errors.Join(ErrNavigateFailed, err)
		}
		return waitForLifecycleEvent(ctx, lifecycleDOMContentLoaded, string(frameID), string(loaderID), timeout)
	}))
	if err != nil {
		if errors.Is(err, ErrWaitTimeout) {
			return fmt.Errorf("%w after %s: %s", ErrNavigateTimeout, timeout, url)
		}
		return err
	}

	s.logger.Info("Page loaded",
		zap.String("url", url),
		zap.Duration("load_time", time.Since(start)))

	// Settle delay: crude but deliberate stand-in for event-driven
	// readiness on a site that keeps rendering after DOMContentLoaded.
	s.ApplySettle(settle)
	return nil
}

// ApplySettle sleeps for the policy's settle delay, if any.
func (s *Session) ApplySettle(policy types.WaitPolicy) {
	if d := policy.SettleDelay.Std(); d > 0 {
		time.Sleep(d)
	}
}

// AwaitSelector applies the policy's settle delay, then waits up to the
// policy timeout for the selector to appear in the DOM. Returns
// ErrWaitTimeout when the selector never shows up; callers decide whether
// that is fatal.
func (s *Session) AwaitSelector(ctx context.Context, policy types.WaitPolicy) error {
	s.ApplySettle(policy)

	if policy.Selector == "" || policy.Timeout.Std() <= 0 {
		return nil
	}

	runCtx, release := s.runCtx(ctx)
	defer release()

	waitCtx, cancel := context.WithTimeout(runCtx, policy.Timeout.Std())
	defer cancel()

	err := chromedp.Run(waitCtx, chromedp.WaitReady(policy.Selector, chromedp.ByQuery))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: selector %q not found within %s",
				ErrWaitTimeout, policy.Selector, policy.Timeout.Std())
		}
		return err
	}
	return nil
}

// waitForLifecycleEvent blocks until the named lifecycle event arrives for
// the given frame and loader, the context is cancelled, or timeout elapses.
func waitForLifecycleEvent(ctx context.Context, eventName, frameID, loaderID string, timeout time.Duration) error {
	ch := make(chan struct{})

	listenerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	chromedp.ListenTarget(listenerCtx, func(ev interface{}) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok {
			// Match both frame and loader to track the right navigation.
			if string(e.FrameID) == frameID && string(e.LoaderID) == loaderID &&
				string(e.Name) == eventName {
				cancel()
				close(ch)
			}
		}
	})

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return ErrWaitTimeout
	}
}
