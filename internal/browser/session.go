// Package browser owns the single Chrome session of a probe run: launch,
// emulation setup, navigation with lifecycle waits, DOM reads, screenshots
// and teardown. It is the only package that talks to chromedp.
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Session is one visible Chrome window with a single page. All pipeline
// steps run against it sequentially; it is not safe for concurrent use and
// never needs to be.
type Session struct {
	ctx             context.Context
	cancel          context.CancelFunc
	allocatorCtx    context.Context
	allocatorCancel context.CancelFunc
	createdAt       time.Time
	logger          *zap.Logger
	slowMo          time.Duration
	browserVersion  string
}

// NewSession launches Chrome and prepares a ready-to-navigate page with
// the configured viewport, user agent, locale and timezone.
func NewSession(config *Config, logger *zap.Logger) (*Session, error) {
	s := &Session{
		createdAt: time.Now().UTC(),
		logger:    logger,
		slowMo:    config.SlowMo,
	}

	if err := s.createBrowser(config); err != nil {
		s.Terminate()
		return nil, fmt.Errorf("failed to launch browser session: %w", err)
	}

	s.logger.Info("Browser session created",
		zap.String("browser", s.browserVersion),
		zap.Bool("headless", config.Headless),
		zap.Time("created_at", s.createdAt))

	return s, nil
}

// createBrowser starts the Chrome process and applies emulation overrides.
func (s *Session) createBrowser(config *Config) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("lang", config.Locale),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.WindowSize(config.ViewportWidth, config.ViewportHeight),
	)

	s.allocatorCtx, s.allocatorCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	s.ctx, s.cancel = chromedp.NewContext(s.allocatorCtx)

	// Start the browser; this does not navigate anywhere yet.
	if err := chromedp.Run(s.ctx,
		emulation.SetUserAgentOverride(config.UserAgent),
		emulation.SetDeviceMetricsOverride(
			int64(config.ViewportWidth),
			int64(config.ViewportHeight),
			1.0,
			false,
		),
		emulation.SetTimezoneOverride(config.Timezone),
		emulation.SetLocaleOverride().WithLocale(config.Locale),
		enableLifecycle(),
	); err != nil {
		return fmt.Errorf("failed to start Chrome: %w", err)
	}

	// Capture browser version for diagnostics.
	if err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, product, _, _, _, err := cdpbrowser.GetVersion().Do(ctx)
		if err != nil {
			return err
		}
		s.browserVersion = product
		return nil
	})); err != nil {
		s.logger.Warn("Failed to capture browser version", zap.Error(err))
	}

	return nil
}

// enableLifecycle enables page lifecycle events for navigation waits.
func enableLifecycle() chromedp.ActionFunc {
	return func(ctx context.Context) error {
		if err := page.Enable().Do(ctx); err != nil {
			return err
		}
		return page.SetLifecycleEventsEnabled(true).Do(ctx)
	}
}

// Context returns the page context for running chromedp actions.
func (s *Session) Context() context.Context {
	return s.ctx
}

// BrowserVersion returns the product string, e.g. "Chrome/120.0.6099.109".
func (s *Session) BrowserVersion() string {
	return s.browserVersion
}

// Age returns how long the session has been running.
func (s *Session) Age() time.Duration {
	return time.Now().UTC().Sub(s.createdAt)
}

// pace applies the configured slow-mo pause after an interaction.
func (s *Session) pace() {
	if s.slowMo > 0 {
		time.Sleep(s.slowMo)
	}
}

// Screenshot captures the current page and writes it to path.
func (s *Session) Screenshot(ctx context.Context, path string) error {
	runCtx, release := s.runCtx(ctx)
	defer release()

	var buf []byte
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, err := page.CaptureScreenshot().Do(ctx)
		if err != nil {
			return err
		}
		buf = data
		return nil
	}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	s.logger.Info("Screenshot saved", zap.String("path", path), zap.Int("size_bytes", len(buf)))
	return nil
}

// Terminate cleanly shuts down the browser. Safe to call more than once
// and on partially constructed sessions.
func (s *Session) Terminate() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.allocatorCancel != nil {
		s.allocatorCancel()
	}
}

// runCtx derives a chromedp-attached context that is also cancelled when
// the caller's ctx is done. The returned release func must be deferred.
func (s *Session) runCtx(ctx context.Context) (context.Context, func()) {
	merged, cancel := context.WithCancel(s.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
