package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/internal/browser"
	"github.com/flightscan/flightscan/internal/common/config"
	"github.com/flightscan/flightscan/internal/common/configtypes"
	"github.com/flightscan/flightscan/internal/common/logger"
	"github.com/flightscan/flightscan/internal/common/runid"
	"github.com/flightscan/flightscan/internal/extract"
	"github.com/flightscan/flightscan/internal/metrics"
	"github.com/flightscan/flightscan/internal/popup"
	"github.com/flightscan/flightscan/internal/report"
	"github.com/flightscan/flightscan/internal/search"
	"github.com/flightscan/flightscan/pkg/types"
)

func main() {
	configPath := flag.String("c", "", "path to configuration file (built-in defaults when empty)")
	flag.Parse()

	initialLogger, err := logger.NewDefault()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath, initialLogger)
		if err != nil {
			initialLogger.Fatal("Failed to load configuration",
				zap.String("config_path", *configPath), zap.Error(err))
		}
	}

	runLogger, err := logger.New(cfg.Log)
	if err != nil {
		initialLogger.Fatal("Failed to configure logger", zap.Error(err))
	}
	defer runLogger.Sync()

	runLogger = runLogger.With(zap.String("run_id", runid.New()))

	rep := report.New(os.Stdout)
	if err := run(context.Background(), cfg, runLogger, rep); err != nil {
		os.Exit(1)
	}
}

// run executes one full search: browser bootstrap, the page pipeline, and
// guaranteed teardown. Pipeline errors take the postmortem path (console
// diagnostics, screenshot, debug hold) before teardown; the browser is
// closed on every exit path.
func run(ctx context.Context, cfg *configtypes.Config, zlog *zap.Logger, rep *report.Reporter) error {
	start := time.Now()

	mc := metrics.NewMetricsCollector(cfg.Metrics.Namespace, zlog)
	date := types.Tomorrow(time.Now())
	route := types.Route{
		OriginCity:      cfg.Search.OriginCity,
		OriginCode:      cfg.Search.OriginCode,
		DestinationCity: cfg.Search.DestinationCity,
		DestinationCode: cfg.Search.DestinationCode,
		Cabin:           cfg.Search.Cabin,
	}
	rep.Banner(route)
	rep.QueryDate(date)

	rep.Step("🚀 启动浏览器...")
	session, err := browser.NewSession(browser.NewConfigFromSession(cfg.Session), zlog)
	if err != nil {
		zlog.Error("Browser launch failed", zap.Error(err))
		rep.Failure(err)
		return err
	}
	defer func() {
		session.Terminate()
		rep.Done()
	}()

	zlog.Info("Browser ready",
		zap.String("version", session.BrowserVersion()),
		zap.String("date", date.Display()))

	if err := pipeline(ctx, cfg, zlog, rep, mc, session, route, date); err != nil {
		zlog.Error("Run failed", zap.Error(err))
		rep.Failure(err)

		if shotErr := session.Screenshot(ctx, cfg.Report.ScreenshotPath); shotErr != nil {
			zlog.Warn("Postmortem screenshot failed", zap.Error(shotErr))
		} else {
			rep.ScreenshotSaved(cfg.Report.ScreenshotPath)
		}

		rep.ErrorHold(cfg.Report.ErrorHold.Std())
		time.Sleep(cfg.Report.ErrorHold.Std())

		mc.SetRunDuration(time.Since(start).Seconds())
		mc.LogSummary()
		return err
	}

	mc.SetRunDuration(time.Since(start).Seconds())
	mc.LogSummary()
	return nil
}

// pipeline is the strictly sequential page script: navigate twice, clear
// popups at every stop, reinforce the search form, then extract and
// report. Only navigation and snapshot failures are hard; everything else
// degrades in place.
func pipeline(ctx context.Context, cfg *configtypes.Config, zlog *zap.Logger, rep *report.Reporter,
	mc *metrics.MetricsCollector, session *browser.Session, route types.Route, date types.TripDate,
) error {
	dismisser := popup.NewDismisser(session, zlog, mc,
		cfg.Waits.PopupVisibility.Std(), cfg.Waits.PopupClick.Std(), cfg.Waits.PopupSettle.Std())
	filler := search.NewFiller(session, zlog, mc, cfg.Waits.FieldConfirm.Std())
	submitter := search.NewSubmitter(session, zlog, mc, cfg.Waits.SubmitVisibility.Std())
	extractor := extract.NewExtractor(session, zlog, mc, cfg.Waits.Results)

	navigate := func(urlTemplate string) error {
		url := fmt.Sprintf(urlTemplate, date.Compact(), route.Cabin)
		err := session.Navigate(ctx, url, cfg.Navigation.Timeout.Std(), cfg.Waits.PageSettle)
		if err != nil {
			mc.RecordNavigationError()
			return err
		}
		mc.RecordNavigationSuccess()
		return nil
	}

	rep.Step("🌐 导航到携程网...")
	if err := navigate(cfg.Navigation.InternationalURL); err != nil {
		return err
	}

	rep.Step("🔍 检查并处理弹窗...")
	dismisser.DismissAll(ctx)

	rep.Step("✈️ 导航到国内机票搜索页面...")
	if err := navigate(cfg.Navigation.DomesticURL); err != nil {
		return err
	}
	dismisser.DismissAll(ctx)

	rep.Step("📝 填写搜索信息...")
	filler.FillRoute(ctx, route)

	rep.Step("🔎 点击搜索按钮...")
	submitter.Submit(ctx)

	rep.Step("⏳ 等待航班结果加载...")
	extractor.AwaitResults(ctx)
	dismisser.DismissAll(ctx)

	rep.Step("📊 提取航班信息...")
	records, err := extractor.Extract(ctx)
	if err != nil {
		return err
	}
	zlog.Info("Extraction finished", zap.Int("records", len(records)))

	rep.Summary(route, date, records)

	rep.ObserveHold(cfg.Report.ObserveHold.Std())
	time.Sleep(cfg.Report.ObserveHold.Std())
	return nil
}
