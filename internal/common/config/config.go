// Package config loads the flight-search configuration: built-in defaults
// matching the known Ctrip setup, optionally overlaid by a strict YAML
// file.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/internal/common/configtypes"
	"github.com/flightscan/flightscan/internal/common/yamlutil"
	"github.com/flightscan/flightscan/pkg/types"
)

// Chrome 120 on Windows desktop, as the target site expects.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Default returns the built-in configuration. The CLI runs on these values
// when no config file is given, so they encode the complete known-good
// setup for the fixed HAK → BJS query.
func Default() *configtypes.Config {
	return &configtypes.Config{
		Session: configtypes.SessionConfig{
			Headless:       false,
			SlowMo:         types.Duration(500 * time.Millisecond),
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			Locale:         "zh-CN",
			Timezone:       "Asia/Shanghai",
			UserAgent:      defaultUserAgent,
		},
		Navigation: configtypes.NavigationConfig{
			InternationalURL: "https://flights.ctrip.com/international/search/oneway-sha-bjs?depdate=%s&cabin=%s",
			DomesticURL:      "https://flights.ctrip.com/online/list/oneway-hak-bjs?depdate=%s&cabin=%s",
			Timeout:          types.Duration(60 * time.Second),
		},
		Search: configtypes.SearchConfig{
			OriginCity:      "海口",
			OriginCode:      "HAK",
			DestinationCity: "北京",
			DestinationCode: "BJS",
			Cabin:           "y_s",
		},
		Waits: configtypes.WaitsConfig{
			PageSettle: types.WaitPolicy{
				SettleDelay: types.Duration(3 * time.Second),
			},
			Results: types.WaitPolicy{
				Selector:    `[class*="flight"], [class*="Flight"], [class*="list-item"]`,
				Timeout:     types.Duration(30 * time.Second),
				SettleDelay: types.Duration(5 * time.Second),
			},
			FieldConfirm:     types.Duration(1 * time.Second),
			PopupVisibility:  types.Duration(1 * time.Second),
			PopupClick:       types.Duration(2 * time.Second),
			PopupSettle:      types.Duration(500 * time.Millisecond),
			SubmitVisibility: types.Duration(2 * time.Second),
		},
		Report: configtypes.ReportConfig{
			ObserveHold:    types.Duration(30 * time.Second),
			ErrorHold:      types.Duration(60 * time.Second),
			ScreenshotPath: "error_screenshot.png",
		},
		Log: configtypes.LogConfig{
			Level: configtypes.LogLevelInfo,
			Console: configtypes.ConsoleLogConfig{
				Enabled: true,
				Format:  configtypes.LogFormatConsole,
			},
		},
		Metrics: configtypes.MetricsConfig{
			Namespace: "flightscan",
		},
	}
}

// Load returns the default configuration overlaid with the YAML file at
// path. An empty path returns the defaults unchanged; a present but
// unreadable or invalid file is an error.
func Load(path string, logger *zap.Logger) (*configtypes.Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		logger.Info("Configuration loaded", zap.String("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
