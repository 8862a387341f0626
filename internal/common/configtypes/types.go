// Package configtypes defines the YAML configuration schema of the flight
// probe. Defaults live in internal/common/config; every knob here exists
// so pacing, selectors-adjacent timeouts and output can be tuned without
// touching pipeline code.
package configtypes

import (
	"fmt"
	"strings"

	"github.com/flightscan/flightscan/pkg/types"
)

// Log level constants
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Log format constants
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
	LogFormatText    = "text"
)

// Config is the root configuration for the flight-search CLI.
type Config struct {
	Session    SessionConfig    `yaml:"session"`
	Navigation NavigationConfig `yaml:"navigation"`
	Search     SearchConfig     `yaml:"search"`
	Waits      WaitsConfig      `yaml:"waits"`
	Report     ReportConfig     `yaml:"report"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// SessionConfig describes the browser context: a headed window sized and
// localized to look like a mainland-China desktop visitor.
type SessionConfig struct {
	Headless       bool           `yaml:"headless"`
	SlowMo         types.Duration `yaml:"slow_mo"`
	ViewportWidth  int            `yaml:"viewport_width"`
	ViewportHeight int            `yaml:"viewport_height"`
	Locale         string         `yaml:"locale"`
	Timezone       string         `yaml:"timezone"`
	UserAgent      string         `yaml:"user_agent"`
}

// NavigationConfig holds the two search URL templates (each takes the
// compact YYYYMMDD date and the cabin flag, in that order) and the hard
// page-load timeout.
type NavigationConfig struct {
	InternationalURL string         `yaml:"international_url"`
	DomesticURL      string         `yaml:"domestic_url"`
	Timeout          types.Duration `yaml:"timeout"`
}

// SearchConfig fixes the one-way route typed into the search form.
type SearchConfig struct {
	OriginCity      string `yaml:"origin_city"`
	OriginCode      string `yaml:"origin_code"`
	DestinationCity string `yaml:"destination_city"`
	DestinationCode string `yaml:"destination_code"`
	Cabin           string `yaml:"cabin"`
}

// WaitsConfig names every pacing decision in the pipeline.
type WaitsConfig struct {
	// PageSettle runs after each navigation: fixed delay for client-side
	// rendering to catch up.
	PageSettle types.WaitPolicy `yaml:"page_settle"`
	// Results runs before extraction: fixed delay, then a soft wait for
	// the flight-list selector.
	Results types.WaitPolicy `yaml:"results"`
	// FieldConfirm is the pause between filling a city input and pressing
	// Enter to take the autocomplete suggestion.
	FieldConfirm types.Duration `yaml:"field_confirm"`
	// PopupVisibility / PopupClick / PopupSettle pace the popup dismisser.
	PopupVisibility types.Duration `yaml:"popup_visibility"`
	PopupClick      types.Duration `yaml:"popup_click"`
	PopupSettle     types.Duration `yaml:"popup_settle"`
	// SubmitVisibility bounds the visibility check per submit candidate.
	SubmitVisibility types.Duration `yaml:"submit_visibility"`
}

// ReportConfig controls the observation holds and the postmortem artifact.
type ReportConfig struct {
	ObserveHold    types.Duration `yaml:"observe_hold"`
	ErrorHold      types.Duration `yaml:"error_hold"`
	ScreenshotPath string         `yaml:"screenshot_path"`
}

// MetricsConfig names the run-local Prometheus namespace.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

type LogConfig struct {
	Level   string           `yaml:"level"`
	Console ConsoleLogConfig `yaml:"console"`
	File    FileLogConfig    `yaml:"file"`
}

type ConsoleLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
	Level   string `yaml:"level,omitempty"`
}

type FileLogConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Path     string         `yaml:"path"`
	Format   string         `yaml:"format"`
	Level    string         `yaml:"level,omitempty"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"`
	MaxAge     int  `yaml:"max_age"`
	MaxBackups int  `yaml:"max_backups"`
	Compress   bool `yaml:"compress"`
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Navigation.Validate(); err != nil {
		return fmt.Errorf("navigation: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Report.Validate(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Validate checks the session configuration.
func (c *SessionConfig) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.Locale == "" {
		return fmt.Errorf("locale cannot be empty")
	}
	if c.Timezone == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	return nil
}

// Validate checks the navigation configuration. Both URL templates must
// contain exactly two %s verbs: compact date, then cabin flag.
func (c *NavigationConfig) Validate() error {
	if c.Timeout.Std() <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	for name, tmpl := range map[string]string{
		"international_url": c.InternationalURL,
		"domestic_url":      c.DomesticURL,
	} {
		if strings.Count(tmpl, "%s") != 2 {
			return fmt.Errorf("%s must contain exactly two %%s placeholders (date, cabin)", name)
		}
	}
	return nil
}

// Validate checks the search route.
func (c *SearchConfig) Validate() error {
	if c.OriginCity == "" || c.DestinationCity == "" {
		return fmt.Errorf("origin and destination cities cannot be empty")
	}
	if c.OriginCode == "" || c.DestinationCode == "" {
		return fmt.Errorf("origin and destination codes cannot be empty")
	}
	return nil
}

// Validate checks the report configuration.
func (c *ReportConfig) Validate() error {
	if c.ScreenshotPath == "" {
		return fmt.Errorf("screenshot path cannot be empty")
	}
	return nil
}
