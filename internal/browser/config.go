package browser

import (
	"fmt"
	"time"

	"github.com/flightscan/flightscan/internal/common/configtypes"
)

// Config holds the browser session configuration: window, identity and
// pacing of the single Chrome the probe drives.
type Config struct {
	Headless       bool
	SlowMo         time.Duration // artificial pause after each interaction
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	Timezone       string
	UserAgent      string
}

// NewConfigFromSession converts the YAML session block to the internal
// browser Config.
func NewConfigFromSession(sc configtypes.SessionConfig) *Config {
	return &Config{
		Headless:       sc.Headless,
		SlowMo:         sc.SlowMo.Std(),
		ViewportWidth:  sc.ViewportWidth,
		ViewportHeight: sc.ViewportHeight,
		Locale:         sc.Locale,
		Timezone:       sc.Timezone,
		UserAgent:      sc.UserAgent,
	}
}

// DefaultConfig is used in tests to avoid constructing full Config structs.
func DefaultConfig() *Config {
	return &Config{
		Headless:       true,
		SlowMo:         0,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		Locale:         "zh-CN",
		Timezone:       "Asia/Shanghai",
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.SlowMo < 0 {
		return fmt.Errorf("slow-mo delay cannot be negative")
	}
	return nil
}
