package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.False(t, cfg.Session.Headless)
	assert.Equal(t, 1920, cfg.Session.ViewportWidth)
	assert.Equal(t, 1080, cfg.Session.ViewportHeight)
	assert.Equal(t, "zh-CN", cfg.Session.Locale)
	assert.Equal(t, "Asia/Shanghai", cfg.Session.Timezone)
	assert.Equal(t, 60*time.Second, cfg.Navigation.Timeout.Std())
	assert.Equal(t, "海口", cfg.Search.OriginCity)
	assert.Equal(t, "北京", cfg.Search.DestinationCity)
	assert.Equal(t, "y_s", cfg.Search.Cabin)
	assert.Equal(t, 3*time.Second, cfg.Waits.PageSettle.SettleDelay.Std())
	assert.Equal(t, 30*time.Second, cfg.Waits.Results.Timeout.Std())
	assert.Equal(t, "error_screenshot.png", cfg.Report.ScreenshotPath)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	data := `
session:
  headless: true
  slow_mo: 100ms
waits:
  results:
    timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, cfg.Session.Headless)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.SlowMo.Std())
	assert.Equal(t, 10*time.Second, cfg.Waits.Results.Timeout.Std())
	// Untouched fields keep their defaults.
	assert.Equal(t, "海口", cfg.Search.OriginCity)
	assert.Equal(t, 60*time.Second, cfg.Navigation.Timeout.Std())
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sesion:\n  headless: true\n"), 0o644))

	_, err := Load(path, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration field")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), zap.NewNop())
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  user_agent: \"\"\n"), 0o644))

	_, err := Load(path, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user agent")
}

func TestNavigationTemplateValidation(t *testing.T) {
	cfg := Default()
	cfg.Navigation.DomesticURL = "https://flights.ctrip.com/online/list/oneway-hak-bjs"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domestic_url")
}
