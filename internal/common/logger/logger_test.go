package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/flightscan/flightscan/internal/common/configtypes"
)

func TestNewConsoleOnly(t *testing.T) {
	log, err := New(configtypes.LogConfig{
		Level: configtypes.LogLevelDebug,
		Console: configtypes.ConsoleLogConfig{
			Enabled: true,
			Format:  configtypes.LogFormatConsole,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.log")
	log, err := New(configtypes.LogConfig{
		Level: configtypes.LogLevelInfo,
		File: configtypes.FileLogConfig{
			Enabled: true,
			Path:    path,
			Format:  configtypes.LogFormatJSON,
		},
	})
	require.NoError(t, err)

	log.Info("probe started")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probe started")
}

func TestNewFileRequiresPath(t *testing.T) {
	_, err := New(configtypes.LogConfig{
		File: configtypes.FileLogConfig{Enabled: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file.path")
}

func TestNewRequiresOutput(t *testing.T) {
	_, err := New(configtypes.LogConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one log output")
}

func TestNewDefault(t *testing.T) {
	log, err := NewDefault()
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestPerOutputLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.log")
	log, err := New(configtypes.LogConfig{
		Level: configtypes.LogLevelError,
		File: configtypes.FileLogConfig{
			Enabled: true,
			Path:    path,
			Format:  configtypes.LogFormatJSON,
			Level:   configtypes.LogLevelDebug,
		},
	})
	require.NoError(t, err)

	log.Debug("visible despite global error level")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible despite global error level")
}
