package core

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/netkat-io/netkat-core/logger"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	conf := Config{
		Verbose:    true,
		Hex:        true,
		Timeout:    5 * time.Second,
		OutputFile: "session.bin",
		LogLevel:   logger.LevelDebug,
		LogFile:    "netkat.log",
		LogMaxMB:   10,
		LogBackups: 3,
	}

	path := filepath.Join(t.TempDir(), "netkat.yaml")
	require.NoError(t, SaveConfig(&conf, path))

	var loaded Config
	loaded.Default()
	require.NoError(t, LoadConfig(&loaded, path))
	require.Equal(t, conf, loaded)
}

func TestDefaultLogLevel(t *testing.T) {
	var conf Config
	conf.Default()
	require.Equal(t, logger.LevelInfo, conf.LogLevel)
}
