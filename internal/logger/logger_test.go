package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("Error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown", "type", "IHDR")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "type=IHDR")
}

func TestOpen(t *testing.T) {
	log, f, err := Open("", slog.LevelInfo)
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Nil(t, f)

	path := filepath.Join(t.TempDir(), "logs", "pngdec.log")
	log, f, err = Open(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Info("decoded")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=decoded")
}
