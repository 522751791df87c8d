package telemetry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithFile(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	logFile := filepath.Join(t.TempDir(), "sweep.log")
	InitLogger(true, logFile)

	slog.Info("hello", "key", "value")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestInitLoggerDebugLevel(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	InitLogger(true, "")
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	InitLogger(false, "")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
