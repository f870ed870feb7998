package sim

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFansOut(t *testing.T) {
	console := &bytes.Buffer{}
	logPath := filepath.Join(t.TempDir(), "logs", "dvnode.log")

	logger, closeLog, err := NewLogger(console, "net", slog.LevelInfo, logPath)
	require.NoError(t, err)
	logger.Info("link up", "port", 3)
	logger.Debug("hidden")
	require.NoError(t, closeLog())

	assert.Contains(t, console.String(), "link up")
	assert.NotContains(t, console.String(), "hidden")

	file, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(file), "msg=\"link up\" port=3")
	assert.NotContains(t, string(file), "hidden")
}
