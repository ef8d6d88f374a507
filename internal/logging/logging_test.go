package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/packer/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"warning", zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestProductionModeWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := types.Config{LogLevel: "info", LogMode: types.LogModeProduction}

	logger := NewWithWriter(cfg, &buf)
	logger.Info("exported product", zap.String("key", "Box-A"), zap.Float64("volume", 24))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "exported product", entry["msg"])
	assert.Equal(t, "Box-A", entry["key"])
	assert.Equal(t, 24.0, entry["volume"])
}

func TestLevelFiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	cfg := types.Config{LogLevel: "warn", LogMode: types.LogModeDevelopment}

	logger := NewWithWriter(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestLogFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packer.log")
	var buf bytes.Buffer
	cfg := types.Config{LogLevel: "debug", LogMode: types.LogModeDevelopment, LogFile: path}

	logger := NewWithWriter(cfg, &buf)
	logger.Debug("to both sinks", zap.String("path", "box.xml"))
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "to both sinks")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "to both sinks", entry["msg"])
	assert.Equal(t, "box.xml", entry["path"])
}
