package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func initFile(t *testing.T, level string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), level+".log")
	cfg := FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
	require.NoError(t, InitWithFileConfig(level, cfg, false))
	t.Cleanup(InitNop)
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	Sync()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warning", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"DEBUG", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := initFile(t, tt.level)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			content := read(t, path)
			for _, exp := range tt.expected {
				assert.Contains(t, content, exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, content, exc)
			}
		})
	}
}

func TestNamedFieldsAndCaller(t *testing.T) {
	path := initFile(t, "debug")

	Named("scene").Info("node initialized", zap.String("node", "earth"), zap.Int("children", 2))
	Info("frame", zap.Int("fps", 60))

	content := read(t, path)
	assert.Contains(t, content, "scene")
	assert.Contains(t, content, `"node": "earth"`)
	assert.Contains(t, content, `"children": 2`)
	// Callers point at this file, not at the wrappers.
	assert.Equal(t, 2, strings.Count(content, "logger_test.go"))
}

func TestNopBeforeInit(t *testing.T) {
	InitNop()
	assert.NotPanics(t, func() {
		Debug("dropped")
		Named("x").Warn("dropped")
		Sync()
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("Warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/prism.log")
	assert.Equal(t, "/tmp/prism.log", cfg.Path)
	assert.Equal(t, 20, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAgeDays)
	assert.True(t, cfg.Compress)
}
