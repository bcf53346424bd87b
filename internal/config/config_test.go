package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "converters.json", cfg.CatalogPath)
	assert.Equal(t, ProviderOllama, cfg.LLMProvider)
	assert.Equal(t, "llama3.1:8b", cfg.LLMModel)
	assert.Equal(t, 60*time.Second, cfg.FallbackTimeout)
	assert.Equal(t, 6, cfg.HistoryWindow)
	assert.Equal(t, "all-minilm:l6-v2", cfg.EmbeddingModel)
	assert.Equal(t, "ws://localhost:8000/rpc", cfg.SurrealDBURL)
	assert.Equal(t, "8484", cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOFTYBOT_CATALOG", "/data/converters.json")
	t.Setenv("LOFTYBOT_LLM_PROVIDER", "anthropic")
	t.Setenv("LOFTYBOT_FALLBACK_TIMEOUT", "15s")
	t.Setenv("LOFTYBOT_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "/data/converters.json", cfg.CatalogPath)
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
	assert.Equal(t, 15*time.Second, cfg.FallbackTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestParseDurationFallsBack(t *testing.T) {
	assert.Equal(t, 90*time.Second, parseDuration("90s"))
	assert.Equal(t, 60*time.Second, parseDuration("not a duration"))
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	log := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("catalog loaded", "records", 3)

	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "catalog loaded")
	assert.Contains(t, file.String(), `"msg":"catalog loaded"`)
	assert.Contains(t, file.String(), `"records":3`)
}
