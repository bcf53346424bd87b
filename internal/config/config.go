// Package config loads runtime configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Provider identifies an LLM backend for the fallback answer path.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// Catalog
	CatalogPath string

	// LLM fallback
	LLMProvider     Provider
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	FallbackTimeout time.Duration
	HistoryWindow   int

	// Ollama embedding
	OllamaHost     string
	EmbeddingModel string
	VoyageAPIKey   string

	// SurrealDB vector store
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Server
	ServerPort string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		CatalogPath: getEnv("LOFTYBOT_CATALOG", "converters.json"),

		LLMProvider:     Provider(getEnv("LOFTYBOT_LLM_PROVIDER", string(ProviderOllama))),
		LLMModel:        getEnv("LOFTYBOT_LLM_MODEL", "llama3.1:8b"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		FallbackTimeout: parseDuration(getEnv("LOFTYBOT_FALLBACK_TIMEOUT", "60s")),
		HistoryWindow:   6,

		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		EmbeddingModel: getEnv("LOFTYBOT_EMBEDDING_MODEL", "all-minilm:l6-v2"),
		VoyageAPIKey:   getEnv("VOYAGE_API_KEY", ""),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "catalog"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "converters"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		ServerPort: getEnv("LOFTYBOT_SERVER_PORT", "8484"),

		LogFile:  getEnv("LOFTYBOT_LOG_FILE", "/tmp/loftybot.log"),
		LogLevel: parseLogLevel(getEnv("LOFTYBOT_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 60 * time.Second
	}
	return d
}
