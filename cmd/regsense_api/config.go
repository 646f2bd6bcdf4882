package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/regsense/regsense/internal/llm"
	"github.com/regsense/regsense/internal/search"
	"github.com/regsense/regsense/internal/server"
	"github.com/regsense/regsense/pkg/config/env"
	"github.com/regsense/regsense/pkg/utils"
)

const defaultESIndex = "regsense-alerts"

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type APIConfig struct {
	Server server.Config

	DatabaseURL string
	FeedsConfig string
	LogLevel    slog.Level

	LLM llm.Config

	// SearchEnabled gates the optional Elasticsearch mirror.
	SearchEnabled bool
	Search        search.Config
}

func (as *AppConfig) Load() (*APIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/regsense_api/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	cfg := &APIConfig{
		Server: server.Config{
			Port:        os.Getenv("PORT"),
			UseHttp2:    os.Getenv("USE_HTTP2") == "true",
			CorsOrigins: splitCSV(os.Getenv("CORS_ORIGINS")),
		},
		DatabaseURL: dbURL,
		FeedsConfig: os.Getenv("FEEDS_CONFIG"),
		LogLevel:    parseLogLevel(os.Getenv("LOG_LEVEL")),
		LLM: llm.Config{
			APIKey:  apiKey,
			Model:   model,
			BaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		},
	}

	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}

	if esAddresses := splitCSV(os.Getenv("ES_ADDRESSES")); len(esAddresses) > 0 {
		indexName := os.Getenv("ES_INDEX")
		if indexName == "" {
			indexName = defaultESIndex
		}
		cfg.SearchEnabled = true
		cfg.Search = search.Config{
			Addresses: esAddresses,
			IndexName: indexName,
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}

	return cfg, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return utils.RemoveEmptyStrings(parts)
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
