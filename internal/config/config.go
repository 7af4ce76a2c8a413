// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strings"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// ProviderConfig holds the upstream API credentials. An empty key
// disables the provider except for TheSportsDB, which has a public
// test key.
type ProviderConfig struct {
	SportsDBKey    string
	AllSportsKey   string
	APIFootballKey string
}

// SummaryConfig points at the text generation service. An empty URL
// disables generation and briefs fall back to the template.
type SummaryConfig struct {
	URL    string
	APIKey string
}

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Providers   ProviderConfig
	Summary     SummaryConfig
	RedisURL    string
	DatabaseURL string
}

// LoadConfig loads configuration from environment variables. Redis and
// Postgres are optional: empty URLs leave snapshot caching and the
// results store disabled.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        getEnv("SERVER_ADDR", ":8080"),
			CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Providers: ProviderConfig{
			SportsDBKey:    getEnv("THESPORTSDB_API_KEY", ""),
			AllSportsKey:   getEnv("ALLSPORTS_API_KEY", ""),
			APIFootballKey: getEnv("APIFOOTBALL_API_KEY", ""),
		},
		Summary: SummaryConfig{
			URL:    getEnv("SUMMARY_SERVICE_URL", ""),
			APIKey: getEnv("SUMMARY_SERVICE_API_KEY", ""),
		},
		RedisURL:    getEnv("REDIS_URL", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
