// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Optional: when empty
	// the server runs on the in-memory store and loses state on restart.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// GeminiAPIKey authenticates generateContent calls. Required.
	GeminiAPIKey string

	// GeminiModel selects the model. Empty picks the client's default.
	GeminiModel string

	// GeminiBaseURL overrides the Gemini API endpoint, for tests and
	// proxies. Empty uses the public endpoint.
	GeminiBaseURL string

	// NominatimBaseURL overrides the geocoding endpoint.
	NominatimBaseURL string

	// ExchangeRateBaseURL overrides the live exchange-rate endpoint.
	ExchangeRateBaseURL string

	// SuggestionTTL is how long cached AI responses stay valid. Set
	// AI_CACHE_TTL_DAYS to override the 30-day default.
	SuggestionTTL time.Duration

	// HomeCurrency overrides the home display currency code. Defaults to
	// the built-in home currency when empty.
	HomeCurrency string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GeminiModel:         os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL:       os.Getenv("GEMINI_BASE_URL"),
		NominatimBaseURL:    getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		ExchangeRateBaseURL: getEnv("EXCHANGE_RATE_BASE_URL", "https://open.er-api.com/v6"),
		SuggestionTTL:       30 * 24 * time.Hour,
		HomeCurrency:        os.Getenv("HOME_CURRENCY"),
	}

	var missing []string

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	if v := os.Getenv("AI_CACHE_TTL_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("AI_CACHE_TTL_DAYS must be a positive integer, got %q", v)
		}
		cfg.SuggestionTTL = time.Duration(days) * 24 * time.Hour
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
