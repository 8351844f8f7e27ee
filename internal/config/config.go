// Package config reads the service settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"newstracker/pkg/news"
)

const (
	DefaultPort            = 8080
	DefaultUpstreamTimeout = 30 * time.Second
)

// Config holds everything the binaries need at startup. A missing API key is
// not an error: the data endpoints degrade to empty results instead.
type Config struct {
	NewsAPIKey      string
	NewsAPIBaseURL  string
	UpstreamTimeout time.Duration
	Port            int
	RedisURL        string
	LogLevel        slog.Level
}

// Load reads the environment. Invalid values fall back to defaults and are
// logged.
func Load() *Config {
	cfg := &Config{
		NewsAPIKey:      strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		NewsAPIBaseURL:  news.DefaultBaseURL,
		UpstreamTimeout: DefaultUpstreamTimeout,
		Port:            DefaultPort,
		RedisURL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		LogLevel:        parseLevel(os.Getenv("LOG_LEVEL")),
	}

	if baseURL := strings.TrimSpace(os.Getenv("NEWS_API_BASE_URL")); baseURL != "" {
		cfg.NewsAPIBaseURL = baseURL
	}

	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			slog.Warn("invalid UPSTREAM_TIMEOUT, using default", "value", raw, "default", DefaultUpstreamTimeout)
		} else {
			cfg.UpstreamTimeout = d
		}
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			slog.Warn("invalid PORT, using default", "value", raw, "default", DefaultPort)
		} else {
			cfg.Port = port
		}
	}

	return cfg
}

// APIKeyConfigured reports whether NewsAPIKey is set to a real key.
func (c *Config) APIKeyConfigured() bool {
	return news.KeyConfigured(c.NewsAPIKey)
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
