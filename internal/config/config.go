package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tabbytools/internal/books"
	"tabbytools/internal/logger"
)

type Config struct {
	// Books API Configuration
	BooksBaseURL string
	BooksToken   string
	HTTPTimeout  time.Duration

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		BooksBaseURL:  normalizeBaseURL(getEnv("BOOKS_API_BASE_URL", "")),
		BooksToken:    strings.TrimSpace(getEnv("BOOKS_API_TOKEN", "")),
		HTTPTimeout:   timeoutFromEnv("BOOKS_HTTP_TIMEOUT_SECONDS", books.DefaultTimeout),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	return config, nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// GetBooksConfig returns the Books API client configuration
func (c *Config) GetBooksConfig() books.Config {
	return books.Config{
		BaseURL: c.BooksBaseURL,
		Timeout: c.HTTPTimeout,
	}
}

// normalizeBaseURL trims whitespace and strips trailing slashes. An empty
// result is a defined state: request paths are used as-is by the client.
func normalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	for strings.HasSuffix(base, "/") {
		base = strings.TrimSuffix(base, "/")
	}
	return base
}

func timeoutFromEnv(key string, def time.Duration) time.Duration {
	secs, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
