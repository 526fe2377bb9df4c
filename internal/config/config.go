package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ProviderEndpoint = "endpoint"
	ProviderOpenAI   = "openai"
)

type Config struct {
	Port              string
	Environment       string
	LogLevel          string
	CORSAllowOrigin   string
	Provider          string
	TranscribeURL     string
	TranscribeTimeout time.Duration
	OpenAIKey         string
	OpenAIModel       string
	OpenAIBaseURL     string
	SessionMaxAge     time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     strings.ToLower(getEnv("APP_ENV", "production")),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		Provider:        strings.ToLower(getEnv("STT_PROVIDER", ProviderEndpoint)),
		TranscribeURL:   getEnv("TRANSCRIBE_URL", "http://localhost:8000/transcribe"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "whisper-1"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
	}

	var err error
	if cfg.TranscribeTimeout, err = getDuration("TRANSCRIBE_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getDuration("SESSION_MAX_AGE", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge <= 0 {
		return nil, fmt.Errorf("SESSION_MAX_AGE must be positive, got %s", cfg.SessionMaxAge)
	}

	switch cfg.Provider {
	case ProviderEndpoint:
		if cfg.TranscribeURL == "" {
			return nil, fmt.Errorf("TRANSCRIBE_URL is required when STT_PROVIDER=%s", ProviderEndpoint)
		}
	case ProviderOpenAI:
		// Checked here rather than on first upload so a misconfigured
		// deployment fails at startup.
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=%s", ProviderOpenAI)
		}
	default:
		return nil, fmt.Errorf("unsupported STT_PROVIDER %q. Supported: %s, %s", cfg.Provider, ProviderEndpoint, ProviderOpenAI)
	}

	return cfg, nil
}

// Development reports whether APP_ENV selects development mode.
func (c *Config) Development() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, v)
	}
	return d, nil
}
