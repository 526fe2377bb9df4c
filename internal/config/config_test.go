package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "APP_ENV", "LOG_LEVEL", "CORS_ALLOW_ORIGIN", "STT_PROVIDER", "TRANSCRIBE_URL",
	"TRANSCRIBE_TIMEOUT", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "SESSION_MAX_AGE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderEndpoint, cfg.Provider)
	assert.Equal(t, "http://localhost:8000/transcribe", cfg.TranscribeURL)
	assert.Zero(t, cfg.TranscribeTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionMaxAge)
	assert.Equal(t, "whisper-1", cfg.OpenAIModel)
	assert.Equal(t, "*", cfg.CORSAllowOrigin)
	assert.False(t, cfg.Development())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "Development")
	t.Setenv("STT_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TRANSCRIBE_TIMEOUT", "2m")
	t.Setenv("SESSION_MAX_AGE", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Development())
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, 2*time.Minute, cfg.TranscribeTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionMaxAge)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"STT_PROVIDER": "fpt"}},
		{name: "openai without key", env: map[string]string{"STT_PROVIDER": "openai"}},
		{name: "bad timeout", env: map[string]string{"TRANSCRIBE_TIMEOUT": "soon"}},
		{name: "negative timeout", env: map[string]string{"TRANSCRIBE_TIMEOUT": "-1s"}},
		{name: "zero session age", env: map[string]string{"SESSION_MAX_AGE": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
