package stt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribeui/internal/config"
)

func TestCreateProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{name: "endpoint", cfg: config.Config{Provider: config.ProviderEndpoint, TranscribeURL: "http://localhost:8000/transcribe"}, wantName: "endpoint"},
		{name: "default is endpoint", cfg: config.Config{TranscribeURL: "http://x"}, wantName: "endpoint"},
		{name: "openai", cfg: config.Config{Provider: config.ProviderOpenAI, OpenAIKey: "sk-test"}, wantName: "openai"},
		{name: "openai without key", cfg: config.Config{Provider: config.ProviderOpenAI}, wantErr: true},
		{name: "unknown", cfg: config.Config{Provider: "google"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CreateProvider(&tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
