package stt

import (
	"fmt"

	"go.uber.org/zap"

	"transcribeui/internal/config"
)

// CreateProvider creates an STT provider based on configuration
func CreateProvider(cfg *config.Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case config.ProviderEndpoint, "":
		logger.Info("creating endpoint STT provider",
			zap.String("url", cfg.TranscribeURL),
			zap.Duration("timeout", cfg.TranscribeTimeout),
		)
		return NewEndpointProvider(cfg.TranscribeURL, cfg.TranscribeTimeout, logger.Named("endpoint")), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		logger.Info("creating OpenAI STT provider", zap.String("model", cfg.OpenAIModel))
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, logger.Named("openai")), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: %s, %s",
			cfg.Provider, config.ProviderEndpoint, config.ProviderOpenAI)
	}
}
