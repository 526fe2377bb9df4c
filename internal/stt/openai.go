package stt

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIProvider transcribes through the OpenAI audio transcription API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIProvider creates a provider. baseURL may be empty to use the
// public API.
func NewOpenAIProvider(apiKey, model, baseURL string, logger *zap.Logger) *OpenAIProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = openai.Whisper1
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Transcribe uploads the audio to OpenAI and returns the plain text result
func (p *OpenAIProvider) Transcribe(ctx context.Context, audio Audio) (*Result, error) {
	startTime := time.Now()

	p.logger.Info("calling OpenAI transcription", zap.String("model", p.model), zap.String("file", audio.Name))

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: audio.Name,
		Reader:   bytes.NewReader(audio.Data),
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		p.logger.Warn("OpenAI transcription failed", zap.Error(err))
		return nil, &TransferError{Provider: p.Name(), StatusCode: openAIStatus(err), Err: err}
	}

	if resp.Text == "" {
		return nil, &PayloadError{Reason: "empty transcription"}
	}

	p.logger.Info("OpenAI transcription received",
		zap.Int("length", len(resp.Text)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &Result{
		Transcript:  resp.Text,
		Provider:    p.Name(),
		RawResponse: resp.Text,
	}, nil
}

// openAIStatus extracts the HTTP status from a go-openai error, 0 if the
// request never got a response.
func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
