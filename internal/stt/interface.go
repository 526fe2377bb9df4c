package stt

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe sends one audio file and returns the transcription result
	Transcribe(ctx context.Context, audio Audio) (*Result, error)

	// Name returns the name of the provider (e.g., "endpoint", "openai")
	Name() string
}

// Audio is the file handed to a provider, exactly as the user supplied it.
type Audio struct {
	Name     string
	MIMEType string
	Data     []byte
}
