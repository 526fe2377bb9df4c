package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript  string // The text shown to the user
	Provider    string // The provider used (e.g., "endpoint", "openai")
	StatusCode  int    // HTTP status of the response, 0 when the provider does not expose it
	RawResponse string // Raw response from the provider (for debugging/logging)
}
