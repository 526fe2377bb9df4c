package stt

import (
	"fmt"
)

// TransferError reports that the transcription request did not succeed:
// either the transport failed (StatusCode == 0) or the server answered
// with a non-2xx status.
type TransferError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// PayloadError reports a successful response whose body could not be
// turned into display text.
type PayloadError struct {
	Reason string
	Err    error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid transcription payload: %s: %v", e.Reason, e.Err)
	}
	return "invalid transcription payload: " + e.Reason
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
