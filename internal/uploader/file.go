package uploader

import (
	"errors"
)

// AcceptedMIMEType is the only declared content type File Intake accepts.
const AcceptedMIMEType = "audio/mpeg"

// RejectionMessage is shown whenever a candidate file is refused.
const RejectionMessage = "only MP3 files may be uploaded"

// ErrNothingToCopy is returned by CopyTranscript outside the Succeeded state.
var ErrNothingToCopy = errors.New("no transcription to copy")

// File is a candidate or selected audio file. MIMEType is the type declared
// by the browser; the content is never inspected.
type File struct {
	Name     string
	Size     int64
	MIMEType string
	Data     []byte
}

// FileInfo describes the selected file without its payload.
type FileInfo struct {
	Name     string
	Size     int64
	MIMEType string
}

// ValidationError is returned by Select for a file whose declared type is
// not audio/mpeg. Its message is always RejectionMessage.
type ValidationError struct {
	MIMEType string
}

func (e *ValidationError) Error() string {
	return RejectionMessage
}

// Clipboard receives the text of a copy action.
type Clipboard interface {
	WriteText(text string) error
}
