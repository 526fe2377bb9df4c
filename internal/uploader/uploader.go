// Package uploader holds the state of one transcription upload: the
// selected file, the single upload state and the validation notice.
//
// All transitions happen under one mutex. The only suspension point is
// the provider call inside Attempt.Run, which runs without the lock so
// the state can be observed as Loading while the request is in flight.
package uploader

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"transcribeui/internal/stt"
)

// Outcome labels passed to Recorder.AttemptFinished.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Recorder observes intake and attempt outcomes.
type Recorder interface {
	FileAccepted()
	FileRejected()
	AttemptFinished(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) FileAccepted()                         {}
func (nopRecorder) FileRejected()                         {}
func (nopRecorder) AttemptFinished(string, time.Duration) {}

// Uploader is one Transcription Uploader instance.
type Uploader struct {
	mu       sync.Mutex
	provider stt.Provider
	recorder Recorder
	logger   *zap.Logger

	file   *File
	state  State
	notice string
}

// New creates an Uploader in the Idle state with no file selected.
func New(provider stt.Provider, recorder Recorder, logger *zap.Logger) *Uploader {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{
		provider: provider,
		recorder: recorder,
		logger:   logger,
		state:    Idle{},
	}
}

// Snapshot returns a copy of the current state.
func (u *Uploader) Snapshot() Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.snapshotLocked()
}

func (u *Uploader) snapshotLocked() Snapshot {
	s := Snapshot{State: u.state, Notice: u.notice}
	if u.file != nil {
		s.File = &FileInfo{Name: u.file.Name, Size: u.file.Size, MIMEType: u.file.MIMEType}
	}
	return s
}

// Select runs File Intake on a candidate. A file whose declared type is
// not audio/mpeg is refused with a *ValidationError and leaves the
// current selection untouched. An accepted file replaces the selection
// and clears the notice and any previous result; an in-flight request
// keeps the state Loading.
func (u *Uploader) Select(f File) error {
	if f.MIMEType != AcceptedMIMEType {
		u.mu.Lock()
		u.notice = RejectionMessage
		u.mu.Unlock()

		u.recorder.FileRejected()
		u.logger.Info("file rejected", zap.String("name", f.Name), zap.String("declared_type", f.MIMEType))
		return &ValidationError{MIMEType: f.MIMEType}
	}

	u.mu.Lock()
	u.file = &f
	u.notice = ""
	if _, loading := u.state.(Loading); !loading {
		u.state = Idle{}
	}
	u.mu.Unlock()

	u.recorder.FileAccepted()
	u.logger.Info("file selected", zap.String("name", f.Name), zap.Int64("size", f.Size))
	return nil
}

// Attempt is a started transcription request.
type Attempt struct {
	u       *Uploader
	file    File
	started time.Time
}

// Begin starts an attempt: the state becomes Loading and the notice is
// cleared. It reports false, changing nothing, when no file is selected
// or a request is already in flight.
func (u *Uploader) Begin() (*Attempt, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.file == nil {
		return nil, false
	}
	if _, loading := u.state.(Loading); loading {
		return nil, false
	}

	u.state = Loading{}
	u.notice = ""
	return &Attempt{u: u, file: *u.file, started: time.Now()}, true
}

// Run performs the request and stores its outcome. It returns the
// resolved state.
func (a *Attempt) Run(ctx context.Context) State {
	u := a.u

	result, err := u.provider.Transcribe(ctx, stt.Audio{
		Name:     a.file.Name,
		MIMEType: a.file.MIMEType,
		Data:     a.file.Data,
	})

	var next State
	outcome := OutcomeSucceeded
	if err != nil {
		next = Failed{Message: failureMessage(err)}
		outcome = OutcomeFailed
		u.logger.Warn("transcription failed", zap.String("file", a.file.Name), zap.Error(err))
	} else {
		next = Succeeded{Text: result.Transcript}
		u.logger.Info("transcription succeeded",
			zap.String("file", a.file.Name),
			zap.String("provider", result.Provider),
			zap.Int("length", len(result.Transcript)),
		)
	}

	u.mu.Lock()
	u.state = next
	if outcome == OutcomeFailed {
		// the failure replaces a rejection raised while the request ran
		u.notice = ""
	}
	u.mu.Unlock()

	u.recorder.AttemptFinished(outcome, time.Since(a.started))
	return next
}

// Submit begins an attempt and waits for it to resolve. It reports false
// without touching the state or the network when Begin refuses.
func (u *Uploader) Submit(ctx context.Context) (State, bool) {
	attempt, ok := u.Begin()
	if !ok {
		return nil, false
	}
	return attempt.Run(ctx), true
}

// Reset clears the file, the result and the notice. It is refused while a
// request is in flight.
func (u *Uploader) Reset() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, loading := u.state.(Loading); loading {
		return false
	}
	u.file = nil
	u.notice = ""
	u.state = Idle{}
	return true
}

// CopyTranscript hands the exact transcript to the clipboard.
func (u *Uploader) CopyTranscript(c Clipboard) error {
	u.mu.Lock()
	st, ok := u.state.(Succeeded)
	u.mu.Unlock()

	if !ok {
		return ErrNothingToCopy
	}
	return c.WriteText(st.Text)
}

func failureMessage(err error) string {
	return "transcription failed: " + err.Error()
}
