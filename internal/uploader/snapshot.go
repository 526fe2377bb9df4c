package uploader

// Snapshot is an immutable copy of an Uploader's visible state.
type Snapshot struct {
	File   *FileInfo
	State  State
	Notice string
}

// Loading reports whether a transcription request is in flight.
func (s Snapshot) Loading() bool {
	_, ok := s.State.(Loading)
	return ok
}

// Succeeded reports whether the last attempt produced a transcript.
func (s Snapshot) Succeeded() bool {
	_, ok := s.State.(Succeeded)
	return ok
}

// Transcript returns the transcription text, empty unless Succeeded.
func (s Snapshot) Transcript() string {
	if st, ok := s.State.(Succeeded); ok {
		return st.Text
	}
	return ""
}

// ErrorMessage returns the latest validation notice or, failing that, the
// message of a Failed state.
func (s Snapshot) ErrorMessage() string {
	if s.Notice != "" {
		return s.Notice
	}
	if st, ok := s.State.(Failed); ok {
		return st.Message
	}
	return ""
}

// CanSubmit reports whether the submit control is enabled.
func (s Snapshot) CanSubmit() bool {
	return s.File != nil && !s.Loading()
}

// CanReset reports whether the reset control is enabled.
func (s Snapshot) CanReset() bool {
	return !s.Loading()
}
