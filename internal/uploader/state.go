package uploader

// State is the upload state of an Uploader. Exactly one variant holds at
// any time: Idle, Loading, Succeeded or Failed.
type State interface {
	// Phase is a stable lowercase name for the variant.
	Phase() string
	sealed()
}

// Idle means no transcription is in flight and none has resolved since
// the last selection or reset.
type Idle struct{}

// Loading means a transcription request is in flight.
type Loading struct{}

// Succeeded holds the transcript of the last attempt.
type Succeeded struct {
	Text string
}

// Failed holds the user-facing message of the last failed attempt.
type Failed struct {
	Message string
}

func (Idle) Phase() string      { return "idle" }
func (Loading) Phase() string   { return "loading" }
func (Succeeded) Phase() string { return "succeeded" }
func (Failed) Phase() string    { return "failed" }

func (Idle) sealed()      {}
func (Loading) sealed()   {}
func (Succeeded) sealed() {}
func (Failed) sealed()    {}
