// Package present maps an uploader snapshot to the blocks the page shows.
package present

import (
	"fmt"

	"transcribeui/internal/uploader"
)

const (
	SubmitLabel      = "Transcribe"
	BusyLabel        = "Transcribing..."
	ResetLabel       = "Reset"
	bytesPerMegabyte = 1024 * 1024
)

// Control is a button on the page.
type Control struct {
	Label    string
	Busy     bool
	Disabled bool
}

// FileSummary describes the selected file.
type FileSummary struct {
	Name      string
	SizeLabel string
}

// Page is everything the template needs. Intake and File are mutually
// exclusive, as are Success and Error unless a validation notice arrived
// after a success.
type Page struct {
	Phase      string
	Intake     bool
	File       *FileSummary
	Submit     Control
	Reset      Control
	Error      string
	Success    bool
	Transcript string
	Poll       bool
}

// Build renders a snapshot into a Page.
func Build(s uploader.Snapshot) Page {
	p := Page{
		Phase:  s.State.Phase(),
		Intake: s.File == nil,
		Error:  s.ErrorMessage(),
		Poll:   s.Loading(),
	}

	if s.File != nil {
		p.File = &FileSummary{Name: s.File.Name, SizeLabel: FormatSize(s.File.Size)}
		p.Submit = Control{Label: SubmitLabel, Disabled: !s.CanSubmit()}
		p.Reset = Control{Label: ResetLabel, Disabled: !s.CanReset()}
		if s.Loading() {
			p.Submit.Label = BusyLabel
			p.Submit.Busy = true
		}
	}

	if s.Succeeded() {
		p.Success = true
		p.Transcript = s.Transcript()
	}

	return p
}

// FormatSize renders a byte count as megabytes with two decimals.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/bytesPerMegabyte)
}
