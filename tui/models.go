package tui

import "contract-extractor/controller"

// Messages below form the event bus between the input adapters, the
// submission controller and the view. Everything is dispatched through
// Update on the program's event loop.

// SubmitRequestedMsg asks the controller to start a submission.
type SubmitRequestedMsg struct{}

// SubmissionSettledMsg carries the outcome of the attempt in flight.
type SubmissionSettledMsg struct {
	Outcome controller.Outcome
}

// UploadProgressMsg reports request body bytes sent.
type UploadProgressMsg struct {
	Sent  int64
	Total int64
}

// DropMsg is text the terminal pasted because files were dropped on it.
type DropMsg struct {
	Text string
}

// DownloadDoneMsg reports a finished download of the service output.
type DownloadDoneMsg struct {
	Path  string
	Bytes int64
	Err   error
}

// ExportDoneMsg reports a finished YAML export of the rendered results.
type ExportDoneMsg struct {
	Path string
	Err  error
}
