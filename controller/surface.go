package controller

import (
	"contract-extractor/render"
	"contract-extractor/selection"
)

const (
	IdleLabel = "Extract"
	BusyLabel = "Extracting..."
)

// Surface is the set of UI handles the controller drives. The UI framework
// owns them; the controller only toggles them.
type Surface interface {
	SetFilename(text string)
	SetSubmitEnabled(enabled bool)
	// SetBusy swaps the submit label and shows or hides the busy indicator.
	SetBusy(busy bool)
	// ShowView replaces the whole results area.
	ShowView(view render.View)
	SetDownloadVisible(visible bool)
}

// Screen is a Surface that records the state of every handle for a renderer
// to draw.
type Screen struct {
	Filename        string
	SubmitEnabled   bool
	SubmitLabel     string
	Busy            bool
	View            render.View
	DownloadVisible bool
}

func NewScreen() *Screen {
	return &Screen{
		Filename:    selection.Placeholder,
		SubmitLabel: IdleLabel,
	}
}

func (s *Screen) SetFilename(text string) {
	s.Filename = text
}

func (s *Screen) SetSubmitEnabled(enabled bool) {
	s.SubmitEnabled = enabled
}

func (s *Screen) SetBusy(busy bool) {
	s.Busy = busy
	if busy {
		s.SubmitLabel = BusyLabel
	} else {
		s.SubmitLabel = IdleLabel
	}
}

func (s *Screen) ShowView(view render.View) {
	s.View = view
}

func (s *Screen) SetDownloadVisible(visible bool) {
	s.DownloadVisible = visible
}
