package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"contract-extractor/extract"
	"contract-extractor/models"
)

// Run starts the TUI application. A non-empty preselect path fills the
// selection before the first frame.
func Run(cfg *models.Config, log logrus.FieldLogger, preselect string) error {
	var p *tea.Program

	// Upload progress is reported from the request goroutine.
	progress := func(sent, total int64) {
		if p != nil {
			p.Send(UploadProgressMsg{Sent: sent, Total: total})
		}
	}
	client := extract.NewClient(cfg, extract.WithProgress(progress))

	m := NewModel(cfg, client, client, log)
	if preselect != "" {
		var err error
		if m, err = m.Preselect(preselect); err != nil {
			return fmt.Errorf("cannot select %s: %w", preselect, err)
		}
	}

	// Alt screen and mouse support fully isolate the TUI; focus reports drive
	// the drop zone highlight.
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	log.WithField("endpoint", cfg.ExtractURL()).Info("starting interactive session")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
