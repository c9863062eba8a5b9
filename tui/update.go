package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"contract-extractor/controller"
	"contract-extractor/input"
	"contract-extractor/utils"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		if msg.Paste {
			return m.handleDrop(DropMsg{Text: string(msg.Runes)})
		}
		return m.handleKeyMessage(msg)
	case tea.MouseMsg:
		return m.handleMouseMessage(msg)
	case tea.FocusMsg:
		// A terminal gains focus when a file is dragged onto it.
		m.drop.Handle(input.DragEvent{Kind: input.DragEnter})
		return m, nil
	case tea.BlurMsg:
		m.drop.Handle(input.DragEvent{Kind: input.DragLeave})
		return m, nil
	case DropMsg:
		return m.handleDrop(msg)
	case SubmitRequestedMsg:
		return m.handleSubmitRequested()
	case SubmissionSettledMsg:
		return m.handleSubmissionSettled(msg)
	case UploadProgressMsg:
		m.uploadSent = msg.Sent
		m.uploadTotal = msg.Total
		return m, nil
	case DownloadDoneMsg:
		return m.handleDownloadDone(msg)
	case ExportDoneMsg:
		return m.handleExportDone(msg)
	case noticeExpiredMsg:
		return m.handleNoticeExpired(msg)
	case spinner.TickMsg:
		if !m.screen.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Everything else (directory listings and such) belongs to the file picker
	if m.state == StateBrowse {
		return m.updatePicker(msg)
	}

	return m, nil
}

// handleWindowSize handles window resize events
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layoutPanes()

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// layoutPanes sizes the panes and the results viewport for the current window
func (m *Model) layoutPanes() {
	if m.showRightPane {
		m.leftPaneWidth = int(float64(m.width) * 0.6)    // 60% for left pane
		m.rightPaneWidth = m.width - m.leftPaneWidth - 1 // 40% for right pane (minus 1 for separator)
	} else {
		m.leftPaneWidth = m.width
		m.rightPaneWidth = 0
	}

	m.results.Width = m.leftPaneWidth - 12
	if m.results.Width < 30 {
		m.results.Width = 30
	}
	m.progressBar.Width = m.results.Width / 2
	m.results.Height = m.height - 22 // header, drop zone, button and help
	if m.results.Height < 5 {
		m.results.Height = 5
	}
	m.syncResults()
}

// handleKeyMessage handles keyboard input based on current state
func (m Model) handleKeyMessage(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any real keystroke means nothing is being dragged over the terminal
	if m.drop.Highlighted() {
		m.drop.Handle(input.DragEvent{Kind: input.DragLeave})
	}

	switch m.state {
	case StateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateHome(msg)
	}
}

// handleMouseMessage handles mouse input
func (m Model) handleMouseMessage(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.state != StateHome {
		return m, nil
	}

	// Handle mouse wheel scrolling for right pane when the pointer is over it
	if m.showRightPane && msg.X > m.leftPaneWidth {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollSummary(-2)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scrollSummary(2)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// handleDrop routes dropped files through the drop zone adapter. The paste
// is consumed here and never reaches a key handler.
func (m Model) handleDrop(msg DropMsg) (Model, tea.Cmd) {
	ev, err := input.DropFromPaste(msg.Text)
	m.drop.Handle(ev)

	if m.state == StateBrowse {
		m.browse.Cancel()
		m.state = StateHome
	}

	switch {
	case ev.Failed:
		m.log.WithError(err).Warn("drop failed")
		m.addFormattedStatus("Drop", "failed")
		return m, m.setNotice(err.Error(), true)
	case len(ev.Files) == 0:
		m.log.Debug("empty drop ignored")
		return m, nil
	}

	m.addFormattedAction("Document Dropped")
	m.addFormattedStatusIndented("File", ev.Files[0].Name())
	if len(ev.Files) > 1 {
		m.addFormattedStatusIndented("Ignored", utils.FormatCount(len(ev.Files)-1, "file"))
	}

	if err != nil {
		return m, m.setNotice(err.Error(), true)
	}
	return m, nil
}

// handleSubmitRequested starts a submission through the controller
func (m Model) handleSubmitRequested() (Model, tea.Cmd) {
	attempt, err := m.ctrl.Submit()
	switch {
	case errors.Is(err, controller.ErrSubmitting):
		return m, nil
	case errors.Is(err, controller.ErrNoSelection):
		m.addFormattedAction("Submission Rejected")
		m.addFormattedStatusIndented("Reason", "no file selected")
		m.syncResults()
		return m, nil
	case err != nil:
		return m, nil
	}

	m.uploadSent = 0
	m.uploadTotal = 0
	m.notice = ""
	m.syncResults()

	m.addFormattedAction("Submission Started")
	m.addFormattedStatusIndented("File", attempt.File.Name())

	return m, tea.Batch(submitCmd(m.ctx, attempt), m.spinner.Tick)
}

// handleSubmissionSettled renders the outcome and returns to idle
func (m Model) handleSubmissionSettled(msg SubmissionSettledMsg) (Model, tea.Cmd) {
	if !m.ctrl.Settle(msg.Outcome) {
		return m, nil
	}

	m.helpKeysEnabled()
	m.results.GotoTop()
	m.syncResults()

	view := m.ctrl.View()
	if view.IsError() {
		m.addFormattedStatusIndented("Error", view.Err)
	} else {
		m.addFormattedStatusIndented("Contracts Found", utils.FormatCount(len(view.Sections), "contract"))
	}
	m.addFormattedStatusIndented("Elapsed", utils.FormatDuration(msg.Outcome.Elapsed))

	return m, nil
}

func (m Model) handleDownloadDone(msg DownloadDoneMsg) (Model, tea.Cmd) {
	m.downloading = false
	m.helpKeysEnabled()
	if msg.Err != nil {
		m.log.WithError(msg.Err).Warn("download failed")
		m.addFormattedStatus("Download", "failed")
		return m, m.setNotice(msg.Err.Error(), true)
	}

	m.log.WithField("path", msg.Path).Info("output downloaded")
	m.addFormattedAction("Output Downloaded")
	m.addFormattedStatusIndented("Saved", msg.Path)
	return m, m.setNotice("Saved "+msg.Path+" ("+utils.FormatFileSize(msg.Bytes)+")", false)
}

func (m Model) handleExportDone(msg ExportDoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.WithError(msg.Err).Warn("export failed")
		m.addFormattedStatus("Export", "failed")
		return m, m.setNotice(msg.Err.Error(), true)
	}

	m.addFormattedAction("Results Exported")
	m.addFormattedStatusIndented("Saved", msg.Path)
	return m, m.setNotice("Exported "+msg.Path, false)
}

func (m *Model) toggleSummaryPane() {
	m.showRightPane = !m.showRightPane
	m.layoutPanes()
}

func (m *Model) scrollSummary(delta int) {
	maxScroll := len(m.outputSummary) - 10 // Approximate visible lines
	if maxScroll < 0 {
		maxScroll = 0
	}
	m.outputScrollOffset += delta
	if m.outputScrollOffset < 0 {
		m.outputScrollOffset = 0
	}
	if m.outputScrollOffset > maxScroll {
		m.outputScrollOffset = maxScroll
	}
}

// helpKeysEnabled keeps the help view in sync with the download affordance.
// Submit stays bound even when disabled: pressing it without a file must
// still report the missing selection.
func (m *Model) helpKeysEnabled() {
	m.keys.Download.SetEnabled(m.screen.DownloadVisible && !m.downloading)
	m.keys.Export.SetEnabled(m.screen.DownloadVisible)
}
