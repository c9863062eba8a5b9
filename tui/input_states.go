package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"contract-extractor/selection"
	"contract-extractor/utils"
)

// Home state handlers
func (m Model) updateHome(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m, submitRequested
	case key.Matches(msg, m.keys.Browse):
		m.state = StateBrowse
		m.browse.Open()
		return m, m.picker.Init()
	case key.Matches(msg, m.keys.Clear):
		if m.holder.Present() {
			m.holder.Clear()
			m.addFormattedAction("Selection Cleared")
		}
		return m, nil
	case key.Matches(msg, m.keys.Download):
		if !m.screen.DownloadVisible || m.downloading {
			return m, nil
		}
		m.downloading = true
		m.helpKeysEnabled()
		m.addFormattedAction("Download Started")
		return m, downloadCmd(m.ctx, m.downloader, m.writer, m.cfg.OutputDir)
	case key.Matches(msg, m.keys.Export):
		if !m.screen.DownloadVisible {
			return m, nil
		}
		return m, exportCmd(m.writer, m.ctrl.View(), selection.DisplayText(m.holder.Current()), m.cfg.OutputDir)
	case key.Matches(msg, m.keys.Summary):
		m.toggleSummaryPane()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch msg.String() {
	case "[":
		m.scrollSummary(-2)
		return m, nil
	case "]":
		m.scrollSummary(2)
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) viewHome() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Contract Extractor") + "\n")
	s.WriteString(subtitleStyle.Render("Extract key terms from contract documents") + "\n")

	s.WriteString(m.viewDropZone() + "\n\n")
	s.WriteString(m.viewSubmitButton() + "\n")

	if m.screen.Busy && m.uploadTotal > 0 {
		ratio := float64(m.uploadSent) / float64(m.uploadTotal)
		s.WriteString(m.progressBar.ViewAs(ratio) + "\n")
	}

	if m.notice != "" {
		if m.noticeError {
			s.WriteString(errorStyle.Render(m.notice) + "\n")
		} else {
			s.WriteString(successStyle.Render(m.notice) + "\n")
		}
	}

	s.WriteString("\n" + m.results.View() + "\n\n")

	if m.screen.DownloadVisible {
		s.WriteString(highlightStyle.Render("Download output (d)") + "  " + helpStyle.Render("Export YAML (e)") + "\n")
	}

	s.WriteString(m.help.View(m.keys))

	return m.renderWithDynamicWidth(s.String())
}

func (m Model) viewDropZone() string {
	width := m.leftPaneWidth - 12
	if width < 30 {
		width = 30
	}

	label := placeholderStyle.Render(m.screen.Filename)
	if m.holder.Present() {
		label = filenameStyle.Render(utils.TruncateMiddle(m.screen.Filename, width-4))
	}

	style := dropZoneStyle
	if m.drop.Highlighted() {
		style = dropZoneActiveStyle
	}
	return style.Width(width).Render(label + "\n" + helpStyle.Render("paste or drop a path, or press b to browse"))
}

func (m Model) viewSubmitButton() string {
	if m.screen.Busy {
		return m.spinner.View() + " " + buttonDisabledStyle.Render(m.screen.SubmitLabel)
	}
	if !m.screen.SubmitEnabled {
		return buttonDisabledStyle.Render(m.screen.SubmitLabel)
	}
	return buttonStyle.Render(m.screen.SubmitLabel)
}

// Browse state handlers
func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.browse.Cancel()
		m.state = StateHome
		return m, nil
	}
	return m.updatePicker(msg)
}

func (m Model) updatePicker(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.state = StateHome
		if err := m.browse.ChoosePaths([]string{path}); err != nil {
			m.log.WithError(err).Warn("browse selection rejected")
			return m, m.setNotice(err.Error(), true)
		}
		m.addFormattedAction("Document Selected")
		m.addFormattedStatusIndented("File", m.holder.Current().Name())
		return m, nil
	}

	return m, cmd
}

func (m Model) viewBrowse() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Select a Document") + "\n")
	s.WriteString(subtitleStyle.Render(m.picker.CurrentDirectory) + "\n\n")
	s.WriteString(m.picker.View() + "\n\n")
	s.WriteString(helpStyle.Render("enter to select, esc to cancel"))

	return m.renderWithDynamicWidth(s.String())
}
