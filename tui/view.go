package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	switch m.state {
	case StateBrowse:
		return m.viewBrowse()
	default:
		return m.viewHome()
	}
}

// renderWithDynamicWidth frames content for the current window, adding the
// session summary pane when it is shown
func (m Model) renderWithDynamicWidth(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return boxStyle.Render(content)
	}
	if m.showRightPane && m.leftPaneWidth > 0 && m.rightPaneWidth > 0 {
		return m.renderTwoPaneLayout(content)
	}
	return m.renderSinglePaneLayout(content)
}

// frameColor tints the main frame while a submission is in flight or an
// error is on screen
func (m Model) frameColor() lipgloss.Color {
	switch {
	case m.screen.Busy:
		return primaryColor
	case m.ctrl.View().IsError():
		return errorColor
	default:
		return secondaryColor
	}
}

func (m Model) renderSinglePaneLayout(content string) string {
	marginHorizontal := 2
	marginVertical := 1

	contentWidth := m.width - (marginHorizontal * 2) - 2 // 2 for border
	contentHeight := m.height - (marginVertical * 2) - 2
	if contentWidth < 50 {
		contentWidth = 50
	}
	if contentHeight < 10 {
		contentHeight = 10
	}

	mainStyle := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.frameColor())

	return lipgloss.NewStyle().
		Padding(marginVertical, marginHorizontal).
		Render(mainStyle.Render(content))
}

func (m Model) renderTwoPaneLayout(content string) string {
	contentHeight := m.height - 4 // margins and border
	if contentHeight < 10 {
		contentHeight = 10
	}

	pane := lipgloss.NewStyle().
		Height(contentHeight).
		Padding(1).
		Border(lipgloss.RoundedBorder())

	leftPane := pane.
		Width(m.leftPaneWidth - 4).
		BorderForeground(m.frameColor()).
		Render(content)
	rightPane := pane.
		Width(m.rightPaneWidth - 4).
		BorderForeground(mutedColor).
		Render(m.renderOutputSummary())

	return lipgloss.NewStyle().
		Padding(1, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane))
}

// wrapText wraps text on word boundaries to fit width. Words longer than
// width are kept whole.
func (m Model) wrapText(text string, width int) []string {
	if width <= 0 || len([]rune(text)) <= width {
		return []string{text}
	}

	var lines []string
	var currentLine strings.Builder
	for _, word := range strings.Fields(text) {
		if currentLine.Len() > 0 && len([]rune(currentLine.String()))+len([]rune(word))+1 > width {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
		}
		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}
