package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderOutputSummary generates the content for the right pane with scrolling
func (m Model) renderOutputSummary() string {
	var s strings.Builder

	s.WriteString(highlightStyle.Render("Session Summary") + "\n\n")

	if len(m.outputSummary) == 0 {
		s.WriteString(helpStyle.Render("Nothing submitted yet.\n\nSelections, submissions and\ndownloads will appear here."))
		return s.String()
	}

	visibleLines := m.height - 8 // borders, padding, title
	if visibleLines < 5 {
		visibleLines = 5
	}

	startIdx := m.outputScrollOffset
	if startIdx >= len(m.outputSummary) {
		startIdx = len(m.outputSummary) - 1
	}
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := startIdx + visibleLines
	if endIdx > len(m.outputSummary) {
		endIdx = len(m.outputSummary)
	}

	s.WriteString(strings.Join(m.outputSummary[startIdx:endIdx], "\n"))

	if len(m.outputSummary) > visibleLines {
		s.WriteString("\n\n" + helpStyle.Render("[ / ] or mouse wheel to scroll"))
	}

	return s.String()
}

func (m *Model) addToOutputSummary(item string) {
	m.outputSummary = append(m.outputSummary, item)
}

func formatSessionAction(action string) string {
	return sessionActionStyle.Render(action)
}

// formatSessionStatus formats a status line with key: value format and intelligent coloring
func formatSessionStatus(key, value string) string {
	keyStyled := sessionStatusStyle.Render(key + ": ")
	valueStyled := determineValueStyle(key, value).Render(value)
	return keyStyled + valueStyled
}

// determineValueStyle picks a color for a status value from its key and content
func determineValueStyle(key, value string) lipgloss.Style {
	lowerKey := strings.ToLower(key)
	lowerValue := strings.ToLower(value)

	switch lowerKey {
	case "file", "saved":
		return sessionWarningValueStyle
	case "error", "reason":
		return sessionErrorValueStyle
	case "contracts found":
		if !strings.HasPrefix(lowerValue, "0 ") {
			return sessionSuccessValueStyle
		}
		return sessionWarningValueStyle
	}

	successPatterns := []string{"complete", "success", "found", "saved", "exported"}
	for _, pattern := range successPatterns {
		if strings.Contains(lowerValue, pattern) {
			return sessionSuccessValueStyle
		}
	}

	errorPatterns := []string{"error", "failed", "invalid", "too large", "unsupported"}
	for _, pattern := range errorPatterns {
		if strings.Contains(lowerValue, pattern) {
			return sessionErrorValueStyle
		}
	}

	warningPatterns := []string{"ignored", "skipped", "cancel"}
	for _, pattern := range warningPatterns {
		if strings.Contains(lowerValue, pattern) || strings.Contains(lowerKey, pattern) {
			return sessionWarningValueStyle
		}
	}

	return sessionNeutralValueStyle
}

func (m *Model) addFormattedAction(action string) {
	m.addToOutputSummary(formatSessionAction(action))
}

func (m *Model) addFormattedStatus(key, value string) {
	m.addToOutputSummary(formatSessionStatus(key, value))
}

func (m *Model) addFormattedStatusIndented(key, value string) {
	m.addToOutputSummary("  " + formatSessionStatus(key, value))
}
