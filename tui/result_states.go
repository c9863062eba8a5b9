package tui

import (
	"strings"

	"contract-extractor/render"
)

// syncResults pushes the controller's current view into the results viewport
func (m *Model) syncResults() {
	m.results.SetContent(m.formatView(m.ctrl.View()))
}

// formatView lays out a rendered view for the results area
func (m Model) formatView(view render.View) string {
	if view.IsEmpty() {
		if m.screen.Busy {
			return helpStyle.Render("Waiting for the extraction service...")
		}
		return ""
	}

	width := m.results.Width
	if width <= 0 {
		width = 60
	}

	var s strings.Builder

	if view.IsError() {
		s.WriteString(errorTitleStyle.Render("Error") + "\n")
		for _, line := range m.wrapText(view.Err, width) {
			s.WriteString(errorStyle.Render(line) + "\n")
		}
		return s.String()
	}

	for i, section := range view.Sections {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(sectionTitleStyle.Render(section.Title) + "\n")
		for _, row := range section.Rows {
			s.WriteString(fieldLabelStyle.Render(row.Label+":") + "\n")
			valueStyle := successStyle
			if row.Value == render.NotAvailable {
				valueStyle = fieldMissingStyle
			}
			for _, line := range m.wrapText(row.Value, width-2) {
				s.WriteString("  " + valueStyle.Render(line) + "\n")
			}
		}
	}

	return s.String()
}
