package ui

import (
	"fmt"
	"io"
	"strings"

	"contract-extractor/render"
)

// ANSI color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
)

// Color helper functions
func ColorTitle(text string) string     { return ColorCyan + ColorBold + text + ColorReset }
func ColorSuccess(text string) string   { return ColorGreen + ColorBold + text + ColorReset }
func ColorError(text string) string     { return ColorRed + ColorBold + text + ColorReset }
func ColorWarning(text string) string   { return ColorYellow + text + ColorReset }
func ColorSection(text string) string   { return ColorBlue + ColorBold + text + ColorReset }
func ColorHighlight(text string) string { return ColorCyan + text + ColorReset }
func ColorDimText(text string) string   { return ColorDim + ColorWhite + text + ColorReset }

const boxWidth = 60

// PrintBanner displays the application banner
func PrintBanner(w io.Writer, endpoint string) {
	fmt.Fprintln(w, ColorTitle("    ╔══════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, ColorTitle("    ║  Contract Extractor                              ║"))
	fmt.Fprintln(w, ColorTitle("    ╚══════════════════════════════════════════════════╝"))
	fmt.Fprintln(w, ColorDimText("    Service: "+endpoint))
	fmt.Fprintln(w)
}

// PrintSectionHeader prints a formatted section header
func PrintSectionHeader(w io.Writer, title string) {
	headerContent := fmt.Sprintf("─ %s ", title)
	remainingWidth := boxWidth - len([]rune(headerContent))
	if remainingWidth < 0 {
		remainingWidth = 0
	}
	fmt.Fprintln(w, ColorSection("┌"+headerContent+strings.Repeat("─", remainingWidth)+"┐"))
}

// PrintSectionFooter prints a formatted section footer
func PrintSectionFooter(w io.Writer) {
	fmt.Fprintln(w, ColorSection("└"+strings.Repeat("─", boxWidth)+"┘"))
}

// PrintView writes a rendered results view. Error views print the message
// only; result views print one boxed section per contract.
func PrintView(w io.Writer, view render.View) {
	if view.IsError() {
		fmt.Fprintln(w, ColorError("Error: ")+view.Err)
		return
	}

	if view.IsEmpty() {
		fmt.Fprintln(w, ColorDimText("No results."))
		return
	}

	for _, section := range view.Sections {
		PrintSectionHeader(w, section.Title)
		for _, row := range section.Rows {
			value := ColorHighlight(row.Value)
			if row.Value == render.NotAvailable {
				value = ColorDimText(row.Value)
			}
			fmt.Fprintf(w, "  %s: %s\n", ColorWarning(row.Label), value)
		}
		PrintSectionFooter(w)
	}

	PrintResultsSummary(w, "Contracts", len(view.Sections))
}

// PrintResultsSummary prints a summary of results for a category
func PrintResultsSummary(w io.Writer, category string, count int) {
	if count > 0 {
		fmt.Fprintf(w, ColorSuccess("  %s: %s found\n"), category, ColorHighlight(fmt.Sprintf("%d", count)))
	} else {
		fmt.Fprintf(w, ColorDimText("  %s: none found\n"), category)
	}
}
