package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"contract-extractor/models"
)

const (
	// NotAvailable replaces empty field values.
	NotAvailable = "N/A"
	// FallbackError is shown when a failure payload carries no message.
	FallbackError = "Unexpected response from the extraction service."
)

type Row struct {
	Label string
	Value string
}

type Section struct {
	Title string
	Rows  []Row
}

// View is the complete rendered content of the results area. The zero value
// is an empty area.
type View struct {
	Sections []Section
	Err      string
	// DownloadVisible is set once at least one result has been rendered.
	DownloadVisible bool
}

func (v View) IsError() bool {
	return v.Err != ""
}

func (v View) IsEmpty() bool {
	return v.Err == "" && len(v.Sections) == 0
}

// Render builds a fresh view for payload. A payload without results renders
// as an error.
func Render(payload models.Payload) View {
	if !payload.HasResults() {
		return Error(payload.Message)
	}

	view := View{Sections: make([]Section, 0, len(payload.Results))}
	for _, contract := range payload.Results {
		section := Section{
			Title: TitleCase(contract.Key),
			Rows:  make([]Row, 0, len(contract.Fields)),
		}
		for _, field := range contract.Fields {
			value := field.Value
			if field.Missing || value == "" {
				value = NotAvailable
			}
			section.Rows = append(section.Rows, Row{Label: TitleCase(field.Key), Value: value})
		}
		view.Sections = append(view.Sections, section)
	}
	view.DownloadVisible = len(view.Sections) > 0

	return view
}

// Error builds an error view, falling back to a generic message.
func Error(message string) View {
	message = strings.TrimSpace(message)
	if message == "" {
		message = FallbackError
	}
	return View{Err: message}
}

// TitleCase turns an underscore-separated token such as
// "key_dates_and_deadlines" into "Key Dates And Deadlines". Every underscore
// becomes exactly one space.
func TitleCase(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
