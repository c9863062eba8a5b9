package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"contract-extractor/controller"
	"contract-extractor/extract"
	"contract-extractor/logger"
	"contract-extractor/models"
	"contract-extractor/selection"
)

type stubExtractor struct {
	body   string
	status int
	calls  int
}

func (s *stubExtractor) Extract(ctx context.Context, file selection.File) (*extract.Response, error) {
	s.calls++
	resp := &extract.Response{StatusCode: s.status, StatusText: "status"}
	resp.Payload, resp.DecodeErr = extract.DecodePayload([]byte(s.body))
	return resp, nil
}

type stubDownloader struct{}

func (stubDownloader) Download(ctx context.Context, w io.Writer) (int64, error) {
	n, err := io.WriteString(w, `[{"party_information":"A"}]`)
	return int64(n), err
}

func newTestModel(t *testing.T, ext *stubExtractor) Model {
	t.Helper()
	cfg := models.DefaultConfig
	cfg.OutputDir = t.TempDir()
	cfg.StartDir = t.TempDir()

	m := NewModel(&cfg, ext, stubDownloader{}, logger.Discard())
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func paste(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true}
}

func tempDocument(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("%PDF"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// settle runs the submission command and feeds its outcome back.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a submission command")
	}
	for _, msg := range collect(cmd) {
		if settled, ok := msg.(SubmissionSettledMsg); ok {
			return update(t, m, settled)
		}
	}
	t.Fatal("Expected a SubmissionSettledMsg")
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		if c != nil {
			msgs = append(msgs, collect(c)...)
		}
	}
	return msgs
}

func TestInitialScreen(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})

	if m.screen.Filename != selection.Placeholder {
		t.Errorf("Expected placeholder, got %q", m.screen.Filename)
	}
	if m.screen.SubmitEnabled || m.screen.DownloadVisible {
		t.Error("Expected submit disabled and download hidden")
	}
	if !strings.Contains(m.View(), selection.Placeholder) {
		t.Error("Expected the placeholder in the view")
	}
}

func TestPasteDropSelectsFile(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})
	first := tempDocument(t, "first.pdf")
	second := tempDocument(t, "second.pdf")

	m = update(t, m, paste(first+" "+second))

	if m.screen.Filename != "first.pdf" {
		t.Errorf("Expected first.pdf, got %q", m.screen.Filename)
	}
	if !m.screen.SubmitEnabled {
		t.Error("Expected submit enabled after a drop")
	}
	if m.drop.Highlighted() {
		t.Error("Expected the highlight removed after a drop")
	}
}

func TestEmptyPasteIsIgnored(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})
	path := tempDocument(t, "kept.pdf")
	m = update(t, m, paste(path))

	m = update(t, m, paste("  "))
	if m.screen.Filename != "kept.pdf" {
		t.Errorf("Expected the selection kept, got %q", m.screen.Filename)
	}
}

func TestFocusDrivesHighlight(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})

	m = update(t, m, tea.FocusMsg{})
	if !m.drop.Highlighted() {
		t.Error("Expected highlight on focus")
	}
	m = update(t, m, tea.BlurMsg{})
	if m.drop.Highlighted() {
		t.Error("Expected highlight off on blur")
	}
}

func TestSubmitWithoutFile(t *testing.T) {
	ext := &stubExtractor{}
	m := newTestModel(t, ext)

	next, cmd := m.Update(keyPress("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a submit request")
	}
	m = update(t, m, cmd())

	if ext.calls != 0 {
		t.Error("Expected no request without a file")
	}
	if m.ctrl.View().Err != controller.NoSelectionMessage {
		t.Errorf("Expected validation error, got %q", m.ctrl.View().Err)
	}
	if !strings.Contains(m.results.View(), controller.NoSelectionMessage) {
		t.Error("Expected the validation error in the results area")
	}
}

func TestSubmitRendersResults(t *testing.T) {
	ext := &stubExtractor{
		status: 200,
		body:   `{"results":{"Contract 1":{"party_information":"Acme Corp","key_dates_and_deadlines":null}},"download_url":"/download"}`,
	}
	m := newTestModel(t, ext)
	m = update(t, m, paste(tempDocument(t, "lease.pdf")))

	next, cmd := m.Update(SubmitRequestedMsg{})
	m = next.(Model)
	if m.ctrl.State() != controller.Submitting || !m.screen.Busy {
		t.Fatal("Expected the controller to be submitting")
	}
	if m.screen.SubmitLabel != controller.BusyLabel {
		t.Errorf("Expected busy label, got %q", m.screen.SubmitLabel)
	}

	// A second request while in flight does nothing.
	if _, again := m.Update(SubmitRequestedMsg{}); again != nil {
		t.Error("Expected no command for a re-entrant submit")
	}

	m = settle(t, m, cmd)

	if ext.calls != 1 {
		t.Errorf("Expected one request, got %d", ext.calls)
	}
	if m.ctrl.State() != controller.Idle || m.screen.Busy {
		t.Error("Expected idle after settling")
	}
	if !m.screen.DownloadVisible || !m.keys.Download.Enabled() {
		t.Error("Expected download visible after results")
	}

	content := m.results.View()
	for _, want := range []string{"Contract 1", "Party Information", "Acme Corp", "Key Dates And Deadlines", "N/A"} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected %q in results:\n%s", want, content)
		}
	}
}

func TestSubmitRendersServiceMessage(t *testing.T) {
	ext := &stubExtractor{status: 413, body: `{"message":"file too large"}`}
	m := newTestModel(t, ext)
	m = update(t, m, paste(tempDocument(t, "big.pdf")))

	next, cmd := m.Update(SubmitRequestedMsg{})
	m = settle(t, next.(Model), cmd)

	if m.ctrl.View().Err != "file too large" {
		t.Errorf("Expected 'file too large', got %q", m.ctrl.View().Err)
	}
	if m.screen.DownloadVisible || m.keys.Download.Enabled() {
		t.Error("Expected download hidden after an error")
	}
}

func TestDownloadSavesOutput(t *testing.T) {
	ext := &stubExtractor{status: 200, body: `{"results":{"Contract 1":{"a":"b"}}}`}
	m := newTestModel(t, ext)
	m = update(t, m, paste(tempDocument(t, "lease.pdf")))
	next, cmd := m.Update(SubmitRequestedMsg{})
	m = settle(t, next.(Model), cmd)

	next, cmd = m.Update(keyPress("d"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a download command")
	}
	done, ok := cmd().(DownloadDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("Expected a finished download, got %+v", done)
	}
	if filepath.Dir(done.Path) != m.cfg.OutputDir {
		t.Errorf("Expected output under %s, got %s", m.cfg.OutputDir, done.Path)
	}

	m = update(t, m, done)
	if m.downloading {
		t.Error("Expected the download to be finished")
	}
}

func TestDownloadHiddenWithoutResults(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})

	if _, cmd := m.Update(keyPress("d")); cmd != nil {
		t.Error("Expected no download before results")
	}
}

func TestBrowseOpenAndCancel(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})

	m = update(t, m, keyPress("b"))
	if m.state != StateBrowse || !m.browse.IsOpen() {
		t.Fatal("Expected the browser to open")
	}

	m = update(t, m, keyPress("esc"))
	if m.state != StateHome || m.browse.IsOpen() {
		t.Error("Expected the browser to close")
	}
	if m.holder.Present() {
		t.Error("Expected cancel to leave the selection empty")
	}
}

func TestClearSelection(t *testing.T) {
	m := newTestModel(t, &stubExtractor{})
	m = update(t, m, paste(tempDocument(t, "lease.pdf")))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if m.holder.Present() || m.screen.Filename != selection.Placeholder {
		t.Error("Expected the selection to be cleared")
	}
}
