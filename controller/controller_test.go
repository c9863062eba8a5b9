package controller

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"contract-extractor/extract"
	"contract-extractor/logger"
	"contract-extractor/render"
	"contract-extractor/selection"
)

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	resp  *extract.Response
	err   error
	panic bool
}

func (f *fakeExtractor) Extract(ctx context.Context, file selection.File) (*extract.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.panic {
		panic("transport exploded")
	}
	return f.resp, f.err
}

func (f *fakeExtractor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// countingScreen records how often the busy state is released.
type countingScreen struct {
	*Screen
	releases int
}

func (s *countingScreen) SetBusy(busy bool) {
	s.Screen.SetBusy(busy)
	if !busy {
		s.releases++
	}
}

func setup(ext Extractor) (*Controller, *selection.Holder, *countingScreen) {
	screen := &countingScreen{Screen: NewScreen()}
	holder := selection.NewHolder(screen)
	ctrl := New(holder, ext, screen, logger.Discard())
	screen.releases = 0
	return ctrl, holder, screen
}

func response(status int, body string) *extract.Response {
	resp := &extract.Response{StatusCode: status, StatusText: http.StatusText(status)}
	resp.Payload, resp.DecodeErr = extract.DecodePayload([]byte(body))
	return resp
}

func TestSubmitWithoutFile(t *testing.T) {
	ext := &fakeExtractor{}
	ctrl, _, screen := setup(ext)

	attempt, err := ctrl.Submit()
	if !errors.Is(err, ErrNoSelection) || attempt != nil {
		t.Fatalf("Expected ErrNoSelection, got %v", err)
	}
	if ext.Calls() != 0 {
		t.Error("Expected no request without a file")
	}
	if screen.View.Err != NoSelectionMessage {
		t.Errorf("Expected validation message, got %q", screen.View.Err)
	}
	if ctrl.ErrorKind() != KindValidation {
		t.Errorf("Expected validation kind, got %s", ctrl.ErrorKind())
	}
	if ctrl.State() != Idle || screen.Busy {
		t.Error("Expected to stay idle")
	}
}

func TestSubmitEnablement(t *testing.T) {
	ctrl, holder, screen := setup(&fakeExtractor{resp: response(200, `{"results":{}}`)})

	if screen.SubmitEnabled || ctrl.CanSubmit() {
		t.Error("Expected submit disabled without a file")
	}

	holder.Set(&selection.MemFile{FileName: "a.pdf"})
	if !screen.SubmitEnabled {
		t.Error("Expected submit enabled with a file")
	}

	attempt, err := ctrl.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if screen.SubmitEnabled || !screen.Busy || screen.SubmitLabel != BusyLabel {
		t.Errorf("Expected busy surface, got %+v", screen.Screen)
	}

	holder.Set(&selection.MemFile{FileName: "b.pdf"})
	if screen.SubmitEnabled {
		t.Error("Expected submit to stay disabled while submitting")
	}

	ctrl.Settle(attempt.Run(context.Background()))
	if !screen.SubmitEnabled || screen.Busy || screen.SubmitLabel != IdleLabel {
		t.Errorf("Expected idle surface, got %+v", screen.Screen)
	}
}

func TestSubmitIsNotReentrant(t *testing.T) {
	ext := &fakeExtractor{resp: response(200, `{"results":{"Contract 1":{"a":"b"}}}`)}
	ctrl, holder, _ := setup(ext)
	holder.Set(&selection.MemFile{FileName: "a.pdf"})

	attempt, err := ctrl.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	second, err := ctrl.Submit()
	if !errors.Is(err, ErrSubmitting) || second != nil {
		t.Fatalf("Expected ErrSubmitting, got %v", err)
	}

	ctrl.Settle(attempt.Run(context.Background()))
	if ext.Calls() != 1 {
		t.Errorf("Expected exactly one request, got %d", ext.Calls())
	}
}

func TestSubmitClearsPreviousResults(t *testing.T) {
	ctrl, holder, screen := setup(&fakeExtractor{resp: response(200, `{"results":{"Contract 1":{"a":"b"}}}`)})
	holder.Set(&selection.MemFile{FileName: "a.pdf"})

	if _, err := ctrl.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !screen.DownloadVisible || len(screen.View.Sections) != 1 {
		t.Fatalf("Expected rendered results, got %+v", screen.View)
	}

	if _, err := ctrl.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !screen.View.IsEmpty() || screen.DownloadVisible {
		t.Error("Expected the results area to be cleared while submitting")
	}
}

func TestSettleReleasesBusyOnce(t *testing.T) {
	ctrl, holder, screen := setup(&fakeExtractor{resp: response(200, `{"results":{}}`)})
	holder.Set(&selection.MemFile{FileName: "a.pdf"})

	attempt, _ := ctrl.Submit()
	outcome := attempt.Run(context.Background())

	if !ctrl.Settle(outcome) {
		t.Fatal("Expected the first settle to apply")
	}
	if ctrl.Settle(outcome) {
		t.Error("Expected a repeated settle to be ignored")
	}
	if ctrl.Settle(Outcome{ID: "stale"}) {
		t.Error("Expected a stale outcome to be ignored")
	}
	if screen.releases != 1 {
		t.Errorf("Expected busy released once, got %d", screen.releases)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	ctrl, holder, screen := setup(&fakeExtractor{panic: true})
	holder.Set(&selection.MemFile{FileName: "a.pdf"})

	view, err := ctrl.Do(context.Background())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !view.IsError() || ctrl.ErrorKind() != KindTransport {
		t.Errorf("Expected a transport error view, got %+v", view)
	}
	if ctrl.State() != Idle || screen.Busy || screen.releases != 1 {
		t.Error("Expected busy state released after a panic")
	}
}

func TestOutcomeResolution(t *testing.T) {
	tests := []struct {
		name     string
		resp     *extract.Response
		err      error
		wantErr  string
		wantKind ErrorKind
		sections int
	}{
		{
			name:     "results",
			resp:     response(200, `{"results":{"Contract 1":{"party_information":"A"},"Contract 2":{}}}`),
			sections: 2,
		},
		{
			name:     "results win over status",
			resp:     response(500, `{"results":{"Contract 1":{}}}`),
			sections: 1,
		},
		{
			name:     "body message on 413",
			resp:     response(413, `{"message":"file too large"}`),
			wantErr:  "file too large",
			wantKind: KindApplication,
		},
		{
			name:     "unsupported type",
			resp:     response(400, `{"message":"Unsupported file type."}`),
			wantErr:  "Unsupported file type.",
			wantKind: KindApplication,
		},
		{
			name:     "status text without message",
			resp:     response(503, `{}`),
			wantErr:  "Service Unavailable",
			wantKind: KindApplication,
		},
		{
			name:     "status text for non-json body",
			resp:     response(502, `<html></html>`),
			wantErr:  "Bad Gateway",
			wantKind: KindApplication,
		},
		{
			name:     "success without results",
			resp:     response(200, `{"message":"nothing found"}`),
			wantErr:  "nothing found",
			wantKind: KindApplication,
		},
		{
			name:     "false results keep the message",
			resp:     response(200, `{"results": false, "message": "no contracts"}`),
			wantErr:  "no contracts",
			wantKind: KindApplication,
		},
		{
			name:     "results list keeps the message",
			resp:     response(200, `{"results": [1], "message": "bad results"}`),
			wantErr:  "bad results",
			wantKind: KindTransport,
		},
		{
			name:     "success without anything",
			resp:     response(200, `{}`),
			wantErr:  render.FallbackError,
			wantKind: KindApplication,
		},
		{
			name:     "malformed success body",
			resp:     response(200, `not json`),
			wantKind: KindTransport,
		},
		{
			name:     "transport error",
			err:      errors.New("failed to send request: connection refused"),
			wantErr:  "failed to send request: connection refused",
			wantKind: KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, holder, screen := setup(&fakeExtractor{resp: tt.resp, err: tt.err})
			holder.Set(&selection.MemFile{FileName: "a.pdf"})

			view, err := ctrl.Do(context.Background())
			if err != nil {
				t.Fatalf("Do failed: %v", err)
			}

			if ctrl.ErrorKind() != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, ctrl.ErrorKind())
			}
			if tt.wantKind == KindNone {
				if view.IsError() || len(view.Sections) != tt.sections {
					t.Errorf("Expected %d sections, got %+v", tt.sections, view)
				}
				if screen.DownloadVisible != (tt.sections > 0) {
					t.Errorf("Unexpected download visibility %v", screen.DownloadVisible)
				}
			} else {
				if !view.IsError() {
					t.Fatalf("Expected an error view, got %+v", view)
				}
				if tt.wantErr != "" && view.Err != tt.wantErr {
					t.Errorf("Expected error %q, got %q", tt.wantErr, view.Err)
				}
				if screen.DownloadVisible {
					t.Error("Expected download hidden on error")
				}
			}
			if holder.Current() == nil {
				t.Error("Expected the selection to survive the submission")
			}
		})
	}
}

func TestDoAgainstService(t *testing.T) {
	// The download affordance only appears after results.
	ctrl, holder, screen := setup(&fakeExtractor{resp: response(200, `{"results":{"Contract 1":{"type_of_contract":"NDA","key_dates_and_deadlines":null}}}`)})
	holder.Set(&selection.MemFile{FileName: "a.pdf"})

	if screen.DownloadVisible {
		t.Fatal("Expected download hidden before results")
	}
	view, _ := ctrl.Do(context.Background())

	rows := view.Sections[0].Rows
	if rows[0] != (render.Row{Label: "Type Of Contract", Value: "NDA"}) {
		t.Errorf("Unexpected row %+v", rows[0])
	}
	if rows[1] != (render.Row{Label: "Key Dates And Deadlines", Value: render.NotAvailable}) {
		t.Errorf("Unexpected row %+v", rows[1])
	}
	if !screen.DownloadVisible {
		t.Error("Expected download visible after results")
	}
}
