package tui

import (
	"bytes"
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"contract-extractor/controller"
	"contract-extractor/render"
	"contract-extractor/utils"
)

func submitRequested() tea.Msg {
	return SubmitRequestedMsg{}
}

// submitCmd runs the attempt off the event loop. The outcome always comes
// back as a SubmissionSettledMsg.
func submitCmd(ctx context.Context, attempt *controller.Attempt) tea.Cmd {
	return func() tea.Msg {
		return SubmissionSettledMsg{Outcome: attempt.Run(ctx)}
	}
}

// downloadCmd saves the service output under outputDir.
func downloadCmd(ctx context.Context, downloader Downloader, writer *utils.YAMLWriter, outputDir string) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		n, err := downloader.Download(ctx, &buf)
		if err != nil {
			return DownloadDoneMsg{Err: err}
		}

		path, err := writer.SaveStream(outputDir, "output", ".json", &buf)
		return DownloadDoneMsg{Path: path, Bytes: n, Err: err}
	}
}

// exportCmd writes the rendered results as YAML under outputDir.
func exportCmd(writer *utils.YAMLWriter, view render.View, source, outputDir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(outputDir, utils.GenerateOutputFilename("results", ".yml"))
		if err := writer.WriteView(view, source, path); err != nil {
			return ExportDoneMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}
