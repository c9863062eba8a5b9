package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"contract-extractor/controller"
	"contract-extractor/extract"
	"contract-extractor/input"
	"contract-extractor/logger"
	"contract-extractor/models"
	"contract-extractor/selection"
	"contract-extractor/tui"
	"contract-extractor/ui"
	"contract-extractor/utils"
)

func main() {
	var (
		configFile  = flag.String("c", "", "Path to configuration file (YAML)")
		endpoint    = flag.String("e", "", "Extraction service base URL (overrides config)")
		file        = flag.String("f", "", "Document to extract; runs without the interactive UI")
		output      = flag.String("o", "", "Write the rendered results as YAML to this file (with -f)")
		startDir    = flag.String("d", "", "Starting directory for the file browser")
		interactive = flag.Bool("i", false, "Open the interactive UI with -f preselected")
		help        = flag.Bool("h", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Contract Extractor - Extract key terms from contract documents\n\n")
		fmt.Fprintf(os.Stderr, "Uploads a document to the extraction service and shows the fields it\n")
		fmt.Fprintf(os.Stderr, "finds for each contract. Without -f an interactive terminal UI is started.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	cfg, err := models.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ColorError("Error: ")+err.Error())
		os.Exit(1)
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if *startDir != "" {
		cfg.StartDir = *startDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ColorError("Error: ")+err.Error())
		os.Exit(1)
	}

	log, closer, err := logger.New(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ColorError("Error: ")+err.Error())
		os.Exit(1)
	}
	defer closer.Close()

	if *file == "" || *interactive {
		if err := tui.Run(cfg, log, *file); err != nil {
			log.WithError(err).Error("interactive session failed")
			fmt.Fprintln(os.Stderr, ui.ColorError("Error: ")+err.Error())
			os.Exit(1)
		}
		return
	}

	if !runCommandLineMode(cfg, log, *file, *output) {
		closer.Close()
		os.Exit(1)
	}
}

// runCommandLineMode submits one document and prints the rendered results.
// It reports whether results were rendered.
func runCommandLineMode(cfg *models.Config, log *logrus.Logger, path, output string) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintBanner(os.Stdout, cfg.ExtractURL())

	screen := controller.NewScreen()
	holder := selection.NewHolder(screen)
	browse := input.NewBrowse(holder)
	if err := browse.ChoosePaths([]string{path}); err != nil {
		log.WithError(err).Warn("selection rejected")
		fmt.Fprintln(os.Stderr, ui.ColorWarning(err.Error()))
	}

	client := extract.NewClient(cfg)
	ctrl := controller.New(holder, client, screen, log)

	fmt.Printf("  Uploading %s...\n\n", ui.ColorHighlight(selection.DisplayText(holder.Current())))
	view, _ := ctrl.Do(ctx)
	ui.PrintView(os.Stdout, view)

	if output != "" && !view.IsError() {
		writer := utils.NewYAMLWriter()
		if err := writer.WriteView(view, selection.DisplayText(holder.Current()), output); err != nil {
			log.WithError(err).Error("export failed")
			fmt.Fprintln(os.Stderr, ui.ColorError("Error: ")+err.Error())
			return false
		}
		fmt.Printf("\n%s %s\n", ui.ColorSuccess("Results written to"), ui.ColorHighlight(output))
	}

	return !view.IsError()
}
