package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"contract-extractor/controller"
	"contract-extractor/input"
	"contract-extractor/models"
	"contract-extractor/selection"
	"contract-extractor/utils"
)

// AppState represents the current state of the application
type AppState int

const (
	StateHome AppState = iota
	StateBrowse
)

// Downloader fetches the service's last extraction output.
type Downloader interface {
	Download(ctx context.Context, w io.Writer) (int64, error)
}

// Model represents the main TUI model
type Model struct {
	state  AppState
	width  int
	height int

	// Pane layout
	leftPaneWidth  int
	rightPaneWidth int
	showRightPane  bool

	cfg        *models.Config
	log        logrus.FieldLogger
	ctx        context.Context
	downloader Downloader
	writer     *utils.YAMLWriter

	// Core state machine and the UI handles it drives
	screen *controller.Screen
	holder *selection.Holder
	ctrl   *controller.Controller
	browse *input.Browse
	drop   *input.DropZone

	// UI components
	picker      filepicker.Model
	spinner     spinner.Model
	progressBar progress.Model
	results     viewport.Model
	keys        KeyMap
	help        help.Model

	// Upload progress of the submission in flight
	uploadSent  int64
	uploadTotal int64

	downloading bool
	notice      string
	noticeError bool
	noticeSeq   int

	// Output summary for right pane
	outputSummary      []string
	outputScrollOffset int
}

// NewModel creates a new TUI model
func NewModel(cfg *models.Config, extractor controller.Extractor, downloader Downloader, log logrus.FieldLogger) Model {
	screen := controller.NewScreen()
	holder := selection.NewHolder(screen)

	picker := filepicker.New()
	picker.CurrentDirectory = cfg.StartDir
	picker.ShowHidden = cfg.ShowHidden
	picker.AutoHeight = true

	results := viewport.New(0, 0)
	results.KeyMap.Up = key.NewBinding(key.WithKeys("up", "k"))
	results.KeyMap.Down = key.NewBinding(key.WithKeys("down", "j"))
	results.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	results.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	results.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	results.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))

	return Model{
		state:         StateHome,
		cfg:           cfg,
		log:           log,
		ctx:           context.Background(),
		downloader:    downloader,
		writer:        utils.NewYAMLWriter(),
		screen:        screen,
		holder:        holder,
		ctrl:          controller.New(holder, extractor, screen, log),
		browse:        input.NewBrowse(holder),
		drop:          input.NewDropZone(holder),
		picker:        picker,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		progressBar:   progress.New(progress.WithDefaultGradient()),
		results:       results,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		showRightPane: false,
		outputSummary: []string{},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Preselect fills the selection before the program starts, as a browse
// completion would.
func (m Model) Preselect(path string) (Model, error) {
	err := m.browse.ChoosePaths([]string{path})
	return m, err
}
