package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contract-extractor/extract"
	"contract-extractor/render"
	"contract-extractor/selection"
)

// NoSelectionMessage is the local validation error for a submit without a file.
const NoSelectionMessage = "Please select a file to upload."

var (
	ErrNoSelection = errors.New("no file selected")
	ErrSubmitting  = errors.New("a submission is already in flight")
)

// State is the submission lifecycle state.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// ErrorKind records where the message of an error view came from. It does
// not affect presentation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindTransport
	KindApplication
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	default:
		return "none"
	}
}

// Extractor sends one document to the extraction service.
type Extractor interface {
	Extract(ctx context.Context, file selection.File) (*extract.Response, error)
}

// Attempt is one submission in flight.
type Attempt struct {
	ID      string
	File    selection.File
	Started time.Time
	client  Extractor
}

// Outcome is how an attempt settled.
type Outcome struct {
	ID       string
	Response *extract.Response
	Err      error
	Elapsed  time.Duration
}

// Run issues exactly one request. It always returns an outcome, a panic in
// the transport included, so the attempt can be settled on every path.
func (a *Attempt) Run(ctx context.Context) (o Outcome) {
	o.ID = a.ID
	defer func() {
		if r := recover(); r != nil {
			o.Response = nil
			o.Err = fmt.Errorf("extraction failed: %v", r)
		}
		o.Elapsed = time.Since(a.Started)
	}()

	o.Response, o.Err = a.client.Extract(ctx, a.File)
	return o
}

// Controller is the submission state machine.
type Controller struct {
	holder  *selection.Holder
	client  Extractor
	surface Surface
	log     logrus.FieldLogger

	state    State
	inFlight string
	view     render.View
	kind     ErrorKind
}

func New(holder *selection.Holder, client Extractor, surface Surface, log logrus.FieldLogger) *Controller {
	c := &Controller{
		holder:  holder,
		client:  client,
		surface: surface,
		log:     log,
	}
	surface.SetBusy(false)
	surface.SetDownloadVisible(false)
	holder.Observe(func(f selection.File) {
		c.refreshSubmit()
		if f != nil {
			c.log.WithField("file", f.Name()).Debug("selection changed")
		} else {
			c.log.Debug("selection cleared")
		}
	})
	return c
}

func (c *Controller) State() State {
	return c.state
}

// View is the content currently rendered in the results area.
func (c *Controller) View() render.View {
	return c.view
}

// ErrorKind is the source of the current error view, or KindNone.
func (c *Controller) ErrorKind() ErrorKind {
	return c.kind
}

func (c *Controller) CanSubmit() bool {
	return c.state == Idle && c.holder.Present()
}

// Submit starts a submission. Without a selection it renders a validation
// error and returns ErrNoSelection; while another submission is in flight it
// does nothing and returns ErrSubmitting. Otherwise the controller enters
// Submitting and the returned attempt must be run and then settled.
func (c *Controller) Submit() (*Attempt, error) {
	if c.state == Submitting {
		c.log.Debug("submit ignored while submitting")
		return nil, ErrSubmitting
	}

	file := c.holder.Current()
	if file == nil {
		c.show(render.Error(NoSelectionMessage), KindValidation)
		c.log.Warn("submit without a selected file")
		return nil, ErrNoSelection
	}

	a := &Attempt{
		ID:      uuid.NewString(),
		File:    file,
		Started: time.Now(),
		client:  c.client,
	}

	c.state = Submitting
	c.inFlight = a.ID
	c.surface.SetSubmitEnabled(false)
	c.surface.SetBusy(true)
	c.show(render.View{}, KindNone)

	c.log.WithFields(logrus.Fields{
		"submission_id": a.ID,
		"file":          file.Name(),
	}).Info("submission started")

	return a, nil
}

// Settle renders the outcome of the attempt in flight and returns the
// controller to Idle. Outcomes of any other attempt are ignored, so the
// transition happens once per attempt.
func (c *Controller) Settle(o Outcome) bool {
	if c.state != Submitting || o.ID == "" || o.ID != c.inFlight {
		c.log.WithField("submission_id", o.ID).Debug("stale outcome ignored")
		return false
	}

	view, kind := Resolve(o)
	c.show(view, kind)

	c.state = Idle
	c.inFlight = ""
	c.surface.SetBusy(false)
	c.refreshSubmit()

	entry := c.log.WithFields(logrus.Fields{
		"submission_id": o.ID,
		"elapsed":       o.Elapsed.String(),
	})
	if o.Response != nil {
		entry = entry.WithField("status", o.Response.StatusCode)
	}
	if view.IsError() {
		entry.WithField("kind", kind.String()).WithField("error", view.Err).Warn("submission failed")
	} else {
		entry.WithField("contracts", len(view.Sections)).Info("submission rendered")
	}

	return true
}

// Do runs a complete submission on the calling goroutine.
func (c *Controller) Do(ctx context.Context) (render.View, error) {
	a, err := c.Submit()
	if err != nil {
		return c.view, err
	}

	c.Settle(a.Run(ctx))
	return c.view, nil
}

// Resolve maps an outcome to the view to render and the source of its error
// message. A results mapping wins over the status code.
func Resolve(o Outcome) (render.View, ErrorKind) {
	if o.Err != nil {
		return render.Error(o.Err.Error()), KindTransport
	}

	resp := o.Response
	if resp == nil {
		return render.Error(""), KindTransport
	}

	if resp.Payload.HasResults() {
		return render.Render(resp.Payload), KindNone
	}

	if resp.OK() {
		if resp.DecodeErr != nil {
			// carries the body's message when one was decoded
			return render.Error(resp.Payload.Message), KindTransport
		}
		return render.Error(resp.Payload.Message), KindApplication
	}

	message := resp.Payload.Message
	if resp.DecodeErr != nil || message == "" {
		message = resp.StatusText
	}
	return render.Error(message), KindApplication
}

func (c *Controller) show(view render.View, kind ErrorKind) {
	c.view = view
	c.kind = kind
	c.surface.ShowView(view)
	c.surface.SetDownloadVisible(view.DownloadVisible)
}

func (c *Controller) refreshSubmit() {
	c.surface.SetSubmitEnabled(c.CanSubmit())
}
