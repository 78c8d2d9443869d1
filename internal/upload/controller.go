package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/facelapse/internal/dom"
	"github.com/desertthunder/facelapse/internal/events"
	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/shared"
)

// Element ids the controller binds to.
const (
	FormID   = "upload-form"
	ButtonID = "upload-folder-button"
	InputID  = "folder-input"
	StatusID = "status-text"
)

// listenerAttached is the dataset key marking an element as already wired.
const listenerAttached = "listenerAttached"

// Uploader sends an upload request to the processing service.
type Uploader interface {
	Upload(ctx context.Context, req *services.UploadRequest) (*services.APIResponse, error)
}

// View holds the elements the controller needs. Any of them may be nil.
type View struct {
	Form   *dom.Element
	Button *dom.Element
	Input  *dom.Element
	Status *dom.Element
}

// ViewFrom looks up the controller's elements in doc.
func ViewFrom(doc *dom.Document) View {
	return View{
		Form:   doc.GetElementByID(FormID),
		Button: doc.GetElementByID(ButtonID),
		Input:  doc.GetElementByID(InputID),
		Status: doc.GetElementByID(StatusID),
	}
}

func (v View) complete() bool {
	return v.Form != nil && v.Button != nil && v.Input != nil && v.Status != nil
}

// Options configures a [Controller].
type Options struct {
	Context  context.Context // Bounds uploads started by listeners; defaults to [context.Background]
	Bus      events.Bus
	Client   Uploader
	MaxBytes int64 // Selection budget; defaults to [DefaultMaxBytes]
	Logger   *log.Logger
}

// Controller validates selections and uploads them.
type Controller struct {
	ctx      context.Context
	bus      events.Bus
	client   Uploader
	maxBytes int64
	logger   *log.Logger
}

// NewController creates a [Controller] from opts.
func NewController(opts Options) *Controller {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Controller{
		ctx:      opts.Context,
		bus:      opts.Bus,
		client:   opts.Client,
		maxBytes: opts.MaxBytes,
		logger:   shared.WithLogger(opts.Logger, "component", "upload"),
	}
}

// Mount wires the controller into every page announced on the bus and returns a function that stops it.
func (c *Controller) Mount() func() {
	return events.On(c.bus, events.PageInitializedEvent, func(p events.PageInitialized) {
		if p.Document != nil {
			c.Init(ViewFrom(p.Document))
		}
	})
}

// Init attaches the button and input listeners to v.
//
// Each element is wired at most once no matter how often Init runs. Init does nothing when an
// element is missing and reports whether any listener was attached.
func (c *Controller) Init(v View) bool {
	if !v.complete() {
		c.logger.Debug("upload view incomplete, skipping init")
		return false
	}

	attached := false
	if v.Button.ClaimData(listenerAttached, "true") {
		v.Button.AddEventListener(dom.EventClick, func(ev *dom.Event) {
			ev.PreventDefault()
			v.Input.Click()
		})
		attached = true
	}

	if v.Input.ClaimData(listenerAttached, "true") {
		v.Input.AddEventListener(dom.EventChange, func(ev *dom.Event) {
			_ = c.HandleSelection(c.ctx, v, ev.Target.Files())
		})
		attached = true
	}
	return attached
}

// HandleSelection validates sel and, when it is accepted, uploads it.
//
// Every failure is logged, published as an error notification, and returned as a [*Failure].
// On success the status reads [MsgGenerating] and a video-ready event carries the returned path.
func (c *Controller) HandleSelection(ctx context.Context, v View, sel models.Selection) error {
	outcome := Validate(sel, c.maxBytes)
	if !outcome.Accepted() {
		var f *Failure
		errors.As(outcome.Reason, &f)
		return c.fail(f, "total_bytes", outcome.TotalBytes)
	}

	v.Status.SetText(fmt.Sprintf(MsgUploading, len(outcome.Files)))

	req := &services.UploadRequest{
		ID:     shared.GenerateID(),
		Fields: v.Form.FormData(),
		Files:  outcome.Files,
	}
	logger := c.logger.With("request_id", req.ID)
	logger.Info("uploading selection", "files", len(req.Files), "skipped", len(outcome.Skipped), "bytes", outcome.TotalBytes)

	resp, err := c.client.Upload(ctx, req)
	if err != nil {
		return c.fail(&Failure{Err: shared.ErrNetworkFailure, Message: MsgNetworkFailure, Cause: err}, "request_id", req.ID)
	}

	if !resp.OK() {
		return c.fail(&Failure{Err: shared.ErrServerRejected, Message: rejectionMessage(resp)},
			"request_id", req.ID, "status", resp.StatusCode)
	}

	var result models.UploadResult
	if err := resp.Decode(&result); err != nil {
		return c.fail(&Failure{Err: shared.ErrMalformedResponse, Message: MsgMalformedResponse, Cause: err}, "request_id", req.ID)
	}
	if err := services.CheckVideoPath(result.VideoPath); err != nil {
		return c.fail(&Failure{Err: shared.ErrMalformedResponse, Message: MsgMalformedResponse, Cause: err}, "request_id", req.ID)
	}

	logger.Info("video ready", "video_path", result.VideoPath)
	v.Status.SetText(MsgGenerating)
	events.PublishVideoReady(c.bus, result.VideoPath)
	return nil
}

func (c *Controller) fail(f *Failure, kv ...any) error {
	c.logger.Error(f.Message, append(kv, "error", f)...)
	events.PublishError(c.bus, f.Message, f)
	return f
}

// rejectionMessage returns the body's error text, or [MsgServerRejected] when there is none.
func rejectionMessage(resp *services.APIResponse) string {
	var eb models.ErrorBody
	if err := resp.Decode(&eb); err != nil || eb.Error == "" {
		return MsgServerRejected
	}
	return eb.Error
}
