package page

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/facelapse/internal/dom"
	"github.com/desertthunder/facelapse/internal/events"
	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/present"
	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/desertthunder/facelapse/internal/upload"
)

// Options configures a [Host].
type Options struct {
	Context   context.Context
	BaseURL   string
	Client    upload.Uploader
	MaxBytes  int64
	SortOrder string
	Logger    *log.Logger
	OnPlay    func(src string) // Called each time the video starts playing
}

// Session is one lifetime of the page.
type Session struct {
	ID         string
	Doc        *dom.Document
	Bus        *events.EventBus
	Controller *upload.Controller
	Presenter  *present.Presenter

	logger *log.Logger

	mu      sync.Mutex
	dir     string
	lastErr *events.ErrorNotification
	unsubs  []func()
}

func newSession(opts Options, reloader present.Reloader) *Session {
	id := shared.GenerateID()
	doc := NewDocument(opts.SortOrder)
	bus := events.New()
	logger := shared.WithLogger(opts.Logger, "session", id)

	s := &Session{
		ID:     id,
		Doc:    doc,
		Bus:    bus,
		logger: logger,
		Controller: upload.NewController(upload.Options{
			Context:  opts.Context,
			Bus:      bus,
			Client:   opts.Client,
			MaxBytes: opts.MaxBytes,
			Logger:   logger,
		}),
		Presenter: present.New(present.Options{
			Bus:      bus,
			View:     present.ViewFrom(doc),
			BaseURL:  opts.BaseURL,
			Reloader: reloader,
			Logger:   logger,
		}),
	}

	s.unsubs = append(s.unsubs,
		s.Controller.Mount(),
		s.Presenter.Mount(),
		events.On(bus, events.ErrorNotificationEvent, s.recordError),
	)

	doc.GetElementByID(upload.InputID).AddEventListener(dom.EventClick, s.pick)
	if opts.OnPlay != nil {
		doc.GetElementByID(present.VideoID).AddEventListener(dom.EventPlay, func(ev *dom.Event) {
			opts.OnPlay(ev.Target.Attr("src"))
		})
	}
	return s
}

// pick plays the part of the platform folder picker: it fills the input with the chosen folder's
// files and signals the selection.
func (s *Session) pick(ev *dom.Event) {
	s.mu.Lock()
	dir := s.dir
	s.mu.Unlock()

	var sel models.Selection
	if dir != "" {
		var err error
		if sel, err = PickFolder(dir); err != nil {
			s.logger.Error("folder picker failed", "dir", dir, "error", err)
			events.PublishError(s.Bus, PickerFailedMessage, err)
			return
		}
	}

	s.logger.Debug("folder picked", "dir", dir, "files", len(sel))
	ev.Target.SetFiles(sel)
	ev.Target.Dispatch(dom.EventChange)
}

func (s *Session) recordError(n events.ErrorNotification) {
	s.mu.Lock()
	s.lastErr = &n
	s.mu.Unlock()
}

// Choose selects dir through the upload button, as a user would, and returns the failure it caused.
//
// An empty dir behaves like a cancelled picker. The call returns once the upload attempt is over.
func (s *Session) Choose(dir string) error {
	s.mu.Lock()
	s.dir = dir
	s.lastErr = nil
	s.mu.Unlock()

	s.Doc.GetElementByID(upload.ButtonID).Click()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		return s.lastErr.Err
	}
	return nil
}

// LastError returns the most recent error notification, if any.
func (s *Session) LastError() (events.ErrorNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return events.ErrorNotification{}, false
	}
	return *s.lastErr, true
}

// SetSortOrder updates the upload form's sort order field.
func (s *Session) SetSortOrder(order string) {
	s.Doc.GetElementByID(upload.FormID).SetValue(services.SortOrderField, order)
}

// SortOrder returns the upload form's sort order field.
func (s *Session) SortOrder() string {
	return s.Doc.GetElementByID(upload.FormID).FormData().Get(services.SortOrderField)
}

// State returns the presenter's state.
func (s *Session) State() models.PresentationState {
	return s.Presenter.State()
}

// Status returns the status text.
func (s *Session) Status() string {
	return s.Doc.GetElementByID(present.StatusID).Text()
}

// VideoURL returns the bound video source, empty until a result is shown.
func (s *Session) VideoURL() string {
	return s.Doc.GetElementByID(present.VideoID).Attr("src")
}

// VideoPath returns the result reference used as the download name.
func (s *Session) VideoPath() string {
	return s.Doc.GetElementByID(present.DownloadID).Attr("download")
}

// Restart presses the start-new button.
func (s *Session) Restart() {
	s.Doc.GetElementByID(present.RestartID).Click()
}

func (s *Session) close() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}
