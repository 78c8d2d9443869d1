// Package present switches the page from the upload layout to the playback layout once a video is ready.
package present

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/facelapse/internal/dom"
	"github.com/desertthunder/facelapse/internal/events"
	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/shared"
)

// Element ids the presenter binds to.
const (
	VideoID             = "timelapse-video"
	StatusID            = "status-text"
	PlaceholderID       = "placeholder-image"
	DownloadID          = "download-button"
	RestartID           = "start-new-button"
	ActionsID           = "action-buttons"
	FileTypeNoteID      = "file-type-note"
	FormID              = "upload-form"
	MainContainerID     = "main-container"
	VideoContainerID    = "video-container"
	ControlsContainerID = "controls-container"
)

// ReadyMessage is the status text once the video is playing.
const ReadyMessage = "Your amazing faceLAPSE is ready!"

// View holds the elements the presenter mutates. Any of them may be nil.
type View struct {
	Video             *dom.Element
	Status            *dom.Element
	Placeholder       *dom.Element
	Download          *dom.Element
	Restart           *dom.Element
	Actions           *dom.Element
	FileTypeNote      *dom.Element
	Form              *dom.Element
	MainContainer     *dom.Element
	VideoContainer    *dom.Element
	ControlsContainer *dom.Element
}

// ViewFrom looks up the presenter's elements in doc.
func ViewFrom(doc *dom.Document) View {
	return View{
		Video:             doc.GetElementByID(VideoID),
		Status:            doc.GetElementByID(StatusID),
		Placeholder:       doc.GetElementByID(PlaceholderID),
		Download:          doc.GetElementByID(DownloadID),
		Restart:           doc.GetElementByID(RestartID),
		Actions:           doc.GetElementByID(ActionsID),
		FileTypeNote:      doc.GetElementByID(FileTypeNoteID),
		Form:              doc.GetElementByID(FormID),
		MainContainer:     doc.GetElementByID(MainContainerID),
		VideoContainer:    doc.GetElementByID(VideoContainerID),
		ControlsContainer: doc.GetElementByID(ControlsContainerID),
	}
}

func (v View) complete() bool {
	for _, el := range []*dom.Element{
		v.Video, v.Status, v.Placeholder, v.Download, v.Restart, v.Actions,
		v.FileTypeNote, v.Form, v.MainContainer, v.VideoContainer, v.ControlsContainer,
	} {
		if el == nil {
			return false
		}
	}
	return true
}

// Reloader rebuilds the page from scratch.
type Reloader interface {
	Reload()
}

// ReloadFunc adapts a function to [Reloader].
type ReloadFunc func()

func (f ReloadFunc) Reload() { f() }

// Options configures a [Presenter].
type Options struct {
	Bus      events.Bus
	View     View
	BaseURL  string
	Reloader Reloader
	Logger   *log.Logger
}

// Presenter owns the page's [models.PresentationState].
type Presenter struct {
	mu       sync.Mutex
	state    models.PresentationState
	bus      events.Bus
	view     View
	baseURL  string
	reloader Reloader
	logger   *log.Logger
}

// New creates a [Presenter] in [models.AwaitingUpload].
func New(opts Options) *Presenter {
	if opts.BaseURL == "" {
		opts.BaseURL = services.DefaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Reloader == nil {
		opts.Reloader = ReloadFunc(func() {})
	}

	return &Presenter{
		state:    models.AwaitingUpload,
		bus:      opts.Bus,
		view:     opts.View,
		baseURL:  opts.BaseURL,
		reloader: opts.Reloader,
		logger:   shared.WithLogger(opts.Logger, "component", "present"),
	}
}

// Mount subscribes the presenter to video-ready events and returns a function that stops it.
func (p *Presenter) Mount() func() {
	return events.On(p.bus, events.VideoReadyEvent, func(ev events.VideoReady) {
		p.Show(ev.VideoPath)
	})
}

// State returns the current presentation state.
func (p *Presenter) State() models.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Show moves the page into playback of ref and reports whether it did.
//
// Nothing changes when a binding is missing or the result is already shown.
func (p *Presenter) Show(ref string) bool {
	p.mu.Lock()
	if p.state == models.ResultReady {
		p.mu.Unlock()
		p.logger.Debug("result already shown, ignoring", "video_path", ref)
		return false
	}
	if !p.view.complete() {
		p.mu.Unlock()
		p.logger.Debug("result view incomplete, skipping")
		return false
	}
	p.state = models.ResultReady
	p.mu.Unlock()

	v := p.view
	src := services.ArtifactURL(p.baseURL, ref)

	v.MainContainer.RemoveClass("justify-center", "min-h-dvh")
	v.MainContainer.AddClass("justify-start")
	v.VideoContainer.RemoveClass("max-w-2xl")
	v.VideoContainer.AddClass("max-w-6xl", "w-full")
	v.ControlsContainer.RemoveClass("w-full")

	v.Video.SetAttr("src", src)
	v.Video.SetDisplay(dom.DisplayBlock)
	v.Placeholder.SetDisplay(dom.DisplayNone)
	v.Status.SetText(ReadyMessage)

	v.Download.SetAttr("href", src)
	v.Download.SetAttr("download", ref)
	v.Actions.SetDisplay(dom.DisplayFlex)
	v.FileTypeNote.SetDisplay(dom.DisplayNone)
	v.Form.SetDisplay(dom.DisplayNone)

	v.Restart.AddEventListener(dom.EventClick, func(*dom.Event) {
		p.logger.Info("starting over")
		p.reloader.Reload()
	})

	p.logger.Info("showing video", "src", src)
	v.Video.Play()
	return true
}
