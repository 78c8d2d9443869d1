package page

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/facelapse/internal/events"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/desertthunder/facelapse/internal/upload"
)

type forward struct {
	ch    chan<- events.Event
	names []events.Name
}

// Host keeps the current [Session] and rebuilds it on reload.
type Host struct {
	opts   Options
	logger *log.Logger

	mu       sync.Mutex
	current  *Session
	reloads  int
	forwards []forward
	stop     func()
}

// New creates a host and initializes its first session.
func New(opts Options) *Host {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = upload.DefaultMaxBytes
	}
	if opts.SortOrder == "" {
		opts.SortOrder = shared.SortOldToYoung
	}

	h := &Host{opts: opts, logger: shared.WithLogger(opts.Logger, "component", "page")}
	h.mu.Lock()
	s := h.build()
	h.mu.Unlock()

	events.PublishPageInitialized(s.Bus, s.Doc)
	return h
}

// build creates a session and attaches the registered forwards. Callers hold h.mu.
func (h *Host) build() *Session {
	s := newSession(h.opts, h)
	h.current = s
	h.stop = h.attach(s)
	h.logger.Debug("session created", "session", s.ID)
	return s
}

func (h *Host) attach(s *Session) func() {
	stops := make([]func(), 0, len(h.forwards))
	for _, f := range h.forwards {
		stops = append(stops, events.Forward(s.Bus, f.ch, f.names...))
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// Current returns the live session.
func (h *Host) Current() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Reloads returns how many times the page has been rebuilt.
func (h *Host) Reloads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reloads
}

// Reload discards the current session and starts a fresh one in the upload layout.
func (h *Host) Reload() {
	h.mu.Lock()
	old, stop := h.current, h.stop
	h.reloads++
	s := h.build()
	h.mu.Unlock()

	stop()
	old.close()
	h.logger.Info("page reloaded", "session", s.ID)
	events.PublishPageInitialized(s.Bus, s.Doc)
}

// Forward copies events with the given names from every session, current and future, onto ch.
//
// Sends never block; events are dropped while ch is full.
func (h *Host) Forward(ch chan<- events.Event, names ...events.Name) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f := forward{ch: ch, names: names}
	h.forwards = append(h.forwards, f)

	prev := h.stop
	stop := events.Forward(h.current.Bus, f.ch, f.names...)
	h.stop = func() {
		prev()
		stop()
	}
}

// Choose runs one folder selection on the current session.
func (h *Host) Choose(dir string) error {
	return h.Current().Choose(dir)
}
