// Package events is the publish/subscribe contract between the upload controller and the result presenter.
//
// Components never hold references to each other. The controller publishes [VideoReadyEvent] and
// [ErrorNotificationEvent], the presenter subscribes to [VideoReadyEvent], and hosts announce a freshly
// built page with [PageInitializedEvent].
//
// Dispatch is synchronous: [EventBus.Publish] runs every handler on the caller's goroutine, in
// subscription order, before returning.
package events

import (
	"sync"

	"github.com/desertthunder/facelapse/internal/dom"
)

// Name identifies an event kind.
type Name string

const (
	VideoReadyEvent        Name = "video-ready"
	ErrorNotificationEvent Name = "error-notification"
	PageInitializedEvent   Name = "page-initialized"
)

// Event is a named notification with a typed payload.
type Event struct {
	Name    Name
	Payload any
}

// VideoReady is the payload of [VideoReadyEvent].
type VideoReady struct {
	VideoPath string
}

// ErrorNotification is the payload of [ErrorNotificationEvent].
type ErrorNotification struct {
	Message string // User-visible text
	Err     error  // Underlying failure, for errors.Is checks
}

// PageInitialized is the payload of [PageInitializedEvent].
type PageInitialized struct {
	Document *dom.Document
}

// Handler receives published events.
type Handler func(Event)

// Bus is implemented by anything that can route events to subscribers.
type Bus interface {
	Publish(ev Event)
	Subscribe(name Name, h Handler) (unsubscribe func())
}

var _ Bus = (*EventBus)(nil)

type subscription struct {
	id int
	h  Handler
}

// EventBus is the in-process [Bus] implementation.
type EventBus struct {
	mu   sync.RWMutex
	next int
	subs map[Name][]subscription
}

// New creates an empty [EventBus].
func New() *EventBus {
	return &EventBus{subs: make(map[Name][]subscription)}
}

// Publish delivers ev to every current subscriber of ev.Name.
//
// Handlers may subscribe or unsubscribe while being dispatched; changes apply to the next Publish.
func (b *EventBus) Publish(ev Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[ev.Name]))
	copy(subs, b.subs[ev.Name])
	b.mu.RUnlock()

	for _, s := range subs {
		s.h(ev)
	}
}

// Subscribe registers h for events named name and returns a function that removes it.
func (b *EventBus) Subscribe(name Name, h Handler) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[name] = append(b.subs[name], subscription{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(name, id) })
	}
}

// Count returns the number of subscribers for name.
func (b *EventBus) Count(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}

func (b *EventBus) remove(name Name, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[name]
	for i, s := range subs {
		if s.id == id {
			b.subs[name] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// On subscribes fn to name, delivering only payloads of type P.
func On[P any](b Bus, name Name, fn func(P)) func() {
	return b.Subscribe(name, func(ev Event) {
		if p, ok := ev.Payload.(P); ok {
			fn(p)
		}
	})
}

// PublishVideoReady announces that the generated video at videoPath is available.
func PublishVideoReady(b Bus, videoPath string) {
	b.Publish(Event{Name: VideoReadyEvent, Payload: VideoReady{VideoPath: videoPath}})
}

// PublishError announces a user-visible failure.
func PublishError(b Bus, message string, err error) {
	b.Publish(Event{Name: ErrorNotificationEvent, Payload: ErrorNotification{Message: message, Err: err}})
}

// PublishPageInitialized announces that doc has been built (or rebuilt) and is ready for wiring.
func PublishPageInitialized(b Bus, doc *dom.Document) {
	b.Publish(Event{Name: PageInitializedEvent, Payload: PageInitialized{Document: doc}})
}

// Forward copies events with the given names onto ch without blocking.
//
// When ch is full the event is dropped, so a slow reader never stalls the publisher.
// The returned function stops forwarding.
func Forward(b Bus, ch chan<- Event, names ...Name) func() {
	unsubs := make([]func(), 0, len(names))
	for _, name := range names {
		unsubs = append(unsubs, b.Subscribe(name, func(ev Event) {
			select {
			case ch <- ev:
			default:
			}
		}))
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
