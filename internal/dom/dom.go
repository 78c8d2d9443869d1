// Package dom is a minimal, goroutine-safe element tree standing in for the page markup.
//
// Elements carry the presentation state the components manipulate (class list, display mode, text,
// attributes, dataset markers, form values, selected files) and a listener table for the handful of
// interaction events the page uses ([EventClick], [EventChange], [EventPlay]).
//
// Listeners run synchronously on the goroutine that dispatches the event; no element lock is held
// while they run.
package dom

import (
	"net/url"
	"slices"
	"sync"

	"github.com/desertthunder/facelapse/internal/models"
)

// Interaction events.
const (
	EventClick  = "click"
	EventChange = "change" // a picker selection landed on a file input
	EventPlay   = "play"
)

// Display modes.
const (
	DisplayNone  = "none"
	DisplayBlock = "block"
	DisplayFlex  = "flex"
)

// Event is passed to listeners.
type Event struct {
	Type   string
	Target *Element

	defaultPrevented bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called [Event.PreventDefault].
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Listener handles an [Event].
type Listener func(*Event)

// Element is a node of the page.
type Element struct {
	mu        sync.RWMutex
	id        string
	classes   []string
	display   string
	text      string
	attrs     map[string]string
	dataset   map[string]string
	values    url.Values
	files     models.Selection
	listeners map[string][]Listener
	playing   bool
}

// NewElement creates an element with the given id and initial classes.
func NewElement(id string, classes ...string) *Element {
	el := &Element{
		id:        id,
		attrs:     make(map[string]string),
		dataset:   make(map[string]string),
		values:    make(url.Values),
		listeners: make(map[string][]Listener),
	}
	el.AddClass(classes...)
	return el
}

// ID returns the element id.
func (e *Element) ID() string { return e.id }

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.classes)
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Contains(e.classes, name)
}

// AddClass appends each name not already present.
func (e *Element) AddClass(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, n := range names {
		if !slices.Contains(e.classes, n) {
			e.classes = append(e.classes, n)
		}
	}
}

// RemoveClass drops each name from the class list.
func (e *Element) RemoveClass(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

// Display returns the display mode; empty means the element's default.
func (e *Element) Display() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.display
}

// SetDisplay sets the display mode.
func (e *Element) SetDisplay(mode string) {
	e.mu.Lock()
	e.display = mode
	e.mu.Unlock()
}

// Visible reports whether the element is not hidden.
func (e *Element) Visible() bool {
	return e.Display() != DisplayNone
}

// Text returns the text content.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// SetText replaces the text content.
func (e *Element) SetText(s string) {
	e.mu.Lock()
	e.text = s
	e.mu.Unlock()
}

// Attr returns an attribute value, or "" if unset.
func (e *Element) Attr(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[name]
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	e.mu.Lock()
	e.attrs[name] = value
	e.mu.Unlock()
}

// Data returns a dataset value, or "" if unset.
func (e *Element) Data(key string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dataset[key]
}

// ClaimData sets a dataset value only if key is unset and reports whether it did.
func (e *Element) ClaimData(key, value string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.dataset[key]; ok {
		return false
	}
	e.dataset[key] = value
	return true
}

// SetValue sets a form field carried by the element.
func (e *Element) SetValue(name, value string) {
	e.mu.Lock()
	e.values.Set(name, value)
	e.mu.Unlock()
}

// FormData returns a copy of the form fields carried by the element.
func (e *Element) FormData() url.Values {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(url.Values, len(e.values))
	for k, v := range e.values {
		out[k] = slices.Clone(v)
	}
	return out
}

// Files returns the current file selection of an input element.
func (e *Element) Files() models.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.files)
}

// SetFiles replaces the file selection of an input element.
func (e *Element) SetFiles(files models.Selection) {
	e.mu.Lock()
	e.files = slices.Clone(files)
	e.mu.Unlock()
}

// AddEventListener registers l for events of type typ.
func (e *Element) AddEventListener(typ string, l Listener) {
	e.mu.Lock()
	e.listeners[typ] = append(e.listeners[typ], l)
	e.mu.Unlock()
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[typ])
}

// Dispatch runs every listener for typ and returns the event they saw.
func (e *Element) Dispatch(typ string) *Event {
	e.mu.RLock()
	ls := slices.Clone(e.listeners[typ])
	e.mu.RUnlock()

	ev := &Event{Type: typ, Target: e}
	for _, l := range ls {
		l(ev)
	}
	return ev
}

// Click dispatches [EventClick].
func (e *Element) Click() *Event {
	return e.Dispatch(EventClick)
}

// Play marks a media element as playing and dispatches [EventPlay].
func (e *Element) Play() {
	e.mu.Lock()
	e.playing = true
	e.mu.Unlock()
	e.Dispatch(EventPlay)
}

// Playing reports whether [Element.Play] has been called.
func (e *Element) Playing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playing
}

// Document indexes the elements of one page by id.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// Append adds el, replacing any element with the same id.
func (d *Document) Append(el *Element) *Element {
	d.mu.Lock()
	d.elements[el.ID()] = el
	d.mu.Unlock()
	return el
}

// Create builds a new element and appends it.
func (d *Document) Create(id string, classes ...string) *Element {
	return d.Append(NewElement(id, classes...))
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.elements[id]
}
