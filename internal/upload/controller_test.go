package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/facelapse/internal/dom"
	"github.com/desertthunder/facelapse/internal/events"
	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/shared"
	tu "github.com/desertthunder/facelapse/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader records requests and answers with a fixed response.
type fakeUploader struct {
	mu   sync.Mutex
	reqs []*services.UploadRequest
	resp *services.APIResponse
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, req *services.UploadRequest) (*services.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func (f *fakeUploader) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func okResponse(body string) *services.APIResponse {
	return &services.APIResponse{StatusCode: http.StatusOK, Body: []byte(body)}
}

// newDocument builds the upload markup, leaving out the missing ids.
func newDocument(missing ...string) *dom.Document {
	doc := dom.NewDocument()
	for _, id := range []string{FormID, ButtonID, InputID, StatusID} {
		if !slices.Contains(missing, id) {
			doc.Create(id)
		}
	}
	if form := doc.GetElementByID(FormID); form != nil {
		form.SetValue(services.SortOrderField, shared.SortOldToYoung)
	}
	return doc
}

type fixture struct {
	bus    *events.EventBus
	rec    *tu.Recorder
	client *fakeUploader
	ctrl   *Controller
	doc    *dom.Document
	logs   *bytes.Buffer
}

func newFixture(client *fakeUploader) *fixture {
	bus := events.New()
	logs := &bytes.Buffer{}
	return &fixture{
		bus:    bus,
		rec:    tu.NewRecorder(bus, events.VideoReadyEvent, events.ErrorNotificationEvent),
		client: client,
		ctrl:   NewController(Options{Bus: bus, Client: client, Logger: shared.NewLogger(logs)}),
		doc:    newDocument(),
		logs:   logs,
	}
}

func (f *fixture) choose(sel models.Selection) {
	input := f.doc.GetElementByID(InputID)
	input.SetFiles(sel)
	input.Dispatch(dom.EventChange)
}

func (f *fixture) errorMessages() []string {
	var out []string
	for _, e := range f.rec.Named(events.ErrorNotificationEvent) {
		out = append(out, e.Payload.(events.ErrorNotification).Message)
	}
	return out
}

func (f *fixture) videoPaths() []string {
	var out []string
	for _, e := range f.rec.Named(events.VideoReadyEvent) {
		out = append(out, e.Payload.(events.VideoReady).VideoPath)
	}
	return out
}

func TestControllerInit(t *testing.T) {
	t.Run("Attaches Listeners Once", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: okResponse(`{"video_path":"abc123.mp4"}`)})
		view := ViewFrom(f.doc)

		assert.True(t, f.ctrl.Init(view))
		for range 4 {
			assert.False(t, f.ctrl.Init(view))
		}

		assert.Equal(t, 1, view.Button.ListenerCount(dom.EventClick))
		assert.Equal(t, 1, view.Input.ListenerCount(dom.EventChange))
		assert.Equal(t, "true", view.Button.Data(listenerAttached))

		f.choose(tu.Files(10, "a.jpg"))
		assert.Equal(t, 1, f.client.calls())
		assert.Equal(t, []string{"abc123.mp4"}, f.videoPaths())
	})

	t.Run("Marker Is Shared Across Controllers", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: okResponse(`{"video_path":"a.mp4"}`)})
		other := NewController(Options{Bus: f.bus, Client: f.client, Logger: shared.NewLogger(io.Discard)})

		assert.True(t, f.ctrl.Init(ViewFrom(f.doc)))
		assert.False(t, other.Init(ViewFrom(f.doc)))
		assert.Equal(t, 1, f.doc.GetElementByID(InputID).ListenerCount(dom.EventChange))
	})

	t.Run("Concurrent Init", func(t *testing.T) {
		f := newFixture(&fakeUploader{})
		view := ViewFrom(f.doc)

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.ctrl.Init(view)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, view.Button.ListenerCount(dom.EventClick))
		assert.Equal(t, 1, view.Input.ListenerCount(dom.EventChange))
	})

	t.Run("Missing Element Is A No-op", func(t *testing.T) {
		for _, id := range []string{FormID, ButtonID, InputID, StatusID} {
			t.Run(id, func(t *testing.T) {
				f := newFixture(&fakeUploader{})
				f.doc = newDocument(id)
				view := ViewFrom(f.doc)

				assert.False(t, f.ctrl.Init(view))
				if view.Button != nil {
					assert.Zero(t, view.Button.ListenerCount(dom.EventClick))
				}
				if view.Input != nil {
					assert.Zero(t, view.Input.ListenerCount(dom.EventChange))
				}
			})
		}
	})

	t.Run("Button Click Opens Picker", func(t *testing.T) {
		f := newFixture(&fakeUploader{})
		view := ViewFrom(f.doc)
		f.ctrl.Init(view)

		opened := 0
		view.Input.AddEventListener(dom.EventClick, func(*dom.Event) { opened++ })

		ev := view.Button.Click()
		assert.True(t, ev.DefaultPrevented())
		assert.Equal(t, 1, opened)
	})

	t.Run("Mount Wires Each Announced Page", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: okResponse(`{"video_path":"a.mp4"}`)})
		unmount := f.ctrl.Mount()

		events.PublishPageInitialized(f.bus, f.doc)
		events.PublishPageInitialized(f.bus, f.doc)
		assert.Equal(t, 1, f.doc.GetElementByID(InputID).ListenerCount(dom.EventChange))

		second := newDocument()
		events.PublishPageInitialized(f.bus, second)
		assert.Equal(t, 1, second.GetElementByID(ButtonID).ListenerCount(dom.EventClick))

		unmount()
		third := newDocument()
		events.PublishPageInitialized(f.bus, third)
		assert.Zero(t, third.GetElementByID(ButtonID).ListenerCount(dom.EventClick))
	})
}

func TestControllerHandleSelection(t *testing.T) {
	t.Run("Scenario A Uploads Only Eligible Files", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: okResponse(`{"video_path":"abc123.mp4"}`)})
		f.ctrl.Init(ViewFrom(f.doc))

		f.choose(tu.Files(mib, "a.JPG", "b.txt"))

		require.Equal(t, 1, f.client.calls())
		req := f.client.reqs[0]
		require.Len(t, req.Files, 1)
		assert.Equal(t, "a.JPG", req.Files[0].Name)
		assert.Equal(t, shared.SortOldToYoung, req.Fields.Get(services.SortOrderField))
		assert.NotEmpty(t, req.ID)
	})

	t.Run("Scenario B Rejects Oversized Selection", func(t *testing.T) {
		f := newFixture(&fakeUploader{})
		f.ctrl.Init(ViewFrom(f.doc))

		names := make([]string, 200)
		for i := range names {
			names[i] = "img" + string(rune('a'+i%26)) + ".jpeg"
		}
		f.choose(tu.Files(mib, names...))

		assert.Zero(t, f.client.calls())
		msgs := f.errorMessages()
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "200.00")
		assert.Empty(t, f.doc.GetElementByID(StatusID).Text(), "failures do not touch the status")
	})

	t.Run("Scenario C Publishes Video Ready", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: okResponse(`{"video_path":"abc123.mp4"}`)})
		view := ViewFrom(f.doc)

		err := f.ctrl.HandleSelection(context.Background(), view, tu.Files(1, "a.jpg", "b.jpeg"))
		require.NoError(t, err)
		assert.Equal(t, []string{"abc123.mp4"}, f.videoPaths())
		assert.Empty(t, f.errorMessages())
		assert.Equal(t, MsgGenerating, view.Status.Text())
	})

	t.Run("Status Shows Upload Count Before Request", func(t *testing.T) {
		doc := newDocument()
		status := doc.GetElementByID(StatusID)
		var during string
		client := &hookUploader{hook: func() { during = status.Text() }, resp: okResponse(`{"video_path":"a.mp4"}`)}

		ctrl := NewController(Options{Bus: events.New(), Client: client, Logger: shared.NewLogger(io.Discard)})
		require.NoError(t, ctrl.HandleSelection(context.Background(), ViewFrom(doc), tu.Files(1, "a.jpg", "x.txt", "b.JPEG")))
		assert.Equal(t, "Uploading 2 photos...", during)
	})

	t.Run("Scenario D Server Rejection Message", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: &services.APIResponse{StatusCode: 507, Body: []byte(`{"error":"disk full"}`)}})
		err := f.ctrl.HandleSelection(context.Background(), ViewFrom(f.doc), tu.Files(1, "a.jpg"))

		assert.ErrorIs(t, err, shared.ErrServerRejected)
		assert.Equal(t, []string{"disk full"}, f.errorMessages())
		assert.Empty(t, f.videoPaths())
	})

	t.Run("Server Rejection Without Message", func(t *testing.T) {
		bodies := []string{``, `not json`, `{}`, `{"error":""}`, `{"error":42}`, `[]`}
		for _, body := range bodies {
			f := newFixture(&fakeUploader{resp: &services.APIResponse{StatusCode: 500, Body: []byte(body)}})
			err := f.ctrl.HandleSelection(context.Background(), ViewFrom(f.doc), tu.Files(1, "a.jpg"))

			assert.ErrorIs(t, err, shared.ErrServerRejected, body)
			assert.Equal(t, []string{MsgServerRejected}, f.errorMessages(), body)
		}
	})

	t.Run("Scenario E Missing Video Path", func(t *testing.T) {
		bodies := []string{`{}`, `{"video_path":""}`, `{"video_path":null}`, `{"video_path":7}`, `<html>`, `null`,
			`{"video_path":"../secret"}`, `{"video_path":"a/b.mp4"}`}
		for _, body := range bodies {
			f := newFixture(&fakeUploader{resp: okResponse(body)})
			err := f.ctrl.HandleSelection(context.Background(), ViewFrom(f.doc), tu.Files(1, "a.jpg"))

			assert.ErrorIs(t, err, shared.ErrMalformedResponse, body)
			assert.Equal(t, 1, strings.Count(err.Error(), shared.ErrMalformedResponse.Error()), err.Error())
			assert.Equal(t, []string{MsgMalformedResponse}, f.errorMessages(), body)
			assert.Empty(t, f.videoPaths(), body)
		}
	})

	t.Run("Network Failure", func(t *testing.T) {
		transport := errors.New("connection refused")
		f := newFixture(&fakeUploader{err: transport})
		err := f.ctrl.HandleSelection(context.Background(), ViewFrom(f.doc), tu.Files(1, "a.jpg"))

		assert.ErrorIs(t, err, shared.ErrNetworkFailure)
		assert.ErrorIs(t, err, transport)
		assert.Equal(t, []string{MsgNetworkFailure}, f.errorMessages())
		assert.Contains(t, f.logs.String(), "connection refused")
	})

	t.Run("Error Notification Carries Failure", func(t *testing.T) {
		f := newFixture(&fakeUploader{})
		_ = f.ctrl.HandleSelection(context.Background(), ViewFrom(f.doc), nil)

		evs := f.rec.Named(events.ErrorNotificationEvent)
		require.Len(t, evs, 1)
		n := evs[0].Payload.(events.ErrorNotification)
		assert.Equal(t, MsgNoFilesSelected, n.Message)
		assert.ErrorIs(t, n.Err, shared.ErrNoFilesSelected)
	})

	t.Run("Each Selection Uploads Once", func(t *testing.T) {
		f := newFixture(&fakeUploader{resp: okResponse(`{"video_path":"a.mp4"}`)})
		f.ctrl.Init(ViewFrom(f.doc))

		f.choose(tu.Files(1, "a.jpg"))
		f.choose(tu.Files(1, "b.jpg"))
		assert.Equal(t, 2, f.client.calls())
		assert.NotEqual(t, f.client.reqs[0].ID, f.client.reqs[1].ID)
	})
}

// hookUploader runs hook before answering.
type hookUploader struct {
	hook func()
	resp *services.APIResponse
}

func (h *hookUploader) Upload(context.Context, *services.UploadRequest) (*services.APIResponse, error) {
	h.hook()
	return h.resp, nil
}

func TestControllerOverHTTP(t *testing.T) {
	t.Run("Multipart Payload", func(t *testing.T) {
		var gotFiles []string
		var gotSort string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				t.Errorf("bad content type: %v", err)
				return
			}
			mr := multipart.NewReader(r.Body, params["boundary"])
			for {
				p, err := mr.NextPart()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Errorf("bad part: %v", err)
					return
				}
				switch p.FormName() {
				case services.FilesField:
					gotFiles = append(gotFiles, p.FileName())
				case services.SortOrderField:
					b, _ := io.ReadAll(p)
					gotSort = string(b)
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"video_path":"abc123.mp4"}`))
		}))
		defer server.Close()

		bus := events.New()
		rec := tu.NewRecorder(bus, events.VideoReadyEvent)
		ctrl := NewController(Options{
			Bus:    bus,
			Client: services.NewAPIService(server.URL, server.Client()),
			Logger: shared.NewLogger(io.Discard),
		})

		doc := newDocument()
		doc.GetElementByID(FormID).SetValue(services.SortOrderField, shared.SortYoungToOld)
		sel := tu.Files(mib, "a.JPG", "b.txt", "c.jpeg")

		require.NoError(t, ctrl.HandleSelection(context.Background(), ViewFrom(doc), sel))
		assert.Equal(t, []string{"a.JPG", "c.jpeg"}, gotFiles)
		assert.Equal(t, shared.SortYoungToOld, gotSort)
		assert.Len(t, rec.Named(events.VideoReadyEvent), 1)
	})

	t.Run("Unreachable Service", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		bus := events.New()
		ctrl := NewController(Options{Bus: bus, Client: services.NewAPIService(url, nil), Logger: shared.NewLogger(io.Discard)})
		err := ctrl.HandleSelection(context.Background(), ViewFrom(newDocument()), tu.Files(1, "a.jpg"))
		assert.ErrorIs(t, err, shared.ErrNetworkFailure)
	})
}
