package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/facelapse/internal/shared"
	tu "github.com/desertthunder/facelapse/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestService serves /upload with body and /uploads/ with fixed video bytes.
func newTestService(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
	mux.HandleFunc("/uploads/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp4"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, server *httptest.Server, opened *[]string, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}

	config := shared.DefaultConfig()
	config.Service.BaseURL = server.URL

	runner := NewRunner(RunnerOpts{
		Config:     config,
		HTTPClient: server.Client(),
		Logger:     shared.NewLogger(io.Discard),
		Output:     output,
		Open: func(_ context.Context, url string) error {
			if opened != nil {
				*opened = append(*opened, url)
			}
			return nil
		},
	})

	app := &cli.Command{Name: "facelapse", Commands: runner.register()}
	err := app.Run(context.Background(), append([]string{"facelapse"}, args...))
	return output.String(), err
}

func TestUploadCommand(t *testing.T) {
	t.Run("Prints Result", func(t *testing.T) {
		server := newTestService(t, http.StatusOK, `{"video_path":"abc123.mp4"}`)
		dir := tu.WriteFixtures(t, t.TempDir(), 8, "a.jpg", "b.txt")

		out, err := run(t, server, nil, "upload", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Your amazing faceLAPSE is ready!") {
			t.Errorf("expected ready message, got %q", out)
		}
		if !strings.Contains(out, server.URL+"/uploads/abc123.mp4") {
			t.Errorf("expected artifact URL, got %q", out)
		}
	})

	t.Run("JSON Download And Open", func(t *testing.T) {
		server := newTestService(t, http.StatusOK, `{"video_path":"abc123.mp4"}`)
		dir := tu.WriteFixtures(t, t.TempDir(), 8, "a.jpg")
		outDir := t.TempDir()
		var opened []string

		out, err := run(t, server, &opened, "upload", "--json", "--download", "--open", "-o", outDir, dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var result uploadResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out, err)
		}
		if result.VideoPath != "abc123.mp4" {
			t.Errorf("unexpected video path %q", result.VideoPath)
		}
		if result.SavedTo != filepath.Join(outDir, "abc123.mp4") {
			t.Errorf("unexpected saved path %q", result.SavedTo)
		}
		if got := tu.MustReadFile(t, result.SavedTo); got != "mp4" {
			t.Errorf("unexpected video content %q", got)
		}
		if len(opened) != 1 || opened[0] != result.URL {
			t.Errorf("expected browser to open %s, got %v", result.URL, opened)
		}
	})

	t.Run("Server Rejection", func(t *testing.T) {
		server := newTestService(t, http.StatusInternalServerError, `{"error":"disk full"}`)
		dir := tu.WriteFixtures(t, t.TempDir(), 8, "a.jpg")

		_, err := run(t, server, nil, "upload", dir)
		if !errors.Is(err, shared.ErrServerRejected) {
			t.Errorf("expected ErrServerRejected, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "disk full") {
			t.Errorf("expected server message in error, got %v", err)
		}
	})

	t.Run("Missing Folder Argument", func(t *testing.T) {
		server := newTestService(t, http.StatusOK, `{}`)
		_, err := run(t, server, nil, "upload")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Invalid Sort Order", func(t *testing.T) {
		server := newTestService(t, http.StatusOK, `{}`)
		_, err := run(t, server, nil, "upload", "--sort-order", "sideways", t.TempDir())
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestCheckCommand(t *testing.T) {
	server := newTestService(t, http.StatusOK, `{}`)

	t.Run("Text Report", func(t *testing.T) {
		dir := tu.WriteFixtures(t, t.TempDir(), 8, "a.jpg", "b.txt")
		out, err := run(t, server, nil, "check", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Files: 2 (1 eligible)") {
			t.Errorf("unexpected report %q", out)
		}
	})

	t.Run("CSV To File", func(t *testing.T) {
		dir := tu.WriteFixtures(t, t.TempDir(), 8, "a.jpg")
		path := filepath.Join(t.TempDir(), "report.csv")

		if _, err := run(t, server, nil, "check", "--format", "csv", "--output", path, dir); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := tu.MustReadFile(t, path); !strings.HasPrefix(got, "Name,Size,Eligible") {
			t.Errorf("unexpected CSV %q", got)
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		dir := tu.WriteFixtures(t, t.TempDir(), 8, "a.jpg")
		_, err := run(t, server, nil, "check", "--format", "xml", dir)
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestDownloadCommand(t *testing.T) {
	server := newTestService(t, http.StatusOK, `{}`)

	t.Run("Saves File", func(t *testing.T) {
		outDir := t.TempDir()
		out, err := run(t, server, nil, "download", "-o", outDir, "abc123.mp4")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(outDir, "abc123.mp4"))
		if !strings.Contains(out, "Saved") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("Rejects Path", func(t *testing.T) {
		_, err := run(t, server, nil, "download", "../etc/passwd")
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})
}

func TestStatusCommand(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		server := newTestService(t, http.StatusOK, `{}`)
		out, err := run(t, server, nil, "status")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Processing service is up") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := newTestService(t, http.StatusOK, `{}`)
		server.Close()
		_, err := run(t, server, nil, "status")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Error Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := run(t, server, nil, "status")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestSetupCommand(t *testing.T) {
	server := newTestService(t, http.StatusOK, `{}`)
	path := filepath.Join(t.TempDir(), "config.toml")

	if _, err := run(t, server, nil, "setup", "--config", path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	tu.AssertFileExists(t, path)

	_, err := run(t, server, nil, "setup", "--config", path)
	if !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for existing file, got %v", err)
	}
}
