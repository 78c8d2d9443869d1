package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/facelapse/internal/shared"
)

func TestCheckVideoPath(t *testing.T) {
	tc := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{name: "plain file name", ref: "abc123.mp4"},
		{name: "service naming scheme", ref: "facelapse_oty_20250101_120000.mp4"},
		{name: "spaces are allowed", ref: "my video.mp4"},
		{name: "empty", ref: "", wantErr: true},
		{name: "dot", ref: ".", wantErr: true},
		{name: "dot dot", ref: "..", wantErr: true},
		{name: "traversal", ref: "../../etc/passwd", wantErr: true},
		{name: "nested path", ref: "videos/a.mp4", wantErr: true},
		{name: "backslash", ref: `..\a.mp4`, wantErr: true},
		{name: "newline", ref: "a.mp4\nSet-Cookie: x", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVideoPath(tt.ref)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrMalformedResponse) {
					t.Errorf("expected ErrMalformedResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestArtifactURL(t *testing.T) {
	tc := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "simple", base: "http://localhost:5000", ref: "abc123.mp4", want: "http://localhost:5000/uploads/abc123.mp4"},
		{name: "trailing slash", base: "http://localhost:5000/", ref: "abc123.mp4", want: "http://localhost:5000/uploads/abc123.mp4"},
		{name: "escapes space", base: "https://media.example.com", ref: "my video.mp4", want: "https://media.example.com/uploads/my%20video.mp4"},
		{name: "escapes query characters", base: "http://h", ref: "a?b#c.mp4", want: "http://h/uploads/a%3Fb%23c.mp4"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtifactURL(tt.base, tt.ref); got != tt.want {
				t.Errorf("ArtifactURL() = %v, want %v", got, tt.want)
			}
		})
	}
}
