package models

import (
	"bytes"
	"io"
	"os"
)

// File is a single entry from a folder selection.
type File struct {
	Name string // Base name as reported by the picker
	Path string // Location on disk, empty for in-memory files
	Size int64  // Size in bytes
	open func() (io.ReadCloser, error)
}

// NewFile creates a [File] whose content is produced by open.
func NewFile(name string, size int64, open func() (io.ReadCloser, error)) File {
	return File{Name: name, Size: size, open: open}
}

// NewMemFile creates a [File] backed by data.
func NewMemFile(name string, data []byte) File {
	return NewFile(name, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// NewDiskFile creates a [File] read lazily from path.
func NewDiskFile(name, path string, size int64) File {
	f := NewFile(name, size, func() (io.ReadCloser, error) { return os.Open(path) })
	f.Path = path
	return f
}

// Open returns the file content. Files without a content source read as empty.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return f.open()
}

// Selection is the ordered list of files produced by one picker interaction.
type Selection []File

// TotalBytes sums the size of every file in the selection.
func (s Selection) TotalBytes() int64 {
	var total int64
	for _, f := range s {
		total += f.Size
	}
	return total
}

// Outcome is the result of validating a [Selection].
//
// Exactly one of Reason and Files is meaningful: a non-nil Reason means the selection was rejected.
type Outcome struct {
	Files      []File // Eligible files in selection order
	Skipped    []File // Files dropped by the extension filter
	TotalBytes int64  // Aggregate size of the raw selection
	Reason     error  // Rejection reason, nil when accepted
}

// Accepted reports whether the selection may be uploaded.
func (o Outcome) Accepted() bool {
	return o.Reason == nil
}

// UploadResult is the decoded success body of the upload endpoint.
type UploadResult struct {
	VideoPath string `json:"video_path"`
}

// ErrorBody is the decoded failure body of the upload endpoint.
type ErrorBody struct {
	Error string `json:"error,omitempty"`
}

// PresentationState is the mode of the result view.
type PresentationState int

const (
	AwaitingUpload PresentationState = iota
	ResultReady
)

func (s PresentationState) String() string {
	switch s {
	case AwaitingUpload:
		return "awaiting-upload"
	case ResultReady:
		return "result-ready"
	default:
		return "unknown"
	}
}
