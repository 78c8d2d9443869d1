package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/desertthunder/facelapse/internal/models"
)

const (
	UploadPath     = "/upload"
	FilesField     = "files"
	SortOrderField = "sort_order"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadRequest is one multipart upload attempt.
type UploadRequest struct {
	ID     string        // Correlation ID sent as X-Request-ID
	Fields url.Values    // Form fields, written before the files
	Files  []models.File // Written as repeated "files" parts, in order
}

// encode streams the multipart body through a pipe and returns its reader with the Content-Type.
//
// Parts are written on a separate goroutine as the transport reads them. A write failure surfaces
// as the reader's error, and closing the reader stops the writer.
func (u *UploadRequest) encode() (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := u.writeParts(writer)
		if err == nil {
			err = writer.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, writer.FormDataContentType()
}

func (u *UploadRequest) writeParts(writer *multipart.Writer) error {
	keys := make([]string, 0, len(u.Fields))
	for k := range u.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range u.Fields[k] {
			if err := writer.WriteField(k, v); err != nil {
				return fmt.Errorf("failed to write field %s: %w", k, err)
			}
		}
	}

	for _, f := range u.Files {
		if err := writeFilePart(writer, f); err != nil {
			return err
		}
	}
	return nil
}

func writeFilePart(writer *multipart.Writer, f models.File) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FilesField, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentTypeFor(f.Name))

	part, err := writer.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part for %s: %w", f.Name, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer src.Close()

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", f.Name, err)
	}
	return nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
