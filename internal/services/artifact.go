package services

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/desertthunder/facelapse/internal/shared"
)

// ArtifactPath is the prefix under which generated videos are served.
const ArtifactPath = "/uploads/"

// CheckVideoPath reports whether ref can be used as a video reference.
//
// A reference is a single, non-empty path segment without control characters.
func CheckVideoPath(ref string) error {
	switch {
	case ref == "":
		return fmt.Errorf("%w: empty video path", shared.ErrMalformedResponse)
	case ref == "." || ref == "..":
		return fmt.Errorf("%w: video path %q is not a file name", shared.ErrMalformedResponse, ref)
	case strings.ContainsAny(ref, `/\`):
		return fmt.Errorf("%w: video path %q contains a path separator", shared.ErrMalformedResponse, ref)
	case strings.ContainsFunc(ref, unicode.IsControl):
		return fmt.Errorf("%w: video path %q contains control characters", shared.ErrMalformedResponse, ref)
	}
	return nil
}

// ArtifactURL returns the address the generated video is served from.
func ArtifactURL(baseURL, ref string) string {
	return strings.TrimRight(baseURL, "/") + ArtifactPath + url.PathEscape(ref)
}
