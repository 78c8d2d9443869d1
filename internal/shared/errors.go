package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Selection errors
	ErrNoFilesSelected   = fmt.Errorf("no files selected")
	ErrSizeLimitExceeded = fmt.Errorf("size limit exceeded")
	ErrNoValidFiles      = fmt.Errorf("no valid files")

	// Upload errors
	ErrNetworkFailure    = fmt.Errorf("network failure")
	ErrServerRejected    = fmt.Errorf("server rejected upload")
	ErrMalformedResponse = fmt.Errorf("malformed response")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrDownloadFailed     = fmt.Errorf("download failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
