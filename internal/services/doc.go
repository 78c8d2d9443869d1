// Package services talks to the facelapse processing service over HTTP.
//
// # API Client
//
// [APIService] wraps an [http.Client] and a base URL. Every call returns the raw [APIResponse]
// (status, headers, body, and the decoded JSON when the body parses) and only returns an error when
// the request could not be made or the body could not be read. Interpreting status codes is left
// to the caller, so the upload controller can map them onto its own failure kinds.
//
// # Upload Endpoint
//
// [APIService.Upload] POSTs a multipart/form-data body to /upload containing every form field of the
// [UploadRequest] followed by one "files" part per image. The request carries an X-Request-ID header
// so one attempt can be traced through client and server logs.
//
// # Artifacts
//
// Generated videos are served from /uploads/{video_path}. [CheckVideoPath] enforces the reference
// policy (a single, non-empty path segment) and [ArtifactURL] builds the playback and download
// address from it. [Downloader] saves an artifact to disk, pacing retry attempts with a
// [rate.Limiter].
//
// # Authentication
//
// [NewHTTPClient] returns an [http.Client] that attaches a static bearer token via
// [oauth2.StaticTokenSource] when one is configured.
package services
