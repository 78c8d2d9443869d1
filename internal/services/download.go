package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/facelapse/internal/shared"
	"golang.org/x/time/rate"
)

// DownloadOptions configures a [Downloader].
type DownloadOptions struct {
	BaseURL    string
	Client     *http.Client
	Rate       float64 // Attempts per second; zero or less means unlimited
	MaxRetries int     // Additional attempts after the first
	Logger     *log.Logger
}

// Downloader saves generated videos to disk.
type Downloader struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	logger     *log.Logger
}

// NewDownloader creates a [Downloader] from opts.
func NewDownloader(opts DownloadOptions) *Downloader {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}

	return &Downloader{
		baseURL:    opts.BaseURL,
		client:     opts.Client,
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: max(opts.MaxRetries, 0),
		logger:     opts.Logger,
	}
}

// errRetryable marks failures worth another attempt.
var errRetryable = errors.New("retryable")

// Download fetches the video named ref into dir and returns the written path.
//
// Transport failures and 5xx responses are retried; any other status fails immediately.
func (d *Downloader) Download(ctx context.Context, ref, dir string) (string, error) {
	if err := CheckVideoPath(ref); err != nil {
		return "", err
	}

	target := filepath.Join(dir, ref)
	src := ArtifactURL(d.baseURL, ref)

	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
		}

		lastErr = d.fetch(ctx, src, target)
		if lastErr == nil {
			d.logger.Info("video downloaded", "path", target, "attempt", attempt+1)
			return target, nil
		}
		if !errors.Is(lastErr, errRetryable) {
			break
		}
		d.logger.Warn("download attempt failed", "url", src, "attempt", attempt+1, "error", lastErr)
	}

	return "", fmt.Errorf("%w: %v", shared.ErrDownloadFailed, lastErr)
}

func (d *Downloader) fetch(ctx context.Context, src, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", errRetryable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".facelapse-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to read body: %v", errRetryable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move video into place: %w", err)
	}
	return nil
}
