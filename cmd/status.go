package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// Status makes a GET request to the service root and reports whether it answered.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	r.logger.Debug("checking service", "url", r.api.BaseURL())

	resp, err := r.api.Get(ctx, "/")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	r.writePlain("✓ Processing service is up at %s (status %d)\n", r.api.BaseURL(), resp.StatusCode)
	return nil
}
