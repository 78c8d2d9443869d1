package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// Download saves a generated video to the output directory.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("video_path")
	if ref == "" {
		return fmt.Errorf("%w: video path", shared.ErrMissingArgument)
	}

	path, err := r.downloader().Download(ctx, ref, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Saved %s\n", path)
	return nil
}
