package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// uploadResult is the --json output of the upload command.
type uploadResult struct {
	VideoPath string `json:"video_path"`
	URL       string `json:"url"`
	SavedTo   string `json:"saved_to,omitempty"`
}

// Upload selects dir through a page session and reports the generated video.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: folder to upload", shared.ErrMissingArgument)
	}

	order := cmd.String("sort-order")
	if err := shared.ValidateSortOrder(order); err != nil {
		return fmt.Errorf("%w: --sort-order: %v", shared.ErrInvalidFlag, err)
	}

	var onPlay func(string)
	if cmd.Bool("open") {
		onPlay = r.openOnPlay(ctx)
	}

	host := r.newHost(ctx, order, onPlay)
	r.logger.Info("uploading folder", "dir", dir, "sort_order", order)
	if err := host.Choose(dir); err != nil {
		return err
	}

	s := host.Current()
	if s.State() != models.ResultReady {
		return fmt.Errorf("%w: no video was produced", shared.ErrMalformedResponse)
	}

	result := uploadResult{VideoPath: s.VideoPath(), URL: s.VideoURL()}
	if cmd.Bool("download") {
		path, err := r.downloader().Download(ctx, result.VideoPath, cmd.String("output"))
		if err != nil {
			return err
		}
		result.SavedTo = path
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("✓ %s\n", s.Status())
	r.writePlain("Video: %s\n", result.VideoPath)
	r.writePlain("URL:   %s\n", result.URL)
	if result.SavedTo != "" {
		r.writePlain("Saved: %s\n", result.SavedTo)
	}
	return nil
}
