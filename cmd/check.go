package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/facelapse/internal/formatter"
	"github.com/desertthunder/facelapse/internal/page"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/desertthunder/facelapse/internal/upload"
	"github.com/urfave/cli/v3"
)

// Check reports how a folder would be validated, without contacting the service.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: folder to check", shared.ErrMissingArgument)
	}

	sel, err := page.PickFolder(dir)
	if err != nil {
		return err
	}

	report := upload.Report(dir, sel, r.config.Upload.MaxBytes)
	if !report.Accepted {
		r.logger.Warn("selection would be rejected", "reason", report.Reason)
	}

	format := cmd.String("format")
	if out := cmd.String("output"); out != "" {
		path, err := formatter.WriteReport(&report, format, out)
		if err != nil {
			return err
		}
		r.logger.Info("report written", "path", path)
		return nil
	}

	data, err := formatter.Render(&report, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
