package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/desertthunder/facelapse/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal uploader.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	var onPlay func(string)
	if r.config.Output.OpenBrowser {
		onPlay = r.openOnPlay(ctx)
	}

	model := ui.NewModel(ui.Options{
		Context:    ctx,
		Host:       r.newHost(ctx, r.config.Upload.SortOrder, onPlay),
		Downloader: r.downloader(),
		Open:       r.open,
		OutputDir:  r.config.Output.Dir,
		Folder:     cmd.StringArg("dir"),
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
