// submodule cmd contains command definitions
package main

import (
	"fmt"
	"strings"

	"github.com/desertthunder/facelapse/internal/formatter"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// uploadCommand uploads a folder without the interactive UI
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a folder of JPG photos and wait for the video",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "dir"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort-order",
				Usage: fmt.Sprintf("Frame order (%s or %s)", shared.SortOldToYoung, shared.SortYoungToOld),
				Value: r.config.Upload.SortOrder,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the video in the browser when it is ready",
				Value: r.config.Output.OpenBrowser,
			},
			&cli.BoolFlag{
				Name:  "download",
				Usage: "Save the video to the output directory",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory for downloaded videos",
				Value:   r.config.Output.Dir,
			},
		},
		Action: r.Upload,
	}
}

// checkCommand validates a folder without uploading it
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Report which files in a folder would be uploaded",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "dir"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (" + strings.Join(formatter.Formats, ", ") + ")",
				Value:   formatter.FormatText,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to a file instead of stdout",
			},
		},
		Action: r.Check,
	}
}

// downloadCommand fetches a generated video
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download a generated video by its path",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "video_path"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Destination directory",
				Value:   r.config.Output.Dir,
			},
		},
		Action: r.Download,
	}
}

// statusCommand checks that the processing service answers
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Check that the processing service is reachable",
		Action: r.Status,
	}
}

// setupCommand writes a starter configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a configuration file from the built-in template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive uploader",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "dir"},
		},
		Action: r.TUI,
	}
}
