package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/facelapse/internal/page"
	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	open       func(context.Context, string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Open       func(ctx context.Context, url string) error // Playback primitive; defaults to [shared.OpenBrowser]
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.Service.BaseURL, opts.HTTPClient)
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       opts.Open,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		uploadCommand, checkCommand, downloadCommand, statusCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// newHost builds a page host wired to the processing service.
func (r *Runner) newHost(ctx context.Context, sortOrder string, onPlay func(string)) *page.Host {
	return page.New(page.Options{
		Context:   ctx,
		BaseURL:   r.api.BaseURL(),
		Client:    r.api,
		MaxBytes:  r.config.Upload.MaxBytes,
		SortOrder: sortOrder,
		Logger:    r.logger,
		OnPlay:    onPlay,
	})
}

// openOnPlay returns the video play listener: it hands the source URL to the browser.
func (r *Runner) openOnPlay(ctx context.Context) func(string) {
	return func(src string) {
		if err := r.open(ctx, src); err != nil {
			r.logger.Warn("could not open browser", "url", src, "error", err)
		}
	}
}

func (r *Runner) downloader() *services.Downloader {
	return services.NewDownloader(services.DownloadOptions{
		BaseURL:    r.api.BaseURL(),
		Client:     r.httpClient,
		Rate:       r.config.Output.DownloadRate,
		MaxRetries: r.config.Output.MaxRetries,
		Logger:     r.logger,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
