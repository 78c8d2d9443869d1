package main

import (
	"context"
	"os"

	"github.com/desertthunder/facelapse/internal/services"
	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// configEnv overrides the default config file location.
const configEnv = "FACELAPSE_CONFIG"

func main() {
	ctx := context.Background()
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	if p := os.Getenv(configEnv); p != "" {
		configPath = p
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			logger.Fatalf("invalid config %s: %v", configPath, err)
		}
		config = loaded
	}

	if err := shared.ApplyLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	httpClient := services.NewHTTPClient(ctx, config.Service.Token)
	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		API:        services.NewAPIService(config.Service.BaseURL, httpClient),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "facelapse",
		Usage:    "Turn a folder of face photos into a timelapse video",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
