package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/facelapse/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the configuration template and checks that it loads.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("created config does not load: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlain("Service: %s\n", config.Service.BaseURL)
	r.writePlain("Next: run 'facelapse status' to check the processing service\n")
	return nil
}
