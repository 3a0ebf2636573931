package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// SetupDatabase creates the config file when missing, then opens the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	r.Close()
	r.config = config
	r.service = nil

	svc, err := r.pipeline()
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	r.writePlain("✓ Database ready: %s\n", config.Database.Path)
	for _, kind := range []kanban.Kind{kanban.KindVacancy, kanban.KindCandidate} {
		stages, err := svc.ListStages(ctx, kind)
		if err != nil {
			return fmt.Errorf("failed to read %s stages: %w", kind, err)
		}
		r.writePlain("  %s stages: %d\n", kind.Label(), len(stages))
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
