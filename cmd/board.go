package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
	"github.com/desertthunder/recruitflow/internal/ui"
)

const defaultTUILog = "./tmp/recruitflow-tui.log"

// kind resolves the --kind flag, falling back to the configured default board.
func (r *Runner) kind(cmd *cli.Command) (kanban.Kind, error) {
	k := cmd.String("kind")
	if k == "" {
		k = r.config.Board.DefaultKind
	}
	return kanban.ParseKind(k)
}

// Board launches the interactive pipeline board.
func (r *Runner) Board(ctx context.Context, cmd *cli.Command) error {
	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	opts := ui.Options{
		Filter: kanban.Filter{
			CompanyID: cmd.String("company"),
			VacancyID: cmd.String("vacancy"),
		},
		DropTolerance: r.config.Board.DropTolerance,
		ToastDuration: r.config.Board.ToastDuration(),
		Logger:        fileLogger,
	}

	if err := ui.Run(ctx, svc, kind, opts); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}
