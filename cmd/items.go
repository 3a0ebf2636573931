package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/recruitflow/internal/formatter"
	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
	"github.com/desertthunder/recruitflow/internal/tasks"
)

// logNotifier reports coordinator notifications through the logger.
type logNotifier struct {
	logger *log.Logger
}

func (n logNotifier) NotifySuccess(message string) { n.logger.Info(message) }

func (n logNotifier) NotifyFailure(message string) { n.logger.Warn(message) }

// ItemsList lists items grouped by stage in column order.
func (r *Runner) ItemsList(ctx context.Context, cmd *cli.Command) error {
	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	filter := kanban.Filter{
		Search:    cmd.String("search"),
		CompanyID: cmd.String("company"),
		VacancyID: cmd.String("vacancy"),
		Status:    cmd.String("status"),
		Stage:     cmd.String("stage"),
		Skills:    cmd.StringSlice("skill"),
		Languages: cmd.StringSlice("language"),
		Page:      cmd.Int("page"),
		Limit:     cmd.Int("limit"),
	}

	r.logger.Debug("listing items", "kind", kind, "filter", filter)

	items, err := svc.ListItems(ctx, kind, filter)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", kind.Plural(), err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	stages, err := svc.ListStages(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to list stages: %w", err)
	}

	layout := kanban.ComputeColumns(stages, items)
	r.writePlain("Found %d %s:\n", len(items), kind.Plural())
	for _, stage := range layout.Stages {
		col := layout.Column(stage)
		if len(col) == 0 {
			continue
		}
		r.writePlainln("%s (%d)", stage, len(col))
		for _, item := range col {
			r.writeItemLine(item)
		}
	}
	if len(layout.Unassigned) > 0 {
		r.writePlainln("Unassigned (%d)", len(layout.Unassigned))
		for _, item := range layout.Unassigned {
			r.writeItemLine(item)
		}
	}
	return nil
}

func (r *Runner) writeItemLine(item kanban.Item) {
	r.writePlain("  [%s] %s", item.ID, item.Title)
	if item.Subtitle != "" {
		r.writePlain(" - %s", item.Subtitle)
	}
	if len(item.Tags) > 0 {
		r.writePlain(" (%s)", strings.Join(item.Tags, ", "))
	}
	if item.Salary != nil {
		r.writePlain(" %s", item.Salary)
	}
	r.writePlain("\n")
}

// ItemsShow prints an item's full record and stage history.
func (r *Runner) ItemsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item id is required", shared.ErrMissingArgument)
	}

	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	detail, err := svc.GetItemDetail(ctx, kind, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s %s: %s", kind.Label(), detail.Item.ID, detail.Item.Title))
	for _, f := range detail.Fields {
		if f.Value == "" {
			continue
		}
		r.writePlain("%-12s %s\n", f.Label+":", f.Value)
	}

	r.writePlainln("Stage history")
	if len(detail.History) == 0 {
		r.writePlain("  No stage changes yet\n")
	}
	for _, h := range detail.History {
		r.writePlain("  %s  %s → %s", h.At.Format("2006-01-02 15:04"), h.From, h.To)
		if h.By != "" {
			r.writePlain(" by %s", h.By)
		}
		r.writePlain("\n")
	}
	return nil
}

// ItemsMove moves every item given as an argument to the --to stage.
func (r *Runner) ItemsMove(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one item id is required", shared.ErrMissingArgument)
	}
	dest := cmd.String("to")

	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	board, err := kanban.Load(ctx, svc, kind, kanban.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	if !board.Registry().Contains(dest) {
		return fmt.Errorf("%w: %q (stages: %s)", shared.ErrStageUnknown, dest, strings.Join(board.Registry().Stages(), ", "))
	}

	coord := kanban.NewCoordinator(board, svc, logNotifier{logger: r.logger}, r.logger)
	mover := tasks.NewStageMover(coord, r.logger)

	progress := make(chan tasks.ProgressUpdate, len(ids)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.MoveItems:
				r.writePlain("  [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.MoveFailed:
				r.writePlain("  [%d/%d] ✗ %s\n", update.Step, update.Total, update.Message)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	opts := tasks.BulkMoveOpts{NumWorkers: cmd.Int("workers"), RateLimit: cmd.Float("rate")}
	result, err := mover.Run(ctx, progress, ids, dest, opts)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	if result.Failed > 0 {
		r.writePlainln("%d of %d moves failed", result.Failed, result.Total)
	} else {
		r.writePlainln("✓ All %s are in %s", kind.Plural(), dest)
	}
	return nil
}

// ItemsExport writes the current board to a file (or stdout) in the chosen format.
func (r *Runner) ItemsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	board, err := kanban.Load(ctx, svc, kind, kanban.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	export := formatter.NewBoardExport(board)

	if cmd.Bool("stdout") {
		data, err := formatter.Render(export, format)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("board exported", "kind", kind, "format", format, "path", path)
	r.writePlain("✓ Exported %d %s to %s\n", export.Count(), kind.Plural(), path)
	return nil
}

// ItemsImport creates records from a YAML fixture.
func (r *Runner) ItemsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a YAML file is required", shared.ErrMissingArgument)
	}

	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	items, err := formatter.ReadItemsFile(path, kind)
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	created, err := svc.ImportItems(ctx, kind, items)
	if err != nil {
		return fmt.Errorf("imported %d of %d %s: %w", created, len(items), kind.Plural(), err)
	}

	r.writePlain("✓ Imported %d %s from %s\n", created, kind.Plural(), path)
	return nil
}
