package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/services"
	"github.com/desertthunder/recruitflow/internal/shared"
)

const dateLayout = "2006-01-02"

// StagesList prints the stages of a board in column order.
func (r *Runner) StagesList(ctx context.Context, cmd *cli.Command) error {
	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	stages, err := svc.ListStages(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to list stages: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stages, cmd.Bool("pretty"))
	}

	r.writePlain("%s stages:\n", kind.Label())
	for i, s := range stages {
		r.writePlain("%d. %s\n", i+1, s)
	}
	return nil
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s must be YYYY-MM-DD, got %q", shared.ErrInvalidFlag, flag, value)
	}
	return t, nil
}

// AuditList prints one page of the audit trail, newest first.
func (r *Runner) AuditList(ctx context.Context, cmd *cli.Command) error {
	since, err := parseDate("since", cmd.String("since"))
	if err != nil {
		return err
	}
	until, err := parseDate("until", cmd.String("until"))
	if err != nil {
		return err
	}
	if !until.IsZero() {
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	entity := cmd.String("entity")
	switch models.EntityType(entity) {
	case "", models.EntityCompany, models.EntityVacancy, models.EntityCandidate:
	default:
		return fmt.Errorf("%w: unknown entity type %q", shared.ErrInvalidFlag, entity)
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	page, err := svc.ListAudit(ctx, services.AuditFilter{
		UserID:     cmd.String("user"),
		EntityType: entity,
		EntityID:   cmd.String("entity-id"),
		Action:     cmd.String("action"),
		Since:      since,
		Until:      until,
		Page:       cmd.Int("page"),
		Limit:      cmd.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to list audit log: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Audit log: page %d, %d of %d entries\n\n", page.Page, len(page.Data), page.Total)
	for _, e := range page.Data {
		r.writePlain("%s  %-10s %s %s %s", e.Timestamp.Format("2006-01-02 15:04"), e.UserName, e.Action, e.EntityType, e.EntityName)
		if from, to, ok := e.StageChange(); ok {
			r.writePlain(" (%s → %s)", from, to)
		}
		r.writePlain("\n")
	}
	return nil
}

// NotificationsList prints the configured user's notifications.
func (r *Runner) NotificationsList(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	notifications, err := svc.ListNotifications(ctx, cmd.Bool("unread"))
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(notifications, cmd.Bool("pretty"))
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	r.writePlain("%d notifications, %d unread\n\n", len(notifications), unread)
	for _, n := range notifications {
		marker := "○"
		if !n.IsRead {
			marker = "●"
		}
		r.writePlain("%s [%s] %s (%s)\n", marker, n.ID, n.Title, n.Type)
		r.writePlain("   %s\n", n.Message)
		r.writePlain("   %s\n", n.Timestamp.Format("2006-01-02 15:04"))
	}
	return nil
}

// NotificationsRead marks one notification, or all of them with --all, as read.
func (r *Runner) NotificationsRead(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	all := cmd.Bool("all")

	if id == "" && !all {
		return fmt.Errorf("%w: either a notification id or --all must be provided", shared.ErrMissingArgument)
	}
	if id != "" && all {
		return fmt.Errorf("%w: cannot specify both an id and --all", shared.ErrInvalidArgument)
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	if all {
		n, err := svc.MarkAllNotificationsRead(ctx)
		if err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		r.writePlain("✓ Marked %d notifications as read\n", n)
		return nil
	}

	if err := svc.MarkNotificationRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	r.writePlain("✓ Notification %s marked as read\n", id)
	return nil
}

// CompaniesList prints companies with their vacancy counts.
func (r *Runner) CompaniesList(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	companies, err := svc.ListCompanies(ctx, cmd.String("search"))
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(companies, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d companies:\n\n", len(companies))
	for i, c := range companies {
		r.writePlain("%d. %s\n", i+1, c.Name)
		r.writePlain("   ID: %s\n", c.ID)
		if c.Industry != "" {
			r.writePlain("   Industry: %s\n", c.Industry)
		}
		r.writePlain("   Vacancies: %d active of %d\n\n", c.ActiveVacancies, c.TotalVacancies)
	}
	return nil
}
