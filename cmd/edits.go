package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/services"
	"github.com/desertthunder/recruitflow/internal/shared"
)

func optionalString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

func requireID(cmd *cli.Command, what string) (string, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return "", fmt.Errorf("%w: %s id is required", shared.ErrMissingArgument, what)
	}
	return id, nil
}

// ItemsUpdate overwrites the fields given as flags. Unset flags keep their value.
func (r *Runner) ItemsUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "item")
	if err != nil {
		return err
	}

	kind, err := r.kind(cmd)
	if err != nil {
		return err
	}

	changes := services.ItemChanges{
		Title:    optionalString(cmd, "title"),
		Subtitle: optionalString(cmd, "subtitle"),
	}
	if cmd.IsSet("skill") {
		changes.Tags = cmd.StringSlice("skill")
	}
	if cmd.IsSet("salary") {
		changes.Salary = &models.Salary{Amount: cmd.Int64("salary"), Currency: cmd.String("currency")}
	}
	if cmd.IsSet("status") {
		status := models.Status(cmd.String("status"))
		changes.Status = &status
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	item, err := svc.UpdateItem(ctx, kind, id, changes)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(item, cmd.Bool("pretty"))
	}
	r.writePlain("✓ Updated %s %s\n", kind, item.ID)
	r.writeItemLine(item)
	return nil
}

// ItemsDelete removes an item from its board.
func (r *Runner) ItemsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "item")
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

	if err := svc.DeleteItem(ctx, kind, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	r.writePlain("✓ Deleted %s %s\n", kind, id)
	return nil
}

// CompaniesShow prints a company and its vacancies.
func (r *Runner) CompaniesShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "company")
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	detail, err := svc.GetCompany(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	c := detail.Company
	r.writePlainHeader(fmt.Sprintf("Company %s: %s", c.ID, c.Name))
	for _, f := range [][2]string{
		{"Legal name", c.LegalName},
		{"Industry", c.Industry},
		{"Description", c.Description},
	} {
		if f[1] != "" {
			r.writePlain("%-12s %s\n", f[0]+":", f[1])
		}
	}

	r.writePlainln("Vacancies (%d)", len(detail.Vacancies))
	for _, v := range detail.Vacancies {
		r.writePlain("  [%s] %s (%s, %s)\n", v.ID, v.Title, v.Stage, v.Status)
	}
	return nil
}

// CompaniesCreate stores a new company named by the argument.
func (r *Runner) CompaniesCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: company name is required", shared.ErrMissingArgument)
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	company := &models.Company{
		Name:        name,
		LegalName:   cmd.String("legal-name"),
		Industry:    cmd.String("industry"),
		Description: cmd.String("description"),
	}
	if err := svc.CreateCompany(ctx, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	r.writePlain("✓ Created company %s (ID: %s)\n", company.Name, company.ID)
	return nil
}

// CompaniesUpdate overwrites the company fields given as flags.
func (r *Runner) CompaniesUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "company")
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	company, err := svc.UpdateCompany(ctx, id, services.CompanyChanges{
		Name:        optionalString(cmd, "name"),
		LegalName:   optionalString(cmd, "legal-name"),
		Description: optionalString(cmd, "description"),
		Industry:    optionalString(cmd, "industry"),
	})
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", id, err)
	}
	r.writePlain("✓ Updated company %s (ID: %s)\n", company.Name, company.ID)
	return nil
}

// CompaniesDelete removes a company. Its vacancies stay on the board.
func (r *Runner) CompaniesDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "company")
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	if err := svc.DeleteCompany(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company %s: %w", id, err)
	}
	r.writePlain("✓ Deleted company %s\n", id)
	return nil
}

// NotificationsUnread clears the read flag of one notification.
func (r *Runner) NotificationsUnread(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "notification")
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	if err := svc.MarkNotificationUnread(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification unread: %w", err)
	}
	r.writePlain("✓ Notification %s marked as unread\n", id)
	return nil
}

// NotificationsDismiss deletes one notification.
func (r *Runner) NotificationsDismiss(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "notification")
	if err != nil {
		return err
	}

	svc, err := r.pipeline()
	if err != nil {
		return err
	}

	if err := svc.DismissNotification(ctx, id); err != nil {
		return fmt.Errorf("failed to dismiss notification: %w", err)
	}
	r.writePlain("✓ Notification %s dismissed\n", id)
	return nil
}
