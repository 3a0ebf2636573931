package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// AuditFilter narrows an audit trail listing. Zero values match everything.
type AuditFilter struct {
	UserID     string
	EntityType string
	EntityID   string
	Action     string
	Since      time.Time
	Until      time.Time
	Page       int
	Limit      int
}

// ListAudit returns one page of the audit trail, newest first.
func (s *PipelineService) ListAudit(ctx context.Context, f AuditFilter) (models.Page[*models.AuditEntry], error) {
	if err := s.wait(ctx, s.latencies.List); err != nil {
		return models.Page[*models.AuditEntry]{}, err
	}

	criteria := map[string]any{
		"user_id":     f.UserID,
		"entity_type": f.EntityType,
		"entity_id":   f.EntityID,
		"action":      f.Action,
	}
	if !f.Since.IsZero() {
		criteria["since"] = f.Since
	}
	if !f.Until.IsZero() {
		criteria["until"] = f.Until
	}

	entries, err := s.audit.List(criteria)
	if err != nil {
		return models.Page[*models.AuditEntry]{}, err
	}
	return models.Paginate(entries, f.Page, f.Limit), nil
}

// ListCompanies returns companies whose name matches search.
func (s *PipelineService) ListCompanies(ctx context.Context, search string) ([]*models.Company, error) {
	if err := s.wait(ctx, s.latencies.List); err != nil {
		return nil, err
	}
	return s.companies.List(map[string]any{"search": search})
}

// ListNotifications returns the acting user's notifications, newest first.
func (s *PipelineService) ListNotifications(ctx context.Context, unreadOnly bool) ([]*models.Notification, error) {
	if err := s.wait(ctx, s.latencies.List); err != nil {
		return nil, err
	}
	return s.notifications.List(map[string]any{"user_id": s.user.ID, "unread": unreadOnly})
}

// MarkNotificationRead flags one notification as read.
func (s *PipelineService) MarkNotificationRead(ctx context.Context, id string) error {
	if err := s.wait(ctx, s.latencies.Detail); err != nil {
		return err
	}
	return s.notifications.MarkRead(id)
}

// MarkAllNotificationsRead flags every notification of the acting user as read.
func (s *PipelineService) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	if err := s.wait(ctx, s.latencies.Detail); err != nil {
		return 0, err
	}
	return s.notifications.MarkAllRead(s.user.ID)
}

// ImportItems creates a record for every item and returns how many were created.
//
// Vacancy subtitles name the company, which is created when missing. Candidate titles are split
// into first and last name on the first space. Every item is checked before the first write, so
// invalid input imports nothing. A storage error stops the import and keeps the records already
// created.
func (s *PipelineService) ImportItems(ctx context.Context, kind kanban.Kind, items []kanban.Item) (int, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}

	registered, err := s.stages.List(string(kind))
	if err != nil {
		return 0, err
	}

	prepared := make([]kanban.Item, len(items))
	for i, item := range items {
		if item.Stage == "" {
			item.Stage = kind.DefaultStage()
		}
		if err := checkImport(kind, item, registered); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		prepared[i] = item
	}

	created := 0
	for _, item := range prepared {
		if err := s.wait(ctx, s.latencies.Stage); err != nil {
			return created, err
		}

		var id string
		switch kind {
		case kanban.KindVacancy:
			id, err = s.importVacancy(item)
		case kanban.KindCandidate:
			id, err = s.importCandidate(item)
		}
		if err != nil {
			return created, fmt.Errorf("failed to import %q: %w", item.Title, err)
		}

		s.recordAudit(models.ActionCreated, kind.EntityType(), id, item.Title, nil)
		created++
	}

	s.logger.Info("imported items", "kind", kind, "count", created)
	return created, nil
}

// checkImport rejects an item that could not be stored.
func checkImport(kind kanban.Kind, item kanban.Item, stages []string) error {
	if !slices.Contains(stages, item.Stage) {
		return fmt.Errorf("%w: %q for %s", shared.ErrStageUnknown, item.Stage, item.Title)
	}
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	switch kind {
	case kanban.KindVacancy:
		if strings.TrimSpace(item.Subtitle) == "" {
			return fmt.Errorf("%w: vacancy %q needs a company", shared.ErrInvalidInput, item.Title)
		}
	case kanban.KindCandidate:
		if _, last := splitName(item.Title); last == "" {
			return fmt.Errorf("%w: candidate %q needs a first and last name", shared.ErrInvalidInput, item.Title)
		}
	}
	return nil
}

func (s *PipelineService) importVacancy(item kanban.Item) (string, error) {
	company, err := s.companyByName(item.Subtitle)
	if err != nil {
		return "", err
	}

	v := &models.Vacancy{
		Title:       item.Title,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Salary:      item.Salary,
		Skills:      item.Tags,
		Status:      models.StatusActive,
		Stage:       item.Stage,
	}
	if err := s.vacancies.Create(v); err != nil {
		return "", err
	}
	return v.ID, nil
}

func (s *PipelineService) importCandidate(item kanban.Item) (string, error) {
	first, last := splitName(item.Title)
	c := &models.Candidate{
		FirstName: first,
		LastName:  last,
		Position:  item.Subtitle,
		Skills:    item.Tags,
		Status:    models.StatusActive,
		Stage:     item.Stage,
	}
	if err := s.candidates.Create(c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *PipelineService) companyByName(name string) (*models.Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: vacancy company is required", shared.ErrInvalidInput)
	}

	companies, err := s.companies.List(map[string]any{"search": name})
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}

	company := &models.Company{Name: name, CreatedBy: s.user.ID}
	if err := s.createCompany(company); err != nil {
		return nil, err
	}
	return company, nil
}
