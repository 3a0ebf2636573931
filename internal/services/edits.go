package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// ItemChanges lists the fields of an item to overwrite. Nil fields keep their value.
//
// Stage is not editable here; stage changes go through [PipelineService.SetItemStage].
type ItemChanges struct {
	Title    *string        // vacancy title, or "First Last" for candidates
	Subtitle *string        // vacancy company name, or candidate position
	Tags     []string       // skills
	Salary   *models.Salary // vacancies only
	Status   *models.Status
}

func (c ItemChanges) empty() bool {
	return c.Title == nil && c.Subtitle == nil && c.Tags == nil && c.Salary == nil && c.Status == nil
}

// CompanyChanges lists the fields of a company to overwrite. Nil fields keep their value.
type CompanyChanges struct {
	Name        *string
	LegalName   *string
	Description *string
	Industry    *string
}

func (c CompanyChanges) empty() bool {
	return c.Name == nil && c.LegalName == nil && c.Description == nil && c.Industry == nil
}

// CompanyDetail is a company with its vacancies.
type CompanyDetail struct {
	Company   *models.Company   `json:"company"`
	Vacancies []*models.Vacancy `json:"vacancies"`
}

// recordAudit appends an entry to the audit trail. Failures are logged, not returned.
func (s *PipelineService) recordAudit(action string, entity models.EntityType, id, name string, details map[string]any) {
	entry := &models.AuditEntry{
		UserID:     s.user.ID,
		UserName:   s.user.Name,
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		EntityName: name,
		Details:    details,
	}
	if err := s.audit.Create(entry); err != nil {
		s.logger.Error("failed to record audit entry", "action", action, "entity", entity, "id", id, "error", err)
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
}

func splitName(full string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(full), " ")
	return first, strings.TrimSpace(last)
}

// UpdateItem overwrites the given fields of an item and records an "updated" audit entry listing
// the changed fields.
func (s *PipelineService) UpdateItem(ctx context.Context, kind kanban.Kind, id string, changes ItemChanges) (kanban.Item, error) {
	if err := checkKind(kind); err != nil {
		return kanban.Item{}, err
	}
	if changes.empty() {
		return kanban.Item{}, fmt.Errorf("%w: nothing to update", shared.ErrInvalidInput)
	}
	if err := s.wait(ctx, s.latencies.Stage); err != nil {
		return kanban.Item{}, err
	}

	var (
		updated kanban.Item
		changed []string
	)

	switch kind {
	case kanban.KindVacancy:
		v, err := s.vacancies.Get(id)
		if err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		if changes.Title != nil {
			v.Title = strings.TrimSpace(*changes.Title)
			changed = append(changed, "title")
		}
		if changes.Subtitle != nil {
			company, err := s.companyByName(strings.TrimSpace(*changes.Subtitle))
			if err != nil {
				return kanban.Item{}, err
			}
			v.CompanyID, v.CompanyName = company.ID, company.Name
			changed = append(changed, "company")
		}
		if changes.Tags != nil {
			v.Skills = changes.Tags
			changed = append(changed, "skills")
		}
		if changes.Salary != nil {
			v.Salary = changes.Salary
			changed = append(changed, "salary")
		}
		if changes.Status != nil {
			v.Status = *changes.Status
			changed = append(changed, "status")
		}
		if err := v.Validate(); err != nil {
			return kanban.Item{}, invalid(err)
		}
		if err := s.vacancies.Update(v); err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		updated = kanban.FromVacancy(v)

	case kanban.KindCandidate:
		if changes.Salary != nil {
			return kanban.Item{}, fmt.Errorf("%w: candidates have no salary", shared.ErrInvalidInput)
		}
		c, err := s.candidates.Get(id)
		if err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		if changes.Title != nil {
			c.FirstName, c.LastName = splitName(*changes.Title)
			changed = append(changed, "name")
		}
		if changes.Subtitle != nil {
			c.Position = strings.TrimSpace(*changes.Subtitle)
			changed = append(changed, "position")
		}
		if changes.Tags != nil {
			c.Skills = changes.Tags
			changed = append(changed, "skills")
		}
		if changes.Status != nil {
			c.Status = *changes.Status
			changed = append(changed, "status")
		}
		if err := c.Validate(); err != nil {
			return kanban.Item{}, invalid(err)
		}
		if err := s.candidates.Update(c); err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		updated = kanban.FromCandidate(c)
	}

	s.recordAudit(models.ActionUpdated, kind.EntityType(), updated.ID, updated.Title, map[string]any{"changedFields": changed})
	s.logger.Info("item updated", "kind", kind, "id", id, "fields", changed)
	return updated, nil
}

// DeleteItem soft-deletes an item and records a "deleted" audit entry.
func (s *PipelineService) DeleteItem(ctx context.Context, kind kanban.Kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := s.wait(ctx, s.latencies.Stage); err != nil {
		return err
	}

	var name string
	switch kind {
	case kanban.KindVacancy:
		v, err := s.vacancies.Get(id)
		if err != nil {
			return notFound(kind, err)
		}
		if err := s.vacancies.Delete(id); err != nil {
			return notFound(kind, err)
		}
		name = v.Title
	case kanban.KindCandidate:
		c, err := s.candidates.Get(id)
		if err != nil {
			return notFound(kind, err)
		}
		if err := s.candidates.Delete(id); err != nil {
			return notFound(kind, err)
		}
		name = c.FullName()
	}

	s.recordAudit(models.ActionDeleted, kind.EntityType(), id, name, nil)
	s.logger.Info("item deleted", "kind", kind, "id", id)
	return nil
}

// GetCompany returns a company with its vacancies in insertion order.
func (s *PipelineService) GetCompany(ctx context.Context, id string) (CompanyDetail, error) {
	if err := s.wait(ctx, s.latencies.Detail); err != nil {
		return CompanyDetail{}, err
	}

	company, err := s.companies.Get(id)
	if err != nil {
		return CompanyDetail{}, err
	}

	vacancies, err := s.vacancies.List(map[string]any{"company_id": id})
	if err != nil {
		return CompanyDetail{}, err
	}
	return CompanyDetail{Company: company, Vacancies: vacancies}, nil
}

// CreateCompany stores a new company on behalf of the acting user.
func (s *PipelineService) CreateCompany(ctx context.Context, company *models.Company) error {
	if err := s.wait(ctx, s.latencies.Stage); err != nil {
		return err
	}

	company.Name = strings.TrimSpace(company.Name)
	company.CreatedBy = s.user.ID
	if err := company.Validate(); err != nil {
		return invalid(err)
	}
	return s.createCompany(company)
}

func (s *PipelineService) createCompany(company *models.Company) error {
	if err := s.companies.Create(company); err != nil {
		return err
	}
	s.recordAudit(models.ActionCreated, models.EntityCompany, company.ID, company.Name, nil)
	s.logger.Info("company created", "id", company.ID, "name", company.Name)
	return nil
}

// UpdateCompany overwrites the given fields of a company.
func (s *PipelineService) UpdateCompany(ctx context.Context, id string, changes CompanyChanges) (*models.Company, error) {
	if changes.empty() {
		return nil, fmt.Errorf("%w: nothing to update", shared.ErrInvalidInput)
	}
	if err := s.wait(ctx, s.latencies.Stage); err != nil {
		return nil, err
	}

	company, err := s.companies.Get(id)
	if err != nil {
		return nil, err
	}

	var changed []string
	set := func(field string, dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			changed = append(changed, field)
		}
	}
	set("name", &company.Name, changes.Name)
	set("legalName", &company.LegalName, changes.LegalName)
	set("description", &company.Description, changes.Description)
	set("industry", &company.Industry, changes.Industry)

	if err := company.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.companies.Update(company); err != nil {
		return nil, err
	}

	s.recordAudit(models.ActionUpdated, models.EntityCompany, company.ID, company.Name, map[string]any{"changedFields": changed})
	return company, nil
}

// DeleteCompany soft-deletes a company. Its vacancies keep the company name they were stored with.
func (s *PipelineService) DeleteCompany(ctx context.Context, id string) error {
	if err := s.wait(ctx, s.latencies.Stage); err != nil {
		return err
	}

	company, err := s.companies.Get(id)
	if err != nil {
		return err
	}
	if err := s.companies.Delete(id); err != nil {
		return err
	}

	s.recordAudit(models.ActionDeleted, models.EntityCompany, id, company.Name, nil)
	s.logger.Info("company deleted", "id", id)
	return nil
}

// MarkNotificationUnread clears the read flag of one notification.
func (s *PipelineService) MarkNotificationUnread(ctx context.Context, id string) error {
	if err := s.wait(ctx, s.latencies.Detail); err != nil {
		return err
	}

	n, err := s.notifications.Get(id)
	if err != nil {
		return err
	}
	n.IsRead = false
	return s.notifications.Update(n)
}

// DismissNotification removes a notification permanently.
func (s *PipelineService) DismissNotification(ctx context.Context, id string) error {
	if err := s.wait(ctx, s.latencies.Detail); err != nil {
		return err
	}
	return s.notifications.Delete(id)
}
