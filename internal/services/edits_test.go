package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

func ptr[T any](v T) *T { return &v }

// lastAudit returns the newest audit entry.
func lastAudit(t *testing.T, svc *PipelineService) *models.AuditEntry {
	t.Helper()
	page, err := svc.ListAudit(context.Background(), AuditFilter{Limit: 1})
	if err != nil {
		t.Fatalf("failed to list audit: %v", err)
	}
	if len(page.Data) == 0 {
		t.Fatal("audit trail is empty")
	}
	return page.Data[0]
}

func changedFields(t *testing.T, e *models.AuditEntry) []string {
	t.Helper()
	raw, ok := e.Details["changedFields"].([]any)
	if !ok {
		t.Fatalf("expected changedFields in %+v", e.Details)
	}
	fields := make([]string, len(raw))
	for i, f := range raw {
		fields[i], _ = f.(string)
	}
	return fields
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("vacancy fields", func(t *testing.T) {
		svc := setupTestService(t)

		item, err := svc.UpdateItem(ctx, kanban.KindVacancy, "1", ItemChanges{
			Title:    ptr("Senior Frontend Developer"),
			Subtitle: ptr("Data Insights"),
			Salary:   &models.Salary{Amount: 9000, Currency: "USD"},
		})
		if err != nil {
			t.Fatalf("failed to update: %v", err)
		}
		if item.Title != "Senior Frontend Developer" || item.Subtitle != "Data Insights" {
			t.Errorf("unexpected item %+v", item)
		}

		v, ok := item.Vacancy()
		if !ok || v.CompanyID != "3" {
			t.Errorf("expected company 3, got %+v", item.Details)
		}

		entry := lastAudit(t, svc)
		if entry.Action != models.ActionUpdated || entry.EntityType != models.EntityVacancy || entry.EntityID != "1" {
			t.Errorf("unexpected audit entry %+v", entry)
		}
		if got := changedFields(t, entry); !slices.Equal(got, []string{"title", "company", "salary"}) {
			t.Errorf("unexpected changed fields %v", got)
		}
	})

	t.Run("stage is untouched", func(t *testing.T) {
		svc := setupTestService(t)

		item, err := svc.UpdateItem(ctx, kanban.KindCandidate, "1", ItemChanges{Tags: []string{"Go"}})
		if err != nil {
			t.Fatalf("failed to update: %v", err)
		}
		if item.Stage != "Interview" || !slices.Equal(item.Tags, []string{"Go"}) {
			t.Errorf("unexpected item %+v", item)
		}
	})

	t.Run("candidate name and position", func(t *testing.T) {
		svc := setupTestService(t)

		item, err := svc.UpdateItem(ctx, kanban.KindCandidate, "1", ItemChanges{
			Title:    ptr("Ivan Sergeevich Petrov"),
			Subtitle: ptr("Team Lead"),
		})
		if err != nil {
			t.Fatalf("failed to update: %v", err)
		}
		if item.Title != "Ivan Sergeevich Petrov" || item.Subtitle != "Team Lead" {
			t.Errorf("unexpected item %+v", item)
		}
		if got := changedFields(t, lastAudit(t, svc)); !slices.Equal(got, []string{"name", "position"}) {
			t.Errorf("unexpected changed fields %v", got)
		}
	})

	t.Run("invalid changes", func(t *testing.T) {
		tc := []struct {
			name    string
			kind    kanban.Kind
			id      string
			changes ItemChanges
			want    error
		}{
			{name: "nothing to update", kind: kanban.KindVacancy, id: "1", want: shared.ErrInvalidInput},
			{name: "candidate salary", kind: kanban.KindCandidate, id: "1", changes: ItemChanges{Salary: &models.Salary{Amount: 1}}, want: shared.ErrInvalidInput},
			{name: "single name", kind: kanban.KindCandidate, id: "1", changes: ItemChanges{Title: ptr("Ivan")}, want: shared.ErrInvalidInput},
			{name: "unknown status", kind: kanban.KindVacancy, id: "1", changes: ItemChanges{Status: ptr(models.Status("paused"))}, want: shared.ErrInvalidInput},
			{name: "missing item", kind: kanban.KindCandidate, id: "404", changes: ItemChanges{Tags: []string{"Go"}}, want: shared.ErrItemNotFound},
			{name: "unknown kind", kind: kanban.Kind("company"), id: "1", changes: ItemChanges{Tags: []string{"Go"}}, want: shared.ErrInvalidKind},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				svc := setupTestService(t)

				if _, err := svc.UpdateItem(ctx, tt.kind, tt.id, tt.changes); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				page, err := svc.ListAudit(ctx, AuditFilter{})
				if err != nil {
					t.Fatalf("failed to list audit: %v", err)
				}
				if page.Total != 3 {
					t.Errorf("failed update should not be audited, got %d entries", page.Total)
				}
			})
		}
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("hides the item and records it", func(t *testing.T) {
		svc := setupTestService(t)

		if err := svc.DeleteItem(ctx, kanban.KindCandidate, "3"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		items, err := svc.ListItems(ctx, kanban.KindCandidate, kanban.Filter{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(items) != 19 {
			t.Errorf("expected 19 candidates, got %d", len(items))
		}

		entry := lastAudit(t, svc)
		if entry.Action != models.ActionDeleted || entry.EntityID != "3" || entry.EntityName != "Александр Иванов" {
			t.Errorf("unexpected audit entry %+v", entry)
		}

		if err := svc.DeleteItem(ctx, kanban.KindCandidate, "3"); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound on second delete, got %v", err)
		}
	})

	t.Run("deleted items cannot change stage", func(t *testing.T) {
		svc := setupTestService(t)

		if err := svc.DeleteItem(ctx, kanban.KindVacancy, "5"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if _, err := svc.SetItemStage(ctx, kanban.KindVacancy, "5", "Offer"); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestCompanyEdits(t *testing.T) {
	ctx := context.Background()

	t.Run("GetCompany lists vacancies", func(t *testing.T) {
		svc := setupTestService(t)

		detail, err := svc.GetCompany(ctx, "2")
		if err != nil {
			t.Fatalf("failed to get company: %v", err)
		}
		if detail.Company.Name != "Tech Solutions" || len(detail.Vacancies) != detail.Company.TotalVacancies {
			t.Errorf("unexpected detail %+v", detail)
		}

		if _, err := svc.GetCompany(ctx, "404"); !errors.Is(err, shared.ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound, got %v", err)
		}
	})

	t.Run("create update delete", func(t *testing.T) {
		svc := setupTestService(t)

		company := &models.Company{Name: " Acme ", Industry: "Retail"}
		if err := svc.CreateCompany(ctx, company); err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if company.ID != "4" || company.Name != "Acme" || company.CreatedBy != "1" {
			t.Errorf("unexpected company %+v", company)
		}
		if entry := lastAudit(t, svc); entry.Action != models.ActionCreated || entry.EntityType != models.EntityCompany {
			t.Errorf("unexpected audit entry %+v", entry)
		}

		updated, err := svc.UpdateCompany(ctx, company.ID, CompanyChanges{LegalName: ptr("Acme Corp"), Industry: ptr("Software")})
		if err != nil {
			t.Fatalf("failed to update: %v", err)
		}
		if updated.LegalName != "Acme Corp" || updated.Industry != "Software" || updated.Name != "Acme" {
			t.Errorf("unexpected company %+v", updated)
		}
		if got := changedFields(t, lastAudit(t, svc)); !slices.Equal(got, []string{"legalName", "industry"}) {
			t.Errorf("unexpected changed fields %v", got)
		}

		if err := svc.DeleteCompany(ctx, company.ID); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if entry := lastAudit(t, svc); entry.Action != models.ActionDeleted || entry.EntityName != "Acme" {
			t.Errorf("unexpected audit entry %+v", entry)
		}
		if _, err := svc.GetCompany(ctx, company.ID); !errors.Is(err, shared.ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound after delete, got %v", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := setupTestService(t)

		if err := svc.CreateCompany(ctx, &models.Company{Name: "  "}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := svc.UpdateCompany(ctx, "1", CompanyChanges{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := svc.UpdateCompany(ctx, "1", CompanyChanges{Name: ptr("")}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if err := svc.DeleteCompany(ctx, "404"); !errors.Is(err, shared.ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound, got %v", err)
		}
	})
}

func TestNotificationEdits(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	if err := svc.MarkNotificationUnread(ctx, "2"); err != nil {
		t.Fatalf("failed to mark unread: %v", err)
	}
	if err := svc.DismissNotification(ctx, "1"); err != nil {
		t.Fatalf("failed to dismiss: %v", err)
	}

	unread, err := svc.ListNotifications(ctx, true)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	ids := []string{}
	for _, n := range unread {
		ids = append(ids, n.ID)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []string{"2", "3"}) {
		t.Errorf("expected notifications 2 and 3 unread, got %v", ids)
	}

	if err := svc.DismissNotification(ctx, "1"); !errors.Is(err, shared.ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := svc.MarkNotificationUnread(ctx, "404"); !errors.Is(err, shared.ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
}
