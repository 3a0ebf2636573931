package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/repositories"
	"github.com/desertthunder/recruitflow/internal/shared"
)

var _ kanban.Store = (*PipelineService)(nil)

// PipelineOpts configures a [PipelineService].
type PipelineOpts struct {
	Latencies         shared.Latencies
	RequestsPerSecond float64 // zero disables throttling
	Burst             int
	User              shared.UserConfig
	Logger            *log.Logger
}

// OptsFromConfig builds [PipelineOpts] from the application config.
func OptsFromConfig(cfg *shared.Config, logger *log.Logger) PipelineOpts {
	return PipelineOpts{
		Latencies:         cfg.API.Latencies(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		User:              cfg.User,
		Logger:            logger,
	}
}

// PipelineService is the recruiting API behind the boards.
type PipelineService struct {
	vacancies     *repositories.VacancyRepository
	candidates    *repositories.CandidateRepository
	companies     *repositories.CompanyRepository
	stages        *repositories.StageRepository
	audit         *repositories.AuditRepository
	notifications *repositories.NotificationRepository

	latencies shared.Latencies
	limiter   *rate.Limiter
	user      shared.UserConfig
	logger    *log.Logger
}

// NewPipelineService creates a service over db.
func NewPipelineService(db *sql.DB, opts PipelineOpts) *PipelineService {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), max(1, opts.Burst))
	}

	return &PipelineService{
		vacancies:     repositories.NewVacancyRepository(db),
		candidates:    repositories.NewCandidateRepository(db),
		companies:     repositories.NewCompanyRepository(db),
		stages:        repositories.NewStageRepository(db),
		audit:         repositories.NewAuditRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		latencies:     opts.Latencies,
		limiter:       limiter,
		user:          opts.User,
		logger:        shared.WithLogger(logger, "component", "pipeline"),
	}
}

// wait throttles the call and then simulates latency d.
func (s *PipelineService) wait(ctx context.Context, d time.Duration) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
	}
	return shared.Delay(ctx, d)
}

// ListStages returns the ordered stages for kind.
func (s *PipelineService) ListStages(ctx context.Context, kind kanban.Kind) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := s.wait(ctx, s.latencies.Stages); err != nil {
		return nil, err
	}
	return s.stages.List(string(kind))
}

// ListItems returns the board items of kind matching filter.
//
// Skills and languages match when the record has any of the listed values. A positive
// filter.Limit paginates the result.
func (s *PipelineService) ListItems(ctx context.Context, kind kanban.Kind, filter kanban.Filter) ([]kanban.Item, error) {
	if err := s.wait(ctx, s.latencies.List); err != nil {
		return nil, err
	}

	var items []kanban.Item
	switch kind {
	case kanban.KindVacancy:
		vacancies, err := s.vacancies.List(map[string]any{
			"company_id": filter.CompanyID,
			"status":     filter.Status,
			"stage":      filter.Stage,
			"search":     filter.Search,
		})
		if err != nil {
			return nil, err
		}
		vacancies = slices.DeleteFunc(vacancies, func(v *models.Vacancy) bool {
			return !anyOf(filter.Skills, v.Skills)
		})
		items = kanban.FromVacancies(vacancies)

	case kanban.KindCandidate:
		candidates, err := s.candidates.List(map[string]any{
			"vacancy_id": filter.VacancyID,
			"status":     filter.Status,
			"stage":      filter.Stage,
			"search":     filter.Search,
		})
		if err != nil {
			return nil, err
		}
		candidates = slices.DeleteFunc(candidates, func(c *models.Candidate) bool {
			langs := make([]string, 0, len(c.Languages))
			for _, l := range c.Languages {
				langs = append(langs, l.Language)
			}
			return !anyOf(filter.Skills, c.Skills) || !anyOf(filter.Languages, langs)
		})
		items = kanban.FromCandidates(candidates)

	default:
		return nil, checkKind(kind)
	}

	if filter.Limit > 0 {
		return models.Paginate(items, filter.Page, filter.Limit).Data, nil
	}
	return items, nil
}

// SetItemStage moves an item to stage, recording the move in the audit trail and notifications.
func (s *PipelineService) SetItemStage(ctx context.Context, kind kanban.Kind, id, stage string) (kanban.Item, error) {
	if err := checkKind(kind); err != nil {
		return kanban.Item{}, err
	}
	if err := s.wait(ctx, s.latencies.Stage); err != nil {
		return kanban.Item{}, err
	}

	ok, err := s.stages.Exists(string(kind), stage)
	if err != nil {
		return kanban.Item{}, err
	}
	if !ok {
		return kanban.Item{}, fmt.Errorf("%w: %q for %s", shared.ErrStageUnknown, stage, kind.Plural())
	}

	var before, after kanban.Item
	switch kind {
	case kanban.KindVacancy:
		v, err := s.vacancies.Get(id)
		if err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		before = kanban.FromVacancy(v)
		if v, err = s.vacancies.UpdateStage(id, stage); err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		after = kanban.FromVacancy(v)

	case kanban.KindCandidate:
		c, err := s.candidates.Get(id)
		if err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		before = kanban.FromCandidate(c)
		if c, err = s.candidates.UpdateStage(id, stage); err != nil {
			return kanban.Item{}, notFound(kind, err)
		}
		after = kanban.FromCandidate(c)
	}

	s.recordMove(before, after)
	return after, nil
}

// recordMove writes the audit entry and notification for a stage change. Failures are logged only.
func (s *PipelineService) recordMove(before, after kanban.Item) {
	s.recordAudit(models.ActionMoved, after.Kind.EntityType(), after.ID, after.Title,
		map[string]any{"fromStage": before.Stage, "toStage": after.Stage})

	notification := &models.Notification{
		UserID:     s.user.ID,
		Title:      after.Kind.Label() + " Stage Update",
		Message:    fmt.Sprintf("%s moved to %s stage", after.Title, after.Stage),
		Type:       models.NotifySuccess,
		EntityType: after.Kind.EntityType(),
		EntityID:   after.ID,
	}
	if err := s.notifications.Create(notification); err != nil {
		s.logger.Error("failed to store notification", "id", after.ID, "error", err)
	}

	s.logger.Info("stage updated", "kind", after.Kind, "id", after.ID, "from", before.Stage, "to", after.Stage)
}

// GetItemDetail returns the full record of an item with its stage history, newest first.
func (s *PipelineService) GetItemDetail(ctx context.Context, kind kanban.Kind, id string) (kanban.Detail, error) {
	if err := checkKind(kind); err != nil {
		return kanban.Detail{}, err
	}
	if err := s.wait(ctx, s.latencies.Detail); err != nil {
		return kanban.Detail{}, err
	}

	var detail kanban.Detail
	switch kind {
	case kanban.KindVacancy:
		v, err := s.vacancies.Get(id)
		if err != nil {
			return kanban.Detail{}, notFound(kind, err)
		}
		detail = kanban.Detail{Item: kanban.FromVacancy(v), Fields: vacancyFields(v)}

	case kanban.KindCandidate:
		c, err := s.candidates.Get(id)
		if err != nil {
			return kanban.Detail{}, notFound(kind, err)
		}
		detail = kanban.Detail{Item: kanban.FromCandidate(c), Fields: s.candidateFields(c)}
	}

	history, err := s.history(kind, id)
	if err != nil {
		return kanban.Detail{}, err
	}
	detail.History = history
	return detail, nil
}

func (s *PipelineService) history(kind kanban.Kind, id string) ([]kanban.StageChange, error) {
	entries, err := s.audit.List(map[string]any{
		"entity_type": string(kind.EntityType()),
		"entity_id":   id,
		"action":      models.ActionMoved,
	})
	if err != nil {
		return nil, err
	}

	history := make([]kanban.StageChange, 0, len(entries))
	for _, e := range entries {
		from, to, ok := e.StageChange()
		if !ok {
			continue
		}
		history = append(history, kanban.StageChange{From: from, To: to, By: e.UserName, At: e.Timestamp})
	}
	return history, nil
}

func vacancyFields(v *models.Vacancy) []kanban.Field {
	fields := []kanban.Field{
		{Label: "Company", Value: v.CompanyName},
		{Label: "Status", Value: string(v.Status)},
		{Label: "Stage", Value: v.Stage},
	}
	if v.Salary != nil {
		fields = append(fields, kanban.Field{Label: "Salary", Value: v.Salary.String()})
	}
	fields = append(fields,
		kanban.Field{Label: "Skills", Value: strings.Join(v.Skills, ", ")},
		kanban.Field{Label: "Created", Value: v.CreatedAt.Format(time.DateOnly)},
	)
	return fields
}

func (s *PipelineService) candidateFields(c *models.Candidate) []kanban.Field {
	langs := make([]string, 0, len(c.Languages))
	for _, l := range c.Languages {
		langs = append(langs, l.String())
	}

	fields := []kanban.Field{
		{Label: "Position", Value: c.Position},
		{Label: "Company", Value: c.CompanyName},
		{Label: "Region", Value: c.Region},
		{Label: "Education", Value: c.Education},
		{Label: "Languages", Value: strings.Join(langs, ", ")},
		{Label: "Skills", Value: strings.Join(c.Skills, ", ")},
		{Label: "Status", Value: string(c.Status)},
		{Label: "Stage", Value: c.Stage},
	}

	if c.VacancyID != "" {
		value := c.VacancyID
		if v, err := s.vacancies.Get(c.VacancyID); err == nil {
			value = v.Title
		}
		fields = append(fields, kanban.Field{Label: "Vacancy", Value: value})
	}
	return fields
}

func checkKind(kind kanban.Kind) error {
	switch kind {
	case kanban.KindVacancy, kanban.KindCandidate:
		return nil
	}
	return fmt.Errorf("%w: %q", shared.ErrInvalidKind, kind)
}

// notFound rewrites repository misses into the API's "<Kind> not found" message.
func notFound(kind kanban.Kind, err error) error {
	if errors.Is(err, shared.ErrItemNotFound) {
		return fmt.Errorf("%w: %s not found", shared.ErrItemNotFound, kind.Label())
	}
	return err
}

// anyOf reports whether have contains one of want. An empty want matches everything.
func anyOf(want, have []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}
