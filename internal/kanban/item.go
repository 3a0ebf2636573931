package kanban

import (
	"fmt"
	"strings"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// Kind names the record type shown on a board.
type Kind string

const (
	KindVacancy   Kind = "vacancy"
	KindCandidate Kind = "candidate"
)

// ParseKind accepts singular or plural forms in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vacancy", "vacancies":
		return KindVacancy, nil
	case "candidate", "candidates":
		return KindCandidate, nil
	}
	return "", fmt.Errorf("%w: %q", shared.ErrInvalidKind, s)
}

// Label returns the capitalised singular, e.g. "Candidate".
func (k Kind) Label() string {
	switch k {
	case KindVacancy:
		return "Vacancy"
	case KindCandidate:
		return "Candidate"
	}
	return string(k)
}

// Plural returns the lowercase plural, e.g. "candidates".
func (k Kind) Plural() string {
	switch k {
	case KindVacancy:
		return "vacancies"
	case KindCandidate:
		return "candidates"
	}
	return string(k) + "s"
}

// EntityType maps the kind onto the audit/notification entity type.
func (k Kind) EntityType() models.EntityType {
	return models.EntityType(k)
}

// DefaultStage is the stage assigned to records that have none.
func (k Kind) DefaultStage() string {
	if k == KindVacancy {
		return "Initial Review"
	}
	return "Screening"
}

// Details carries the fields that only exist for one kind of item.
type Details interface {
	Kind() Kind
}

// VacancyDetails is the vacancy variant of [Details].
type VacancyDetails struct {
	CompanyID string        `json:"company_id"`
	Status    models.Status `json:"status"`
}

func (VacancyDetails) Kind() Kind { return KindVacancy }

// CandidateDetails is the candidate variant of [Details].
type CandidateDetails struct {
	VacancyID string            `json:"vacancy_id,omitempty"`
	Company   string            `json:"company,omitempty"`
	Region    string            `json:"region,omitempty"`
	Languages []models.Language `json:"languages,omitempty"`
	Status    models.Status     `json:"status"`
}

func (CandidateDetails) Kind() Kind { return KindCandidate }

// Item is a vacancy or candidate as displayed on a board.
type Item struct {
	ID       string         `json:"id" yaml:"id"`
	Kind     Kind           `json:"kind" yaml:"kind"`
	Title    string         `json:"title" yaml:"title"`
	Subtitle string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Stage    string         `json:"stage" yaml:"stage"`
	Tags     []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Salary   *models.Salary `json:"salary,omitempty" yaml:"salary,omitempty"`
	Details  Details        `json:"details,omitempty" yaml:"-"`
}

// Key identifies the item across kinds.
func (i Item) Key() string {
	return string(i.Kind) + ":" + i.ID
}

// WithStage returns a copy of the item placed in stage.
func (i Item) WithStage(stage string) Item {
	i.Stage = stage
	return i
}

// Vacancy returns the vacancy variant, if this item is a vacancy.
func (i Item) Vacancy() (VacancyDetails, bool) {
	d, ok := i.Details.(VacancyDetails)
	return d, ok
}

// Candidate returns the candidate variant, if this item is a candidate.
func (i Item) Candidate() (CandidateDetails, bool) {
	d, ok := i.Details.(CandidateDetails)
	return d, ok
}

// FromVacancy adapts a vacancy record into a board item.
func FromVacancy(v *models.Vacancy) Item {
	stage := v.Stage
	if stage == "" {
		stage = KindVacancy.DefaultStage()
	}

	item := Item{
		ID:       v.ID,
		Kind:     KindVacancy,
		Title:    v.Title,
		Subtitle: v.CompanyName,
		Stage:    stage,
		Tags:     append([]string(nil), v.Skills...),
		Details:  VacancyDetails{CompanyID: v.CompanyID, Status: v.Status},
	}
	if v.Salary != nil {
		s := *v.Salary
		item.Salary = &s
	}
	return item
}

// FromCandidate adapts a candidate record into a board item.
func FromCandidate(c *models.Candidate) Item {
	stage := c.Stage
	if stage == "" {
		stage = KindCandidate.DefaultStage()
	}

	return Item{
		ID:       c.ID,
		Kind:     KindCandidate,
		Title:    c.FullName(),
		Subtitle: c.Position,
		Stage:    stage,
		Tags:     append([]string(nil), c.Skills...),
		Details: CandidateDetails{
			VacancyID: c.VacancyID,
			Company:   c.CompanyName,
			Region:    c.Region,
			Languages: append([]models.Language(nil), c.Languages...),
			Status:    c.Status,
		},
	}
}

// FromVacancies adapts a slice of vacancies, preserving order.
func FromVacancies(vs []*models.Vacancy) []Item {
	items := make([]Item, 0, len(vs))
	for _, v := range vs {
		items = append(items, FromVacancy(v))
	}
	return items
}

// FromCandidates adapts a slice of candidates, preserving order.
func FromCandidates(cs []*models.Candidate) []Item {
	items := make([]Item, 0, len(cs))
	for _, c := range cs {
		items = append(items, FromCandidate(c))
	}
	return items
}
