// package models defines the data model for the recruiting CRM
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	Key() string     // Key returns the unique identifier for this model
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Page is one slice of a filtered, paginated listing.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Paginate returns the 1-based page of items holding at most limit entries.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := min(start+limit, len(items))

	return Page[T]{Data: items[start:end], Total: len(items), Page: page, Limit: limit}
}

// Status is the lifecycle state of a vacancy or candidate.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// EntityType names the record an audit entry or notification refers to.
type EntityType string

const (
	EntityCompany   EntityType = "company"
	EntityVacancy   EntityType = "vacancy"
	EntityCandidate EntityType = "candidate"
)

// Salary is an amount in a currency.
type Salary struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// String renders the amount with thousands separators, e.g. "8 000 000 сум".
func (s Salary) String() string {
	digits := fmt.Sprintf("%d", s.Amount)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	if s.Currency != "" {
		out += " " + s.Currency
	}
	return out
}

// Company is an employer that owns vacancies.
type Company struct {
	ID              string    `json:"id" yaml:"id"`
	Sequence        int       `json:"-" yaml:"-"`
	Name            string    `json:"name" yaml:"name"`
	LegalName       string    `json:"legal_name,omitempty" yaml:"legal_name,omitempty"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Industry        string    `json:"industry,omitempty" yaml:"industry,omitempty"`
	CreatedBy       string    `json:"created_by" yaml:"created_by"`
	TotalVacancies  int       `json:"total_vacancies" yaml:"-"`
	ActiveVacancies int       `json:"active_vacancies" yaml:"-"`
	CreatedAt       time.Time `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"-"`
}

func (c *Company) Key() string { return c.ID }

func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("company name is required")
	}
	return nil
}

// Vacancy is an open position moving through the vacancy pipeline.
type Vacancy struct {
	ID          string     `json:"id" yaml:"id"`
	Sequence    int        `json:"-" yaml:"-"`
	Title       string     `json:"title" yaml:"title"`
	CompanyID   string     `json:"company_id" yaml:"company_id"`
	CompanyName string     `json:"company_name" yaml:"company_name"`
	Salary      *Salary    `json:"salary,omitempty" yaml:"salary,omitempty"`
	Skills      []string   `json:"skills" yaml:"skills"`
	Status      Status     `json:"status" yaml:"status"`
	Stage       string     `json:"stage,omitempty" yaml:"stage,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" yaml:"-"`
}

func (v *Vacancy) Key() string { return v.ID }

func (v *Vacancy) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("vacancy title is required")
	}
	if v.CompanyID == "" {
		return fmt.Errorf("vacancy company is required")
	}
	if !v.Status.Valid() {
		return fmt.Errorf("invalid vacancy status %q", v.Status)
	}
	return nil
}

// Language is a spoken language with a CEFR-style level.
type Language struct {
	Language string `json:"language" yaml:"language"`
	Level    string `json:"level" yaml:"level"`
}

func (l Language) String() string {
	if l.Level == "" {
		return l.Language
	}
	return l.Language + " - " + l.Level
}

// Candidate is a person moving through the candidate pipeline.
type Candidate struct {
	ID          string     `json:"id" yaml:"id"`
	Sequence    int        `json:"-" yaml:"-"`
	FirstName   string     `json:"first_name" yaml:"first_name"`
	LastName    string     `json:"last_name" yaml:"last_name"`
	Position    string     `json:"position,omitempty" yaml:"position,omitempty"`
	CompanyName string     `json:"company_name,omitempty" yaml:"company_name,omitempty"`
	Skills      []string   `json:"skills" yaml:"skills"`
	Languages   []Language `json:"languages" yaml:"languages"`
	Region      string     `json:"region,omitempty" yaml:"region,omitempty"`
	Education   string     `json:"education,omitempty" yaml:"education,omitempty"`
	Status      Status     `json:"status" yaml:"status"`
	Stage       string     `json:"stage,omitempty" yaml:"stage,omitempty"`
	VacancyID   string     `json:"vacancy_id,omitempty" yaml:"vacancy_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" yaml:"-"`
}

func (c *Candidate) Key() string { return c.ID }

// FullName joins first and last name.
func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("candidate first and last name are required")
	}
	if !c.Status.Valid() {
		return fmt.Errorf("invalid candidate status %q", c.Status)
	}
	return nil
}

// Audit actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionMoved   = "moved"
)

// AuditEntry is one line of the audit trail.
type AuditEntry struct {
	ID         string         `json:"id"`
	Sequence   int            `json:"-"`
	UserID     string         `json:"user_id"`
	UserName   string         `json:"user_name"`
	Action     string         `json:"action"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	EntityName string         `json:"entity_name"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

func (a *AuditEntry) Key() string { return a.ID }

func (a *AuditEntry) Validate() error {
	if a.Action == "" {
		return fmt.Errorf("audit action is required")
	}
	if a.EntityType == "" || a.EntityID == "" {
		return fmt.Errorf("audit entity is required")
	}
	return nil
}

// StageChange returns the from/to stages recorded on a "moved" entry.
func (a *AuditEntry) StageChange() (from, to string, ok bool) {
	if a.Action != ActionMoved || a.Details == nil {
		return "", "", false
	}
	from, _ = a.Details["fromStage"].(string)
	to, ok = a.Details["toStage"].(string)
	return from, to, ok
}

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a persisted user-facing message.
type Notification struct {
	ID         string           `json:"id"`
	Sequence   int              `json:"-"`
	UserID     string           `json:"user_id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	IsRead     bool             `json:"is_read"`
	EntityType EntityType       `json:"entity_type,omitempty"`
	EntityID   string           `json:"entity_id,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

func (n *Notification) Key() string { return n.ID }

func (n *Notification) Validate() error {
	if n.UserID == "" {
		return fmt.Errorf("notification user is required")
	}
	if n.Title == "" && n.Message == "" {
		return fmt.Errorf("notification needs a title or message")
	}
	return nil
}
