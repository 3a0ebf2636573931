package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

var _ models.Repository[*models.Vacancy] = (*VacancyRepository)(nil)

const vacancyColumns = `
	id, sequence, title, company_id, company_name, salary_amount, salary_currency,
	skills, status, stage, created_at, updated_at, deleted_at
`

// VacancyRepository implements [models.Repository] for [models.Vacancy] persistence.
type VacancyRepository struct {
	db *sql.DB
}

// NewVacancyRepository creates a new [VacancyRepository] with the given database connection
func NewVacancyRepository(db *sql.DB) *VacancyRepository {
	return &VacancyRepository{db: db}
}

// Create inserts a new vacancy, assigning its ID and sequence
func (r *VacancyRepository) Create(vacancy *models.Vacancy) error {
	if vacancy.Status == "" {
		vacancy.Status = models.StatusActive
	}
	if err := vacancy.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	skills, err := encodeJSON(nonNilStrings(vacancy.Skills))
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	id, sequence, err := nextID(r.db, "vacancies")
	if err != nil {
		return err
	}

	amount, currency := salaryColumns(vacancy.Salary)
	now := time.Now()
	query := `
		INSERT INTO vacancies (id, sequence, title, company_id, company_name, salary_amount, salary_currency,
			skills, status, stage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, vacancy.Title, vacancy.CompanyID, vacancy.CompanyName,
		amount, currency, skills, string(vacancy.Status), vacancy.Stage, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert vacancy: %w", err)
	}

	vacancy.ID = id
	vacancy.Sequence = sequence
	vacancy.CreatedAt = now
	vacancy.UpdatedAt = now
	return nil
}

// Get retrieves a vacancy by ID, excluding soft-deleted vacancies
func (r *VacancyRepository) Get(id string) (*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE id = ? AND deleted_at IS NULL`

	vacancy, err := scanVacancy(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vacancy %s", shared.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vacancy: %w", err)
	}
	return vacancy, nil
}

// Update modifies every editable column of an existing vacancy
func (r *VacancyRepository) Update(vacancy *models.Vacancy) error {
	if err := vacancy.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	skills, err := encodeJSON(nonNilStrings(vacancy.Skills))
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	amount, currency := salaryColumns(vacancy.Salary)
	now := time.Now()
	query := `
		UPDATE vacancies
		SET title = ?, company_id = ?, company_name = ?, salary_amount = ?, salary_currency = ?,
			skills = ?, status = ?, stage = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query, vacancy.Title, vacancy.CompanyID, vacancy.CompanyName, amount, currency,
		skills, string(vacancy.Status), vacancy.Stage, now, vacancy.ID)
	if err != nil {
		return fmt.Errorf("failed to update vacancy: %w", err)
	}
	if err := checkAffected(result, fmt.Errorf("%w: vacancy %s", shared.ErrItemNotFound, vacancy.ID)); err != nil {
		return err
	}

	vacancy.UpdatedAt = now
	return nil
}

// UpdateStage sets only the stage of a vacancy and returns the updated record
func (r *VacancyRepository) UpdateStage(id, stage string) (*models.Vacancy, error) {
	query := `UPDATE vacancies SET stage = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, stage, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update vacancy stage: %w", err)
	}
	if err := checkAffected(result, fmt.Errorf("%w: vacancy %s", shared.ErrItemNotFound, id)); err != nil {
		return nil, err
	}
	return r.Get(id)
}

// Delete soft-deletes a vacancy by ID
func (r *VacancyRepository) Delete(id string) error {
	query := `UPDATE vacancies SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: vacancy %s", shared.ErrItemNotFound, id))
}

// List retrieves vacancies ordered by sequence.
//
// Supported criteria: "company_id", "status", "stage" and "search" (title substring).
func (r *VacancyRepository) List(criteria map[string]any) ([]*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE deleted_at IS NULL`
	args := []any{}

	if companyID, ok := criteria["company_id"].(string); ok && companyID != "" {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if stage, ok := criteria["stage"].(string); ok && stage != "" {
		query += " AND stage = ?"
		args = append(args, stage)
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND LOWER(title) LIKE ?"
		args = append(args, likePattern(search))
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []*models.Vacancy
	for rows.Next() {
		vacancy, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacancy: %w", err)
		}
		vacancies = append(vacancies, vacancy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return vacancies, nil
}

func scanVacancy(row rowScanner) (*models.Vacancy, error) {
	var (
		v         models.Vacancy
		amount    sql.NullInt64
		currency  sql.NullString
		skills    string
		status    string
		deletedAt sql.NullTime
	)

	err := row.Scan(&v.ID, &v.Sequence, &v.Title, &v.CompanyID, &v.CompanyName, &amount, &currency,
		&skills, &status, &v.Stage, &v.CreatedAt, &v.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	if amount.Valid {
		v.Salary = &models.Salary{Amount: amount.Int64, Currency: currency.String}
	}

	if v.Skills, err = decodeStrings(skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}

	v.Status = models.Status(status)
	v.DeletedAt = nullableTime(deletedAt)
	return &v, nil
}

func salaryColumns(s *models.Salary) (sql.NullInt64, sql.NullString) {
	if s == nil {
		return sql.NullInt64{}, sql.NullString{}
	}
	return sql.NullInt64{Int64: s.Amount, Valid: true}, nullableString(s.Currency)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
