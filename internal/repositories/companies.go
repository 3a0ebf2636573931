package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

var _ models.Repository[*models.Company] = (*CompanyRepository)(nil)

const companyColumns = `
	c.id, c.sequence, c.name, COALESCE(c.legal_name, ''), COALESCE(c.description, ''),
	COALESCE(c.industry, ''), c.created_by, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM vacancies v WHERE v.company_id = c.id AND v.deleted_at IS NULL),
	(SELECT COUNT(*) FROM vacancies v WHERE v.company_id = c.id AND v.deleted_at IS NULL AND v.status = 'active')
`

// CompanyRepository implements [models.Repository] for [models.Company] persistence.
type CompanyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new [CompanyRepository] with the given database connection
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company, assigning its ID and sequence
func (r *CompanyRepository) Create(company *models.Company) error {
	if err := company.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, sequence, err := nextID(r.db, "companies")
	if err != nil {
		return err
	}

	now := time.Now()
	query := `
		INSERT INTO companies (id, sequence, name, legal_name, description, industry, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, company.Name, company.LegalName, company.Description,
		company.Industry, company.CreatedBy, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}

	company.ID = id
	company.Sequence = sequence
	company.CreatedAt = now
	company.UpdatedAt = now
	return nil
}

// Get retrieves a company by ID, excluding soft-deleted companies
func (r *CompanyRepository) Get(id string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.id = ? AND c.deleted_at IS NULL`

	company, err := scanCompany(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrCompanyNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	return company, nil
}

// Update modifies an existing company
func (r *CompanyRepository) Update(company *models.Company) error {
	if err := company.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	query := `
		UPDATE companies
		SET name = ?, legal_name = ?, description = ?, industry = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query, company.Name, company.LegalName, company.Description, company.Industry, now, company.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if err := checkAffected(result, fmt.Errorf("%w: %s", shared.ErrCompanyNotFound, company.ID)); err != nil {
		return err
	}

	company.UpdatedAt = now
	return nil
}

// Delete soft-deletes a company by ID
func (r *CompanyRepository) Delete(id string) error {
	query := `UPDATE companies SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: %s", shared.ErrCompanyNotFound, id))
}

// List retrieves companies ordered by sequence.
//
// Supported criteria: "search" (name or legal name substring) and "industry".
func (r *CompanyRepository) List(criteria map[string]any) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.deleted_at IS NULL`
	args := []any{}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND (LOWER(c.name) LIKE ? OR LOWER(COALESCE(c.legal_name, '')) LIKE ?)"
		args = append(args, likePattern(search), likePattern(search))
	}

	if industry, ok := criteria["industry"].(string); ok && industry != "" {
		query += " AND c.industry = ?"
		args = append(args, industry)
	}

	query += " ORDER BY c.sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return companies, nil
}

func scanCompany(row rowScanner) (*models.Company, error) {
	var c models.Company
	err := row.Scan(&c.ID, &c.Sequence, &c.Name, &c.LegalName, &c.Description, &c.Industry,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.TotalVacancies, &c.ActiveVacancies)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
