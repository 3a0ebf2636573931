package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

var _ models.Repository[*models.Candidate] = (*CandidateRepository)(nil)

const candidateColumns = `
	id, sequence, first_name, last_name, position, company_name, skills, languages,
	region, education, status, stage, vacancy_id, created_at, updated_at, deleted_at
`

// CandidateRepository implements [models.Repository] for [models.Candidate] persistence.
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new [CandidateRepository] with the given database connection
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate, assigning its ID and sequence
func (r *CandidateRepository) Create(candidate *models.Candidate) error {
	if candidate.Status == "" {
		candidate.Status = models.StatusActive
	}
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	skills, languages, err := encodeCandidateLists(candidate)
	if err != nil {
		return err
	}

	id, sequence, err := nextID(r.db, "candidates")
	if err != nil {
		return err
	}

	now := time.Now()
	query := `
		INSERT INTO candidates (id, sequence, first_name, last_name, position, company_name, skills, languages,
			region, education, status, stage, vacancy_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, candidate.FirstName, candidate.LastName, candidate.Position,
		candidate.CompanyName, skills, languages, candidate.Region, candidate.Education,
		string(candidate.Status), candidate.Stage, candidate.VacancyID, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}

	candidate.ID = id
	candidate.Sequence = sequence
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	return nil
}

// Get retrieves a candidate by ID, excluding soft-deleted candidates
func (r *CandidateRepository) Get(id string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = ? AND deleted_at IS NULL`

	candidate, err := scanCandidate(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: candidate %s", shared.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	return candidate, nil
}

// Update modifies every editable column of an existing candidate
func (r *CandidateRepository) Update(candidate *models.Candidate) error {
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	skills, languages, err := encodeCandidateLists(candidate)
	if err != nil {
		return err
	}

	now := time.Now()
	query := `
		UPDATE candidates
		SET first_name = ?, last_name = ?, position = ?, company_name = ?, skills = ?, languages = ?,
			region = ?, education = ?, status = ?, stage = ?, vacancy_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query, candidate.FirstName, candidate.LastName, candidate.Position,
		candidate.CompanyName, skills, languages, candidate.Region, candidate.Education,
		string(candidate.Status), candidate.Stage, candidate.VacancyID, now, candidate.ID)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if err := checkAffected(result, fmt.Errorf("%w: candidate %s", shared.ErrItemNotFound, candidate.ID)); err != nil {
		return err
	}

	candidate.UpdatedAt = now
	return nil
}

// UpdateStage sets only the stage of a candidate and returns the updated record
func (r *CandidateRepository) UpdateStage(id, stage string) (*models.Candidate, error) {
	query := `UPDATE candidates SET stage = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, stage, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update candidate stage: %w", err)
	}
	if err := checkAffected(result, fmt.Errorf("%w: candidate %s", shared.ErrItemNotFound, id)); err != nil {
		return nil, err
	}
	return r.Get(id)
}

// Delete soft-deletes a candidate by ID
func (r *CandidateRepository) Delete(id string) error {
	query := `UPDATE candidates SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: candidate %s", shared.ErrItemNotFound, id))
}

// List retrieves candidates ordered by sequence.
//
// Supported criteria: "vacancy_id", "status", "stage", "skill" and "search"
// (name, position or company substring).
func (r *CandidateRepository) List(criteria map[string]any) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE deleted_at IS NULL`
	args := []any{}

	if vacancyID, ok := criteria["vacancy_id"].(string); ok && vacancyID != "" {
		query += " AND vacancy_id = ?"
		args = append(args, vacancyID)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if stage, ok := criteria["stage"].(string); ok && stage != "" {
		query += " AND stage = ?"
		args = append(args, stage)
	}

	if skill, ok := criteria["skill"].(string); ok && skill != "" {
		query += " AND LOWER(skills) LIKE ?"
		args = append(args, likePattern(`"`+skill+`"`))
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND (LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(position) LIKE ? OR LOWER(company_name) LIKE ?)"
		args = append(args, likePattern(search), likePattern(search), likePattern(search))
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return candidates, nil
}

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var (
		c         models.Candidate
		skills    string
		languages string
		status    string
		deletedAt sql.NullTime
	)

	err := row.Scan(&c.ID, &c.Sequence, &c.FirstName, &c.LastName, &c.Position, &c.CompanyName,
		&skills, &languages, &c.Region, &c.Education, &status, &c.Stage, &c.VacancyID,
		&c.CreatedAt, &c.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	if c.Skills, err = decodeStrings(skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}

	c.Languages = []models.Language{}
	if languages != "" {
		if err := json.Unmarshal([]byte(languages), &c.Languages); err != nil {
			return nil, fmt.Errorf("failed to decode languages: %w", err)
		}
	}

	c.Status = models.Status(status)
	c.DeletedAt = nullableTime(deletedAt)
	return &c, nil
}

func encodeCandidateLists(c *models.Candidate) (string, string, error) {
	skills, err := encodeJSON(nonNilStrings(c.Skills))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode skills: %w", err)
	}

	langs := c.Languages
	if langs == nil {
		langs = []models.Language{}
	}
	languages, err := encodeJSON(langs)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode languages: %w", err)
	}
	return skills, languages, nil
}
