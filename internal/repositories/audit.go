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

const auditColumns = `
	id, sequence, user_id, user_name, action, entity_type, entity_id, entity_name, details, created_at
`

// AuditRepository persists the append-only audit trail.
//
// Entries are never updated or deleted once written.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new [AuditRepository] with the given database connection
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an entry, stamping its ID, sequence and timestamp when unset
func (r *AuditRepository) Create(entry *models.AuditEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var details sql.NullString
	if len(entry.Details) > 0 {
		raw, err := encodeJSON(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to encode details: %w", err)
		}
		details = sql.NullString{String: raw, Valid: true}
	}

	id, sequence, err := nextID(r.db, "audit_log")
	if err != nil {
		return err
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	query := `
		INSERT INTO audit_log (id, sequence, user_id, user_name, action, entity_type, entity_id, entity_name, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, entry.UserID, entry.UserName, entry.Action,
		string(entry.EntityType), entry.EntityID, entry.EntityName, details, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	entry.ID = id
	entry.Sequence = sequence
	return nil
}

// Get retrieves a single audit entry by ID
func (r *AuditRepository) Get(id string) (*models.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE id = ?`

	entry, err := scanAudit(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrAuditNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entry: %w", err)
	}
	return entry, nil
}

// List retrieves audit entries newest first.
//
// Supported criteria: "entity_type", "entity_id", "action", "user_id", "search"
// (entity name substring), "since" and "until" ([time.Time] bounds, inclusive).
func (r *AuditRepository) List(criteria map[string]any) ([]*models.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE 1 = 1`
	args := []any{}

	for _, col := range []string{"entity_type", "entity_id", "action", "user_id"} {
		if v, ok := criteria[col].(string); ok && v != "" {
			query += " AND " + col + " = ?"
			args = append(args, v)
		}
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND LOWER(entity_name) LIKE ?"
		args = append(args, likePattern(search))
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	since, hasSince := criteria["since"].(time.Time)
	until, hasUntil := criteria["until"].(time.Time)

	var entries []*models.AuditEntry
	for rows.Next() {
		entry, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if hasSince && entry.Timestamp.Before(since) {
			continue
		}
		if hasUntil && entry.Timestamp.After(until) {
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

func scanAudit(row rowScanner) (*models.AuditEntry, error) {
	var (
		a          models.AuditEntry
		entityType string
		details    sql.NullString
	)

	err := row.Scan(&a.ID, &a.Sequence, &a.UserID, &a.UserName, &a.Action, &entityType,
		&a.EntityID, &a.EntityName, &details, &a.Timestamp)
	if err != nil {
		return nil, err
	}

	a.EntityType = models.EntityType(entityType)
	if details.Valid && details.String != "" {
		if err := json.Unmarshal([]byte(details.String), &a.Details); err != nil {
			return nil, fmt.Errorf("failed to decode details: %w", err)
		}
	}
	return &a, nil
}
