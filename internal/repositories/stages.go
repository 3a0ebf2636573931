package repositories

import (
	"database/sql"
	"fmt"
)

// StageRepository reads the ordered pipeline stages for each item kind.
type StageRepository struct {
	db *sql.DB
}

// NewStageRepository creates a new [StageRepository] with the given database connection
func NewStageRepository(db *sql.DB) *StageRepository {
	return &StageRepository{db: db}
}

// List returns the stage names for kind in pipeline order.
func (r *StageRepository) List(kind string) ([]string, error) {
	rows, err := r.db.Query(`SELECT name FROM stages WHERE kind = ? ORDER BY position ASC`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query stages: %w", err)
	}
	defer rows.Close()

	stages := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stages, nil
}

// Exists reports whether name is a stage of kind.
func (r *StageRepository) Exists(kind, name string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM stages WHERE kind = ? AND name = ?`, kind, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query stage: %w", err)
	}
	return count > 0, nil
}
