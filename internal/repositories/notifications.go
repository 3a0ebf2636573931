package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
)

var _ models.Repository[*models.Notification] = (*NotificationRepository)(nil)

const notificationColumns = `
	id, sequence, user_id, title, message, type, is_read,
	COALESCE(entity_type, ''), COALESCE(entity_id, ''), created_at
`

// NotificationRepository implements [models.Repository] for [models.Notification] persistence.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new [NotificationRepository] with the given database connection
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification, defaulting its type to info
func (r *NotificationRepository) Create(n *models.Notification) error {
	if n.Type == "" {
		n.Type = models.NotifyInfo
	}
	if err := n.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, sequence, err := nextID(r.db, "notifications")
	if err != nil {
		return err
	}

	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	query := `
		INSERT INTO notifications (id, sequence, user_id, title, message, type, is_read, entity_type, entity_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, n.UserID, n.Title, n.Message, string(n.Type), n.IsRead,
		nullableString(string(n.EntityType)), nullableString(n.EntityID), n.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	n.ID = id
	n.Sequence = sequence
	return nil
}

// Get retrieves a notification by ID
func (r *NotificationRepository) Get(id string) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = ?`

	n, err := scanNotification(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotificationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification: %w", err)
	}
	return n, nil
}

// Update rewrites the text, type and read flag of a notification
func (r *NotificationRepository) Update(n *models.Notification) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `UPDATE notifications SET title = ?, message = ?, type = ?, is_read = ? WHERE id = ?`
	result, err := r.db.Exec(query, n.Title, n.Message, string(n.Type), n.IsRead, n.ID)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: %s", shared.ErrNotificationNotFound, n.ID))
}

// MarkRead flags a single notification as read
func (r *NotificationRepository) MarkRead(id string) error {
	result, err := r.db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: %s", shared.ErrNotificationNotFound, id))
}

// MarkAllRead flags every unread notification of userID as read and returns how many changed
func (r *NotificationRepository) MarkAllRead(userID string) (int64, error) {
	result, err := r.db.Exec(`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.RowsAffected()
}

// Delete removes a notification permanently
func (r *NotificationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return checkAffected(result, fmt.Errorf("%w: %s", shared.ErrNotificationNotFound, id))
}

// List retrieves notifications newest first.
//
// Supported criteria: "user_id", "type" and "unread" (bool).
func (r *NotificationRepository) List(criteria map[string]any) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE 1 = 1`
	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	if kind, ok := criteria["type"].(string); ok && kind != "" {
		query += " AND type = ?"
		args = append(args, kind)
	}

	if unread, ok := criteria["unread"].(bool); ok && unread {
		query += " AND is_read = 0"
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notifications, nil
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	var (
		n          models.Notification
		kind       string
		entityType string
	)

	err := row.Scan(&n.ID, &n.Sequence, &n.UserID, &n.Title, &n.Message, &kind, &n.IsRead,
		&entityType, &n.EntityID, &n.Timestamp)
	if err != nil {
		return nil, err
	}

	n.Type = models.NotificationType(kind)
	n.EntityType = models.EntityType(entityType)
	return &n, nil
}
