package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// NotificationRepositoryInterface defines the interface for in-app
// notification persistence.
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// NotificationRepository handles notification persistence
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, type, title, message, related_session, read, created_at`

// Create inserts a notification row
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (err error) {
	done := timer("notifications.insert")
	defer func() { done(err) }()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, related_session)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = r.pool.QueryRow(ctx, query,
		notification.ID, notification.UserID, notification.Type,
		notification.Title, notification.Message, notification.RelatedSession,
	).Scan(&notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first, capped at limit
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) (notifications []*models.Notification, err error) {
	done := timer("notifications.list")
	defer func() { done(err) }()

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications = []*models.Notification{}
	for rows.Next() {
		n := &models.Notification{}
		if err = rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedSession, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read. The user filter means a foreign
// notification id behaves exactly like a missing one.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (notification *models.Notification, err error) {
	done := timer("notifications.mark_read")
	defer func() { done(err) }()

	query := `
		UPDATE notifications SET read = true
		WHERE id = $1 AND user_id = $2
		RETURNING ` + notificationColumns

	notification = &models.Notification{}
	err = r.pool.QueryRow(ctx, query, id, userID).Scan(
		&notification.ID, &notification.UserID, &notification.Type,
		&notification.Title, &notification.Message,
		&notification.RelatedSession, &notification.Read, &notification.CreatedAt,
	)
	if err != nil {
		return nil, notFoundIfNoRows(err, "notification")
	}
	return notification, nil
}

// MarkAllRead flags every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (updated int64, err error) {
	done := timer("notifications.mark_all_read")
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (count int, err error) {
	done := timer("notifications.count_unread")
	defer func() { done(err) }()

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
