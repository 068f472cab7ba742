package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation of NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) repository.NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, title, message, status, created_at, updated_at`

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	const query = `
	SELECT ` + notificationColumns + `
	FROM notifications
	WHERE id = $1
	`
	return scanNotification(r.pool.QueryRow(ctx, query, id))
}

func (r *notificationRepository) List(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	const query = `
	SELECT ` + notificationColumns + `
	FROM notifications
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, clampLimit(limit), offset)
	if err != nil {
		return nil, translate(err, domain.ErrNotificationNotFound, nil)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if notification == nil {
		return nil, domain.ErrInvalidPayload
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Status == "" {
		notification.Status = domain.NotificationUnread
	}

	const query = `
	INSERT INTO notifications (id, user_id, title, message, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Status,
	).Scan(&notification.CreatedAt, &notification.UpdatedAt); err != nil {
		return nil, translate(err, domain.ErrNotificationNotFound, nil)
	}
	return notification, nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *domain.Notification) error {
	if notification == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE notifications
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query, notification.ID, notification.Status).
		Scan(&notification.UpdatedAt); err != nil {
		return translate(err, domain.ErrNotificationNotFound, nil)
	}
	return nil
}

func (r *notificationRepository) DeleteRead(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE status = $1 AND created_at < $2`,
		domain.NotificationRead, olderThan,
	)
	if err != nil {
		return 0, translate(err, nil, nil)
	}
	return tag.RowsAffected(), nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Message,
		&n.Status,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return nil, translate(err, domain.ErrNotificationNotFound, nil)
	}
	return &n, nil
}
