package repository

import (
	"context"
	"time"

	"github.com/learnity/backend/domain"
)

type NotificationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context, limit, offset int) ([]domain.Notification, error)
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	Update(ctx context.Context, notification *domain.Notification) error
	// DeleteRead removes read notifications created before the cutoff
	// and returns the number of rows purged.
	DeleteRead(ctx context.Context, olderThan time.Time) (int64, error)
}
