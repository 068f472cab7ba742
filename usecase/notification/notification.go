package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type UseCase struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func New(notifications repository.NotificationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		notifications: notifications,
		logger:        logger,
	}
}

func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	return uc.notifications.List(ctx, limit, offset)
}

// MarkRead flips a notification to read. Marking an already-read
// notification is a no-op, not an error.
func (uc *UseCase) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := uc.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead() {
		return n, nil
	}
	n.Status = domain.NotificationRead
	if err := uc.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
