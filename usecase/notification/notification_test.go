package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/backend/domain"
)

type memNotificationRepo struct {
	notifications map[string]*domain.Notification
}

func (m *memNotificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, domain.ErrNotificationNotFound
}

func (m *memNotificationRepo) List(_ context.Context, _, _ int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.notifications {
		out = append(out, *n)
	}
	return out, nil
}

func (m *memNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	m.notifications[n.ID] = n
	return n, nil
}

func (m *memNotificationRepo) Update(_ context.Context, n *domain.Notification) error {
	if _, ok := m.notifications[n.ID]; !ok {
		return domain.ErrNotificationNotFound
	}
	copied := *n
	m.notifications[n.ID] = &copied
	return nil
}

func (m *memNotificationRepo) DeleteRead(_ context.Context, olderThan time.Time) (int64, error) {
	var purged int64
	for id, n := range m.notifications {
		if n.Status == domain.NotificationRead && n.CreatedAt.Before(olderThan) {
			delete(m.notifications, id)
			purged++
		}
	}
	return purged, nil
}

func TestMarkRead(t *testing.T) {
	repo := &memNotificationRepo{notifications: map[string]*domain.Notification{
		"n-1": {ID: "n-1", Title: "New Order", Status: domain.NotificationUnread},
	}}
	uc := New(repo, nil)
	ctx := context.Background()

	n, err := uc.MarkRead(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationRead, n.Status)

	// Marking it again is a no-op, not an error.
	n, err = uc.MarkRead(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationRead, n.Status)

	_, err = uc.MarkRead(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
