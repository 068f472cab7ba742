package usecase

import (
	"context"

	"github.com/learnity/backend/domain"
)

// Mailer abstracts outbound email so use cases stay transport-agnostic.
// Delivery failures surface to the caller but must never undo store
// writes the caller already committed.
type Mailer interface {
	Send(ctx context.Context, to, subject, templateName string, data map[string]any) error
}

// OperationBuffer abstracts the local side-effect buffer so use cases
// stay storage-agnostic. Buffered operations are applied immediately
// when the durable store is reachable and replayed later otherwise.
type OperationBuffer interface {
	BufferNotification(ctx context.Context, notification *domain.Notification) error
	BufferCounter(ctx context.Context, courseID string) error
}
