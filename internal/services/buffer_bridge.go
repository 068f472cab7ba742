package services

import (
	"context"
	"encoding/json"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/internal/infrastructure/buffer"
	"github.com/learnity/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferNotification(ctx context.Context, notification *domain.Notification) error {
	if b.processor == nil || notification == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    notification.UserID,
		Entity:    buffer.EntityNotification,
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferCounter(ctx context.Context, courseID string) error {
	if b.processor == nil || courseID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(counterPayload{CourseID: courseID})
	if err != nil {
		return err
	}
	item := buffer.Item{
		Entity:    buffer.EntityCounter,
		Operation: buffer.OperationIncrement,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
