package repository

import (
	"context"

	"github.com/learnity/backend/domain"
)

type OrderFilter struct {
	UserID string
	Limit  int
	Offset int
}

type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
