package repository

import (
	"context"

	"github.com/learnity/backend/domain"
)

type LayoutRepository interface {
	GetByType(ctx context.Context, layoutType string) (*domain.Layout, error)
	Create(ctx context.Context, layout *domain.Layout) (*domain.Layout, error)
	Update(ctx context.Context, layout *domain.Layout) error
}
