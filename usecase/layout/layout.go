package layout

import (
	"context"

	"go.uber.org/zap"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type UseCase struct {
	layouts repository.LayoutRepository
	logger  *zap.Logger
}

func New(layouts repository.LayoutRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		layouts: layouts,
		logger:  logger,
	}
}

// Create stores a new layout document; each type is a singleton, a
// second create for the same type fails with a conflict.
func (uc *UseCase) Create(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	if layout == nil || !domain.ValidType(layout.Type) {
		return nil, domain.ErrInvalidPayload
	}
	created, err := uc.layouts.Create(ctx, layout)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("layout created", zap.String("type", created.Type))
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	if layout == nil || !domain.ValidType(layout.Type) {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.layouts.Update(ctx, layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func (uc *UseCase) GetByType(ctx context.Context, layoutType string) (*domain.Layout, error) {
	if !domain.ValidType(layoutType) {
		return nil, domain.ErrInvalidPayload
	}
	return uc.layouts.GetByType(ctx, layoutType)
}
