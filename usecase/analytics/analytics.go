package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/learnity/backend/repository"
)

type UseCase struct {
	analytics repository.AnalyticsRepository
	logger    *zap.Logger
}

func New(analytics repository.AnalyticsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		analytics: analytics,
		logger:    logger,
	}
}

func (uc *UseCase) Users(ctx context.Context) ([]repository.MonthCount, error) {
	return uc.analytics.LastTwelveMonths(ctx, repository.AnalyticsUsers)
}

func (uc *UseCase) Courses(ctx context.Context) ([]repository.MonthCount, error) {
	return uc.analytics.LastTwelveMonths(ctx, repository.AnalyticsCourses)
}

func (uc *UseCase) Orders(ctx context.Context) ([]repository.MonthCount, error) {
	return uc.analytics.LastTwelveMonths(ctx, repository.AnalyticsOrders)
}
