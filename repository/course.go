package repository

import (
	"context"

	"github.com/learnity/backend/domain"
)

type CourseFilter struct {
	Category string
	Limit    int
	Offset   int
}

type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]domain.Course, error)
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	IncrementPurchased(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
