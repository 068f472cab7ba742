package course

import (
	"context"

	"go.uber.org/zap"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type UseCase struct {
	courses repository.CourseRepository
	logger  *zap.Logger
}

func New(courses repository.CourseRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		courses: courses,
		logger:  logger,
	}
}

func (uc *UseCase) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if course == nil || course.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	created, err := uc.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("course created", zap.String("course_id", created.ID))
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if course == nil || course.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get returns the catalog view of a single course, content stripped.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Course, error) {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return course.Public(), nil
}

// List returns the public catalog, content stripped from every entry.
func (uc *UseCase) List(ctx context.Context, filter repository.CourseFilter) ([]domain.Course, error) {
	courses, err := uc.courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Content = nil
	}
	return courses, nil
}

// ListAdmin returns courses with content included.
func (uc *UseCase) ListAdmin(ctx context.Context, filter repository.CourseFilter) ([]domain.Course, error) {
	return uc.courses.List(ctx, filter)
}

// ContentFor returns the full course only when the requesting user has
// purchased it (admins always pass).
func (uc *UseCase) ContentFor(ctx context.Context, user *domain.User, courseID string) (*domain.Course, error) {
	if user == nil {
		return nil, domain.ErrNoSession
	}
	if user.Role != domain.RoleAdmin && !user.HasCourse(courseID) {
		return nil, domain.ErrForbidden
	}
	return uc.courses.GetByID(ctx, courseID)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.courses.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}
