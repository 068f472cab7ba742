package course

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type memCourseRepo struct {
	courses map[string]*domain.Course
}

func (m *memCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	if c, ok := m.courses[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (m *memCourseRepo) List(_ context.Context, _ repository.CourseFilter) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range m.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCourseRepo) Create(_ context.Context, course *domain.Course) (*domain.Course, error) {
	if course.ID == "" {
		course.ID = "course-new"
	}
	m.courses[course.ID] = course
	return course, nil
}

func (m *memCourseRepo) Update(_ context.Context, course *domain.Course) error {
	if _, ok := m.courses[course.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	m.courses[course.ID] = course
	return nil
}

func (m *memCourseRepo) IncrementPurchased(_ context.Context, id string) error {
	if c, ok := m.courses[id]; ok {
		c.Purchased++
		return nil
	}
	return domain.ErrCourseNotFound
}

func (m *memCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(m.courses, id)
	return nil
}

var testContent = json.RawMessage(`[{"title":"Section 1","videoUrl":"https://cdn.example/1.mp4"}]`)

func newCourseUseCase() (*UseCase, *memCourseRepo) {
	repo := &memCourseRepo{courses: map[string]*domain.Course{
		"course-1": {ID: "course-1", Name: "Go Basics", Price: 4900, Content: testContent},
	}}
	return New(repo, nil), repo
}

func TestGetStripsContent(t *testing.T) {
	uc, _ := newCourseUseCase()

	course, err := uc.Get(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", course.Name)
	assert.Nil(t, course.Content)
}

func TestListStripsContent(t *testing.T) {
	uc, _ := newCourseUseCase()

	courses, err := uc.List(context.Background(), repository.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Nil(t, courses[0].Content)
}

func TestListAdminKeepsContent(t *testing.T) {
	uc, _ := newCourseUseCase()

	courses, err := uc.ListAdmin(context.Background(), repository.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.JSONEq(t, string(testContent), string(courses[0].Content))
}

func TestContentForRequiresPurchase(t *testing.T) {
	uc, _ := newCourseUseCase()
	ctx := context.Background()

	_, err := uc.ContentFor(ctx, nil, "course-1")
	assert.ErrorIs(t, err, domain.ErrNoSession)

	stranger := &domain.User{ID: "user-1", Role: domain.RoleUser}
	_, err = uc.ContentFor(ctx, stranger, "course-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	buyer := &domain.User{ID: "user-2", Role: domain.RoleUser, CourseIDs: []string{"course-1"}}
	course, err := uc.ContentFor(ctx, buyer, "course-1")
	require.NoError(t, err)
	assert.NotNil(t, course.Content)

	admin := &domain.User{ID: "user-3", Role: domain.RoleAdmin}
	course, err = uc.ContentFor(ctx, admin, "course-1")
	require.NoError(t, err)
	assert.NotNil(t, course.Content)
}

func TestCreateValidation(t *testing.T) {
	uc, _ := newCourseUseCase()

	_, err := uc.Create(context.Background(), &domain.Course{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	created, err := uc.Create(context.Background(), &domain.Course{Name: "Advanced Go"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
