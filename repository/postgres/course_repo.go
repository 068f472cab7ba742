package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository returns a Postgres-backed implementation of CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) repository.CourseRepository {
	return &courseRepository{pool: pool}
}

const courseColumns = `id, name, description, category, price, thumbnail_url, content, purchased, created_at, updated_at`

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE id = $1
	`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

func (r *courseRepository) List(ctx context.Context, filter repository.CourseFilter) ([]domain.Course, error) {
	const query = `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE ($1 = '' OR category = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.Category, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, translate(err, domain.ErrCourseNotFound, nil)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if course == nil {
		return nil, domain.ErrInvalidPayload
	}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO courses (id, name, description, category, price, thumbnail_url, content)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING purchased, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		course.ID,
		course.Name,
		course.Description,
		course.Category,
		course.Price,
		course.ThumbnailURL,
		[]byte(course.Content),
	).Scan(&course.Purchased, &course.CreatedAt, &course.UpdatedAt); err != nil {
		return nil, translate(err, domain.ErrCourseNotFound, nil)
	}
	return course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	if course == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE courses
	SET name = $2,
		description = $3,
		category = $4,
		price = $5,
		thumbnail_url = $6,
		content = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		course.ID,
		course.Name,
		course.Description,
		course.Category,
		course.Price,
		course.ThumbnailURL,
		[]byte(course.Content),
	).Scan(&course.UpdatedAt); err != nil {
		return translate(err, domain.ErrCourseNotFound, nil)
	}
	return nil
}

func (r *courseRepository) IncrementPurchased(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE courses SET purchased = purchased + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return translate(err, domain.ErrCourseNotFound, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return translate(err, domain.ErrCourseNotFound, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	var content []byte
	if err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Category,
		&course.Price,
		&course.ThumbnailURL,
		&content,
		&course.Purchased,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, translate(err, domain.ErrCourseNotFound, nil)
	}
	course.Content = content
	return &course, nil
}
