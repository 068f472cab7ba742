package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type layoutRepository struct {
	pool *pgxpool.Pool
}

// NewLayoutRepository returns a Postgres-backed implementation of LayoutRepository.
// Layout documents are stored one-row-per-type with the section payload
// in a jsonb column; the unique index on type enforces the
// singleton-per-type rule at the store level.
func NewLayoutRepository(pool *pgxpool.Pool) repository.LayoutRepository {
	return &layoutRepository{pool: pool}
}

// layoutBody is the jsonb payload; which field is set depends on type.
type layoutBody struct {
	Banner     *domain.Banner    `json:"banner,omitempty"`
	FAQ        []domain.FAQItem  `json:"faq,omitempty"`
	Categories []domain.Category `json:"categories,omitempty"`
}

func (r *layoutRepository) GetByType(ctx context.Context, layoutType string) (*domain.Layout, error) {
	const query = `
	SELECT id, type, body, created_at, updated_at
	FROM layouts
	WHERE type = $1
	`
	return scanLayout(r.pool.QueryRow(ctx, query, layoutType))
}

func (r *layoutRepository) Create(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	if layout == nil {
		return nil, domain.ErrInvalidPayload
	}
	if layout.ID == "" {
		layout.ID = uuid.NewString()
	}

	body, err := marshalLayoutBody(layout)
	if err != nil {
		return nil, err
	}

	const query = `
	INSERT INTO layouts (id, type, body)
	VALUES ($1, $2, $3)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query, layout.ID, layout.Type, body).
		Scan(&layout.CreatedAt, &layout.UpdatedAt); err != nil {
		return nil, translate(err, domain.ErrLayoutNotFound, domain.ErrLayoutTypeExists)
	}
	return layout, nil
}

func (r *layoutRepository) Update(ctx context.Context, layout *domain.Layout) error {
	if layout == nil {
		return domain.ErrInvalidPayload
	}

	body, err := marshalLayoutBody(layout)
	if err != nil {
		return err
	}

	const query = `
	UPDATE layouts
	SET body = $2, updated_at = NOW()
	WHERE type = $1
	RETURNING id, updated_at
	`
	if err := r.pool.QueryRow(ctx, query, layout.Type, body).
		Scan(&layout.ID, &layout.UpdatedAt); err != nil {
		return translate(err, domain.ErrLayoutNotFound, nil)
	}
	return nil
}

func marshalLayoutBody(layout *domain.Layout) ([]byte, error) {
	return json.Marshal(layoutBody{
		Banner:     layout.Banner,
		FAQ:        layout.FAQ,
		Categories: layout.Categories,
	})
}

func scanLayout(row pgx.Row) (*domain.Layout, error) {
	var layout domain.Layout
	var body []byte
	if err := row.Scan(&layout.ID, &layout.Type, &body, &layout.CreatedAt, &layout.UpdatedAt); err != nil {
		return nil, translate(err, domain.ErrLayoutNotFound, nil)
	}

	var parsed layoutBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, err
		}
	}
	layout.Banner = parsed.Banner
	layout.FAQ = parsed.FAQ
	layout.Categories = parsed.Categories
	return &layout, nil
}
