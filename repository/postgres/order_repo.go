package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation of OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) repository.OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	const query = `
	SELECT id, user_id, course_id, payment_info, created_at
	FROM orders
	WHERE ($1 = '' OR user_id = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, translate(err, domain.ErrOrderNotFound, nil)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var payment []byte
		if err := rows.Scan(&order.ID, &order.UserID, &order.CourseID, &payment, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.PaymentInfo = payment
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrInvalidPayload
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO orders (id, user_id, course_id, payment_info)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		order.ID,
		order.UserID,
		order.CourseID,
		[]byte(order.PaymentInfo),
	).Scan(&order.CreatedAt); err != nil {
		return nil, translate(err, domain.ErrOrderNotFound, nil)
	}
	return order, nil
}
