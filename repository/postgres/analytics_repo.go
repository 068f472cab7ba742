package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnity/backend/repository"
)

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository returns a Postgres-backed implementation of AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) repository.AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

// analyticsTables whitelists the entities that expose a created_at
// series; the entity name is interpolated into SQL and must never come
// from user input without passing through this map.
var analyticsTables = map[string]string{
	repository.AnalyticsUsers:   "users",
	repository.AnalyticsCourses: "courses",
	repository.AnalyticsOrders:  "orders",
}

func (r *analyticsRepository) LastTwelveMonths(ctx context.Context, entity string) ([]repository.MonthCount, error) {
	table, ok := analyticsTables[entity]
	if !ok {
		return nil, fmt.Errorf("analytics: unknown entity %q", entity)
	}

	query := fmt.Sprintf(`
	SELECT date_trunc('month', created_at) AS bucket, COUNT(*)
	FROM %s
	WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '11 months'
	GROUP BY bucket
	ORDER BY bucket
	`, table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var bucket time.Time
		var count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, err
		}
		counts[bucket.Format("January 2006")] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Emit all 12 buckets, zero-filled, oldest first.
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	out := make([]repository.MonthCount, 0, 12)
	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0).Format("January 2006")
		out = append(out, repository.MonthCount{Month: month, Count: counts[month]})
	}
	return out, nil
}
