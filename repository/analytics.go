package repository

import "context"

// MonthCount is one bucket of the rolling 12-month analytics series.
type MonthCount struct {
	Month string `json:"month"` // formatted "January 2026"
	Count int    `json:"count"`
}

// Analytics entities with a creation-time series.
const (
	AnalyticsUsers   = "users"
	AnalyticsCourses = "courses"
	AnalyticsOrders  = "orders"
)

type AnalyticsRepository interface {
	// LastTwelveMonths returns per-month creation counts for the given
	// entity, oldest bucket first. Months with no rows appear with a
	// zero count.
	LastTwelveMonths(ctx context.Context, entity string) ([]MonthCount, error)
}
