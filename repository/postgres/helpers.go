package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/learnity/backend/domain"
)

const (
	pgUniqueViolation   = "23505"
	pgInvalidTextRepr   = "22P02"
	defaultListLimit    = 50
	maxListLimit        = 500
)

// translate converts driver-level fault shapes into domain errors
// before they reach a handler: no rows and malformed ids read as the
// entity-specific not-found, uniqueness violations as the provided
// conflict, and context timeouts as UNAVAILABLE.
func translate(err error, notFound, conflict *domain.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return notFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrStoreUnavailable.Message, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if conflict != nil {
				return conflict
			}
		case pgInvalidTextRepr:
			if notFound != nil {
				return notFound
			}
		}
	}
	return err
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
