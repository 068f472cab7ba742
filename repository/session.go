package repository

import (
	"context"
	"time"

	"github.com/learnity/backend/domain"
)

// SessionCache maps a user id to that user's serialized snapshot. The
// existence of a live entry is the authoritative "logged in" signal:
// tokens only assert identity, the cache asserts the session.
//
// Get returns domain.ErrSessionNotFound on a miss; both TTL expiry and
// an explicit Delete look identical to callers. Transient backend
// failures are reported with the UNAVAILABLE error code so the session
// authority can distinguish an outage from a revoked session.
type SessionCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}
