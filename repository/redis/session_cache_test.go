package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

func newTestCache(t *testing.T) (repository.SessionCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionCache(client, time.Hour), srv
}

func TestSessionCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	user := &domain.User{
		ID:    "user-1",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  domain.RoleUser,
	}
	require.NoError(t, cache.Set(ctx, user, 0))

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)
}

func TestSessionCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionCacheExpiry(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: "user-1"}, time.Minute))

	srv.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionCacheSetResetsTTL(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: "user-1"}, time.Minute))
	srv.FastForward(30 * time.Second)

	// A write-through refresh restarts the clock.
	require.NoError(t, cache.Set(ctx, &domain.User{ID: "user-1"}, time.Minute))
	srv.FastForward(45 * time.Second)

	_, err := cache.Get(ctx, "user-1")
	assert.NoError(t, err)
}

func TestSessionCacheDeleteIdempotent(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: "user-1"}, 0))
	require.NoError(t, cache.Delete(ctx, "user-1"))

	_, err := cache.Get(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting an already-absent entry is still a success.
	assert.NoError(t, cache.Delete(ctx, "user-1"))
}

func TestSessionCacheRejectsEmptyID(t *testing.T) {
	cache, _ := newTestCache(t)

	err := cache.Set(context.Background(), &domain.User{}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestSessionCacheUnavailable(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := NewSessionCache(client, time.Hour)

	srv.Close()

	_, err := cache.Get(context.Background(), "user-1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}
