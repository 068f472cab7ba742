package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
)

type sessionCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewSessionCache creates a Redis-backed session cache keyed by user
// id. The cached value is the serialized identity snapshot; its
// presence is the authoritative logged-in signal. ttl is the default
// entry lifetime applied when Set is called with a non-positive ttl.
func NewSessionCache(client *redislib.Client, ttl time.Duration) repository.SessionCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &sessionCache{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (c *sessionCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	result, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			// Expired and deleted entries are indistinguishable here,
			// and both simply force a re-login.
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.WrapError(domain.ErrCodeUnavailable, domain.ErrStoreUnavailable.Message, err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "corrupt session snapshot", err)
	}
	return &user, nil
}

func (c *sessionCache) Set(ctx context.Context, user *domain.User, ttl time.Duration) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, c.key(user.ID), payload, ttl).Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrStoreUnavailable.Message, err)
	}
	return nil
}

func (c *sessionCache) Delete(ctx context.Context, userID string) error {
	// DEL on a missing key is a no-op, which makes logout idempotent.
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrStoreUnavailable.Message, err)
	}
	return nil
}

func (c *sessionCache) key(userID string) string {
	return c.prefix + userID
}
