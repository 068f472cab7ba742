package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
	redisRepo "github.com/learnity/backend/repository/redis"
	authUC "github.com/learnity/backend/usecase/auth"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo(seed ...*domain.User) *memUserRepo {
	repo := &memUserRepo{users: map[string]*domain.User{}}
	for _, u := range seed {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func newTestUseCase(t *testing.T, seed ...*domain.User) (*UseCase, *memUserRepo, repository.SessionCache) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	users := newMemUserRepo(seed...)
	cache := redisRepo.NewSessionCache(client, time.Hour)
	return New(users, cache, time.Hour, nil), users, cache
}

func seedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := authUC.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           "user-1",
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
}

func TestUpdateInfoWritesThroughToCache(t *testing.T) {
	user := seedUser(t, "secret1")
	uc, users, cache := newTestUseCase(t, user)
	ctx := context.Background()

	// Simulate a live session.
	require.NoError(t, cache.Set(ctx, user, 0))

	updated, err := uc.UpdateInfo(ctx, user.ID, "Ada Lovelace", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.Name)

	cached, err := cache.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", cached.Name)
}

func TestUpdateInfoEmailConflict(t *testing.T) {
	user := seedUser(t, "secret1")
	other := &domain.User{ID: "user-2", Email: "taken@example.com"}
	uc, _, _ := newTestUseCase(t, user, other)

	_, err := uc.UpdateInfo(context.Background(), user.ID, "", "taken@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdatePasswordVerifiesOldSecret(t *testing.T) {
	user := seedUser(t, "secret1")
	uc, users, _ := newTestUseCase(t, user)
	ctx := context.Background()

	_, err := uc.UpdatePassword(ctx, user.ID, "wrong-password", "newsecret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.UpdatePassword(ctx, user.ID, "secret1", "newsecret")
	require.NoError(t, err)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, authUC.CheckPassword(stored.PasswordHash, "newsecret"))
}

func TestUpdateRoleValidation(t *testing.T) {
	user := seedUser(t, "secret1")
	uc, _, _ := newTestUseCase(t, user)
	ctx := context.Background()

	_, err := uc.UpdateRole(ctx, user.ID, "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	updated, err := uc.UpdateRole(ctx, user.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestDeleteEvictsSession(t *testing.T) {
	user := seedUser(t, "secret1")
	uc, users, cache := newTestUseCase(t, user)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, user, 0))
	require.NoError(t, uc.Delete(ctx, user.ID))

	_, err := users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = cache.Get(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetByIDPrefersCache(t *testing.T) {
	user := seedUser(t, "secret1")
	uc, _, cache := newTestUseCase(t, user)
	ctx := context.Background()

	// Cached snapshot diverges from the store; the cache wins.
	stale := *user
	stale.Name = "Cached Ada"
	require.NoError(t, cache.Set(ctx, &stale, 0))

	got, err := uc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached Ada", got.Name)

	// Without a session the durable store answers.
	require.NoError(t, cache.Delete(ctx, user.ID))
	got, err = uc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}
