package middleware

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/pkg/httpcontext"
	"github.com/learnity/backend/pkg/token"
	"github.com/learnity/backend/repository"
	redisRepo "github.com/learnity/backend/repository/redis"
	authUC "github.com/learnity/backend/usecase/auth"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _, _, _ string, _ map[string]any) error { return nil }

type authFixture struct {
	authenticator *Authenticator
	issuer        *token.Issuer
	cache         repository.SessionCache
	user          *domain.User
}

func newAuthFixture(t *testing.T, role string) *authFixture {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:     []byte("access-secret"),
		RefreshSecret:    []byte("refresh-secret"),
		ActivationSecret: []byte("activation-secret"),
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
	})
	require.NoError(t, err)

	user := &domain.User{
		ID:    "user-1",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  role,
	}
	users := &stubUserRepo{users: map[string]*domain.User{user.ID: user}}
	cache := redisRepo.NewSessionCache(client, time.Hour)
	require.NoError(t, cache.Set(context.Background(), user, 0))

	uc := authUC.New(users, cache, issuer, noopMailer{}, time.Hour, nil)
	adapter := httpcontext.NewAdapter(5 * time.Second)
	cookies := CookieWriter{AccessTTL: time.Minute, RefreshTTL: time.Hour}

	return &authFixture{
		authenticator: NewAuthenticator(uc, cookies, adapter, nil),
		issuer:        issuer,
		cache:         cache,
		user:          user,
	}
}

func requestWithCookies(access, refresh string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	if access != "" {
		ctx.Request.Header.SetCookie(AccessTokenCookie, access)
	}
	if refresh != "" {
		ctx.Request.Header.SetCookie(RefreshTokenCookie, refresh)
	}
	return ctx
}

func TestAuthenticatePassesUserToHandler(t *testing.T) {
	f := newAuthFixture(t, domain.RoleUser)
	pair, err := f.issuer.IssuePair(f.user.ID)
	require.NoError(t, err)

	var seen *domain.User
	handler := f.authenticator.Authenticate(func(ctx *fasthttp.RequestCtx) {
		seen = UserFrom(ctx)
		ctx.SetStatusCode(http.StatusOK)
	})

	ctx := requestWithCookies(pair.AccessToken, pair.RefreshToken)
	handler(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.NotNil(t, seen)
	assert.Equal(t, f.user.ID, seen.ID)

	// No rotation happened, so no fresh cookies on the response.
	assert.Empty(t, ctx.Response.Header.PeekCookie(AccessTokenCookie))
}

func TestAuthenticateRejectsMissingCookie(t *testing.T) {
	f := newAuthFixture(t, domain.RoleUser)

	called := false
	handler := f.authenticator.Authenticate(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := requestWithCookies("", "")
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "please login to access this resource")
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	f := newAuthFixture(t, domain.RoleUser)
	pair, err := f.issuer.IssuePair(f.user.ID)
	require.NoError(t, err)

	called := false
	handler := f.authenticator.Authenticate(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	ctx := requestWithCookies(tampered, pair.RefreshToken)
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestAuthenticateRotatesCookiesOnExpiredAccess(t *testing.T) {
	f := newAuthFixture(t, domain.RoleUser)

	expiredIssuer, err := token.NewIssuer(token.Config{
		AccessSecret:     []byte("access-secret"),
		RefreshSecret:    []byte("refresh-secret"),
		ActivationSecret: []byte("activation-secret"),
		AccessTTL:        -time.Minute,
		RefreshTTL:       time.Hour,
	})
	require.NoError(t, err)
	expiredAccess, err := expiredIssuer.IssueAccess(f.user.ID)
	require.NoError(t, err)
	refresh, err := f.issuer.IssueRefresh(f.user.ID)
	require.NoError(t, err)

	handler := f.authenticator.Authenticate(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(http.StatusOK)
	})

	ctx := requestWithCookies(expiredAccess, refresh)
	handler(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.NotEmpty(t, ctx.Response.Header.PeekCookie(AccessTokenCookie))
	assert.NotEmpty(t, ctx.Response.Header.PeekCookie(RefreshTokenCookie))
}

func TestAuthenticateRejectsRevokedSession(t *testing.T) {
	f := newAuthFixture(t, domain.RoleUser)
	pair, err := f.issuer.IssuePair(f.user.ID)
	require.NoError(t, err)

	require.NoError(t, f.cache.Delete(context.Background(), f.user.ID))

	called := false
	handler := f.authenticator.Authenticate(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := requestWithCookies(pair.AccessToken, pair.RefreshToken)
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestRequireRolesAllowsMatch(t *testing.T) {
	f := newAuthFixture(t, domain.RoleAdmin)
	pair, err := f.issuer.IssuePair(f.user.ID)
	require.NoError(t, err)

	handler := f.authenticator.Authenticate(RequireRoles(domain.RoleAdmin)(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(http.StatusOK)
	}))

	ctx := requestWithCookies(pair.AccessToken, pair.RefreshToken)
	handler(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
}

func TestRequireRolesForbidsMismatch(t *testing.T) {
	f := newAuthFixture(t, domain.RoleUser)
	pair, err := f.issuer.IssuePair(f.user.ID)
	require.NoError(t, err)

	called := false
	handler := f.authenticator.Authenticate(RequireRoles(domain.RoleAdmin)(func(ctx *fasthttp.RequestCtx) {
		called = true
	}))

	ctx := requestWithCookies(pair.AccessToken, pair.RefreshToken)
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, ctx.Response.StatusCode())
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	called := false
	handler := RequireRoles(domain.RoleAdmin)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}
