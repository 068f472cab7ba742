package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/pkg/token"
	"github.com/learnity/backend/repository"
	"github.com/learnity/backend/usecase"
)

// UseCase is the session authority: it orchestrates credential
// verification, token issuance/rotation and the redis session cache.
// The cache entry, not the token, is the source of truth for "logged
// in" — a well-signed token whose user has no cache entry is treated
// as a revoked session.
type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionCache
	tokens     *token.Issuer
	mailer     usecase.Mailer
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionCache,
	tokens *token.Issuer,
	mailer usecase.Mailer,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		mailer:     mailer,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register validates the payload, embeds it (password already hashed)
// in a signed activation token together with a fresh 4-digit code, and
// emails the code. Nothing is persisted until activation; the token is
// the pending-registration record.
func (uc *UseCase) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" || email == "" {
		return "", domain.ErrInvalidPayload
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	activationToken, code, err := uc.tokens.IssueActivation(token.Registration{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", err
	}

	// The code travels only by email; the response carries just its
	// signed carrier token.
	if err := uc.mailer.Send(ctx, email, "Activate your account", "activation", map[string]any{
		"Name":           name,
		"ActivationCode": code,
	}); err != nil {
		return "", err
	}

	return activationToken, nil
}

// Activate verifies the activation token, compares the presented code
// against the embedded one and persists the user. Email uniqueness is
// re-checked at this point to close the race against a concurrent
// registration of the same address.
func (uc *UseCase) Activate(ctx context.Context, activationToken, code string) (*domain.User, error) {
	reg, expected, err := uc.tokens.VerifyActivation(activationToken)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) != 1 {
		return nil, domain.ErrActivationCode
	}

	if _, err := uc.users.GetByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user activated", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials, mints a token pair and populates the
// session cache. Unknown email and wrong password produce the same
// error so the response does not leak which case occurred.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, token.Pair, error) {
	if email == "" || password == "" {
		return nil, token.Pair{}, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, token.Pair{}, domain.ErrInvalidCredentials
		}
		return nil, token.Pair{}, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, token.Pair{}, domain.ErrInvalidCredentials
	}

	return uc.startSession(ctx, user)
}

// SocialLogin signs in an externally authenticated identity, creating
// the account on first sight.
func (uc *UseCase) SocialLogin(ctx context.Context, email, name, avatarURL string) (*domain.User, token.Pair, error) {
	if email == "" {
		return nil, token.Pair{}, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = uc.users.Create(ctx, &domain.User{
			Name:      name,
			Email:     email,
			AvatarURL: avatarURL,
			Role:      domain.RoleUser,
		})
	}
	if err != nil {
		return nil, token.Pair{}, err
	}

	return uc.startSession(ctx, user)
}

// Authenticate resolves a request's identity from its cookies.
//
// The access token is checked first: a bad signature rejects the
// request outright with no refresh attempt, while a mere expiry falls
// through to a silent refresh against the refresh token. On the
// refresh path a new pair is minted and returned as rotated so the
// transport layer can re-set both cookies; the identity is rebuilt
// from the cached snapshot without touching the durable store.
func (uc *UseCase) Authenticate(ctx context.Context, accessToken, refreshToken string) (*domain.User, *token.Pair, error) {
	if accessToken == "" {
		return nil, nil, domain.ErrNoSession
	}

	userID, err := uc.tokens.VerifyAccess(accessToken)
	switch {
	case err == nil:
		user, err := uc.lookupSession(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		return user, nil, nil

	case errors.Is(err, domain.ErrTokenExpired):
		user, rotated, err := uc.Refresh(ctx, refreshToken)
		if err != nil {
			return nil, nil, err
		}
		return user, &rotated, nil

	default:
		return nil, nil, domain.ErrTokenInvalid
	}
}

// Refresh rotates the token pair using a refresh token and resets the
// cache TTL. Concurrent refreshes for the same user may both succeed;
// last write wins on the cache entry and previously issued access
// tokens stay valid until their own expiry.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*domain.User, token.Pair, error) {
	if refreshToken == "" {
		return nil, token.Pair{}, domain.ErrMustReauthenticate
	}

	userID, err := uc.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, token.Pair{}, domain.ErrMustReauthenticate
	}

	user, err := uc.lookupSession(ctx, userID)
	if err != nil {
		return nil, token.Pair{}, err
	}

	pair, err := uc.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, token.Pair{}, err
	}
	if err := uc.sessions.Set(ctx, user, uc.sessionTTL); err != nil {
		return nil, token.Pair{}, err
	}
	return user, pair, nil
}

// Logout drops the session cache entry. Deleting a missing entry is a
// no-op, so logging out twice succeeds both times.
func (uc *UseCase) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, userID)
}

func (uc *UseCase) startSession(ctx context.Context, user *domain.User) (*domain.User, token.Pair, error) {
	pair, err := uc.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, token.Pair{}, err
	}
	if err := uc.sessions.Set(ctx, user, uc.sessionTTL); err != nil {
		return nil, token.Pair{}, err
	}
	uc.logger.Info("session started", zap.String("user_id", user.ID))
	return user, pair, nil
}

// lookupSession maps a cache miss to SessionRevoked and leaves
// transient failures (UNAVAILABLE) untouched so callers can retry
// instead of re-authenticating.
func (uc *UseCase) lookupSession(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionRevoked
		}
		return nil, err
	}
	return user, nil
}
