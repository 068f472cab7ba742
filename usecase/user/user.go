package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
	authUC "github.com/learnity/backend/usecase/auth"
)

// UseCase covers profile and account administration. Every mutation of
// identity fields writes through to the session cache after the
// durable store commit, so the next authenticated request observes the
// change without waiting for the cache TTL to lapse.
type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionCache
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionCache, sessionTTL time.Duration, logger *zap.Logger) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// GetByID prefers the cached snapshot and falls back to the durable
// store only when the user has no live session.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if cached, err := uc.sessions.Get(ctx, id); err == nil {
		return cached, nil
	} else if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return uc.users.List(ctx, filter)
}

// UpdateInfo changes name and/or email. An email change re-checks
// uniqueness before committing.
func (uc *UseCase) UpdateInfo(ctx context.Context, userID, name, email string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		if _, err := uc.users.GetByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	return uc.commit(ctx, user)
}

// UpdatePassword verifies the old secret before storing a new hash.
func (uc *UseCase) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !authUC.CheckPassword(user.PasswordHash, oldPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := authUC.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	return uc.commit(ctx, user)
}

// UpdateAvatar stores a new avatar reference. Upload to object storage
// happens upstream; only the resulting URL lands here.
func (uc *UseCase) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error) {
	if avatarURL == "" {
		return nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = avatarURL

	return uc.commit(ctx, user)
}

// UpdateRole is an admin operation.
func (uc *UseCase) UpdateRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role

	return uc.commit(ctx, user)
}

// Delete removes the account and its session cache entry, ending any
// live session immediately.
func (uc *UseCase) Delete(ctx context.Context, userID string) error {
	if err := uc.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := uc.sessions.Delete(ctx, userID); err != nil {
		uc.logger.Warn("failed to evict session of deleted user",
			zap.String("user_id", userID), zap.Error(err))
	}
	uc.logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}

// commit persists the user and overwrites the cached snapshot. Order
// matters: durable store first, cache second.
func (uc *UseCase) commit(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.sessions.Set(ctx, user, uc.sessionTTL); err != nil {
		return nil, err
	}
	return user, nil
}
