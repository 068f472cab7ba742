package token

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/backend/domain"
)

func testIssuer(t *testing.T, mutate func(*Config)) *Issuer {
	t.Helper()
	cfg := Config{
		AccessSecret:     []byte("access-secret"),
		RefreshSecret:    []byte("refresh-secret"),
		ActivationSecret: []byte("activation-secret"),
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
		ActivationTTL:    time.Minute,
		Issuer:           "learnity-test",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	issuer, err := NewIssuer(cfg)
	require.NoError(t, err)
	return issuer
}

func TestNewIssuerRequiresSecrets(t *testing.T) {
	_, err := NewIssuer(Config{
		AccessSecret:  []byte("a"),
		RefreshSecret: []byte("r"),
	})
	assert.Error(t, err)
}

func TestIssuePairRoundTrip(t *testing.T) {
	issuer := testIssuer(t, nil)

	pair, err := issuer.IssuePair("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	userID, err := issuer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	userID, err = issuer.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	issuer := testIssuer(t, nil)

	pair, err := issuer.IssuePair("user-123")
	require.NoError(t, err)

	// An access token must not validate as a refresh token and vice versa.
	_, err = issuer.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = issuer.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyAccessTampered(t *testing.T) {
	issuer := testIssuer(t, nil)

	access, err := issuer.IssueAccess("user-123")
	require.NoError(t, err)

	tampered := access[:len(access)-2] + "xx"
	_, err = issuer.VerifyAccess(tampered)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.NotErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerifyAccessExpired(t *testing.T) {
	issuer := testIssuer(t, func(cfg *Config) {
		cfg.AccessTTL = -time.Minute
	})

	access, err := issuer.IssueAccess("user-123")
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(access)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.NotErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyAccessGarbage(t *testing.T) {
	issuer := testIssuer(t, nil)

	_, err := issuer.VerifyAccess("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestActivationRoundTrip(t *testing.T) {
	issuer := testIssuer(t, nil)

	reg := Registration{
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$fakehash",
	}
	tokenString, code, err := issuer.IssueActivation(reg)
	require.NoError(t, err)
	require.Len(t, code, 4)

	n, err := strconv.Atoi(code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1000)
	assert.LessOrEqual(t, n, 9999)

	got, gotCode, err := issuer.VerifyActivation(tokenString)
	require.NoError(t, err)
	assert.Equal(t, reg, got)
	assert.Equal(t, code, gotCode)
}

func TestActivationExpired(t *testing.T) {
	issuer := testIssuer(t, func(cfg *Config) {
		cfg.ActivationTTL = -time.Minute
	})

	tokenString, _, err := issuer.IssueActivation(Registration{Email: "ada@example.com"})
	require.NoError(t, err)

	_, _, err = issuer.VerifyActivation(tokenString)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestActivationWrongSecret(t *testing.T) {
	issuer := testIssuer(t, nil)
	other := testIssuer(t, func(cfg *Config) {
		cfg.ActivationSecret = []byte("different-secret")
	})

	tokenString, _, err := issuer.IssueActivation(Registration{Email: "ada@example.com"})
	require.NoError(t, err)

	_, _, err = other.VerifyActivation(tokenString)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestSessionTokenNotValidAsActivation(t *testing.T) {
	issuer := testIssuer(t, nil)

	access, err := issuer.IssueAccess("user-123")
	require.NoError(t, err)

	_, _, err = issuer.VerifyActivation(access)
	assert.Error(t, err)
	var dErr *domain.Error
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, domain.ErrCodeUnauthorized, dErr.Code)
}
