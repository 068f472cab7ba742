package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/learnity/backend/domain"
)

// Config carries the signing material for the three token families.
// Access and refresh tokens use separate secrets so compromising one
// family does not compromise the other; activation tokens get a third.
type Config struct {
	AccessSecret     []byte
	RefreshSecret    []byte
	ActivationSecret []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	ActivationTTL    time.Duration
	Issuer           string
}

// Issuer mints and verifies the platform's JWTs. It is immutable after
// construction and safe for concurrent use.
type Issuer struct {
	cfg Config
}

// Pair bundles a freshly minted access/refresh token couple.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Registration is the not-yet-persisted payload embedded in an
// activation token. The password travels as a bcrypt hash, never as
// plaintext.
type Registration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

type sessionClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type activationClaims struct {
	User Registration `json:"user"`
	Code string       `json:"activation_code"`
	jwt.RegisteredClaims
}

// NewIssuer validates the configuration and applies the default expiry
// policy (5m access, 3d refresh, 5m activation).
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 || len(cfg.ActivationSecret) == 0 {
		return nil, errors.New("token: all three signing secrets are required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 5 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 72 * time.Hour
	}
	if cfg.ActivationTTL <= 0 {
		cfg.ActivationTTL = 5 * time.Minute
	}
	return &Issuer{cfg: cfg}, nil
}

// AccessTTL exposes the configured access-token lifetime (cookie max-age).
func (i *Issuer) AccessTTL() time.Duration { return i.cfg.AccessTTL }

// RefreshTTL exposes the configured refresh-token lifetime (cookie max-age).
func (i *Issuer) RefreshTTL() time.Duration { return i.cfg.RefreshTTL }

// IssueAccess signs a short-lived access token asserting the user id.
func (i *Issuer) IssueAccess(userID string) (string, error) {
	return i.signSession(userID, i.cfg.AccessSecret, i.cfg.AccessTTL)
}

// IssueRefresh signs a long-lived refresh token asserting the user id.
func (i *Issuer) IssueRefresh(userID string) (string, error) {
	return i.signSession(userID, i.cfg.RefreshSecret, i.cfg.RefreshTTL)
}

// IssuePair mints a matched access/refresh couple for the user.
func (i *Issuer) IssuePair(userID string) (Pair, error) {
	access, err := i.IssueAccess(userID)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.IssueRefresh(userID)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks signature and expiry of an access token and
// returns the embedded user id. Expiry and tampering produce distinct
// error kinds so the session authority can decide whether a silent
// refresh is allowed.
func (i *Issuer) VerifyAccess(tokenString string) (string, error) {
	return i.verifySession(tokenString, i.cfg.AccessSecret)
}

// VerifyRefresh checks signature and expiry of a refresh token and
// returns the embedded user id.
func (i *Issuer) VerifyRefresh(tokenString string) (string, error) {
	return i.verifySession(tokenString, i.cfg.RefreshSecret)
}

// IssueActivation embeds the registration payload and a freshly drawn
// 4-digit code into a signed token. Nothing is stored server-side: the
// token is the pending-registration record.
func (i *Issuer) IssueActivation(reg Registration) (tokenString, code string, err error) {
	code, err = activationCode()
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	claims := activationClaims{
		User: reg,
		Code: code,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.ActivationTTL)),
		},
	}

	tokenString, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.ActivationSecret)
	if err != nil {
		return "", "", err
	}
	return tokenString, code, nil
}

// VerifyActivation checks the token and returns the embedded payload
// and code. The caller compares the code against the one the client
// presents and re-checks email uniqueness before persisting.
func (i *Issuer) VerifyActivation(tokenString string) (Registration, string, error) {
	var claims activationClaims
	if err := i.parse(tokenString, i.cfg.ActivationSecret, &claims); err != nil {
		return Registration{}, "", err
	}
	if claims.User.Email == "" {
		return Registration{}, "", domain.ErrTokenInvalid
	}
	return claims.User, claims.Code, nil
}

func (i *Issuer) signSession(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) verifySession(tokenString string, secret []byte) (string, error) {
	var claims sessionClaims
	if err := i.parse(tokenString, secret, &claims); err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (i *Issuer) parse(tokenString string, secret []byte, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrTokenExpired.Message, err)
	default:
		return domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrTokenInvalid.Message, err)
	}
}

// activationCode draws a uniform 4-digit code from crypto/rand.
func activationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
