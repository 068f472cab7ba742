package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/learnity/backend/domain"
)

// HashPassword derives a bcrypt hash for storage. The plaintext never
// leaves this function's callers.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < 6 {
		return "", domain.WrapError(domain.ErrCodeInvalid, "password must be at least 6 characters", nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext candidate against a stored hash.
// bcrypt's comparison is constant-time over the derived digest.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
