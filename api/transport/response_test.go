package transport

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learnity/backend/domain"
)

func TestMapErrorCollapsesAuthFailures(t *testing.T) {
	// Every authentication failure kind maps to the same status and
	// client message so a caller cannot probe which check failed.
	kinds := []error{
		domain.ErrInvalidCredentials,
		domain.ErrNoSession,
		domain.ErrTokenInvalid,
		domain.ErrTokenExpired,
		domain.ErrSessionRevoked,
		domain.ErrMustReauthenticate,
		domain.ErrActivationCode,
	}

	for _, kind := range kinds {
		status, envelope := MapError(kind)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, unauthorizedMessage, envelope.Error)
	}
}

func TestMapErrorWrappedSentinelsSurvive(t *testing.T) {
	wrapped := domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrTokenExpired.Message, errors.New("token is expired by 3m"))

	status, envelope := MapError(wrapped)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, unauthorizedMessage, envelope.Error)
}

func TestMapErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrCourseNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrAlreadyPurchased, http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidPayload, http.StatusBadRequest},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, envelope := MapError(tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Equal(t, "error", envelope.Status)
	}
}

func TestMapErrorHidesInternalDetail(t *testing.T) {
	_, envelope := MapError(errors.New("pq: relation users does not exist"))
	assert.Equal(t, "internal server error", envelope.Error)
}
