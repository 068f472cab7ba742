package transport

import (
	"encoding/json"
	"net/http"

	"github.com/learnity/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// unauthorizedMessage is what every authentication failure looks like
// from outside. Internally the kinds stay distinct (see domain errors);
// externally they collapse so a caller cannot probe which check failed.
const unauthorizedMessage = "please login to access this resource"

// MapError translates a domain error into an HTTP status and an error
// envelope. Unknown errors are normalized to a generic 500 without
// leaking internal detail.
func MapError(err error) (int, Envelope) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, NewError(string(domain.ErrCodeUnauthorized), unauthorizedMessage, nil)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, NewError(string(domain.ErrCodeForbidden), err.Error(), nil)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, NewError(string(domain.ErrCodeInvalid), err.Error(), nil)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, NewError(string(domain.ErrCodeNotFound), err.Error(), nil)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, NewError(string(domain.ErrCodeConflict), err.Error(), nil)
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		return http.StatusServiceUnavailable, NewError(string(domain.ErrCodeUnavailable), domain.ErrStoreUnavailable.Message, nil)
	default:
		return http.StatusInternalServerError, NewError(string(domain.ErrCodeInternal), "internal server error", nil)
	}
}
