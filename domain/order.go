package domain

import (
	"encoding/json"
	"time"
)

// Order records a course purchase. PaymentInfo is an opaque payload
// from the payment collaborator and is stored verbatim.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CourseID    string          `json:"course_id"`
	PaymentInfo json.RawMessage `json:"payment_info,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
