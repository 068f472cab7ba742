package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// EntityNotification is a pending notification insert.
	EntityNotification = "notification"
	// EntityCounter is a pending purchased-counter increment for a course.
	EntityCounter = "counter"

	OperationCreate    = "create"
	OperationIncrement = "increment"
)

// Item represents an order side effect that should be retried when the
// durable store is unavailable.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
