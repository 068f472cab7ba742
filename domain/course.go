package domain

import (
	"encoding/json"
	"time"
)

// Course represents a catalog entry. Content holds the paid course
// material (sections, video references) and is only exposed to
// purchasers and admins; catalog listings strip it.
type Course struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Price        int64           `json:"price"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	Content      json.RawMessage `json:"content,omitempty"`
	Purchased    int             `json:"purchased"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Public returns a copy safe for unauthenticated catalog responses.
func (c *Course) Public() *Course {
	if c == nil {
		return nil
	}
	out := *c
	out.Content = nil
	return &out
}
