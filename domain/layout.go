package domain

import "time"

// Layout types. Exactly one layout document may exist per type.
const (
	LayoutBanner     = "banner"
	LayoutFAQ        = "faq"
	LayoutCategories = "categories"
)

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Category struct {
	Title string `json:"title"`
}

type Banner struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Layout is a singleton-per-type content document driving the landing
// pages. Only the section matching Type is populated.
type Layout struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Banner     *Banner    `json:"banner,omitempty"`
	FAQ        []FAQItem  `json:"faq,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ValidType reports whether t is one of the known layout types.
func ValidType(t string) bool {
	switch t {
	case LayoutBanner, LayoutFAQ, LayoutCategories:
		return true
	}
	return false
}
